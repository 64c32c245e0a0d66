package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Border styles
var (
	StyleFocusedBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62"))

	StyleUnfocusedBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))
)

// Bar styles
var (
	StyleBarSelected = lipgloss.NewStyle().
				Foreground(lipgloss.Color("62")).
				Bold(true)

	StyleBarLate = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	StyleBarInvalid = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	StyleHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// UI element styles
var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	StyleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	StyleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("green"))

	StyleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)
