package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/gantt/internal/events"
	"github.com/aristath/gantt/internal/gantt"
	"github.com/aristath/gantt/internal/journal"
)

// historyLimit caps the journal lines shown for the selected task.
const historyLimit = 20

// DetailPaneModel shows the popup text and edit history of the selected task.
type DetailPaneModel struct {
	chart    *gantt.Chart
	journal  journal.Journal // Optional
	viewport viewport.Model
	shown    string // Task whose details are in the viewport
	width    int
	height   int
	focused  bool
}

// NewDetailPaneModel creates a detail pane. j may be nil.
func NewDetailPaneModel(c *gantt.Chart, j journal.Journal) DetailPaneModel {
	vp := viewport.New(0, 0)
	m := DetailPaneModel{
		chart:    c,
		journal:  j,
		viewport: vp,
	}
	m.Refresh()
	return m
}

// Update handles messages for the detail pane.
func (m DetailPaneModel) Update(msg tea.Msg) (DetailPaneModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			break
		}
		// The viewport's key map scrolls with j/k and the arrows
		m.viewport, cmd = m.viewport.Update(msg)

	case events.Event:
		m.Refresh()
	}

	return m, cmd
}

// Refresh rebuilds the viewport content for the current selection.
func (m *DetailPaneModel) Refresh() {
	id := m.chart.Selected()
	m.shown = id
	if id == "" {
		m.viewport.SetContent("Click a bar to see its details.")
		return
	}

	var b strings.Builder
	popup, err := m.chart.Popup(id)
	if err != nil {
		popup = fmt.Sprintf("Error: %v", err)
	}
	b.WriteString(popup)

	if m.journal != nil {
		history, err := m.journal.History(context.Background(), id)
		switch {
		case err != nil:
			fmt.Fprintf(&b, "\nHistory unavailable: %v\n", err)
		case len(history) > 0:
			b.WriteString("\nHistory\n")
			if len(history) > historyLimit {
				history = history[len(history)-historyLimit:]
			}
			for _, e := range history {
				b.WriteString(formatEntry(e))
				b.WriteString("\n")
			}
		}
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func formatEntry(e journal.Entry) string {
	stamp := e.RecordedAt.Format("15:04:05")
	switch e.Kind {
	case events.EventTypeDateChange:
		return fmt.Sprintf("%s  dates %s - %s", stamp, e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
	case events.EventTypeProgressChange:
		return fmt.Sprintf("%s  progress %d%%", stamp, e.Progress)
	default:
		return fmt.Sprintf("%s  %s", stamp, strings.ReplaceAll(e.Kind, "_", " "))
	}
}

// View renders the detail pane.
func (m DetailPaneModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := StyleTitle.Render("Details")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View())

	style := StyleUnfocusedBorder
	if m.focused {
		style = StyleFocusedBorder
	}

	return style.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(content)
}

// SetSize updates the pane dimensions.
func (m *DetailPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = max(10, w-4)
	m.viewport.Height = max(1, h-3) // Borders and title
}

// SetFocused updates the focus state.
func (m *DetailPaneModel) SetFocused(focused bool) {
	m.focused = focused
}

// Shown returns the id of the task in the viewport.
func (m DetailPaneModel) Shown() string {
	return m.shown
}
