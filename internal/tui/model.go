package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/gantt/internal/config"
	"github.com/aristath/gantt/internal/events"
	"github.com/aristath/gantt/internal/gantt"
	"github.com/aristath/gantt/internal/journal"
	"github.com/aristath/gantt/internal/tasks"
	"github.com/aristath/gantt/internal/timescale"
)

// PaneID identifies which pane is focused.
type PaneID int

const (
	PaneChart PaneID = iota
	PaneDetail
)

// Options wires the model to files and the journal.
type Options struct {
	GlobalConfigPath  string
	ProjectConfigPath string
	TaskFile          string          // Reloaded with r; empty disables reloading
	Journal           journal.Journal // Optional history source for the detail pane
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	chart        *gantt.Chart
	chartPane    ChartPaneModel
	detailPane   DetailPaneModel
	settingsPane SettingsPaneModel
	focusedPane  PaneID
	eventSub     <-chan events.Event
	config       *config.GanttConfig
	taskFile     string
	status       string
	width        int
	height       int
	quitting     bool
	showSettings bool
}

// New creates a new TUI model.
// It subscribes to all events from the event bus using SubscribeAll.
func New(chart *gantt.Chart, eventBus *events.EventBus, cfg *config.GanttConfig, opts Options) Model {
	return Model{
		chart:        chart,
		chartPane:    NewChartPaneModel(chart),
		detailPane:   NewDetailPaneModel(chart, opts.Journal),
		settingsPane: NewSettingsPaneModel(cfg, opts.GlobalConfigPath, opts.ProjectConfigPath),
		focusedPane:  PaneChart,
		eventSub:     eventBus.SubscribeAll(256),
		config:       cfg,
		taskFile:     opts.TaskFile,
	}
}

// Init initializes the model and returns the initial command.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.eventSub)
}

// waitForEvent returns a command that waits for the next event from the event bus.
func waitForEvent(sub <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return nil // bus closed
		}
		return event
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// If settings panel is open, route all keys to it (modal behavior)
		if m.showSettings {
			if msg.String() == KeyEsc {
				m.showSettings = false
				m.settingsPane.SetVisible(false)
				return m, nil
			}

			var cmd tea.Cmd
			m.settingsPane, cmd = m.settingsPane.Update(msg)
			cmds = append(cmds, cmd)

			if m.settingsPane.TakeApplied() {
				m.applySettings()
			}
			if !m.settingsPane.IsVisible() {
				m.showSettings = false
			}
			return m, tea.Batch(cmds...)
		}

		switch msg.String() {
		case KeyQuit, KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case KeySettings:
			m.showSettings = true
			m.settingsPane.SetVisible(true)
			m.settingsPane.SetSize(m.width, m.height)
			cmds = append(cmds, m.settingsPane.Init())

		case KeyTab, KeyShiftTab:
			m.focusedPane = (m.focusedPane + 1) % 2
			m.updateFocusStates()

		case KeyNextMode:
			m.changeMode(m.chart.Scale().Mode.Next())

		case KeyPrevMode:
			m.changeMode(m.chart.Scale().Mode.Prev())

		case KeyEsc:
			if m.chart.Dragging() {
				_ = m.chart.CancelDrag()
			}
			m.chart.UnselectAll()
			m.detailPane.Refresh()

		case KeyReload:
			m.reload()

		default:
			switch m.focusedPane {
			case PaneChart:
				var cmd tea.Cmd
				m.chartPane, cmd = m.chartPane.Update(msg)
				cmds = append(cmds, cmd)
			case PaneDetail:
				var cmd tea.Cmd
				m.detailPane, cmd = m.detailPane.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case tea.MouseMsg:
		if m.showSettings {
			break
		}
		var cmd tea.Cmd
		m.chartPane, cmd = m.chartPane.Update(msg)
		cmds = append(cmds, cmd)
		if m.chart.Selected() != m.detailPane.Shown() {
			m.detailPane.Refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.computeLayout()
		m.settingsPane.SetSize(msg.Width, msg.Height)

	case events.Event:
		m.status = describe(msg)
		var cmd tea.Cmd
		m.detailPane, cmd = m.detailPane.Update(msg)
		cmds = append(cmds, cmd)
		// Also wait for next event
		cmds = append(cmds, waitForEvent(m.eventSub))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) changeMode(mode timescale.ViewMode) {
	if err := m.chart.ChangeViewMode(mode); err != nil {
		m.status = err.Error()
	}
}

// applySettings hands the saved configuration to the chart.
func (m *Model) applySettings() {
	if err := m.chart.Configure(m.config); err != nil {
		m.status = fmt.Sprintf("Settings saved but not applied: %v", err)
		return
	}
	m.status = "Settings saved"
	m.detailPane.Refresh()
}

// reload reads the task file again, discarding uncommitted state.
func (m *Model) reload() {
	if m.taskFile == "" {
		m.status = "No task file to reload"
		return
	}
	f, err := tasks.LoadFile(m.taskFile)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.chart.Load(f)
	m.detailPane.Refresh()
	m.status = fmt.Sprintf("Reloaded %d tasks", len(f.Tasks))
}

// describe renders an event for the status line.
func describe(e events.Event) string {
	switch ev := e.(type) {
	case events.ViewChangeEvent:
		return "View: " + ev.Mode
	case events.DateChangeEvent:
		return fmt.Sprintf("%s: %s - %s", ev.Name, ev.Start.Format("2006-01-02"), ev.End.Format("2006-01-02"))
	case events.ProgressChangeEvent:
		return fmt.Sprintf("%s: %d%%", ev.Name, ev.Progress)
	case events.ClickEvent:
		return "Selected " + ev.Name
	default:
		return e.EventType()
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showSettings {
		return m.settingsPane.View()
	}

	main := lipgloss.JoinVertical(lipgloss.Left, m.chartPane.View(), m.detailPane.View())
	footer := StyleStatus.Render(m.status) + "  " + HelpView()
	return lipgloss.JoinVertical(lipgloss.Left, main, footer)
}

// computeLayout calculates pane dimensions and updates all child models.
func (m *Model) computeLayout() {
	availableHeight := m.height - 1 // reserve 1 line for the footer
	chartHeight := (availableHeight * 65) / 100
	detailHeight := availableHeight - chartHeight

	m.chartPane.SetSize(m.width, chartHeight)
	m.detailPane.SetSize(m.width, detailHeight)

	m.updateFocusStates()
}

// updateFocusStates updates the focus state of all panes.
func (m *Model) updateFocusStates() {
	m.chartPane.SetFocused(m.focusedPane == PaneChart)
	m.detailPane.SetFocused(m.focusedPane == PaneDetail)
}

// Status returns the footer message.
func (m Model) Status() string {
	return m.status
}
