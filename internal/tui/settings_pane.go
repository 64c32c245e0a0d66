package tui

import (
	"errors"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/gantt/internal/config"
	"github.com/aristath/gantt/internal/timescale"
)

// SettingsPaneModel is the modal form editing the chart options that are
// worth changing at runtime.
type SettingsPaneModel struct {
	form        *huh.Form
	config      *config.GanttConfig
	globalPath  string
	projectPath string
	width       int
	height      int
	visible     bool
	applied     bool // Saved and not yet picked up by the chart
	err         error

	// Form field bindings
	saveTarget     string
	viewMode       string
	inline         bool
	projection     bool
	editMode       bool
	dateFormat     string
	availableWidth string
}

// NewSettingsPaneModel creates a new settings pane.
func NewSettingsPaneModel(cfg *config.GanttConfig, globalPath, projectPath string) SettingsPaneModel {
	m := SettingsPaneModel{
		config:      cfg,
		globalPath:  globalPath,
		projectPath: projectPath,
	}
	m.loadFromConfig()
	m.buildForm()
	return m
}

// loadFromConfig initializes the form field values from the config.
func (m *SettingsPaneModel) loadFromConfig() {
	m.saveTarget = "project"
	m.viewMode = m.config.ViewMode
	m.inline = m.config.Inline
	m.projection = m.config.Projection
	m.editMode = m.config.EditMode
	m.dateFormat = m.config.DateFormat
	m.availableWidth = strconv.FormatFloat(m.config.AvailableWidth, 'f', -1, 64)
}

// buildForm constructs the Huh form with all settings fields.
func (m *SettingsPaneModel) buildForm() {
	modes := make([]huh.Option[string], 0, len(timescale.Modes()))
	for _, mode := range timescale.Modes() {
		modes = append(modes, huh.NewOption(string(mode), string(mode)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("saveTarget").
				Title("Save To").
				Options(
					huh.NewOption("Global (~/.gantt/config.json)", "global"),
					huh.NewOption("Project (.gantt/config.json)", "project"),
				).
				Value(&m.saveTarget),
		).Title("Save Target"),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("viewMode").
				Title("View Mode").
				Options(modes...).
				Value(&m.viewMode),

			huh.NewConfirm().
				Key("inline").
				Title("Pack contiguous tasks into one row").
				Value(&m.inline),

			huh.NewConfirm().
				Key("projection").
				Title("Show lateness projections").
				Value(&m.projection),

			huh.NewConfirm().
				Key("editMode").
				Title("Allow dragging and resizing").
				Value(&m.editMode),
		).Title("Chart"),

		huh.NewGroup(
			huh.NewInput().
				Key("dateFormat").
				Title("Date Format (Go layout)").
				Value(&m.dateFormat).
				Placeholder("2006-01-02"),

			huh.NewInput().
				Key("availableWidth").
				Title("Available Width (px)").
				Value(&m.availableWidth).
				Validate(func(s string) error {
					if v, err := strconv.ParseFloat(s, 64); err != nil || v <= 0 {
						return errors.New("enter a positive number")
					}
					return nil
				}).
				Placeholder("1200"),
		).Title("Display"),
	)
}

// Init initializes the settings pane.
func (m SettingsPaneModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update feeds msg to the form and saves once it completes. Esc is
// handled by the parent model.
func (m SettingsPaneModel) Update(msg tea.Msg) (SettingsPaneModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.applyFormToConfig()
	if m.err = config.Save(m.config, m.targetPath()); m.err == nil {
		m.applied = true
		m.visible = false
	}
	return m, cmd
}

// targetPath is the config file the form writes to.
func (m SettingsPaneModel) targetPath() string {
	if m.saveTarget == "global" {
		return m.globalPath
	}
	return m.projectPath
}

// applyFormToConfig copies form field values back to the config struct.
func (m *SettingsPaneModel) applyFormToConfig() {
	m.config.ViewMode = m.viewMode
	m.config.Inline = m.inline
	m.config.Projection = m.projection
	m.config.EditMode = m.editMode
	if m.dateFormat != "" {
		m.config.DateFormat = m.dateFormat
	}
	if v, err := strconv.ParseFloat(m.availableWidth, 64); err == nil && v > 0 {
		m.config.AvailableWidth = v
	}
}

// TakeApplied reports whether a save happened since the last call.
func (m *SettingsPaneModel) TakeApplied() bool {
	applied := m.applied
	m.applied = false
	return applied
}

// View renders the form, or the save error in its place.
func (m SettingsPaneModel) View() string {
	if !m.visible {
		return ""
	}

	body := m.form.View()
	if m.err != nil {
		body = StyleError.Render("Could not save settings: " + m.err.Error())
	}

	box := StyleFocusedBorder.
		Padding(1, 2).
		Width(m.width - 4).
		Height(m.height - 4)
	return lipgloss.JoinVertical(lipgloss.Left, StyleTitle.Render("Chart settings"), box.Render(body))
}

// SetSize updates the dimensions of the settings pane.
func (m *SettingsPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if m.form != nil {
		m.form.WithWidth(w - 8).WithHeight(h - 8)
	}
}

// SetVisible shows or hides the settings pane.
func (m *SettingsPaneModel) SetVisible(v bool) {
	m.visible = v
	m.err = nil
	if v {
		m.loadFromConfig()
		m.buildForm()
	}
}

// IsVisible returns whether the settings pane is currently visible.
func (m SettingsPaneModel) IsVisible() bool {
	return m.visible
}
