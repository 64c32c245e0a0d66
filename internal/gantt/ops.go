package gantt

import (
	"fmt"

	"github.com/aristath/gantt/internal/config"
	"github.com/aristath/gantt/internal/events"
	"github.com/aristath/gantt/internal/geometry"
	"github.com/aristath/gantt/internal/tasks"
	"github.com/aristath/gantt/internal/timescale"
)

// Refresh replaces the task records and relays out the chart. Missing and
// repeated ids are settled here, on the kept records, so every later
// rebuild sees the same ids and edits can be written back to them.
func (c *Chart) Refresh(inputs []tasks.Input) {
	c.inputs = make([]tasks.Input, len(inputs))
	copy(c.inputs, inputs)
	tasks.AssignIDs(c.inputs)
	c.rebuild()
}

// SetProjects replaces the project records and relays out the chart.
func (c *Chart) SetProjects(projects []tasks.ProjectInput) {
	c.projects = append([]tasks.ProjectInput(nil), projects...)
	c.rebuild()
}

// Load installs a task file: its projects and its tasks.
func (c *Chart) Load(f *tasks.File) {
	c.projects = append([]tasks.ProjectInput(nil), f.Projects...)
	c.Refresh(f.Tasks)
}

// Inputs returns the task records, including every committed edit.
func (c *Chart) Inputs() []tasks.Input {
	out := make([]tasks.Input, len(c.inputs))
	copy(out, c.inputs)
	return out
}

// Configure installs a new configuration and rebuilds the chart.
func (c *Chart) Configure(cfg *config.GanttConfig) error {
	if err := c.apply(*cfg); err != nil {
		return err
	}
	c.rebuild()
	return nil
}

// Config returns a copy of the active configuration. Its view mode reflects
// the latest ChangeViewMode.
func (c *Chart) Config() config.GanttConfig {
	cfg := c.cfg
	cfg.ViewMode = string(c.mode)
	return cfg
}

// ChangeViewMode recomputes the scale for mode, relays out every bar and
// publishes a view change. Task dates are kept as they are.
func (c *Chart) ChangeViewMode(mode timescale.ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown view mode %q", mode)
	}

	c.mode = mode
	c.layout()
	c.publish(events.TopicView, events.ViewChangeEvent{
		Mode:      string(mode),
		Timestamp: c.now(),
	})
	return nil
}

// ViewIs reports whether the chart is in any of modes.
func (c *Chart) ViewIs(modes ...timescale.ViewMode) bool {
	return c.scale.Is(modes...)
}

// UnselectAll clears the selection.
func (c *Chart) UnselectAll() {
	c.selected = ""
}

// Selected returns the id of the selected task, or "".
func (c *Chart) Selected() string {
	return c.selected
}

// GetBarByID returns a snapshot of the bar of task id.
func (c *Chart) GetBarByID(id string) (Bar, bool) {
	t, ok := c.index[id]
	if !ok {
		return Bar{}, false
	}
	return c.snapshot(t), true
}

func (c *Chart) snapshot(t *tasks.Task) Bar {
	rect := c.bars[t.ID]
	return Bar{
		Task:       t.Clone(),
		Rect:       rect,
		Decoration: geometry.Decorate(rect, t.Name, c.cfg.FontSize),
		Editable:   c.cfg.EditMode && t.Editable() && !t.Started(),
		Selected:   t.ID == c.selected,
	}
}

// Bars returns every bar in drawing order.
func (c *Chart) Bars() []Bar {
	out := make([]Bar, 0, len(c.set.Tasks))
	for _, t := range c.set.Tasks {
		out = append(out, c.snapshot(t))
	}
	return out
}

// Decorations returns the label, handle and progress handle geometry of id.
func (c *Chart) Decorations(id string) (geometry.Decoration, bool) {
	b, ok := c.GetBarByID(id)
	return b.Decoration, ok
}

// Connectors returns every routed dependency arrow, grouped by dependent.
func (c *Chart) Connectors() []Connector {
	var out []Connector
	for _, e := range c.graph.Edges() {
		if p, ok := c.connectors[e]; ok {
			out = append(out, Connector{From: e.From, To: e.To, Path: p})
		}
	}
	return out
}

// Tasks returns the chart's tasks in drawing order.
func (c *Chart) Tasks() []*tasks.Task {
	return c.set.Tasks
}

// Projects returns the chart's projects.
func (c *Chart) Projects() []*tasks.Project {
	return c.set.Projects
}

// Scale returns the active view scale.
func (c *Chart) Scale() timescale.ViewScale {
	return c.scale
}

// Dims returns the vertical metrics of the layout.
func (c *Chart) Dims() geometry.Dims {
	return c.dims
}

// Rows returns the number of rows after packing.
func (c *Chart) Rows() int {
	return c.set.Rows
}

// Width returns the drawing width in pixels.
func (c *Chart) Width() float64 {
	return c.scale.LeftMargin + c.scale.Width()
}

// Height returns the drawing height in pixels.
func (c *Chart) Height() float64 {
	return c.dims.RowY(c.set.Rows)
}
