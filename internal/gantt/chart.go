// Package gantt is the chart facade hosts talk to. It owns the registry of
// tasks, bars and connectors for one layout pass, runs the interaction
// machine over it and publishes domain events on the bus.
package gantt

import (
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/aristath/gantt/internal/config"
	"github.com/aristath/gantt/internal/depgraph"
	"github.com/aristath/gantt/internal/events"
	"github.com/aristath/gantt/internal/geometry"
	"github.com/aristath/gantt/internal/interaction"
	"github.com/aristath/gantt/internal/tasks"
	"github.com/aristath/gantt/internal/timescale"
)

// PopupFunc renders the popup body for a task.
type PopupFunc func(task *tasks.Task) string

// Bar is a snapshot of one task's bar.
type Bar struct {
	Task       *tasks.Task
	Rect       geometry.BarRect
	Decoration geometry.Decoration
	Editable   bool // Drag and resize bindings attach
	Selected   bool
}

// Connector is a routed dependency arrow. To depends on From.
type Connector struct {
	From string
	To   string
	Path geometry.Path
}

// Chart is not safe for concurrent use. Hosts drive it from one goroutine;
// the bus carries its events to everybody else.
type Chart struct {
	cfg   config.GanttConfig
	bus   *events.EventBus
	now   func() time.Time
	popup PopupFunc
	tmpl  *template.Template

	inputs   []tasks.Input
	projects []tasks.ProjectInput

	mode       timescale.ViewMode
	set        tasks.Set
	index      map[string]*tasks.Task
	scale      timescale.ViewScale
	dims       geometry.Dims
	graph      *depgraph.Graph
	bars       map[string]geometry.BarRect
	connectors map[depgraph.Edge]geometry.Path
	machine    *interaction.Machine
	selected   string
}

// Option configures a Chart.
type Option func(*Chart)

// WithClock replaces time.Now for ingestion placeholders, projections and
// the post-drag cooldown.
func WithClock(now func() time.Time) Option {
	return func(c *Chart) {
		c.now = now
	}
}

// WithPopupFunc renders popups with fn instead of custom_popup_html or the
// built-in text.
func WithPopupFunc(fn PopupFunc) Option {
	return func(c *Chart) {
		c.popup = fn
	}
}

// New creates an empty chart. bus may be nil, in which case events are
// dropped.
func New(cfg *config.GanttConfig, bus *events.EventBus, opts ...Option) (*Chart, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	c := &Chart{
		bus:   bus,
		now:   time.Now,
		graph: depgraph.Build(nil),
		bars:  make(map[string]geometry.BarRect),
		index: make(map[string]*tasks.Task),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.machine = interaction.New(c, interaction.WithClock(func() time.Time { return c.now() }))

	if err := c.apply(*cfg); err != nil {
		return nil, err
	}
	c.rebuild()
	return c, nil
}

// apply installs cfg without laying anything out.
func (c *Chart) apply(cfg config.GanttConfig) error {
	mode, err := timescale.ParseViewMode(cfg.ViewMode)
	if err != nil {
		log.Printf("WARNING: %v, using %s", err, timescale.Day)
		mode = timescale.Day
	}

	var tmpl *template.Template
	if cfg.CustomPopupHTML != "" {
		tmpl, err = template.New("popup").Parse(cfg.CustomPopupHTML)
		if err != nil {
			return fmt.Errorf("parsing custom_popup_html: %w", err)
		}
	}

	c.cfg = cfg
	c.mode = mode
	c.tmpl = tmpl
	c.dims = geometry.NewDims(cfg)
	c.machine.SetEditMode(cfg.EditMode)
	return nil
}

// rebuild ingests the raw records and lays them out.
func (c *Chart) rebuild() {
	c.set = tasks.Build(c.inputs, c.projects, tasks.Options{
		Inline:     c.cfg.Inline,
		Projection: c.cfg.Projection,
		Now:        c.now(),
	})

	c.index = make(map[string]*tasks.Task, len(c.set.Tasks))
	for _, t := range c.set.Tasks {
		c.index[t.ID] = t
	}

	c.graph = depgraph.Build(c.set.Tasks)
	if _, err := c.graph.Validate(); err != nil {
		log.Printf("WARNING: %v; cascades visit each task once", err)
	}

	if _, ok := c.index[c.selected]; !ok {
		c.selected = ""
	}
	c.layout()
}

// layout computes the scale, every bar and every connector for the current
// tasks. Task dates are not touched.
func (c *Chart) layout() {
	from, to, ok := tasks.Range(c.set.Tasks)
	if !ok {
		from = timescale.StartOfDay(c.now())
		to = from.AddDate(0, 0, 1)
	}
	c.scale = timescale.Compute(c.mode, from, to, c.cfg.AvailableWidth, c.cfg.LeftWidth, c.cfg.ColumnWidth)

	c.bars = make(map[string]geometry.BarRect, len(c.set.Tasks))
	for _, t := range c.set.Tasks {
		c.bars[t.ID] = geometry.Layout(t, c.scale, t.Row, c.dims)
	}

	c.connectors = make(map[depgraph.Edge]geometry.Path)
	for _, e := range c.graph.Edges() {
		c.route(e)
	}

	c.machine.Rebind(c.scale, c.graph)
}

func (c *Chart) route(e depgraph.Edge) {
	from, ok1 := c.bars[e.From]
	to, ok2 := c.bars[e.To]
	if !ok1 || !ok2 {
		return
	}
	c.connectors[e] = geometry.Route(from, to, c.cfg.Arrow.Curve, c.cfg.Padding)
}

// Task returns the task with the given id.
func (c *Chart) Task(id string) (*tasks.Task, bool) {
	t, ok := c.index[id]
	return t, ok
}

// Bar returns the current rectangle of task id.
func (c *Chart) Bar(id string) (geometry.BarRect, bool) {
	b, ok := c.bars[id]
	return b, ok
}

// SetBar replaces the rectangle of task id and reroutes every connector
// touching it before returning.
func (c *Chart) SetBar(id string, bar geometry.BarRect) {
	if _, ok := c.bars[id]; !ok {
		return
	}
	c.bars[id] = bar

	for _, dep := range c.graph.Dependencies(id) {
		c.route(depgraph.Edge{From: dep, To: id})
	}
	for _, dep := range c.graph.Dependents(id) {
		c.route(depgraph.Edge{From: id, To: dep})
	}
}

func (c *Chart) publish(topic string, e events.Event) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(topic, e)
}
