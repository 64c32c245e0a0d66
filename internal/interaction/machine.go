package interaction

import (
	"fmt"
	"time"

	"github.com/aristath/gantt/internal/depgraph"
	"github.com/aristath/gantt/internal/geometry"
	"github.com/aristath/gantt/internal/tasks"
	"github.com/aristath/gantt/internal/timescale"
)

// Board is the registry the machine edits: tasks and their bars by id.
type Board interface {
	Task(id string) (*tasks.Task, bool)
	Bar(id string) (geometry.BarRect, bool)
	SetBar(id string, bar geometry.BarRect)
}

// session is the context of one drag, from pointer-down to pointer-up.
type session struct {
	state    State
	id       string
	origin   map[string]geometry.BarRect // Bars as they were at Begin
	cascade  []string                    // Transitive dependents, topological order
	minDx    float64
	maxDx    float64
	accepted bool // At least one frame changed geometry
}

// Machine runs at most one session at a time. It is not safe for concurrent
// use; hosts call it from their UI loop.
type Machine struct {
	board       Board
	scale       timescale.ViewScale
	graph       *depgraph.Graph
	editMode    bool
	now         func() time.Time
	completedAt time.Time

	sess *session
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock replaces time.Now for the cooldown.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// New creates an idle machine editing board.
func New(board Board, opts ...Option) *Machine {
	m := &Machine{
		board:    board,
		graph:    depgraph.Build(nil),
		editMode: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Rebind installs the scale and dependency graph of a new layout pass.
// An active session is cancelled first.
func (m *Machine) Rebind(scale timescale.ViewScale, graph *depgraph.Graph) {
	if m.sess != nil {
		_ = m.Cancel()
	}
	m.scale = scale
	m.graph = graph
}

// SetEditMode enables or disables the date bindings. Progress adjustment is
// governed by the same switch.
func (m *Machine) SetEditMode(on bool) {
	m.editMode = on
}

// State returns the current phase.
func (m *Machine) State() State {
	if m.sess == nil {
		return Idle
	}
	return m.sess.state
}

// Active returns the id of the bar being dragged, or "".
func (m *Machine) Active() string {
	if m.sess == nil {
		return ""
	}
	return m.sess.id
}

// Begin starts a session on task id.
func (m *Machine) Begin(state State, id string) error {
	if m.sess != nil {
		return ErrSessionActive
	}
	if state == Idle || state > AdjustingProgress {
		return fmt.Errorf("interaction: cannot begin in state %s", state)
	}
	if !m.editMode {
		return ErrEditingDisabled
	}

	task, ok := m.board.Task(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTask, id)
	}
	bar, ok := m.board.Bar(id)
	if !ok {
		return fmt.Errorf("%w: %q has no bar", ErrUnknownTask, id)
	}
	switch {
	case task.Invalid:
		return ErrTaskInvalid
	case task.Synthetic:
		return ErrSyntheticTask
	case state != AdjustingProgress && task.Started():
		return ErrTaskStarted
	}

	s := &session{
		state:  state,
		id:     id,
		origin: map[string]geometry.BarRect{id: bar},
	}

	switch state {
	case MovingBar:
		s.cascade = m.graph.Order(m.graph.Closure(id))
		for _, dep := range s.cascade {
			if b, ok := m.board.Bar(dep); ok {
				s.origin[dep] = b
			}
		}
	case AdjustingProgress:
		s.minDx = -bar.ProgressWidth
		s.maxDx = bar.Width - bar.ProgressWidth
	}

	m.sess = s
	return nil
}

// Move applies the pointer delta dx, measured from where the session began.
// It returns the ids whose geometry changed in this frame; a rejected frame
// returns nil and leaves every bar at its last accepted position.
func (m *Machine) Move(dx float64) []string {
	s := m.sess
	if s == nil {
		return nil
	}

	var changed []string
	switch s.state {
	case MovingBar:
		changed = m.moveBars(s, m.scale.Snap(dx))
	case ResizingLeft, ResizingRight:
		if m.resize(s, m.scale.Snap(dx)) {
			changed = []string{s.id}
		}
	case AdjustingProgress:
		orig := s.origin[s.id]
		bar, _ := m.board.Bar(s.id)
		bar.ProgressWidth = orig.ProgressWidth + max(s.minDx, min(s.maxDx, dx))
		m.board.SetBar(s.id, bar)
		changed = []string{s.id}
	}

	if len(changed) > 0 {
		s.accepted = true
	}
	return changed
}

// moveBars shifts the session bar and cascades the same delta through its
// dependents. A dependent moves only when one of its dependencies moved in
// this frame and its own constraint still holds.
func (m *Machine) moveBars(s *session, dx float64) []string {
	if !m.place(s.id, s.origin[s.id].X+dx) {
		return nil
	}

	moved := map[string]bool{s.id: true}
	changed := []string{s.id}
	for _, id := range s.cascade {
		orig, ok := s.origin[id]
		if !ok || !m.follows(id) {
			continue
		}
		pulled := false
		for _, dep := range m.graph.Dependencies(id) {
			if moved[dep] {
				pulled = true
				break
			}
		}
		if !pulled {
			continue
		}
		if m.place(id, orig.X+dx) {
			moved[id] = true
			changed = append(changed, id)
		}
	}
	return changed
}

// follows reports whether a dependent may be dragged along by a cascade.
// Started dependents follow too: the progress gate only refuses drags that
// begin on the task itself.
func (m *Machine) follows(id string) bool {
	t, ok := m.board.Task(id)
	return ok && t.Editable()
}

// place moves bar id to x unless that would start it before any of its
// dependencies' bars.
func (m *Machine) place(id string, x float64) bool {
	if !m.startAllowed(id, x) {
		return false
	}
	bar, _ := m.board.Bar(id)
	if bar.X == x {
		return true
	}
	bar.X = x
	m.board.SetBar(id, bar)
	return true
}

// startAllowed compares x against the current x of every dependency.
func (m *Machine) startAllowed(id string, x float64) bool {
	for _, dep := range m.graph.Dependencies(id) {
		if b, ok := m.board.Bar(dep); ok && x < b.X {
			return false
		}
	}
	return true
}

// resize applies an edge drag; widths below one column are rejected whole.
// A left edge is held to the same start-vs-start rule as a moved bar, so
// resizing can never start a task before one of its dependencies.
func (m *Machine) resize(s *session, dx float64) bool {
	orig := s.origin[s.id]
	bar, _ := m.board.Bar(s.id)

	x, width := orig.X, orig.Width+dx
	if s.state == ResizingLeft {
		x, width = orig.X+dx, orig.Width-dx
		if !m.startAllowed(s.id, x) {
			return false
		}
	}
	if width < m.scale.ColumnWidth {
		return false
	}

	bar.X = x
	bar.Width = width
	if t, ok := m.board.Task(s.id); ok {
		bar.ProgressWidth = width * float64(t.Progress) / 100
	}
	m.board.SetBar(s.id, bar)
	return true
}

// End finishes the session. Bars whose geometry differs from the snapshot
// are committed back into their tasks; the cooldown starts when anything
// was committed.
func (m *Machine) End() []Commit {
	s := m.sess
	if s == nil {
		return nil
	}
	m.sess = nil
	if !s.accepted {
		return nil
	}

	var commits []Commit
	if s.state == AdjustingProgress {
		if c, ok := m.commitProgress(s); ok {
			commits = append(commits, c)
		}
	} else {
		ids := []string{s.id}
		if s.state == MovingBar {
			ids = append(ids, s.cascade...)
		}
		for _, id := range ids {
			if c, ok := m.commitDates(s, id); ok {
				commits = append(commits, c)
			}
		}
	}

	if len(commits) > 0 {
		m.completedAt = m.now()
	}
	return commits
}

func (m *Machine) commitDates(s *session, id string) (Commit, bool) {
	orig, ok := s.origin[id]
	if !ok {
		return Commit{}, false
	}
	bar, _ := m.board.Bar(id)
	if bar.X == orig.X && bar.Width == orig.Width {
		return Commit{}, false
	}
	task, ok := m.board.Task(id)
	if !ok {
		return Commit{}, false
	}

	task.Start, task.End = geometry.ToDates(bar, m.scale)
	return Commit{ID: id, Kind: CommitDates, Start: task.Start, End: task.End}, true
}

func (m *Machine) commitProgress(s *session) (Commit, bool) {
	bar, _ := m.board.Bar(s.id)
	if bar.ProgressWidth == s.origin[s.id].ProgressWidth {
		return Commit{}, false
	}
	task, ok := m.board.Task(s.id)
	if !ok {
		return Commit{}, false
	}

	task.Progress = geometry.ToProgress(bar)
	return Commit{ID: s.id, Kind: CommitProgress, Progress: task.Progress}, true
}

// Cancel restores every bar of the session to its snapshot.
func (m *Machine) Cancel() error {
	s := m.sess
	if s == nil {
		return ErrNoSession
	}
	m.sess = nil
	for id, bar := range s.origin {
		m.board.SetBar(id, bar)
	}
	return nil
}

// ActionCompleted reports whether a session committed within the cooldown.
// A click arriving while it holds is the tail of a drag and is dropped.
func (m *Machine) ActionCompleted() bool {
	if m.completedAt.IsZero() {
		return false
	}
	return m.now().Sub(m.completedAt) < Cooldown
}
