package interaction

import (
	"errors"
	"testing"
	"time"

	"github.com/aristath/gantt/internal/depgraph"
	"github.com/aristath/gantt/internal/geometry"
	"github.com/aristath/gantt/internal/tasks"
	"github.com/aristath/gantt/internal/timescale"
)

type board struct {
	tasks map[string]*tasks.Task
	bars  map[string]geometry.BarRect
}

func (b *board) Task(id string) (*tasks.Task, bool) {
	t, ok := b.tasks[id]
	return t, ok
}

func (b *board) Bar(id string) (geometry.BarRect, bool) {
	bar, ok := b.bars[id]
	return bar, ok
}

func (b *board) SetBar(id string, bar geometry.BarRect) {
	b.bars[id] = bar
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fixture lays out list in Day mode, one row per task, with column width 20.
func fixture(t *testing.T, list []*tasks.Task, opts ...Option) (*Machine, *board, timescale.ViewScale) {
	t.Helper()

	from, to, _ := tasks.Range(list)
	scale := timescale.Compute(timescale.Day, from, to, 0, 0, 20)
	dims := geometry.Dims{HeaderHeight: 50, BarHeight: 20, Padding: 18}

	b := &board{tasks: map[string]*tasks.Task{}, bars: map[string]geometry.BarRect{}}
	for i, task := range list {
		b.tasks[task.ID] = task
		b.bars[task.ID] = geometry.Layout(task, scale, i, dims)
	}

	m := New(b, opts...)
	m.Rebind(scale, depgraph.Build(list))
	return m, b, scale
}

func chain() []*tasks.Task {
	return []*tasks.Task{
		{ID: "A", Start: day("2024-01-10"), End: day("2024-01-12")},
		{ID: "B", Start: day("2024-01-13"), End: day("2024-01-14"), Dependencies: []string{"A"}},
		{ID: "C", Start: day("2024-01-15"), End: day("2024-01-15"), Dependencies: []string{"B"}},
	}
}

func TestMoveSnapsToColumns(t *testing.T) {
	m, b, scale := fixture(t, chain())
	cw := scale.ColumnWidth
	x0 := b.bars["A"].X

	if err := m.Begin(MovingBar, "A"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	m.Move(cw * 1.6)
	if got := b.bars["A"].X; got != x0+2*cw {
		t.Errorf("x = %v, want %v (snapped up to two columns)", got, x0+2*cw)
	}

	m.Move(cw * 1.4)
	if got := b.bars["A"].X; got != x0+cw {
		t.Errorf("x = %v, want %v (snapped down to one column)", got, x0+cw)
	}
}

func TestMoveCascadesToDependents(t *testing.T) {
	m, b, scale := fixture(t, chain())
	cw := scale.ColumnWidth
	before := map[string]float64{}
	for id, bar := range b.bars {
		before[id] = bar.X
	}

	if err := m.Begin(MovingBar, "A"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	changed := m.Move(3 * cw)
	if len(changed) != 3 {
		t.Fatalf("changed = %v, want A, B and C", changed)
	}
	for _, id := range []string{"A", "B", "C"} {
		if got := b.bars[id].X; got != before[id]+3*cw {
			t.Errorf("%s: x = %v, want %v", id, got, before[id]+3*cw)
		}
	}

	commits := m.End()
	if len(commits) != 3 {
		t.Fatalf("commits = %+v, want three", commits)
	}
	if got := b.tasks["C"].Start; !got.Equal(day("2024-01-18")) {
		t.Errorf("C start = %v, want 2024-01-18", got)
	}
	want := time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)
	if got := b.tasks["A"].End; !got.Equal(want) {
		t.Errorf("A end = %v, want %v", got, want)
	}
}

func TestMoveCascadesToStartedDependent(t *testing.T) {
	list := []*tasks.Task{
		{ID: "P", Start: day("2024-01-10"), End: day("2024-01-12")},
		{ID: "C", Start: day("2024-01-13"), End: day("2024-01-14"), Progress: 40, Dependencies: []string{"P"}},
	}
	m, b, scale := fixture(t, list)
	cw := scale.ColumnWidth
	p0, c0 := b.bars["P"].X, b.bars["C"].X

	if err := m.Begin(MovingBar, "P"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	m.Move(5 * cw)
	if got := b.bars["P"].X; got != p0+5*cw {
		t.Errorf("P x = %v, want %v", got, p0+5*cw)
	}
	if got := b.bars["C"].X; got != c0+5*cw {
		t.Errorf("started dependent x = %v, want %v", got, c0+5*cw)
	}
	if b.bars["C"].X < b.bars["P"].X {
		t.Error("dependent starts before its prerequisite")
	}

	commits := m.End()
	if len(commits) != 2 {
		t.Fatalf("commits = %+v, want P and C", commits)
	}
	if got := b.tasks["C"].Start; !got.Equal(day("2024-01-18")) {
		t.Errorf("C start = %v, want 2024-01-18", got)
	}
	if b.tasks["C"].Progress != 40 {
		t.Errorf("C progress = %d, want 40", b.tasks["C"].Progress)
	}
}

func TestMoveRejectedBeforeDependency(t *testing.T) {
	m, b, scale := fixture(t, chain())
	cw := scale.ColumnWidth
	depX := b.bars["A"].X
	x0 := b.bars["B"].X

	if err := m.Begin(MovingBar, "B"); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	m.Move(-2 * cw)
	if got := b.bars["B"].X; got != x0-2*cw {
		t.Fatalf("x = %v, want accepted move to %v", got, x0-2*cw)
	}

	// Four columns left would start B before A.
	if changed := m.Move(-4 * cw); changed != nil {
		t.Errorf("changed = %v, want rejected frame", changed)
	}
	if got := b.bars["B"].X; got != x0-2*cw || got < depX {
		t.Errorf("x = %v, want last accepted %v", got, x0-2*cw)
	}
	if m.State() != MovingBar {
		t.Errorf("session should continue after a rejected frame, state = %s", m.State())
	}
}

func TestMoveCascadeVisitsDiamondOnce(t *testing.T) {
	list := []*tasks.Task{
		{ID: "A", Start: day("2024-01-10"), End: day("2024-01-10")},
		{ID: "B", Start: day("2024-01-11"), End: day("2024-01-11"), Dependencies: []string{"A"}},
		{ID: "C", Start: day("2024-01-11"), End: day("2024-01-11"), Dependencies: []string{"A"}},
		{ID: "D", Start: day("2024-01-12"), End: day("2024-01-12"), Dependencies: []string{"B", "C"}},
	}
	m, b, scale := fixture(t, list)
	x0 := b.bars["D"].X

	if err := m.Begin(MovingBar, "A"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	changed := m.Move(scale.ColumnWidth)
	if len(changed) != 4 {
		t.Errorf("changed = %v, want each task once", changed)
	}
	if got := b.bars["D"].X; got != x0+scale.ColumnWidth {
		t.Errorf("D moved to %v, want one column", got)
	}
}

func TestMoveCycleTerminates(t *testing.T) {
	list := []*tasks.Task{
		{ID: "A", Start: day("2024-01-10"), End: day("2024-01-10"), Dependencies: []string{"B"}},
		{ID: "B", Start: day("2024-01-10"), End: day("2024-01-10"), Dependencies: []string{"A"}},
	}
	m, _, scale := fixture(t, list)

	if err := m.Begin(MovingBar, "A"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	// Moving right keeps both constraints satisfiable for A; B follows once.
	changed := m.Move(scale.ColumnWidth)
	if len(changed) > 2 {
		t.Errorf("changed = %v, cascade must visit each task at most once", changed)
	}
}

func TestResize(t *testing.T) {
	list := []*tasks.Task{{ID: "A", Start: day("2024-01-10"), End: day("2024-01-12")}}

	t.Run("right grows", func(t *testing.T) {
		m, b, scale := fixture(t, list)
		w0 := b.bars["A"].Width
		_ = m.Begin(ResizingRight, "A")
		m.Move(scale.ColumnWidth)
		if got := b.bars["A"].Width; got != w0+scale.ColumnWidth {
			t.Errorf("width = %v, want %v", got, w0+scale.ColumnWidth)
		}
		commits := m.End()
		if len(commits) != 1 || !commits[0].End.Equal(time.Date(2024, 1, 13, 23, 59, 59, 0, time.UTC)) {
			t.Errorf("commits = %+v", commits)
		}
	})

	t.Run("left below one column rejected", func(t *testing.T) {
		m, b, scale := fixture(t, []*tasks.Task{{ID: "A", Start: day("2024-01-10"), End: day("2024-01-12")}})
		orig := b.bars["A"]
		_ = m.Begin(ResizingLeft, "A")
		if changed := m.Move(3 * scale.ColumnWidth); changed != nil {
			t.Errorf("changed = %v, want rejection", changed)
		}
		if b.bars["A"] != orig {
			t.Errorf("bar = %+v, want unchanged %+v", b.bars["A"], orig)
		}

		m.Move(2 * scale.ColumnWidth)
		if got := b.bars["A"]; got.Width != scale.ColumnWidth || got.X != orig.X+2*scale.ColumnWidth {
			t.Errorf("bar = %+v, want one column at the right edge", got)
		}
	})

	t.Run("resize does not cascade", func(t *testing.T) {
		m, b, scale := fixture(t, chain())
		x0 := b.bars["B"].X
		_ = m.Begin(ResizingRight, "A")
		if changed := m.Move(scale.ColumnWidth); len(changed) != 1 {
			t.Errorf("changed = %v, want only A", changed)
		}
		if b.bars["B"].X != x0 {
			t.Error("dependent moved during resize")
		}
	})

	t.Run("left edge held behind dependency", func(t *testing.T) {
		m, b, scale := fixture(t, chain())
		cw := scale.ColumnWidth
		orig, ax := b.bars["B"], b.bars["A"].X
		_ = m.Begin(ResizingLeft, "B")

		if changed := m.Move(-4 * cw); changed != nil {
			t.Errorf("changed = %v, want rejection before A starts", changed)
		}
		if b.bars["B"] != orig {
			t.Errorf("bar = %+v, want unchanged %+v", b.bars["B"], orig)
		}

		m.Move(-3 * cw)
		if got := b.bars["B"]; got.X != ax || got.Width != orig.Width+3*cw {
			t.Errorf("bar = %+v, want left edge at A's start %v", got, ax)
		}
	})
}

func TestProgressClamped(t *testing.T) {
	list := []*tasks.Task{{ID: "A", Start: day("2024-01-10"), End: day("2024-01-19"), Progress: 20}}
	m, b, _ := fixture(t, list)
	w := b.bars["A"].Width

	if err := m.Begin(AdjustingProgress, "A"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	m.Move(10 * w)
	if got := b.bars["A"].ProgressWidth; got != w {
		t.Errorf("progress width = %v, want clamped to %v", got, w)
	}
	m.Move(-10 * w)
	if got := b.bars["A"].ProgressWidth; got != 0 {
		t.Errorf("progress width = %v, want clamped to 0", got)
	}
	m.Move(0.3 * w)

	commits := m.End()
	if len(commits) != 1 || commits[0].Kind != CommitProgress || commits[0].Progress != 50 {
		t.Fatalf("commits = %+v, want progress 50", commits)
	}
	if b.tasks["A"].Progress != 50 {
		t.Errorf("task progress = %d, want 50", b.tasks["A"].Progress)
	}
}

func TestBeginRefusals(t *testing.T) {
	list := []*tasks.Task{
		{ID: "ok", Start: day("2024-01-10"), End: day("2024-01-12")},
		{ID: "started", Start: day("2024-01-10"), End: day("2024-01-12"), Progress: 10},
		{ID: "invalid", Start: day("2024-01-10"), End: day("2024-01-12"), Invalid: true},
		{ID: "late", Start: day("2024-01-10"), End: day("2024-01-12"), Synthetic: true},
	}

	tests := []struct {
		name  string
		state State
		id    string
		want  error
	}{
		{"unknown", MovingBar, "ghost", ErrUnknownTask},
		{"invalid", AdjustingProgress, "invalid", ErrTaskInvalid},
		{"synthetic", ResizingRight, "late", ErrSyntheticTask},
		{"started move", MovingBar, "started", ErrTaskStarted},
		{"started resize", ResizingLeft, "started", ErrTaskStarted},
		{"started progress", AdjustingProgress, "started", nil},
		{"plain move", MovingBar, "ok", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := fixture(t, list)
			err := m.Begin(tt.state, tt.id)
			if !errors.Is(err, tt.want) {
				t.Errorf("Begin() = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("second session", func(t *testing.T) {
		m, _, _ := fixture(t, list)
		_ = m.Begin(MovingBar, "ok")
		if err := m.Begin(MovingBar, "ok"); !errors.Is(err, ErrSessionActive) {
			t.Errorf("Begin() = %v, want ErrSessionActive", err)
		}
	})

	t.Run("edit mode off", func(t *testing.T) {
		m, _, _ := fixture(t, list)
		m.SetEditMode(false)
		if err := m.Begin(MovingBar, "ok"); !errors.Is(err, ErrEditingDisabled) {
			t.Errorf("Begin() = %v, want ErrEditingDisabled", err)
		}
	})
}

func TestEndWithoutDeltaIsNoop(t *testing.T) {
	m, b, _ := fixture(t, chain())
	start := b.tasks["A"].Start

	_ = m.Begin(MovingBar, "A")
	m.Move(2) // snaps to zero
	if commits := m.End(); commits != nil {
		t.Errorf("commits = %+v, want none", commits)
	}
	if !b.tasks["A"].Start.Equal(start) {
		t.Error("task changed without a net delta")
	}
	if m.ActionCompleted() {
		t.Error("cooldown should not start without a commit")
	}
}

func TestCooldown(t *testing.T) {
	now := day("2024-01-01")
	m, _, scale := fixture(t, chain(), WithClock(func() time.Time { return now }))

	_ = m.Begin(MovingBar, "C")
	m.Move(scale.ColumnWidth)
	if len(m.End()) == 0 {
		t.Fatal("expected a commit")
	}

	if !m.ActionCompleted() {
		t.Error("cooldown should hold right after a commit")
	}
	now = now.Add(1999 * time.Millisecond)
	if !m.ActionCompleted() {
		t.Error("cooldown should hold before two seconds")
	}
	now = now.Add(time.Millisecond)
	if m.ActionCompleted() {
		t.Error("cooldown should clear after two seconds")
	}
}

func TestCancelRestores(t *testing.T) {
	m, b, scale := fixture(t, chain())
	orig := map[string]geometry.BarRect{}
	for id, bar := range b.bars {
		orig[id] = bar
	}

	if err := m.Cancel(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Cancel() idle = %v, want ErrNoSession", err)
	}

	_ = m.Begin(MovingBar, "A")
	m.Move(2 * scale.ColumnWidth)
	if err := m.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	for id, bar := range orig {
		if b.bars[id] != bar {
			t.Errorf("%s = %+v, want restored %+v", id, b.bars[id], bar)
		}
	}
	if m.State() != Idle {
		t.Errorf("state = %s, want idle", m.State())
	}
}
