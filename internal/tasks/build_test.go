package tasks

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPackRows(t *testing.T) {
	tests := []struct {
		name     string
		inline   bool
		tasks    []*Task
		wantRows []int
	}{
		{
			name:   "one row per task when not inline",
			inline: false,
			tasks: []*Task{
				{ID: "a", ProjectID: "p", Start: day(2024, 1, 1), End: day(2024, 1, 2)},
				{ID: "b", ProjectID: "p", Start: day(2024, 1, 5), End: day(2024, 1, 6)},
			},
			wantRows: []int{0, 1},
		},
		{
			name:   "contiguous same project shares row",
			inline: true,
			tasks: []*Task{
				{ID: "a", ProjectID: "p", Start: day(2024, 1, 1), End: day(2024, 1, 2)},
				{ID: "b", ProjectID: "p", Start: day(2024, 1, 3), End: day(2024, 1, 4)},
				{ID: "c", ProjectID: "p", Start: day(2024, 1, 5), End: day(2024, 1, 6)},
			},
			wantRows: []int{0, 0, 0},
		},
		{
			name:   "overlap opens a new row",
			inline: true,
			tasks: []*Task{
				{ID: "a", ProjectID: "p", Start: day(2024, 1, 1), End: day(2024, 1, 3)},
				{ID: "b", ProjectID: "p", Start: day(2024, 1, 3), End: day(2024, 1, 4)},
			},
			wantRows: []int{0, 1},
		},
		{
			name:   "different project opens a new row",
			inline: true,
			tasks: []*Task{
				{ID: "a", ProjectID: "p", Start: day(2024, 1, 1), End: day(2024, 1, 2)},
				{ID: "b", ProjectID: "q", Start: day(2024, 1, 5), End: day(2024, 1, 6)},
			},
			wantRows: []int{0, 1},
		},
		{
			name:   "only the immediately preceding task is considered",
			inline: true,
			tasks: []*Task{
				{ID: "a", ProjectID: "p", Start: day(2024, 1, 1), End: day(2024, 1, 2)},
				{ID: "b", ProjectID: "p", Start: day(2024, 1, 1), End: day(2024, 1, 9)},
				{ID: "c", ProjectID: "p", Start: day(2024, 1, 10), End: day(2024, 1, 11)},
			},
			wantRows: []int{0, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := PackRows(tt.tasks, tt.inline)
			for i, task := range tt.tasks {
				if task.Row != tt.wantRows[i] {
					t.Errorf("task %s row = %d, want %d", task.ID, task.Row, tt.wantRows[i])
				}
			}
			if want := tt.wantRows[len(tt.wantRows)-1] + 1; rows != want {
				t.Errorf("rows = %d, want %d", rows, want)
			}
		})
	}
}

func TestBuildProjectRowSpans(t *testing.T) {
	set := Build([]Input{
		{ID: "a", ProjectID: "p", Start: "2024-01-01", End: "2024-01-02"},
		{ID: "b", ProjectID: "p", Start: "2024-01-01", End: "2024-01-02"},
		{ID: "c", ProjectID: "q", Start: "2024-01-01", End: "2024-01-02"},
		{ID: "d", Start: "2024-01-01", End: "2024-01-02"},
	}, []ProjectInput{{ID: "p", Name: "Platform"}}, Options{Inline: true, Now: testNow})

	if len(set.Projects) != 2 {
		t.Fatalf("projects = %d, want 2 (declared p, implicit q)", len(set.Projects))
	}

	p := set.Projects[0]
	if p.Name != "Platform" || p.FirstRow != 0 || p.LastRow != 1 || p.RowCount != 2 {
		t.Errorf("project p = %+v", p)
	}
	q := set.Projects[1]
	if q.ID != "q" || q.FirstRow != 2 || q.RowCount != 1 {
		t.Errorf("project q = %+v", q)
	}
	if set.Rows != 4 {
		t.Errorf("rows = %d, want 4", set.Rows)
	}
	if !p.LastDate.Equal(day(2024, 1, 2)) {
		t.Errorf("last date = %v, want 2024-01-02", p.LastDate)
	}
}

func TestProjectionScenario(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	inputs := []Input{
		{ID: "a", ProjectID: "p", Start: "2024-03-01", End: "2024-03-05"},
		{ID: "b", ProjectID: "p", Start: "2024-03-06", End: "2024-03-10"},
		{ID: "c", ProjectID: "r", Start: "2024-03-01", End: "2024-03-20"},
	}

	set := Build(inputs, []ProjectInput{{ID: "p", Name: "Payments"}, {ID: "r"}}, Options{Inline: true, Projection: true, Now: now})

	var late []*Task
	for _, task := range set.Tasks {
		if task.Synthetic {
			late = append(late, task)
		}
	}
	if len(late) != 1 {
		t.Fatalf("projection bars = %d, want 1", len(late))
	}

	bar := late[0]
	if bar.CustomClass != ProjectionClass {
		t.Errorf("class = %q, want %q", bar.CustomClass, ProjectionClass)
	}
	if !bar.Start.Equal(day(2024, 3, 11)) || !bar.End.Equal(day(2024, 3, 15)) {
		t.Errorf("projection spans %v..%v, want 03-11..03-15", bar.Start, bar.End)
	}
	if days := bar.ExclusiveEnd().Sub(bar.Start).Hours() / 24; days != 5 {
		t.Errorf("projection covers %v days, want 5", days)
	}

	// Inserted right after the project's last task
	if set.Tasks[2] != bar {
		t.Errorf("projection bar at wrong position: %v", set.Tasks[2].ID)
	}
	// Contiguous with b, so it shares b's row
	if bar.Row != set.Tasks[1].Row {
		t.Errorf("projection row = %d, want %d", bar.Row, set.Tasks[1].Row)
	}
	if got := set.Projects[0].TaskIDs; got[len(got)-1] != bar.ID {
		t.Errorf("project task ids = %v, want projection last", got)
	}
}

func TestProjectionUsesProgressDate(t *testing.T) {
	set := Build(
		[]Input{{ID: "a", ProjectID: "p", Start: "2024-03-01", End: "2024-03-05"}},
		[]ProjectInput{{ID: "p", ProgressDate: "2024-03-07"}},
		Options{Projection: true, Now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
	)

	if len(set.Tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(set.Tasks))
	}
	if got := set.Tasks[1].End; !got.Equal(day(2024, 3, 7)) {
		t.Errorf("projection end = %v, want progress date", got)
	}
}

func TestProjectionDisabled(t *testing.T) {
	set := Build(
		[]Input{{ID: "a", ProjectID: "p", Start: "2024-03-01", End: "2024-03-05"}},
		nil,
		Options{Projection: false, Now: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	)
	if len(set.Tasks) != 1 {
		t.Errorf("tasks = %d, want 1 when projection is off", len(set.Tasks))
	}
}

func TestRange(t *testing.T) {
	from, to, ok := Range([]*Task{
		{Start: day(2024, 1, 5), End: day(2024, 1, 6)},
		{Start: day(2024, 1, 2), End: day(2024, 1, 3)},
	})
	if !ok {
		t.Fatal("expected ok")
	}
	if !from.Equal(day(2024, 1, 2)) || !to.Equal(day(2024, 1, 7)) {
		t.Errorf("range = %v..%v", from, to)
	}

	if _, _, ok := Range(nil); ok {
		t.Error("empty range should not be ok")
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()

	yamlPath := filepath.Join(tmpDir, "plan.yaml")
	yamlDoc := `projects:
  - id: web
    name: Website
tasks:
  - id: design
    name: Design
    start: 2024-01-01
    end: 2024-01-03
    project_id: web
  - id: build
    name: Build
    start: 2024-01-04
    end: 2024-01-09
    dependencies: design
    project_id: web
  - name: Launch
    dependencies: [design, build]
`
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0644); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	f, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile yaml: %v", err)
	}
	if len(f.Projects) != 1 || len(f.Tasks) != 3 {
		t.Fatalf("got %d projects, %d tasks", len(f.Projects), len(f.Tasks))
	}
	if f.Tasks[0].Start != "2024-01-01" {
		t.Errorf("start = %q, want raw date text", f.Tasks[0].Start)
	}
	if got := f.Tasks[1].Dependencies; len(got) != 1 || got[0] != "design" {
		t.Errorf("build dependencies = %v", got)
	}
	if got := f.Tasks[2].Dependencies; len(got) != 2 {
		t.Errorf("launch dependencies = %v", got)
	}

	jsonPath := filepath.Join(tmpDir, "plan.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"id":"a","name":"A","start":"2024-01-01"}]`), 0644); err != nil {
		t.Fatalf("writing json: %v", err)
	}
	f, err = LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile json list: %v", err)
	}
	if len(f.Tasks) != 1 || f.Tasks[0].ID != "a" {
		t.Errorf("json list tasks = %+v", f.Tasks)
	}

	badPath := filepath.Join(tmpDir, "bad.json")
	if err := os.WriteFile(badPath, []byte(`{"tasks": [`), 0644); err != nil {
		t.Fatalf("writing bad json: %v", err)
	}
	if _, err := LoadFile(badPath); err == nil {
		t.Error("expected error for malformed json")
	}

	if _, err := LoadFile(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
