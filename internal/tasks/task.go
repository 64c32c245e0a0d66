// Package tasks holds the chart's task and project model: ingestion of raw
// task records, row packing, and synthetic projection bars.
package tasks

import (
	"time"
)

// Task is one bar on the chart.
type Task struct {
	ID           string
	Name         string
	Start        time.Time
	End          time.Time // Inclusive; a midnight value covers that whole day
	Progress     int       // 0-100
	Dependencies []string  // Task IDs this task depends on, in declaration order
	ProjectID    string
	CustomClass  string
	Invalid      bool // Both dates were absent at ingestion
	Synthetic    bool // Generated by the chart (projection bar), never editable
	Row          int
}

// ExclusiveEnd returns the first instant after the task. A date-only end
// (exact midnight) covers the whole day; any other end is an inclusive
// instant such as the 23:59:59 produced when a drag is committed.
func (t *Task) ExclusiveEnd() time.Time {
	return ExclusiveEnd(t.End)
}

// ExclusiveEnd applies the inclusive-end convention to a bare time.
func ExclusiveEnd(end time.Time) time.Time {
	h, m, s := end.Clock()
	if h == 0 && m == 0 && s == 0 && end.Nanosecond() == 0 {
		return end.Add(24 * time.Hour)
	}
	return end.Add(time.Second)
}

// Editable reports whether drag, resize and progress bindings may attach.
func (t *Task) Editable() bool {
	return !t.Invalid && !t.Synthetic
}

// Started reports whether work on the task has begun. Started tasks keep
// their dates fixed; only their progress may change.
func (t *Task) Started() bool {
	return t.Progress > 0
}

// HasDependency reports whether id is one of the task's dependencies.
func (t *Task) HasDependency(id string) bool {
	for _, dep := range t.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}

	cp := *t
	if t.Dependencies != nil {
		cp.Dependencies = append([]string(nil), t.Dependencies...)
	}
	return &cp
}

// Range returns the earliest start and latest exclusive end over tasks.
// ok is false when tasks is empty.
func Range(tasks []*Task) (from, to time.Time, ok bool) {
	for _, t := range tasks {
		end := t.ExclusiveEnd()
		if !ok || t.Start.Before(from) {
			from = t.Start
		}
		if !ok || end.After(to) {
			to = end
		}
		ok = true
	}
	return from, to, ok
}
