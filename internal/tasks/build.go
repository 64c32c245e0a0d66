package tasks

import (
	"time"
)

// Options controls a full layout pass over the raw records.
type Options struct {
	Inline     bool
	Projection bool
	Now        time.Time
}

// Set is the result of a pass: tasks in row-packing order and their projects.
type Set struct {
	Tasks    []*Task
	Projects []*Project
	Rows     int
}

// Build runs ingestion, project grouping, projection and row packing.
func Build(inputs []Input, projectInputs []ProjectInput, opts Options) Set {
	tasks := Ingest(inputs, opts.Now)
	projects := Group(NewProjects(projectInputs), tasks)

	if opts.Projection {
		tasks = AddProjections(projects, tasks, opts.Now)
	}

	rows := PackRows(tasks, opts.Inline)
	AssignRowSpans(projects, tasks)

	return Set{Tasks: tasks, Projects: projects, Rows: rows}
}

// Find returns the task with the given id.
func (s Set) Find(id string) (*Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}
