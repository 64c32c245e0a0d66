package tasks

import (
	"log"
	"strings"
	"time"
)

// ProjectionClass is the custom class carried by projection bars.
const ProjectionClass = "bar-late"

// Project groups tasks sharing a ProjectID.
type Project struct {
	ID           string
	Name         string
	ProgressDate time.Time // Zero means "now" when projecting lateness
	TaskIDs      []string
	FirstRow     int
	LastRow      int
	RowCount     int
	LastDate     time.Time // Latest end among the project's real tasks, truncated to the day
}

// NewProjects converts project records, in declaration order.
func NewProjects(inputs []ProjectInput) []*Project {
	projects := make([]*Project, 0, len(inputs))
	for _, in := range inputs {
		p := &Project{ID: in.ID, Name: in.Name}
		if p.Name == "" {
			p.Name = p.ID
		}
		if strings.TrimSpace(in.ProgressDate) != "" {
			d, err := ParseDate(in.ProgressDate)
			if err != nil {
				log.Printf("WARNING: project %q: ignoring progress_date: %v", in.ID, err)
			} else {
				p.ProgressDate = d
			}
		}
		projects = append(projects, p)
	}
	return projects
}

// Group attaches tasks to their projects. Project ids referenced by tasks but
// never declared get an implicit project appended in first-use order. Tasks
// without a project id are not grouped.
func Group(projects []*Project, tasks []*Task) []*Project {
	index := make(map[string]*Project, len(projects))
	for _, p := range projects {
		p.TaskIDs = nil
		p.LastDate = time.Time{}
		index[p.ID] = p
	}

	for _, t := range tasks {
		if t.ProjectID == "" {
			continue
		}
		p, ok := index[t.ProjectID]
		if !ok {
			p = &Project{ID: t.ProjectID, Name: t.ProjectID}
			index[p.ID] = p
			projects = append(projects, p)
		}
		p.TaskIDs = append(p.TaskIDs, t.ID)

		if t.Invalid || t.Synthetic {
			continue
		}
		if last := startOfDay(t.End); last.After(p.LastDate) {
			p.LastDate = last
		}
	}

	return projects
}

// AssignRowSpans derives FirstRow, LastRow and RowCount from task rows.
func AssignRowSpans(projects []*Project, tasks []*Task) {
	rows := make(map[string][]int)
	for _, t := range tasks {
		if t.ProjectID != "" {
			rows[t.ProjectID] = append(rows[t.ProjectID], t.Row)
		}
	}

	for _, p := range projects {
		r := rows[p.ID]
		if len(r) == 0 {
			p.FirstRow, p.LastRow, p.RowCount = 0, -1, 0
			continue
		}
		p.FirstRow, p.LastRow = r[0], r[0]
		for _, row := range r[1:] {
			p.FirstRow = min(p.FirstRow, row)
			p.LastRow = max(p.LastRow, row)
		}
		p.RowCount = p.LastRow - p.FirstRow + 1
	}
}

// LateDays returns how many whole days the project's last date trails its
// progress date (or now).
func (p *Project) LateDays(now time.Time) int {
	if p.LastDate.IsZero() {
		return 0
	}
	progress := p.ProgressDate
	if progress.IsZero() {
		progress = now
	}
	days := int(startOfDay(progress).Sub(p.LastDate).Hours() / 24)
	return max(days, 0)
}
