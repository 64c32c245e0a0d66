package tasks

import (
	"time"
)

// AddProjections inserts one synthetic projection bar per late project, directly
// after that project's last task. The bar runs from the day after the
// project's last date through its progress date (or today).
func AddProjections(projects []*Project, tasks []*Task, now time.Time) []*Task {
	late := make(map[string]*Task)
	for _, p := range projects {
		days := p.LateDays(now)
		if days <= 0 {
			continue
		}
		late[p.ID] = &Task{
			ID:          p.ID + "-projection",
			Name:        p.Name + " (late)",
			Start:       p.LastDate.AddDate(0, 0, 1),
			End:         p.LastDate.AddDate(0, 0, days),
			ProjectID:   p.ID,
			CustomClass: ProjectionClass,
			Synthetic:   true,
		}
	}
	if len(late) == 0 {
		return tasks
	}

	lastIndex := make(map[string]int)
	for i, t := range tasks {
		if _, ok := late[t.ProjectID]; ok {
			lastIndex[t.ProjectID] = i
		}
	}

	out := make([]*Task, 0, len(tasks)+len(late))
	for i, t := range tasks {
		out = append(out, t)
		if last, ok := lastIndex[t.ProjectID]; ok && last == i {
			out = append(out, late[t.ProjectID])
		}
	}

	for _, p := range projects {
		if bar, ok := late[p.ID]; ok {
			p.TaskIDs = append(p.TaskIDs, bar.ID)
		}
	}

	return out
}
