package gantt

import (
	"fmt"
	"math"
	"strings"

	"github.com/aristath/gantt/internal/tasks"
)

// popupData is what custom_popup_html templates see.
type popupData struct {
	Task     *tasks.Task
	Name     string
	Start    string
	End      string
	Duration int // Days covered, inclusive
	Progress int
	Late     bool
}

// Popup renders the popup body for task id: the popup function if one was
// given, else custom_popup_html, else a plain summary.
func (c *Chart) Popup(id string) (string, error) {
	t, ok := c.index[id]
	if !ok {
		return "", fmt.Errorf("task %q not found", id)
	}
	if c.popup != nil {
		return c.popup(t.Clone()), nil
	}

	data := popupData{
		Task:     t.Clone(),
		Name:     t.Name,
		Start:    t.Start.Format(c.cfg.DateFormat),
		End:      t.End.Format(c.cfg.DateFormat),
		Duration: int(math.Round(t.ExclusiveEnd().Sub(t.Start).Hours() / 24)),
		Progress: t.Progress,
		Late:     t.CustomClass == tasks.ProjectionClass,
	}

	if c.tmpl != nil {
		var b strings.Builder
		if err := c.tmpl.Execute(&b, data); err != nil {
			return "", fmt.Errorf("rendering popup for %q: %w", id, err)
		}
		return b.String(), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", data.Name)
	fmt.Fprintf(&b, "%s - %s\n", data.Start, data.End)
	fmt.Fprintf(&b, "Duration: %d days\n", data.Duration)
	if data.Late {
		fmt.Fprintf(&b, "Late: %d days\n", data.Duration)
	} else {
		fmt.Fprintf(&b, "Progress: %d%%\n", data.Progress)
	}
	if t.Invalid {
		b.WriteString("No dates set\n")
	}
	return b.String(), nil
}
