package tasks

import (
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// placeholderSpan is the span given to a task missing one or both dates.
const placeholderSpan = 2 * 24 * time.Hour

// Ingest converts raw records into tasks. It never fails: missing ids are
// generated, unparsable dates count as absent, a task with neither date is
// flagged invalid and given a two-day placeholder starting today.
func Ingest(inputs []Input, now time.Time) []*Task {
	today := startOfDay(now)
	out := make([]*Task, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))

	for _, in := range inputs {
		t := &Task{
			ID:           strings.TrimSpace(in.ID),
			Name:         in.Name,
			Progress:     clampProgress(in.Progress),
			Dependencies: normalizeDependencies(in.Dependencies),
			ProjectID:    in.ProjectID,
			CustomClass:  in.CustomClass,
		}

		if t.ID == "" {
			t.ID = GenerateID(in.Name)
		} else if seen[t.ID] {
			id := GenerateID(t.ID)
			log.Printf("WARNING: duplicate task id %q renamed to %q", t.ID, id)
			t.ID = id
		}
		seen[t.ID] = true

		start, hasStart := parseOptional(t.ID, "start", in.Start)
		end, hasEnd := parseOptional(t.ID, "end", in.End)

		switch {
		case !hasStart && !hasEnd:
			t.Invalid = true
			start = today
			end = today.Add(placeholderSpan)
		case !hasStart:
			start = end.Add(-placeholderSpan)
		case !hasEnd:
			end = start.Add(placeholderSpan)
		}

		if end.Before(start) {
			log.Printf("WARNING: task %q ends before it starts, swapping dates", t.ID)
			start, end = end, start
		}

		t.Start = start
		t.End = end
		out = append(out, t)
	}

	return out
}

// AssignIDs gives every record a unique id in place: blank ids are
// generated from the name and repeated ids are renamed. Callers that keep
// the records run this once so the ids stay stable across rebuilds.
func AssignIDs(inputs []Input) {
	seen := make(map[string]bool, len(inputs))
	for i := range inputs {
		id := strings.TrimSpace(inputs[i].ID)
		switch {
		case id == "":
			id = GenerateID(inputs[i].Name)
		case seen[id]:
			renamed := GenerateID(id)
			log.Printf("WARNING: duplicate task id %q renamed to %q", id, renamed)
			id = renamed
		}
		seen[id] = true
		inputs[i].ID = id
	}
}

// GenerateID derives an id from a task name plus a random suffix.
func GenerateID(name string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return name + "_" + suffix
}

func parseOptional(id, field, value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	t, err := ParseDate(value)
	if err != nil {
		log.Printf("WARNING: task %q: ignoring %s: %v", id, field, err)
		return time.Time{}, false
	}
	return t, true
}

func clampProgress(p float64) int {
	if math.IsNaN(p) || p <= 0 {
		return 0
	}
	if p >= 100 {
		return 100
	}
	return int(p)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
