package timescale

import (
	"math"
	"time"
)

// ViewScale is the immutable result of Compute. It is rebuilt on every view
// mode change or refresh and never mutated while a drag session is active.
type ViewScale struct {
	Mode        ViewMode
	StepHours   float64
	ColumnWidth float64
	Start       time.Time
	End         time.Time
	Buckets     []time.Time
	LeftMargin  float64
}

// Compute builds the scale for mode over the task date range [from, to].
// A positive columnOverride replaces the mode's minimum column width.
func Compute(mode ViewMode, from, to time.Time, availableWidth, leftMargin, columnOverride float64) ViewScale {
	if !mode.Valid() {
		mode = Day
	}

	start, end := Bounds(mode, from, to)
	buckets := Buckets(mode, start, end)

	minWidth := mode.MinColumnWidth()
	if columnOverride > 0 {
		minWidth = columnOverride
	}
	columnWidth := minWidth
	if n := len(buckets); n > 0 {
		columnWidth = math.Max(minWidth, availableWidth/float64(n))
	}

	return ViewScale{
		Mode:        mode,
		StepHours:   mode.StepHours(),
		ColumnWidth: columnWidth,
		Start:       start,
		End:         end,
		Buckets:     buckets,
		LeftMargin:  leftMargin,
	}
}

// Bounds pads the task date range the way each mode displays it.
func Bounds(mode ViewMode, from, to time.Time) (time.Time, time.Time) {
	start := StartOfDay(from)
	end := StartOfDay(to)

	if mode == Month {
		start = StartOfMonth(start).AddDate(0, -1, 0)
		end = StartOfMonth(end).AddDate(0, 1, 0)
		return start, end
	}

	pad := catalogue[mode].paddingDays
	return start.AddDate(0, 0, -pad), end.AddDate(0, 0, pad)
}

// Buckets generates the column instants from start, advancing by the mode's
// step (one calendar month for Month) until the cursor reaches or passes end.
func Buckets(mode ViewMode, start, end time.Time) []time.Time {
	buckets := []time.Time{start}
	step := time.Duration(mode.StepHours() * float64(time.Hour))

	cur := start
	for cur.Before(end) {
		if mode == Month {
			cur = cur.AddDate(0, 1, 0)
		} else {
			cur = cur.Add(step)
		}
		buckets = append(buckets, cur)
	}
	return buckets
}

// Width returns the total pixel width of the columns.
func (s ViewScale) Width() float64 {
	return float64(len(s.Buckets)) * s.ColumnWidth
}

// Is reports whether the scale is in any of the given modes.
func (s ViewScale) Is(modes ...ViewMode) bool {
	for _, m := range modes {
		if s.Mode == m {
			return true
		}
	}
	return false
}

// HoursBetween returns the fractional hours from a to b.
func HoursBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours()
}

// DaysBetween returns the whole days from a to b, rounded toward negative infinity.
func DaysBetween(a, b time.Time) float64 {
	return math.Floor(b.Sub(a).Hours() / 24)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfMonth truncates t to the first day of its month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
