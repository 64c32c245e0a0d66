package timescale

import (
	"strconv"
	"time"
)

// Tick is one header label pair for a date bucket. Upper is empty unless the
// bucket starts a new day, month or year, depending on the mode.
type Tick struct {
	Date   time.Time
	X      float64 // Left edge of the column
	LowerX float64
	Lower  string
	UpperX float64
	Upper  string
}

// Ticks returns header labels for every bucket.
func (s ViewScale) Ticks() []Tick {
	ticks := make([]Tick, 0, len(s.Buckets))
	cw := s.ColumnWidth

	for i, date := range s.Buckets {
		last := date
		if i > 0 {
			last = s.Buckets[i-1]
		}
		first := i == 0

		dayChanged := first || date.Day() != last.Day()
		monthChanged := first || date.Month() != last.Month()
		yearChanged := first || date.Year() != last.Year()

		x := s.LeftMargin + float64(i)*cw
		tick := Tick{Date: date, X: x, LowerX: x, UpperX: x}

		switch s.Mode {
		case QuarterDay:
			tick.Lower = date.Format("15")
			if dayChanged {
				tick.Upper = date.Format("2 Jan")
			}
			tick.UpperX = x + cw*4/2
		case HalfDay:
			tick.Lower = date.Format("15")
			if dayChanged {
				if monthChanged {
					tick.Upper = date.Format("2 Jan")
				} else {
					tick.Upper = strconv.Itoa(date.Day())
				}
			}
			tick.UpperX = x + cw*2/2
		case Day:
			if dayChanged {
				tick.Lower = strconv.Itoa(date.Day())
			}
			if monthChanged {
				tick.Upper = date.Format("January")
			}
			tick.LowerX = x + cw/2
			tick.UpperX = x + cw*30/2
		case Week:
			if monthChanged {
				tick.Lower = date.Format("2 Jan")
				tick.Upper = date.Format("January")
			} else {
				tick.Lower = strconv.Itoa(date.Day())
			}
			tick.UpperX = x + cw*4/2
		case Month:
			tick.Lower = date.Format("January")
			if yearChanged {
				tick.Upper = date.Format("2006")
			}
			tick.LowerX = x + cw/2
			tick.UpperX = x + cw*12/2
		}

		ticks = append(ticks, tick)
	}

	return ticks
}
