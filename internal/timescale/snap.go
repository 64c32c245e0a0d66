package timescale

import "math"

// SubUnit returns the drag granularity in pixels: a column for the day based
// modes, a day for Week and Month.
func (s ViewScale) SubUnit() float64 {
	switch s.Mode {
	case Week:
		return s.ColumnWidth / 7
	case Month:
		return s.ColumnWidth / 30
	default:
		return s.ColumnWidth
	}
}

// Snap rounds a drag delta to the nearest sub-unit boundary. The remainder is
// taken against the floor so leftward drags round the same way as rightward
// ones; a remainder of half a sub-unit or more snaps up.
func (s ViewScale) Snap(dx float64) float64 {
	unit := s.SubUnit()
	if unit <= 0 {
		return dx
	}

	q := math.Floor(dx / unit)
	rem := dx - q*unit
	if rem >= unit/2 {
		q++
	}
	return q * unit
}
