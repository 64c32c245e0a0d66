package geometry

import (
	"math"
	"time"

	"github.com/aristath/gantt/internal/timescale"
)

// ToDates maps a bar back onto calendar dates. The end is inclusive: one
// second before the instant the bar's right edge represents.
func ToDates(bar BarRect, scale timescale.ViewScale) (start, end time.Time) {
	xUnits := (bar.X - scale.LeftMargin) / scale.ColumnWidth
	start = scale.Start.Add(hours(xUnits * scale.StepHours)).Round(time.Second)

	widthUnits := bar.Width / scale.ColumnWidth
	end = start.Add(hours(widthUnits * scale.StepHours)).Round(time.Second).Add(-time.Second)
	return start, end
}

// ToProgress returns the percentage of the bar covered by its progress
// rectangle, truncated toward zero and clamped to [0, 100].
func ToProgress(bar BarRect) int {
	if bar.Width <= 0 {
		return 0
	}

	// The epsilon absorbs float error so 0.5*w/w*100 stays 50 and not 49.
	pct := int(math.Trunc(bar.ProgressWidth/bar.Width*100 + 1e-9))
	return max(0, min(100, pct))
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
