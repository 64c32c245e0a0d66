// Package geometry maps tasks onto pixel rectangles and back, and computes
// the decorations and connector paths drawn around them.
package geometry

import (
	"time"

	"github.com/aristath/gantt/internal/config"
	"github.com/aristath/gantt/internal/tasks"
	"github.com/aristath/gantt/internal/timescale"
)

// Dims holds the vertical metrics shared by every bar of a layout pass.
type Dims struct {
	HeaderHeight float64
	BarHeight    float64
	Padding      float64
}

// NewDims extracts the vertical metrics from cfg.
func NewDims(cfg config.GanttConfig) Dims {
	return Dims{
		HeaderHeight: cfg.HeaderHeight,
		BarHeight:    cfg.Bar.Height,
		Padding:      cfg.Padding,
	}
}

// RowY returns the top of the bar in row.
func (d Dims) RowY(row int) float64 {
	return d.HeaderHeight + d.Padding + float64(row)*(d.BarHeight+d.Padding)
}

// RowAt returns the row whose band (bar plus the padding above it) contains y,
// or -1 when y lies in the header.
func (d Dims) RowAt(y float64) int {
	band := d.BarHeight + d.Padding
	top := d.HeaderHeight + d.Padding/2
	if y < top || band <= 0 {
		return -1
	}
	return int((y - top) / band)
}

// BarRect is the pixel rectangle of one task.
type BarRect struct {
	X             float64
	Y             float64
	Width         float64
	Height        float64
	ProgressWidth float64
}

// Right returns the x of the bar's right edge.
func (b BarRect) Right() float64 {
	return b.X + b.Width
}

// Contains reports whether the point lies inside the bar.
func (b BarRect) Contains(x, y float64) bool {
	return x >= b.X && x <= b.Right() && y >= b.Y && y <= b.Y+b.Height
}

// Layout places task on scale in the given row. The width runs to the
// task's ExclusiveEnd, so only a midnight end gets the whole-day +24h; a
// committed 23:59:59 end gets +1s and relays out without drift.
func Layout(task *tasks.Task, scale timescale.ViewScale, row int, dims Dims) BarRect {
	x := X(task.Start, scale)
	width := scale.ColumnWidth * timescale.HoursBetween(task.Start, task.ExclusiveEnd()) / scale.StepHours

	var progressWidth float64
	if task.Progress > 0 {
		progressWidth = width * float64(task.Progress) / 100
	}

	return BarRect{
		X:             x,
		Y:             dims.RowY(row),
		Width:         width,
		Height:        dims.BarHeight,
		ProgressWidth: progressWidth,
	}
}

// X returns the pixel position of t on scale. Month mode works in whole days
// of one thirtieth of a column.
func X(t time.Time, scale timescale.ViewScale) float64 {
	if scale.Mode == timescale.Month {
		return timescale.DaysBetween(scale.Start, t)*scale.ColumnWidth/30 + scale.LeftMargin
	}
	return timescale.HoursBetween(scale.Start, t)/scale.StepHours*scale.ColumnWidth + scale.LeftMargin
}
