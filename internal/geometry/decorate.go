package geometry

import "unicode/utf8"

const (
	// HandleWidth is the width of the resize handles at each end of a bar.
	HandleWidth = 8
	labelGap    = 5
	triangleH   = 8.66
)

// Point is a pixel coordinate.
type Point struct {
	X, Y float64
}

// Decoration is everything drawn on top of a bar besides its rectangles.
type Decoration struct {
	LabelX       float64
	LabelY       float64
	LabelOutside bool // Label did not fit and sits to the right of the bar
	HandleLeft   BarRect
	HandleRight  BarRect
	Progress     [3]Point // Triangle marking the end of the progress rectangle
}

// EstimateTextWidth approximates the rendered width of text: the average
// glyph is about 0.6 of the font size.
func EstimateTextWidth(text string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize * 0.6
}

// Decorate computes label placement, resize handles and the progress handle
// for bar. A label wider than the bar is moved outside instead of overflowing.
func Decorate(bar BarRect, label string, fontSize float64) Decoration {
	d := Decoration{
		LabelX: bar.X + bar.Width/2,
		LabelY: bar.Y + bar.Height/2,
	}
	if EstimateTextWidth(label, fontSize) > bar.Width {
		d.LabelX = bar.Right() + labelGap
		d.LabelOutside = true
	}

	d.HandleLeft = BarRect{
		X:      bar.X + 1,
		Y:      bar.Y + 1,
		Width:  HandleWidth,
		Height: bar.Height - 2,
	}
	d.HandleRight = BarRect{
		X:      bar.Right() - HandleWidth - 1,
		Y:      bar.Y + 1,
		Width:  HandleWidth,
		Height: bar.Height - 2,
	}

	px := bar.X + bar.ProgressWidth
	bottom := bar.Y + bar.Height
	d.Progress = [3]Point{
		{X: px - 5, Y: bottom},
		{X: px + 5, Y: bottom},
		{X: px, Y: bottom - triangleH},
	}

	return d
}

// Handle identifies the part of a bar under the pointer.
type Handle int

const (
	HandleNone Handle = iota
	HandleBody
	HandleLeftEdge
	HandleRightEdge
	HandleProgress
)

func (h Handle) String() string {
	switch h {
	case HandleBody:
		return "body"
	case HandleLeftEdge:
		return "left"
	case HandleRightEdge:
		return "right"
	case HandleProgress:
		return "progress"
	default:
		return "none"
	}
}

// HitHandle reports which part of bar contains the point. The progress
// triangle wins over the edge handles, which win over the body.
func HitHandle(bar BarRect, x, y float64) Handle {
	d := Decorate(bar, "", 0)
	tri := d.Progress
	if y >= tri[2].Y && y <= tri[0].Y+1 && x >= tri[0].X && x <= tri[1].X {
		return HandleProgress
	}
	if !bar.Contains(x, y) {
		return HandleNone
	}
	if d.HandleLeft.Contains(x, y) {
		return HandleLeftEdge
	}
	if d.HandleRight.Contains(x, y) {
		return HandleRightEdge
	}
	return HandleBody
}
