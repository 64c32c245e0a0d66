package geometry

import (
	"math"
	"strconv"
	"strings"
)

// Command is one SVG path command with its arguments.
type Command struct {
	Op   byte
	Args []float64
}

// Path is a routed connector between two bars.
type Path struct {
	Start    Point
	End      Point
	Detour   bool // The target starts before the source ends, so the path loops around
	Commands []Command
}

// Route connects from's right edge to to's left edge with orthogonal segments
// whose corners are arcs of radius curve. When to starts less than padding
// after from ends, the path leaves from, drops into the gap between rows and
// comes back to to from the left.
func Route(from, to BarRect, curve, padding float64) Path {
	start := Point{X: from.Right(), Y: from.Y + from.Height/2}
	end := Point{X: to.X, Y: to.Y + to.Height/2}
	approachX := to.X - padding/2

	var points []Point
	detour := to.X < from.Right()+padding
	if !detour {
		points = []Point{start, {approachX, start.Y}, {approachX, end.Y}, end}
	} else {
		exitX := start.X + padding/2
		gapY := from.Y + from.Height + padding/2
		if to.Y < from.Y {
			gapY = from.Y - padding/2
		}
		points = []Point{
			start,
			{exitX, start.Y},
			{exitX, gapY},
			{approachX, gapY},
			{approachX, end.Y},
			end,
		}
	}

	return Path{
		Start:    start,
		End:      end,
		Detour:   detour,
		Commands: rounded(simplify(points), curve),
	}
}

// simplify drops repeated points and interior points on a straight line.
func simplify(points []Point) []Point {
	var out []Point
	for _, p := range points {
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		if n := len(out); n >= 2 {
			a, b := out[n-2], out[n-1]
			if (a.X == b.X && b.X == p.X) || (a.Y == b.Y && b.Y == p.Y) {
				out[n-1] = p
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// rounded turns an orthogonal polyline into move, line and arc commands.
// The radius at each corner shrinks to half the shorter adjoining segment.
func rounded(points []Point, radius float64) []Command {
	if len(points) == 0 {
		return nil
	}

	cmds := []Command{{Op: 'M', Args: []float64{points[0].X, points[0].Y}}}
	for i := 1; i < len(points)-1; i++ {
		prev, corner, next := points[i-1], points[i], points[i+1]
		in := unit(prev, corner)
		out := unit(corner, next)
		r := math.Min(radius, math.Min(dist(prev, corner), dist(corner, next))/2)

		cmds = append(cmds, Command{Op: 'L', Args: []float64{corner.X - in.X*r, corner.Y - in.Y*r}})
		if r <= 0 {
			continue
		}
		sweep := 0.0
		if in.X*out.Y-in.Y*out.X > 0 {
			sweep = 1
		}
		cmds = append(cmds, Command{Op: 'a', Args: []float64{r, r, 0, 0, sweep, (in.X + out.X) * r, (in.Y + out.Y) * r}})
	}
	last := points[len(points)-1]
	cmds = append(cmds, Command{Op: 'L', Args: []float64{last.X, last.Y}})
	return cmds
}

func unit(a, b Point) Point {
	d := dist(a, b)
	if d == 0 {
		return Point{}
	}
	return Point{X: (b.X - a.X) / d, Y: (b.Y - a.Y) / d}
}

func dist(a, b Point) float64 {
	return math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y)
}

// String returns SVG path data followed by an arrowhead at the end point.
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p.Commands {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c.Op)
		for j, a := range c.Args {
			if j > 0 {
				b.WriteByte(',')
			} else {
				b.WriteByte(' ')
			}
			b.WriteString(num(a))
		}
	}
	if len(p.Commands) > 0 {
		b.WriteString(" m -5,-5 l 5,5 l -5,5")
	}
	return b.String()
}

func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // normalizes -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
