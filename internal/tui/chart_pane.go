package tui

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/gantt/internal/gantt"
	"github.com/aristath/gantt/internal/geometry"
	"github.com/aristath/gantt/internal/tasks"
)

// cellsPerColumn is how many terminal cells one chart column spans.
const cellsPerColumn = 4

// headerLines is the number of date header lines above the first row.
const headerLines = 2

// cellKind selects the style of a rendered cell.
type cellKind int

const (
	cellPlain cellKind = iota
	cellSelected
	cellLate
	cellInvalid
	cellHeader
)

// drag tracks the pointer between press and release.
type drag struct {
	id     string
	pressX int // Terminal column of the press
	moved  bool
	active bool // The chart accepted the press as a drag session
}

// ChartPaneModel draws the chart in terminal cells and turns mouse input
// into chart pointer operations.
type ChartPaneModel struct {
	chart   *gantt.Chart
	scroll  int // First visible cell
	width   int
	height  int
	focused bool
	drag    *drag
}

// NewChartPaneModel creates a chart pane over c.
func NewChartPaneModel(c *gantt.Chart) ChartPaneModel {
	return ChartPaneModel{chart: c}
}

// pxPerCell converts terminal cells to chart pixels.
func (m ChartPaneModel) pxPerCell() float64 {
	return m.chart.Scale().ColumnWidth / cellsPerColumn
}

// cellsOf returns the absolute cell span [start, end) of a bar.
func (m ChartPaneModel) cellsOf(r geometry.BarRect) (int, int) {
	px := m.pxPerCell()
	start := int(math.Floor(r.X/px + 1e-9))
	end := int(math.Ceil(r.Right()/px - 1e-9))
	return start, max(end, start+1)
}

// Update handles messages for the chart pane.
func (m ChartPaneModel) Update(msg tea.Msg) (ChartPaneModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			break
		}
		switch msg.String() {
		case KeyLeft:
			m.scroll = max(0, m.scroll-cellsPerColumn)
		case KeyRight:
			m.scroll += cellsPerColumn
		}

	case tea.MouseMsg:
		// Content starts inside the border
		col, line := msg.X-1, msg.Y-1
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.press(col, line, msg.Ctrl)
			}
		case tea.MouseActionMotion:
			m.motion(col)
		case tea.MouseActionRelease:
			m.release()
		}
	}

	return m, nil
}

// press starts a drag on the bar under the cell. The first and last cell of
// a bar resize it, ctrl adjusts progress, anything else moves it.
func (m *ChartPaneModel) press(col, line int, ctrl bool) {
	row := line - headerLines
	if row < 0 || m.drag != nil {
		return
	}
	cell := col + m.scroll

	for _, bar := range m.chart.Bars() {
		if bar.Task.Row != row {
			continue
		}
		start, end := m.cellsOf(bar.Rect)
		if cell < start || cell >= end {
			continue
		}

		handle := geometry.HandleBody
		switch {
		case ctrl:
			handle = geometry.HandleProgress
		case end-start > 2 && cell == start:
			handle = geometry.HandleLeftEdge
		case end-start > 2 && cell == end-1:
			handle = geometry.HandleRightEdge
		}

		d := &drag{id: bar.Task.ID, pressX: col}
		if err := m.chart.PointerDown(bar.Task.ID, handle); err == nil {
			d.active = true
		}
		m.drag = d
		return
	}
}

func (m *ChartPaneModel) motion(col int) {
	if m.drag == nil || !m.drag.active {
		return
	}
	if col != m.drag.pressX {
		m.drag.moved = true
	}
	m.chart.PointerMove(float64(col-m.drag.pressX) * m.pxPerCell())
}

// release ends the drag and reports the click. A click right after a
// committed drag is swallowed by the chart's cooldown.
func (m *ChartPaneModel) release() {
	d := m.drag
	if d == nil {
		return
	}
	m.drag = nil

	if d.active {
		m.chart.PointerUp()
	}
	m.chart.Click(d.id)
}

// View renders the chart pane.
func (m ChartPaneModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	inner := max(1, m.width-2)
	lines := m.headerView(inner)

	rows := make(map[int][]gantt.Bar)
	for _, bar := range m.chart.Bars() {
		rows[bar.Task.Row] = append(rows[bar.Task.Row], bar)
	}
	for row := 0; row < m.chart.Rows(); row++ {
		lines = append(lines, m.rowView(rows[row], inner))
	}

	style := StyleUnfocusedBorder
	if m.focused {
		style = StyleFocusedBorder
	}

	return style.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(strings.Join(lines, "\n"))
}

// headerView renders the upper and lower date labels.
func (m ChartPaneModel) headerView(width int) []string {
	upper := newCanvas(width)
	lower := newCanvas(width)
	px := m.pxPerCell()

	for _, tick := range m.chart.Scale().Ticks() {
		x := int(tick.X/px) - m.scroll
		lower.write(x, tick.Lower, cellHeader)
		if tick.Upper != "" {
			upper.write(x, tick.Upper, cellHeader)
		}
	}
	return []string{upper.String(), lower.String()}
}

// rowView renders one chart row: each bar as a run of block characters, the
// progress part solid, followed by its name.
func (m ChartPaneModel) rowView(bars []gantt.Bar, width int) string {
	c := newCanvas(width)

	for _, bar := range bars {
		start, end := m.cellsOf(bar.Rect)
		done := start + int(math.Round(bar.Rect.ProgressWidth/m.pxPerCell()))

		kind := cellPlain
		fill := '▒'
		switch {
		case bar.Task.Invalid:
			kind, fill = cellInvalid, '░'
		case bar.Task.CustomClass == tasks.ProjectionClass:
			kind, fill = cellLate, '▓'
		}
		if bar.Selected {
			kind = cellSelected
		}

		for cell := start; cell < end; cell++ {
			r := fill
			if cell < done {
				r = '█'
			}
			c.set(cell-m.scroll, r, kind)
		}
		c.write(end-m.scroll+1, bar.Task.Name, kind)
	}
	return c.String()
}

// canvas is one line of styled cells.
type canvas struct {
	runes []rune
	kinds []cellKind
}

func newCanvas(width int) *canvas {
	c := &canvas{runes: make([]rune, width), kinds: make([]cellKind, width)}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c *canvas) set(x int, r rune, kind cellKind) {
	if x < 0 || x >= len(c.runes) {
		return
	}
	c.runes[x] = r
	c.kinds[x] = kind
}

func (c *canvas) write(x int, text string, kind cellKind) {
	for _, r := range text {
		c.set(x, r, kind)
		x++
	}
}

// String renders runs of equally styled cells.
func (c *canvas) String() string {
	var b strings.Builder
	for i := 0; i < len(c.runes); {
		j := i
		for j < len(c.runes) && c.kinds[j] == c.kinds[i] {
			j++
		}
		b.WriteString(styleFor(c.kinds[i]).Render(string(c.runes[i:j])))
		i = j
	}
	return b.String()
}

func styleFor(kind cellKind) lipgloss.Style {
	switch kind {
	case cellSelected:
		return StyleBarSelected
	case cellLate:
		return StyleBarLate
	case cellInvalid:
		return StyleBarInvalid
	case cellHeader:
		return StyleHeader
	default:
		return lipgloss.NewStyle()
	}
}

// SetSize updates the pane dimensions.
func (m *ChartPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused updates the focus state.
func (m *ChartPaneModel) SetFocused(focused bool) {
	m.focused = focused
}

// Dragging reports whether the pointer is held on a bar.
func (m ChartPaneModel) Dragging() bool {
	return m.drag != nil
}
