// Package render draws a chart as an SVG document.
package render

import (
	"fmt"
	"strings"

	"github.com/aristath/gantt/internal/gantt"
)

const style = `.grid-background{fill:#fff}
.grid-row{fill:#fff}
.grid-row:nth-child(even){fill:#f5f5f5}
.row-line{stroke:#ebeff2}
.tick{stroke:#e0e0e0;stroke-width:.2}
.tick.thick{stroke-width:.4}
.lower-text,.upper-text{font-size:12px;text-anchor:middle;fill:#555}
.upper-text{fill:#333}
.arrow{fill:none;stroke:#666;stroke-width:1.4}
.bar{fill:#b8c2cc;stroke:#8d99a6;stroke-width:0}
.bar-progress{fill:#a3a3ff}
.bar-invalid .bar{fill:transparent;stroke:#8d99a6;stroke-width:1;stroke-dasharray:5}
.bar-late .bar{fill:#f5a623}
.bar-wrapper.active .bar{fill:#a9b5c1}
.bar-label{fill:#fff;dominant-baseline:central;text-anchor:middle;font-size:12px}
.bar-label.big{fill:#555;text-anchor:start}
.handle{fill:#ddd;cursor:ew-resize}
.progress-handle{fill:#ddd}`

// SVG returns the chart as a standalone SVG document.
func SVG(c *gantt.Chart) string {
	var svg strings.Builder

	width, height := c.Width(), c.Height()
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" class="gantt">
<style>%s</style>
`, num(width), num(height), num(width), num(height), style))

	drawGrid(&svg, c)
	drawHeader(&svg, c)
	drawArrows(&svg, c)
	drawBars(&svg, c)

	svg.WriteString("</svg>\n")
	return svg.String()
}

func drawGrid(svg *strings.Builder, c *gantt.Chart) {
	width, height := c.Width(), c.Height()
	dims := c.Dims()

	svg.WriteString(`<g class="grid">`)
	svg.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%s" height="%s" class="grid-background"/>`, num(width), num(height)))

	for row := 0; row < c.Rows(); row++ {
		y := dims.HeaderHeight + dims.Padding/2 + float64(row)*(dims.BarHeight+dims.Padding)
		svg.WriteString(fmt.Sprintf(`<rect x="0" y="%s" width="%s" height="%s" class="grid-row"/>`,
			num(y), num(width), num(dims.BarHeight+dims.Padding)))
		svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%s" x2="%s" y2="%s" class="row-line"/>`,
			num(y+dims.BarHeight+dims.Padding), num(width), num(y+dims.BarHeight+dims.Padding)))
	}

	for _, tick := range c.Scale().Ticks() {
		class := "tick"
		if tick.Upper != "" {
			class = "tick thick"
		}
		svg.WriteString(fmt.Sprintf(`<path d="M %s %s v %s" class="%s"/>`,
			num(tick.X), num(dims.HeaderHeight), num(height-dims.HeaderHeight), class))
	}
	svg.WriteString("</g>\n")
}

func drawHeader(svg *strings.Builder, c *gantt.Chart) {
	dims := c.Dims()

	svg.WriteString(`<g class="date">`)
	for _, tick := range c.Scale().Ticks() {
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" class="lower-text">%s</text>`,
			num(tick.LowerX), num(dims.HeaderHeight-10), escapeXML(tick.Lower)))
		if tick.Upper != "" {
			svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" class="upper-text">%s</text>`,
				num(tick.UpperX), num(dims.HeaderHeight-30), escapeXML(tick.Upper)))
		}
	}
	svg.WriteString("</g>\n")
}

func drawArrows(svg *strings.Builder, c *gantt.Chart) {
	svg.WriteString(`<g class="arrow">`)
	for _, conn := range c.Connectors() {
		svg.WriteString(fmt.Sprintf(`<path d="%s" class="arrow" data-from="%s" data-to="%s"/>`,
			conn.Path.String(), escapeXML(conn.From), escapeXML(conn.To)))
	}
	svg.WriteString("</g>\n")
}

func drawBars(svg *strings.Builder, c *gantt.Chart) {
	radius := c.Config().Bar.CornerRadius

	svg.WriteString(`<g class="bar">`)
	for _, bar := range c.Bars() {
		r, d, t := bar.Rect, bar.Decoration, bar.Task

		classes := []string{"bar-wrapper"}
		if t.CustomClass != "" {
			classes = append(classes, t.CustomClass)
		}
		if t.Invalid {
			classes = append(classes, "bar-invalid")
		}
		if bar.Selected {
			classes = append(classes, "active")
		}

		svg.WriteString(fmt.Sprintf(`<g class="%s" data-id="%s">`, escapeXML(strings.Join(classes, " ")), escapeXML(t.ID)))
		svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" class="bar"/>`,
			num(r.X), num(r.Y), num(r.Width), num(r.Height), num(radius), num(radius)))
		if r.ProgressWidth > 0 {
			svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" class="bar-progress"/>`,
				num(r.X), num(r.Y), num(r.ProgressWidth), num(r.Height), num(radius), num(radius)))
		}

		labelClass := "bar-label"
		if d.LabelOutside {
			labelClass += " big"
		}
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" class="%s">%s</text>`,
			num(d.LabelX), num(d.LabelY), labelClass, escapeXML(t.Name)))

		if bar.Editable {
			for _, h := range []struct {
				class string
				x     float64
			}{{"handle left", d.HandleLeft.X}, {"handle right", d.HandleRight.X}} {
				svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" class="%s"/>`,
					num(h.x), num(d.HandleLeft.Y), num(d.HandleLeft.Width), num(d.HandleLeft.Height), num(radius), num(radius), h.class))
			}
		}
		if !t.Invalid && !t.Synthetic && c.Config().EditMode {
			p := d.Progress
			svg.WriteString(fmt.Sprintf(`<polygon points="%s,%s %s,%s %s,%s" class="progress-handle"/>`,
				num(p[0].X), num(p[0].Y), num(p[1].X), num(p[1].Y), num(p[2].X), num(p[2].Y)))
		}
		svg.WriteString("</g>")
	}
	svg.WriteString("</g>\n")
}

// escapeXML escapes the characters XML reserves in text and attributes.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

func num(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
