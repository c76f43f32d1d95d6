package lanes

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/signupboard/pkg/board"
)

const (
	defaultLaneHeight = 60
	defaultWidth      = 1200

	labelWidth    = 160.0
	padding       = 16.0
	dayTitle      = 36.0
	markerHeader  = 28.0
	dayGap        = 24.0
	fallbackH     = 80.0
	gameInset     = 4.0
	minLabelWidth = 48.0
	fontFamily    = "Inter, Helvetica, Arial, sans-serif"
)

const laneCSS = `
    .day-title { font: 600 18px %[1]s; fill: #222; }
    .marker { font: 12px %[1]s; fill: #666; }
    .grid { stroke: #e2e2e2; stroke-width: 1; }
    .grid.extension { stroke-dasharray: 4 4; }
    .table-name { font: 600 13px %[1]s; fill: #333; }
    .row { fill: #fafafa; }
    .row.alt { fill: #f1f1f1; }
    .game { fill: #cfe3ff; stroke: #3b73c4; stroke-width: 1.5; rx: 6; }
    .game.full { fill: #e4e4e4; stroke: #888; }
    .game.highlight { fill: #ffe08a; stroke: #c48a00; stroke-width: 3; }
    .game-name { font: 600 12px %[1]s; fill: #111; }
    .game-time { font: 11px %[1]s; fill: #444; }
    .no-schedule { fill: #fff4f4; stroke: #e0a0a0; stroke-dasharray: 6 4; }
    .no-schedule-text { font: italic 14px %[1]s; fill: #a33; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	laneHeight float64
	width      float64
	day        string
	highlight  string
}

// WithLaneHeight sets the height of one lane in pixels (default 60).
func WithLaneHeight(px int) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.laneHeight = float64(px)
		}
	}
}

// WithWidth sets the width of the timeline area in pixels (default 1200).
func WithWidth(px int) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.width = float64(px)
		}
	}
}

// WithDay restricts the chart to one day.
func WithDay(id string) SVGOption { return func(r *svgRenderer) { r.day = id } }

// WithHighlight emphasizes the game with the given id.
func WithHighlight(id string) SVGOption { return func(r *svgRenderer) { r.highlight = id } }

// RenderSVG draws the board as a lane chart. Days are stacked vertically;
// each table is one row whose height is its lane count times the lane
// height.
func RenderSVG(b board.Board, opts ...SVGOption) []byte {
	r := svgRenderer{laneHeight: defaultLaneHeight, width: defaultWidth}
	for _, opt := range opts {
		opt(&r)
	}

	days := r.selectDays(b)
	totalW := labelWidth + r.width + 2*padding
	totalH := padding
	for _, d := range days {
		totalH += r.dayHeight(d) + dayGap
	}
	totalH += padding - dayGap
	if len(days) == 0 {
		totalH = 2 * padding
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalW, totalH, totalW, totalH)
	fmt.Fprintf(&buf, "  <style>"+laneCSS+"\n  </style>\n", fontFamily)

	y := padding
	for _, d := range days {
		r.renderDay(&buf, d, y)
		y += r.dayHeight(d) + dayGap
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) selectDays(b board.Board) []board.DayBoard {
	if r.day == "" {
		return b.Days
	}
	if d, ok := b.Day(r.day); ok {
		return []board.DayBoard{*d}
	}
	return nil
}

func (r *svgRenderer) dayHeight(d board.DayBoard) float64 {
	if !d.Available() {
		return dayTitle + fallbackH
	}
	h := dayTitle + markerHeader
	for _, t := range d.Tables {
		h += r.rowHeight(t)
	}
	return h
}

func (r *svgRenderer) rowHeight(t board.TableBoard) float64 {
	return float64(max(1, t.Lanes)) * r.laneHeight
}

// x maps a percentage on the axis to an SVG x coordinate.
func (r *svgRenderer) x(pct float64) float64 {
	return padding + labelWidth + pct/100*r.width
}

func (r *svgRenderer) renderDay(buf *bytes.Buffer, d board.DayBoard, y float64) {
	title := d.Label
	if title == "" {
		title = d.DayID
	}
	if d.Date != "" {
		title += " · " + d.Date
	}
	fmt.Fprintf(buf, `  <g class="day" id="day-%s">`+"\n", escapeXML(d.DayID))
	fmt.Fprintf(buf, `    <text class="day-title" x="%.1f" y="%.1f">%s</text>`+"\n", padding, y+22, escapeXML(title))
	y += dayTitle

	if !d.Available() {
		fmt.Fprintf(buf, `    <rect class="no-schedule" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
			padding, y, labelWidth+r.width, fallbackH-8)
		fmt.Fprintf(buf, `    <text class="no-schedule-text" x="%.1f" y="%.1f" text-anchor="middle">No schedule: %s</text>`+"\n",
			padding+(labelWidth+r.width)/2, y+(fallbackH-8)/2+5, escapeXML(d.Unavailable))
		buf.WriteString("  </g>\n")
		return
	}

	rowsTop := y + markerHeader
	rowsBottom := rowsTop
	for _, t := range d.Tables {
		rowsBottom += r.rowHeight(t)
	}

	// Table rows first so grid lines and games draw on top.
	rowY := rowsTop
	for i, t := range d.Tables {
		class := "row"
		if i%2 == 1 {
			class = "row alt"
		}
		h := r.rowHeight(t)
		fmt.Fprintf(buf, `    <rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
			class, padding, rowY, labelWidth+r.width, h)
		name := t.Name
		if name == "" {
			name = t.TableID
		}
		fmt.Fprintf(buf, `    <text class="table-name" x="%.1f" y="%.1f">%s</text>`+"\n",
			padding+8, rowY+min(h, r.laneHeight)/2+4, escapeXML(name))
		rowY += h
	}

	r.renderMarkers(buf, d, y, rowsTop, rowsBottom)

	rowY = rowsTop
	for _, t := range d.Tables {
		for _, p := range t.Placements {
			r.renderGame(buf, p, rowY)
		}
		rowY += r.rowHeight(t)
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderMarkers(buf *bytes.Buffer, d board.DayBoard, y, top, bottom float64) {
	// Hours past the nominal end are drawn dashed.
	extensionFrom := 100.0
	if w := d.Window; w != nil && w.AxisEnd > w.Start {
		extensionFrom = float64(w.End-w.Start) / float64(w.AxisEnd-w.Start) * 100
	}

	for _, m := range d.Markers {
		x := r.x(m.Left)
		anchor := "middle"
		switch {
		case m.Left == 0:
			anchor = "start"
		case m.Final:
			anchor = "end"
		}
		class := "grid"
		if m.Left > extensionFrom {
			class = "grid extension"
		}
		fmt.Fprintf(buf, `    <text class="marker" x="%.1f" y="%.1f" text-anchor="%s">%s</text>`+"\n",
			x, y+markerHeader-10, anchor, m.Label())
		fmt.Fprintf(buf, `    <line class="%s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			class, x, top, x, bottom)
	}
}

func (r *svgRenderer) renderGame(buf *bytes.Buffer, p board.Placement, rowY float64) {
	x := r.x(p.Left)
	w := p.Width / 100 * r.width
	y := rowY + float64(p.Lane)*r.laneHeight + gameInset
	h := r.laneHeight - 2*gameInset

	class := "game"
	if p.Full() {
		class += " full"
	}
	if r.highlight != "" && p.ID == r.highlight {
		class += " highlight"
	}

	fmt.Fprintf(buf, `    <g id="game-%s">`+"\n", escapeXML(p.ID))
	fmt.Fprintf(buf, `      <title>%s</title>`+"\n", escapeXML(tooltip(p)))
	fmt.Fprintf(buf, `      <rect class="%s" x="%.2f" y="%.1f" width="%.2f" height="%.1f"/>`+"\n", class, x, y, w, h)
	if w >= minLabelWidth {
		fmt.Fprintf(buf, `      <text class="game-name" x="%.2f" y="%.1f">%s</text>`+"\n", x+6, y+16, escapeXML(p.Name))
		if h >= 36 {
			fmt.Fprintf(buf, `      <text class="game-time" x="%.2f" y="%.1f">%s</text>`+"\n", x+6, y+31, escapeXML(subtitle(p)))
		}
	}
	buf.WriteString("    </g>\n")
}

func subtitle(p board.Placement) string {
	s := p.Start + "-" + p.End
	if p.MaxPlayers > 0 {
		s += fmt.Sprintf("  %d/%d", p.Players, p.MaxPlayers)
	} else if p.Players > 0 {
		s += fmt.Sprintf("  %d", p.Players)
	}
	return s
}

func tooltip(p board.Placement) string {
	s := p.Name + " (" + p.Start + "-" + p.End + ")"
	if p.Host != "" {
		s += ", hosted by " + p.Host
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
