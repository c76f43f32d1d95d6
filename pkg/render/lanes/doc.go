// Package lanes renders a laid out board as a lane chart.
//
// Each day is drawn as a block: a title, hour markers across the top, and
// one row per table. A table row is as tall as its lane count times the
// lane height, and every game is a box positioned by its percentage Left and
// Width within the timeline area. Days without a valid schedule render a
// "No schedule" panel instead.
//
//	svg := lanes.RenderSVG(b,
//	    lanes.WithLaneHeight(60),
//	    lanes.WithWidth(1200),
//	    lanes.WithDay("sat"),
//	)
//
// [RenderPNG] and [RenderPDF] convert the SVG with rsvg-convert.
package lanes
