// Package render provides visualization rendering for signup boards.
//
// # Overview
//
// This package contains the renderers that turn a laid out [board.Board]
// into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Lane charts, the signup board timeline (in [lanes] subpackage)
//   - Conflict graphs of overlapping games (in [conflicts] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both renderers use them.
//
//	svg := lanes.RenderSVG(b, lanes.WithLaneHeight(60))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Lane Charts
//
// The [lanes] subpackage draws one row per table with the games of that
// table stacked into lanes, hour markers along the top, and a "no schedule"
// panel for days without a valid window.
//
// # Conflict Graphs
//
// The [conflicts] subpackage emits a Graphviz DOT graph with one cluster per
// table and an edge between every pair of overlapping games, which explains
// why a table needed extra lanes.
//
//	dot := conflicts.ToDOT(day)
//	svg, err := conflicts.RenderSVG(ctx, dot)
//
// [board.Board]: github.com/matzehuels/signupboard/pkg/board
// [lanes]: github.com/matzehuels/signupboard/pkg/render/lanes
// [conflicts]: github.com/matzehuels/signupboard/pkg/render/conflicts
package render
