package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/signupboard/pkg/board"
	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/render/conflicts"
	"github.com/matzehuels/signupboard/pkg/render/lanes"
)

// RenderBoard generates output artifacts in the requested formats.
func RenderBoard(ctx context.Context, b board.Board, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = lanes.RenderSVG(b, svgOpts...)
		case FormatPNG:
			data, err = lanes.RenderPNG(b, lanes.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = lanes.RenderPDF(b, lanes.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = lanes.RenderJSON(b)
		case FormatDOT, FormatConflicts:
			var day board.DayBoard
			day, err = selectDay(b, opts.Day)
			if err != nil {
				break
			}
			dot := conflicts.ToDOT(day)
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = conflicts.RenderSVG(ctx, dot)
			}
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []lanes.SVGOption {
	svgOpts := []lanes.SVGOption{
		lanes.WithLaneHeight(opts.LaneHeight),
		lanes.WithWidth(opts.Width),
	}
	if opts.Day != "" {
		svgOpts = append(svgOpts, lanes.WithDay(opts.Day))
	}
	if opts.Highlight != "" {
		svgOpts = append(svgOpts, lanes.WithHighlight(opts.Highlight))
	}
	return svgOpts
}

// selectDay returns the requested day, or the first available one.
func selectDay(b board.Board, id string) (board.DayBoard, error) {
	if id != "" {
		d, ok := b.Day(id)
		if !ok {
			return board.DayBoard{}, errors.New(errors.ErrCodeDayNotFound, "day %q is not on the board", id)
		}
		return *d, nil
	}
	for _, d := range b.Days {
		if d.Available() {
			return d, nil
		}
	}
	return board.DayBoard{}, errors.New(errors.ErrCodeDayNotFound, "board has no day with a schedule")
}
