package conflicts

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/signupboard/pkg/board"
	"github.com/matzehuels/signupboard/pkg/timeline"
)

// Edge joins two overlapping games on the same table.
type Edge struct {
	TableID string
	From    string
	To      string
}

// Edges returns the overlapping pairs of every table of day, in table
// order and then placement order.
func Edges(day board.DayBoard) []Edge {
	var edges []Edge
	for _, t := range day.Tables {
		for i, a := range t.Placements {
			for _, b := range t.Placements[i+1:] {
				if overlaps(a, b) {
					edges = append(edges, Edge{TableID: t.TableID, From: a.ID, To: b.ID})
				}
			}
		}
	}
	return edges
}

func overlaps(a, b board.Placement) bool {
	return a.Left < b.Right()-timeline.Epsilon && b.Left < a.Right()-timeline.Epsilon
}

// ToDOT converts the overlap graph of day to Graphviz DOT format.
func ToDOT(day board.DayBoard) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", dayTitle(day))
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i, t := range day.Tables {
		name := t.Name
		if name == "" {
			name = t.TableID
		}
		fmt.Fprintf(&buf, "  subgraph \"cluster_%d\" {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("%s (%d lanes)", name, t.Lanes))
		buf.WriteString("    style=\"rounded,dashed\";\n")
		for _, p := range t.Placements {
			fmt.Fprintf(&buf, "    %q [%s];\n", p.ID, nodeAttrs(p))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range Edges(day) {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dayTitle(day board.DayBoard) string {
	if day.Label != "" {
		return day.Label
	}
	return day.DayID
}

func nodeAttrs(p board.Placement) string {
	label := fmt.Sprintf("%s\n%s-%s\nlane %d", p.Name, p.Start, p.End, p.Lane)
	attrs := fmt.Sprintf("label=%q", label)
	if p.Full() {
		attrs += ", fillcolor=lightgrey"
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element (which sizes in pt and
// translates the origin) with a plain pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
