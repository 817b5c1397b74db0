// Package graphview renders a feature-conflict graph as a node-link diagram.
//
// Each node is a feature; an edge connects two features whose spans overlap
// on the sequence and therefore cannot share a row. The view is a debugging
// aid for row assignment: clusters in the graph correspond to the stacked
// regions of the map.
package graphview

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/genomap/genomap/pkg/render"
	"github.com/genomap/genomap/pkg/seqmap"
)

// Options configures conflict-graph rendering.
type Options struct {
	// Detailed includes span coordinates and assigned rows in node labels.
	// When false, only the feature label is shown.
	Detailed bool
}

// ToDOT converts a feature set to Graphviz DOT format. rows maps feature ID
// to its assigned row, as produced by the layout; features missing from the
// map are rendered without a row annotation.
//
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG].
func ToDOT(features []seqmap.Feature, seqLen int, rows map[string]int, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph conflicts {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [color=grey50];\n")
	buf.WriteString("\n")

	for _, f := range features {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", f.ID, fmtLabel(f, rows, opts.Detailed))
	}

	buf.WriteString("\n")
	for i := range features {
		for j := i + 1; j < len(features); j++ {
			if spansOverlap(features[i].Span, features[j].Span, seqLen) {
				fmt.Fprintf(&buf, "  %q -- %q;\n", features[i].ID, features[j].ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(f seqmap.Feature, rows map[string]int, detailed bool) string {
	label := f.Label()
	if !detailed {
		return label
	}

	label += fmt.Sprintf("\n%d..%d", f.Span.Start+1, f.Span.End+1)
	if f.Span.CrossesOrigin {
		label += " (wraps)"
	}
	if row, ok := rows[f.ID]; ok {
		label += fmt.Sprintf("\nrow %d", row)
	}
	return label
}

// spansOverlap mirrors the row assigner's conflict test, without the safety
// margin: the graph shows genuine sequence overlap only. Coordinates are
// inclusive, so spans sharing a single position conflict.
func spansOverlap(a, b seqmap.Span, seqLen int) bool {
	if a.CrossesOrigin && b.CrossesOrigin {
		return true
	}
	if a.CrossesOrigin {
		return b.Start <= a.End || b.End >= a.Start
	}
	if b.CrossesOrigin {
		return a.Start <= b.End || a.End >= b.Start
	}
	return a.Start <= b.End && b.Start <= a.End
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
