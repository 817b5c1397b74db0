// Package sink provides output formats for computed layouts: SVG, PNG, PDF,
// and JSON.
package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/genomap/genomap/pkg/plot"
	"github.com/genomap/genomap/pkg/render/styles"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     styles.Style
	showDiags bool
}

// WithStyle selects the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithDiagnostics embeds layout diagnostics as an SVG comment block, useful
// when troubleshooting missing features.
func WithDiagnostics() SVGOption { return func(r *svgRenderer) { r.showDiags = true } }

// RenderSVG renders a layout as a standalone SVG document. Elements are
// emitted in a stable order (shapes sorted by feature, then labels, ticks,
// and cut sites) so identical layouts produce identical bytes.
func RenderSVG(l plot.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	shapes := slices.Clone(l.Shapes)
	slices.SortStableFunc(shapes, func(a, b plot.Shape) int {
		if c := cmp.Compare(a.FeatureID, b.FeatureID); c != 0 {
			return c
		}
		return cmp.Compare(a.Row, b.Row)
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	r.style.RenderDefs(&buf)

	if l.Definition != "" {
		fmt.Fprintf(&buf, `  <text class="label" x="%.2f" y="18" text-anchor="middle">%s</text>`+"\n",
			l.Width/2, styles.EscapeXML(l.Definition))
	}

	if l.IsCircular() {
		fmt.Fprintf(&buf, `  <g transform="translate(%.2f,%.2f)">`+"\n", l.CenterX, l.CenterY)
		fmt.Fprintf(&buf, `  <circle class="tick" cx="0" cy="0" r="%.2f" fill="none"/>`+"\n", l.BaseRadius+2)
	} else if len(l.Ticks) > 0 {
		axisY := l.Ticks[0].Y
		fmt.Fprintf(&buf, `  <line class="tick" x1="0" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", axisY, l.Width, axisY)
	}

	for _, s := range shapes {
		r.style.RenderShape(&buf, s)
	}
	for _, t := range l.Ticks {
		r.style.RenderTick(&buf, t, l.IsCircular())
	}
	for _, c := range l.CutSites {
		r.style.RenderCutSite(&buf, c, l.IsCircular())
	}
	for _, lbl := range l.Labels {
		r.style.RenderLabel(&buf, lbl)
	}

	if l.IsCircular() {
		buf.WriteString("  </g>\n")
	}

	if r.showDiags && len(l.Diagnostics) > 0 {
		buf.WriteString("  <!--\n")
		for _, d := range l.Diagnostics {
			fmt.Fprintf(&buf, "    %s: %s\n", d.FeatureID, d.Message)
		}
		buf.WriteString("  -->\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
