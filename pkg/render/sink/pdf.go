package sink

import (
	"github.com/genomap/genomap/pkg/plot"
	"github.com/genomap/genomap/pkg/render"
)

// RenderPDF renders the layout as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(l plot.Layout, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(l, opts...)
	return render.ToPDF(svg)
}
