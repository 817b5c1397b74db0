// Package styles renders layout elements as SVG fragments.
//
// A Style turns the geometric descriptors of a [plot.Layout] into markup;
// the sink owns document structure (header, groups, ordering) and calls the
// style per element. Circular elements arrive center-relative and are
// rendered inside a translated group, so styles never re-derive geometry —
// arcs and arrow tips come straight from the layout's radii and angles.
package styles

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/genomap/genomap/pkg/plot"
)

// Style renders individual layout elements as SVG fragments.
type Style interface {
	// RenderDefs emits shared defs and CSS once per document.
	RenderDefs(buf *bytes.Buffer)

	// RenderShape emits one feature shape.
	RenderShape(buf *bytes.Buffer, s plot.Shape)

	// RenderLabel emits one feature label with its leader line, if any.
	RenderLabel(buf *bytes.Buffer, l plot.Label)

	// RenderTick emits one axis tick with its position number.
	RenderTick(buf *bytes.Buffer, t plot.Tick, circular bool)

	// RenderCutSite emits one restriction-site mark and enzyme name.
	RenderCutSite(buf *bytes.Buffer, c plot.CutSite, circular bool)
}

// palette holds the fill colors cycled across features.
var palette = []string{
	"#4f81bd", "#9bbb59", "#c0504d", "#8064a2",
	"#f79646", "#4bacc6", "#2c4d75", "#772c2a",
}

// fillFor picks a stable palette color for a feature so repeated renders
// of the same record color identically.
func fillFor(featureID string) string {
	h := fnv.New32a()
	h.Write([]byte(featureID))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Simple is the default flat style: solid fills, thin strokes, sans text.
type Simple struct {
	// FontSize overrides the label font size; zero keeps the default.
	FontSize float64
}

func (s Simple) fontSize() float64 {
	if s.FontSize > 0 {
		return s.FontSize
	}
	return 11
}

// RenderDefs implements Style.
func (s Simple) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <style>
    .feature { stroke: #333; stroke-width: 0.75; fill-opacity: 0.85; }
    .backbone { fill: #555; }
    .label { font: %.1fpx sans-serif; fill: #222; }
    .leader { stroke: #999; stroke-width: 0.75; fill: none; }
    .tick { stroke: #777; stroke-width: 1; }
    .tick-text { font: %.1fpx sans-serif; fill: #777; }
    .cut { stroke: #b33; stroke-width: 1; }
    .cut-text { font: %.1fpx sans-serif; fill: #b33; }
  </style>
`, s.fontSize(), s.fontSize()*0.85, s.fontSize()*0.85)
}

// RenderShape implements Style.
func (s Simple) RenderShape(buf *bytes.Buffer, sh plot.Shape) {
	fill := fillFor(sh.FeatureID)

	switch sh.Kind {
	case plot.KindRect:
		r := sh.Rect
		class := "feature"
		if r.H <= 2 { // backbone joins are the only hairline rects
			class = "backbone"
		}
		fmt.Fprintf(buf, `  <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" data-feature="%s"/>`+"\n",
			class, r.X, r.Y, r.W, r.H, fill, EscapeXML(sh.FeatureID))

	case plot.KindPolygon:
		var pts bytes.Buffer
		for i, p := range sh.Polygon.Points {
			if i > 0 {
				pts.WriteByte(' ')
			}
			fmt.Fprintf(&pts, "%.2f,%.2f", p.X, p.Y)
		}
		fmt.Fprintf(buf, `  <polygon class="feature" points="%s" fill="%s" data-feature="%s"/>`+"\n",
			pts.String(), fill, EscapeXML(sh.FeatureID))

	case plot.KindAnnularSector:
		a := sh.Annular
		fmt.Fprintf(buf, `  <path class="feature" d="%s" fill="%s" data-feature="%s"/>`+"\n",
			sectorPath(a.Inner, a.Outer, a.StartAngle, a.EndAngle), fill, EscapeXML(sh.FeatureID))

	case plot.KindAnnularArrow:
		a := sh.Annular
		fmt.Fprintf(buf, `  <path class="feature" d="%s" fill="%s" data-feature="%s"/>`+"\n",
			arrowSectorPath(a), fill, EscapeXML(sh.FeatureID))
	}
}

// RenderLabel implements Style.
func (s Simple) RenderLabel(buf *bytes.Buffer, l plot.Label) {
	if l.Leader != nil {
		fmt.Fprintf(buf, `  <line class="leader" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
			l.Leader.X1, l.Leader.Y1, l.Leader.X2, l.Leader.Y2)
	}
	anchor := "middle"
	if l.Displaced && l.Leader != nil {
		// Displaced labels hang off their leader; anchor by map side so the
		// text runs away from the shape.
		if l.X < l.Leader.X2 {
			anchor = "end"
		} else if l.X > l.Leader.X2 {
			anchor = "start"
		}
	}
	fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" data-feature="%s">%s</text>`+"\n",
		l.X, l.Y, anchor, EscapeXML(l.FeatureID), EscapeXML(l.Text))
}

// RenderTick implements Style.
func (s Simple) RenderTick(buf *bytes.Buffer, t plot.Tick, circular bool) {
	if circular {
		outer := scaleFrom(t.X, t.Y, 6)
		fmt.Fprintf(buf, `  <line class="tick" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
			t.X, t.Y, outer.X, outer.Y)
		text := scaleFrom(t.X, t.Y, 16)
		fmt.Fprintf(buf, `  <text class="tick-text" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle">%d</text>`+"\n",
			text.X, text.Y, t.Position)
		return
	}
	fmt.Fprintf(buf, `  <line class="tick" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
		t.X, t.Y, t.X, t.Y+5)
	fmt.Fprintf(buf, `  <text class="tick-text" x="%.2f" y="%.2f" text-anchor="middle">%d</text>`+"\n",
		t.X, t.Y+16, t.Position)
}

// RenderCutSite implements Style.
func (s Simple) RenderCutSite(buf *bytes.Buffer, c plot.CutSite, circular bool) {
	if circular {
		inner := scaleFrom(c.X, c.Y, -6)
		fmt.Fprintf(buf, `  <line class="cut" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
			inner.X, inner.Y, c.X, c.Y)
		fmt.Fprintf(buf, `  <text class="cut-text" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			c.X, c.Y, EscapeXML(c.Enzyme))
		return
	}
	fmt.Fprintf(buf, `  <line class="cut" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
		c.X, c.Y+4, c.X, c.Y+12)
	fmt.Fprintf(buf, `  <text class="cut-text" x="%.2f" y="%.2f" text-anchor="middle">%s</text>`+"\n",
		c.X, c.Y, EscapeXML(c.Enzyme))
}

// scaleFrom pushes a center-relative point radially outward by delta pixels
// (negative delta pulls inward).
func scaleFrom(x, y, delta float64) plot.Point {
	r := math.Hypot(x, y)
	if r == 0 {
		return plot.Point{X: x, Y: y}
	}
	f := (r + delta) / r
	return plot.Point{X: x * f, Y: y * f}
}

// sectorPath builds the SVG path for an annular sector from its radii and
// angles. All vertices come straight from the polar parameters; nothing is
// derived from previously rendered markup.
func sectorPath(inner, outer, a0, a1 float64) string {
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}
	p0 := polar(outer, a0)
	p1 := polar(outer, a1)
	p2 := polar(inner, a1)
	p3 := polar(inner, a0)
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f Z",
		p0.X, p0.Y, outer, outer, large, p1.X, p1.Y,
		p2.X, p2.Y, inner, inner, large, p3.X, p3.Y)
}

// arrowSectorPath builds the SVG path for an annular arrow: the truncated
// sector body plus the triangular tip ending at the precomputed tip vertex.
func arrowSectorPath(a *plot.Annular) string {
	bodyStart, bodyEnd := a.StartAngle, a.EndAngle
	if a.Reverse {
		bodyStart += a.TipAngleOffset
	} else {
		bodyEnd -= a.TipAngleOffset
	}

	large := 0
	if bodyEnd-bodyStart > math.Pi {
		large = 1
	}

	if a.Reverse {
		// Body runs from the truncated edge to the far edge; tip closes the
		// truncated side pointing toward decreasing angle.
		o0 := polar(a.Outer, bodyStart)
		o1 := polar(a.Outer, bodyEnd)
		i1 := polar(a.Inner, bodyEnd)
		i0 := polar(a.Inner, bodyStart)
		return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f L %.2f %.2f Z",
			o0.X, o0.Y, a.Outer, a.Outer, large, o1.X, o1.Y,
			i1.X, i1.Y, a.Inner, a.Inner, large, i0.X, i0.Y,
			a.Tip.X, a.Tip.Y)
	}

	o0 := polar(a.Outer, bodyStart)
	o1 := polar(a.Outer, bodyEnd)
	i1 := polar(a.Inner, bodyEnd)
	i0 := polar(a.Inner, bodyStart)
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f L %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f Z",
		o0.X, o0.Y, a.Outer, a.Outer, large, o1.X, o1.Y,
		a.Tip.X, a.Tip.Y,
		i1.X, i1.Y, a.Inner, a.Inner, large, i0.X, i0.Y)
}

func polar(r, angle float64) plot.Point {
	return plot.Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
}
