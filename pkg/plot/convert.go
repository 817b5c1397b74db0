package plot

import (
	"github.com/genomap/genomap/pkg/seqmap/layout"
	"github.com/genomap/genomap/pkg/seqmap/shape"
)

// Export converts the layout engine's computational result into the
// serializable Layout form consumed by rendering backends.
func Export(res layout.Result, sequenceID string) Layout {
	l := Layout{
		View:       string(res.View),
		Width:      res.Width,
		Height:     res.Height,
		SequenceID: sequenceID,
		Definition: res.Definition,
		SeqLength:  res.SequenceLength,
		CenterX:    res.CenterX,
		CenterY:    res.CenterY,
		BaseRadius: res.BaseRadius,
		Rows:       res.Rows,
		SessionID:  res.SessionID,
	}

	for _, ps := range res.Shapes {
		l.Shapes = append(l.Shapes, exportShape(ps))
	}
	for _, n := range res.Labels {
		if n == nil {
			continue
		}
		lbl := Label{
			FeatureID: n.FeatureID,
			Text:      n.Text,
			Row:       n.Row,
			X:         n.Resolved.X,
			Y:         n.Resolved.Y,
			Displaced: n.Displaced,
			Truncated: n.Truncated,
		}
		if n.Displaced {
			lbl.Leader = &Line{X1: n.Resolved.X, Y1: n.Resolved.Y, X2: n.Anchor.X, Y2: n.Anchor.Y}
		}
		l.Labels = append(l.Labels, lbl)
	}
	for _, t := range res.Ticks {
		l.Ticks = append(l.Ticks, Tick{Position: t.Position, X: t.X, Y: t.Y, Angle: t.Angle})
	}
	for _, c := range res.Cuts {
		l.CutSites = append(l.CutSites, CutSite{
			Enzyme:   c.Enzyme,
			Position: c.Position,
			Row:      c.Row,
			X:        c.X,
			Y:        c.Y,
			Angle:    c.Angle,
		})
	}
	for _, d := range res.Diagnostics {
		l.Diagnostics = append(l.Diagnostics, Diagnostic{FeatureID: d.FeatureID, Message: d.Message})
	}
	return l
}

func exportShape(ps layout.PlacedShape) Shape {
	out := Shape{FeatureID: ps.FeatureID, Row: ps.Row}

	switch g := ps.Geometry.(type) {
	case shape.Rect:
		out.Kind = KindRect
		out.Rect = &Rect{X: g.X, Y: g.Y, W: g.W, H: g.H}
	case shape.Polygon:
		out.Kind = KindPolygon
		pts := make([]Point, len(g.Points))
		for i, p := range g.Points {
			pts[i] = Point{X: p.X, Y: p.Y}
		}
		out.Polygon = &Polygon{Points: pts}
	case shape.AnnularSector:
		out.Kind = KindAnnularSector
		out.Annular = &Annular{
			Inner:      g.Inner,
			Outer:      g.Outer,
			StartAngle: g.StartAngle,
			EndAngle:   g.EndAngle,
		}
	case shape.AnnularArrow:
		out.Kind = KindAnnularArrow
		out.Annular = &Annular{
			Inner:          g.Inner,
			Outer:          g.Outer,
			StartAngle:     g.StartAngle,
			EndAngle:       g.EndAngle,
			TipAngleOffset: g.TipAngleOffset,
			Reverse:        g.Reverse,
			Tip:            &Point{X: g.Tip.X, Y: g.Tip.Y},
		}
	}
	return out
}
