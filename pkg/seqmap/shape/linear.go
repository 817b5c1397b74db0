package shape

// Box builds the rectangle for a boxed feature segment. Spans narrower than
// MinVisibleWidth are widened around their own left edge.
func Box(x, y, w, h float64) Rect {
	if w < MinVisibleWidth {
		w = MinVisibleWidth
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Backbone builds the thin joining line between two non-adjacent segments
// of the same spliced feature, vertically centered on the row.
func Backbone(x1, x2, y, rowHeight float64) Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	return Rect{
		X: x1,
		Y: y + rowHeight/2 - BackboneThickness/2,
		W: x2 - x1,
		H: BackboneThickness,
	}
}

// Arrow builds the directional polygon for a feature segment in linear
// layout. The arrowhead length is min(baseArrowLength, w/3) so the tip
// never consumes more than a third of the segment's own extent. When
// reverse is true the shape mirrors and the tip points toward decreasing x.
func Arrow(x, y, w, h float64, reverse bool, baseArrowLength float64) Polygon {
	if w < MinVisibleWidth {
		w = MinVisibleWidth
	}
	arrowLen := min(baseArrowLength, w/3)

	if reverse {
		return Polygon{Points: []Point{
			{X: x + w, Y: y},
			{X: x + arrowLen, Y: y},
			{X: x, Y: y + h/2},
			{X: x + arrowLen, Y: y + h},
			{X: x + w, Y: y + h},
		}}
	}
	return Polygon{Points: []Point{
		{X: x, Y: y},
		{X: x + w - arrowLen, Y: y},
		{X: x + w, Y: y + h/2},
		{X: x + w - arrowLen, Y: y + h},
		{X: x, Y: y + h},
	}}
}
