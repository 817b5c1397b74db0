package shape

import "math"

// Polar converts a radius and angle to a point relative to the map center.
func Polar(radius, angle float64) Point {
	return Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// Sector builds the annular sector for a boxed feature segment in circular
// layout. Extents narrower than MinAngularExtent are widened around the
// start angle.
func Sector(inner, outer, startAngle, endAngle float64) AnnularSector {
	if endAngle-startAngle < MinAngularExtent {
		endAngle = startAngle + MinAngularExtent
	}
	return AnnularSector{Inner: inner, Outer: outer, StartAngle: startAngle, EndAngle: endAngle}
}

// ArcArrow builds the annular arrow for a directional feature segment in
// circular layout.
//
// The sector edge the arrow points at is pulled back by arrowLength/midRadius
// radians to make room for the triangular tip, and the tip vertex is placed
// at the midpoint of that truncated edge, offset along the local tangent by
// the arrowhead length. The arrowhead is capped at a third of the segment's
// own arc length, so the tip always lands within the original angular span.
func ArcArrow(inner, outer, startAngle, endAngle float64, reverse bool, baseArrowLength float64) AnnularArrow {
	if endAngle-startAngle < MinAngularExtent {
		endAngle = startAngle + MinAngularExtent
	}

	midRadius := (inner + outer) / 2
	arcLen := (endAngle - startAngle) * midRadius
	arrowLen := min(baseArrowLength, arcLen/3)

	tipOffset := 0.0
	if midRadius > 0 {
		tipOffset = arrowLen / midRadius
	}

	a := AnnularArrow{
		Inner:          inner,
		Outer:          outer,
		StartAngle:     startAngle,
		EndAngle:       endAngle,
		TipAngleOffset: tipOffset,
		Reverse:        reverse,
	}

	// Tip vertex: midpoint of the truncated edge pushed along the tangent.
	// The tangent at angle θ is (-sin θ, cos θ) for increasing angle; the
	// reverse orientation walks it the other way.
	if reverse {
		edge := startAngle + tipOffset
		base := Polar(midRadius, edge)
		a.Tip = Point{
			X: base.X + arrowLen*math.Sin(edge),
			Y: base.Y - arrowLen*math.Cos(edge),
		}
	} else {
		edge := endAngle - tipOffset
		base := Polar(midRadius, edge)
		a.Tip = Point{
			X: base.X - arrowLen*math.Sin(edge),
			Y: base.Y + arrowLen*math.Cos(edge),
		}
	}
	return a
}

// BodyStart returns the angle where the sector body begins once the tip
// truncation is applied.
func (a AnnularArrow) BodyStart() float64 {
	if a.Reverse {
		return a.StartAngle + a.TipAngleOffset
	}
	return a.StartAngle
}

// BodyEnd returns the angle where the sector body ends once the tip
// truncation is applied.
func (a AnnularArrow) BodyEnd() float64 {
	if a.Reverse {
		return a.EndAngle
	}
	return a.EndAngle - a.TipAngleOffset
}
