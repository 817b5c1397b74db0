// Package shape computes the drawable geometry for sequence map features:
// boxes and arrow polygons in linear pixel space, annular sectors and
// sector-with-arrow shapes in angular space.
//
// All builders clamp degenerate extents to a minimum visible size rather
// than emitting zero-area geometry, and cap arrowheads at one third of the
// segment's own extent so a tip never consumes more than its segment.
package shape

// Point is a 2D coordinate in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is the closed set of geometry a feature segment can produce.
type Shape interface {
	shape()
}

// Rect is an axis-aligned rectangle, used for boxed feature segments and
// for the thin backbone joining spliced segments.
type Rect struct {
	X, Y, W, H float64
}

// Polygon is a closed vertex list, used for directional (arrow) features
// in linear layout.
type Polygon struct {
	Points []Point
}

// AnnularSector is a ring segment between two radii, used for boxed
// features in circular layout. Angles are radians, measured
// counterclockwise from the positive x axis around the map center.
type AnnularSector struct {
	Inner      float64
	Outer      float64
	StartAngle float64
	EndAngle   float64
}

// AnnularArrow is an annular sector truncated on one edge to make room for
// a triangular tip. TipAngleOffset is the angular shortening applied to the
// truncated edge; Tip is the precomputed tip vertex relative to the map
// center.
type AnnularArrow struct {
	Inner          float64
	Outer          float64
	StartAngle     float64
	EndAngle       float64
	TipAngleOffset float64
	Reverse        bool
	Tip            Point
}

func (Rect) shape()          {}
func (Polygon) shape()       {}
func (AnnularSector) shape() {}
func (AnnularArrow) shape()  {}

const (
	// MinVisibleWidth is the narrowest a linear shape is allowed to get, in
	// pixels. Narrower spans are widened to stay visible.
	MinVisibleWidth = 2.0

	// MinAngularExtent is the angular equivalent, in radians.
	MinAngularExtent = 0.004

	// DefaultArrowLength is the base arrowhead length in pixels before the
	// one-third extent cap is applied.
	DefaultArrowLength = 12.0

	// BackboneThickness is the height of the line joining non-adjacent
	// segments of a spliced feature, in pixels.
	BackboneThickness = 2.0
)
