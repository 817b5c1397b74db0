// Package coord converts sequence positions to pixel offsets (linear maps)
// or angular positions (circular maps) and back.
//
// Scales are pure value types: once constructed they carry no mutable state
// and both directions of the mapping are available. A scale built from a
// non-positive sequence length is degenerate and maps every position to the
// range origin; callers must guard layout on empty sequences themselves.
package coord

import "math"

// Tau is the full angular range of a circular map.
const Tau = 2 * math.Pi

// LinearScale maps sequence positions in [0, SequenceLength] onto pixel
// offsets in [0, ContentWidth].
type LinearScale struct {
	seqLen float64
	width  float64
}

// NewLinearScale builds a scale from the sequence length and the usable
// content width in pixels.
func NewLinearScale(sequenceLength int, contentWidth float64) LinearScale {
	return LinearScale{seqLen: float64(sequenceLength), width: contentWidth}
}

// Degenerate reports whether the scale was built from an empty sequence.
func (s LinearScale) Degenerate() bool { return s.seqLen <= 0 }

// ToPixel converts a sequence position to a pixel offset.
func (s LinearScale) ToPixel(position float64) float64 {
	if s.Degenerate() {
		return 0
	}
	return position / s.seqLen * s.width
}

// ToPosition converts a pixel offset back to a sequence position.
func (s LinearScale) ToPosition(x float64) float64 {
	if s.Degenerate() || s.width == 0 {
		return 0
	}
	return x / s.width * s.seqLen
}

// PixelsPerUnit returns the width of one sequence position in pixels.
func (s LinearScale) PixelsPerUnit() float64 {
	if s.Degenerate() {
		return 0
	}
	return s.width / s.seqLen
}

// AngularScale maps sequence positions in [0, SequenceLength] onto angles
// in [0, 2π). Angle zero is the top of the circle by convention of the
// rendering backend; the scale itself is orientation-agnostic.
type AngularScale struct {
	seqLen float64
}

// NewAngularScale builds a scale from the sequence length.
func NewAngularScale(sequenceLength int) AngularScale {
	return AngularScale{seqLen: float64(sequenceLength)}
}

// Degenerate reports whether the scale was built from an empty sequence.
func (s AngularScale) Degenerate() bool { return s.seqLen <= 0 }

// ToAngle converts a sequence position to radians.
func (s AngularScale) ToAngle(position float64) float64 {
	if s.Degenerate() {
		return 0
	}
	return position / s.seqLen * Tau
}

// ToPosition converts an angle in radians back to a sequence position.
func (s AngularScale) ToPosition(angle float64) float64 {
	if s.Degenerate() {
		return 0
	}
	return angle / Tau * s.seqLen
}

// ArcLength returns the arc length in pixels spanned by the positions
// [start, end] at the given radius. The positions may wrap the origin, in
// which case end < start and the wrapped extent is used.
func (s AngularScale) ArcLength(start, end float64, radius float64) float64 {
	if s.Degenerate() {
		return 0
	}
	extent := end - start
	if extent < 0 {
		extent += s.seqLen
	}
	return extent / s.seqLen * Tau * radius
}

// Normalize wraps an angle into [0, 2π).
func Normalize(angle float64) float64 {
	a := math.Mod(angle, Tau)
	if a < 0 {
		a += Tau
	}
	return a
}
