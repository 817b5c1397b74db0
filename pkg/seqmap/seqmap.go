// Package seqmap defines the shared value types for the sequence map layout
// engine: features, segments, spans, and the per-pass layout session.
//
// A layout pass is a full recomputation: the caller creates a fresh [Session],
// feeds it the normalized feature list and viewport dimensions, and reads the
// resulting shapes and labels. Nothing in this package persists across passes
// and nothing is shared between concurrent passes.
package seqmap

import (
	"fmt"

	"github.com/google/uuid"
)

// Segment is one contiguous sub-interval of a (possibly spliced) feature.
// Coordinates are 0-based inclusive. Start <= End always holds after bounds
// resolution; wraparound on circular sequences is expressed by the span's
// CrossesOrigin flag, never by a negative length.
type Segment struct {
	Start   int
	End     int
	Reverse bool
}

// Length returns the number of positions covered by the segment.
func (s Segment) Length() int { return s.End - s.Start + 1 }

// Span is the overall extent of a feature across all of its segments.
type Span struct {
	Start int
	End   int

	// CrossesOrigin marks a circular-sequence span that wraps past position 0.
	CrossesOrigin bool
}

// Length returns the span extent in sequence positions, accounting for
// origin wraparound on a sequence of length seqLen.
func (s Span) Length(seqLen int) int {
	if s.CrossesOrigin && seqLen > 0 {
		return seqLen - s.Start + s.End + 1
	}
	return s.End - s.Start + 1
}

// Feature is an annotated interval set over the sequence coordinate.
// Features are read-only inputs to the layout engine; the engine never
// mutates them.
type Feature struct {
	ID       string
	Type     string
	Segments []Segment
	Span     Span
	Info     map[string]string
}

// Label returns the display text for the feature: the first non-empty of
// the gene name, the product description, a generic note, and finally the
// feature type.
func (f Feature) Label() string {
	for _, key := range []string{"gene", "product", "note"} {
		if v := f.Info[key]; v != "" {
			return v
		}
	}
	return f.Type
}

// Diagnostic reports a per-feature condition encountered during bounds
// resolution or layout. Diagnostics are informational; a feature that cannot
// be placed is absent from the output, never fatal to the pass.
type Diagnostic struct {
	FeatureID string
	Message   string
}

func (d Diagnostic) String() string {
	if d.FeatureID == "" {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.FeatureID, d.Message)
}

// Session is the caller-owned state for a single layout pass. It replaces
// the ambient mutable occupancy records of older map renderers: every stage
// receives the session explicitly and a new pass starts from a new session.
type Session struct {
	// ID correlates diagnostics and API responses to a pass.
	ID string

	// SequenceLength is the total sequence extent in positions.
	SequenceLength int

	// Circular selects angular layout (concentric layers) over linear rows.
	Circular bool

	diags []Diagnostic
}

// NewSession creates a fresh session for one layout pass.
func NewSession(sequenceLength int, circular bool) *Session {
	return &Session{
		ID:             uuid.NewString(),
		SequenceLength: sequenceLength,
		Circular:       circular,
	}
}

// Report records a diagnostic against the session.
func (s *Session) Report(featureID, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{
		FeatureID: featureID,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns the diagnostics recorded so far, in report order.
func (s *Session) Diagnostics() []Diagnostic { return s.diags }
