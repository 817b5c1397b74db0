// Package layout places features onto non-overlapping rows (linear maps) or
// concentric layers (circular maps), decides whether each feature's label
// fits inside its drawn shape, and relaxes displaced labels apart.
//
// The packer is a first-fit greedy interval scheduler: features are
// processed longest-span first and each takes the lowest-index row whose
// occupants it does not conflict with. The result is deterministic for a
// fixed input but makes no claim of using the minimum number of rows.
package layout

import (
	"cmp"
	"slices"

	"github.com/genomap/genomap/pkg/errors"
	"github.com/genomap/genomap/pkg/seqmap"
)

// Interval is an occupied extent on a row, in the row's native coordinate
// (pixels for linear layout, radians for angular layout).
type Interval struct {
	Start float64
	End   float64

	// CrossesOrigin marks an angular interval that wraps past angle zero.
	CrossesOrigin bool
}

// RowSlot records the occupants of one row or layer. The invariant is that
// no two occupied intervals overlap by more than the safety margin.
type RowSlot struct {
	Index    int
	Occupied []Interval
}

// Assigner packs intervals onto rows first-fit. The row scan is bounded:
// exceeding the bound is surfaced as an internal error for the offending
// interval rather than scanning forever.
type Assigner struct {
	margin  float64
	domain  float64 // full coordinate extent, used to unwrap crossing intervals; 0 for linear
	maxRows int
	rows    []*RowSlot
}

// NewAssigner creates a packer over an unbounded linear coordinate with the
// given safety margin. capacity is the number of intervals that will be
// placed; the row scan bound is capacity+1, which is always sufficient
// because n intervals can occupy at most n distinct rows.
func NewAssigner(margin float64, capacity int) *Assigner {
	return &Assigner{margin: margin, maxRows: capacity + 1}
}

// NewAngularAssigner creates a packer over the circular coordinate
// [0, domain), typically domain = 2π. Origin-crossing intervals are
// unwrapped against the domain when tested.
func NewAngularAssigner(margin, domain float64, capacity int) *Assigner {
	return &Assigner{margin: margin, domain: domain, maxRows: capacity + 1}
}

// Place assigns iv to the lowest-index usable row and records it there.
// It returns the row index, or an internal error when the bounded scan is
// exhausted; the caller skips the feature and continues the pass.
func (a *Assigner) Place(iv Interval) (int, error) {
	return a.PlaceAll([]Interval{iv})
}

// PlaceAll assigns a group of intervals that must share one row, such as the
// two halves of a span split at the origin. The group takes the lowest-index
// row usable for every member.
func (a *Assigner) PlaceAll(ivs []Interval) (int, error) {
	for idx := 0; idx < a.maxRows; idx++ {
		if idx == len(a.rows) {
			a.rows = append(a.rows, &RowSlot{Index: idx})
		}
		row := a.rows[idx]
		if row.usableAll(ivs, a.margin, a.domain) {
			row.Occupied = append(row.Occupied, ivs...)
			return idx, nil
		}
	}
	return 0, errors.New(errors.ErrCodeRowScanExhausted,
		"no usable row within %d rows", a.maxRows)
}

// RowCount returns the number of rows opened so far.
func (a *Assigner) RowCount() int { return len(a.rows) }

func (r *RowSlot) usableAll(ivs []Interval, margin, domain float64) bool {
	for _, iv := range ivs {
		if !r.usable(iv, margin, domain) {
			return false
		}
	}
	return true
}

func (r *RowSlot) usable(iv Interval, margin, domain float64) bool {
	for _, occ := range r.Occupied {
		if overlaps(iv, occ, margin, domain) {
			return false
		}
	}
	return true
}

// overlaps tests two intervals with the safety margin added to both sides
// of the candidate. Two origin-crossing spans always conflict; a crossing
// span against a plain one is unwrapped at the origin into its two halves
// and each half is tested with the ordinary interval predicate.
func overlaps(a, b Interval, margin, domain float64) bool {
	switch {
	case a.CrossesOrigin && b.CrossesOrigin:
		return true
	case a.CrossesOrigin:
		return plainOverlap(Interval{Start: a.Start, End: domain}, b, margin) ||
			plainOverlap(Interval{Start: 0, End: a.End}, b, margin)
	case b.CrossesOrigin:
		return overlaps(b, a, margin, domain)
	default:
		return plainOverlap(a, b, margin)
	}
}

func plainOverlap(a, b Interval, margin float64) bool {
	return a.Start-margin <= b.End && a.End+margin >= b.Start
}

// SortForPacking orders features for row assignment: descending by total
// span length so long features claim the low, visually central rows, with
// ties broken by ascending start position.
func SortForPacking(features []seqmap.Feature, sequenceLength int) {
	slices.SortStableFunc(features, func(a, b seqmap.Feature) int {
		if c := cmp.Compare(b.Span.Length(sequenceLength), a.Span.Length(sequenceLength)); c != 0 {
			return c
		}
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})
}
