package layout

import (
	"cmp"
	"slices"
)

// TextSpan is a horizontal text extent competing for a label row. Cut-site
// name labels use this packer: unlike features, they conflict purely on
// rendered text width, not on sequence-space overlap.
type TextSpan struct {
	ID     string
	Center float64
	Width  float64
}

func (t TextSpan) left() float64  { return t.Center - t.Width/2 }
func (t TextSpan) right() float64 { return t.Center + t.Width/2 }

// PackTextRows assigns each span the lowest row where its text does not
// horizontally collide with any previously placed text, with gap clearance
// between neighbors. Spans are processed in ascending center order with
// ties broken by ID, so the assignment is deterministic. The row scan is
// bounded by the span count, which is always sufficient.
func PackTextRows(spans []TextSpan, gap float64) map[string]int {
	ordered := slices.Clone(spans)
	slices.SortStableFunc(ordered, func(a, b TextSpan) int {
		if c := cmp.Compare(a.Center, b.Center); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	assigned := make(map[string]int, len(ordered))
	var rows [][]TextSpan

	for _, sp := range ordered {
		placed := false
		for idx := 0; idx < len(rows) && !placed; idx++ {
			if fitsRow(rows[idx], sp, gap) {
				rows[idx] = append(rows[idx], sp)
				assigned[sp.ID] = idx
				placed = true
			}
		}
		if !placed {
			rows = append(rows, []TextSpan{sp})
			assigned[sp.ID] = len(rows) - 1
		}
	}
	return assigned
}

func fitsRow(row []TextSpan, sp TextSpan, gap float64) bool {
	for _, occ := range row {
		if sp.left()-gap <= occ.right() && sp.right()+gap >= occ.left() {
			return false
		}
	}
	return true
}
