package layout

import (
	"math"
	"testing"

	"github.com/genomap/genomap/pkg/seqmap/shape"
)

func displacedNode(id string, x, w float64, row int) *LabelNode {
	return &LabelNode{
		FeatureID: id,
		Text:      id,
		W:         w,
		H:         12,
		Row:       row,
		Displaced: true,
		Target:    shape.Point{X: x, Y: 100},
		Resolved:  shape.Point{X: x, Y: 100},
	}
}

func TestRelaxSeparatesCollidingLabels(t *testing.T) {
	a := displacedNode("a", 100, 60, 0)
	b := displacedNode("b", 110, 60, 0)

	Relax([]*LabelNode{a, b}, RelaxConfig{})

	sep := math.Abs(a.Resolved.X - b.Resolved.X)
	if sep <= 10 {
		t.Errorf("separation = %v, labels should have been pushed apart from 10", sep)
	}
	if a.Resolved.X >= b.Resolved.X {
		t.Error("relaxation must not reorder labels")
	}
	// Y never moves.
	if a.Resolved.Y != 100 || b.Resolved.Y != 100 {
		t.Error("relaxation is one-dimensional")
	}
}

func TestRelaxLeavesLoneLabelNearTarget(t *testing.T) {
	a := displacedNode("a", 250, 40, 0)

	Relax([]*LabelNode{a}, RelaxConfig{})

	if math.Abs(a.Resolved.X-250) > 1e-9 {
		t.Errorf("lone label drifted to %v, want 250", a.Resolved.X)
	}
}

func TestRelaxDeterministic(t *testing.T) {
	mk := func() []*LabelNode {
		return []*LabelNode{
			displacedNode("a", 100, 50, 0),
			displacedNode("b", 105, 50, 0),
			displacedNode("c", 120, 50, 0),
			displacedNode("d", 300, 50, 0),
		}
	}

	x, y := mk(), mk()
	Relax(x, RelaxConfig{})
	Relax(y, RelaxConfig{})

	for i := range x {
		if x[i].Resolved != y[i].Resolved {
			t.Fatalf("node %d resolved at %+v vs %+v", i, x[i].Resolved, y[i].Resolved)
		}
	}
}

func TestRelaxExactOverlapTieBreak(t *testing.T) {
	a := displacedNode("a", 200, 50, 0)
	b := displacedNode("b", 200, 50, 0)

	Relax([]*LabelNode{a, b}, RelaxConfig{})

	if a.Resolved.X == b.Resolved.X {
		t.Error("coincident labels should separate")
	}
}

func TestRelaxRowsIndependent(t *testing.T) {
	// Two colliding labels on row 0, one lone label on row 1 at the same x.
	a := displacedNode("a", 100, 60, 0)
	b := displacedNode("b", 110, 60, 0)
	c := displacedNode("c", 100, 60, 1)

	inline := &LabelNode{
		FeatureID: "inline",
		Target:    shape.Point{X: 105, Y: 50},
		Resolved:  shape.Point{X: 105, Y: 50},
	}

	RelaxRows([]*LabelNode{a, b, c, inline, nil}, RelaxConfig{})

	if math.Abs(c.Resolved.X-100) > 1e-9 {
		t.Errorf("row 1 label moved to %v despite having no neighbors", c.Resolved.X)
	}
	if math.Abs(a.Resolved.X-b.Resolved.X) <= 10 {
		t.Error("row 0 labels should separate")
	}
	if inline.Resolved.X != 105 {
		t.Error("inline labels must not be relaxed")
	}
}
