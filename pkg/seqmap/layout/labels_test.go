package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/genomap/genomap/pkg/seqmap"
)

func feature(id, label string) seqmap.Feature {
	return seqmap.Feature{ID: id, Type: "CDS", Info: map[string]string{"gene": label}}
}

func TestApproxMeasure(t *testing.T) {
	w, h, err := ApproxMeasure("lacZ", 10)
	if err != nil {
		t.Fatal(err)
	}
	if w != 4*10*approxCharWidth {
		t.Errorf("w = %v", w)
	}
	if h != 10*approxLineHeight {
		t.Errorf("h = %v", h)
	}
}

func TestPlaceInline(t *testing.T) {
	ses := seqmap.NewSession(1000, false)
	p := NewPlacer(nil, nil, 10, 8, 18, 0)

	// "ori" at 10pt is ~16.5px wide; a 200px shape fits it easily.
	node := p.Place(feature("f1", "ori"), ses, 100, 40, 200, 14, 0)
	if node == nil {
		t.Fatal("expected a label node")
	}
	if node.Displaced {
		t.Error("short label in a wide shape should be inline")
	}
	if node.Target.X != 200 || node.Target.Y != 47 {
		t.Errorf("target = %+v, want shape center {200 47}", node.Target)
	}
	if node.Resolved != node.Target {
		t.Error("inline labels resolve at their target")
	}
}

func TestPlaceDisplaced(t *testing.T) {
	ses := seqmap.NewSession(1000, false)
	p := NewPlacer(nil, nil, 10, 8, 18, 0)

	node := p.Place(feature("f1", "a rather long product name"), ses, 100, 40, 30, 14, 2)
	if node == nil {
		t.Fatal("expected a label node")
	}
	if !node.Displaced {
		t.Error("oversized label should be displaced")
	}
	if node.Anchor.X != 115 || node.Anchor.Y != 54 {
		t.Errorf("anchor = %+v, want bottom center {115 54}", node.Anchor)
	}
	if node.Target.Y != node.Anchor.Y+18 {
		t.Errorf("target Y = %v, want anchor plus offset", node.Target.Y)
	}
	if node.Row != 2 {
		t.Errorf("row = %d, want 2", node.Row)
	}
}

func TestPlaceEmptyLabel(t *testing.T) {
	ses := seqmap.NewSession(1000, false)
	p := NewPlacer(nil, nil, 10, 8, 18, 0)

	f := seqmap.Feature{ID: "f1", Info: map[string]string{}}
	if node := p.Place(f, ses, 0, 0, 100, 14, 0); node != nil {
		t.Error("feature with no label text should produce no node")
	}
}

func TestPlaceMeasurerFailureDisplaces(t *testing.T) {
	ses := seqmap.NewSession(1000, false)
	broken := func(string, float64) (float64, float64, error) {
		return 0, 0, fmt.Errorf("font not loaded")
	}
	p := NewPlacer(broken, nil, 10, 8, 18, 0)

	node := p.Place(feature("f1", "ori"), ses, 0, 0, 500, 14, 0)
	if node == nil {
		t.Fatal("expected a label node")
	}
	if !node.Displaced {
		t.Error("measurement failure should displace, not crash or drop")
	}
	if node.W == 0 {
		t.Error("fallback width should come from the approximate model")
	}
	if len(ses.Diagnostics()) != 1 {
		t.Errorf("got %d diagnostics, want 1", len(ses.Diagnostics()))
	}
}

func TestPlaceNonFiniteWidthDisplaces(t *testing.T) {
	ses := seqmap.NewSession(1000, false)
	broken := func(string, float64) (float64, float64, error) {
		return math.NaN(), 12, nil
	}
	p := NewPlacer(broken, nil, 10, 8, 18, 0)

	node := p.Place(feature("f1", "ori"), ses, 0, 0, 500, 14, 0)
	if node == nil || !node.Displaced {
		t.Fatal("non-finite width should displace the label")
	}
}

func TestApproxTruncate(t *testing.T) {
	if text, cut := ApproxTruncate("ori", 200, 10); cut || text != "ori" {
		t.Errorf("fitting text changed: %q, %v", text, cut)
	}

	// 20 characters fit at 10pt: width 110 allows exactly 20 cells.
	text, cut := ApproxTruncate("a gene name that runs on and on", 110, 10)
	if !cut {
		t.Fatal("overflowing text should truncate")
	}
	if len([]rune(text)) > 20 {
		t.Errorf("truncated text %q exceeds the budget", text)
	}
	if text[len(text)-2:] != ".." {
		t.Errorf("truncated text = %q, want ellipsis suffix", text)
	}
}

func TestPlaceTruncatesLongLabel(t *testing.T) {
	ses := seqmap.NewSession(1000, false)
	p := NewPlacer(nil, nil, 10, 8, 18, 100)

	long := make([]byte, 260)
	for i := range long {
		long[i] = 'a'
	}
	node := p.Place(feature("f1", string(long)), ses, 100, 40, 30, 14, 0)
	if node == nil {
		t.Fatal("expected a label node")
	}
	if !node.Displaced {
		t.Error("oversized label should be displaced")
	}
	if !node.Truncated {
		t.Error("label wider than the cap should be truncated")
	}
	if node.W > 100 {
		t.Errorf("truncated width = %v, want at most the cap", node.W)
	}
	if got := node.Text[len(node.Text)-2:]; got != ".." {
		t.Errorf("text ends %q, want ellipsis", got)
	}
}

func TestPlaceNoCapKeepsFullText(t *testing.T) {
	ses := seqmap.NewSession(1000, false)
	p := NewPlacer(nil, nil, 10, 8, 18, 0)

	node := p.Place(feature("f1", "a rather long product name"), ses, 100, 40, 30, 14, 0)
	if node == nil {
		t.Fatal("expected a label node")
	}
	if node.Truncated {
		t.Error("placer without a width cap must not truncate")
	}
	if node.Text != "a rather long product name" {
		t.Errorf("text = %q", node.Text)
	}
}

func TestPlaceAngularTruncatesLongLabel(t *testing.T) {
	ses := seqmap.NewSession(1000, true)
	p := NewPlacer(nil, nil, 10, 8, 18, 80)

	node := p.PlaceAngular(feature("f1", "hypothetical protein fragment"), ses, 1.0, 10, 90, 110, 0)
	if node == nil {
		t.Fatal("expected a label node")
	}
	if !node.Truncated {
		t.Error("overlong circular label should be truncated")
	}
	if node.W > 80 {
		t.Errorf("truncated width = %v, want at most the cap", node.W)
	}
}

func TestPlaceAngularInline(t *testing.T) {
	ses := seqmap.NewSession(1000, true)
	p := NewPlacer(nil, nil, 10, 8, 18, 0)

	node := p.PlaceAngular(feature("f1", "ori"), ses, math.Pi/2, 200, 90, 110, 0)
	if node == nil {
		t.Fatal("expected a label node")
	}
	if node.Displaced {
		t.Error("short label on a long arc should be inline")
	}
	// Inline target on the mid radius at the mid angle: (0, 100).
	if math.Abs(node.Target.X) > 1e-9 || math.Abs(node.Target.Y-100) > 1e-9 {
		t.Errorf("target = %+v, want {0 100}", node.Target)
	}
}

func TestPlaceAngularDisplaced(t *testing.T) {
	ses := seqmap.NewSession(1000, true)
	p := NewPlacer(nil, nil, 10, 8, 18, 0)

	node := p.PlaceAngular(feature("f1", "a rather long product name"), ses, 1.0, 10, 90, 110, 1)
	if node == nil {
		t.Fatal("expected a label node")
	}
	if !node.Displaced {
		t.Error("oversized label should be displaced")
	}
	// Relaxation coordinate: arc position in X, label radius in Y.
	if node.Target.Y != 110+18 {
		t.Errorf("label radius = %v, want outer plus offset", node.Target.Y)
	}
	if math.Abs(node.Target.X-1.0*(110+18)) > 1e-9 {
		t.Errorf("arc position = %v, want angle*radius", node.Target.X)
	}
}
