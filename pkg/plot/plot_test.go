package plot

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/genomap/genomap/pkg/seqmap"
	"github.com/genomap/genomap/pkg/seqmap/layout"
	"github.com/genomap/genomap/pkg/seqmap/shape"
)

func sampleLayout() Layout {
	return Layout{
		View:       "linear",
		Width:      800,
		Height:     600,
		SequenceID: "pDEMO",
		SeqLength:  1000,
		Shapes: []Shape{
			{
				FeatureID: "CDS-1",
				Row:       0,
				Kind:      KindPolygon,
				Polygon:   &Polygon{Points: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 110, Y: 7}}},
			},
			{
				FeatureID: "misc-1",
				Row:       1,
				Kind:      KindRect,
				Rect:      &Rect{X: 200, Y: 62, W: 80, H: 14},
			},
		},
		Labels: []Label{
			{FeatureID: "CDS-1", Text: "lacZ", X: 55, Y: 47},
			{
				FeatureID: "misc-1", Text: "MCS", X: 240, Y: 100,
				Displaced: true,
				Leader:    &Line{X1: 240, Y1: 100, X2: 240, Y2: 76},
			},
		},
		Ticks:    []Tick{{Position: 200, X: 174, Y: 552}},
		CutSites: []CutSite{{Enzyme: "EcoRI", Position: 100, X: 99, Y: 539}},
		Rows:     map[int][]string{0: {"CDS-1"}, 1: {"misc-1"}},
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := sampleLayout()

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatal(err)
	}

	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("round trip changed the layout:\ngot  %+v\nwant %+v", got, l)
	}
}

func TestUnmarshalDefaultsView(t *testing.T) {
	l, err := UnmarshalLayout([]byte(`{"seq_length": 100}`))
	if err != nil {
		t.Fatal(err)
	}
	if l.View != "linear" {
		t.Errorf("View = %q, want linear default", l.View)
	}
	if l.IsCircular() {
		t.Error("defaulted layout should not be circular")
	}
}

func TestUnmarshalRejectsMissingLength(t *testing.T) {
	if _, err := UnmarshalLayout([]byte(`{"view": "linear"}`)); err == nil {
		t.Error("layout without a sequence length should be rejected")
	}
	if _, err := UnmarshalLayout([]byte(`not json`)); err == nil {
		t.Error("malformed JSON should be rejected")
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	l := sampleLayout()

	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Error("file round trip changed the layout")
	}
}

func TestExport(t *testing.T) {
	res := layout.Result{
		View:           layout.ViewCircular,
		Width:          800,
		Height:         600,
		SequenceLength: 1000,
		Definition:     "demo",
		CenterX:        400,
		CenterY:        300,
		BaseRadius:     249,
		Shapes: []layout.PlacedShape{
			{FeatureID: "CDS-1", Row: 0, Geometry: shape.AnnularArrow{
				Inner: 235, Outer: 249, StartAngle: 0, EndAngle: 1.2,
				TipAngleOffset: 0.05, Tip: shape.Point{X: 200, Y: 120},
			}},
			{FeatureID: "misc-1", Row: 1, Geometry: shape.AnnularSector{
				Inner: 213, Outer: 227, StartAngle: 2, EndAngle: 2.5,
			}},
		},
		Labels: []*layout.LabelNode{
			{
				FeatureID: "CDS-1", Text: "lacZ", Row: 0,
				Displaced: true,
				Resolved:  shape.Point{X: 180, Y: 200},
				Anchor:    shape.Point{X: 170, Y: 182},
			},
			nil,
		},
		Rows:        map[int][]string{0: {"CDS-1"}, 1: {"misc-1"}},
		SessionID:   "s-1",
		Diagnostics: []seqmap.Diagnostic{{FeatureID: "x", Message: "skipped"}},
	}

	l := Export(res, "pDEMO")

	if l.View != "circular" || !l.IsCircular() {
		t.Errorf("View = %q", l.View)
	}
	if l.SequenceID != "pDEMO" || l.SeqLength != 1000 {
		t.Errorf("identity fields: %q, %d", l.SequenceID, l.SeqLength)
	}
	if l.CenterX != 400 || l.BaseRadius != 249 {
		t.Errorf("geometry fields: %v, %v", l.CenterX, l.BaseRadius)
	}

	if len(l.Shapes) != 2 {
		t.Fatalf("got %d shapes, want 2", len(l.Shapes))
	}
	if l.Shapes[0].Kind != KindAnnularArrow || l.Shapes[0].Annular == nil || l.Shapes[0].Annular.Tip == nil {
		t.Errorf("arrow shape = %+v", l.Shapes[0])
	}
	if l.Shapes[1].Kind != KindAnnularSector || l.Shapes[1].Annular.Tip != nil {
		t.Errorf("sector shape = %+v", l.Shapes[1])
	}

	// Nil label nodes are dropped; displaced labels carry a leader.
	if len(l.Labels) != 1 {
		t.Fatalf("got %d labels, want 1", len(l.Labels))
	}
	lbl := l.Labels[0]
	if !lbl.Displaced || lbl.Leader == nil {
		t.Errorf("label = %+v, want displaced with leader", lbl)
	}
	if lbl.Leader.X2 != 170 || lbl.Leader.Y2 != 182 {
		t.Errorf("leader ends at (%v, %v), want the anchor", lbl.Leader.X2, lbl.Leader.Y2)
	}

	if len(l.Diagnostics) != 1 || l.Diagnostics[0].Message != "skipped" {
		t.Errorf("diagnostics = %+v", l.Diagnostics)
	}
}

func TestExportLinearShapes(t *testing.T) {
	res := layout.Result{
		View:           layout.ViewLinear,
		SequenceLength: 100,
		Shapes: []layout.PlacedShape{
			{FeatureID: "a", Geometry: shape.Rect{X: 1, Y: 2, W: 3, H: 4}},
			{FeatureID: "b", Geometry: shape.Polygon{Points: []shape.Point{{X: 1, Y: 1}}}},
		},
	}

	l := Export(res, "x")

	if l.Shapes[0].Kind != KindRect || l.Shapes[0].Rect.W != 3 {
		t.Errorf("rect = %+v", l.Shapes[0])
	}
	if l.Shapes[1].Kind != KindPolygon || len(l.Shapes[1].Polygon.Points) != 1 {
		t.Errorf("polygon = %+v", l.Shapes[1])
	}
}
