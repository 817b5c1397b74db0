package bounds

import (
	"testing"

	"github.com/genomap/genomap/pkg/seqmap"
)

func TestResolveSimple(t *testing.T) {
	ses := seqmap.NewSession(1000, false)

	span, segs, ok := Resolve("CDS-1", []RawSegment{{Start: "100", End: "400"}}, false, ses)
	if !ok {
		t.Fatal("feature should survive")
	}
	if span.Start != 99 || span.End != 399 || span.CrossesOrigin {
		t.Errorf("span = %+v, want {99 399 false}", span)
	}
	if len(segs) != 1 || segs[0].Start != 99 || segs[0].End != 399 {
		t.Errorf("segments = %+v", segs)
	}
	if len(ses.Diagnostics()) != 0 {
		t.Errorf("unexpected diagnostics: %v", ses.Diagnostics())
	}
}

func TestResolvePartialMarkers(t *testing.T) {
	ses := seqmap.NewSession(1000, false)

	span, _, ok := Resolve("CDS-1", []RawSegment{{Start: "<100", End: ">400"}}, false, ses)
	if !ok {
		t.Fatal("feature should survive")
	}
	if span.Start != 99 || span.End != 399 {
		t.Errorf("span = %+v, want {99 399}", span)
	}
}

func TestResolvePointLocation(t *testing.T) {
	ses := seqmap.NewSession(1000, false)

	span, segs, ok := Resolve("misc-1", []RawSegment{{Start: "250"}}, false, ses)
	if !ok {
		t.Fatal("feature should survive")
	}
	if span.Start != 249 || span.End != 249 {
		t.Errorf("span = %+v, want {249 249}", span)
	}
	if segs[0].Length() != 1 {
		t.Errorf("segment length = %d, want 1", segs[0].Length())
	}
}

func TestResolveCircularWrap(t *testing.T) {
	ses := seqmap.NewSession(1000, true)

	span, _, ok := Resolve("CDS-1", []RawSegment{{Start: "900", End: "100"}}, true, ses)
	if !ok {
		t.Fatal("feature should survive")
	}
	if !span.CrossesOrigin {
		t.Error("span should be flagged CrossesOrigin")
	}
	if span.Start != 899 || span.End != 99 {
		t.Errorf("span = %+v, want {899 99 true}", span)
	}
}

func TestResolveLinearSwapped(t *testing.T) {
	ses := seqmap.NewSession(1000, false)

	span, _, ok := Resolve("CDS-1", []RawSegment{{Start: "400", End: "100"}}, false, ses)
	if !ok {
		t.Fatal("feature should survive")
	}
	if span.CrossesOrigin {
		t.Error("linear span must never cross the origin")
	}
	if span.Start != 99 || span.End != 399 {
		t.Errorf("span = %+v, want swapped bounds {99 399}", span)
	}
}

func TestResolveMultiSegmentSpan(t *testing.T) {
	ses := seqmap.NewSession(1000, false)

	raw := []RawSegment{
		{Start: "300", End: "400"},
		{Start: "100", End: "150"},
		{Start: "600", End: "700", Reverse: true},
	}
	span, segs, ok := Resolve("CDS-1", raw, false, ses)
	if !ok {
		t.Fatal("feature should survive")
	}
	if span.Start != 99 || span.End != 699 {
		t.Errorf("span = %+v, want overall extent {99 699}", span)
	}
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if !segs[2].Reverse {
		t.Error("reverse flag should survive resolution")
	}
}

func TestResolveWrappingSegmentDictatesSpan(t *testing.T) {
	ses := seqmap.NewSession(1000, true)

	raw := []RawSegment{
		{Start: "900", End: "100"},
		{Start: "200", End: "300"},
	}
	span, _, ok := Resolve("CDS-1", raw, true, ses)
	if !ok {
		t.Fatal("feature should survive")
	}
	if !span.CrossesOrigin || span.Start != 899 || span.End != 99 {
		t.Errorf("span = %+v, wrapping segment should dictate the whole span", span)
	}
}

func TestResolveDropsMalformedSegments(t *testing.T) {
	ses := seqmap.NewSession(1000, false)

	raw := []RawSegment{
		{Start: "abc", End: "100"},
		{Start: "200", End: "xyz"},
		{Start: "300", End: "350"},
	}
	span, segs, ok := Resolve("CDS-1", raw, false, ses)
	if !ok {
		t.Fatal("feature should survive on the one valid segment")
	}
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	if span.Start != 299 || span.End != 349 {
		t.Errorf("span = %+v, want {299 349}", span)
	}
	if len(ses.Diagnostics()) != 2 {
		t.Errorf("got %d diagnostics, want 2 dropped-segment reports", len(ses.Diagnostics()))
	}
}

func TestResolveExcludesFeatureWithNoValidSegments(t *testing.T) {
	ses := seqmap.NewSession(1000, false)

	_, _, ok := Resolve("CDS-1", []RawSegment{{Start: "abc"}}, false, ses)
	if ok {
		t.Fatal("feature with no valid segments must be excluded")
	}

	diags := ses.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want dropped segment plus exclusion", len(diags))
	}
	if diags[1].FeatureID != "CDS-1" {
		t.Errorf("exclusion diagnostic should carry the feature ID, got %q", diags[1].FeatureID)
	}
}
