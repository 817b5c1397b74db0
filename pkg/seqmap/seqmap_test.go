package seqmap

import "testing"

func TestSpanLength(t *testing.T) {
	tests := []struct {
		name   string
		span   Span
		seqLen int
		want   int
	}{
		{"simple", Span{Start: 10, End: 19}, 100, 10},
		{"single position", Span{Start: 5, End: 5}, 100, 1},
		{"crosses origin", Span{Start: 90, End: 9, CrossesOrigin: true}, 100, 20},
		{"crosses at boundary", Span{Start: 99, End: 0, CrossesOrigin: true}, 100, 2},
		{"crossing flag with zero seqlen", Span{Start: 90, End: 9, CrossesOrigin: true}, 0, -80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Length(tt.seqLen); got != tt.want {
				t.Errorf("Length(%d) = %d, want %d", tt.seqLen, got, tt.want)
			}
		})
	}
}

func TestSegmentLength(t *testing.T) {
	if got := (Segment{Start: 4, End: 33}).Length(); got != 30 {
		t.Errorf("Length() = %d, want 30", got)
	}
	if got := (Segment{Start: 7, End: 7}).Length(); got != 1 {
		t.Errorf("Length() = %d, want 1", got)
	}
}

func TestFeatureLabel(t *testing.T) {
	tests := []struct {
		name    string
		feature Feature
		want    string
	}{
		{
			"gene wins",
			Feature{Type: "CDS", Info: map[string]string{"gene": "lacZ", "product": "beta-galactosidase"}},
			"lacZ",
		},
		{
			"product fallback",
			Feature{Type: "CDS", Info: map[string]string{"product": "beta-galactosidase"}},
			"beta-galactosidase",
		},
		{
			"note fallback",
			Feature{Type: "misc_feature", Info: map[string]string{"note": "MCS"}},
			"MCS",
		},
		{
			"type fallback",
			Feature{Type: "rep_origin", Info: map[string]string{}},
			"rep_origin",
		},
		{
			"nil info",
			Feature{Type: "promoter"},
			"promoter",
		},
		{
			"empty gene skipped",
			Feature{Type: "CDS", Info: map[string]string{"gene": "", "note": "orf"}},
			"orf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.feature.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionDiagnostics(t *testing.T) {
	ses := NewSession(1000, true)

	if ses.ID == "" {
		t.Error("session should get a generated ID")
	}
	if len(ses.Diagnostics()) != 0 {
		t.Error("fresh session should have no diagnostics")
	}

	ses.Report("CDS-1", "segment %d dropped", 2)
	ses.Report("", "general condition")

	diags := ses.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(diags))
	}
	if diags[0].String() != "CDS-1: segment 2 dropped" {
		t.Errorf("diags[0] = %q", diags[0].String())
	}
	if diags[1].String() != "general condition" {
		t.Errorf("diags[1] = %q", diags[1].String())
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a := NewSession(100, false)
	b := NewSession(100, false)

	if a.ID == b.ID {
		t.Error("sessions should get distinct IDs")
	}

	a.Report("x", "only in a")
	if len(b.Diagnostics()) != 0 {
		t.Error("diagnostics must not leak between sessions")
	}
}
