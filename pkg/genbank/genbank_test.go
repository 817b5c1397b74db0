package genbank

import (
	"reflect"
	"strings"
	"testing"

	"github.com/genomap/genomap/pkg/errors"
)

const sampleRecord = `LOCUS       pDEMO                 240 bp    DNA     circular SYN 01-JAN-2024
DEFINITION  demonstration plasmid with a multi-line
            definition field.
ACCESSION   pDEMO
FEATURES             Location/Qualifiers
     source          1..240
                     /organism="synthetic DNA construct"
     CDS             10..120
                     /gene="tstA"
                     /product="test protein alpha with a
                     wrapped product line"
     CDS             complement(130..200)
                     /gene="tstB"
     misc_feature    join(205..210,220..230)
                     /note="split site"
     promoter        <1..>9
ORIGIN
        1 gaattcaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa
       61 aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa
      121 aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa
      181 aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa aaaaaaaaaa
//
`

func TestParseLocus(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatal(err)
	}

	if rec.Locus.Name != "pDEMO" {
		t.Errorf("Name = %q", rec.Locus.Name)
	}
	if rec.Locus.SequenceLength != 240 {
		t.Errorf("SequenceLength = %d, want 240", rec.Locus.SequenceLength)
	}
	if rec.Locus.MoleculeType != "DNA" {
		t.Errorf("MoleculeType = %q", rec.Locus.MoleculeType)
	}
	if !rec.Locus.Circular {
		t.Error("record should be circular")
	}
	if rec.Locus.Division != "SYN" {
		t.Errorf("Division = %q, want SYN", rec.Locus.Division)
	}
}

func TestParseDefinitionJoinsLines(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatal(err)
	}
	want := "demonstration plasmid with a multi-line definition field."
	if rec.Definition != want {
		t.Errorf("Definition = %q, want %q", rec.Definition, want)
	}
}

func TestParseFeatures(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatal(err)
	}

	if len(rec.Features) != 5 {
		t.Fatalf("got %d features, want 5", len(rec.Features))
	}

	cds := rec.Features[1]
	if cds.Type != "CDS" {
		t.Errorf("Type = %q", cds.Type)
	}
	if cds.Qualifier("gene") != "tstA" {
		t.Errorf("gene = %q", cds.Qualifier("gene"))
	}
	want := []LocationSegment{{Start: "10", End: "120"}}
	if !reflect.DeepEqual(cds.Location, want) {
		t.Errorf("Location = %+v, want %+v", cds.Location, want)
	}
}

func TestParseMultiLineQualifier(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatal(err)
	}
	got := rec.Features[1].Qualifier("product")
	want := "test protein alpha with a wrapped product line"
	if got != want {
		t.Errorf("product = %q, want %q", got, want)
	}
}

func TestParseComplementLocation(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatal(err)
	}
	loc := rec.Features[2].Location
	if len(loc) != 1 || !loc[0].Complement {
		t.Fatalf("Location = %+v, want one complement segment", loc)
	}
	if loc[0].Start != "130" || loc[0].End != "200" {
		t.Errorf("segment = %+v", loc[0])
	}
}

func TestParseJoinLocation(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatal(err)
	}
	loc := rec.Features[3].Location
	want := []LocationSegment{
		{Start: "205", End: "210"},
		{Start: "220", End: "230"},
	}
	if !reflect.DeepEqual(loc, want) {
		t.Errorf("Location = %+v, want %+v", loc, want)
	}
}

func TestParsePartialMarkersKeptRaw(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatal(err)
	}
	loc := rec.Features[4].Location
	if len(loc) != 1 || loc[0].Start != "<1" || loc[0].End != ">9" {
		t.Errorf("Location = %+v, markers should stay textual", loc)
	}
}

func TestParseOrigin(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Origin) != 240 {
		t.Errorf("origin length = %d, want 240", len(rec.Origin))
	}
	if !strings.HasPrefix(rec.Origin, "gaattc") {
		t.Errorf("origin starts %q", rec.Origin[:6])
	}
	if rec.SequenceLength() != 240 {
		t.Errorf("SequenceLength() = %d", rec.SequenceLength())
	}
}

func TestParseMissingLocus(t *testing.T) {
	_, err := Parse(strings.NewReader("FEATURES\nORIGIN\n//\n"))
	if err == nil {
		t.Fatal("record without LOCUS should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidRecord) {
		t.Errorf("error code = %v, want ErrCodeInvalidRecord", errors.GetCode(err))
	}
}

func TestParseStopsAtTerminator(t *testing.T) {
	two := sampleRecord + "LOCUS       second                 10 bp    DNA     linear\n//\n"
	rec, err := Parse(strings.NewReader(two))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Locus.Name != "pDEMO" {
		t.Errorf("Parse read past the record terminator: %q", rec.Locus.Name)
	}
}

func TestSequenceLengthFallback(t *testing.T) {
	rec := &Record{Origin: "gaattc"}
	if rec.SequenceLength() != 6 {
		t.Errorf("SequenceLength() = %d, want origin fallback 6", rec.SequenceLength())
	}
}

func TestParseLocationGrammar(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []LocationSegment
	}{
		{"point", "467", []LocationSegment{{Start: "467"}}},
		{"interval", "340..565", []LocationSegment{{Start: "340", End: "565"}}},
		{
			"nested complement join",
			"complement(join(10..20,30..40))",
			[]LocationSegment{
				{Start: "10", End: "20", Complement: true},
				{Start: "30", End: "40", Complement: true},
			},
		},
		{
			"double complement cancels",
			"complement(complement(5..9))",
			[]LocationSegment{{Start: "5", End: "9"}},
		},
		{
			"order form",
			"order(1..3,7..9)",
			[]LocationSegment{{Start: "1", End: "3"}, {Start: "7", End: "9"}},
		},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLocation(tt.expr, false)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseLocation(%q) = %+v, want %+v", tt.expr, got, tt.want)
			}
		})
	}
}
