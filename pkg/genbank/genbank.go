// Package genbank decodes GenBank flat files into records the layout
// pipeline can consume: locus metadata, the feature table with raw location
// tokens, and the origin sequence.
//
// Location tokens are deliberately left textual (including the < and >
// partial-match markers); numeric normalization is owned by the bounds
// resolver, which also decides what to do with malformed tokens.
package genbank

// Locus carries the LOCUS line metadata.
type Locus struct {
	Name           string
	SequenceLength int
	MoleculeType   string
	Division       string
	Circular       bool
}

// LocationSegment is one raw location interval. Start and End keep the
// original tokens; End is empty for single-point locations. Complement
// marks reverse-strand segments.
type LocationSegment struct {
	Start      string
	End        string
	Complement bool
}

// Feature is one entry of the feature table.
type Feature struct {
	Type       string
	Location   []LocationSegment
	Qualifiers map[string]string
}

// Qualifier returns the named qualifier value, or "" when absent.
func (f Feature) Qualifier(key string) string { return f.Qualifiers[key] }

// Record is one decoded GenBank entry.
type Record struct {
	Locus      Locus
	Definition string
	Features   []Feature
	Origin     string
}

// SequenceLength returns the locus length when present, falling back to
// the origin sequence length.
func (r *Record) SequenceLength() int {
	if r.Locus.SequenceLength > 0 {
		return r.Locus.SequenceLength
	}
	return len(r.Origin)
}
