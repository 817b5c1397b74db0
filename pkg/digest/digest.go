// Package digest scans sequences for restriction enzyme recognition sites.
//
// Recognition patterns use the IUPAC degenerate alphabet (N matches any
// base, R matches A/G, and so on). Scanning covers the forward strand; on
// circular sequences the window wraps across the origin so sites spanning
// position 0 are found too.
//
// The layout engine treats the resulting sites as point features: they
// compete for label rows on rendered text width, not sequence overlap.
package digest

import (
	"strings"

	"github.com/genomap/genomap/pkg/errors"
)

// Enzyme describes one restriction enzyme.
type Enzyme struct {
	// Name is the conventional enzyme name, e.g. "EcoRI".
	Name string `toml:"name"`

	// Recognition is the IUPAC recognition pattern, e.g. "GAATTC".
	Recognition string `toml:"recognition"`

	// CutIndex is the offset within the recognition pattern where the top
	// strand is cut.
	CutIndex int `toml:"cut_index"`

	// CutDistance is the offset from the top-strand cut to the bottom-strand
	// cut; positive values leave 5' overhangs, zero means blunt.
	CutDistance int `toml:"cut_distance"`
}

// Site is one located recognition site. Position is 1-based, the convention
// of the wet-lab tools this output is compared against.
type Site struct {
	Enzyme      string `json:"enzyme"`
	Position    int    `json:"position"`
	CutIndex    int    `json:"cut_index"`
	CutDistance int    `json:"cut_distance"`
	Recognition string `json:"recognition"`
}

// iupac maps each degenerate code to the bases it matches.
var iupac = map[byte]string{
	'A': "A", 'C': "C", 'G': "G", 'T': "T",
	'R': "AG", 'Y': "CT", 'S': "CG", 'W': "AT",
	'K': "GT", 'M': "AC",
	'B': "CGT", 'D': "AGT", 'H': "ACT", 'V': "ACG",
	'N': "ACGT",
}

// Scan finds all recognition sites of the given enzymes on the forward
// strand of seq. When circular is true the scan window wraps across the
// origin; wrapped matches report their (1-based) start position near the
// end of the sequence.
func Scan(seq string, circular bool, enzymes []Enzyme) ([]Site, error) {
	seq = strings.ToUpper(seq)
	n := len(seq)
	if n == 0 {
		return nil, nil
	}

	var sites []Site
	for _, e := range enzymes {
		pattern := strings.ToUpper(e.Recognition)
		if pattern == "" {
			return nil, errors.New(errors.ErrCodeInvalidEnzyme, "enzyme %s has an empty recognition pattern", e.Name)
		}
		for _, c := range []byte(pattern) {
			if _, ok := iupac[c]; !ok {
				return nil, errors.New(errors.ErrCodeInvalidEnzyme, "enzyme %s: invalid IUPAC code %q", e.Name, string(c))
			}
		}
		if len(pattern) > n {
			continue
		}

		limit := n - len(pattern) + 1
		if circular {
			limit = n
		}
		for pos := 0; pos < limit; pos++ {
			if matchesAt(seq, pattern, pos) {
				sites = append(sites, Site{
					Enzyme:      e.Name,
					Position:    pos + 1,
					CutIndex:    e.CutIndex,
					CutDistance: e.CutDistance,
					Recognition: e.Recognition,
				})
			}
		}
	}
	return sites, nil
}

// matchesAt tests the pattern against seq starting at pos, wrapping past
// the end of seq (the caller limits pos so wrapping only happens for
// circular scans).
func matchesAt(seq, pattern string, pos int) bool {
	n := len(seq)
	for i := 0; i < len(pattern); i++ {
		base := seq[(pos+i)%n]
		if !strings.ContainsRune(iupac[pattern[i]], rune(base)) {
			return false
		}
	}
	return true
}
