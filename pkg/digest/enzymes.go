package digest

import (
	"github.com/BurntSushi/toml"

	"github.com/genomap/genomap/pkg/errors"
)

// enzymeFile is the TOML shape of an enzyme set file:
//
//	[[enzymes]]
//	name = "EcoRI"
//	recognition = "GAATTC"
//	cut_index = 1
//	cut_distance = 4
type enzymeFile struct {
	Enzymes []Enzyme `toml:"enzymes"`
}

// LoadEnzymes reads an enzyme set from a TOML file.
func LoadEnzymes(path string) ([]Enzyme, error) {
	var f enzymeFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEnzyme, err, "load enzyme set %s", path)
	}
	if len(f.Enzymes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidEnzyme, "enzyme set %s defines no enzymes", path)
	}
	return f.Enzymes, nil
}

// DefaultEnzymes returns the built-in enzyme set: the common cloning
// enzymes most maps are digested with.
func DefaultEnzymes() []Enzyme {
	return []Enzyme{
		{Name: "EcoRI", Recognition: "GAATTC", CutIndex: 1, CutDistance: 4},
		{Name: "BamHI", Recognition: "GGATCC", CutIndex: 1, CutDistance: 4},
		{Name: "HindIII", Recognition: "AAGCTT", CutIndex: 1, CutDistance: 4},
		{Name: "NotI", Recognition: "GCGGCCGC", CutIndex: 2, CutDistance: 4},
		{Name: "PstI", Recognition: "CTGCAG", CutIndex: 5, CutDistance: -4},
		{Name: "SmaI", Recognition: "CCCGGG", CutIndex: 3, CutDistance: 0},
		{Name: "XhoI", Recognition: "CTCGAG", CutIndex: 1, CutDistance: 4},
		{Name: "EcoRV", Recognition: "GATATC", CutIndex: 3, CutDistance: 0},
	}
}

// SelectEnzymes filters the set down to the named enzymes. Unknown names
// are an error so typos surface instead of silently digesting nothing.
func SelectEnzymes(set []Enzyme, names []string) ([]Enzyme, error) {
	if len(names) == 0 {
		return set, nil
	}
	byName := make(map[string]Enzyme, len(set))
	for _, e := range set {
		byName[e.Name] = e
	}

	out := make([]Enzyme, 0, len(names))
	for _, name := range names {
		e, ok := byName[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeEnzymeNotFound, "unknown enzyme %q", name)
		}
		out = append(out, e)
	}
	return out, nil
}
