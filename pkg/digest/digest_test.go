package digest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/genomap/genomap/pkg/errors"
)

func enzyme(name, recognition string) Enzyme {
	return Enzyme{Name: name, Recognition: recognition, CutIndex: 1, CutDistance: 4}
}

func TestScanSimple(t *testing.T) {
	//                 1234567890123
	sites, err := Scan("aagaattcttgaattc", false, []Enzyme{enzyme("EcoRI", "GAATTC")})
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 2 {
		t.Fatalf("got %d sites, want 2", len(sites))
	}
	if sites[0].Position != 3 || sites[1].Position != 11 {
		t.Errorf("positions = %d, %d, want 3, 11", sites[0].Position, sites[1].Position)
	}
	if sites[0].Enzyme != "EcoRI" || sites[0].Recognition != "GAATTC" {
		t.Errorf("site = %+v", sites[0])
	}
}

func TestScanCaseInsensitive(t *testing.T) {
	sites, err := Scan("GaAtTc", false, []Enzyme{enzyme("EcoRI", "gaattc")})
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 || sites[0].Position != 1 {
		t.Errorf("sites = %+v", sites)
	}
}

func TestScanDegenerateCodes(t *testing.T) {
	// GRATYC: R matches A/G, Y matches C/T.
	sites, err := Scan("gaatcc"+"ggattc", false, []Enzyme{enzyme("X", "GRATYC")})
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 2 {
		t.Fatalf("got %d sites, want 2 degenerate matches", len(sites))
	}

	sites, err = Scan("gaattc", false, []Enzyme{enzyme("N6", "NNNNNN")})
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 {
		t.Errorf("N pattern should match anywhere, got %d", len(sites))
	}
}

func TestScanCircularWrap(t *testing.T) {
	// Site spans the origin: TC...GAAT.
	seq := "ttcaaaaaaagaa"

	sites, err := Scan(seq, true, []Enzyme{enzyme("EcoRI", "GAATTC")})
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 {
		t.Fatalf("got %d sites, want 1 wrapped match", len(sites))
	}
	if sites[0].Position != 11 {
		t.Errorf("position = %d, want 11 (near the end)", sites[0].Position)
	}

	// Linear scan must not find it.
	sites, err = Scan(seq, false, []Enzyme{enzyme("EcoRI", "GAATTC")})
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 0 {
		t.Errorf("linear scan found %d sites across the origin", len(sites))
	}
}

func TestScanPatternLongerThanSequence(t *testing.T) {
	sites, err := Scan("gaat", true, []Enzyme{enzyme("EcoRI", "GAATTC")})
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 0 {
		t.Errorf("got %d sites from an undersized sequence", len(sites))
	}
}

func TestScanEmptySequence(t *testing.T) {
	sites, err := Scan("", true, DefaultEnzymes())
	if err != nil {
		t.Fatal(err)
	}
	if sites != nil {
		t.Errorf("sites = %v, want nil", sites)
	}
}

func TestScanInvalidPattern(t *testing.T) {
	_, err := Scan("gaattc", false, []Enzyme{enzyme("bad", "GAAT-C")})
	if err == nil {
		t.Fatal("invalid IUPAC code should error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidEnzyme) {
		t.Errorf("error code = %v", errors.GetCode(err))
	}

	_, err = Scan("gaattc", false, []Enzyme{{Name: "empty"}})
	if !errors.Is(err, errors.ErrCodeInvalidEnzyme) {
		t.Errorf("empty pattern error code = %v", errors.GetCode(err))
	}
}

func TestSelectEnzymes(t *testing.T) {
	set := DefaultEnzymes()

	selected, err := SelectEnzymes(set, []string{"EcoRI", "PstI"})
	if err != nil {
		t.Fatal(err)
	}
	if len(selected) != 2 || selected[0].Name != "EcoRI" || selected[1].Name != "PstI" {
		t.Errorf("selected = %+v", selected)
	}

	// Empty selection keeps the whole set.
	all, err := SelectEnzymes(set, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(set) {
		t.Errorf("got %d enzymes, want %d", len(all), len(set))
	}
}

func TestSelectEnzymesUnknown(t *testing.T) {
	_, err := SelectEnzymes(DefaultEnzymes(), []string{"EcoRl"})
	if err == nil {
		t.Fatal("typo should error, not silently digest nothing")
	}
	if !errors.Is(err, errors.ErrCodeEnzymeNotFound) {
		t.Errorf("error code = %v", errors.GetCode(err))
	}
}

func TestLoadEnzymes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enzymes.toml")
	content := `
[[enzymes]]
name = "EcoRI"
recognition = "GAATTC"
cut_index = 1
cut_distance = 4

[[enzymes]]
name = "SmaI"
recognition = "CCCGGG"
cut_index = 3
cut_distance = 0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadEnzymes(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 2 {
		t.Fatalf("got %d enzymes, want 2", len(set))
	}
	if set[0].Name != "EcoRI" || set[0].CutDistance != 4 {
		t.Errorf("set[0] = %+v", set[0])
	}
	if set[1].CutDistance != 0 {
		t.Errorf("set[1] = %+v", set[1])
	}
}

func TestLoadEnzymesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.toml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadEnzymes(path)
	if !errors.Is(err, errors.ErrCodeInvalidEnzyme) {
		t.Errorf("empty set error code = %v", errors.GetCode(err))
	}
}

func TestDefaultEnzymesWellFormed(t *testing.T) {
	for _, e := range DefaultEnzymes() {
		if e.Name == "" || e.Recognition == "" {
			t.Errorf("malformed built-in enzyme %+v", e)
		}
		for _, c := range []byte(e.Recognition) {
			if _, ok := iupac[c]; !ok {
				t.Errorf("enzyme %s: invalid code %q", e.Name, string(c))
			}
		}
	}
}
