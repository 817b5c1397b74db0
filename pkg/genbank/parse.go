package genbank

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/genomap/genomap/pkg/errors"
)

// qualifierIndent is the column where feature qualifiers and location
// continuations begin in the flat file format.
const qualifierIndent = 21

// ParseFile decodes the first GenBank record in the file at path.
func ParseFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes the first GenBank record from r. Parsing stops at the //
// record terminator; malformed feature locations are kept as raw tokens for
// the bounds resolver to diagnose, so Parse itself only fails on records
// missing a LOCUS line entirely.
func Parse(r io.Reader) (*Record, error) {
	rec := &Record{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		sawLocus   bool
		section    string
		defBuilder strings.Builder
		origin     strings.Builder
		current    *Feature
		locBuf     strings.Builder
		qualKey    string
		qualBuf    strings.Builder
	)

	flushQualifier := func() {
		if current != nil && qualKey != "" {
			current.Qualifiers[qualKey] = strings.Trim(qualBuf.String(), `"`)
		}
		qualKey = ""
		qualBuf.Reset()
	}
	flushFeature := func() {
		flushQualifier()
		if current != nil {
			current.Location = parseLocation(locBuf.String(), false)
			rec.Features = append(rec.Features, *current)
			current = nil
		}
		locBuf.Reset()
	}

	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "//") {
			break
		}

		switch {
		case strings.HasPrefix(line, "LOCUS"):
			rec.Locus = parseLocus(line)
			sawLocus = true
			section = ""
		case strings.HasPrefix(line, "DEFINITION"):
			section = "DEFINITION"
			defBuilder.WriteString(strings.TrimSpace(line[len("DEFINITION"):]))
		case strings.HasPrefix(line, "FEATURES"):
			section = "FEATURES"
		case strings.HasPrefix(line, "ORIGIN"):
			flushFeature()
			section = "ORIGIN"
		case len(line) > 0 && line[0] != ' ':
			// Any other top-level keyword (ACCESSION, SOURCE, ...) ends the
			// running section; those fields are not needed for layout.
			if section == "FEATURES" {
				flushFeature()
			}
			section = ""
		default:
			switch section {
			case "DEFINITION":
				defBuilder.WriteString(" ")
				defBuilder.WriteString(strings.TrimSpace(line))
			case "FEATURES":
				parseFeatureLine(line, &current, &locBuf, &qualKey, &qualBuf, flushFeature, flushQualifier)
			case "ORIGIN":
				origin.WriteString(stripOriginLine(line))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "read record")
	}
	flushFeature()

	if !sawLocus {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "missing LOCUS line")
	}
	rec.Definition = defBuilder.String()
	rec.Origin = origin.String()
	return rec, nil
}

// parseLocus splits the LOCUS line into its fixed fields. The format is
// loose in the wild, so fields are located by token shape (length before a
// "bp"/"aa" unit) rather than by column.
func parseLocus(line string) Locus {
	loc := Locus{}
	fields := strings.Fields(line)
	if len(fields) > 1 {
		loc.Name = fields[1]
	}

	for i, f := range fields {
		switch strings.ToLower(f) {
		case "bp", "aa":
			if i > 0 {
				if n, err := strconv.Atoi(fields[i-1]); err == nil {
					loc.SequenceLength = n
				}
			}
			if i+1 < len(fields) {
				loc.MoleculeType = fields[i+1]
			}
		case "circular":
			loc.Circular = true
		}
	}

	// Division is the three-letter code before the trailing date, when both
	// are present.
	if n := len(fields); n >= 2 && len(fields[n-1]) == 11 && strings.Count(fields[n-1], "-") == 2 {
		if len(fields[n-2]) == 3 && fields[n-2] != loc.MoleculeType {
			loc.Division = fields[n-2]
		}
	}
	return loc
}

func parseFeatureLine(line string, current **Feature, locBuf *strings.Builder, qualKey *string, qualBuf *strings.Builder, flushFeature, flushQualifier func()) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	indent := len(line) - len(strings.TrimLeft(line, " "))

	switch {
	case indent < qualifierIndent && !strings.HasPrefix(trimmed, "/"):
		// New feature: type at column 5, location starting at column 21.
		flushFeature()
		parts := strings.Fields(trimmed)
		f := &Feature{Type: parts[0], Qualifiers: make(map[string]string)}
		*current = f
		if len(parts) > 1 {
			locBuf.WriteString(strings.Join(parts[1:], ""))
		}

	case strings.HasPrefix(trimmed, "/"):
		flushQualifier()
		key, value, found := strings.Cut(trimmed[1:], "=")
		*qualKey = key
		if found {
			qualBuf.WriteString(value)
		}

	case *qualKey != "":
		// Continuation of a multi-line qualifier value.
		if qualBuf.Len() > 0 && !strings.HasSuffix(qualBuf.String(), " ") {
			qualBuf.WriteString(" ")
		}
		qualBuf.WriteString(trimmed)

	default:
		// Continuation of a multi-line location.
		locBuf.WriteString(trimmed)
	}
}

func stripOriginLine(line string) string {
	var b strings.Builder
	for _, r := range line {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
