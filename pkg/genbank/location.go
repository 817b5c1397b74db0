package genbank

import "strings"

// parseLocation decodes a GenBank location expression into raw segments.
// Supported grammar:
//
//	467                    single point
//	340..565               plain interval
//	<1..>888               interval with partial-match markers (kept raw)
//	complement(...)        reverse strand, distributes over the inner form
//	join(...) / order(...) multi-segment (spliced) locations
//
// Tokens are not numerically validated here; the bounds resolver owns that
// and drops segments it cannot parse.
func parseLocation(expr string, complement bool) []LocationSegment {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}

	if inner, ok := unwrap(expr, "complement"); ok {
		return parseLocation(inner, !complement)
	}
	if inner, ok := unwrap(expr, "join"); ok {
		return parseList(inner, complement)
	}
	if inner, ok := unwrap(expr, "order"); ok {
		return parseList(inner, complement)
	}

	start, end, _ := strings.Cut(expr, "..")
	return []LocationSegment{{
		Start:      strings.TrimSpace(start),
		End:        strings.TrimSpace(end),
		Complement: complement,
	}}
}

func parseList(inner string, complement bool) []LocationSegment {
	var segs []LocationSegment
	for _, part := range splitTopLevel(inner) {
		segs = append(segs, parseLocation(part, complement)...)
	}
	return segs
}

// unwrap strips a "name(...)" wrapper, returning the inner expression.
func unwrap(expr, name string) (string, bool) {
	if !strings.HasPrefix(expr, name+"(") || !strings.HasSuffix(expr, ")") {
		return "", false
	}
	return expr[len(name)+1 : len(expr)-1], true
}

// splitTopLevel splits on commas that are not nested inside parentheses.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
