// Package bounds normalizes raw feature location tokens into numeric spans.
//
// GenBank locations arrive as loosely-typed token lists: 1-based positions,
// optional partial-match markers (< and >), an optional end token, and a
// reverse-complement flag. The resolver strips the markers, converts to
// 0-based inclusive coordinates, and computes the overall span of the
// feature across all of its segments.
//
// Malformed segments are dropped with a diagnostic; a feature is excluded
// from layout only when none of its segments survive. Exclusion is reported,
// never fatal.
package bounds

import (
	"strconv"
	"strings"

	"github.com/genomap/genomap/pkg/seqmap"
)

// RawSegment is one location segment as handed over by the record parser.
// Start and End are raw textual tokens; End may be empty for point locations.
type RawSegment struct {
	Start   string
	End     string
	Reverse bool
}

// Resolve normalizes a feature's raw segments. It returns the overall span,
// the per-segment bounds, and whether any segment survived. Diagnostics for
// dropped segments and excluded features are recorded on the session.
//
// On circular sequences a segment whose start lies past its end expresses a
// wrap across the origin; the span is flagged CrossesOrigin instead of being
// given a negative length. On linear sequences the same pattern is treated
// as a malformed (swapped) pair and normalized by exchanging the bounds.
func Resolve(featureID string, raw []RawSegment, circular bool, ses *seqmap.Session) (seqmap.Span, []seqmap.Segment, bool) {
	var (
		segments []seqmap.Segment
		span     seqmap.Span
		first    = true
	)

	for i, rs := range raw {
		start, ok := parseToken(rs.Start)
		if !ok {
			ses.Report(featureID, "segment %d: non-numeric start %q, dropped", i, rs.Start)
			continue
		}

		end := start // absent end token means a single point
		if rs.End != "" {
			end, ok = parseToken(rs.End)
			if !ok {
				ses.Report(featureID, "segment %d: non-numeric end %q, dropped", i, rs.End)
				continue
			}
		}

		crosses := false
		if start > end {
			if circular {
				crosses = true
			} else {
				start, end = end, start
			}
		}

		segments = append(segments, seqmap.Segment{Start: start, End: end, Reverse: rs.Reverse})

		if crosses {
			// A wrapping segment dictates the whole span.
			span = seqmap.Span{Start: start, End: end, CrossesOrigin: true}
			first = false
			continue
		}
		if span.CrossesOrigin {
			continue
		}
		if first {
			span = seqmap.Span{Start: start, End: end}
			first = false
			continue
		}
		if start < span.Start {
			span.Start = start
		}
		if end > span.End {
			span.End = end
		}
	}

	if len(segments) == 0 {
		ses.Report(featureID, "no valid location segments, feature excluded from layout")
		return seqmap.Span{}, nil, false
	}
	return span, segments, true
}

// parseToken strips partial-match markers and converts a 1-based GenBank
// position token to a 0-based coordinate.
func parseToken(tok string) (int, bool) {
	cleaned := strings.TrimSpace(tok)
	cleaned = strings.TrimLeft(cleaned, "<>")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n - 1, true
}
