package pipeline

import (
	"fmt"
	"strings"

	"github.com/genomap/genomap/pkg/errors"
	"github.com/genomap/genomap/pkg/genbank"
	"github.com/genomap/genomap/pkg/seqmap"
	"github.com/genomap/genomap/pkg/seqmap/bounds"
)

// skippedTypes lists feature types never drawn on the map. The source
// feature spans the whole sequence and would only shadow everything else.
var skippedTypes = map[string]bool{
	"source": true,
}

// Parse decodes a GenBank record from inline content or a file path.
func Parse(opts Options) (*genbank.Record, error) {
	if opts.Content != "" {
		rec, err := genbank.Parse(strings.NewReader(opts.Content))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "parse record")
		}
		return rec, nil
	}

	rec, err := genbank.ParseFile(opts.Source)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "parse %s", opts.Source)
	}
	return rec, nil
}

// ResolveFeatures converts the record's feature table into map features,
// resolving raw location tokens into spans. Features whose locations cannot
// be resolved are excluded and reported on the session; the map still
// renders without them.
func ResolveFeatures(rec *genbank.Record, ses *seqmap.Session) []seqmap.Feature {
	features := make([]seqmap.Feature, 0, len(rec.Features))

	for i, gf := range rec.Features {
		if skippedTypes[gf.Type] {
			continue
		}

		id := fmt.Sprintf("%s-%d", gf.Type, i+1)
		raw := make([]bounds.RawSegment, len(gf.Location))
		for j, seg := range gf.Location {
			raw[j] = bounds.RawSegment{
				Start:   seg.Start,
				End:     seg.End,
				Reverse: seg.Complement,
			}
		}

		span, segments, ok := bounds.Resolve(id, raw, ses.Circular, ses)
		if !ok {
			continue
		}

		features = append(features, seqmap.Feature{
			ID:       id,
			Type:     gf.Type,
			Segments: segments,
			Span:     span,
			Info:     gf.Qualifiers,
		})
	}

	return features
}
