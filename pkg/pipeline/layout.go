package pipeline

import (
	"github.com/genomap/genomap/pkg/digest"
	"github.com/genomap/genomap/pkg/errors"
	"github.com/genomap/genomap/pkg/genbank"
	"github.com/genomap/genomap/pkg/plot"
	"github.com/genomap/genomap/pkg/render/styles"
	"github.com/genomap/genomap/pkg/seqmap"
	"github.com/genomap/genomap/pkg/seqmap/layout"
)

// Scan locates restriction sites for the requested enzymes. The enzyme set
// comes from opts.EnzymeFile when given, otherwise the built-in set.
func Scan(rec *genbank.Record, opts Options) ([]digest.Site, error) {
	if !opts.WantsScan() {
		return nil, nil
	}
	if rec.Origin == "" {
		return nil, errors.New(errors.ErrCodeEmptySequence,
			"record has no origin sequence to scan")
	}

	set := digest.DefaultEnzymes()
	if opts.EnzymeFile != "" {
		loaded, err := digest.LoadEnzymes(opts.EnzymeFile)
		if err != nil {
			return nil, err
		}
		set = loaded
	}

	enzymes, err := digest.SelectEnzymes(set, opts.Enzymes)
	if err != nil {
		return nil, err
	}

	return digest.Scan(rec.Origin, rec.Locus.Circular, enzymes)
}

// GenerateLayout computes the map layout for a record's features and sites,
// and exports it to the serializable form.
func GenerateLayout(ses *seqmap.Session, rec *genbank.Record, features []seqmap.Feature, sites []digest.Site, opts Options) (plot.Layout, error) {
	opts.SetLayoutDefaults()

	cuts := make([]layout.CutMark, len(sites))
	for i, s := range sites {
		cuts[i] = layout.CutMark{Enzyme: s.Enzyme, Position: s.Position}
	}

	in := layout.Input{
		Definition:     rec.Definition,
		SequenceLength: rec.SequenceLength(),
		Features:       features,
		Cuts:           cuts,
	}
	layoutOpts := layout.Options{
		View:      opts.ResolveView(rec.Locus.Circular),
		Width:     opts.Width,
		Height:    opts.Height,
		RowHeight: opts.RowHeight,
		FontSize:  opts.FontSize,
		Measure:   styles.Measure,
		Truncate:  styles.Truncate,
	}

	res := layout.Build(ses, in, layoutOpts)
	if res.SequenceLength == 0 {
		return plot.Layout{}, errors.New(errors.ErrCodeEmptySequence,
			"record %q has no sequence length", rec.Locus.Name)
	}

	return plot.Export(res, rec.Locus.Name), nil
}
