package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genomap/genomap/pkg/pipeline"
	"github.com/genomap/genomap/pkg/seqmap"
)

// parseCommand creates the parse command for inspecting GenBank records.
func (c *CLI) parseCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Decode a GenBank record and list its features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the decoded record as JSON")

	return cmd
}

func (c *CLI) runParse(path string, asJSON bool) error {
	p := newProgress(c.Logger)

	rec, err := pipeline.Parse(pipeline.Options{Source: path})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	topology := "linear"
	if rec.Locus.Circular {
		topology = "circular"
	}

	printKeyValue("Locus", rec.Locus.Name)
	printKeyValue("Definition", rec.Definition)
	printKeyValue("Length", fmt.Sprintf("%d bp", rec.SequenceLength()))
	printKeyValue("Topology", topology)
	printNewline()

	ses := seqmap.NewSession(rec.SequenceLength(), rec.Locus.Circular)
	features := pipeline.ResolveFeatures(rec, ses)

	for _, f := range features {
		span := fmt.Sprintf("%d..%d", f.Span.Start+1, f.Span.End)
		if f.Span.CrossesOrigin {
			span += " (wraps origin)"
		}
		printDetail("%-14s %-18s %s", f.Type, span, f.Label())
	}

	for _, d := range ses.Diagnostics() {
		printWarning("%s", d.String())
	}

	p.done(fmt.Sprintf("Parsed %d features", len(features)))
	printNextStep("Render a map", fmt.Sprintf("genomap render %s", path))
	return nil
}
