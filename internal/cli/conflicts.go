package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genomap/genomap/pkg/errors"
	"github.com/genomap/genomap/pkg/pipeline"
	"github.com/genomap/genomap/pkg/render/graphview"
	"github.com/genomap/genomap/pkg/seqmap"
)

// conflictsCommand creates the conflicts command, a debug view that draws
// the feature-overlap graph with Graphviz. Connected features cannot share
// a row; the clusters explain why a map stacks where it does.
func (c *CLI) conflictsCommand() *cobra.Command {
	var output, format string
	var detailed bool

	cmd := &cobra.Command{
		Use:   "conflicts [file]",
		Short: "Render the feature-overlap graph (debug view)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConflicts(args[0], output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, pdf, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include spans and rows in node labels")

	return cmd
}

func (c *CLI) runConflicts(input, output, format string, detailed bool) error {
	rec, err := pipeline.Parse(pipeline.Options{Source: input})
	if err != nil {
		return err
	}

	ses := seqmap.NewSession(rec.SequenceLength(), rec.Locus.Circular)
	features := pipeline.ResolveFeatures(rec, ses)

	dot := graphview.ToDOT(features, rec.SequenceLength(), nil, graphview.Options{Detailed: detailed})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = graphview.RenderSVG(dot)
	case "png":
		data, err = graphview.RenderPNG(dot, 2.0)
	case "pdf":
		data, err = graphview.RenderPDF(dot)
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot)", format)
	}
	if err != nil {
		return err
	}

	if output == "" {
		output = basePath("", input) + "_conflicts." + format
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printFile(output)
	printSuccess("Rendered conflict graph for %d features", len(features))
	return nil
}
