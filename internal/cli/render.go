package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genomap/genomap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path (or base path for multiple formats)
	formats     []string // output formats: "svg", "pdf", "png", "json"
	view        string  // map view: "auto", "linear", "circular"
	enzymes     string  // comma-separated enzyme names
	enzymeFile  string  // optional TOML enzyme set
	width       float64 // viewport width in pixels
	height      float64 // viewport height in pixels
	rowHeight   float64 // feature row height in pixels (0 = default)
	scale       float64 // PNG upscale factor (0 = default)
	style       string  // visual style
	diagnostics bool    // embed layout diagnostics in SVG output
	noCache     bool    // disable the result cache
	refresh     bool    // bypass caches and recompute
}

// renderCommand creates the render command for generating sequence maps.
//
// Default settings:
//   - view: auto (circular records get circular maps)
//   - width: 800px, height: 600px
//   - style: simple
//   - format: svg
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		view:   pipeline.DefaultView,
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
		style:  pipeline.DefaultStyle,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a GenBank record as a sequence map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateView(opts.view); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.view, "view", opts.view, "map view: auto (default), linear, circular")
	cmd.Flags().StringVarP(&opts.enzymes, "enzymes", "e", "", "restriction enzymes to mark (comma-separated, e.g. EcoRI,BamHI)")
	cmd.Flags().StringVar(&opts.enzymeFile, "enzyme-file", "", "TOML file with a custom enzyme set")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().Float64Var(&opts.rowHeight, "row-height", 0, "feature row height (default 14)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG upscale factor (default 2)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: simple")
	cmd.Flags().BoolVar(&opts.diagnostics, "diagnostics", false, "embed layout diagnostics in SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass caches and recompute")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	p := newProgress(c.Logger)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Source:      input,
		Enzymes:     parseEnzymes(opts.enzymes),
		EnzymeFile:  opts.enzymeFile,
		View:        opts.view,
		Width:       opts.width,
		Height:      opts.height,
		RowHeight:   opts.rowHeight,
		Scale:       opts.scale,
		Formats:     opts.formats,
		Style:       opts.style,
		Diagnostics: opts.diagnostics,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	})
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	for _, d := range result.Diagnostics {
		printWarning("%s", d.String())
	}

	printStats(result.Stats.FeatureCount, result.Stats.SiteCount, result.CacheInfo.LayoutHit)
	p.done(fmt.Sprintf("Rendered %s map", result.Layout.View))
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
