package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genomap/genomap/pkg/digest"
	"github.com/genomap/genomap/pkg/errors"
	"github.com/genomap/genomap/pkg/pipeline"
)

// digestCommand creates the digest command for restriction-site scanning.
func (c *CLI) digestCommand() *cobra.Command {
	var enzymesStr, enzymeFile string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "digest [file]",
		Short: "Scan a record for restriction enzyme sites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDigest(args[0], parseEnzymes(enzymesStr), enzymeFile, asJSON)
		},
	}

	cmd.Flags().StringVarP(&enzymesStr, "enzymes", "e", "", "enzymes to scan for (comma-separated; default: all built-in)")
	cmd.Flags().StringVar(&enzymeFile, "enzyme-file", "", "TOML file with a custom enzyme set")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit sites as JSON")

	return cmd
}

func (c *CLI) runDigest(path string, enzymes []string, enzymeFile string, asJSON bool) error {
	p := newProgress(c.Logger)

	rec, err := pipeline.Parse(pipeline.Options{Source: path})
	if err != nil {
		return err
	}
	if rec.Origin == "" {
		return errors.New(errors.ErrCodeEmptySequence, "record has no origin sequence to scan")
	}

	set := digest.DefaultEnzymes()
	if enzymeFile != "" {
		if set, err = digest.LoadEnzymes(enzymeFile); err != nil {
			return err
		}
	}
	selected, err := digest.SelectEnzymes(set, enzymes)
	if err != nil {
		return err
	}

	sites, err := digest.Scan(rec.Origin, rec.Locus.Circular, selected)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sites)
	}

	if len(sites) == 0 {
		printInfo("No sites found")
		return nil
	}

	for _, s := range sites {
		printDetail("%-10s %8d   %s", s.Enzyme, s.Position, s.Recognition)
	}

	p.done(fmt.Sprintf("Found %d sites", len(sites)))
	return nil
}
