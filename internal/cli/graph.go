package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsep/pkg/errors"
	"github.com/matzehuels/gridsep/pkg/io"
	"github.com/matzehuels/gridsep/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output     string // output path; its extension picks the format
	dim        string // rows or cols
	transitive bool   // close inequalities through positive cells
}

// graphCommand creates the graph command, which draws the order graph of a
// tiling's rows or columns.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{dim: pipeline.DimRows}

	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Render the order graph of a tiling",
		Long: `Graph draws the ordering evidence between the active cells of a tiling as
a directed graph. The output format follows the extension of -o: .svg
renders with Graphviz, .dot writes the DOT source. The default output is
FILE with its extension replaced by .<dim>.svg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("transitive") {
				opts.transitive = c.Config.Search.Transitive
			}
			return c.runGraph(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().StringVar(&opts.dim, "dim", opts.dim, "dimension: rows or cols")
	cmd.Flags().BoolVar(&opts.transitive, "transitive", false, "close inequalities through cells known to hold a point")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, file string, opts graphOpts) error {
	if err := errors.ValidateDimension(opts.dim, false); err != nil {
		return err
	}
	t, err := io.ImportTiling(file)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(file, filepath.Ext(file)) + "." + opts.dim + ".svg"
	}
	format := strings.TrimPrefix(filepath.Ext(out), ".")
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(cmd.Context(), c.stderr, "Rendering order graph...")
	if format == pipeline.FormatSVG {
		spinner.Start()
	}
	data, err := pipeline.RenderGraph(t, pipeline.Options{Dimension: opts.dim, Transitive: opts.transitive}, format)
	spinner.Stop()
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}
	printSuccess(c.stdout, "Rendered %s order graph", opts.dim)
	printFile(c.stdout, out)
	return nil
}
