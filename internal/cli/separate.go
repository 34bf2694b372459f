package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridsep/pkg/errors"
	"github.com/matzehuels/gridsep/pkg/io"
	"github.com/matzehuels/gridsep/pkg/pipeline"
)

// separateOpts holds the command-line flags for the separate command.
type separateOpts struct {
	output     string // output file, or directory when several inputs are given
	jobs       int    // files separated concurrently
	noCache    bool   // bypass the result cache
	refresh    bool   // recompute but still store
	transitive bool   // close inequalities through positive cells
	json       bool   // print result JSON instead of the grid
}

// separateCommand creates the separate command, which runs the separation
// loop on one or more tiling files.
func (c *CLI) separateCommand() *cobra.Command {
	var opts separateOpts

	cmd := &cobra.Command{
		Use:   "separate FILE...",
		Short: "Separate the rows and columns of tilings",
		Long: `Separate reads tilings from JSON files and refines each one until no pass
splits a row or column any further. The separated grid and the map from the
original cells to the new ones are printed; -o writes the result as JSON.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("jobs") {
				opts.jobs = c.Config.Search.Jobs
			}
			if !cmd.Flags().Changed("transitive") {
				opts.transitive = c.Config.Search.Transitive
			}
			return c.runSeparate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write result JSON to this file (a directory for several inputs)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "number of files to separate concurrently")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached results")
	cmd.Flags().BoolVar(&opts.transitive, "transitive", false, "close inequalities through cells known to hold a point")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print result JSON to stdout")

	return cmd
}

func (c *CLI) runSeparate(cmd *cobra.Command, files []string, opts separateOpts) error {
	if opts.jobs < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--jobs must be at least 1")
	}
	for _, f := range files {
		if err := errors.ValidatePath(f); err != nil {
			return err
		}
	}
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, c.stderr, fmt.Sprintf("Separating %d tilings...", len(files)))
	if len(files) > 1 {
		spinner.Start()
	}

	results := make([]*pipeline.Result, len(files))
	var finished atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)
	for i, file := range files {
		g.Go(func() error {
			t, err := io.ImportTiling(file)
			if err != nil {
				return err
			}
			res, err := runner.Separate(gctx, t, pipeline.Options{
				Transitive: opts.transitive,
				Refresh:    opts.refresh,
				Logger:     logger.With("file", filepath.Base(file)),
			})
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = res
			spinner.SetMessage(fmt.Sprintf("Separated %d/%d tilings...", finished.Add(1), len(files)))
			return nil
		})
	}
	err = g.Wait()
	spinner.Stop()
	if err != nil {
		return err
	}

	for i, res := range results {
		if err := c.reportSeparation(files[i], res, opts); err != nil {
			return err
		}
		if opts.output != "" {
			path, err := outputPath(opts.output, files[i], len(files))
			if err != nil {
				return err
			}
			if err := io.ExportResult(res.Output, path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			if !opts.json {
				printFile(c.stdout, path)
			}
		}
	}
	prog.done(fmt.Sprintf("Separated %d tilings", len(files)))
	return nil
}

func (c *CLI) reportSeparation(file string, res *pipeline.Result, opts separateOpts) error {
	if opts.json {
		return io.WriteResult(res.Output, c.stdout)
	}
	cols, rows := res.Tiling.Dimensions()
	if res.Output.Separable {
		printSuccess(c.stdout, "%s separated", StyleHighlight.Render(file))
	} else {
		printInfo(c.stdout, "%s is not separable", StyleHighlight.Render(file))
	}
	printRunStats(c.stdout, res.Output.Passes, cols, rows, res.CacheHit)
	printTiling(c.stdout, res.Tiling)
	if res.Output.Separable {
		printCellMap(c.stdout, res.CellMap)
	}
	return nil
}

// outputPath returns where the result for input goes. With several inputs
// out is a directory and each result is named after its input.
func outputPath(out, input string, inputs int) (string, error) {
	if err := errors.ValidatePath(out); err != nil {
		return "", err
	}
	if inputs == 1 {
		return out, nil
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(out, base+".separated.json"), nil
}
