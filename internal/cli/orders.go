package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsep/pkg/io"
	"github.com/matzehuels/gridsep/pkg/pipeline"
)

// ordersOpts holds the command-line flags for the orders command.
type ordersOpts struct {
	all        bool   // list every order, not only the maximal ones
	dim        string // rows, cols or both
	transitive bool   // close inequalities through positive cells
	noCache    bool   // bypass the result cache
	json       bool   // print the listing as JSON
}

// ordersCommand creates the orders command, which lists the row and column
// orders found by a single separation pass.
func (c *CLI) ordersCommand() *cobra.Command {
	opts := ordersOpts{dim: pipeline.DimBoth}

	cmd := &cobra.Command{
		Use:   "orders FILE",
		Short: "List the row and column orders of a tiling",
		Long: `Orders runs one separation pass on a tiling and lists the orders of its
active cells, best first. Cells in one class of an order share a row (or
column) after separation; "<" separates consecutive classes. By default only
maximal orders are listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("all") {
				opts.all = !c.Config.Search.BestOnly
			}
			if !cmd.Flags().Changed("transitive") {
				opts.transitive = c.Config.Search.Transitive
			}
			return c.runOrders(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "list every order, not only the best ones")
	cmd.Flags().StringVar(&opts.dim, "dim", opts.dim, "dimension: rows, cols or both")
	cmd.Flags().BoolVar(&opts.transitive, "transitive", false, "close inequalities through cells known to hold a point")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the orders as JSON")
	_ = cmd.RegisterFlagCompletionFunc("dim", cobra.FixedCompletions(
		[]string{pipeline.DimRows, pipeline.DimCols, pipeline.DimBoth}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runOrders(cmd *cobra.Command, file string, opts ordersOpts) error {
	ctx := cmd.Context()
	t, err := io.ImportTiling(file)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Orders(ctx, t, pipeline.Options{
		Transitive: opts.transitive,
		BestOnly:   !opts.all,
		Dimension:  opts.dim,
		Logger:     loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	kind := "best"
	if opts.all {
		kind = "all"
	}
	cols, rows := t.Dimensions()
	printTiling(c.stdout, t)
	if res.Rows != nil {
		c.printOrders(fmt.Sprintf("Row orders (%s, %d rows now)", kind, rows), res.Rows, res.Cells)
	}
	if res.Cols != nil {
		c.printOrders(fmt.Sprintf("Column orders (%s, %d columns now)", kind, cols), res.Cols, res.Cells)
	}
	return nil
}

func (c *CLI) printOrders(title string, orders [][][]int, cells [][2]int) {
	fmt.Fprintln(c.stdout, StyleTitle.Render(title))
	if len(orders) == 0 {
		printDetail(c.stdout, "none")
		return
	}
	for i, ord := range orders {
		printOrder(c.stdout, i+1, ord, cells)
	}
}
