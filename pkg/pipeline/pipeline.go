// Package pipeline runs separations for the CLI and the HTTP server.
//
// A [Runner] wraps the separation loop and the order search with result
// caching, so both entry points share one code path:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Separate(ctx, t, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(res.Tiling)
//
// Cached results are keyed by the canonical JSON of the input tiling, so
// tilings that clean up to the same form share an entry.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsep/pkg/errors"
	"github.com/matzehuels/gridsep/pkg/io"
	"github.com/matzehuels/gridsep/pkg/separation"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

// Dimension names accepted by [Options.Dimension].
const (
	DimRows = "rows"
	DimCols = "cols"
	DimBoth = "both"
)

// Formats for [RenderGraph].
const (
	FormatSVG = "svg"
	FormatDOT = "dot"
)

// ValidFormats lists the graph formats in preference order.
var ValidFormats = []string{FormatSVG, FormatDOT}

// ValidateFormat checks that format names a supported graph format.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats...)
}

// Options configures a pipeline run. The zero value separates without
// transitivity and lists every order in both dimensions.
type Options struct {
	// Transitive closes inequalities through positive cells before each pass.
	Transitive bool `json:"transitive,omitempty"`

	// BestOnly restricts [Runner.Orders] to maximal orders.
	BestOnly bool `json:"best_only,omitempty"`

	// Dimension selects rows, cols or both for [Runner.Orders]. Empty means
	// both. RenderGraph needs rows or cols; empty means rows.
	Dimension string `json:"dimension,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

// Validate checks the option values.
func (o Options) Validate() error {
	if o.Dimension == "" {
		return nil
	}
	return errors.ValidateDimension(o.Dimension, true)
}

func (o Options) dimensions() []separation.Dimension {
	switch o.Dimension {
	case DimRows:
		return []separation.Dimension{separation.Rows}
	case DimCols:
		return []separation.Dimension{separation.Cols}
	}
	return []separation.Dimension{separation.Rows, separation.Cols}
}

func (o Options) separationOptions(r *Runner) []separation.Option {
	logger := o.Logger
	if logger == nil {
		logger = r.Logger
	}
	return []separation.Option{
		separation.WithLogger(logger),
		separation.WithTransitivity(o.Transitive),
	}
}

// Result is the outcome of [Runner.Separate].
type Result struct {
	// Output is the serialisable result, with a fresh run ID.
	Output io.Result

	// Tiling is the separated tiling, or the input if it was not separable.
	Tiling *tiling.Tiling

	// CellMap maps the input's active cells to cells of Tiling.
	CellMap separation.CellMap

	// CacheHit reports whether the result came from the cache.
	CacheHit bool

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Orders lists the orders of one pass over a tiling.
type Orders struct {
	// Cells maps the indices used in the orders to [col,row] cells.
	Cells [][2]int `json:"cells"`

	// Rows and Cols hold the orders, best first. A dimension that was not
	// requested is nil.
	Rows [][][]int `json:"rows,omitempty"`
	Cols [][][]int `json:"cols,omitempty"`

	// CacheHit reports whether the listing came from the cache.
	CacheHit bool `json:"-"`
}
