package pipeline

import (
	"fmt"

	"github.com/matzehuels/gridsep/pkg/errors"
	"github.com/matzehuels/gridsep/pkg/separation"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

// RenderGraph draws the order graph of one pass over t in the given format
// (svg or dot). Vertices are labelled with their cells.
func RenderGraph(t *tiling.Tiling, opts Options, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	dim := separation.Rows
	switch opts.Dimension {
	case "", DimRows:
	case DimCols:
		dim = separation.Cols
	default:
		return nil, errors.New(errors.ErrCodeInvalidDimension, "graph dimension %q: need rows or cols", opts.Dimension)
	}

	p := separation.NewPass(t, separation.WithTransitivity(opts.Transitive))
	g := p.Graph(dim)
	names := cellNames(p.Cells())

	switch format {
	case FormatDOT:
		return []byte(g.ToDOT(names)), nil
	default:
		data, err := g.RenderSVG(names)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		return data, nil
	}
}

func cellNames(cells []tiling.Cell) []string {
	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = c.String()
	}
	return names
}
