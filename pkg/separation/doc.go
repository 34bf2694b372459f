// Package separation splits rows and columns of a tiling whose cells are
// forced into a fixed vertical or horizontal order.
//
// A [Pass] numbers the active cells of a tiling and collects ordering
// evidence for each dimension: the trivial order given by the grid
// coordinates ([Pass.BasicMatrix]) plus one unit of evidence for every
// length-2 obstruction between two cells of one row or one column. The
// evidence becomes an [order.Graph] per dimension and the best order found by
// [order.Search] gives each cell its new row and column. When the best orders
// have more classes than the tiling has rows or columns, the pass is
// separable and [Pass.Apply] rewrites the tiling onto the finer grid.
//
// A [Loop] runs passes until one is not separable and tracks where every
// original cell ended up:
//
//	l := separation.NewLoop(t, separation.WithLogger(logger))
//	if l.Separable() {
//	    fmt.Print(l.Result())
//	    for from, to := range l.FinalCellMap() { ... }
//	}
//
// Passes and loops are deterministic and not safe for concurrent use.
package separation
