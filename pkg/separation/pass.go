package separation

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/matzehuels/gridsep/pkg/observability"
	"github.com/matzehuels/gridsep/pkg/order"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

// Dimension selects rows or columns.
type Dimension int

const (
	Rows Dimension = iota
	Cols
)

func (d Dimension) String() string {
	if d == Cols {
		return "cols"
	}
	return "rows"
}

func (d Dimension) coord(c tiling.Cell) int {
	if d == Cols {
		return c.Col
	}
	return c.Row
}

// Pass is a single separation attempt on one tiling.
//
// The active cells of the tiling are numbered in column-major order and
// every ordering matrix, graph and order of the pass refers to cells by that
// index. Best orders and the separated tiling are computed on first use and
// cached.
type Pass struct {
	input  *tiling.Tiling
	tiling *tiling.Tiling
	cells  []tiling.Cell
	index  map[tiling.Cell]int
	opts   options

	rowMatrix [][]int
	colMatrix [][]int

	bestRow   [][]int
	bestCol   [][]int
	separated *tiling.Tiling
}

// NewPass prepares a pass over t and collects its ordering evidence.
func NewPass(t *tiling.Tiling, opts ...Option) *Pass {
	return newPass(t, newOptions(opts))
}

func newPass(t *tiling.Tiling, opts options) *Pass {
	p := &Pass{input: t, tiling: t, opts: opts}
	if opts.transitive {
		p.tiling = tiling.Transitive(t)
	}
	p.cells = p.tiling.ActiveCells()
	p.index = make(map[tiling.Cell]int, len(p.cells))
	for i, c := range p.cells {
		p.index[c] = i
	}

	p.rowMatrix = p.BasicMatrix(Rows)
	p.colMatrix = p.BasicMatrix(Cols)
	for _, o := range p.tiling.Obstructions() {
		if o.Len() != 2 || o.IsSingleCell() {
			continue
		}
		switch a, b := o.Pos[0], o.Pos[1]; {
		case tiling.SameRow(a, b):
			p.addRowEvidence(o)
		case tiling.SameCol(a, b):
			p.addColEvidence(o)
		}
	}
	return p
}

// Tiling returns the tiling the pass works on. With transitivity enabled this
// is the closed tiling.
func (p *Pass) Tiling() *tiling.Tiling { return p.tiling }

// Cells returns the active cells, indexed as in the pass's graphs and orders.
func (p *Pass) Cells() []tiling.Cell { return slices.Clone(p.cells) }

// BasicMatrix returns the ordering every tiling has for free: cell a precedes
// cell b when a's row (or column) index is smaller than b's.
func (p *Pass) BasicMatrix(dim Dimension) [][]int {
	m := make([][]int, len(p.cells))
	for a, ca := range p.cells {
		m[a] = make([]int, len(p.cells))
		for b, cb := range p.cells {
			if dim.coord(ca) < dim.coord(cb) {
				m[a][b] = 1
			}
		}
	}
	return m
}

func (p *Pass) addRowEvidence(o tiling.GriddedPerm) {
	iq := tiling.RowInequality(o)
	p.rowMatrix[p.mustIndex(iq.Lo)][p.mustIndex(iq.Hi)]++
}

func (p *Pass) addColEvidence(o tiling.GriddedPerm) {
	iq := tiling.ColInequality(o)
	p.colMatrix[p.mustIndex(iq.Lo)][p.mustIndex(iq.Hi)]++
}

func (p *Pass) mustIndex(c tiling.Cell) int {
	i, ok := p.index[c]
	if !ok {
		panic(fmt.Sprintf("separation: obstruction in inactive cell %v", c))
	}
	return i
}

// RowGraph returns a fresh order graph over the row evidence.
func (p *Pass) RowGraph() *order.Graph { return order.New(p.labels(), p.rowMatrix) }

// ColGraph returns a fresh order graph over the column evidence.
func (p *Pass) ColGraph() *order.Graph { return order.New(p.labels(), p.colMatrix) }

// Graph returns RowGraph or ColGraph.
func (p *Pass) Graph(dim Dimension) *order.Graph {
	if dim == Cols {
		return p.ColGraph()
	}
	return p.RowGraph()
}

func (p *Pass) labels() []int {
	l := make([]int, len(p.cells))
	for i := range l {
		l[i] = i
	}
	return l
}

// searchLogEvery is how many examined candidates pass between progress logs.
const searchLogEvery = 1000

// SearchOrders starts a best-first order search over g. Long searches log
// their progress at debug level.
func (p *Pass) SearchOrders(g *order.Graph, bestOnly bool) *order.Orders {
	logger := p.opts.logger
	return order.Search(g, order.SearchOptions{
		BestOnly: bestOnly,
		Progress: func(s order.SearchStats) {
			if s.Explored%searchLogEvery == 0 {
				logger.Debug("searching orders", "explored", s.Explored, "pruned", s.Pruned, "yielded", s.Yielded)
			}
		},
	})
}

// BestRowOrder returns the best row order, computing it on first use.
func (p *Pass) BestRowOrder() [][]int {
	if p.bestRow == nil {
		p.bestRow = p.best(Rows)
	}
	return p.bestRow
}

// BestColOrder returns the best column order, computing it on first use.
func (p *Pass) BestColOrder() [][]int {
	if p.bestCol == nil {
		p.bestCol = p.best(Cols)
	}
	return p.bestCol
}

func (p *Pass) best(dim Dimension) [][]int {
	start := time.Now()
	orders := p.SearchOrders(p.Graph(dim), true)
	best, _ := orders.Next()
	stats := orders.Stats()
	observability.Separation().OnSearchComplete(p.opts.ctx, dim.String(), stats.Explored, stats.Yielded, time.Since(start))
	p.opts.logger.Debug("searched orders", "dim", dim, "explored", stats.Explored, "classes", len(best))
	return best
}

// Separable reports whether the best orders split the grid into more rows or
// more columns than the tiling already has.
func (p *Pass) Separable() bool {
	cols, rows := p.tiling.Dimensions()
	return len(p.BestRowOrder()) > rows || len(p.BestColOrder()) > cols
}

// BuildCellMap maps every active cell to its position in the given orders:
// the new column is the position of the cell's column class in colOrder and
// the new row the position of its row class in rowOrder.
func (p *Pass) BuildCellMap(rowOrder, colOrder [][]int) CellMap {
	rowOf := classPositions(rowOrder, len(p.cells))
	colOf := classPositions(colOrder, len(p.cells))
	m := make(CellMap, len(p.cells))
	for i, c := range p.cells {
		m[c] = tiling.Cell{Col: colOf[i], Row: rowOf[i]}
	}
	return m
}

func classPositions(ord [][]int, n int) []int {
	pos := make([]int, n)
	seen := 0
	for i, class := range ord {
		for _, v := range class {
			pos[v] = i
			seen++
		}
	}
	if seen != n {
		panic(fmt.Sprintf("separation: order covers %d of %d cells", seen, n))
	}
	return pos
}

// Apply rewrites the tiling onto the grid given by the orders. Every gridded
// permutation is moved through [Pass.BuildCellMap]; moved obstructions and
// requirement alternatives that became contradictory are dropped, every new
// cell that no active cell maps to is emptied, and the result goes through
// [tiling.Build].
//
// A tiling without active cells is returned unchanged.
func (p *Pass) Apply(rowOrder, colOrder [][]int) *tiling.Tiling {
	if len(p.cells) == 0 {
		return p.tiling
	}
	m := p.BuildCellMap(rowOrder, colOrder)

	var obs []tiling.GriddedPerm
	for _, o := range p.tiling.Obstructions() {
		if o.IsPoint() || !m.covers(o) {
			continue
		}
		if moved := o.ApplyMap(m.lookup); !moved.Contradictory() {
			obs = append(obs, moved)
		}
	}
	image := make(map[tiling.Cell]bool, len(m))
	for _, c := range m {
		image[c] = true
	}
	for col := range len(colOrder) {
		for row := range len(rowOrder) {
			if c := (tiling.Cell{Col: col, Row: row}); !image[c] {
				obs = append(obs, tiling.Point(c))
			}
		}
	}

	var reqs [][]tiling.GriddedPerm
	for _, req := range p.tiling.Requirements() {
		alts := []tiling.GriddedPerm{}
		for _, r := range req {
			if !m.covers(r) {
				continue
			}
			if moved := r.ApplyMap(m.lookup); !moved.Contradictory() {
				alts = append(alts, moved)
			}
		}
		reqs = append(reqs, alts)
	}

	var ass [][]tiling.GriddedPerm
	for _, a := range p.tiling.Assumptions() {
		var moved []tiling.GriddedPerm
		for _, g := range a {
			if !m.covers(g) {
				continue
			}
			if h := g.ApplyMap(m.lookup); !h.Contradictory() {
				moved = append(moved, h)
			}
		}
		ass = append(ass, moved)
	}

	return tiling.Build(obs, reqs, ass)
}

// SeparatedTiling applies the best orders, computing it on first use.
func (p *Pass) SeparatedTiling() *tiling.Tiling {
	if p.separated == nil {
		p.separated = p.Apply(p.BestRowOrder(), p.BestColOrder())
	}
	return p.separated
}

// FinalCellMap maps the active cells of the pass's input to their cells in
// [Pass.SeparatedTiling], following every renumbering done by
// [tiling.Build]. Cells that end up inactive are omitted.
func (p *Pass) FinalCellMap() CellMap {
	m := Identity(p.input.ActiveCells())
	if p.tiling != p.input {
		m = CellMap(p.tiling.ForwardMap())
	}
	if len(p.cells) == 0 {
		return m
	}
	m = m.Compose(p.BuildCellMap(p.BestRowOrder(), p.BestColOrder()))
	return m.Compose(CellMap(p.SeparatedTiling().ForwardMap()))
}

// Separation is one candidate refinement of a tiling.
type Separation struct {
	RowOrder [][]int
	ColOrder [][]int
	Tiling   *tiling.Tiling
}

// Separations iterates over every combination of a row order and a column
// order, rows in the outer loop, applying each. With bestOnly only the
// maximal orders are combined. Equal tilings from different combinations are
// all yielded.
func (p *Pass) Separations(bestOnly bool) iter.Seq[Separation] {
	return func(yield func(Separation) bool) {
		cols := slices.Collect(p.SearchOrders(p.ColGraph(), bestOnly).All())
		for row := range p.SearchOrders(p.RowGraph(), bestOnly).All() {
			for _, col := range cols {
				if !yield(Separation{RowOrder: row, ColOrder: col, Tiling: p.Apply(row, col)}) {
					return
				}
			}
		}
	}
}

// AllSeparations collects the tilings of [Pass.Separations].
func (p *Pass) AllSeparations(bestOnly bool) []*tiling.Tiling {
	var out []*tiling.Tiling
	for s := range p.Separations(bestOnly) {
		out = append(out, s.Tiling)
	}
	return out
}
