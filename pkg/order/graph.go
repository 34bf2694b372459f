package order

import (
	"fmt"
	"slices"
)

// Edge is a directed edge between two vertex indices of a [Graph].
type Edge struct {
	From int
	To   int
}

// String returns the edge as "from->to".
func (e Edge) String() string { return fmt.Sprintf("%d->%d", e.From, e.To) }

// Graph is a weighted directed graph over a dense vertex set 0..n-1.
//
// Each vertex owns a label (the sorted cell indices it currently represents)
// and a weight (the number of original vertices folded into it). The matrix
// entry Edge(u, v) counts the pieces of evidence that class u comes strictly
// before class v. The three parallel arrays are owned exclusively by the
// graph: [Graph.Clone] and [Graph.BreakCycleInAllWays] copy all of them.
//
// A graph moves through the states unreduced → reduced → acyclic/cyclic.
// [Graph.IsAcyclic], [Graph.FindCycle] and [Graph.VertexOrder] panic on an
// unreduced graph; these are programmer errors, not input errors.
//
// Graph is not safe for concurrent use.
type Graph struct {
	labels  [][]int
	weights []int
	matrix  [][]int

	reduced bool
	acyclic bool
}

// New creates a graph with one vertex per entry of vertices, each labelled
// with that single value and weighted 1. The matrix is copied.
//
// New panics if matrix is not square or its side differs from len(vertices).
func New(vertices []int, matrix [][]int) *Graph {
	if len(matrix) != len(vertices) {
		panic(fmt.Sprintf("order: matrix has %d rows for %d vertices", len(matrix), len(vertices)))
	}
	g := &Graph{
		labels:  make([][]int, len(vertices)),
		weights: make([]int, len(vertices)),
		matrix:  make([][]int, len(matrix)),
	}
	for i, v := range vertices {
		g.labels[i] = []int{v}
		g.weights[i] = 1
	}
	for i, row := range matrix {
		if len(row) != len(matrix) {
			panic(fmt.Sprintf("order: matrix row %d has %d entries, want %d", i, len(row), len(matrix)))
		}
		g.matrix[i] = slices.Clone(row)
	}
	return g
}

// NumVertices returns the current number of vertices.
func (g *Graph) NumVertices() int { return len(g.labels) }

// Edge returns the weight of the edge u→v (0 means no edge).
func (g *Graph) Edge(u, v int) int { return g.matrix[u][v] }

// Label returns a copy of the label of vertex v.
func (g *Graph) Label(v int) []int { return slices.Clone(g.labels[v]) }

// Weight returns the number of original vertices merged into v.
func (g *Graph) Weight(v int) int { return g.weights[v] }

// Reduced reports whether the graph is currently a reduced tournament.
func (g *Graph) Reduced() bool { return g.reduced }

// Clone returns a deep copy sharing no storage with g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		labels:  make([][]int, len(g.labels)),
		weights: slices.Clone(g.weights),
		matrix:  make([][]int, len(g.matrix)),
		reduced: g.reduced,
		acyclic: g.acyclic,
	}
	for i := range g.labels {
		c.labels[i] = slices.Clone(g.labels[i])
		c.matrix[i] = slices.Clone(g.matrix[i])
	}
	return c
}

// Merge folds vertex v2 into v1: labels are united, weights summed, and the
// rows and columns of v2 are added onto those of v1 before v2 is removed.
// Every edge touching the merged vertex whose weight is below the product of
// its endpoint weights is then dropped.
//
// Indices above v2 shift down by one after the merge.
func (g *Graph) Merge(v1, v2 int) {
	if v1 == v2 {
		panic(fmt.Sprintf("order: cannot merge vertex %d with itself", v1))
	}

	g.labels[v1] = unionSorted(g.labels[v1], g.labels[v2])
	g.weights[v1] += g.weights[v2]
	for j := range g.matrix[v1] {
		g.matrix[v1][j] += g.matrix[v2][j]
	}
	for i := range g.matrix {
		g.matrix[i][v1] += g.matrix[i][v2]
	}

	g.labels = slices.Delete(g.labels, v2, v2+1)
	g.weights = slices.Delete(g.weights, v2, v2+1)
	g.matrix = slices.Delete(g.matrix, v2, v2+1)
	for i := range g.matrix {
		g.matrix[i] = slices.Delete(g.matrix[i], v2, v2+1)
	}

	if v1 > v2 {
		v1--
	}
	g.trimEdges(v1)
	g.reduced = false
	g.acyclic = false
}

// trimEdges drops edges at v that are not supported by at least one piece of
// evidence per pair of original vertices.
func (g *Graph) trimEdges(v int) {
	for w := range g.labels {
		limit := g.weights[v] * g.weights[w]
		if g.matrix[v][w] < limit {
			g.matrix[v][w] = 0
		}
		if g.matrix[w][v] < limit {
			g.matrix[w][v] = 0
		}
	}
}

// Reduce merges vertex pairs with no edge in either direction until every
// pair is connected, turning the graph into a tournament. It is a no-op on a
// graph that is already reduced.
func (g *Graph) Reduce() {
	if g.reduced {
		return
	}
	for {
		v1, v2, ok := g.FindNonEdge()
		if !ok {
			break
		}
		g.Merge(v1, v2)
	}
	g.reduced = true
}

// FindNonEdge returns the first pair (v1, v2), v1 < v2 in lexicographic
// order, with no edge in either direction.
func (g *Graph) FindNonEdge() (int, int, bool) {
	n := g.NumVertices()
	for v1 := 0; v1 < n; v1++ {
		for v2 := v1 + 1; v2 < n; v2++ {
			if !g.isEdge(v1, v2) && !g.isEdge(v2, v1) {
				return v1, v2, true
			}
		}
	}
	return 0, 0, false
}

// IsAcyclic reports whether the reduced graph has no cycle. For a reduced
// graph this holds exactly when there is no cycle of length 2 or 3.
func (g *Graph) IsAcyclic() bool {
	g.mustBeReduced("IsAcyclic")
	if g.acyclic || g.NumVertices() == 0 {
		return true
	}
	if g.FindCycle() == nil {
		g.acyclic = true
	}
	return g.acyclic
}

// FindCycle returns the edges of the first cycle of the reduced graph, or nil
// when there is none. Cycles of length 2 are searched first over ascending
// vertex pairs, then cycles of length 3 over ascending triples.
func (g *Graph) FindCycle() []Edge {
	g.mustBeReduced("FindCycle")
	n := g.NumVertices()
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if g.isEdge(a, b) && g.isEdge(b, a) {
				return []Edge{{a, b}, {b, a}}
			}
		}
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				if cycle := g.length3Cycle(a, b, c); cycle != nil {
					return cycle
				}
			}
		}
	}
	return nil
}

func (g *Graph) length3Cycle(a, b, c int) []Edge {
	for _, cycle := range [][]Edge{
		{{a, b}, {b, c}, {c, a}},
		{{a, c}, {c, b}, {b, a}},
	} {
		if g.isEdge(cycle[0].From, cycle[0].To) &&
			g.isEdge(cycle[1].From, cycle[1].To) &&
			g.isEdge(cycle[2].From, cycle[2].To) {
			return cycle
		}
	}
	return nil
}

// BreakCycleInAllWays returns one independent copy of g per edge of cycle,
// each with that single edge removed. The copies are unreduced and share no
// storage with g or with each other; g itself is left untouched.
func (g *Graph) BreakCycleInAllWays(cycle []Edge) []*Graph {
	graphs := make([]*Graph, 0, len(cycle))
	for _, e := range cycle {
		c := g.Clone()
		c.deleteEdge(e.From, e.To)
		graphs = append(graphs, c)
	}
	return graphs
}

// VertexOrder returns the vertex labels of a reduced acyclic graph sorted by
// the number of zero entries in their matrix row. The first label is the
// class that precedes every other class.
func (g *Graph) VertexOrder() [][]int {
	g.mustBeReduced("VertexOrder")
	if !g.IsAcyclic() {
		panic("order: VertexOrder called on a cyclic graph")
	}

	zeros := make([]int, g.NumVertices())
	for v, row := range g.matrix {
		for _, w := range row {
			if w == 0 {
				zeros[v]++
			}
		}
	}
	idx := make([]int, g.NumVertices())
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		if zeros[a] != zeros[b] {
			return zeros[a] - zeros[b]
		}
		return slices.Compare(g.labels[a], g.labels[b])
	})

	out := make([][]int, len(idx))
	for i, v := range idx {
		out[i] = slices.Clone(g.labels[v])
	}
	return out
}

func (g *Graph) deleteEdge(u, v int) {
	g.matrix[u][v] = 0
	g.reduced = false
	g.acyclic = false
}

func (g *Graph) isEdge(u, v int) bool { return g.matrix[u][v] != 0 }

func (g *Graph) mustBeReduced(op string) {
	if !g.reduced {
		panic("order: " + op + " requires a reduced graph")
	}
}

func unionSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}
