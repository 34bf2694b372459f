package order

import (
	"container/heap"
	"iter"
)

// SearchOptions configures [Search].
type SearchOptions struct {
	// BestOnly stops the search as soon as no queued candidate can reach the
	// largest vertex count already yielded.
	BestOnly bool

	// Progress, if set, is called after every candidate is examined. It runs
	// on the goroutine calling Next.
	Progress func(SearchStats)
}

// SearchStats summarises the work done by a search so far.
type SearchStats struct {
	Explored int // candidates popped from the queue
	Branched int // candidates queued by breaking a cycle
	Pruned   int // candidates discarded by the BestOnly bound
	Yielded  int // orders returned
	Best     int // largest vertex count among yielded orders
}

// Orders is a lazy, finite, non-restartable sequence of vertex orders
// produced by a best-first branch-and-bound search. Orders are yielded in
// non-increasing number of classes; the first one is a maximal separation.
type Orders struct {
	queue candidates
	seq   int
	opts  SearchOptions
	stats SearchStats
	done  bool
}

// Search starts a best-first search for acyclic reductions of g. The graph is
// cloned; g is not modified.
//
// Candidates are reduced as they are queued and kept in a max-priority queue
// keyed by vertex count. A popped acyclic candidate yields its vertex order; a
// cyclic one is replaced by the copies from [Graph.BreakCycleInAllWays].
// Breaking a cycle never adds vertices, so yielded orders never grow. Ties are
// served first-in first-out, so results are deterministic.
func Search(g *Graph, opts SearchOptions) *Orders {
	o := &Orders{opts: opts}
	o.push(g.Clone())
	return o
}

// Best returns the first order of a best-only search over g.
func Best(g *Graph) [][]int {
	order, _ := Search(g, SearchOptions{BestOnly: true}).Next()
	return order
}

// Next returns the next order, or false once the search is exhausted.
func (o *Orders) Next() ([][]int, bool) {
	for !o.done && o.queue.Len() > 0 {
		if o.opts.BestOnly && o.stats.Yielded > 0 && o.queue[0].graph.NumVertices() < o.stats.Best {
			o.stats.Pruned += o.queue.Len()
			o.queue = nil
			break
		}

		c := heap.Pop(&o.queue).(*candidate)
		g := c.graph
		o.stats.Explored++

		if g.IsAcyclic() {
			order := g.VertexOrder()
			o.stats.Yielded++
			o.stats.Best = max(o.stats.Best, g.NumVertices())
			o.report()
			return order, true
		}

		for _, child := range g.BreakCycleInAllWays(g.FindCycle()) {
			o.push(child)
			o.stats.Branched++
		}
		o.report()
	}
	o.done = true
	return nil, false
}

// All returns an iterator over the remaining orders.
func (o *Orders) All() iter.Seq[[][]int] {
	return func(yield func([][]int) bool) {
		for {
			order, ok := o.Next()
			if !ok || !yield(order) {
				return
			}
		}
	}
}

// Stats returns the search statistics accumulated so far.
func (o *Orders) Stats() SearchStats { return o.stats }

func (o *Orders) push(g *Graph) {
	g.Reduce()
	heap.Push(&o.queue, &candidate{graph: g, seq: o.seq})
	o.seq++
}

func (o *Orders) report() {
	if o.opts.Progress != nil {
		o.opts.Progress(o.stats)
	}
}

type candidate struct {
	graph *Graph
	seq   int
}

// candidates implements heap.Interface as a max-heap on vertex count.
type candidates []*candidate

func (q candidates) Len() int { return len(q) }

func (q candidates) Less(i, j int) bool {
	ni, nj := q[i].graph.NumVertices(), q[j].graph.NumVertices()
	if ni != nj {
		return ni > nj
	}
	return q[i].seq < q[j].seq
}

func (q candidates) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *candidates) Push(x any) { *q = append(*q, x.(*candidate)) }

func (q *candidates) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return c
}
