// Package order discovers forced linear orders among grid cells.
//
// # Overview
//
// A [Graph] holds pairwise ordering evidence between classes of cells: the
// entry Edge(u, v) counts how many independent observations force class u
// strictly before class v in one dimension (rows or columns). The graph is
// stored as three parallel arrays indexed by vertex (labels, weights and a
// square matrix), so copying a graph is a total, independent clone.
//
// # Reduction
//
// [Graph.Reduce] merges every pair of vertices with no evidence either way.
// Merging adds the evidence of both vertices together and then drops any
// edge that is not supported once per pair of original cells: evidence gets
// diluted when cells are folded together and only overwhelming, consistent
// evidence survives. The result is a tournament, and a tournament is acyclic
// exactly when it has no cycle of length 2 or 3 ([Graph.IsAcyclic],
// [Graph.FindCycle]).
//
// # Search
//
// Contradictory evidence shows up as cycles. [Search] explores every way of
// resolving them: each cycle is broken by removing one of its edges
// ([Graph.BreakCycleInAllWays]) and the copies are queued best-first by
// vertex count, so the orders with the most classes come out first. With
// [SearchOptions].BestOnly the search stops as soon as no queued candidate
// can beat the best order already found.
//
//	g := order.New([]int{0, 1, 2}, matrix)
//	best := order.Best(g) // e.g. [[0] [1 2]]
//
// # Rendering
//
// [Graph.ToDOT] and [Graph.RenderSVG] draw a graph for debugging with
// Graphviz.
//
// # Concurrency
//
// Graphs and searches are not safe for concurrent use. Copies produced by
// [Graph.Clone] or [Graph.BreakCycleInAllWays] share nothing and may be used
// from different goroutines.
package order
