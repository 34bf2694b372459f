// Package tiling models gridded permutation classes as tilings.
//
// A [Tiling] is a grid of cells. Each cell may hold any number of points of
// a permutation, subject to constraints written as gridded permutations
// ([GriddedPerm]): obstructions forbid a pattern, requirements ask for at
// least one of several patterns, and assumptions track regions for counting.
// A point obstruction empties its cell.
//
// Tilings are immutable and only created by [Build], which drops anything
// contradictory or redundant and squeezes out empty rows and columns.
// [Tiling.ForwardMap] records how the input cells were renumbered, so callers
// that rewrite a tiling can follow their cells through the cleanup.
//
// Length-2 obstructions between two cells of one row or column force an
// [Inequality] between those cells; [Transitive] closes such inequalities
// through cells that are known to contain a point.
package tiling
