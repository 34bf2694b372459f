package tiling

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// GriddedPerm is a pattern whose points are pinned to cells.
//
// Patt holds the relative values of the points read left to right (a
// permutation of 0..n-1) and Pos the cell of each point. As an obstruction it
// forbids any occurrence of the pattern with its points in those cells; as a
// requirement alternative it asks for one.
type GriddedPerm struct {
	Patt []int
	Pos  []Cell
}

// NewGriddedPerm returns a gridded permutation. It panics if the lengths of
// patt and pos differ.
func NewGriddedPerm(patt []int, pos []Cell) GriddedPerm {
	if len(patt) != len(pos) {
		panic(fmt.Sprintf("tiling: pattern of length %d with %d positions", len(patt), len(pos)))
	}
	return GriddedPerm{Patt: slices.Clone(patt), Pos: slices.Clone(pos)}
}

// Point returns the length-1 gridded permutation in c.
func Point(c Cell) GriddedPerm {
	return GriddedPerm{Patt: []int{0}, Pos: []Cell{c}}
}

// Len returns the number of points.
func (g GriddedPerm) Len() int { return len(g.Patt) }

// IsEmpty reports whether g has no points. An empty obstruction forbids
// everything.
func (g GriddedPerm) IsEmpty() bool { return len(g.Patt) == 0 }

// IsPoint reports whether g has exactly one point.
func (g GriddedPerm) IsPoint() bool { return len(g.Patt) == 1 }

// IsSingleCell reports whether every point of g lies in the same cell.
func (g GriddedPerm) IsSingleCell() bool {
	for _, c := range g.Pos {
		if c != g.Pos[0] {
			return false
		}
	}
	return true
}

// Cells returns the distinct cells touched by g in column-major order.
func (g GriddedPerm) Cells() []Cell {
	cells := slices.Clone(g.Pos)
	slices.SortFunc(cells, CompareCells)
	return slices.Compact(cells)
}

// Touches reports whether any point of g lies in c.
func (g GriddedPerm) Touches(c Cell) bool { return slices.Contains(g.Pos, c) }

// Contradictory reports whether the positions cannot be realised: points
// read left to right must not move left, and a point with a smaller value
// must not sit in a higher row.
func (g GriddedPerm) Contradictory() bool {
	for i := range g.Pos {
		for j := i + 1; j < len(g.Pos); j++ {
			a, b := g.Pos[i], g.Pos[j]
			if a.Col > b.Col {
				return true
			}
			if g.Patt[i] < g.Patt[j] && a.Row > b.Row {
				return true
			}
			if g.Patt[i] > g.Patt[j] && a.Row < b.Row {
				return true
			}
		}
	}
	return false
}

// ApplyMap returns a copy of g with every position passed through fn.
func (g GriddedPerm) ApplyMap(fn func(Cell) Cell) GriddedPerm {
	pos := make([]Cell, len(g.Pos))
	for i, c := range g.Pos {
		pos[i] = fn(c)
	}
	return GriddedPerm{Patt: slices.Clone(g.Patt), Pos: pos}
}

// Contains reports whether some subsequence of g's points has exactly h's
// pattern and cells.
func (g GriddedPerm) Contains(h GriddedPerm) bool {
	if h.Len() > g.Len() {
		return false
	}
	chosen := make([]int, 0, h.Len())
	var search func(from int) bool
	search = func(from int) bool {
		j := len(chosen)
		if j == h.Len() {
			return true
		}
		for i := from; i <= g.Len()-(h.Len()-j); i++ {
			if g.Pos[i] != h.Pos[j] || !g.agrees(h, chosen, i) {
				continue
			}
			chosen = append(chosen, i)
			if search(i + 1) {
				return true
			}
			chosen = chosen[:len(chosen)-1]
		}
		return false
	}
	return search(0)
}

// agrees reports whether placing g's point i next after chosen keeps the
// relative order of h's pattern.
func (g GriddedPerm) agrees(h GriddedPerm, chosen []int, i int) bool {
	j := len(chosen)
	for k, c := range chosen {
		if (g.Patt[c] < g.Patt[i]) != (h.Patt[k] < h.Patt[j]) {
			return false
		}
	}
	return true
}

// Equal reports whether g and h have the same pattern and positions.
func (g GriddedPerm) Equal(h GriddedPerm) bool { return Compare(g, h) == 0 }

// Compare orders gridded permutations by length, then pattern, then
// positions.
func Compare(g, h GriddedPerm) int {
	if c := cmp.Compare(g.Len(), h.Len()); c != 0 {
		return c
	}
	if c := slices.Compare(g.Patt, h.Patt); c != 0 {
		return c
	}
	return slices.CompareFunc(g.Pos, h.Pos, CompareCells)
}

func (g GriddedPerm) String() string {
	if g.IsEmpty() {
		return "ε"
	}
	var sb strings.Builder
	for _, v := range g.Patt {
		fmt.Fprint(&sb, v)
	}
	sb.WriteString(": ")
	for i, c := range g.Pos {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

// canonical sorts gps and removes duplicates in place.
func canonical(gps []GriddedPerm) []GriddedPerm {
	slices.SortFunc(gps, Compare)
	return slices.CompactFunc(gps, GriddedPerm.Equal)
}
