package tiling

import (
	"maps"
	"slices"
)

// Tiling is an immutable grid of cells constrained by obstructions
// (forbidden gridded patterns), requirements (groups of alternatives, at
// least one of which must occur) and assumptions (tracked regions).
//
// A cell holding a point obstruction is empty; every other cell is active.
// Tilings are only created by [Build], which normalises its input.
type Tiling struct {
	cols, rows   int
	obstructions []GriddedPerm
	requirements [][]GriddedPerm
	assumptions  [][]GriddedPerm
	active       []Cell
	forward      map[Cell]Cell
	empty        bool
}

// Build constructs a tiling and cleans up its input. Cleanup may silently
// discard items:
//
//   - contradictory, duplicate and redundant obstructions are dropped, as
//     are non-point obstructions touching an empty cell,
//   - requirement alternatives that are contradictory, touch an empty cell
//     or contain an obstruction are dropped; a requirement left without
//     alternatives makes the whole tiling empty,
//   - assumption cells that are empty are dropped,
//   - rows and columns without active cells are removed and everything is
//     re-indexed.
//
// [Tiling.ForwardMap] reports where each surviving active cell of the input
// ended up. Build panics if a gridded permutation has a negative coordinate
// or a pattern and position list of different lengths.
func Build(obstructions []GriddedPerm, requirements [][]GriddedPerm, assumptions [][]GriddedPerm) *Tiling {
	cols, rows := 1, 1
	visit := func(g GriddedPerm) {
		if len(g.Patt) != len(g.Pos) {
			panic("tiling: pattern and positions differ in length")
		}
		for _, c := range g.Pos {
			if c.Col < 0 || c.Row < 0 {
				panic("tiling: negative cell coordinate " + c.String())
			}
			cols, rows = max(cols, c.Col+1), max(rows, c.Row+1)
		}
	}
	for _, o := range obstructions {
		visit(o)
		if o.IsEmpty() {
			return emptyTiling()
		}
	}
	for _, req := range requirements {
		for _, r := range req {
			visit(r)
		}
	}
	for _, ass := range assumptions {
		for _, a := range ass {
			visit(a)
		}
	}

	emptyCells := make(map[Cell]bool)
	for _, o := range obstructions {
		if o.IsPoint() {
			emptyCells[o.Pos[0]] = true
		}
	}
	touchesEmpty := func(g GriddedPerm) bool {
		return slices.ContainsFunc(g.Pos, func(c Cell) bool { return emptyCells[c] })
	}

	obs := cleanObstructions(obstructions, touchesEmpty)

	var reqs [][]GriddedPerm
	for _, req := range requirements {
		alts, satisfied := cleanRequirement(req, obs, touchesEmpty)
		if satisfied {
			continue
		}
		if len(alts) == 0 {
			return emptyTiling()
		}
		reqs = append(reqs, alts)
	}

	var ass [][]GriddedPerm
	for _, a := range assumptions {
		var kept []GriddedPerm
		for _, p := range a {
			if !touchesEmpty(p) && !p.Contradictory() {
				kept = append(kept, p.ApplyMap(identity))
			}
		}
		if len(kept) > 0 {
			ass = append(ass, canonical(kept))
		}
	}

	var active []Cell
	for col := range cols {
		for row := range rows {
			if c := (Cell{col, row}); !emptyCells[c] {
				active = append(active, c)
			}
		}
	}
	if len(active) == 0 {
		return epsilonTiling()
	}

	return compact(cols, rows, active, obs, reqs, ass)
}

func identity(c Cell) Cell { return c }

func cleanObstructions(in []GriddedPerm, touchesEmpty func(GriddedPerm) bool) []GriddedPerm {
	var candidates []GriddedPerm
	for _, o := range in {
		if o.Contradictory() || (!o.IsPoint() && touchesEmpty(o)) {
			continue
		}
		candidates = append(candidates, o.ApplyMap(identity))
	}
	candidates = canonical(candidates)

	// Sorted by length, so anything an obstruction could contain is already
	// decided.
	var kept []GriddedPerm
	for _, o := range candidates {
		if !slices.ContainsFunc(kept, o.Contains) {
			kept = append(kept, o)
		}
	}
	return kept
}

// cleanRequirement filters the alternatives of one requirement. satisfied is
// true when an alternative is the empty pattern, which always occurs.
func cleanRequirement(req, obs []GriddedPerm, touchesEmpty func(GriddedPerm) bool) (alts []GriddedPerm, satisfied bool) {
	var candidates []GriddedPerm
	for _, r := range req {
		if r.Contradictory() || touchesEmpty(r) || slices.ContainsFunc(obs, r.Contains) {
			continue
		}
		if r.IsEmpty() {
			return nil, true
		}
		candidates = append(candidates, r.ApplyMap(identity))
	}
	candidates = canonical(candidates)

	// An alternative containing another one is implied by it.
	for _, r := range candidates {
		if !slices.ContainsFunc(alts, r.Contains) {
			alts = append(alts, r)
		}
	}
	return alts, false
}

// compact removes rows and columns without active cells and re-indexes
// everything.
func compact(cols, rows int, active []Cell, obs []GriddedPerm, reqs, ass [][]GriddedPerm) *Tiling {
	colUsed := make([]bool, cols)
	rowUsed := make([]bool, rows)
	for _, c := range active {
		colUsed[c.Col] = true
		rowUsed[c.Row] = true
	}
	colIdx, newCols := renumber(colUsed)
	rowIdx, newRows := renumber(rowUsed)
	remap := func(c Cell) Cell { return Cell{colIdx[c.Col], rowIdx[c.Row]} }
	kept := func(c Cell) bool { return colUsed[c.Col] && rowUsed[c.Row] }

	t := &Tiling{
		cols:    newCols,
		rows:    newRows,
		forward: make(map[Cell]Cell, len(active)),
	}
	for _, c := range active {
		nc := remap(c)
		t.active = append(t.active, nc)
		t.forward[c] = nc
	}
	slices.SortFunc(t.active, CompareCells)

	for _, o := range obs {
		if slices.IndexFunc(o.Pos, func(c Cell) bool { return !kept(c) }) >= 0 {
			continue
		}
		t.obstructions = append(t.obstructions, o.ApplyMap(remap))
	}
	t.obstructions = canonical(t.obstructions)

	for _, req := range reqs {
		alts := make([]GriddedPerm, len(req))
		for i, r := range req {
			alts[i] = r.ApplyMap(remap)
		}
		t.requirements = append(t.requirements, canonical(alts))
	}
	t.requirements = canonicalGroups(t.requirements)

	for _, a := range ass {
		mapped := make([]GriddedPerm, len(a))
		for i, p := range a {
			mapped[i] = p.ApplyMap(remap)
		}
		t.assumptions = append(t.assumptions, canonical(mapped))
	}
	t.assumptions = canonicalGroups(t.assumptions)
	return t
}

func renumber(used []bool) ([]int, int) {
	idx := make([]int, len(used))
	n := 0
	for i, u := range used {
		idx[i] = n
		if u {
			n++
		}
	}
	return idx, n
}

func canonicalGroups(groups [][]GriddedPerm) [][]GriddedPerm {
	cmpGroups := func(a, b []GriddedPerm) int { return slices.CompareFunc(a, b, Compare) }
	slices.SortFunc(groups, cmpGroups)
	return slices.CompactFunc(groups, func(a, b []GriddedPerm) bool { return cmpGroups(a, b) == 0 })
}

// emptyTiling has no gridded permutations at all.
func emptyTiling() *Tiling {
	return &Tiling{
		cols:         1,
		rows:         1,
		obstructions: []GriddedPerm{{}},
		forward:      map[Cell]Cell{},
		empty:        true,
	}
}

// epsilonTiling contains only the empty permutation.
func epsilonTiling() *Tiling {
	return &Tiling{
		cols:         1,
		rows:         1,
		obstructions: []GriddedPerm{Point(Cell{0, 0})},
		forward:      map[Cell]Cell{},
	}
}

// Dimensions returns the number of columns and rows.
func (t *Tiling) Dimensions() (cols, rows int) { return t.cols, t.rows }

// ActiveCells returns the active cells in column-major order.
func (t *Tiling) ActiveCells() []Cell { return slices.Clone(t.active) }

// Obstructions returns the obstructions in canonical order.
func (t *Tiling) Obstructions() []GriddedPerm { return cloneAll(t.obstructions) }

// Requirements returns the requirement groups in canonical order.
func (t *Tiling) Requirements() [][]GriddedPerm { return cloneGroups(t.requirements) }

// Assumptions returns the tracked regions in canonical order.
func (t *Tiling) Assumptions() [][]GriddedPerm { return cloneGroups(t.assumptions) }

// ForwardMap maps every cell of Build's input that is still active to its
// cell in t. It is empty for empty and epsilon tilings.
func (t *Tiling) ForwardMap() map[Cell]Cell { return maps.Clone(t.forward) }

// IsEmpty reports whether the tiling contains nothing, not even the empty
// permutation.
func (t *Tiling) IsEmpty() bool { return t.empty }

// IsEpsilon reports whether the tiling contains only the empty permutation.
func (t *Tiling) IsEpsilon() bool { return !t.empty && len(t.active) == 0 }

// PositiveCells returns the cells that every alternative of some requirement
// touches, so they contain at least one point.
func (t *Tiling) PositiveCells() []Cell {
	var out []Cell
	for _, req := range t.requirements {
		for _, c := range req[0].Cells() {
			all := true
			for _, r := range req[1:] {
				if !r.Touches(c) {
					all = false
					break
				}
			}
			if all {
				out = append(out, c)
			}
		}
	}
	slices.SortFunc(out, CompareCells)
	return slices.Compact(out)
}

// Equal reports whether two tilings have the same dimensions and the same
// obstructions, requirements and assumptions.
func (t *Tiling) Equal(o *Tiling) bool {
	eqGroups := func(a, b [][]GriddedPerm) bool {
		return slices.EqualFunc(a, b, func(x, y []GriddedPerm) bool {
			return slices.EqualFunc(x, y, GriddedPerm.Equal)
		})
	}
	return t.cols == o.cols && t.rows == o.rows && t.empty == o.empty &&
		slices.EqualFunc(t.obstructions, o.obstructions, GriddedPerm.Equal) &&
		eqGroups(t.requirements, o.requirements) &&
		eqGroups(t.assumptions, o.assumptions)
}

func cloneAll(gps []GriddedPerm) []GriddedPerm {
	out := make([]GriddedPerm, len(gps))
	for i, g := range gps {
		out[i] = NewGriddedPerm(g.Patt, g.Pos)
	}
	return out
}

func cloneGroups(groups [][]GriddedPerm) [][]GriddedPerm {
	out := make([][]GriddedPerm, len(groups))
	for i, g := range groups {
		out[i] = cloneAll(g)
	}
	return out
}
