package tiling

import "slices"

// Inequality states that every point of Lo lies strictly before every point
// of Hi: below it for cells in one row, left of it for cells in one column.
type Inequality struct {
	Lo, Hi Cell
}

// RowInequality derives the inequality forced by a length-2 obstruction on
// two distinct cells of one row. It panics if o is not such an obstruction.
//
// With a the cell of the first point and b the cell of the second, pattern
// 01 forbids a point of a below a point of b, so b lies below a; pattern 10
// puts a below b.
func RowInequality(o GriddedPerm) Inequality {
	if o.Len() != 2 || !SameRow(o.Pos[0], o.Pos[1]) {
		panic("tiling: row inequality from " + o.String())
	}
	a, b := o.Pos[0], o.Pos[1]
	if o.Patt[0] < o.Patt[1] {
		return Inequality{Lo: b, Hi: a}
	}
	return Inequality{Lo: a, Hi: b}
}

// ColInequality derives the inequality forced by a length-2 obstruction on
// two distinct cells of one column. The second point of the pattern is
// forbidden to the right of the first, so its cell lies left of the first
// point's cell. It panics if o is not such an obstruction.
func ColInequality(o GriddedPerm) Inequality {
	if o.Len() != 2 || !SameCol(o.Pos[0], o.Pos[1]) {
		panic("tiling: column inequality from " + o.String())
	}
	return Inequality{Lo: o.Pos[1], Hi: o.Pos[0]}
}

// rowObstruction returns the obstruction forcing iq for two cells of one row.
func rowObstruction(iq Inequality) GriddedPerm {
	if iq.Lo.Col < iq.Hi.Col {
		return NewGriddedPerm([]int{1, 0}, []Cell{iq.Lo, iq.Hi})
	}
	return NewGriddedPerm([]int{0, 1}, []Cell{iq.Hi, iq.Lo})
}

// colObstruction returns the obstruction forcing iq for two cells of one
// column.
func colObstruction(iq Inequality) GriddedPerm {
	patt := []int{1, 0}
	if iq.Hi.Row < iq.Lo.Row {
		patt = []int{0, 1}
	}
	return NewGriddedPerm(patt, []Cell{iq.Hi, iq.Lo})
}

// Transitive closes the row and column inequalities of t through its
// positive cells: if a < b and b < c within one row (or column) and b is
// known to contain a point, a < c is added as an obstruction. Inequalities
// through a cell that may be empty are not implied and are left alone.
//
// It returns t itself when nothing new is implied.
func Transitive(t *Tiling) *Tiling {
	positive := t.PositiveCells()
	if len(positive) == 0 {
		return t
	}

	var rowIqs, colIqs []Inequality
	for _, o := range t.obstructions {
		switch {
		case o.Len() != 2 || o.IsSingleCell():
		case SameRow(o.Pos[0], o.Pos[1]):
			rowIqs = append(rowIqs, RowInequality(o))
		case SameCol(o.Pos[0], o.Pos[1]):
			colIqs = append(colIqs, ColInequality(o))
		}
	}

	var added []GriddedPerm
	for _, iq := range closure(rowIqs, positive) {
		added = append(added, rowObstruction(iq))
	}
	for _, iq := range closure(colIqs, positive) {
		added = append(added, colObstruction(iq))
	}
	if len(added) == 0 {
		return t
	}
	return Build(append(t.Obstructions(), added...), t.Requirements(), t.Assumptions())
}

// closure returns the inequalities implied by iqs through positive middle
// cells that iqs does not already contain.
func closure(iqs []Inequality, positive []Cell) []Inequality {
	known := make(map[Inequality]bool, len(iqs))
	for _, iq := range iqs {
		known[iq] = true
	}
	var added []Inequality
	for changed := true; changed; {
		changed = false
		for _, mid := range positive {
			for lo := range known {
				if lo.Hi != mid {
					continue
				}
				for hi := range known {
					if hi.Lo != mid || lo.Lo == hi.Hi {
						continue
					}
					next := Inequality{Lo: lo.Lo, Hi: hi.Hi}
					if !known[next] {
						known[next] = true
						added = append(added, next)
						changed = true
					}
				}
			}
		}
	}
	slices.SortFunc(added, func(a, b Inequality) int {
		if c := CompareCells(a.Lo, b.Lo); c != 0 {
			return c
		}
		return CompareCells(a.Hi, b.Hi)
	})
	return added
}
