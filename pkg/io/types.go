package io

import (
	"slices"

	"github.com/matzehuels/gridsep/pkg/tiling"
)

// Tiling is the JSON form of a tiling.
type Tiling struct {
	Obstructions []GriddedPerm   `json:"obstructions"`
	Requirements [][]GriddedPerm `json:"requirements,omitempty"`
	Assumptions  [][]GriddedPerm `json:"assumptions,omitempty"`
}

// GriddedPerm is the JSON form of a gridded permutation. Cells are
// [col, row] pairs.
type GriddedPerm struct {
	Patt []int    `json:"patt"`
	Pos  [][2]int `json:"pos"`
}

// CellMapping is one entry of a cell map.
type CellMapping struct {
	From [2]int `json:"from"`
	To   [2]int `json:"to"`
}

// Result is the JSON form of a separation run.
type Result struct {
	RunID     string        `json:"run_id,omitempty"`
	Separable bool          `json:"separable"`
	Passes    int           `json:"passes"`
	Tiling    Tiling        `json:"tiling"`
	CellMap   []CellMapping `json:"cell_map"`
}

// FromTiling converts a tiling to its JSON form.
func FromTiling(t *tiling.Tiling) Tiling {
	out := Tiling{Obstructions: fromGPs(t.Obstructions())}
	for _, req := range t.Requirements() {
		out.Requirements = append(out.Requirements, fromGPs(req))
	}
	for _, a := range t.Assumptions() {
		out.Assumptions = append(out.Assumptions, fromGPs(a))
	}
	return out
}

func fromGPs(gps []tiling.GriddedPerm) []GriddedPerm {
	out := make([]GriddedPerm, len(gps))
	for i, g := range gps {
		out[i] = GriddedPerm{Patt: append([]int{}, g.Patt...), Pos: make([][2]int, len(g.Pos))}
		for j, c := range g.Pos {
			out[i].Pos[j] = fromCell(c)
		}
	}
	return out
}

func fromCell(c tiling.Cell) [2]int { return [2]int{c.Col, c.Row} }

func toCell(c [2]int) tiling.Cell { return tiling.Cell{Col: c[0], Row: c[1]} }

// FromCellMap converts a cell map to its JSON form, sorted by source cell.
func FromCellMap(m map[tiling.Cell]tiling.Cell) []CellMapping {
	from := make([]tiling.Cell, 0, len(m))
	for c := range m {
		from = append(from, c)
	}
	slices.SortFunc(from, tiling.CompareCells)

	out := make([]CellMapping, len(from))
	for i, c := range from {
		out[i] = CellMapping{From: fromCell(c), To: fromCell(m[c])}
	}
	return out
}

// ToCellMap converts the JSON form of a cell map back.
func ToCellMap(ms []CellMapping) map[tiling.Cell]tiling.Cell {
	out := make(map[tiling.Cell]tiling.Cell, len(ms))
	for _, m := range ms {
		out[toCell(m.From)] = toCell(m.To)
	}
	return out
}
