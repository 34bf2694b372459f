package separation

import (
	"maps"
	"slices"

	"github.com/matzehuels/gridsep/pkg/tiling"
)

// CellMap maps cells of one tiling to cells of another. Cells without an
// image are absent.
type CellMap map[tiling.Cell]tiling.Cell

// Identity maps every cell in cells to itself.
func Identity(cells []tiling.Cell) CellMap {
	m := make(CellMap, len(cells))
	for _, c := range cells {
		m[c] = c
	}
	return m
}

// Compose returns the map that applies m and then next. Cells whose image
// under m has no image under next are dropped.
func (m CellMap) Compose(next CellMap) CellMap {
	out := make(CellMap, len(m))
	for from, mid := range m {
		if to, ok := next[mid]; ok {
			out[from] = to
		}
	}
	return out
}

// Clone returns a copy of m.
func (m CellMap) Clone() CellMap { return maps.Clone(m) }

// Sources returns the mapped cells in column-major order.
func (m CellMap) Sources() []tiling.Cell {
	return slices.SortedFunc(maps.Keys(m), tiling.CompareCells)
}

func (m CellMap) lookup(c tiling.Cell) tiling.Cell { return m[c] }

// covers reports whether every cell of g has an image.
func (m CellMap) covers(g tiling.GriddedPerm) bool {
	for _, c := range g.Pos {
		if _, ok := m[c]; !ok {
			return false
		}
	}
	return true
}
