package tiling

import (
	"cmp"
	"fmt"
)

// Cell is a grid coordinate. Columns grow to the right and rows grow
// upwards, so (0,0) is the bottom-left cell.
type Cell struct {
	Col int
	Row int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Col, c.Row) }

// CompareCells orders cells column-major: by column, then by row.
func CompareCells(a, b Cell) int {
	if c := cmp.Compare(a.Col, b.Col); c != 0 {
		return c
	}
	return cmp.Compare(a.Row, b.Row)
}

// SameRow reports whether a and b are distinct cells of one row.
func SameRow(a, b Cell) bool { return a.Row == b.Row && a.Col != b.Col }

// SameCol reports whether a and b are distinct cells of one column.
func SameCol(a, b Cell) bool { return a.Col == b.Col && a.Row != b.Row }
