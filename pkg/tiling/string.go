package tiling

import (
	"fmt"
	"slices"
	"strings"
)

// String draws the grid followed by the constraint lists. Active cells are
// drawn as '*', positive cells as '+' and empty cells are left blank; the top
// line of the grid is the highest row.
//
//	+-+-+
//	| |*|
//	+-+-+
//	|+| |
//	+-+-+
func (t *Tiling) String() string {
	var sb strings.Builder
	switch {
	case t.empty:
		return "empty tiling\n"
	case t.IsEpsilon():
		return "epsilon tiling\n"
	}

	positive := t.PositiveCells()
	border := "+" + strings.Repeat("-+", t.cols) + "\n"
	sb.WriteString(border)
	for row := t.rows - 1; row >= 0; row-- {
		sb.WriteByte('|')
		for col := range t.cols {
			c := Cell{col, row}
			switch {
			case slices.Contains(positive, c):
				sb.WriteByte('+')
			case slices.Contains(t.active, c):
				sb.WriteByte('*')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
		sb.WriteString(border)
	}

	var nonPoint []GriddedPerm
	for _, o := range t.obstructions {
		if !o.IsPoint() {
			nonPoint = append(nonPoint, o)
		}
	}
	writeList(&sb, "Obstructions", nonPoint)
	for i, req := range t.requirements {
		writeList(&sb, fmt.Sprintf("Requirement %d", i), req)
	}
	for i, a := range t.assumptions {
		writeList(&sb, fmt.Sprintf("Assumption %d", i), a)
	}
	return sb.String()
}

func writeList(sb *strings.Builder, title string, gps []GriddedPerm) {
	if len(gps) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", title)
	for _, g := range gps {
		fmt.Fprintf(sb, "  %s\n", g)
	}
}
