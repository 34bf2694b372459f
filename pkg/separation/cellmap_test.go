package separation

import (
	"reflect"
	"testing"

	"github.com/matzehuels/gridsep/pkg/tiling"
)

func TestCellMapCompose(t *testing.T) {
	a, b, c := tiling.Cell{Col: 0, Row: 0}, tiling.Cell{Col: 1, Row: 0}, tiling.Cell{Col: 2, Row: 0}
	first := CellMap{a: b, b: c, c: a}
	next := CellMap{b: a, c: c}

	got := first.Compose(next)
	want := CellMap{a: a, b: c}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compose() = %v, want %v", got, want)
	}
}

func TestIdentityAndSources(t *testing.T) {
	cells := []tiling.Cell{{Col: 1, Row: 0}, {Col: 0, Row: 2}, {Col: 0, Row: 1}}
	m := Identity(cells)
	for _, c := range cells {
		if m[c] != c {
			t.Errorf("Identity()[%v] = %v", c, m[c])
		}
	}
	want := []tiling.Cell{{Col: 0, Row: 1}, {Col: 0, Row: 2}, {Col: 1, Row: 0}}
	if got := m.Sources(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sources() = %v, want %v", got, want)
	}

	clone := m.Clone()
	clone[cells[0]] = tiling.Cell{}
	if m[cells[0]] != cells[0] {
		t.Error("Clone() shares storage")
	}
}
