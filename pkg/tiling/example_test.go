package tiling_test

import (
	"fmt"

	"github.com/matzehuels/gridsep/pkg/tiling"
)

func ExampleBuild() {
	t := tiling.Build(
		[]tiling.GriddedPerm{
			tiling.Point(tiling.Cell{Col: 1, Row: 0}),
			tiling.Point(tiling.Cell{Col: 0, Row: 1}),
			tiling.NewGriddedPerm([]int{0, 1}, []tiling.Cell{{Col: 0, Row: 0}, {Col: 0, Row: 0}}),
		},
		[][]tiling.GriddedPerm{{tiling.Point(tiling.Cell{Col: 1, Row: 1})}},
		nil,
	)
	fmt.Print(t)
	// Output:
	// +-+-+
	// | |+|
	// +-+-+
	// |*| |
	// +-+-+
	// Obstructions:
	//   01: (0,0), (0,0)
	// Requirement 0:
	//   0: (1,1)
}

func ExampleBuild_compaction() {
	t := tiling.Build(
		[]tiling.GriddedPerm{
			tiling.Point(tiling.Cell{Col: 1, Row: 0}),
			tiling.Point(tiling.Cell{Col: 1, Row: 1}),
			tiling.NewGriddedPerm([]int{1, 0}, []tiling.Cell{{Col: 2, Row: 1}, {Col: 2, Row: 1}}),
		},
		nil, nil,
	)
	cols, rows := t.Dimensions()
	fmt.Println(cols, rows)
	fmt.Println(t.ForwardMap()[tiling.Cell{Col: 2, Row: 1}])
	// Output:
	// 2 2
	// (1,1)
}
