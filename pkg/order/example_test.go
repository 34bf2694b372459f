package order_test

import (
	"fmt"

	"github.com/matzehuels/gridsep/pkg/order"
)

func ExampleBest() {
	// Cell 0 is above cell 1 and cell 2 is unconstrained relative to both.
	g := order.New([]int{0, 1, 2}, [][]int{
		{0, 1, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	fmt.Println(order.Best(g))
	// Output: [[0 1 2]]
}

func ExampleSearch() {
	// Two cells that each claim to come first.
	g := order.New([]int{0, 1}, [][]int{
		{0, 1},
		{1, 0},
	})
	for o := range order.Search(g, order.SearchOptions{}).All() {
		fmt.Println(o)
	}
	// Output:
	// [[1] [0]]
	// [[0] [1]]
}

func ExampleGraph_Reduce() {
	g := order.New([]int{0, 1, 2, 3}, [][]int{
		{0, 0, 1, 1},
		{0, 0, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.Reduce()
	fmt.Println(g.NumVertices(), g.IsAcyclic())
	fmt.Println(g.VertexOrder())
	// Output:
	// 2 true
	// [[0 1] [2 3]]
}
