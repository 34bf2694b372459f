package order

import (
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	g := New([]int{0, 1}, [][]int{{0, 1}, {0, 0}})
	dot := g.ToDOT([]string{"a", "b"})

	for _, want := range []string{
		"digraph OrderGraph {",
		`v0 [label="{a} w=1"];`,
		`v1 [label="{b} w=1"];`,
		`v0 -> v1 [label="1"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "v1 -> v0") {
		t.Errorf("ToDOT() has reversed edge:\n%s", dot)
	}
}

func TestToDOT_MergedClassAndFallbackNames(t *testing.T) {
	g := New([]int{0, 1, 2}, [][]int{{0, 0, 1}, {0, 0, 1}, {0, 0, 0}})
	g.Merge(0, 1)
	dot := g.ToDOT([]string{"first"})

	if !strings.Contains(dot, `v0 [label="{first 1} w=2"];`) {
		t.Errorf("ToDOT() merged label wrong:\n%s", dot)
	}
	if !strings.Contains(dot, `v0 -> v1 [label="2"];`) {
		t.Errorf("ToDOT() merged edge wrong:\n%s", dot)
	}
}
