package order

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the graph.
//
// Each vertex is drawn as a box listing the members of its class and its
// weight; each non-zero matrix entry becomes an edge labelled with its weight.
// If names[i] exists, member i is shown as names[i], otherwise as its index.
// Pass nil to use numeric names.
//
// Example:
//
//	g := order.New([]int{0, 1}, [][]int{{0, 1}, {0, 0}})
//	dot := g.ToDOT([]string{"(0,0)", "(1,0)"})
func (g *Graph) ToDOT(names []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph OrderGraph {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")

	for v := range g.labels {
		fmt.Fprintf(&buf, "  v%d [label=%q];\n", v, g.vertexName(v, names))
	}
	for u, row := range g.matrix {
		for v, w := range row {
			if w != 0 {
				fmt.Fprintf(&buf, "  v%d -> v%d [label=\"%d\"];\n", u, v, w)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func (g *Graph) vertexName(v int, names []string) string {
	parts := make([]string, len(g.labels[v]))
	for i, member := range g.labels[v] {
		if member >= 0 && member < len(names) {
			parts[i] = names[member]
		} else {
			parts[i] = fmt.Sprint(member)
		}
	}
	return fmt.Sprintf("{%s} w=%d", strings.Join(parts, " "), g.weights[v])
}

// RenderSVG renders the graph as an SVG document via Graphviz.
//
// The names parameter is passed to ToDOT. Errors from Graphviz
// initialisation, DOT parsing or rendering are wrapped with context.
func (g *Graph) RenderSVG(names []string) ([]byte, error) {
	dot := g.ToDOT(names)
	ctx := context.Background()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
