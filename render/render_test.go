package render_test

import (
	"strings"
	"testing"

	"cfgbench/graph"
	"cfgbench/render"
)

func testGraph() *graph.Graph {
	g := graph.New(1)
	g.Add(&graph.Node{ID: 1, Callees: []uint32{2, 3, 2}})
	g.Add(&graph.Node{ID: 2, Depth: 1, Callees: []uint32{3}})
	g.Add(&graph.Node{ID: 3, Depth: 1})
	return g
}

func TestBuild(t *testing.T) {
	lg := render.Build(testGraph())

	if len(lg.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(lg.Nodes))
	}
	// 1->2 appears twice in the graph but once in the rendered view.
	if len(lg.Edges) != 3 {
		t.Errorf("edges = %d, want 3 after dedup", len(lg.Edges))
	}
	for _, e := range lg.Edges {
		if !strings.HasPrefix(e.Caller, "function_") || !strings.HasPrefix(e.Callee, "function_") {
			t.Errorf("edge %v not keyed by emitted symbols", e)
		}
	}
}

func TestDOT(t *testing.T) {
	dot := render.DOT(testGraph(), "callgraph")
	for _, want := range []string{"function_1", "function_2", "function_3"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %s", want)
		}
	}
}
