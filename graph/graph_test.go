package graph_test

import (
	stderrors "errors"
	"testing"

	"cfgbench/errors"
	"cfgbench/graph"
)

// chain builds root(1) -> 2 -> 3 with node 2 flagged.
func chain() *graph.Graph {
	g := graph.New(1)
	g.Add(&graph.Node{ID: 1, Depth: 0, Callees: []uint32{2}})
	g.Add(&graph.Node{ID: 2, Depth: 1, IntraControlFlow: true, Callees: []uint32{3}})
	g.Add(&graph.Node{ID: 3, Depth: 2})
	return g
}

func TestOrderRootFirst(t *testing.T) {
	g := graph.New(5)
	g.Add(&graph.Node{ID: 7})
	g.Add(&graph.Node{ID: 5, Callees: []uint32{7, 2}})
	g.Add(&graph.Node{ID: 2})

	got := g.Order()
	want := []uint32{5, 2, 7}
	if len(got) != len(want) {
		t.Fatalf("Order() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Order() = %v, want %v", got, want)
		}
	}
}

func TestValidateOK(t *testing.T) {
	if err := chain().Validate(errors.StageGenerate); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateMissingRoot(t *testing.T) {
	g := graph.New(99)
	g.Add(&graph.Node{ID: 1})

	err := g.Validate(errors.StageGenerate)
	if !errors.IsKind(err, errors.KindMalformedGraph) {
		t.Fatalf("expected malformed_graph, got %v", err)
	}
}

func TestValidateDanglingCallee(t *testing.T) {
	g := chain()
	g.Node(3).Callees = []uint32{42}

	err := g.Validate(errors.StageGenerate)
	if !errors.IsKind(err, errors.KindMalformedGraph) {
		t.Fatalf("expected malformed_graph, got %v", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.NodeID != 3 {
		t.Errorf("error should name the calling node, got %v", err)
	}
}

func TestValidateUnreachableNode(t *testing.T) {
	g := chain()
	g.Add(&graph.Node{ID: 10, Depth: 1})

	err := g.Validate(errors.StageGenerate)
	if !errors.IsKind(err, errors.KindMalformedGraph) {
		t.Fatalf("expected malformed_graph, got %v", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.NodeID != 10 {
		t.Errorf("error should name the unreachable node, got %v", err)
	}
}

func TestValidateAllowsCycles(t *testing.T) {
	g := chain()
	g.Node(3).Callees = []uint32{1} // back edge

	if err := g.Validate(errors.StageGenerate); err != nil {
		t.Fatalf("cycles are structurally valid, got %v", err)
	}
}

func TestEdgeCountCountsDuplicates(t *testing.T) {
	g := graph.New(1)
	g.Add(&graph.Node{ID: 1, Callees: []uint32{2, 2, 2}})
	g.Add(&graph.Node{ID: 2})

	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}
}

func TestFunctionName(t *testing.T) {
	if got := graph.FunctionName(17); got != "function_17" {
		t.Errorf("FunctionName(17) = %q", got)
	}
}
