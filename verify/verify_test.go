package verify_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cfgbench/cfggen"
	"cfgbench/codegen"
	"cfgbench/errors"
	"cfgbench/graph"
	"cfgbench/verify"
)

func emit(t *testing.T, g *graph.Graph, numFiles int) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "out")
	if _, err := codegen.New(g, codegen.Options{NumFiles: numFiles, OutDir: dir}).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return dir
}

func TestVerifyGeneratedOutput(t *testing.T) {
	g, err := cfggen.Generate("dfs_chase", cfggen.Params{
		Depth: 3, AvgWidth: 2, BranchProbability: 0.5, Seed: 42,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	dir := emit(t, g, 2)
	if err := verify.Sources(g, dir); err != nil {
		t.Fatalf("verification of untouched output failed: %v", err)
	}
}

func TestVerifyDuplicateCallees(t *testing.T) {
	g := graph.New(1)
	g.Add(&graph.Node{ID: 1, Callees: []uint32{2, 2, 3}})
	g.Add(&graph.Node{ID: 2, Depth: 1})
	g.Add(&graph.Node{ID: 3, Depth: 1})

	dir := emit(t, g, 1)
	if err := verify.Sources(g, dir); err != nil {
		t.Fatalf("verification failed: %v", err)
	}
}

func TestVerifyPrefetchedChains(t *testing.T) {
	g, err := cfggen.Generate("pointer_chase", cfggen.Params{
		Depth: 3, AvgWidth: 2, CodePrefetch: true, Seed: 5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	dir := emit(t, g, 2)
	if err := verify.Sources(g, dir); err != nil {
		t.Fatalf("prefetch blocks must not register as calls: %v", err)
	}
}

func TestVerifyGuardedRecursion(t *testing.T) {
	g := graph.New(1)
	g.Add(&graph.Node{ID: 1, Callees: []uint32{2}})
	g.Add(&graph.Node{ID: 2, Depth: 1, Callees: []uint32{1}})

	dir := emit(t, g, 2)
	if err := verify.Sources(g, dir); err != nil {
		t.Fatalf("guarded back edge should still count as one call: %v", err)
	}
}

func TestVerifyDetectsDroppedCall(t *testing.T) {
	g := graph.New(1)
	g.Add(&graph.Node{ID: 1, Callees: []uint32{2, 3}})
	g.Add(&graph.Node{ID: 2, Depth: 1})
	g.Add(&graph.Node{ID: 3, Depth: 1})

	dir := emit(t, g, 1)
	path := filepath.Join(dir, "0.c")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(data), "function_3();\n", "", 1)
	if tampered == string(data) {
		t.Fatal("tampering had no effect")
	}
	if err := os.WriteFile(path, []byte(tampered), 0644); err != nil {
		t.Fatal(err)
	}

	err = verify.Sources(g, dir)
	if !errors.IsKind(err, errors.KindTopologyMismatch) {
		t.Fatalf("expected topology_mismatch, got %v", err)
	}
}

func TestVerifyDetectsReordering(t *testing.T) {
	g := graph.New(1)
	g.Add(&graph.Node{ID: 1, Callees: []uint32{2, 3}})
	g.Add(&graph.Node{ID: 2, Depth: 1})
	g.Add(&graph.Node{ID: 3, Depth: 1})

	dir := emit(t, g, 1)
	path := filepath.Join(dir, "0.c")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(data),
		"function_2();\nfunction_3();\n",
		"function_3();\nfunction_2();\n", 1)
	if tampered == string(data) {
		t.Fatal("tampering had no effect")
	}
	if err := os.WriteFile(path, []byte(tampered), 0644); err != nil {
		t.Fatal(err)
	}

	err = verify.Sources(g, dir)
	if !errors.IsKind(err, errors.KindTopologyMismatch) {
		t.Fatalf("expected topology_mismatch, got %v", err)
	}
}

func TestVerifyMissingDirectory(t *testing.T) {
	g := graph.New(1)
	g.Add(&graph.Node{ID: 1})

	err := verify.Sources(g, filepath.Join(t.TempDir(), "nope"))
	if !errors.IsKind(err, errors.KindFileSystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}
