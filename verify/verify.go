// Package verify checks emitted benchmark sources against the graph they
// were generated from. It parses every translation unit with tree-sitter's
// C grammar and confirms the call topology was preserved: one definition
// per node, one call expression per callee in callee order, and an entry
// point that calls exactly the root.
//
// Verification is structural only; it never compiles or runs anything.
package verify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"cfgbench/errors"
	"cfgbench/graph"
)

const symbolPrefix = "function_"

// function is one parsed C function definition.
type function struct {
	name string
	file string
	// calls lists called benchmark symbols in source order; calls to
	// anything outside the benchmark (getopt, printf, ...) are dropped.
	calls []string
}

// Sources verifies every .c file in dir against g. It returns a
// topology_mismatch error naming the first deviation found, or a
// filesystem error if the directory cannot be read.
func Sources(g *graph.Graph, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.FileSystem(errors.StageVerify, dir, err)
	}

	funcs := make(map[string]function)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".c" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		source, err := os.ReadFile(path)
		if err != nil {
			return errors.FileSystem(errors.StageVerify, path, err)
		}
		parsed, err := parseUnit(source, entry.Name())
		if err != nil {
			return err
		}
		for _, f := range parsed {
			if prev, ok := funcs[f.name]; ok {
				return mismatch("%s defined in both %s and %s", f.name, prev.file, f.file)
			}
			funcs[f.name] = f
		}
	}

	return checkTopology(g, funcs)
}

// parseUnit extracts the function definitions of one translation unit.
func parseUnit(source []byte, file string) ([]function, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, mismatch("%s: parse failed: %v", file, err)
	}
	defer tree.Close()

	var funcs []function
	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		def := root.NamedChild(i)
		if def.Type() != "function_definition" {
			continue
		}
		name := definitionName(def, source)
		if name == "" {
			return nil, mismatch("%s: function definition without a name", file)
		}
		f := function{name: name, file: file}
		collectCalls(def, source, &f.calls)
		funcs = append(funcs, f)
	}
	return funcs, nil
}

// definitionName digs the declared identifier out of a function_definition.
func definitionName(def *sitter.Node, source []byte) string {
	for i := 0; i < int(def.NamedChildCount()); i++ {
		child := def.NamedChild(i)
		if child.Type() != "function_declarator" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			if inner := child.NamedChild(j); inner.Type() == "identifier" {
				return inner.Content(source)
			}
		}
	}
	return ""
}

// collectCalls appends the benchmark symbols called under node, in source
// order.
func collectCalls(node *sitter.Node, source []byte, calls *[]string) {
	if node.Type() == "call_expression" {
		if fn := node.ChildByFieldName("function"); fn != nil && fn.Type() == "identifier" {
			if name := fn.Content(source); strings.HasPrefix(name, symbolPrefix) {
				*calls = append(*calls, name)
			}
		}
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectCalls(node.NamedChild(i), source, calls)
	}
}

func checkTopology(g *graph.Graph, funcs map[string]function) error {
	main, ok := funcs["main"]
	if !ok {
		return mismatch("no entry point emitted")
	}
	rootSymbol := graph.FunctionName(g.RootID)
	if len(main.calls) != 1 || main.calls[0] != rootSymbol {
		return mismatch("entry point calls %v, want exactly [%s]", main.calls, rootSymbol)
	}

	for _, id := range g.Order() {
		node := g.Node(id)
		symbol := graph.FunctionName(id)
		f, ok := funcs[symbol]
		if !ok {
			return mismatch("%s was not emitted", symbol)
		}
		if len(f.calls) != len(node.Callees) {
			return mismatch("%s contains %d call expressions, want %d",
				symbol, len(f.calls), len(node.Callees))
		}
		for i, callee := range node.Callees {
			want := graph.FunctionName(callee)
			if f.calls[i] != want {
				return mismatch("%s call %d targets %s, want %s",
					symbol, i, f.calls[i], want)
			}
		}
	}

	// Nothing besides the graph's functions and main may define benchmark
	// symbols.
	var extras []string
	for name := range funcs {
		if name == "main" {
			continue
		}
		if !strings.HasPrefix(name, symbolPrefix) {
			continue
		}
		var id uint32
		if _, err := fmt.Sscanf(name, symbolPrefix+"%d", &id); err == nil {
			if g.Node(id) != nil {
				continue
			}
		}
		extras = append(extras, name)
	}
	if len(extras) > 0 {
		sort.Strings(extras)
		return mismatch("emitted functions with no graph node: %v", extras)
	}

	return nil
}

func mismatch(format string, args ...any) error {
	return errors.New(errors.StageVerify, errors.KindTopologyMismatch).
		Detail(format, args...).
		Build()
}
