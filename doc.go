// Package cfgbench synthesizes CPU frontend micro-benchmarks from
// parameterized call graphs.
//
// A benchmark is produced in two stages. The callgraph generator builds a
// call graph whose shape is controlled by a small set of parameters (depth,
// average width, branch probability, extra edge probability) and a seed,
// then serializes it to a compact binary artifact. The code generator reads
// an artifact back and lowers it to a set of C translation units plus a
// Makefile, one C function per graph node, with the call sites laid out
// exactly as the graph's edges dictate.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct
// responsibilities:
//
//	cfgbench/
//	├── graph/      Call graph model, validation, and the binary artifact codec
//	├── cfggen/     Generation strategies (dfs_chase, pointer_chase, wide)
//	├── codegen/    Partitioning and C source / Makefile emission
//	├── verify/     Parses emitted C and checks it against the source graph
//	├── render/     Graphviz DOT rendering of call graphs
//	├── errors/     Structured error types for debugging
//	└── cmd/        cfggraph and cfgcode command line tools
//
// # Quick Start
//
// Generate a graph and lower it to C:
//
//	g, err := cfggen.Generate("dfs_chase", cfggen.Params{
//		Depth:    6,
//		AvgWidth: 2,
//		Seed:     1,
//	})
//	if err != nil {
//		return err
//	}
//
//	gen := codegen.New(g, codegen.Options{NumFiles: 4, OutDir: "bench"})
//	if _, err := gen.Run(); err != nil {
//		return err
//	}
//
// Or round-trip through the artifact format:
//
//	data, err := graph.Encode(g)
//	...
//	g2, err := graph.Decode(data)
//
// The same parameters and seed always produce the same graph, and the same
// graph always produces the same sources, so benchmark runs are
// reproducible end to end.
package cfgbench
