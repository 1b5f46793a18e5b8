// Package codegen lowers a call graph into C translation units plus a
// Makefile that together reproduce the graph's call topology exactly.
//
// A run walks a fixed state machine:
//
//	Start → PartitionAssigned → UnitsEmitted → RecipeEmitted → Done
//
// with any failure transitioning to Failed and removing every path written
// so far, so an output directory is never left half-written. All unit
// contents are rendered in memory before the first write; output is a pure
// function of the graph and the file count, so re-running with identical
// input reproduces byte-identical files.
//
// Nodes are assigned to translation units in contiguous blocks over the
// graph's stable order, root first. The split exists so a native build can
// compile units in parallel; codegen itself is single-threaded.
package codegen
