// Package render exports generated call graphs as Graphviz DOT for visual
// inspection of a graph artifact before it is lowered to source.
package render

import (
	"github.com/zboralski/lattice"
	latrender "github.com/zboralski/lattice/render"

	"cfgbench/graph"
)

// Build converts a call graph to a lattice graph keyed by emitted symbol
// names. Edges are deduplicated: the DOT view shows topology, not call
// multiplicity.
func Build(g *graph.Graph) *lattice.Graph {
	lg := &lattice.Graph{}
	for _, id := range g.Order() {
		lg.Nodes = append(lg.Nodes, graph.FunctionName(id))
		for _, callee := range g.Nodes[id].Callees {
			lg.Edges = append(lg.Edges, lattice.Edge{
				Caller: graph.FunctionName(id),
				Callee: graph.FunctionName(callee),
			})
		}
	}
	lg.Dedup()
	return lg
}

// DOT renders the call graph in DOT format under the given title.
func DOT(g *graph.Graph, title string) string {
	return latrender.DOT(Build(g), title)
}
