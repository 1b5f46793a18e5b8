package graph

import (
	"fmt"
	"sort"

	"cfgbench/errors"
)

// Node is one synthetic function in the call graph.
type Node struct {
	// ID is the unique identifier, stable for the lifetime of the graph.
	ID uint32
	// Depth is the distance from the root along the generation tree.
	Depth uint32
	// IntraControlFlow marks nodes whose emitted body must contain a
	// branch construct distinct from its calls.
	IntraControlFlow bool
	// Prefetch marks nodes whose emitted body prefetches each callee's
	// code address before calling it.
	Prefetch bool
	// Callees lists the ids this node calls, in emission order.
	// Duplicates are permitted when a strategy models repeated calls.
	Callees []uint32
}

// Graph is the aggregate call graph artifact.
type Graph struct {
	RootID uint32
	Nodes  map[uint32]*Node
}

// New returns an empty graph with the given root id. The root node itself
// must still be added.
func New(rootID uint32) *Graph {
	return &Graph{
		RootID: rootID,
		Nodes:  make(map[uint32]*Node),
	}
}

// Add inserts a node. Duplicate ids are a programming error in the
// generating strategy and panic rather than corrupt the graph.
func (g *Graph) Add(n *Node) {
	if _, ok := g.Nodes[n.ID]; ok {
		panic(fmt.Sprintf("graph: duplicate node id %d", n.ID))
	}
	g.Nodes[n.ID] = n
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id uint32) *Node {
	return g.Nodes[id]
}

// Root returns the root node, or nil if it was never added.
func (g *Graph) Root() *Node {
	return g.Nodes[g.RootID]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// Order returns the stable node ordering used for encoding and
// partitioning: the root first, then the remaining ids ascending.
func (g *Graph) Order() []uint32 {
	ids := make([]uint32, 0, len(g.Nodes))
	for id := range g.Nodes {
		if id != g.RootID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]uint32, 0, len(g.Nodes))
	if _, ok := g.Nodes[g.RootID]; ok {
		out = append(out, g.RootID)
	}
	return append(out, ids...)
}

// EdgeCount returns the total number of call edges, duplicates included.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, node := range g.Nodes {
		n += len(node.Callees)
	}
	return n
}

// Validate checks the structural invariants: the root exists, every callee
// id resolves to a node (closure), and every node is reachable from the
// root via callee edges. The stage parameter tags the returned error with
// the pipeline step that detected the violation.
func (g *Graph) Validate(stage errors.Stage) error {
	if _, ok := g.Nodes[g.RootID]; !ok {
		return errors.MalformedGraph(stage, g.RootID, "root node is missing")
	}

	for _, id := range g.Order() {
		for _, callee := range g.Nodes[id].Callees {
			if _, ok := g.Nodes[callee]; !ok {
				return errors.MalformedGraph(stage, id,
					fmt.Sprintf("callee %d does not resolve to a node", callee))
			}
		}
	}

	visited := make(map[uint32]bool, len(g.Nodes))
	queue := []uint32{g.RootID}
	visited[g.RootID] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, callee := range g.Nodes[id].Callees {
			if !visited[callee] {
				visited[callee] = true
				queue = append(queue, callee)
			}
		}
	}
	if len(visited) != len(g.Nodes) {
		for _, id := range g.Order() {
			if !visited[id] {
				return errors.MalformedGraph(stage, id, "node is not reachable from root")
			}
		}
	}

	return nil
}

// FunctionName returns the emitted C symbol for a node id. The generator,
// code generator, renderer and verifier must agree on this mapping.
func FunctionName(id uint32) string {
	return fmt.Sprintf("function_%d", id)
}
