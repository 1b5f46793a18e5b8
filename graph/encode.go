package graph

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Artifact field numbers. These are a stable wire contract: changes must be
// additive only.
const (
	graphFieldRootID = 1
	graphFieldNode   = 2

	nodeFieldID       = 1
	nodeFieldDepth    = 2
	nodeFieldIntraCF  = 3
	nodeFieldCallees  = 4
	nodeFieldPrefetch = 5
)

// Encode serializes the graph to its canonical artifact bytes.
func Encode(g *Graph) []byte {
	buf := protowire.AppendTag(nil, graphFieldRootID, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(g.RootID))
	for _, id := range g.Order() {
		node := encodeNode(g.Nodes[id])
		buf = protowire.AppendTag(buf, graphFieldNode, protowire.BytesType)
		buf = protowire.AppendBytes(buf, node)
	}
	return buf
}

func encodeNode(n *Node) []byte {
	buf := protowire.AppendTag(nil, nodeFieldID, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(n.ID))
	buf = protowire.AppendTag(buf, nodeFieldDepth, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(n.Depth))
	if n.IntraControlFlow {
		buf = protowire.AppendTag(buf, nodeFieldIntraCF, protowire.VarintType)
		buf = protowire.AppendVarint(buf, 1)
	}
	if len(n.Callees) > 0 {
		var packed []byte
		for _, callee := range n.Callees {
			packed = protowire.AppendVarint(packed, uint64(callee))
		}
		buf = protowire.AppendTag(buf, nodeFieldCallees, protowire.BytesType)
		buf = protowire.AppendBytes(buf, packed)
	}
	if n.Prefetch {
		buf = protowire.AppendTag(buf, nodeFieldPrefetch, protowire.VarintType)
		buf = protowire.AppendVarint(buf, 1)
	}
	return buf
}
