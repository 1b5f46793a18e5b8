package graph

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"cfgbench/errors"
)

// Decode parses artifact bytes back into a Graph and validates its
// structural invariants. Unknown fields are skipped so artifacts from newer
// writers with additive fields still load.
func Decode(data []byte) (*Graph, error) {
	g := &Graph{Nodes: make(map[uint32]*Node)}
	sawRoot := false

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, malformed("truncated field tag")
		}
		data = data[n:]

		switch {
		case num == graphFieldRootID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed("truncated root_id")
			}
			if v > math.MaxUint32 {
				return nil, malformed(fmt.Sprintf("root_id %d out of range", v))
			}
			g.RootID = uint32(v)
			sawRoot = true
			data = data[n:]

		case num == graphFieldNode && typ == protowire.BytesType:
			b, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, malformed("truncated node record")
			}
			data = data[n:]
			node, err := decodeNode(b)
			if err != nil {
				return nil, err
			}
			if _, ok := g.Nodes[node.ID]; ok {
				return nil, errors.MalformedGraph(errors.StageDecode, node.ID, "duplicate node id")
			}
			g.Nodes[node.ID] = node

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, malformed(fmt.Sprintf("truncated field %d", num))
			}
			data = data[n:]
		}
	}

	if !sawRoot {
		return nil, malformed("missing root_id field")
	}
	if len(g.Nodes) == 0 {
		return nil, malformed("artifact contains no nodes")
	}
	if err := g.Validate(errors.StageDecode); err != nil {
		return nil, err
	}
	return g, nil
}

func decodeNode(data []byte) (*Node, error) {
	node := &Node{}
	sawID := false

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, malformed("truncated node field tag")
		}
		data = data[n:]

		switch {
		case num == nodeFieldID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed("truncated node id")
			}
			if v > math.MaxUint32 {
				return nil, malformed(fmt.Sprintf("node id %d out of range", v))
			}
			node.ID = uint32(v)
			sawID = true
			data = data[n:]

		case num == nodeFieldDepth && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed("truncated depth")
			}
			if v > math.MaxUint32 {
				return nil, malformed(fmt.Sprintf("depth %d out of range", v))
			}
			node.Depth = uint32(v)
			data = data[n:]

		case num == nodeFieldIntraCF && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed("truncated intra_control_flow")
			}
			node.IntraControlFlow = v != 0
			data = data[n:]

		case num == nodeFieldCallees && typ == protowire.BytesType:
			// Packed encoding, the canonical form.
			b, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, malformed("truncated callees")
			}
			data = data[n:]
			for len(b) > 0 {
				v, n := protowire.ConsumeVarint(b)
				if n < 0 {
					return nil, malformed("truncated callee id")
				}
				if v > math.MaxUint32 {
					return nil, malformed(fmt.Sprintf("callee id %d out of range", v))
				}
				node.Callees = append(node.Callees, uint32(v))
				b = b[n:]
			}

		case num == nodeFieldPrefetch && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed("truncated prefetch")
			}
			node.Prefetch = v != 0
			data = data[n:]

		case num == nodeFieldCallees && typ == protowire.VarintType:
			// Unpacked encoding, accepted for compatibility.
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed("truncated callee id")
			}
			if v > math.MaxUint32 {
				return nil, malformed(fmt.Sprintf("callee id %d out of range", v))
			}
			node.Callees = append(node.Callees, uint32(v))
			data = data[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, malformed(fmt.Sprintf("truncated node field %d", num))
			}
			data = data[n:]
		}
	}

	if !sawID {
		return nil, malformed("node record is missing required id field")
	}
	return node, nil
}

func malformed(detail string) error {
	return errors.New(errors.StageDecode, errors.KindMalformedGraph).
		Detail("%s", detail).
		Build()
}
