package cfggen

import (
	"math"
	"math/rand"

	"cfgbench/graph"
)

func init() {
	Register(dfsChase{})
}

// dfsChase generates a depth-first chase benchmark: a full ceil(AvgWidth)-ary
// function tree of the given depth. Executing the tree walks long dependent
// call chains down to the leaves, stressing the return stack and the
// instruction fetch pipeline.
//
// With AllowRecursion set, each leaf gains a back edge to one of its
// ancestors with probability ExtraEdgeProbability, turning some chases into
// bounded recursive chains. These are the only true cycles any strategy
// produces; without the flag the output is a pure tree.
type dfsChase struct{}

func (dfsChase) Name() string { return "dfs_chase" }

func (dfsChase) Generate(p Params) (*graph.Graph, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(p.Seed))

	var ids idAllocator
	root := ids.Next()
	g := graph.New(root)
	g.Add(&graph.Node{ID: root, Depth: 0})

	if p.AvgWidth <= 0 {
		return g, nil
	}
	width := int(math.Ceil(p.AvgWidth))

	parent := map[uint32]uint32{}
	created := []uint32{root}
	level := []uint32{root}
	for depth := 1; depth < p.Depth; depth++ {
		var next []uint32
		for _, caller := range level {
			for i := 0; i < width; i++ {
				child := ids.Next()
				g.Add(&graph.Node{ID: child, Depth: uint32(depth)})
				g.Node(caller).Callees = append(g.Node(caller).Callees, child)
				parent[child] = caller
				created = append(created, child)
				next = append(next, child)
			}
		}
		level = next
	}

	flagNodes(rng, g, created, p.BranchProbability)

	if p.AllowRecursion && p.Depth > 1 {
		// level now holds the leaves in creation order.
		for _, leaf := range level {
			if rng.Float64() >= p.ExtraEdgeProbability {
				continue
			}
			ancestors := ancestorPath(parent, leaf)
			target := ancestors[rng.Intn(len(ancestors))]
			g.Node(leaf).Callees = append(g.Node(leaf).Callees, target)
		}
	}

	return g, nil
}

// ancestorPath returns the ancestors of id from parent up to the root.
func ancestorPath(parent map[uint32]uint32, id uint32) []uint32 {
	var path []uint32
	for {
		p, ok := parent[id]
		if !ok {
			return path
		}
		path = append(path, p)
		id = p
	}
}
