package cfggen

import (
	"math"
	"math/rand"

	"cfgbench/graph"
)

func init() {
	Register(wide{})
}

// wide generates a breadth-driven random tree: every interior node gets a
// child count drawn from a Poisson distribution around AvgWidth, clamped to
// at least one so every level down to Depth is populated. Nodes at the
// final depth are leaves.
//
// With ExtraEdgeProbability > 0 the strategy also adds forward non-tree
// edges modelling shared callees: a node may additionally call a later
// sibling at its own depth or a node one level below. These edges always
// point forward in creation order, so the output stays acyclic.
type wide struct{}

func (wide) Name() string { return "wide" }

func (wide) Generate(p Params) (*graph.Graph, error) {
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

	created := []uint32{root}
	levels := [][]uint32{{root}}
	for depth := 1; depth < p.Depth; depth++ {
		var next []uint32
		for _, caller := range levels[depth-1] {
			children := poisson(rng, p.AvgWidth)
			if children < 1 {
				children = 1
			}
			for i := 0; i < children; i++ {
				child := ids.Next()
				g.Add(&graph.Node{ID: child, Depth: uint32(depth)})
				g.Node(caller).Callees = append(g.Node(caller).Callees, child)
				created = append(created, child)
				next = append(next, child)
			}
		}
		levels = append(levels, next)
	}

	flagNodes(rng, g, created, p.BranchProbability)

	if p.ExtraEdgeProbability > 0 {
		addForwardEdges(rng, g, levels, p.ExtraEdgeProbability)
	}

	return g, nil
}

// addForwardEdges adds shared-callee edges within or one level below each
// node's depth. Candidates are restricted to later positions at the same
// level and the whole next level, keeping every extra edge forward.
func addForwardEdges(rng *rand.Rand, g *graph.Graph, levels [][]uint32, probability float64) {
	for depth, level := range levels {
		for i, caller := range level {
			if rng.Float64() >= probability {
				continue
			}
			var candidates []uint32
			candidates = append(candidates, level[i+1:]...)
			if depth+1 < len(levels) {
				candidates = append(candidates, levels[depth+1]...)
			}
			if len(candidates) == 0 {
				continue
			}
			target := candidates[rng.Intn(len(candidates))]
			if hasCallee(g.Node(caller), target) {
				continue
			}
			g.Node(caller).Callees = append(g.Node(caller).Callees, target)
		}
	}
}

func hasCallee(n *graph.Node, id uint32) bool {
	for _, callee := range n.Callees {
		if callee == id {
			return true
		}
	}
	return false
}

// poisson draws from Poisson(mean) using Knuth's product method, which is
// plenty for the widths this tool targets.
func poisson(rng *rand.Rand, mean float64) int {
	limit := math.Exp(-mean)
	k := 0
	product := rng.Float64()
	for product > limit {
		k++
		product *= rng.Float64()
	}
	return k
}
