package cfggen

import (
	"math"
	"math/rand"

	"cfgbench/graph"
)

func init() {
	Register(pointerChase{})
}

// pointerChase generates an instruction pointer chase benchmark: a
// collection of call chains of length Depth whose function ids are visited
// in shuffled order, so consecutive calls land far apart in the emitted
// code. AvgWidth sets the number of chains (rounded, minimum one); the root
// calls each chain head in order and each chain tail simply returns.
//
// With CodePrefetch set, every chain function that calls is marked to
// prefetch its callee's code address first. The root dispatcher and the
// chain tails are never marked. The output is always acyclic.
type pointerChase struct{}

func (pointerChase) Name() string { return "pointer_chase" }

func (pointerChase) Generate(p Params) (*graph.Graph, error) {
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
	chains := int(math.Round(p.AvgWidth))
	if chains < 1 {
		chains = 1
	}

	// Allocate every chain function up front, then visit the pool in
	// shuffled order so chain successors look arbitrary.
	total := chains * p.Depth
	pool := make([]uint32, total)
	for i := range pool {
		pool[i] = ids.Next()
	}
	shuffled := make([]uint32, total)
	for i, j := range rng.Perm(total) {
		shuffled[i] = pool[j]
	}

	created := []uint32{root}
	for c := 0; c < chains; c++ {
		chain := shuffled[c*p.Depth : (c+1)*p.Depth]
		for i, id := range chain {
			node := &graph.Node{ID: id, Depth: uint32(i + 1)}
			if i+1 < len(chain) {
				node.Callees = []uint32{chain[i+1]}
				node.Prefetch = p.CodePrefetch
			}
			g.Add(node)
			created = append(created, id)
		}
		g.Node(root).Callees = append(g.Node(root).Callees, chain[0])
	}

	flagNodes(rng, g, created, p.BranchProbability)
	return g, nil
}
