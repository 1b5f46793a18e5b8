package cfggen

import (
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"cfgbench/errors"
	"cfgbench/graph"
)

// Params are the shape parameters shared by every strategy.
type Params struct {
	// Depth is the target maximum generation depth. Must be positive.
	Depth int
	// AvgWidth is the target average number of children per node. A value
	// of zero or less yields the degenerate root-only graph.
	AvgWidth float64
	// BranchProbability is the fraction of nodes flagged with
	// intra-function control flow. Must be in [0, 1].
	BranchProbability float64
	// ExtraEdgeProbability controls strategy-specific non-tree edges.
	// Must be in [0, 1]. Zero disables extra edges.
	ExtraEdgeProbability float64
	// AllowRecursion lets strategies that document it add true back edges
	// (recursive calls). Default is acyclic.
	AllowRecursion bool
	// CodePrefetch makes pointer_chase mark every chain function so its
	// emitted body prefetches the callee's code address before the call.
	// Strategies that do not document prefetch support ignore it.
	CodePrefetch bool
	// Seed drives all pseudo-random choices. Fixed seed, fixed graph.
	Seed int64
}

func (p Params) validate() error {
	if p.Depth <= 0 {
		return errors.New(errors.StageParams, errors.KindInvalidParameter).
			Param("depth").
			Detail("must be positive, got %d", p.Depth).
			Build()
	}
	if p.BranchProbability < 0 || p.BranchProbability > 1 {
		return errors.New(errors.StageParams, errors.KindInvalidParameter).
			Param("branch_probability").
			Detail("must be in [0, 1], got %g", p.BranchProbability).
			Build()
	}
	if p.ExtraEdgeProbability < 0 || p.ExtraEdgeProbability > 1 {
		return errors.New(errors.StageParams, errors.KindInvalidParameter).
			Param("extra_edge_probability").
			Detail("must be in [0, 1], got %g", p.ExtraEdgeProbability).
			Build()
	}
	return nil
}

// Strategy produces one call graph satisfying the shape parameters.
type Strategy interface {
	// Name is the strategy's registry key.
	Name() string
	// Generate builds the graph. Implementations validate p first and
	// never return a partially built graph.
	Generate(p Params) (*graph.Graph, error)
}

var strategies = map[string]Strategy{}

// Register adds a strategy to the registry. Called from init functions;
// duplicate names panic.
func Register(s Strategy) {
	if _, ok := strategies[s.Name()]; ok {
		panic("cfggen: duplicate strategy " + s.Name())
	}
	strategies[s.Name()] = s
}

// Lookup returns the named strategy.
func Lookup(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, errors.NotFound(errors.StageGenerate, "strategy", name)
	}
	return s, nil
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate looks up the named strategy and runs it.
func Generate(name string, p Params) (*graph.Graph, error) {
	s, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	g, err := s.Generate(p)
	if err != nil {
		return nil, err
	}
	Logger().Info("generated call graph",
		zap.String("strategy", name),
		zap.Int("nodes", g.Len()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int64("seed", p.Seed))
	return g, nil
}

// idAllocator hands out unused node ids, starting at 1. Each generation run
// owns its own allocator so concurrent runs never share state.
type idAllocator struct {
	next uint32
}

func (a *idAllocator) Next() uint32 {
	a.next++
	return a.next
}

// flagNodes assigns IntraControlFlow in stable creation order so the rng
// stream, and therefore the artifact, is reproducible.
func flagNodes(rng *rand.Rand, g *graph.Graph, created []uint32, probability float64) {
	for _, id := range created {
		if rng.Float64() < probability {
			g.Node(id).IntraControlFlow = true
		}
	}
}
