package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"cfgbench/cfggen"
	"cfgbench/graph"
	"cfgbench/render"
)

func main() {
	var (
		strategy   = flag.String("strategy", "dfs_chase", "Generation strategy")
		depth      = flag.Int("depth", 20, "Target maximum generation depth")
		avgWidth   = flag.Float64("avg-width", 2, "Target average children per node")
		branchProb = flag.Float64("branch-prob", 0, "Fraction of nodes with intra-function control flow")
		extraProb  = flag.Float64("extra-edge-prob", 0, "Probability of strategy-specific non-tree edges")
		recursion  = flag.Bool("recursion", false, "Allow true back edges (dfs_chase only)")
		prefetch   = flag.Bool("prefetch", false, "Insert code prefetches into the callchains (pointer_chase only)")
		seed       = flag.Int64("seed", 1, "Seed for reproducible generation")
		out        = flag.String("o", "", "Path for the graph artifact")
		dotOut     = flag.String("dot", "", "Optional DOT dump of the generated graph")
		verbose    = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: cfggraph -strategy <name> -depth D -avg-width W -o out.pb [-dot out.dot]")
		fmt.Fprintf(os.Stderr, "Strategies: %s\n", strings.Join(cfggen.Names(), ", "))
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		cfggen.SetLogger(logger)
	}

	params := cfggen.Params{
		Depth:                *depth,
		AvgWidth:             *avgWidth,
		BranchProbability:    *branchProb,
		ExtraEdgeProbability: *extraProb,
		AllowRecursion:       *recursion,
		CodePrefetch:         *prefetch,
		Seed:                 *seed,
	}
	if err := run(*strategy, params, *out, *dotOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(strategy string, params cfggen.Params, out, dotOut string) error {
	g, err := cfggen.Generate(strategy, params)
	if err != nil {
		return err
	}

	data := graph.Encode(g)
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d nodes, %d edges, %d bytes)\n",
		out, g.Len(), g.EdgeCount(), len(data))

	if dotOut != "" {
		dot := render.DOT(g, "callgraph")
		if err := os.WriteFile(dotOut, []byte(dot), 0644); err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", dotOut)
	}
	return nil
}
