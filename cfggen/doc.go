// Package cfggen generates synthetic call graphs from shape parameters.
//
// Generation is exposed as a family of named strategies sharing one output
// contract, so callers can swap strategies freely:
//
//	g, err := cfggen.Generate("dfs_chase", cfggen.Params{
//		Depth:    3,
//		AvgWidth: 2,
//		Seed:     42,
//	})
//
// All strategies build a spanning generation tree from the root down to
// Depth levels and are deterministic for a fixed seed: the same parameters
// always produce the same graph, and therefore the same encoded artifact
// bytes. Randomness comes from a local rand.Rand seeded from Params.Seed;
// nothing reads global random state or the wall clock.
//
// Parameter validation fails fast: no partially built graph is ever
// returned. The one deliberate exception is AvgWidth <= 0, which yields the
// degenerate root-only graph rather than an error, since a valid boundary
// graph is more useful than a failure for a zero width.
package cfggen
