package codegen

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"cfgbench/errors"
	"cfgbench/graph"
)

// Options configure one code generator run.
type Options struct {
	// NumFiles is the requested number of translation units. Clamped to
	// [1, node count].
	NumFiles int
	// OutDir is the output directory. Created if missing.
	OutDir string
}

// State is the code generator's state-machine position.
type State int

const (
	StateStart State = iota
	StatePartitionAssigned
	StateUnitsEmitted
	StateRecipeEmitted
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StatePartitionAssigned:
		return "PartitionAssigned"
	case StateUnitsEmitted:
		return "UnitsEmitted"
	case StateRecipeEmitted:
		return "RecipeEmitted"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result reports what a successful run produced.
type Result struct {
	Partitions []Partition
	// Files are the paths written, in write order.
	Files []string
}

// Generator lowers one call graph into source files and a build recipe.
// A Generator runs once; the graph is never mutated.
type Generator struct {
	graph *graph.Graph
	opts  Options
	state State
}

// New returns a generator for one run over g.
func New(g *graph.Graph, opts Options) *Generator {
	return &Generator{graph: g, opts: opts, state: StateStart}
}

// State returns the state the last (or current) run reached.
func (gen *Generator) State() State {
	return gen.state
}

// Run validates the graph, renders every output in memory, then writes
// translation units and the Makefile. On any failure everything written so
// far is removed and the error reports the stage that aborted.
func (gen *Generator) Run() (*Result, error) {
	gen.state = StateStart

	if err := gen.graph.Validate(errors.StagePartition); err != nil {
		gen.state = StateFailed
		return nil, err
	}

	parts := Partitions(gen.graph, gen.opts.NumFiles)
	gen.state = StatePartitionAssigned
	Logger().Debug("partitions assigned",
		zap.Int("requested", gen.opts.NumFiles),
		zap.Int("assigned", len(parts)),
		zap.Int("nodes", gen.graph.Len()))

	// Render everything before the first write so a rendering problem can
	// never leave partial output behind.
	type file struct {
		name string
		data string
	}
	files := []file{{headerFile, renderHeader(gen.graph)}}
	for _, p := range parts {
		files = append(files, file{p.Filename(), renderUnit(gen.graph, p, p.Index == 0)})
	}
	recipe := file{"Makefile", renderMakefile(parts)}

	cleanup, err := gen.prepareOutDir()
	if err != nil {
		gen.state = StateFailed
		return nil, err
	}

	var written []string
	fail := func(stage errors.Stage, path string, cause error) error {
		for _, p := range written {
			os.Remove(p)
		}
		cleanup()
		gen.state = StateFailed
		return errors.FileSystem(stage, path, cause)
	}

	for _, f := range files {
		path := filepath.Join(gen.opts.OutDir, f.name)
		if err := os.WriteFile(path, []byte(f.data), 0644); err != nil {
			return nil, fail(errors.StageEmit, path, err)
		}
		written = append(written, path)
	}
	gen.state = StateUnitsEmitted

	recipePath := filepath.Join(gen.opts.OutDir, recipe.name)
	if err := os.WriteFile(recipePath, []byte(recipe.data), 0644); err != nil {
		return nil, fail(errors.StageRecipe, recipePath, err)
	}
	written = append(written, recipePath)
	gen.state = StateRecipeEmitted

	gen.state = StateDone
	Logger().Info("benchmark sources written",
		zap.String("dir", gen.opts.OutDir),
		zap.Int("units", len(parts)),
		zap.Int("functions", gen.graph.Len()))
	return &Result{Partitions: parts, Files: written}, nil
}

// prepareOutDir creates the output directory if needed and returns a
// cleanup function that removes exactly the directories this run created,
// including any missing parents MkdirAll fills in.
func (gen *Generator) prepareOutDir() (func(), error) {
	if info, err := os.Stat(gen.opts.OutDir); err == nil {
		if !info.IsDir() {
			return nil, errors.New(errors.StageEmit, errors.KindFileSystem).
				Path(gen.opts.OutDir).
				Detail("output path exists and is not a directory").
				Build()
		}
		return func() {}, nil
	}
	created := missingDirs(gen.opts.OutDir)
	if err := os.MkdirAll(gen.opts.OutDir, 0755); err != nil {
		return nil, errors.FileSystem(errors.StageEmit, gen.opts.OutDir, err)
	}
	return func() {
		for _, dir := range created {
			os.Remove(dir)
		}
	}, nil
}

// missingDirs returns path and every ancestor that does not exist yet,
// deepest first, so removing them in order unwinds a MkdirAll.
func missingDirs(path string) []string {
	var missing []string
	for {
		if _, err := os.Stat(path); err == nil {
			return missing
		}
		missing = append(missing, path)
		parent := filepath.Dir(path)
		if parent == path {
			return missing
		}
		path = parent
	}
}
