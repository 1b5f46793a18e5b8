package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"cfgbench/codegen"
	"cfgbench/graph"
	"cfgbench/verify"
)

func main() {
	var (
		graphPath   = flag.String("graph", "", "Path to a graph artifact")
		outDir      = flag.String("out", "", "Directory for generated sources")
		numFiles    = flag.Int("num-files", 1, "Number of translation units to partition functions across")
		doVerify    = flag.Bool("verify", false, "Re-parse emitted sources and check call topology")
		interactive = flag.Bool("i", false, "Interactive artifact browser")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *graphPath == "" || (*outDir == "" && !*interactive) {
		fmt.Fprintln(os.Stderr, "Usage: cfgcode -graph <artifact.pb> -out <dir> [-num-files K] [-verify]")
		fmt.Fprintln(os.Stderr, "       cfgcode -graph <artifact.pb> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		codegen.SetLogger(logger)
	}

	if err := run(*graphPath, *outDir, *numFiles, *doVerify, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(graphPath, outDir string, numFiles int, doVerify, interactive bool) error {
	data, err := os.ReadFile(graphPath)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	g, err := graph.Decode(data)
	if err != nil {
		return err
	}

	if interactive {
		return runInteractive(g, graphPath)
	}

	res, err := codegen.New(g, codegen.Options{NumFiles: numFiles, OutDir: outDir}).Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d files to %s (%d units, %d functions)\n",
		len(res.Files), outDir, len(res.Partitions), g.Len())

	if doVerify {
		if err := verify.Sources(g, outDir); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "verified call topology of %d functions\n", g.Len())
	}
	return nil
}
