package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"phpsa/analysis"
	"phpsa/compiler"
	"phpsa/config"
	"phpsa/pass"
	"phpsa/report"
	"phpsa/trace"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Configuration file (default .phpsa.yml if present)")
	format := flag.String("format", "", "Output format: text or json")
	workers := flag.Int("workers", runtime.NumCPU(), "Files analyzed concurrently")
	listPasses := flag.Bool("list-passes", false, "List the diagnostic passes and exit")

	// Trace flags
	traceEnabled := flag.Bool("trace", false, "Enable analysis tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern (glob, e.g., 'Foo::*' or 'main')")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: phpsa [flags] <path>...\n\nPaths are AST dump files or directories of them.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	registry := pass.Default()
	if *listPasses {
		for _, p := range registry.All() {
			fmt.Printf("%-16s %s\n", p.Name(), p.Description())
		}
		return 0
	}

	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 2
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *traceEnabled {
		cfg.Trace.Enabled = true
	}
	if *traceFilter != "" {
		cfg.Trace.Filters = nil
		for _, f := range strings.Split(*traceFilter, ",") {
			cfg.Trace.Filters = append(cfg.Trace.Filters, strings.TrimSpace(f))
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("Invalid configuration: %v", err)
		return 2
	}

	// Initialize tracer
	trace.Init(cfg.Trace.Enabled, cfg.Trace.Filters, os.Stderr)
	if cfg.Trace.Enabled {
		log.Printf("Tracing enabled (filters: %v)", cfg.Trace.Filters)
	}

	files, err := collectFiles(cfg, flag.Args())
	if err != nil {
		log.Printf("Failed to list input files: %v", err)
		return 2
	}

	sink := &analysis.Collector{}
	h := compiler.NewHarvester(sink, trace.Global())
	for _, path := range files {
		if err := h.HarvestFile(path); err != nil {
			// The file is skipped; the others are still analyzed
			log.Printf("Skipping %s: %v", path, err)
		}
	}
	prog, err := h.Build()
	if err != nil {
		log.Printf("Failed to build definitions: %v", err)
		return 2
	}

	a := compiler.NewAnalyzer(sink, registry)
	a.Builtins = cfg.Builtins()
	a.Options = cfg.Options()
	a.Tracer = trace.Global()
	a.Workers = *workers
	a.Analyze(prog)

	notices := sink.Notices()
	analyzed := len(prog.Files())
	switch cfg.Output.Format {
	case config.FormatJSON:
		err = report.WriteJSON(os.Stdout, analyzed, notices)
	default:
		err = report.WriteText(os.Stdout, analyzed, notices)
	}
	if err != nil {
		log.Printf("Failed to write report: %v", err)
		return 2
	}

	if len(notices) > 0 {
		return 1
	}
	return 0
}

// collectFiles expands directories into the files with a configured
// extension, in lexical order. Explicit file arguments are kept as given.
func collectFiles(cfg *config.Config, args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && cfg.Matches(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
