package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/npillmayer/schuko/tracing"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
	"nar-match/internal/pkg/config"
	"nar-match/internal/pkg/fixtures"
	"nar-match/internal/pkg/processors"
	"nar-match/pkg/runtime"
	"os"
)

const Version = "0.1.0"

type options struct {
	configPath string
	showPlan   bool
	workers    int
	runSamples bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "checker configuration file (yaml)")
	flag.BoolVar(&opts.showPlan, "plan", false, "print the decision plan of every match")
	flag.IntVar(&opts.workers, "workers", -1, "number of checker workers, 0 for one per CPU (overrides config)")
	flag.BoolVar(&opts.runSamples, "samples", true, "evaluate sample values against their matches")
	showVersion := flag.Bool("version", false, "show version")
	trace := flag.Bool("trace", false, "emit debug traces of the checker and the evaluator")
	flag.Parse()

	if *trace {
		for _, key := range []string{"match.checker", "match.runtime", "match.fixtures"} {
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		}
	}

	if *showVersion {
		fmt.Printf("matchc version: %s\n", Version)
		return
	}

	log := &common.LogWriter{}
	run(log, opts, flag.Args())
	failed := log.HasErrors()
	log.Flush(os.Stdout)
	if failed {
		os.Exit(1)
	}
}

// run checks the fixture files at paths. Every failure is reported to log.
func run(log *common.LogWriter, opts options, paths []string) {
	if len(paths) == 0 {
		log.Err(common.NewSystemError(fmt.Errorf("no input files, run checker as `matchc <fixture.yaml>...`")))
		return
	}

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			log.Err(err)
			return
		}
	}
	if opts.workers >= 0 {
		cfg.Workers = opts.workers
	}

	checker, err := processors.NewChecker(cfg)
	if err != nil {
		log.Err(err)
		return
	}

	var cases []*fixtures.Case
	for _, path := range paths {
		file, err := fixtures.Load(path)
		if err != nil {
			log.Err(err)
			continue
		}
		cases = append(cases, file.Cases...)
	}
	if log.HasErrors() {
		return
	}

	reports, err := checker.CheckAll(context.Background(), common.Map(func(c *fixtures.Case) *typed.Match { return c.Match }, cases))
	if err != nil {
		log.Err(err)
		return
	}

	evaluator := runtime.NewEvaluator(fixtures.Interpreter{})
	for i, report := range reports {
		c := cases[i]
		log.Info("%s: exhaustive=%v, %d problem(s)", c.Name, report.Exhaustive, len(report.Problems))
		log.Warn(common.Map(func(p processors.Problem) error { return p }, report.Warnings())...)
		log.Err(common.Map(func(p processors.Problem) error { return p }, report.Errors())...)
		if opts.showPlan && report.Plan != nil {
			log.Trace(report.Plan.Tree().String())
		}
		if opts.runSamples && !report.HasErrors() {
			runCase(log, evaluator, c, report.Exhaustive)
		}
	}
	if cache := checker.Cache(); cache != nil {
		hits, misses := cache.Stats()
		log.Info("verdict cache: %d hit(s), %d miss(es)", hits, misses)
	}
}

func runCase(log *common.LogWriter, evaluator *runtime.Evaluator, c *fixtures.Case, exhaustive bool) {
	for _, s := range c.Samples {
		value, err := evaluator.Evaluate(c.Match, s.Value, runtime.NewEnvironment(nil), exhaustive)
		switch {
		case errors.Is(err, runtime.ErrNoMatch):
			log.Info("  %v -> no match", s.Value)
		case err != nil:
			log.Err(fmt.Errorf("%s: sample %v: %w", c.Name, s.Value, err))
		default:
			log.Info("  %v -> %v", s.Value, value)
		}
	}
}
