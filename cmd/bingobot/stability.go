package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/bingobot/cmd/bingobot/shared"
	"github.com/lox/bingobot/internal/fileutil"
	"github.com/lox/bingobot/internal/randutil"
	"github.com/lox/bingobot/internal/stability"
)

// StabilityCmd repeats one estimation with independent seeds
type StabilityCmd struct {
	Marked   string `short:"m" help:"Marked numbers, comma separated"`
	Attempts *int   `short:"a" help:"Attempts left (default: configured attempts minus marked count)"`
	Trials   int    `short:"t" help:"Simulation trials per candidate (overrides config)"`
	Runs     int    `short:"r" default:"10" help:"Number of independent estimations"`
	Workers  int    `short:"w" help:"Concurrent estimations (default: number of CPUs)"`
	Seed     *int64 `help:"Base random seed"`
	Output   string `short:"o" help:"Also write the report as JSON to this file"`
}

func (c *StabilityCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	marked, err := parseNumbers(c.Marked)
	if err != nil {
		return fmt.Errorf("parsing marked numbers: %w", err)
	}
	attempts := max(cfg.Game.Attempts-marked.Len(), 0)
	if c.Attempts != nil {
		attempts = *c.Attempts
	}
	s := settings(cfg, c.Trials)

	logger := shared.SetupLogger(cfg.LogLevel())
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	report, err := stability.Run(ctx, stability.Config{
		Marked:      marked,
		Attempts:    attempts,
		Trials:      s.Trials,
		TargetLines: s.TargetLines,
		Runs:        c.Runs,
		Workers:     c.Workers,
		Seed:        randutil.Seed(c.Seed),
	}, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(w, "Number\tMean %\tStdDev\tMin\tMax\tSpread\t")
	for _, n := range report.Summary.Numbers() {
		sample := report.Summary[n]
		_, _ = fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			n, sample.Mean(), sample.StdDev(), sample.Min(), sample.Max(), sample.Spread())
	}
	_ = w.Flush()

	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, report.JSON()); err != nil {
			return err
		}
		logger.Info("Report written", "path", c.Output)
	}

	fmt.Printf("\n%d runs x %d trials, seed %d, max spread %.2f points, %s\n",
		c.Runs, s.Trials, report.Config.Seed, report.Summary.MaxSpread(), report.Duration)
	return nil
}
