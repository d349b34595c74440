package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lox/bingobot/internal/board"
	"github.com/lox/bingobot/internal/estimator"
	"github.com/lox/bingobot/internal/game"
	"github.com/lox/bingobot/internal/randutil"
	"github.com/lox/bingobot/internal/render"
)

// OddsCmd prints the probability table for one position
type OddsCmd struct {
	Marked    string `short:"m" help:"Marked numbers, comma separated (e.g. '1,7,13')"`
	Attempts  *int   `short:"a" help:"Attempts left (default: configured attempts minus marked count)"`
	Trials    int    `short:"t" help:"Simulation trials per candidate (overrides config)"`
	Seed      *int64 `help:"Random seed for reproducible results"`
	Intervals bool   `short:"i" help:"Also list 95% confidence intervals"`
	Plain     bool   `help:"Disable colours"`
}

func (c *OddsCmd) Run(g *Globals) error {
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
		if *c.Attempts < 0 {
			return fmt.Errorf("attempts cannot be negative")
		}
		attempts = *c.Attempts
	}
	s := settings(cfg, c.Trials)

	terminal := render.NewTerminal()
	if c.Plain {
		terminal = render.NewPlainTerminal()
	}

	seed := randutil.Seed(c.Seed)
	start := time.Now()
	result := estimator.Estimate(marked, board.Full().Difference(marked), attempts, s.Trials,
		estimator.WithRand(randutil.New(seed)),
		estimator.WithTargetLines(s.TargetLines),
	)
	duration := time.Since(start)

	snap := snapshot(marked, attempts)
	fmt.Println(terminal.Render(snap, result.Probabilities()))
	if c.Intervals {
		writeIntervals(os.Stdout, result)
	}
	fmt.Println(terminal.Info(fmt.Sprintf("%d trials per candidate, seed %d, %s",
		s.Trials, seed, duration.Round(time.Millisecond))))
	return nil
}

func snapshot(marked board.Set, attempts int) game.Snapshot {
	b := board.Standard()
	return game.Snapshot{
		Board:          b,
		Marked:         marked,
		Remaining:      board.Full().Difference(marked),
		AttemptsLeft:   attempts,
		CompletedLines: b.CountCompletedLines(marked),
	}
}

func writeIntervals(out io.Writer, result estimator.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(w, "Number\tWin %\t95% CI\tHits\t")
	for _, n := range result.Probabilities().Numbers() {
		o := result[n]
		lo, hi := o.ConfidenceInterval()
		_, _ = fmt.Fprintf(w, "%d\t%.2f\t%.2f-%.2f\t%d/%d\t\n", n, o.Percent(), lo, hi, o.Successes, o.Trials)
	}
	_ = w.Flush()
}
