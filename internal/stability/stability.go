// Package stability measures how much repeated Monte-Carlo estimates of the
// same position disagree. Each run is an ordinary single-threaded estimation
// with its own seeded source; runs execute concurrently on a bounded pool.
package stability

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/bingobot/internal/board"
	"github.com/lox/bingobot/internal/estimator"
	"github.com/lox/bingobot/internal/randutil"
	"github.com/lox/bingobot/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config describes the position to estimate and how often
type Config struct {
	Marked      board.Set
	Attempts    int
	Trials      int
	TargetLines int
	Runs        int
	Workers     int
	Seed        int64
}

// Validate checks the run parameters
func (c Config) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", c.Runs)
	}
	if c.Trials < 1 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.Attempts < 0 {
		return fmt.Errorf("attempts cannot be negative, got %d", c.Attempts)
	}
	return nil
}

// Report is the per-candidate spread over all runs
type Report struct {
	Config   Config
	Summary  statistics.Summary
	Duration time.Duration
}

// Run executes cfg.Runs estimations and summarises them. The result depends
// only on cfg (including Seed), never on scheduling.
func Run(ctx context.Context, cfg Config, logger *log.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.TargetLines == 0 {
		cfg.TargetLines = estimator.DefaultTargetLines
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger = logger.WithPrefix("stability")

	remaining := board.Full().Difference(cfg.Marked)
	results := make([]estimator.Probabilities, cfg.Runs)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfg.Runs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := randutil.Derive(cfg.Seed, i)
			results[i] = estimator.EstimateWinProbabilities(
				cfg.Marked, remaining, cfg.Attempts, cfg.Trials,
				estimator.WithRand(randutil.New(seed)),
				estimator.WithTargetLines(cfg.TargetLines),
			)
			logger.Debug("Run complete", "run", i, "seed", seed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := statistics.Summary{}
	for _, probs := range results {
		summary.Add(probs)
	}

	report := &Report{Config: cfg, Summary: summary, Duration: time.Since(start)}
	logger.Info("Stability check complete",
		"runs", cfg.Runs,
		"trials", cfg.Trials,
		"workers", workers,
		"max_spread", fmt.Sprintf("%.2f", summary.MaxSpread()),
		"duration", report.Duration)
	return report, nil
}

// CandidateReport is the JSON form of one candidate's spread
type CandidateReport struct {
	Number int       `json:"number"`
	Mean   float64   `json:"mean"`
	StdDev float64   `json:"stdDev"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	CI95   []float64 `json:"ci95"`
	Values []float64 `json:"values"`
}

// JSONReport is the serialisable form of a Report
type JSONReport struct {
	Marked     []int             `json:"marked"`
	Attempts   int               `json:"attempts"`
	Trials     int               `json:"trials"`
	Runs       int               `json:"runs"`
	Seed       int64             `json:"seed"`
	MaxSpread  float64           `json:"maxSpread"`
	DurationMs int64             `json:"durationMs"`
	Candidates []CandidateReport `json:"candidates"`
}

// JSON converts the report for writing to disk
func (r *Report) JSON() JSONReport {
	out := JSONReport{
		Marked:     r.Config.Marked.Numbers(),
		Attempts:   r.Config.Attempts,
		Trials:     r.Config.Trials,
		Runs:       r.Config.Runs,
		Seed:       r.Config.Seed,
		MaxSpread:  r.Summary.MaxSpread(),
		DurationMs: r.Duration.Milliseconds(),
	}
	for _, n := range r.Summary.Numbers() {
		s := r.Summary[n]
		lo, hi := s.ConfidenceInterval95()
		out.Candidates = append(out.Candidates, CandidateReport{
			Number: n,
			Mean:   s.Mean(),
			StdDev: s.StdDev(),
			Min:    s.Min(),
			Max:    s.Max(),
			CI95:   []float64{lo, hi},
			Values: s.Values,
		})
	}
	return out
}
