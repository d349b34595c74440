package stability

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/bingobot/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := Config{
		Marked:   board.NewSet(1, 2, 3),
		Attempts: 13,
		Trials:   200,
		Runs:     6,
		Workers:  3,
		Seed:     7,
	}

	a, err := Run(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	cfg.Workers = 1
	b, err := Run(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	require.Equal(t, a.Summary.Numbers(), b.Summary.Numbers())
	for _, n := range a.Summary.Numbers() {
		assert.Equal(t, a.Summary[n].Values, b.Summary[n].Values, "number %d", n)
	}
}

func TestRunCoversEveryCandidate(t *testing.T) {
	cfg := Config{
		Marked:   board.NewSet(5, 10),
		Attempts: 14,
		Trials:   100,
		Runs:     3,
		Seed:     1,
	}

	report, err := Run(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	assert.Len(t, report.Summary, 23)
	for _, n := range report.Summary.Numbers() {
		assert.Equal(t, 3, report.Summary[n].Len())
	}
	assert.Equal(t, 4, report.Config.TargetLines)
}

func TestRunDeterministicPositionHasNoSpread(t *testing.T) {
	cfg := Config{
		Marked:   board.NewSet(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18),
		Attempts: 0,
		Trials:   50,
		Runs:     4,
		Seed:     3,
	}

	report, err := Run(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	assert.Zero(t, report.Summary.MaxSpread())
	// Three rows are complete; 21 finishes the first column
	assert.Equal(t, 100.0, report.Summary[21].Mean())
	assert.Equal(t, 0.0, report.Summary[19].Mean())
}

func TestRunConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence check in short mode")
	}

	cfg := Config{Attempts: 16, Trials: 5000, Runs: 5, Seed: 11}
	report, err := Run(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	assert.Less(t, report.Summary.MaxSpread(), 6.0)
}

func TestRunValidation(t *testing.T) {
	_, err := Run(context.Background(), Config{Runs: 0, Trials: 10}, testLogger())
	assert.Error(t, err)

	_, err = Run(context.Background(), Config{Runs: 1, Trials: 0}, testLogger())
	assert.Error(t, err)

	_, err = Run(context.Background(), Config{Runs: 1, Trials: 1, Attempts: -1}, testLogger())
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{Runs: 4, Trials: 10, Attempts: 16}, testLogger())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportJSON(t *testing.T) {
	cfg := Config{Marked: board.NewSet(1), Attempts: 15, Trials: 50, Runs: 2, Seed: 2}
	report, err := Run(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	out := report.JSON()
	assert.Equal(t, []int{1}, out.Marked)
	assert.Equal(t, 2, out.Runs)
	require.Len(t, out.Candidates, 24)
	assert.Equal(t, 2, out.Candidates[0].Number)
	assert.Len(t, out.Candidates[0].Values, 2)
	assert.Len(t, out.Candidates[0].CI95, 2)
}
