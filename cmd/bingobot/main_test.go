package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lox/bingobot/internal/board"
	"github.com/lox/bingobot/internal/config"
	"github.com/lox/bingobot/internal/estimator"
	"github.com/lox/bingobot/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
		hasError bool
	}{
		{name: "empty", input: "", expected: []int{}},
		{name: "commas", input: "1,7,13", expected: []int{1, 7, 13}},
		{name: "spaces and commas", input: " 25, 3 4", expected: []int{3, 4, 25}},
		{name: "not a number", input: "1,x", hasError: true},
		{name: "out of range", input: "0", hasError: true},
		{name: "too large", input: "26", hasError: true},
		{name: "duplicate", input: "5,5", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := parseNumbers(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, set.Numbers())
		})
	}
}

func TestGlobalsLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bingobot.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
game {
  trials = 250
}
`), 0o644))

	g := &Globals{Config: path, LogLevel: "debug"}
	cfg, err := g.load()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Game.Trials)
	assert.Equal(t, "debug", cfg.Server.LogLevel)

	g.LogLevel = "loud"
	_, err = g.load()
	assert.Error(t, err)
}

func TestSettingsOverride(t *testing.T) {
	cfg := config.Default()

	s := settings(cfg, 0)
	assert.Equal(t, 16, s.Attempts)
	assert.Equal(t, 5000, s.Trials)
	assert.Equal(t, 4, s.TargetLines)

	assert.Equal(t, 100, settings(cfg, 100).Trials)
}

func TestSnapshotAndIntervals(t *testing.T) {
	marked := board.NewSet(1, 2, 3, 4, 5)
	snap := snapshot(marked, 11)
	assert.Equal(t, 1, snap.CompletedLines)
	assert.Equal(t, 20, snap.Remaining.Len())

	result := estimator.Estimate(marked, snap.Remaining, 0, 10, estimator.WithRand(randutil.New(1)))
	var buf bytes.Buffer
	writeIntervals(&buf, result)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 21)
	assert.Contains(t, lines[0], "95% CI")
	assert.Contains(t, lines[1], "0/10")
}
