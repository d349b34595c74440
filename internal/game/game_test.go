package game

import (
	"errors"
	"testing"

	"github.com/lox/bingobot/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g := New()

	assert.True(t, g.Marked().Empty())
	assert.Equal(t, board.Full(), g.Remaining())
	assert.Equal(t, DefaultAttempts, g.AttemptsLeft())
	assert.Zero(t, g.CompletedLines())
	assert.False(t, g.Over())
}

func TestSelect(t *testing.T) {
	g := New()

	res, err := g.Select(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, res.Accepted)
	assert.Empty(t, res.Rejected)
	assert.True(t, res.Changed())
	assert.Equal(t, 13, g.AttemptsLeft())
	assert.Equal(t, board.NewSet(1, 2, 3), g.Marked())
	assert.Equal(t, board.Full().Difference(board.NewSet(1, 2, 3)), g.Remaining())
}

func TestSelectRejections(t *testing.T) {
	g := New()
	_, err := g.Select(5)
	require.NoError(t, err)

	res, err := g.Select(5, 0, 26, 6, 6)
	require.NoError(t, err)

	assert.Equal(t, []int{6}, res.Accepted)
	require.Len(t, res.Rejected, 4)
	assert.ErrorIs(t, res.Rejected[0].Err, ErrAlreadySelected)
	assert.ErrorIs(t, res.Rejected[1].Err, ErrOutOfRange)
	assert.ErrorIs(t, res.Rejected[2].Err, ErrOutOfRange)
	assert.ErrorIs(t, res.Rejected[3].Err, ErrAlreadySelected)
	assert.Equal(t, 26, res.Rejected[2].Number)
	assert.Equal(t, 14, g.AttemptsLeft())
}

func TestSelectExhaustsAttempts(t *testing.T) {
	g := New(WithAttempts(3))

	res, err := g.Select(1, 2, 3, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, res.Accepted)
	require.Len(t, res.Rejected, 2)
	for _, r := range res.Rejected {
		assert.True(t, errors.Is(r.Err, ErrNoAttemptsLeft))
	}
	assert.Zero(t, g.AttemptsLeft())
	assert.True(t, g.Over())

	// Whole call rejected once attempts are gone
	res, err = g.Select(10)
	assert.ErrorIs(t, err, ErrNoAttemptsLeft)
	assert.False(t, res.Changed())
	assert.Zero(t, g.AttemptsLeft())
	assert.False(t, g.Marked().Contains(10))
}

func TestRemainingInvariant(t *testing.T) {
	g := New()
	for _, n := range []int{13, 7, 25, 1, 19, 19, 40} {
		_, err := g.Select(n)
		require.NoError(t, err)
		assert.Equal(t, board.Full().Difference(g.Marked()), g.Remaining())
		assert.True(t, g.Marked().Intersect(g.Remaining()).Empty())
	}
	assert.Equal(t, 1, g.CompletedLines())
}

func TestReset(t *testing.T) {
	g := New(WithAttempts(5))
	_, err := g.Select(1, 2, 3, 4, 5)
	require.NoError(t, err)
	require.True(t, g.Over())

	g.Reset()
	assert.True(t, g.Marked().Empty())
	assert.Equal(t, board.Full(), g.Remaining())
	assert.Equal(t, 5, g.AttemptsLeft())
}

func TestSnapshotIsCopy(t *testing.T) {
	g := New()
	_, err := g.Select(1, 2, 3, 4, 5)
	require.NoError(t, err)

	snap := g.Snapshot()
	g.Reset()

	assert.Equal(t, board.NewSet(1, 2, 3, 4, 5), snap.Marked)
	assert.Equal(t, 1, snap.CompletedLines)
	assert.Equal(t, 11, snap.AttemptsLeft)
	assert.True(t, g.Marked().Empty())
}

func TestGamesAreIndependent(t *testing.T) {
	a := New()
	b := New()
	_, err := a.Select(1, 2)
	require.NoError(t, err)

	assert.True(t, b.Marked().Empty())
	assert.Equal(t, DefaultAttempts, b.AttemptsLeft())
}

func TestWithAttemptsNegative(t *testing.T) {
	g := New(WithAttempts(-4))
	assert.Zero(t, g.AttemptsLeft())
	_, err := g.Select(1)
	assert.ErrorIs(t, err, ErrNoAttemptsLeft)
}
