package game

import (
	"errors"
	"fmt"

	"github.com/lox/bingobot/internal/board"
)

var (
	// ErrNoAttemptsLeft is returned when a selection needs an attempt and none remain
	ErrNoAttemptsLeft = errors.New("no attempts left")
	// ErrAlreadySelected is returned for numbers that are already marked
	ErrAlreadySelected = errors.New("already selected")
	// ErrOutOfRange is returned for numbers that are not on the board
	ErrOutOfRange = errors.New("number out of range")
)

// Rejection records why a single number in a selection was not marked.
type Rejection struct {
	Number int
	Err    error
}

// SelectResult describes the effect of one Select call.
type SelectResult struct {
	Accepted []int
	Rejected []Rejection
}

// Changed reports whether any number was marked.
func (r SelectResult) Changed() bool {
	return len(r.Accepted) > 0
}

// Game is the state of one player's board.
type Game struct {
	board        *board.Board
	initial      int
	marked       board.Set
	remaining    board.Set
	attemptsLeft int
}

// New creates a game with nothing marked and a full attempt budget.
func New(opts ...Option) *Game {
	cfg := config{
		attempts: DefaultAttempts,
		board:    board.Standard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Game{
		board:   cfg.board,
		initial: cfg.attempts,
	}
	g.Reset()
	return g
}

// Reset restores the initial state.
func (g *Game) Reset() {
	g.marked = board.NewSet()
	g.remaining = board.Full()
	g.attemptsLeft = g.initial
}

// Select marks the given numbers in order. A call made with no attempts left
// is rejected as a whole and returns ErrNoAttemptsLeft. Otherwise each number
// is checked individually and rejections are reported in the result.
func (g *Game) Select(nums ...int) (SelectResult, error) {
	var res SelectResult
	if g.attemptsLeft <= 0 {
		return res, ErrNoAttemptsLeft
	}

	for _, n := range nums {
		switch {
		case g.marked.Contains(n):
			res.Rejected = append(res.Rejected, Rejection{
				Number: n,
				Err:    fmt.Errorf("%d: %w", n, ErrAlreadySelected),
			})
		case !g.remaining.Contains(n):
			res.Rejected = append(res.Rejected, Rejection{
				Number: n,
				Err:    fmt.Errorf("%d: %w", n, ErrOutOfRange),
			})
		case g.attemptsLeft <= 0:
			res.Rejected = append(res.Rejected, Rejection{
				Number: n,
				Err:    fmt.Errorf("%d: %w", n, ErrNoAttemptsLeft),
			})
		default:
			g.marked.Add(n)
			g.remaining.Remove(n)
			g.attemptsLeft--
			res.Accepted = append(res.Accepted, n)
		}
	}

	return res, nil
}

func (g *Game) Board() *board.Board {
	return g.board
}

// Marked returns the numbers already chosen.
func (g *Game) Marked() board.Set {
	return g.marked
}

// Remaining returns the numbers not yet chosen.
func (g *Game) Remaining() board.Set {
	return g.remaining
}

// AttemptsLeft returns how many selections are still permitted.
func (g *Game) AttemptsLeft() int {
	return g.attemptsLeft
}

// CompletedLines counts the lines completed by the marked numbers.
func (g *Game) CompletedLines() int {
	return g.board.CountCompletedLines(g.marked)
}

// Over reports whether the attempt budget is exhausted.
func (g *Game) Over() bool {
	return g.attemptsLeft <= 0
}

// Snapshot is a value copy of the game state for renderers and transports.
type Snapshot struct {
	Board          *board.Board
	Marked         board.Set
	Remaining      board.Set
	AttemptsLeft   int
	CompletedLines int
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:          g.board,
		Marked:         g.marked,
		Remaining:      g.remaining,
		AttemptsLeft:   g.attemptsLeft,
		CompletedLines: g.CompletedLines(),
	}
}
