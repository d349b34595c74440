package game

import "github.com/lox/bingobot/internal/board"

// DefaultAttempts is the number of selections a player gets per game
const DefaultAttempts = 16

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	attempts int
	board    *board.Board
}

// WithAttempts overrides the attempt budget. Values below zero are treated as zero.
func WithAttempts(n int) Option {
	return func(c *config) {
		c.attempts = max(n, 0)
	}
}

// WithBoard plays on b instead of the standard row-major board.
func WithBoard(b *board.Board) Option {
	return func(c *config) {
		if b != nil {
			c.board = b
		}
	}
}
