// Package render turns a game snapshot and its win probabilities into text.
//
// Two renderers share the same inputs: Table produces the plain bordered
// board used in chat messages, Terminal produces a lipgloss-styled board for
// the interactive client and the odds command.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/bingobot/internal/board"
	"github.com/lox/bingobot/internal/estimator"
	"github.com/lox/bingobot/internal/game"
)

const (
	cellWidth  = 7
	markedCell = "  ❌   "
	blankCell  = "       "
	bestMarker = "★"
)

// Highlights returns, in ascending order, every number whose probability
// equals the maximum. Nothing is highlighted when the maximum is zero.
func Highlights(probs estimator.Probabilities) []int {
	best := 0.0
	for _, p := range probs {
		if p > best {
			best = p
		}
	}
	if best <= 0 {
		return nil
	}

	var nums []int
	for _, n := range probs.Numbers() {
		if probs[n] == best {
			nums = append(nums, n)
		}
	}
	return nums
}

// Table renders the board as a bordered text grid. Each cell shows the number
// (or a cross once marked) with its win percentage underneath; the best
// candidates carry a star.
func Table(snap game.Snapshot, probs estimator.Probabilities) string {
	best := board.NewSet(Highlights(probs)...)
	var sb strings.Builder

	sb.WriteString(border("┌", "┬", "┐"))
	for r := 0; r < board.Size; r++ {
		values := make([]string, board.Size)
		percents := make([]string, board.Size)
		for c := 0; c < board.Size; c++ {
			n := snap.Board.At(r, c)
			if snap.Marked.Contains(n) {
				values[c] = markedCell
				percents[c] = blankCell
				continue
			}
			values[c] = fmt.Sprintf("  %2d   ", n)
			percents[c] = percentCell(probs, n, best.Contains(n))
		}
		sb.WriteString("│" + strings.Join(values, "│") + "│\n")
		sb.WriteString("│" + strings.Join(percents, "│") + "│\n")
		if r < board.Size-1 {
			sb.WriteString(border("├", "┼", "┤"))
		}
	}
	sb.WriteString(strings.TrimSuffix(border("└", "┴", "┘"), "\n"))

	return sb.String()
}

func percentCell(probs estimator.Probabilities, n int, best bool) string {
	p, ok := probs[n]
	if !ok {
		return "   -   "
	}
	marker := " "
	if best {
		marker = bestMarker
	}
	return fmt.Sprintf("%5.1f%%%s", p, marker)
}

func border(left, mid, right string) string {
	segs := make([]string, board.Size)
	for i := range segs {
		segs[i] = strings.Repeat("─", cellWidth)
	}
	return left + strings.Join(segs, mid) + right + "\n"
}

// Status renders the attempts and completed line counters.
func Status(snap game.Snapshot) string {
	return fmt.Sprintf("🎯 Attempts left: %d | Completed lines: %d", snap.AttemptsLeft, snap.CompletedLines)
}

// Best renders the highlighted candidates, or an empty string if none.
func Best(probs estimator.Probabilities) string {
	nums := Highlights(probs)
	if len(nums) == 0 {
		return ""
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("%s Best pick: %s (%.1f%%)", bestMarker, strings.Join(parts, ", "), probs[nums[0]])
}

// Rejections renders one line per number that could not be selected.
func Rejections(rejected []game.Rejection) []string {
	lines := make([]string, 0, len(rejected))
	for _, r := range rejected {
		lines = append(lines, Rejection(r))
	}
	return lines
}

// Rejection renders why a single number was not selected.
func Rejection(r game.Rejection) string {
	switch {
	case errors.Is(r.Err, game.ErrAlreadySelected):
		return fmt.Sprintf("⚠️ %d is already selected.", r.Number)
	case errors.Is(r.Err, game.ErrNoAttemptsLeft):
		return fmt.Sprintf("❌ %d was not selected: no attempts left.", r.Number)
	default:
		return fmt.Sprintf("❌ %d cannot be selected.", r.Number)
	}
}
