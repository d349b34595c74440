// Package board models the fixed 5x5 bingo board and counts completed lines.
//
// A board holds the numbers 1..25 exactly once. It defines twelve winning
// lines: five rows, five columns and the two diagonals.
package board

import "fmt"

const (
	// Size is the width and height of the board
	Size = 5

	MinNumber = 1
	MaxNumber = Size * Size

	// LineCount is the number of winning lines (rows, columns, diagonals)
	LineCount = 2*Size + 2
)

// LineKind identifies the orientation of a winning line
type LineKind int

const (
	Row LineKind = iota
	Column
	MainDiagonal
	AntiDiagonal
)

func (k LineKind) String() string {
	switch k {
	case Row:
		return "row"
	case Column:
		return "column"
	case MainDiagonal:
		return "main diagonal"
	case AntiDiagonal:
		return "anti-diagonal"
	default:
		return "unknown"
	}
}

// Line is one of the twelve winning combinations
type Line struct {
	Kind  LineKind
	Index int // row or column index; 0 for diagonals
	Cells Set
}

// Board is an immutable arrangement of 1..25. Construct with New or Standard.
type Board struct {
	cells [Size][Size]int
	lines [LineCount]Line
}

var standard = mustStandard()

func mustStandard() *Board {
	var layout [MaxNumber]int
	for i := range layout {
		layout[i] = i + 1
	}
	b, err := New(layout)
	if err != nil {
		panic("standard board: " + err.Error())
	}
	return b
}

// Standard returns the row-major board (1..5 on the first row).
func Standard() *Board {
	return standard
}

// New builds a board from a row-major layout. Every number 1..25 must appear
// exactly once.
func New(layout [MaxNumber]int) (*Board, error) {
	var seen Set
	b := &Board{}
	for i, n := range layout {
		if !InRange(n) {
			return nil, fmt.Errorf("cell %d: number %d out of range %d-%d", i, n, MinNumber, MaxNumber)
		}
		if seen.Contains(n) {
			return nil, fmt.Errorf("cell %d: duplicate number %d", i, n)
		}
		seen.Add(n)
		b.cells[i/Size][i%Size] = n
	}

	idx := 0
	for r := 0; r < Size; r++ {
		var cells Set
		for c := 0; c < Size; c++ {
			cells.Add(b.cells[r][c])
		}
		b.lines[idx] = Line{Kind: Row, Index: r, Cells: cells}
		idx++
	}
	for c := 0; c < Size; c++ {
		var cells Set
		for r := 0; r < Size; r++ {
			cells.Add(b.cells[r][c])
		}
		b.lines[idx] = Line{Kind: Column, Index: c, Cells: cells}
		idx++
	}
	var diag, anti Set
	for i := 0; i < Size; i++ {
		diag.Add(b.cells[i][i])
		anti.Add(b.cells[i][Size-1-i])
	}
	b.lines[idx] = Line{Kind: MainDiagonal, Cells: diag}
	b.lines[idx+1] = Line{Kind: AntiDiagonal, Cells: anti}

	return b, nil
}

// At returns the number at row r, column c.
func (b *Board) At(r, c int) int {
	return b.cells[r][c]
}

// Lines returns the twelve winning lines.
func (b *Board) Lines() []Line {
	lines := make([]Line, LineCount)
	copy(lines, b.lines[:])
	return lines
}

// CountCompletedLines returns how many lines have all five numbers marked.
func (b *Board) CountCompletedLines(marked Set) int {
	count := 0
	for _, line := range b.lines {
		if marked.ContainsAll(line.Cells) {
			count++
		}
	}
	return count
}

// CompletedLines returns the lines fully covered by marked.
func (b *Board) CompletedLines(marked Set) []Line {
	var done []Line
	for _, line := range b.lines {
		if marked.ContainsAll(line.Cells) {
			done = append(done, line)
		}
	}
	return done
}

// CountCompletedLines counts completed lines on the standard board.
func CountCompletedLines(marked Set) int {
	return standard.CountCompletedLines(marked)
}
