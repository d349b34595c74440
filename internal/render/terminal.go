package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/bingobot/internal/board"
	"github.com/lox/bingobot/internal/estimator"
	"github.com/lox/bingobot/internal/game"
	"github.com/muesli/termenv"
)

// Static styles for board elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Width(cellWidth + 2).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("#FAFAFA"))

	MarkedCellStyle = CellStyle.
			Foreground(lipgloss.Color("#626262"))

	BestCellStyle = CellStyle.
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	GridStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Terminal renders boards with lipgloss styles.
type Terminal struct {
	renderer *lipgloss.Renderer
}

// NewTerminal creates a terminal renderer using the default lipgloss renderer.
func NewTerminal() *Terminal {
	return &Terminal{renderer: lipgloss.DefaultRenderer()}
}

// NewPlainTerminal creates a terminal renderer that never emits colour codes.
func NewPlainTerminal() *Terminal {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return &Terminal{renderer: r}
}

func (t *Terminal) style(s lipgloss.Style) lipgloss.Style {
	return s.Renderer(t.renderer)
}

// Board renders the grid with per-cell probabilities.
func (t *Terminal) Board(snap game.Snapshot, probs estimator.Probabilities) string {
	best := board.NewSet(Highlights(probs)...)

	rows := make([]string, board.Size)
	for r := 0; r < board.Size; r++ {
		cells := make([]string, board.Size)
		for c := 0; c < board.Size; c++ {
			n := snap.Board.At(r, c)
			switch {
			case snap.Marked.Contains(n):
				cells[c] = t.style(MarkedCellStyle).Render(fmt.Sprintf("%d\n%s", n, "marked"))
			case best.Contains(n):
				cells[c] = t.style(BestCellStyle).Render(fmt.Sprintf("%d\n%s", n, formatPercent(probs, n)+bestMarker))
			default:
				cells[c] = t.style(CellStyle).Render(fmt.Sprintf("%d\n%s", n, formatPercent(probs, n)))
			}
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}

	return t.style(GridStyle).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Render renders the title, board, status and best candidates.
func (t *Terminal) Render(snap game.Snapshot, probs estimator.Probabilities) string {
	parts := []string{
		t.style(HeaderStyle).Render("🎲 Bingo board"),
		t.Board(snap, probs),
		t.style(StatusStyle).Render(Status(snap)),
	}
	if best := Best(probs); best != "" {
		parts = append(parts, t.style(BestCellStyle).UnsetWidth().Render(best))
	}
	return strings.Join(parts, "\n")
}

// Error renders a message in the error style.
func (t *Terminal) Error(msg string) string {
	return t.style(ErrorStyle).Render(msg)
}

// Info renders a message in the muted style.
func (t *Terminal) Info(msg string) string {
	return t.style(InfoStyle).Render(msg)
}

func formatPercent(probs estimator.Probabilities, n int) string {
	p, ok := probs[n]
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", p)
}
