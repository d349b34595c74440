package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lox/bingobot/internal/board"
	"github.com/lox/bingobot/internal/game"
	"github.com/lox/bingobot/internal/render"
	"github.com/lox/bingobot/internal/session"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

type SelectData struct {
	Numbers []int `json:"numbers"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RejectionData struct {
	Number int    `json:"number"`
	Reason string `json:"reason"`
}

type GameStateData struct {
	SessionID      string          `json:"sessionId"`
	Board          [][]int         `json:"board"`
	Marked         []int           `json:"marked"`
	Remaining      []int           `json:"remaining"`
	AttemptsLeft   int             `json:"attemptsLeft"`
	CompletedLines int             `json:"completedLines"`
	Probabilities  map[int]float64 `json:"probabilities"`
	Best           []int           `json:"best"`
	Accepted       []int           `json:"accepted,omitempty"`
	Rejected       []RejectionData `json:"rejected,omitempty"`
	ElapsedMs      float64         `json:"elapsedMs"`
}

// GameStateFromUpdate converts a session update into its wire form
func GameStateFromUpdate(sessionID string, u session.Update) GameStateData {
	snap := u.Snapshot

	grid := make([][]int, board.Size)
	for r := range grid {
		grid[r] = make([]int, board.Size)
		for c := range grid[r] {
			grid[r][c] = snap.Board.At(r, c)
		}
	}

	probs := make(map[int]float64, len(u.Probabilities))
	for n, p := range u.Probabilities {
		probs[n] = p
	}

	best := render.Highlights(u.Probabilities)
	if best == nil {
		best = []int{}
	}

	rejected := make([]RejectionData, 0, len(u.Rejected))
	for _, r := range u.Rejected {
		rejected = append(rejected, RejectionData{Number: r.Number, Reason: rejectionReason(r.Err)})
	}

	return GameStateData{
		SessionID:      sessionID,
		Board:          grid,
		Marked:         orEmpty(snap.Marked.Numbers()),
		Remaining:      orEmpty(snap.Remaining.Numbers()),
		AttemptsLeft:   snap.AttemptsLeft,
		CompletedLines: snap.CompletedLines,
		Probabilities:  probs,
		Best:           best,
		Accepted:       u.Accepted,
		Rejected:       rejected,
		ElapsedMs:      float64(u.Elapsed.Microseconds()) / 1000,
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, game.ErrAlreadySelected):
		return "already_selected"
	case errors.Is(err, game.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, game.ErrNoAttemptsLeft):
		return "no_attempts_left"
	default:
		return "rejected"
	}
}

func orEmpty(nums []int) []int {
	if nums == nil {
		return []int{}
	}
	return nums
}
