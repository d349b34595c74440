package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/bingobot/internal/render"
	"github.com/lox/bingobot/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, attempts int) *Model {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests

	settings := session.DefaultSettings()
	settings.Attempts = attempts
	settings.Trials = 100
	sess := session.New("tui-test", settings, session.WithSeed(1))
	return NewModel(sess, render.NewPlainTerminal(), logger)
}

// run executes cmd synchronously and feeds its message back into the model
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func TestTUISelect(t *testing.T) {
	m := newTestModel(t, 16)

	cmd := m.Submit("select 1 2 3")
	assert.True(t, m.Estimating())
	run(t, m, cmd)

	assert.False(t, m.Estimating())
	assert.Equal(t, 13, m.update.Snapshot.AttemptsLeft)
	assert.Len(t, m.update.Probabilities, 22)
	assert.Contains(t, m.View(), "Attempts left: 13")
}

func TestTUIBareNumbersSelect(t *testing.T) {
	m := newTestModel(t, 16)

	run(t, m, m.Submit("5 10"))
	assert.Equal(t, 14, m.update.Snapshot.AttemptsLeft)
}

func TestTUIRejections(t *testing.T) {
	m := newTestModel(t, 16)
	run(t, m, m.Submit("select 4"))

	cmd := m.Submit("select 4 99 x")
	assert.Nil(t, cmd, "nothing changed so nothing to estimate")

	logs := m.Log()
	require.Len(t, logs, 4)
	assert.Contains(t, logs[1], "is not a number")
	assert.Contains(t, logs[2], "4 is already selected")
	assert.Contains(t, logs[3], "99 cannot be selected")
}

func TestTUIDropsStaleEstimates(t *testing.T) {
	m := newTestModel(t, 16)

	stale := m.Submit("select 1")
	fresh := m.Submit("reset")

	// The reset's estimate lands first, then the outdated one arrives
	run(t, m, fresh)
	run(t, m, stale)

	assert.True(t, m.update.Snapshot.Marked.Empty())
	assert.Equal(t, 16, m.update.Snapshot.AttemptsLeft)
	assert.Len(t, m.update.Probabilities, 25)
}

func TestTUIGameOver(t *testing.T) {
	m := newTestModel(t, 1)
	run(t, m, m.Submit("select 1"))

	assert.Nil(t, m.Submit("select 2"))
	logs := m.Log()
	assert.Contains(t, logs[len(logs)-1], "No attempts left")
}

func TestTUIQuitAndHelp(t *testing.T) {
	m := newTestModel(t, 16)

	assert.Nil(t, m.Submit("help"))
	assert.Contains(t, m.Log()[0], "Commands")

	assert.Nil(t, m.Submit("dance"))
	assert.Contains(t, m.Log()[1], "Unknown command")

	assert.Nil(t, m.Submit("quit"))
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
}

func TestTUILogIsBounded(t *testing.T) {
	m := newTestModel(t, 16)
	for range 10 {
		m.Submit("help")
	}
	assert.Len(t, m.Log(), maxLogLines)
}
