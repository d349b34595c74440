// Package tui is a local terminal front end for a single bingo session.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/bingobot/internal/render"
	"github.com/lox/bingobot/internal/session"
)

const maxLogLines = 6

// Model is the Bubble Tea model for local play
type Model struct {
	session  *session.Session
	terminal *render.Terminal
	logger   *log.Logger

	input textinput.Model

	// Latest rendered state
	update     session.Update
	hasUpdate  bool
	generation int
	estimating bool

	gameLog  []string
	quitting bool
	width    int
}

// estimateMsg carries a finished estimation back to the UI loop
type estimateMsg struct {
	generation int
	update     session.Update
}

// NewModel creates a model driving sess
func NewModel(sess *session.Session, terminal *render.Terminal, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "select 1 7 13, reset, help or quit"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	return &Model{
		session:  sess,
		terminal: terminal,
		logger:   logger.WithPrefix("tui"),
		input:    ti,
	}
}

// Run starts the interactive program and blocks until the user quits
func Run(sess *session.Session, terminal *render.Terminal, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(sess, terminal, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init starts the first estimation
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refresh())
}

// refresh bumps the generation and estimates the current state off the UI loop
func (m *Model) refresh() tea.Cmd {
	m.generation++
	m.estimating = true
	gen := m.generation
	sess := m.session
	return func() tea.Msg {
		return estimateMsg{generation: gen, update: sess.State()}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case estimateMsg:
		m.applyEstimate(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if cmd := m.Submit(line); cmd != nil {
				cmds = append(cmds, cmd)
			}
			if m.quitting {
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) applyEstimate(msg estimateMsg) {
	if msg.generation != m.generation {
		m.logger.Debug("Dropping stale estimate", "generation", msg.generation, "current", m.generation)
		return
	}
	m.update = msg.update
	m.hasUpdate = true
	m.estimating = false
	if msg.update.Estimated {
		m.logger.Debug("Estimate applied", "elapsed", msg.update.Elapsed)
	}
}

// Submit interprets one input line. It returns the command that refreshes
// the probabilities, or nil when nothing needs estimating.
func (m *Model) Submit(line string) tea.Cmd {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	cmd, args := fields[0], fields[1:]
	if _, err := strconv.Atoi(cmd); err == nil {
		cmd, args = "select", fields
	}

	switch cmd {
	case "select", "s":
		return m.selectNumbers(args)
	case "reset", "r":
		m.session.Reset()
		m.addLog(SuccessStyle.Render("🔄 The game has been reset."))
		return m.refresh()
	case "board", "b":
		return m.refresh()
	case "help", "h", "?":
		m.addLog(InfoStyle.Render("Commands: select <numbers...> | reset | board | quit"))
		return nil
	case "quit", "q", "exit":
		m.quitting = true
		return nil
	default:
		m.addLog(ErrorStyle.Render(fmt.Sprintf("Unknown command %q. Type help.", cmd)))
		return nil
	}
}

func (m *Model) selectNumbers(args []string) tea.Cmd {
	if len(args) == 0 {
		m.addLog(WarningStyle.Render("Usage: select <numbers...>"))
		return nil
	}

	nums := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			m.addLog(ErrorStyle.Render(fmt.Sprintf("❌ %q is not a number.", arg)))
			continue
		}
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return nil
	}

	res, err := m.session.Mark(nums...)
	if session.IsGameOver(err) {
		m.addLog(ErrorStyle.Render("❌ No attempts left. Type reset to start a new game."))
		return nil
	}
	if err != nil {
		m.addLog(ErrorStyle.Render(err.Error()))
		return nil
	}

	for _, line := range render.Rejections(res.Rejected) {
		m.addLog(WarningStyle.Render(line))
	}
	if !res.Changed() {
		return nil
	}
	m.addLog(LogStyle.Render(fmt.Sprintf("Selected %s", joinInts(res.Accepted))))
	return m.refresh()
}

func (m *Model) addLog(line string) {
	m.gameLog = append(m.gameLog, line)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	if m.hasUpdate {
		sb.WriteString(m.terminal.Render(m.update.Snapshot, m.update.Probabilities))
	} else {
		sb.WriteString(m.terminal.Render(m.session.Snapshot(), nil))
	}
	sb.WriteString("\n")

	if m.estimating {
		sb.WriteString(InfoStyle.Render("Estimating..."))
	} else if m.hasUpdate && m.update.Estimated {
		sb.WriteString(InfoStyle.Render(fmt.Sprintf("Estimated in %s", m.update.Elapsed.Round(time.Millisecond))))
	}
	sb.WriteString("\n\n")

	for _, line := range m.gameLog {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(InputPaneStyle.Render(m.input.View()))
	return sb.String()
}

// Log returns the visible log lines
func (m *Model) Log() []string {
	return m.gameLog
}

// Estimating reports whether an estimation is in flight
func (m *Model) Estimating() bool {
	return m.estimating
}

// Quitting reports whether the user asked to leave
func (m *Model) Quitting() bool {
	return m.quitting
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}
