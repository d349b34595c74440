// Package discord hosts bingo games in Discord channels. Every channel gets
// its own game; commands are plain prefixed messages such as "!select 7 13".
package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/lox/bingobot/internal/render"
	"github.com/lox/bingobot/internal/session"
)

// Sender is the subset of *discordgo.Session the bot writes through.
type Sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
}

// Bot routes channel messages to per-channel sessions
type Bot struct {
	sender   Sender
	sessions *session.Registry
	prefix   string
	logger   *log.Logger

	mu     sync.RWMutex
	selfID string
}

// NewBot creates a bot that replies through sender.
func NewBot(sender Sender, sessions *session.Registry, prefix string, logger *log.Logger) *Bot {
	return &Bot{
		sender:   sender,
		sessions: sessions,
		prefix:   prefix,
		logger:   logger.WithPrefix("discord"),
	}
}

// Run connects to the gateway and serves until ctx is cancelled.
func Run(ctx context.Context, token string, sessions *session.Registry, prefix string, logger *log.Logger) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}

	bot := NewBot(dg, sessions, prefix, logger)
	dg.AddHandler(bot.onReady)
	dg.AddHandler(bot.onMessageCreate)
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	bot.logger.Info("Disconnecting")
	return nil
}

// SetSelfID records the bot's own user ID so its messages are ignored.
func (b *Bot) SetSelfID(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selfID = id
}

func (b *Bot) isSelf(authorID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return authorID != "" && authorID == b.selfID
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.SetSelfID(r.User.ID)
	b.logger.Info("Bot ready", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}
	b.HandleMessage(m.ChannelID, m.Author.ID, m.Content)
}

// HandleMessage processes one chat message. Messages from the bot itself and
// messages without the command prefix are ignored.
func (b *Bot) HandleMessage(channelID, authorID, content string) {
	if b.isSelf(authorID) {
		return
	}
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, b.prefix) {
		return
	}

	args := strings.Fields(strings.TrimPrefix(content, b.prefix))
	if len(args) == 0 {
		return
	}
	cmd := strings.ToLower(args[0])
	b.logger.Debug("Command received", "channel", channelID, "author", authorID, "command", cmd)

	switch cmd {
	case "select":
		b.handleSelect(channelID, args[1:])
	case "reset":
		b.handleReset(channelID)
	case "board":
		b.handleBoard(channelID)
	case "help":
		b.send(channelID, b.helpText())
	default:
		b.send(channelID, fmt.Sprintf("Unknown command. Try `%shelp`.", b.prefix))
	}
}

func (b *Bot) handleSelect(channelID string, args []string) {
	if len(args) == 0 {
		b.send(channelID, fmt.Sprintf("Usage: `%sselect <numbers...>`", b.prefix))
		return
	}

	var nums []int
	var invalid []string
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			invalid = append(invalid, fmt.Sprintf("❌ `%s` is not a number.", arg))
			continue
		}
		nums = append(nums, n)
	}
	if len(invalid) > 0 {
		b.send(channelID, strings.Join(invalid, "\n"))
	}
	if len(nums) == 0 {
		return
	}

	s := b.sessions.Get(channelID)
	if err := b.sender.ChannelTyping(channelID); err != nil {
		b.logger.Debug("Typing indicator failed", "channel", channelID, "error", err)
	}

	update, err := s.Select(nums...)
	if session.IsGameOver(err) {
		b.send(channelID, fmt.Sprintf("❌ No attempts left. Use `%sreset` to start a new game.", b.prefix))
		return
	}
	if err != nil {
		b.logger.Error("Select failed", "channel", channelID, "error", err)
		return
	}

	if lines := render.Rejections(update.Rejected); len(lines) > 0 {
		b.send(channelID, strings.Join(lines, "\n"))
	}

	b.logger.Info("Numbers selected",
		"channel", channelID,
		"accepted", update.Accepted,
		"attempts_left", update.Snapshot.AttemptsLeft,
		"lines", update.Snapshot.CompletedLines,
		"elapsed", update.Elapsed)

	b.sendBoard(channelID, update)
}

func (b *Bot) handleReset(channelID string) {
	b.sessions.Get(channelID).Reset()
	b.logger.Info("Game reset", "channel", channelID)
	b.send(channelID, fmt.Sprintf("🔄 The game has been reset. Pick numbers with `%sselect`!", b.prefix))
}

func (b *Bot) handleBoard(channelID string) {
	b.sendBoard(channelID, b.sessions.Get(channelID).State())
}

func (b *Bot) sendBoard(channelID string, update session.Update) {
	b.send(channelID, BoardMessage(update))

	status := render.Status(update.Snapshot)
	if best := render.Best(update.Probabilities); best != "" {
		status += "\n" + best
	}
	b.send(channelID, status)
}

// BoardMessage wraps the text board in a Discord code block.
func BoardMessage(update session.Update) string {
	return "**🎲 Bingo board 🎲**\n```\n" + render.Table(update.Snapshot, update.Probabilities) + "\n```"
}

func (b *Bot) helpText() string {
	p := b.prefix
	return "**Bingo odds commands**\n" +
		"- `" + p + "select <numbers...>` : mark numbers and show each cell's chance of 4+ lines\n" +
		"- `" + p + "board` : show the current board\n" +
		"- `" + p + "reset` : start a new game in this channel\n" +
		"- `" + p + "help` : show this message"
}

func (b *Bot) send(channelID, content string) {
	if _, err := b.sender.ChannelMessageSend(channelID, content); err != nil {
		b.logger.Error("Failed to send message", "channel", channelID, "error", err)
	}
}
