package main

import (
	"github.com/lox/bingobot/cmd/bingobot/shared"
	"github.com/lox/bingobot/internal/discord"
	"github.com/lox/bingobot/internal/session"
)

// DiscordCmd runs the chat bot
type DiscordCmd struct {
	Prefix string `help:"Command prefix (overrides config)"`
	Trials int    `help:"Simulation trials per candidate (overrides config)"`
}

func (c *DiscordCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Prefix != "" {
		cfg.Discord.Prefix = c.Prefix
	}

	logger := shared.SetupLogger(cfg.LogLevel())
	token, err := cfg.DiscordToken()
	if err != nil {
		return err
	}

	s := settings(cfg, c.Trials)
	logger.Info("Starting Discord bot",
		"prefix", cfg.Discord.Prefix,
		"attempts", s.Attempts,
		"trials", s.Trials,
		"target_lines", s.TargetLines)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	return discord.Run(ctx, token, session.NewRegistry(s, nil), cfg.Discord.Prefix, logger)
}
