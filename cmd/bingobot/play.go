package main

import (
	"github.com/lox/bingobot/cmd/bingobot/shared"
	"github.com/lox/bingobot/internal/render"
	"github.com/lox/bingobot/internal/session"
	"github.com/lox/bingobot/internal/tui"
)

// PlayCmd runs the terminal client
type PlayCmd struct {
	Seed    *int64 `help:"Random seed for reproducible estimates"`
	Trials  int    `help:"Simulation trials per candidate (overrides config)"`
	Plain   bool   `help:"Disable colours"`
	LogFile string `help:"Write logs to this file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logger, closeLog, err := shared.SetupFileLogger(c.LogFile, cfg.LogLevel())
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	var opts []session.Option
	if c.Seed != nil {
		opts = append(opts, session.WithSeed(*c.Seed))
	}
	sess := session.New("local", settings(cfg, c.Trials), opts...)

	terminal := render.NewTerminal()
	if c.Plain {
		terminal = render.NewPlainTerminal()
	}
	return tui.Run(sess, terminal, logger)
}
