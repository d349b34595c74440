package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lox/bingobot/internal/board"
	"github.com/lox/bingobot/internal/config"
	"github.com/lox/bingobot/internal/session"
)

// version is set by ldflags during build
var version = "dev"

// Globals are shared by every subcommand
type Globals struct {
	Config   string `short:"c" default:"bingobot.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

type CLI struct {
	Globals

	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Discord   DiscordCmd       `cmd:"" help:"Run the Discord bot"`
	Serve     ServeCmd         `cmd:"" help:"Run the WebSocket server"`
	Play      PlayCmd          `cmd:"" help:"Play interactively in the terminal"`
	Odds      OddsCmd          `cmd:"" help:"Print win probabilities for one position"`
	Stability StabilityCmd     `cmd:"" help:"Measure how much repeated estimates disagree"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bingobot"),
		kong.Description("Bingo odds: chance of four completed lines for every open cell"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads and validates the configuration, applying global overrides
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// settings turns the game block into session settings, letting a non-zero
// trials flag win over the file.
func settings(cfg *config.Config, trials int) session.Settings {
	s := session.Settings{
		Attempts:    cfg.Game.Attempts,
		Trials:      cfg.Game.Trials,
		TargetLines: cfg.Game.TargetLines,
	}
	if trials > 0 {
		s.Trials = trials
	}
	return s
}

// parseNumbers parses "1,2,3" or "1 2 3" into a set of board numbers
func parseNumbers(s string) (board.Set, error) {
	var set board.Set
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", f)
		}
		if !board.InRange(n) {
			return 0, fmt.Errorf("number %d is outside %d-%d", n, board.MinNumber, board.MaxNumber)
		}
		if set.Contains(n) {
			return 0, fmt.Errorf("number %d listed twice", n)
		}
		set.Add(n)
	}
	return set, nil
}
