package main

import (
	"context"
	"time"

	"github.com/lox/bingobot/cmd/bingobot/shared"
	"github.com/lox/bingobot/internal/server"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Addr   string `short:"a" help:"Server address to bind to (overrides config)"`
	Trials int    `help:"Simulation trials per candidate (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.LogLevel())
	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	s := settings(cfg, c.Trials)
	srv := server.NewServer(addr, s, logger)
	logger.Info("Starting bingo server",
		"addr", addr,
		"attempts", s.Attempts,
		"trials", s.Trials)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
		return err
	}
	return <-errCh
}
