package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/lox/bingobot/internal/estimator"
	"github.com/lox/bingobot/internal/game"
)

// Config represents the complete bingobot configuration
type Config struct {
	Game    GameSettings
	Server  ServerSettings
	Discord DiscordSettings
}

// fileConfig mirrors Config with every block optional
type fileConfig struct {
	Game    *GameSettings    `hcl:"game,block"`
	Server  *ServerSettings  `hcl:"server,block"`
	Discord *DiscordSettings `hcl:"discord,block"`
}

// GameSettings controls the game rules and the estimator
type GameSettings struct {
	Attempts    int `hcl:"attempts,optional"`
	Trials      int `hcl:"trials,optional"`
	TargetLines int `hcl:"target_lines,optional"`
}

// ServerSettings contains websocket server configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// DiscordSettings contains Discord bot configuration
type DiscordSettings struct {
	TokenEnv string `hcl:"token_env,optional"`
	Prefix   string `hcl:"prefix,optional"`
	EnvFile  string `hcl:"env_file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Attempts:    game.DefaultAttempts,
			Trials:      estimator.DefaultTrials,
			TargetLines: estimator.DefaultTargetLines,
		},
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Discord: DiscordSettings{
			TokenEnv: "DISCORD_TOKEN",
			Prefix:   "!",
			EnvFile:  ".env",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	var cfg Config
	if fc.Game != nil {
		cfg.Game = *fc.Game
	}
	if fc.Server != nil {
		cfg.Server = *fc.Server
	}
	if fc.Discord != nil {
		cfg.Discord = *fc.Discord
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Game.Attempts == 0 {
		c.Game.Attempts = defaults.Game.Attempts
	}
	if c.Game.Trials == 0 {
		c.Game.Trials = defaults.Game.Trials
	}
	if c.Game.TargetLines == 0 {
		c.Game.TargetLines = defaults.Game.TargetLines
	}

	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaults.Server.LogLevel
	}

	if c.Discord.TokenEnv == "" {
		c.Discord.TokenEnv = defaults.Discord.TokenEnv
	}
	if c.Discord.Prefix == "" {
		c.Discord.Prefix = defaults.Discord.Prefix
	}
	if c.Discord.EnvFile == "" {
		c.Discord.EnvFile = defaults.Discord.EnvFile
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.Attempts < 1 || c.Game.Attempts > 25 {
		return fmt.Errorf("attempts must be between 1 and 25, got %d", c.Game.Attempts)
	}
	if c.Game.Trials < 0 {
		return fmt.Errorf("trials cannot be negative")
	}
	if c.Game.TargetLines < 1 || c.Game.TargetLines > 12 {
		return fmt.Errorf("target lines must be between 1 and 12, got %d", c.Game.TargetLines)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if c.Discord.Prefix == "" {
		return fmt.Errorf("discord command prefix is required")
	}

	return nil
}

// ServerAddress returns the full server address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// DiscordToken loads the env file if present and reads the bot token.
func (c *Config) DiscordToken() (string, error) {
	if _, err := os.Stat(c.Discord.EnvFile); err == nil {
		if err := godotenv.Load(c.Discord.EnvFile); err != nil {
			return "", fmt.Errorf("failed to load %s: %w", c.Discord.EnvFile, err)
		}
	}

	token := os.Getenv(c.Discord.TokenEnv)
	if token == "" {
		return "", fmt.Errorf("%s environment variable is not set", c.Discord.TokenEnv)
	}
	return token, nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Server.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
