package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bingobot.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
game {
  attempts     = 12
  trials       = 2000
}

server {
  port      = 9090
  log_level = "debug"
}

discord {
  prefix = "?"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Game.Attempts)
	assert.Equal(t, 2000, cfg.Game.Trials)
	assert.Equal(t, 4, cfg.Game.TargetLines)
	assert.Equal(t, "localhost:9090", cfg.ServerAddress())
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "?", cfg.Discord.Prefix)
	assert.Equal(t, "DISCORD_TOKEN", cfg.Discord.TokenEnv)
	require.NoError(t, cfg.Validate())
}

func TestLoadBlocksAreOptional(t *testing.T) {
	path := writeConfig(t, `
server {
  address = "0.0.0.0"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Game.Attempts)
	assert.Equal(t, 5000, cfg.Game.Trials)
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddress())
}

func TestLoadInvalidHCL(t *testing.T) {
	path := writeConfig(t, `game { attempts = `)
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse HCL file")

	path = writeConfig(t, `game { colour = "red" }`)
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "too many attempts", mutate: func(c *Config) { c.Game.Attempts = 26 }, errMsg: "attempts"},
		{name: "negative trials", mutate: func(c *Config) { c.Game.Trials = -1 }, errMsg: "trials"},
		{name: "target lines", mutate: func(c *Config) { c.Game.TargetLines = 13 }, errMsg: "target lines"},
		{name: "port", mutate: func(c *Config) { c.Server.Port = 70000 }, errMsg: "invalid port"},
		{name: "log level", mutate: func(c *Config) { c.Server.LogLevel = "loud" }, errMsg: "invalid log level"},
		{name: "prefix", mutate: func(c *Config) { c.Discord.Prefix = "" }, errMsg: "prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestDiscordToken(t *testing.T) {
	cfg := Default()
	cfg.Discord.TokenEnv = "BINGOBOT_TEST_TOKEN"
	cfg.Discord.EnvFile = filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("BINGOBOT_TEST_TOKEN", "")
	_, err := cfg.DiscordToken()
	assert.ErrorContains(t, err, "BINGOBOT_TEST_TOKEN")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BINGOBOT_FILE_TOKEN=from-file\n"), 0o600))
	cfg.Discord.EnvFile = envFile
	cfg.Discord.TokenEnv = "BINGOBOT_FILE_TOKEN"
	t.Setenv("BINGOBOT_FILE_TOKEN", "")
	require.NoError(t, os.Unsetenv("BINGOBOT_FILE_TOKEN"))

	token, err := cfg.DiscordToken()
	require.NoError(t, err)
	assert.Equal(t, "from-file", token)
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load("../../bingobot.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Default(), cfg)
}
