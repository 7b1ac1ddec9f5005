package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0, cfg.Game.ComputerPlayers)
	assert.Equal(t, 3, cfg.Game.MaxAttempts)
	assert.Zero(t, cfg.Game.PassChance)
	assert.False(t, cfg.Game.StrictFourOfAKind)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "tienlen.log", cfg.Log.File)
	assert.Equal(t, []string{"Obi", "Toby", "Adanna", "Nneoma", "Kamsi"}, cfg.Names)

	require.Len(t, cfg.Script.Steps, 2)
	assert.Equal(t, "playerCount", cfg.Script.Steps[0].Variable)
	assert.Equal(t, []string{"1", "2", "3", "4"}, cfg.Script.Steps[0].Choices)
	assert.Equal(t, "playerNames", cfg.Script.Steps[1].Variable)
	assert.Equal(t, "Good luck, Ada!", cfg.Script.Steps[1].Reply("Ada"))

	timeout, err := cfg.TurnTimeout()
	require.NoError(t, err)
	assert.Zero(t, timeout)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tienlen.hcl")
	src := `
game {
  computer_players = 2
  pass_chance      = 0.25
  turn_timeout     = "45s"
  seed             = 99
}

names = ["Ada", "Bao"]
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2, cfg.Game.ComputerPlayers)
	assert.Equal(t, 0.25, cfg.Game.PassChance)
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, 3, cfg.Game.MaxAttempts, "filled from defaults")
	assert.Equal(t, "info", cfg.Log.Level, "missing block filled from defaults")
	assert.Equal(t, []string{"Ada", "Bao"}, cfg.Names)
	require.NotNil(t, cfg.Script)
	assert.Len(t, cfg.Script.Steps, 2)

	timeout, err := cfg.TurnTimeout()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, timeout)
}

func TestParseCustomScript(t *testing.T) {
	src := `
script {
  step "playerNames" {
    prompt   = "Who is playing?"
    response = "Hi {answer}"
  }
}
`
	cfg, err := Parse([]byte(src), "custom.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Script.Steps, 1)
	assert.Empty(t, cfg.Script.Steps[0].Choices)
	assert.Equal(t, "Hi Kamsi", cfg.Script.Steps[0].Reply("Kamsi"))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`game {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Parse([]byte(`unknown = 1`), "unknown.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "too many computers", mutate: func(c *Config) { c.Game.ComputerPlayers = 4 }, errMsg: "computer_players"},
		{name: "negative computers", mutate: func(c *Config) { c.Game.ComputerPlayers = -1 }, errMsg: "computer_players"},
		{name: "pass chance above one", mutate: func(c *Config) { c.Game.PassChance = 1.5 }, errMsg: "pass_chance"},
		{name: "zero attempts", mutate: func(c *Config) { c.Game.MaxAttempts = 0 }, errMsg: "max_attempts"},
		{name: "bad timeout", mutate: func(c *Config) { c.Game.TurnTimeout = "soon" }, errMsg: "turn_timeout"},
		{name: "negative timeout", mutate: func(c *Config) { c.Game.TurnTimeout = "-1s" }, errMsg: "turn_timeout"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "chatty" }, errMsg: "log"},
		{name: "blank name", mutate: func(c *Config) { c.Names = []string{"Obi", " "} }, errMsg: "empty names"},
		{
			name: "duplicate step",
			mutate: func(c *Config) {
				c.Script.Steps = append(c.Script.Steps, c.Script.Steps[0])
			},
			errMsg: "duplicate step",
		},
		{
			name:   "step without prompt",
			mutate: func(c *Config) { c.Script.Steps[0].Prompt = "" },
			errMsg: "no prompt",
		},
		{name: "missing block", mutate: func(c *Config) { c.Log = nil }, errMsg: "incomplete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tienlen.hcl")

	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))
	require.NoError(t, WriteDefault(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	assert.Error(t, WriteDefault(filepath.Join(dir, "missing", "tienlen.hcl")))
}
