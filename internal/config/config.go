package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

//go:embed default.hcl
var defaultHCL []byte

// AnswerPlaceholder is replaced with the player's answer in step responses
const AnswerPlaceholder = "{answer}"

// Config represents the complete game configuration
type Config struct {
	Game   *GameSettings `hcl:"game,block"`
	Log    *LogSettings  `hcl:"log,block"`
	Names  []string      `hcl:"names,optional"`
	Script *Script       `hcl:"script,block"`
}

// GameSettings tunes the table and the computer players
type GameSettings struct {
	ComputerPlayers   int     `hcl:"computer_players,optional"`
	PassChance        float64 `hcl:"pass_chance,optional"`
	MaxAttempts       int     `hcl:"max_attempts,optional"`
	TurnTimeout       string  `hcl:"turn_timeout,optional"`
	StrictFourOfAKind bool    `hcl:"strict_four_of_a_kind,optional"`
	Seed              int64   `hcl:"seed,optional"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Script is the welcome dialogue run before the first deal
type Script struct {
	Intro string `hcl:"intro,optional"`
	Steps []Step `hcl:"step,block"`
}

// Step asks one question and stores the answer under Variable
type Step struct {
	Variable string   `hcl:"variable,label"`
	Prompt   string   `hcl:"prompt"`
	Choices  []string `hcl:"choices,optional"`
	Response string   `hcl:"response,optional"`
}

// Reply fills the step's response with an answer
func (s Step) Reply(answer string) string {
	return strings.ReplaceAll(s.Response, AnswerPlaceholder, answer)
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	cfg, err := decode(defaultHCL, "default.hcl")
	if err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return cfg
}

// WriteDefault writes the built-in configuration to filename as a starting
// point for customisation.
func WriteDefault(filename string) error {
	return writeFileAtomic(filename, defaultHCL, 0o644)
}

// writeFileAtomic writes data to a temporary file next to filename and
// renames it into place, so readers see either the old file or the new one.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults; values the file leaves out are filled from the defaults.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		return DefaultConfig(), nil
	}
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults for anything missing
func Parse(src []byte, filename string) (*Config, error) {
	cfg, err := decode(src, filename)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults(DefaultConfig())
	return cfg, nil
}

func decode(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return &cfg, nil
}

func (c *Config) applyDefaults(def *Config) {
	if c.Game == nil {
		c.Game = def.Game
	}
	if c.Game.MaxAttempts == 0 {
		c.Game.MaxAttempts = def.Game.MaxAttempts
	}
	if c.Game.TurnTimeout == "" {
		c.Game.TurnTimeout = def.Game.TurnTimeout
	}

	if c.Log == nil {
		c.Log = def.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}

	if len(c.Names) == 0 {
		c.Names = def.Names
	}
	if c.Script == nil {
		c.Script = def.Script
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	g := c.Game
	if g == nil || c.Log == nil || c.Script == nil {
		return fmt.Errorf("incomplete configuration")
	}
	if g.ComputerPlayers < 0 || g.ComputerPlayers > 3 {
		return fmt.Errorf("game: computer_players must be between 0 and 3, got %d", g.ComputerPlayers)
	}
	if g.PassChance < 0 || g.PassChance > 1 {
		return fmt.Errorf("game: pass_chance must be between 0 and 1, got %v", g.PassChance)
	}
	if g.MaxAttempts < 1 {
		return fmt.Errorf("game: max_attempts must be positive, got %d", g.MaxAttempts)
	}
	if _, err := c.TurnTimeout(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	for _, name := range c.Names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("names: empty names are not allowed")
		}
	}

	seen := make(map[string]bool)
	for _, step := range c.Script.Steps {
		if step.Variable == "" {
			return fmt.Errorf("script: step needs a variable label")
		}
		if seen[step.Variable] {
			return fmt.Errorf("script: duplicate step %q", step.Variable)
		}
		seen[step.Variable] = true
		if strings.TrimSpace(step.Prompt) == "" {
			return fmt.Errorf("script: step %q has no prompt", step.Variable)
		}
	}
	return nil
}

// TurnTimeout parses the human response deadline. Zero means no deadline.
func (c *Config) TurnTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Game.TurnTimeout)
	if err != nil {
		return 0, fmt.Errorf("game: invalid turn_timeout %q: %w", c.Game.TurnTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("game: turn_timeout must not be negative")
	}
	return d, nil
}
