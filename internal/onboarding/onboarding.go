// Package onboarding runs the scripted welcome dialogue that decides who is
// sitting at the table.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/tienlen/internal/config"
	"github.com/lox/tienlen/internal/game"
)

// Script variables the dialogue must fill
const (
	VarPlayerCount = "playerCount"
	VarPlayerNames = "playerNames"
)

// DefaultMaxAttempts bounds how often the dialogue restarts after a mismatch
const DefaultMaxAttempts = 3

var (
	// ErrConfigMismatch is returned when the answers contradict each other.
	ErrConfigMismatch = errors.New("config mismatch")
	// ErrMultiplayer is returned when more than one live player is requested.
	ErrMultiplayer = fmt.Errorf("%w: multi-player is not currently supported", ErrConfigMismatch)
)

// Prompter asks questions and shows replies. Implementations block until
// the player answers.
type Prompter interface {
	Select(ctx context.Context, prompt string, choices []string) (string, error)
	Input(ctx context.Context, prompt string) (string, error)
	Say(message string)
}

// Setup is the outcome of a completed dialogue
type Setup struct {
	PlayerCount int
	Names       []string
	Answers     map[string]string
}

// Option configures Run
type Option func(*runner)

// WithMaxAttempts bounds dialogue restarts. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(r *runner) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(r *runner) { r.logger = logger }
}

type runner struct {
	script      config.Script
	prompter    Prompter
	maxAttempts int
	logger      *log.Logger
}

// Run walks the script's steps, asking each question in order, and turns the
// answers into a Setup. Contradictory answers restart the dialogue up to the
// attempt limit.
func Run(ctx context.Context, script config.Script, p Prompter, opts ...Option) (Setup, error) {
	r := &runner{
		script:      script,
		prompter:    p,
		maxAttempts: DefaultMaxAttempts,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}

	if script.Intro != "" {
		p.Say(script.Intro)
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		answers, err := r.ask(ctx)
		if err != nil {
			return Setup{}, err
		}
		setup, err := parseSetup(answers)
		if err == nil {
			r.logger.Info("Onboarding complete", "players", setup.Names)
			return setup, nil
		}
		if !errors.Is(err, ErrConfigMismatch) {
			return Setup{}, err
		}
		r.logger.Warn("Onboarding answers rejected", "attempt", attempt, "error", err)
		p.Say(fmt.Sprintf("%s. Try again.", mismatchMessage(err)))
		lastErr = err
	}
	return Setup{}, fmt.Errorf("giving up after %d attempts: %w", r.maxAttempts, lastErr)
}

func (r *runner) ask(ctx context.Context) (map[string]string, error) {
	answers := make(map[string]string, len(r.script.Steps))
	for _, step := range r.script.Steps {
		var (
			answer string
			err    error
		)
		if len(step.Choices) > 0 {
			answer, err = r.prompter.Select(ctx, step.Prompt, step.Choices)
		} else {
			answer, err = r.prompter.Input(ctx, step.Prompt)
		}
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", step.Variable, err)
		}
		answer = strings.TrimSpace(answer)
		answers[step.Variable] = answer

		if step.Response != "" {
			shown := answer
			if step.Variable == VarPlayerNames {
				shown = strings.Join(SplitNames(answer), " + ")
			}
			r.prompter.Say(step.Reply(shown))
		}
	}
	return answers, nil
}

// SplitNames splits a names answer on commas, or on whitespace when there
// are no commas. Blank entries are kept so they can be rejected.
func SplitNames(answer string) []string {
	if strings.TrimSpace(answer) == "" {
		return nil
	}
	var parts []string
	if strings.Contains(answer, ",") {
		parts = strings.Split(answer, ",")
	} else {
		parts = strings.Fields(answer)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseSetup(answers map[string]string) (Setup, error) {
	raw, ok := answers[VarPlayerNames]
	if !ok {
		return Setup{}, fmt.Errorf("script has no %q step", VarPlayerNames)
	}
	names := SplitNames(raw)

	count := len(names)
	if countAnswer, ok := answers[VarPlayerCount]; ok {
		n, err := strconv.Atoi(countAnswer)
		if err != nil {
			return Setup{}, fmt.Errorf("%w: %q is not a number of players", ErrConfigMismatch, countAnswer)
		}
		count = n
	}

	switch {
	case count != len(names) || count > game.MaxPlayers:
		return Setup{}, fmt.Errorf("%w: the number of players doesn't match the number of names", ErrConfigMismatch)
	case count < 1:
		return Setup{}, fmt.Errorf("%w: at least one player is needed", ErrConfigMismatch)
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return Setup{}, fmt.Errorf("%w: empty names are not allowed", ErrConfigMismatch)
		}
		if seen[name] {
			return Setup{}, fmt.Errorf("%w: %s is named twice", ErrConfigMismatch, name)
		}
		seen[name] = true
	}
	if count > 1 {
		return Setup{}, ErrMultiplayer
	}
	return Setup{PlayerCount: count, Names: names, Answers: answers}, nil
}

// mismatchMessage strips the sentinel prefix for display
func mismatchMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), ErrConfigMismatch.Error()+": ")
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
