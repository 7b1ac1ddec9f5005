package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/tienlen/internal/deck"
)

// MoveReader collects one line of input from a live player.
type MoveReader interface {
	ReadMove(ctx context.Context, turn Turn) (string, error)
}

// MoveReaderFunc adapts a function to MoveReader
type MoveReaderFunc func(ctx context.Context, turn Turn) (string, error)

func (f MoveReaderFunc) ReadMove(ctx context.Context, turn Turn) (string, error) {
	return f(ctx, turn)
}

// HumanAgent represents a live player typing moves. When a timeout is set
// and the player does not answer in time, the agent passes.
type HumanAgent struct {
	reader  MoveReader
	clock   quartz.Clock
	timeout time.Duration
	logger  *log.Logger
}

// NewHumanAgent creates a human agent. A zero timeout waits forever.
func NewHumanAgent(reader MoveReader, clock quartz.Clock, timeout time.Duration, logger *log.Logger) *HumanAgent {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &HumanAgent{
		reader:  reader,
		clock:   clock,
		timeout: timeout,
		logger:  logger.WithPrefix("human"),
	}
}

type readResult struct {
	line string
	err  error
}

// Decide prompts for a move and parses the answer
func (h *HumanAgent) Decide(ctx context.Context, turn Turn) (Decision, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Wait for input or timeout using the quartz clock
	timeoutFired := make(chan struct{})
	if h.timeout > 0 {
		timer := h.clock.AfterFunc(h.timeout, func() {
			close(timeoutFired)
		})
		defer timer.Stop()
	}

	results := make(chan readResult, 1)
	go func() {
		line, err := h.reader.ReadMove(ctx, turn)
		results <- readResult{line: line, err: err}
	}()

	select {
	case r := <-results:
		if r.err != nil {
			return Decision{}, r.err
		}
		h.logger.Debug("Received move", "player", turn.Player, "line", r.line)
		return ParseMove(r.line, turn)
	case <-timeoutFired:
		h.logger.Warn("Move timeout, passing", "player", turn.Player, "timeout", h.timeout)
		return Decision{Pass: true, TimedOut: true, Reasoning: "timeout"}, nil
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}

// ParseMove turns a typed line into a decision. It accepts "pass", a
// 1-based index into the turn's legal moves, or a list of cards such as
// "3d 3c".
func ParseMove(line string, turn Turn) (Decision, error) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return Decision{}, fmt.Errorf("%w: no move entered", ErrIllegalMove)
	case "p", "pass":
		return Decision{Pass: true, Reasoning: "passed"}, nil
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(turn.LegalMoves) {
			return Decision{}, fmt.Errorf("%w: choose a move between 1 and %d", ErrIllegalMove, len(turn.LegalMoves))
		}
		return Decision{Cards: turn.LegalMoves[n-1].Cards()}, nil
	}

	cards, err := deck.ParseCards(line)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	return Decision{Cards: cards}, nil
}
