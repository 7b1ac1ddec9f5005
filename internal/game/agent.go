package game

import (
	"context"
	"fmt"

	"github.com/lox/tienlen/internal/combo"
	"github.com/lox/tienlen/internal/deck"
)

// Turn is the read-only view an agent decides from.
type Turn struct {
	Player     string
	Round      int
	Attempt    int
	Cards      []deck.Card  // the acting player's cards
	ToBeat     combo.Hand   // zero when leading
	LastPlayer string       // who played ToBeat
	LegalMoves []combo.Hand // discovered combinations that may be played
	Opponents  []Opponent
	Rejected   error // why the previous attempt was refused
}

// Leading reports whether the acting player leads the round
func (t Turn) Leading() bool { return t.ToBeat.IsZero() }

// Opponent is what the acting player can see of another seat
type Opponent struct {
	Name   string
	Cards  int
	Passed bool
}

// Decision is an agent's answer for a turn.
type Decision struct {
	Pass      bool
	Cards     []deck.Card
	TimedOut  bool
	Reasoning string // human-readable explanation
}

// Agent represents any entity (human or AI) that can make decisions for a
// player. Agents see an immutable Turn and never mutate game state.
type Agent interface {
	Decide(ctx context.Context, turn Turn) (Decision, error)
}

// ComputerAgent plays the move chosen by ChooseMove, occasionally
// withholding as a follower according to its Strategy.
type ComputerAgent struct {
	Strategy Strategy
}

// NewComputerAgent creates a computer agent
func NewComputerAgent(s Strategy) *ComputerAgent {
	return &ComputerAgent{Strategy: s}
}

// Decide picks a move for the turn
func (a *ComputerAgent) Decide(_ context.Context, turn Turn) (Decision, error) {
	if !turn.Leading() && a.Strategy.Withhold() {
		return Decision{Pass: true, Reasoning: "withholding"}, nil
	}
	h, ok := ChooseMove(turn.LegalMoves, turn.ToBeat)
	if !ok {
		return Decision{Pass: true, Reasoning: "nothing beats " + turn.ToBeat.String()}, nil
	}
	return Decision{Cards: h.Cards(), Reasoning: fmt.Sprintf("weakest %s", h.Type())}, nil
}
