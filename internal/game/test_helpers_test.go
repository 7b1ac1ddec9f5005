package game

import (
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/tienlen/internal/deck"
	"github.com/stretchr/testify/require"
)

var (
	allDiamonds = "3d 4d 5d 6d 7d 8d 9d 10d Jd Qd Kd Ad 2d"
	allClubs    = "3c 4c 5c 6c 7c 8c 9c 10c Jc Qc Kc Ac 2c"
	allHearts   = "3h 4h 5h 6h 7h 8h 9h 10h Jh Qh Kh Ah 2h"
	allSpades   = "3s 4s 5s 6s 7s 8s 9s 10s Js Qs Ks As 2s"
)

// stackedDeck builds a deck that deals the given hands in seat order.
func stackedDeck(t *testing.T, hands ...string) *deck.Deck {
	t.Helper()
	d, err := deck.NewFromCards(deck.MustParseCards(strings.Join(hands, " ")))
	require.NoError(t, err)
	return d
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// scriptedAgent replays fixed decisions, then passes.
type scriptedAgent struct {
	decisions []Decision
	turns     []Turn
}

func script(decisions ...Decision) *scriptedAgent {
	return &scriptedAgent{decisions: decisions}
}

func move(cards string) Decision {
	return Decision{Cards: deck.MustParseCards(cards)}
}

func passMove() Decision {
	return Decision{Pass: true}
}

func (a *scriptedAgent) Decide(_ context.Context, turn Turn) (Decision, error) {
	a.turns = append(a.turns, turn)
	if len(a.decisions) == 0 {
		return Decision{Pass: true, Reasoning: "script exhausted"}, nil
	}
	d := a.decisions[0]
	a.decisions = slices.Delete(a.decisions, 0, 1)
	return d, nil
}

// eventRecorder collects published events
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}
