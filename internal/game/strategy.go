package game

import (
	"math/rand/v2"

	"github.com/lox/tienlen/internal/combo"
)

// Strategy tunes computer play.
type Strategy struct {
	// PassChance is the probability a follower passes even when it holds a
	// beating move. Zero disables withholding.
	PassChance float64
	Rand       *rand.Rand
}

// Withhold reports whether a follower should pass this turn regardless of
// its options.
func (s Strategy) Withhold() bool {
	if s.PassChance <= 0 || s.Rand == nil {
		return false
	}
	return s.Rand.Float64() < s.PassChance
}

// ChooseMove picks a move from legal candidates. A leader sheds as many
// cards as possible using its weakest combination of that size. A follower
// prefers the weakest hand of the same type as toBeat, then the weakest
// higher-severity five-card hand. It returns false when there is nothing to
// play.
func ChooseMove(moves []combo.Hand, toBeat combo.Hand) (combo.Hand, bool) {
	var best combo.Hand
	for _, h := range moves {
		if best.IsZero() || better(h, best, toBeat) {
			best = h
		}
	}
	return best, !best.IsZero()
}

func better(h, than combo.Hand, toBeat combo.Hand) bool {
	if toBeat.IsZero() {
		if h.Len() != than.Len() {
			return h.Len() > than.Len()
		}
		return combo.Compare(h, than) < 0
	}
	hSame, thanSame := h.Type() == toBeat.Type(), than.Type() == toBeat.Type()
	if hSame != thanSame {
		return hSame
	}
	return combo.Compare(h, than) < 0
}
