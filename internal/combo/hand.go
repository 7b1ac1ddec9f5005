package combo

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lox/tienlen/internal/deck"
)

// Hand is a classified set of 1, 2, 3 or 5 cards, kept sorted weakest first.
// The zero Hand is empty and beats nothing.
type Hand struct {
	cards []deck.Card
	typ   Type
	rules Rules
}

// New builds a hand under the standard rules. An explicit type must agree
// with the classifier.
func New(cards []deck.Card, typ ...Type) (Hand, error) {
	return Standard.New(cards, typ...)
}

// MustNew is New that panics on error (for tests)
func MustNew(cards []deck.Card, typ ...Type) Hand {
	h, err := New(cards, typ...)
	if err != nil {
		panic(fmt.Sprintf("failed to build hand %s: %v", deck.FormatCards(cards), err))
	}
	return h
}

// New builds a hand classified under r.
func (r Rules) New(cards []deck.Card, typ ...Type) (Hand, error) {
	if len(typ) > 1 {
		return Hand{}, fmt.Errorf("%w: more than one type given", ErrInvalidHand)
	}
	if len(typ) == 1 && len(cards) != typ[0].Size() {
		return Hand{}, fmt.Errorf("%w: %s needs %d cards, got %d", ErrInvalidHand, typ[0], typ[0].Size(), len(cards))
	}
	sorted, err := normalize(cards)
	if err != nil {
		return Hand{}, err
	}
	classified, err := r.Classify(sorted)
	if err != nil {
		return Hand{}, err
	}
	if len(typ) == 1 && typ[0] != classified {
		return Hand{}, fmt.Errorf("%w: %s is a %s, not a %s", ErrInvalidHand, deck.FormatCards(sorted), classified, typ[0])
	}
	return Hand{cards: sorted, typ: classified, rules: r}, nil
}

// Classify re-runs the classifier over the hand's cards
func (h Hand) Classify() Type {
	if len(h.cards) == 0 {
		return Invalid
	}
	t, err := h.rules.Classify(h.cards)
	if err != nil {
		return Invalid
	}
	return t
}

// Type returns the combination the hand was classified as
func (h Hand) Type() Type { return h.typ }

// Len returns the number of cards in the hand
func (h Hand) Len() int { return len(h.cards) }

// IsZero reports whether the hand is empty
func (h Hand) IsZero() bool { return len(h.cards) == 0 }

// Cards returns a copy of the hand's cards, weakest first
func (h Hand) Cards() []deck.Card { return slices.Clone(h.cards) }

// Contains reports whether the hand holds the card
func (h Hand) Contains(c deck.Card) bool {
	return slices.Contains(h.cards, c)
}

// Max returns the hand's defining card: the best card of the triple for a
// full house, of the quad for four of a kind, and the highest card otherwise.
func (h Hand) Max() deck.Card {
	switch h.typ {
	case FullHouse:
		return h.bestOfRankWithCount(3)
	case FourOfAKind:
		return h.bestOfRankWithCount(4)
	default:
		high, _ := deck.Highest(h.cards)
		return high
	}
}

func (h Hand) bestOfRankWithCount(n int) deck.Card {
	rank, _ := rankWithCount(rankCounts(h.cards), n)
	var best deck.Card
	for _, c := range h.cards {
		if c.Rank == rank {
			best = c // cards are sorted, last match wins
		}
	}
	return best
}

// Comparable reports whether two hands can be played against each other.
// Hands compare only when they hold the same number of cards.
func (h Hand) Comparable(other Hand) bool {
	return h.typ.Valid() && other.typ.Valid() && h.Len() == other.Len()
}

// Beats reports whether h outranks other. Five-card hands of different types
// are decided by severity alone.
func (h Hand) Beats(other Hand) bool {
	return h.Comparable(other) && Compare(h, other) > 0
}

// Compare orders hands by size, then severity, then defining card.
func Compare(a, b Hand) int {
	if c := cmp.Compare(a.Len(), b.Len()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.typ.Severity(), b.typ.Severity()); c != 0 {
		return c
	}
	if a.IsZero() || b.IsZero() {
		return 0
	}
	return deck.Compare(a.Max(), b.Max())
}

// Join merges two disjoint hands and re-classifies the result.
func (h Hand) Join(other Hand) (Hand, error) {
	if h.Len()+other.Len() > MaxCards {
		return Hand{}, ErrHandOverflow
	}
	for _, c := range other.cards {
		if h.Contains(c) {
			return Hand{}, fmt.Errorf("%w (%s)", ErrHandOverlap, c)
		}
	}
	merged := make([]deck.Card, 0, h.Len()+other.Len())
	merged = append(merged, h.cards...)
	merged = append(merged, other.cards...)
	return h.rules.New(merged)
}

// Equal reports whether both hands hold the same cards
func (h Hand) Equal(other Hand) bool {
	return slices.Equal(h.cards, other.cards)
}

// String renders the hand as "Pair 3♦ 3♣"
func (h Hand) String() string {
	if h.IsZero() {
		return "-"
	}
	return h.typ.String() + " " + deck.FormatCards(h.cards)
}
