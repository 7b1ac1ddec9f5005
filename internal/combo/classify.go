package combo

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/tienlen/internal/deck"
)

var (
	// ErrInvalidHand is returned for card sets that are not a legal combination.
	ErrInvalidHand = errors.New("invalid hand")
	// ErrHandOverflow is returned when joining hands would exceed five cards.
	ErrHandOverflow = fmt.Errorf("%w: cannot merge hands and exceed %d cards", ErrInvalidHand, MaxCards)
	// ErrHandOverlap is returned when joining hands that share a card.
	ErrHandOverlap = fmt.Errorf("%w: cannot merge hands that have overlapping cards", ErrInvalidHand)
)

// Rules holds the classification switches that vary between table rules.
type Rules struct {
	// StrictFourOfAKind additionally requires a four of a kind to touch at
	// most two distinct suits.
	StrictFourOfAKind bool
}

// Standard is the default rule set.
var Standard = Rules{}

// Matches reports whether the cards form a combination of type t. The cards
// must already be sorted.
func (r Rules) Matches(t Type, cards []deck.Card) bool {
	if len(cards) != t.Size() {
		return false
	}
	switch t {
	case Single:
		return true
	case Pair, Triple:
		return sameRank(cards)
	case Straight:
		return isRun(cards) && !sameSuit(cards)
	case Flush:
		return sameSuit(cards) && !isRun(cards)
	case StraightFlush:
		return isRun(cards) && sameSuit(cards)
	case FullHouse:
		counts := rankCounts(cards)
		_, three := rankWithCount(counts, 3)
		_, two := rankWithCount(counts, 2)
		return three && two
	case FourOfAKind:
		if _, ok := rankWithCount(rankCounts(cards), 4); !ok {
			return false
		}
		return !r.StrictFourOfAKind || distinctSuits(cards) <= 2
	default:
		return false
	}
}

// Classify returns the single combination type the cards form. Five-card
// sets must match exactly one five-card type.
func (r Rules) Classify(cards []deck.Card) (Type, error) {
	sorted, err := normalize(cards)
	if err != nil {
		return Invalid, err
	}
	var matches []Type
	for _, t := range TypesOfSize(len(sorted)) {
		if r.Matches(t, sorted) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return Invalid, fmt.Errorf("%w: %s is not a combination", ErrInvalidHand, deck.FormatCards(sorted))
	default:
		return Invalid, fmt.Errorf("%w: %s matches %v", ErrInvalidHand, deck.FormatCards(sorted), matches)
	}
}

// Classify classifies cards under the standard rules
func Classify(cards []deck.Card) (Type, error) {
	return Standard.Classify(cards)
}

// normalize validates count, identity and uniqueness and returns a sorted copy.
func normalize(cards []deck.Card) ([]deck.Card, error) {
	if len(TypesOfSize(len(cards))) == 0 {
		return nil, fmt.Errorf("%w: %d cards cannot form a combination", ErrInvalidHand, len(cards))
	}
	sorted := slices.Clone(cards)
	deck.Sort(sorted)
	for i, c := range sorted {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %w", ErrInvalidHand, deck.ErrInvalidCard)
		}
		if i > 0 && sorted[i-1] == c {
			return nil, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
	}
	return sorted, nil
}

func sameRank(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}

func sameSuit(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isRun reports whether sorted cards have consecutive rank strengths, so
// J-Q-K-A-2 is a run and A-2-3-4-5 is not.
func isRun(cards []deck.Card) bool {
	for i := 1; i < len(cards); i++ {
		if cards[i].Strength() != cards[i-1].Strength()+1 {
			return false
		}
	}
	return true
}

func distinctSuits(cards []deck.Card) int {
	var seen [len(deck.Suits)]bool
	n := 0
	for _, c := range cards {
		if !seen[c.Suit] {
			seen[c.Suit] = true
			n++
		}
	}
	return n
}

func rankCounts(cards []deck.Card) map[deck.Rank]int {
	counts := make(map[deck.Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

func rankWithCount(counts map[deck.Rank]int, n int) (deck.Rank, bool) {
	for rank, count := range counts {
		if count == n {
			return rank, true
		}
	}
	return 0, false
}
