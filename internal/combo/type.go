// Package combo classifies sets of cards into playable combinations and
// orders comparable combinations.
//
// A Hand is 1, 2, 3 or 5 cards tagged with a Type. Same-size hands compare
// by their defining card; five-card hands of different types compare by
// severity first:
//
//	Straight < Flush < FullHouse < FourOfAKind < StraightFlush
package combo

import (
	"fmt"
	"strings"
)

// Type identifies a combination. The zero value is not a valid combination.
type Type int

const (
	Invalid Type = iota
	Single
	Pair
	Triple
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Types lists every valid combination in play order, small sets first.
var Types = [...]Type{Single, Pair, Triple, Straight, Flush, FullHouse, FourOfAKind, StraightFlush}

// FiveCardTypes lists the five-card combinations by ascending severity.
var FiveCardTypes = [...]Type{Straight, Flush, FullHouse, FourOfAKind, StraightFlush}

// MaxCards is the largest number of cards playable in one turn
const MaxCards = 5

// String returns the display name of the type
func (t Type) String() string {
	switch t {
	case Single:
		return "Single"
	case Pair:
		return "Pair"
	case Triple:
		return "Triple"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Invalid"
	}
}

// Size returns the number of cards a combination of this type holds
func (t Type) Size() int {
	switch t {
	case Single:
		return 1
	case Pair:
		return 2
	case Triple:
		return 3
	case Straight, Flush, FullHouse, FourOfAKind, StraightFlush:
		return 5
	default:
		return 0
	}
}

// Severity ranks five-card types against each other, 1 (Straight) to 5
// (Straight Flush). Other types have no severity.
func (t Type) Severity() int {
	switch t {
	case Straight:
		return 1
	case Flush:
		return 2
	case FullHouse:
		return 3
	case FourOfAKind:
		return 4
	case StraightFlush:
		return 5
	default:
		return 0
	}
}

// IsFiveCard reports whether the type is one of the five-card combinations
func (t Type) IsFiveCard() bool {
	return t.Size() == MaxCards
}

// Valid reports whether t names a real combination
func (t Type) Valid() bool {
	return t.Size() > 0
}

// TypesOfSize returns the combination types that hold n cards.
func TypesOfSize(n int) []Type {
	switch n {
	case 1:
		return []Type{Single}
	case 2:
		return []Type{Pair}
	case 3:
		return []Type{Triple}
	case MaxCards:
		return FiveCardTypes[:]
	default:
		return nil
	}
}

// ParseType reads a type name such as "pair", "full-house" or
// "Straight Flush".
func ParseType(s string) (Type, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)
	for _, t := range Types {
		if strings.EqualFold(strings.ReplaceAll(t.String(), " ", ""), key) {
			return t, nil
		}
	}
	return Invalid, fmt.Errorf("%w: unknown combination type %q", ErrInvalidHand, s)
}
