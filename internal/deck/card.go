package deck

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidCard is returned when a card is built from a bad suit, rank or symbol.
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit. The declaration order is the tie-break order,
// weakest first.
type Suit uint8

const (
	Diamonds Suit = iota
	Clubs
	Hearts
	Spades
)

// Suits lists every suit from weakest to strongest.
var Suits = [...]Suit{Diamonds, Clubs, Hearts, Spades}

// String returns the display symbol of a suit
func (s Suit) String() string {
	switch s {
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the upper-case suit name (e.g. "DIAMONDS")
func (s Suit) Name() string {
	switch s {
	case Diamonds:
		return "DIAMONDS"
	case Clubs:
		return "CLUBS"
	case Hearts:
		return "HEARTS"
	case Spades:
		return "SPADES"
	default:
		return "UNKNOWN"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) valid() bool {
	return s <= Spades
}

// ParseSuit parses a suit symbol (♦♣♥♠) or letter (d, c, h, s).
func ParseSuit(symbol string) (Suit, error) {
	switch strings.ToLower(symbol) {
	case "♦", "d":
		return Diamonds, nil
	case "♣", "c":
		return Clubs, nil
	case "♥", "h":
		return Hearts, nil
	case "♠", "s":
		return Spades, nil
	}
	return 0, fmt.Errorf("%w: unknown suit %q", ErrInvalidCard, symbol)
}

// Rank represents a card rank, 1 (Ace) through 13 (King).
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the display form of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r.valid() {
		return strconv.Itoa(int(r))
	}
	return "?"
}

func (r Rank) valid() bool {
	return r >= Ace && r <= King
}

// Strength maps a rank onto the playing order 3,4,...,K,A,2 as 0..12.
func (r Rank) Strength() int {
	return (int(r) + 10) % 13
}

// ParseRank parses "A", "2".."10", "T", "J", "Q" or "K" (case-insensitive).
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 2 || n > 10 {
		return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidCard, s)
	}
	return Rank(n), nil
}

// Card is an immutable playing card. Two cards are the same card when suit
// and rank match.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a card, rejecting ranks outside 1..13 and unknown suits.
func NewCard(suit Suit, rank Rank) (Card, error) {
	if !suit.valid() {
		return Card{}, fmt.Errorf("%w: suit %d", ErrInvalidCard, suit)
	}
	if !rank.valid() {
		return Card{}, fmt.Errorf("%w: rank %d", ErrInvalidCard, rank)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// LowestCard is the 3 of Diamonds, which must open the first round.
var LowestCard = Card{Suit: Diamonds, Rank: Three}

// String returns the string representation of a card (e.g., "10♦")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Valid reports whether the card has a known suit and rank.
func (c Card) Valid() bool {
	return c.Suit.valid() && c.Rank.valid()
}

// Strength returns the rank strength, 0 for a 3 up to 12 for a 2.
func (c Card) Strength() int {
	return c.Rank.Strength()
}

// Value returns a unique ordinal for the card under the playing order; suits
// break ties within a rank.
func (c Card) Value() int {
	return c.Strength()*4 + int(c.Suit)
}

// Compare orders cards by rank strength then suit. It returns a negative
// number when a is weaker than b, zero when equal and positive otherwise.
func Compare(a, b Card) int {
	return cmp.Compare(a.Value(), b.Value())
}

// Max returns the stronger of two cards
func Max(a, b Card) Card {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// Sort orders cards from weakest to strongest in place.
func Sort(cards []Card) {
	slices.SortStableFunc(cards, Compare)
}

// Highest returns the strongest card in a non-empty slice.
func Highest(cards []Card) (Card, bool) {
	if len(cards) == 0 {
		return Card{}, false
	}
	return slices.MaxFunc(cards, Compare), true
}

// ParseCard parses a single card such as "3d", "10♦", "Td" or "as".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	rank, err := ParseRank(string(runes[:len(runes)-1]))
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(string(runes[len(runes)-1]))
	if err != nil {
		return Card{}, err
	}
	return NewCard(suit, rank)
}

// ParseCards parses a list of cards separated by spaces or commas.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for i, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// FormatCards joins cards with spaces
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
