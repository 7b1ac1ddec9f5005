package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// Size is the number of cards in a standard deck
const Size = 52

var (
	// ErrDeckSizeExceeded is returned when a deck is built from more than 52 cards.
	ErrDeckSizeExceeded = errors.New("deck size exceeded")
	// ErrNotEnoughCards is returned when dealing more cards than remain.
	ErrNotEnoughCards = errors.New("not enough cards in deck")
)

// Deck is an ordered pool of unique cards. It only ever shrinks.
type Deck struct {
	cards []Card
}

// New creates a standard 52-card deck ordered by suit then rank
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, Size)}
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, Card{Suit: suit, Rank: rank})
		}
	}
	return d
}

// NewFromCards builds a deck from an externally supplied card list. The
// list is copied; invalid or duplicate cards and lists longer than 52 are
// rejected.
func NewFromCards(cards []Card) (*Deck, error) {
	if len(cards) > Size {
		return nil, fmt.Errorf("%w: %d cards, maximum is %d", ErrDeckSizeExceeded, len(cards), Size)
	}
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidCard, c)
		}
		seen[c] = true
	}
	return &Deck{cards: slices.Clone(cards)}, nil
}

// Shuffle randomizes the order of the remaining cards
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Sort orders the remaining cards from weakest (3♦) to strongest (2♠)
func (d *Deck) Sort() {
	Sort(d.cards)
}

// Deal removes and returns n cards from the front of the deck. The returned
// slice is owned by the caller.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughCards, n, len(d.cards))
	}
	dealt := slices.Clone(d.cards[:n])
	d.cards = slices.Delete(d.cards, 0, n)
	return dealt, nil
}

// DealHand deals n cards and returns them sorted
func (d *Deck) DealHand(n int) ([]Card, error) {
	cards, err := d.Deal(n)
	if err != nil {
		return nil, err
	}
	Sort(cards)
	return cards, nil
}

// RemoveCards removes the given cards by identity and returns how many were
// actually present.
func (d *Deck) RemoveCards(cards ...Card) int {
	before := len(d.cards)
	d.cards = slices.DeleteFunc(d.cards, func(c Card) bool {
		return slices.Contains(cards, c)
	})
	return before - len(d.cards)
}

// Has reports whether the card is still in the deck
func (d *Deck) Has(c Card) bool {
	return slices.Contains(d.cards, c)
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards in deck order
func (d *Deck) Cards() []Card {
	return slices.Clone(d.cards)
}
