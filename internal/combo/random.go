package combo

import (
	"fmt"
	"math/rand/v2"

	"github.com/lox/tienlen/internal/deck"
)

// RandomHand draws a random hand of the given type from the cards left in d
// and removes those cards from the deck. It fails with ErrInvalidHand when
// the deck cannot supply that type.
func RandomHand(d *deck.Deck, rng *rand.Rand, rules Rules, typ Type) (Hand, error) {
	if !typ.Valid() {
		return Hand{}, fmt.Errorf("%w: cannot draw a %s", ErrInvalidHand, typ)
	}
	candidates := rules.Discover(d.Cards())[typ]
	if len(candidates) == 0 {
		return Hand{}, fmt.Errorf("%w: deck of %d cards holds no %s", ErrInvalidHand, d.Len(), typ)
	}
	h := candidates[rng.IntN(len(candidates))]
	d.RemoveCards(h.cards...)
	return h, nil
}
