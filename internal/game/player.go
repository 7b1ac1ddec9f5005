package game

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/lox/tienlen/internal/combo"
	"github.com/lox/tienlen/internal/deck"
)

// ErrIllegalMove is returned when a play is rejected for the current turn.
var ErrIllegalMove = errors.New("illegal move")

// Kind distinguishes live players from computer players
type Kind int

const (
	Computer Kind = iota
	Human
)

func (k Kind) String() string {
	if k == Human {
		return "human"
	}
	return "computer"
}

// SubCombo is a playable combination found in a player's cards along with
// the rank it is built from.
type SubCombo struct {
	Hand combo.Hand
	Rank deck.Rank
}

// PlayResult describes an accepted play
type PlayResult struct {
	Player    string
	Hand      combo.Hand
	Remaining int
}

// Player holds a seat's cards and per-round pass flag.
type Player struct {
	Name string
	Kind Kind

	cards  []deck.Card
	combos map[combo.Type][]SubCombo
	passed bool
	rules  combo.Rules
}

// NewPlayer creates a player with no cards
func NewPlayer(name string, kind Kind) *Player {
	return &Player{Name: name, Kind: kind, rules: combo.Standard}
}

// Deal gives the player ownership of cards, replacing any held.
func (p *Player) Deal(cards []deck.Card) {
	p.cards = slices.Clone(cards)
	deck.Sort(p.cards)
	p.combos = nil
}

// Cards returns a copy of the held cards, weakest first
func (p *Player) Cards() []deck.Card {
	return slices.Clone(p.cards)
}

// CardCount returns how many cards the player still holds
func (p *Player) CardCount() int {
	return len(p.cards)
}

// Holds reports whether the player holds every given card
func (p *Player) Holds(cards ...deck.Card) bool {
	for _, c := range cards {
		if !slices.Contains(p.cards, c) {
			return false
		}
	}
	return true
}

// RemoveCards drops the given cards from the player's holding and returns
// how many were removed.
func (p *Player) RemoveCards(cards ...deck.Card) int {
	before := len(p.cards)
	p.cards = slices.DeleteFunc(p.cards, func(c deck.Card) bool {
		return slices.Contains(cards, c)
	})
	if removed := before - len(p.cards); removed > 0 {
		p.combos = nil
		return removed
	}
	return 0
}

// CalculateCombos rebuilds the player's available combinations from the
// cards currently held.
func (p *Player) CalculateCombos() map[combo.Type][]SubCombo {
	found := p.rules.Discover(p.cards)
	p.combos = make(map[combo.Type][]SubCombo, len(found))
	for typ, hands := range found {
		subs := make([]SubCombo, len(hands))
		for i, h := range hands {
			subs[i] = SubCombo{Hand: h, Rank: h.Max().Rank}
		}
		p.combos[typ] = subs
	}
	return p.combos
}

// Combos returns the available combinations of one type, weakest first.
func (p *Player) Combos(typ combo.Type) []SubCombo {
	if p.combos == nil {
		p.CalculateCombos()
	}
	return p.combos[typ]
}

// LegalMoves lists every discovered combination the player may play this
// turn. A leader may play anything, except that the opening play of the
// game must include the lowest card when the player holds it. A follower
// must beat toBeat.
func (p *Player) LegalMoves(toBeat combo.Hand, round int) []combo.Hand {
	if p.combos == nil {
		p.CalculateCombos()
	}
	opening := p.mustOpen(toBeat, round)

	var moves []combo.Hand
	for _, typ := range slices.Sorted(maps.Keys(p.combos)) {
		for _, sub := range p.combos[typ] {
			h := sub.Hand
			switch {
			case opening && !h.Contains(deck.LowestCard):
				continue
			case !toBeat.IsZero() && !h.Beats(toBeat):
				continue
			}
			moves = append(moves, h)
		}
	}
	return moves
}

// MoveStrings renders legal moves the way a human would type them
func MoveStrings(moves []combo.Hand) []string {
	out := make([]string, len(moves))
	for i, h := range moves {
		out[i] = fmt.Sprintf("%s (%s)", deck.FormatCards(h.Cards()), h.Type())
	}
	return out
}

// mustOpen reports whether this play is the first of the game and the
// player holds the lowest card.
func (p *Player) mustOpen(toBeat combo.Hand, round int) bool {
	return round == 0 && toBeat.IsZero() && p.Holds(deck.LowestCard)
}

// CheckOpening rejects an opening play that leaves out the lowest card.
func (p *Player) CheckOpening(h combo.Hand, toBeat combo.Hand, round int) error {
	if p.mustOpen(toBeat, round) && !h.Contains(deck.LowestCard) {
		return fmt.Errorf("%w: the first play must include %s", ErrIllegalMove, deck.LowestCard)
	}
	return nil
}

// PlayCombo validates h against the hand to beat and, if legal, removes its
// cards from the player. A zero toBeat means the player is leading.
func (p *Player) PlayCombo(h combo.Hand, toBeat combo.Hand) (PlayResult, error) {
	if h.IsZero() {
		return PlayResult{}, fmt.Errorf("%w: nothing to play", ErrIllegalMove)
	}
	if !p.Holds(h.Cards()...) {
		return PlayResult{}, fmt.Errorf("%w: %s is not in your hand", ErrIllegalMove, p.missing(h.Cards()))
	}
	if got := h.Classify(); got != h.Type() {
		return PlayResult{}, fmt.Errorf("%w: %s is not a %s", ErrIllegalMove, deck.FormatCards(h.Cards()), h.Type())
	}
	if !toBeat.IsZero() {
		if h.Len() != toBeat.Len() {
			return PlayResult{}, fmt.Errorf("%w: must play %d cards to follow %s", ErrIllegalMove, toBeat.Len(), toBeat)
		}
		if !h.Beats(toBeat) {
			return PlayResult{}, fmt.Errorf("%w: %s does not beat %s", ErrIllegalMove, h, toBeat)
		}
	}

	p.RemoveCards(h.Cards()...)
	return PlayResult{Player: p.Name, Hand: h, Remaining: len(p.cards)}, nil
}

func (p *Player) missing(cards []deck.Card) string {
	var out []string
	for _, c := range cards {
		if !slices.Contains(p.cards, c) {
			out = append(out, c.String())
		}
	}
	return strings.Join(out, " ")
}

// AutoPlay chooses and plays the computer's preferred move. It returns
// false when the player has nothing legal to play and must pass.
func (p *Player) AutoPlay(toBeat combo.Hand, round int) (PlayResult, bool) {
	h, ok := ChooseMove(p.LegalMoves(toBeat, round), toBeat)
	if !ok {
		return PlayResult{}, false
	}
	res, err := p.PlayCombo(h, toBeat)
	if err != nil {
		return PlayResult{}, false
	}
	return res, true
}

// Pass withdraws the player from the rest of the round
func (p *Player) Pass() { p.passed = true }

// Passed reports whether the player has passed this round
func (p *Player) Passed() bool { return p.passed }

// ResetRound clears the pass flag at a round boundary
func (p *Player) ResetRound() { p.passed = false }

// lowestCard returns the weakest card held
func (p *Player) lowestCard() (deck.Card, bool) {
	if len(p.cards) == 0 {
		return deck.Card{}, false
	}
	return p.cards[0], true
}
