package tui

import (
	"strings"

	"github.com/lox/tienlen/internal/combo"
	"github.com/lox/tienlen/internal/deck"
)

// Card renders one card, red for diamonds and hearts
func (t Theme) Card(c deck.Card) string {
	if c.IsRed() {
		return t.RedCard.Render(c.String())
	}
	return t.BlackCard.Render(c.String())
}

// Cards renders a bracketed list of cards
func (t Theme) Cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}
	formatted := make([]string, len(cards))
	for i, c := range cards {
		formatted[i] = t.Card(c)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// Hand renders a combination as its type followed by its cards
func (t Theme) Hand(h combo.Hand) string {
	if h.IsZero() {
		return t.Info.Render("-")
	}
	formatted := make([]string, 0, h.Len())
	for _, c := range h.Cards() {
		formatted = append(formatted, t.Card(c))
	}
	return t.HandInfo.Render(h.Type().String()) + " " + strings.Join(formatted, " ")
}
