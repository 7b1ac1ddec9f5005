package combo

import (
	"slices"

	"github.com/lox/tienlen/internal/deck"
)

// Discover lists the combinations that can be built from a set of held
// cards, grouped by type and ordered weakest first within each type.
//
// Singles, pairs and triples are enumerated exhaustively per rank. Five-card
// hands come from sequential windows (straights and straight flushes), the
// top and bottom five of each suit (flushes), every quad with the lowest
// spare card, and the best triple joined with the best pair.
func (r Rules) Discover(cards []deck.Card) map[Type][]Hand {
	sorted := slices.Clone(cards)
	deck.Sort(sorted)

	found := make(map[Type][]Hand)
	seen := make(map[string]bool)
	add := func(h Hand) {
		key := deck.FormatCards(h.cards)
		if seen[key] {
			return
		}
		seen[key] = true
		found[h.typ] = append(found[h.typ], h)
	}
	try := func(cs []deck.Card) {
		if h, err := r.New(cs); err == nil {
			add(h)
		}
	}

	byRank := groupByRank(sorted)
	for _, group := range byRank {
		for _, size := range []int{1, 2, 3} {
			for _, subset := range subsets(group, size) {
				try(subset)
			}
		}
	}

	for _, window := range straightWindows(byRank) {
		try(window)
	}
	for _, suited := range groupBySuit(sorted) {
		for _, window := range runs(suited) {
			try(window)
		}
		if len(suited) >= MaxCards {
			try(suited[:MaxCards])
			try(suited[len(suited)-MaxCards:])
		}
	}

	for _, group := range byRank {
		if len(group) != 4 {
			continue
		}
		for _, c := range sorted {
			if c.Rank != group[0].Rank {
				try(append(slices.Clone(group), c))
				break
			}
		}
	}

	if fh, ok := r.bestFullHouse(byRank); ok {
		add(fh)
	}

	for t := range found {
		slices.SortStableFunc(found[t], Compare)
	}
	return found
}

// Discover lists combinations under the standard rules
func Discover(cards []deck.Card) map[Type][]Hand {
	return Standard.Discover(cards)
}

// bestFullHouse joins the strongest triple with the strongest pair of a
// different rank.
func (r Rules) bestFullHouse(byRank [][]deck.Card) (Hand, bool) {
	var triple, pair Hand
	for i := len(byRank) - 1; i >= 0; i-- {
		group := byRank[i]
		if triple.IsZero() && len(group) >= 3 {
			if h, err := r.New(group[len(group)-3:]); err == nil {
				triple = h
				continue
			}
		}
		if pair.IsZero() && len(group) >= 2 {
			if h, err := r.New(group[len(group)-2:]); err == nil {
				pair = h
			}
		}
	}
	if triple.IsZero() || pair.IsZero() {
		return Hand{}, false
	}
	fh, err := triple.Join(pair)
	if err != nil {
		return Hand{}, false
	}
	return fh, true
}

// groupByRank splits sorted cards into runs of equal rank, weakest rank first.
func groupByRank(sorted []deck.Card) [][]deck.Card {
	var groups [][]deck.Card
	for i, c := range sorted {
		if i == 0 || sorted[i-1].Rank != c.Rank {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], c)
	}
	return groups
}

func groupBySuit(sorted []deck.Card) [][]deck.Card {
	groups := make([][]deck.Card, len(deck.Suits))
	for _, c := range sorted {
		groups[c.Suit] = append(groups[c.Suit], c)
	}
	return groups
}

// straightWindows builds five-card runs taking the lowest and then the highest
// card of each rank.
func straightWindows(byRank [][]deck.Card) [][]deck.Card {
	low := make([]deck.Card, len(byRank))
	high := make([]deck.Card, len(byRank))
	for i, group := range byRank {
		low[i] = group[0]
		high[i] = group[len(group)-1]
	}
	return append(runs(low), runs(high)...)
}

// runs returns every five-card window of consecutive strengths in a sorted
// list holding at most one card per rank.
func runs(cards []deck.Card) [][]deck.Card {
	var windows [][]deck.Card
	for i := 0; i+MaxCards <= len(cards); i++ {
		window := cards[i : i+MaxCards]
		if isRun(window) {
			windows = append(windows, slices.Clone(window))
		}
	}
	return windows
}

// subsets returns every k-card subset of cards, preserving order.
func subsets(cards []deck.Card, k int) [][]deck.Card {
	if k > len(cards) {
		return nil
	}
	var out [][]deck.Card
	var walk func(start int, picked []deck.Card)
	walk = func(start int, picked []deck.Card) {
		if len(picked) == k {
			out = append(out, slices.Clone(picked))
			return
		}
		for i := start; i < len(cards); i++ {
			walk(i+1, append(picked, cards[i]))
		}
	}
	walk(0, make([]deck.Card, 0, k))
	return out
}
