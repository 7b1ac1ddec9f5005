package combo

import (
	"testing"

	"github.com/lox/tienlen/internal/deck"
	"github.com/lox/tienlen/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hand(t *testing.T, s string) Hand {
	t.Helper()
	h, err := New(deck.MustParseCards(s))
	require.NoError(t, err, "building %q", s)
	return h
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected Type
		wantErr  bool
	}{
		{name: "single", cards: "3d", expected: Single},
		{name: "pair", cards: "3d 3s", expected: Pair},
		{name: "mismatched pair", cards: "3d 4d", wantErr: true},
		{name: "triple", cards: "Kd Kc Kh", expected: Triple},
		{name: "four cards", cards: "Kd Kc Kh Ks", wantErr: true},
		{name: "straight", cards: "3c 4h 5s 6d 7c", expected: Straight},
		{name: "straight through two", cards: "Jc Qd Kh As 2d", expected: Straight},
		{name: "ace low is not a straight", cards: "Ac 2d 3h 4s 5d", wantErr: true},
		{name: "flush", cards: "2d 5d 8d Jd Kd", expected: Flush},
		{name: "full house", cards: "9d 9c 9h 2d 2c", expected: FullHouse},
		{name: "four of a kind", cards: "4d 4c 4h 4s 3d", expected: FourOfAKind},
		{name: "straight flush", cards: "3d 4d 5d 6d 7d", expected: StraightFlush},
		{name: "unsorted input", cards: "7d 3d 6d 4d 5d", expected: StraightFlush},
		{name: "five card rubbish", cards: "3d 5c 7h 9s Jd", wantErr: true},
		{name: "duplicate card", cards: "3d 3d", wantErr: true},
		{name: "six cards", cards: "3d 4d 5d 6d 7d 8d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(deck.MustParseCards(tt.cards))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidHand)
				assert.Equal(t, Invalid, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := Classify(nil)
	assert.ErrorIs(t, err, ErrInvalidHand)
}

func TestFiveCardHandsMatchAtMostOneType(t *testing.T) {
	for seed := int64(1); seed <= 300; seed++ {
		d := deck.New()
		d.Shuffle(randutil.New(seed))
		cards, err := d.DealHand(5)
		require.NoError(t, err)

		matches := 0
		for _, typ := range FiveCardTypes {
			if Standard.Matches(typ, cards) {
				matches++
			}
		}
		require.LessOrEqual(t, matches, 1, "%s matched %d types", deck.FormatCards(cards), matches)

		_, err = Classify(cards)
		assert.Equal(t, matches == 1, err == nil, "%s", deck.FormatCards(cards))
	}
}

func TestDiscoveredFiveCardHandsMatchExactlyOneType(t *testing.T) {
	for typ, hands := range Discover(deck.New().Cards()) {
		if !typ.IsFiveCard() {
			continue
		}
		for _, h := range hands {
			matches := 0
			for _, candidate := range FiveCardTypes {
				if Standard.Matches(candidate, h.Cards()) {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "%s", h)
			assert.Equal(t, typ, h.Classify())
		}
	}
}

func TestNewRejectsContradictoryType(t *testing.T) {
	straight := deck.MustParseCards("3c 4h 5s 6d 7c")

	_, err := New(straight, Flush)
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = New(straight, Single)
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = New(deck.MustParseCards("3d 3c 3h"), Pair)
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = New(straight, Straight, Flush)
	assert.ErrorIs(t, err, ErrInvalidHand)

	h, err := New(straight, Straight)
	require.NoError(t, err)
	assert.Equal(t, Straight, h.Type())
}

func TestStrictFourOfAKind(t *testing.T) {
	cards := deck.MustParseCards("4d 4c 4h 4s 3d")
	strict := Rules{StrictFourOfAKind: true}

	_, err := strict.Classify(cards)
	assert.ErrorIs(t, err, ErrInvalidHand, "four cards of one rank always span four suits")

	typ, err := Standard.Classify(cards)
	require.NoError(t, err)
	assert.Equal(t, FourOfAKind, typ)
}

func TestSinglesOrdering(t *testing.T) {
	for rank := deck.Ace; rank <= deck.King; rank++ {
		for i := 0; i < len(deck.Suits); i++ {
			for j := i + 1; j < len(deck.Suits); j++ {
				lo := MustNew([]deck.Card{{Suit: deck.Suits[i], Rank: rank}})
				hi := MustNew([]deck.Card{{Suit: deck.Suits[j], Rank: rank}})
				assert.True(t, hi.Beats(lo), "%s should beat %s", hi, lo)
				assert.False(t, lo.Beats(hi), "%s should not beat %s", lo, hi)
			}
		}
	}

	two := hand(t, "2d")
	ace := hand(t, "As")
	assert.True(t, two.Beats(ace))
	for rank := deck.Three; rank <= deck.King; rank++ {
		numeral := MustNew([]deck.Card{{Suit: deck.Spades, Rank: rank}})
		assert.True(t, ace.Beats(numeral), "ace should beat %s", numeral)
		assert.True(t, two.Beats(numeral), "two should beat %s", numeral)
	}
}

func TestBeatsRequiresSameSize(t *testing.T) {
	single := hand(t, "2s")
	pair := hand(t, "3d 3c")
	triple := hand(t, "4d 4c 4h")

	assert.False(t, single.Beats(pair))
	assert.False(t, pair.Beats(single))
	assert.False(t, triple.Beats(pair))
	assert.False(t, single.Beats(Hand{}))
	assert.False(t, Hand{}.Beats(single))

	assert.True(t, hand(t, "3h 3s").Beats(pair))
	assert.True(t, hand(t, "5d 5c 5h").Beats(triple))
}

func TestSeverityOrdering(t *testing.T) {
	ordered := []Hand{
		hand(t, "3c 4h 5s 6d 7c"), // straight
		hand(t, "2d 5d 8d Jd Kd"), // flush
		hand(t, "9d 9c 9h 2d 2c"), // full house
		hand(t, "4d 4c 4h 4s 3d"), // four of a kind
		hand(t, "3h 4h 5h 6h 7h"), // straight flush
	}
	for i, h := range ordered {
		require.Equal(t, FiveCardTypes[i], h.Type())
	}

	pairs := 0
	for i := range ordered {
		for j := i + 1; j < len(ordered); j++ {
			lo, hi := ordered[i], ordered[j]
			assert.True(t, hi.Beats(lo), "%s should beat %s", hi, lo)
			assert.False(t, lo.Beats(hi), "%s should not beat %s", lo, hi)
			pairs++
		}
	}
	assert.Equal(t, 10, pairs)
}

func TestSameTypeFiveCardRanking(t *testing.T) {
	assert.True(t, hand(t, "4c 5h 6s 7d 8c").Beats(hand(t, "3c 4h 5s 6d 7s")))
	assert.True(t, hand(t, "3c 4h 5s 6d 7s").Beats(hand(t, "3d 4d 5s 6d 7c")), "suit of highest card breaks ties")

	low := hand(t, "3d 3c 3h 2d 2c")
	high := hand(t, "9d 9c 9h 4d 4c")
	assert.True(t, high.Beats(low), "full house ranks by its triple, not its pair")

	assert.True(t, hand(t, "5d 5c 5h 5s 3d").Beats(hand(t, "4d 4c 4h 4s 2s")))
}

func TestEndToEndComparisons(t *testing.T) {
	straightFlush := hand(t, "3d 4d 5d 6d 7d")
	straight := hand(t, "3c 4h 5s 6d 7c")
	flush := hand(t, "2d 5d 8d Jd Kd")

	assert.Equal(t, StraightFlush, straightFlush.Classify())
	assert.True(t, straightFlush.Beats(straight))
	assert.True(t, straightFlush.Beats(flush))

	fullHouse := hand(t, "9d 9c 9h 2d 2c")
	assert.Equal(t, FullHouse, fullHouse.Type())
	assert.Equal(t, deck.Card{Suit: deck.Hearts, Rank: deck.Nine}, fullHouse.Max())
	assert.True(t, fullHouse.Beats(hand(t, "Kd Qd 9d 5d 4d")))
	assert.True(t, fullHouse.Beats(hand(t, "Kd Ac 2h Qd Jc")))
	assert.False(t, fullHouse.Beats(hand(t, "3d 3c 3h 3s 4d")))
	assert.True(t, hand(t, "3d 3c 3h 3s 4d").Beats(fullHouse))
}

func TestMax(t *testing.T) {
	assert.Equal(t, deck.Card{Suit: deck.Clubs, Rank: deck.Two}, hand(t, "2c").Max())
	assert.Equal(t, deck.Card{Suit: deck.Spades, Rank: deck.King}, hand(t, "Ks Kd").Max())
	assert.Equal(t, deck.Card{Suit: deck.Spades, Rank: deck.Four}, hand(t, "4d 4c 4h 4s 2s").Max())
	assert.Equal(t, deck.Card{Suit: deck.Hearts, Rank: deck.Three}, hand(t, "3d 3c 3h 2d 2c").Max())
	assert.Equal(t, deck.Card{Suit: deck.Diamonds, Rank: deck.Two}, hand(t, "Jc Qd Kh As 2d").Max())
}

func TestJoin(t *testing.T) {
	t.Run("triple and pair make a full house", func(t *testing.T) {
		joined, err := hand(t, "9d 9c 9h").Join(hand(t, "2d 2c"))
		require.NoError(t, err)
		assert.Equal(t, FullHouse, joined.Type())
		assert.Equal(t, 5, joined.Len())
	})

	t.Run("two singles of a rank make a pair", func(t *testing.T) {
		joined, err := hand(t, "3c").Join(hand(t, "3d"))
		require.NoError(t, err)
		assert.Equal(t, Pair, joined.Type())
		assert.Equal(t, deck.MustParseCards("3d 3c"), joined.Cards())
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := hand(t, "9d 9c 9h 2d 2c").Join(hand(t, "3s"))
		assert.ErrorIs(t, err, ErrHandOverflow)
		assert.ErrorIs(t, err, ErrInvalidHand)
	})

	t.Run("overlap", func(t *testing.T) {
		_, err := hand(t, "3d 3c").Join(hand(t, "3d"))
		assert.ErrorIs(t, err, ErrHandOverlap)
		assert.ErrorIs(t, err, ErrInvalidHand)
	})

	t.Run("result must classify", func(t *testing.T) {
		_, err := hand(t, "3d").Join(hand(t, "4d"))
		assert.ErrorIs(t, err, ErrInvalidHand)
	})
}

func TestHandAccessors(t *testing.T) {
	h := hand(t, "3s 3d")
	assert.Equal(t, "Pair 3♦ 3♠", h.String())
	assert.True(t, h.Contains(deck.LowestCard))
	assert.False(t, h.Contains(deck.Card{Suit: deck.Clubs, Rank: deck.Three}))
	assert.Equal(t, "-", Hand{}.String())
	assert.True(t, Hand{}.IsZero())

	cards := h.Cards()
	cards[0] = deck.Card{Suit: deck.Spades, Rank: deck.Two}
	assert.True(t, h.Contains(deck.LowestCard), "Cards must return a copy")
	assert.True(t, h.Equal(hand(t, "3d 3s")))
}
