package game

import (
	"testing"

	"github.com/lox/tienlen/internal/combo"
	"github.com/lox/tienlen/internal/deck"
	"github.com/lox/tienlen/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayer(cards string) *Player {
	p := NewPlayer("Obi", Computer)
	p.Deal(deck.MustParseCards(cards))
	return p
}

func TestCalculateCombos(t *testing.T) {
	p := newTestPlayer("9s 3d 3c 3h 4d 5s 6c 7h 9h")
	combos := p.CalculateCombos()

	assert.Len(t, combos[combo.Single], 9)
	assert.Len(t, combos[combo.Pair], 4)
	require.Len(t, combos[combo.Triple], 1)
	assert.Equal(t, deck.Three, combos[combo.Triple][0].Rank)
	require.Len(t, combos[combo.FullHouse], 1)
	assert.Equal(t, deck.Three, combos[combo.FullHouse][0].Rank, "full house is built from its triple")
	assert.Len(t, p.Combos(combo.Straight), 2)

	p.RemoveCards(deck.MustParseCards("3h")...)
	assert.Empty(t, p.Combos(combo.Triple), "combos follow the cards held")
}

func TestPlayerDealSortsAndCopies(t *testing.T) {
	cards := deck.MustParseCards("2s 3d Kh")
	p := NewPlayer("Obi", Computer)
	p.Deal(cards)
	cards[0] = deck.LowestCard

	assert.Equal(t, "3♦ K♥ 2♠", deck.FormatCards(p.Cards()))
	assert.True(t, p.Holds(deck.MustParseCards("2s Kh")...))
	assert.False(t, p.Holds(deck.MustParseCards("2s 3c")...))
}

func TestPlayCombo(t *testing.T) {
	single := func(s string) combo.Hand { return combo.MustNew(deck.MustParseCards(s)) }

	tests := []struct {
		name    string
		hand    combo.Hand
		toBeat  combo.Hand
		wantErr bool
	}{
		{name: "lead a pair", hand: combo.MustNew(deck.MustParseCards("3d 3c"))},
		{name: "beat a single", hand: single("5s"), toBeat: single("5d")},
		{name: "card not held", hand: single("2s"), wantErr: true},
		{name: "wrong size", hand: combo.MustNew(deck.MustParseCards("3d 3c")), toBeat: single("4s"), wantErr: true},
		{name: "does not beat", hand: single("4d"), toBeat: single("9s"), wantErr: true},
		{name: "empty", hand: combo.Hand{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer("3d 3c 4d 5s 6c 7h 9h")
			res, err := p.PlayCombo(tt.hand, tt.toBeat)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrIllegalMove)
				assert.Equal(t, 7, p.CardCount(), "rejected plays keep the cards")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 7-tt.hand.Len(), res.Remaining)
			assert.Equal(t, "Obi", res.Player)
			assert.False(t, p.Holds(tt.hand.Cards()...))
		})
	}
}

func TestCheckOpening(t *testing.T) {
	p := newTestPlayer("3d 4d 9h")
	four := combo.MustNew(deck.MustParseCards("4d"))

	assert.ErrorIs(t, p.CheckOpening(four, combo.Hand{}, 0), ErrIllegalMove)
	assert.NoError(t, p.CheckOpening(four, combo.Hand{}, 1), "only the first round")
	assert.NoError(t, p.CheckOpening(combo.MustNew(deck.MustParseCards("3d")), combo.Hand{}, 0))

	without := newTestPlayer("4d 9h")
	assert.NoError(t, without.CheckOpening(four, combo.Hand{}, 0))
}

func TestAutoPlay(t *testing.T) {
	t.Run("opening leader sheds the largest combination with 3♦", func(t *testing.T) {
		p := newTestPlayer("3d 3c 4h 5s 6d 7c 9h")
		res, ok := p.AutoPlay(combo.Hand{}, 0)
		require.True(t, ok)
		assert.Equal(t, combo.Straight, res.Hand.Type())
		assert.True(t, res.Hand.Contains(deck.LowestCard))
		assert.Equal(t, 2, res.Remaining)
	})

	t.Run("leader later prefers size then weakness", func(t *testing.T) {
		p := newTestPlayer("4d 4c 9h 9s Kd")
		res, ok := p.AutoPlay(combo.Hand{}, 3)
		require.True(t, ok)
		assert.Equal(t, "4♦ 4♣", deck.FormatCards(res.Hand.Cards()))
	})

	t.Run("follower plays the weakest beating single", func(t *testing.T) {
		p := newTestPlayer("3d 3c 4h 5s 6d 7c 9h")
		res, ok := p.AutoPlay(combo.MustNew(deck.MustParseCards("5d")), 1)
		require.True(t, ok)
		assert.Equal(t, "5♠", res.Hand.Max().String())
	})

	t.Run("follower with nothing higher passes", func(t *testing.T) {
		p := newTestPlayer("3d 3c 4h 5s 6d 7c 9h")
		_, ok := p.AutoPlay(combo.MustNew(deck.MustParseCards("2s")), 1)
		assert.False(t, ok)
		assert.Equal(t, 7, p.CardCount())
	})
}

func TestChooseMovePrefersSameType(t *testing.T) {
	toBeat := combo.MustNew(deck.MustParseCards("3c 4h 5s 6d 7c"))
	straight := combo.MustNew(deck.MustParseCards("9c 10h Js Qd Kc"))
	flush := combo.MustNew(deck.MustParseCards("3h 5h 7h 9h Jh"))

	got, ok := ChooseMove([]combo.Hand{flush, straight}, toBeat)
	require.True(t, ok)
	assert.True(t, got.Equal(straight))

	_, ok = ChooseMove(nil, toBeat)
	assert.False(t, ok)
}

func TestStrategyWithhold(t *testing.T) {
	assert.False(t, Strategy{}.Withhold())
	assert.False(t, Strategy{PassChance: 1}.Withhold(), "no random source means no withholding")
	assert.True(t, Strategy{PassChance: 1, Rand: randutil.New(1)}.Withhold())
	assert.False(t, Strategy{PassChance: 0, Rand: randutil.New(1)}.Withhold())
}

func TestNamePool(t *testing.T) {
	pool := NewNamePool(DefaultNames, randutil.New(9))
	pool.Reserve("Obi")
	assert.Equal(t, len(DefaultNames)-1, pool.Len())

	seen := map[string]bool{}
	for pool.Len() > 0 {
		name, err := pool.Take()
		require.NoError(t, err)
		assert.NotEqual(t, "Obi", name)
		assert.False(t, seen[name], "name %s handed out twice", name)
		seen[name] = true
	}
	_, err := pool.Take()
	assert.ErrorIs(t, err, ErrNoNames)

	ordered := NewNamePool([]string{"Kamsi", "Toby", "Kamsi"}, nil)
	assert.Equal(t, 2, ordered.Len())
	name, err := ordered.Take()
	require.NoError(t, err)
	assert.Equal(t, "Kamsi", name)
}

func TestMoveStrings(t *testing.T) {
	moves := []combo.Hand{combo.MustNew(deck.MustParseCards("3d 3c"))}
	assert.Equal(t, []string{"3♦ 3♣ (Pair)"}, MoveStrings(moves))
}
