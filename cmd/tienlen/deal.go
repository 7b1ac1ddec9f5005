package main

import (
	"fmt"
	"os"

	"github.com/lox/tienlen/internal/combo"
	"github.com/lox/tienlen/internal/deck"
	"github.com/lox/tienlen/internal/game"
	"github.com/lox/tienlen/internal/randutil"
	"github.com/lox/tienlen/internal/tui"
)

type DealCmd struct {
	Cards string `arg:"" optional:"" help:"Cards to inspect, e.g. \"3d 3c 4h\" (deals 13 at random when empty)"`
	Type  string `short:"t" help:"Draw one random combination of this type instead, e.g. full-house"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	rules := combo.Rules{StrictFourOfAKind: cfg.Game.StrictFourOfAKind}
	theme := tui.NewTheme(tui.NewRenderer(os.Stdout, g.Plain))
	rng := randutil.New(seed(cfg))

	if c.Type != "" {
		typ, err := combo.ParseType(c.Type)
		if err != nil {
			return err
		}
		d := deck.New()
		d.Shuffle(rng)
		h, err := combo.RandomHand(d, rng, rules, typ)
		if err != nil {
			return err
		}
		fmt.Println(theme.Hand(h))
		return nil
	}

	var cards []deck.Card
	if c.Cards != "" {
		cards, err = deck.ParseCards(c.Cards)
		if err != nil {
			return err
		}
		if _, err := deck.NewFromCards(cards); err != nil {
			return err
		}
	} else {
		d := deck.New()
		d.Shuffle(rng)
		if cards, err = d.DealHand(game.HandSize); err != nil {
			return err
		}
	}

	p := game.NewPlayer("You", game.Human)
	p.Deal(cards)
	fmt.Println(theme.HandInfo.Render("Hand: ") + theme.Cards(p.Cards()))
	if t, err := rules.Classify(cards); err == nil {
		fmt.Println(theme.Success.Render("Playable as " + t.String()))
	}
	fmt.Println(theme.CombosTable(p))
	return nil
}
