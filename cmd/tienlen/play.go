package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/tienlen/internal/combo"
	"github.com/lox/tienlen/internal/config"
	"github.com/lox/tienlen/internal/deck"
	"github.com/lox/tienlen/internal/game"
	"github.com/lox/tienlen/internal/onboarding"
	"github.com/lox/tienlen/internal/randutil"
	"github.com/lox/tienlen/internal/tui"
)

type PlayCmd struct {
	Computers   int     `default:"-1" help:"Computer opponents, 1 to 3 (negative uses the config, 0 fills the table)"`
	PassChance  float64 `default:"-1" help:"Chance a computer withholds a playable move (negative uses the config)"`
	TurnTimeout string  `help:"Time allowed for each of your moves, e.g. 45s (empty uses the config)"`
	Name        string  `help:"Skip the welcome dialogue and play under this name"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := openLog(cfg.Log, "tienlen")
	if err != nil {
		return err
	}
	defer closeLog()

	if g.Plain {
		tui.DisableStyling()
	}
	theme := tui.NewTheme(tui.NewRenderer(os.Stdout, g.Plain))
	fmt.Println(theme.Header.Padding(0, 1).Render("♠ ♥ Tiến Lên ♦ ♣"))
	fmt.Println()

	ctx, cancel := signalContext()
	defer cancel()

	human, err := c.humanName(ctx, cfg, logger)
	if err != nil {
		return err
	}

	s := seed(cfg)
	rng := randutil.New(s)
	logger.Info("Starting game", "human", human, "seed", s)

	players, err := seatPlayers(cfg, human, rng)
	if err != nil {
		return err
	}

	timeout, err := cfg.TurnTimeout()
	if err != nil {
		return err
	}
	picker := tui.NewMovePicker(theme, os.Stdin, os.Stdout, logger)
	agent := game.NewHumanAgent(picker, nil, timeout, logger)

	bus := game.NewEventBus()
	bus.Subscribe(tui.NewEventRenderer(os.Stdout, theme, human))

	d := deck.New()
	d.Shuffle(rng)
	tbl, err := game.NewGame(players, d,
		game.WithAgent(human, agent),
		game.WithStrategy(game.Strategy{PassChance: cfg.Game.PassChance, Rand: rng}),
		game.WithRules(combo.Rules{StrictFourOfAKind: cfg.Game.StrictFourOfAKind}),
		game.WithMaxAttempts(cfg.Game.MaxAttempts),
		game.WithEventBus(bus),
		game.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	fmt.Println(theme.HandInfo.Render("Your hand: ") + theme.Cards(players[0].Cards()))
	fmt.Println(theme.CombosTable(players[0]))

	winner, err := tbl.Play(ctx)
	switch {
	case errors.Is(err, tui.ErrQuit), errors.Is(err, context.Canceled):
		logger.Info("Player left the table", "round", tbl.Round())
		fmt.Println(theme.Info.Render("Thanks for playing."))
		return nil
	case err != nil:
		logger.Error("Game aborted", "error", err)
		return err
	}

	if winner.Name == human {
		tui.Announce("GAME OVER", "You shed every card. You win!")
	} else {
		tui.Announce("GAME OVER", fmt.Sprintf("%s wins. Better luck next time!", winner.Name))
	}
	return nil
}

func (c *PlayCmd) apply(cfg *config.Config) {
	if c.Computers >= 0 {
		cfg.Game.ComputerPlayers = c.Computers
	}
	if c.PassChance >= 0 {
		cfg.Game.PassChance = c.PassChance
	}
	if c.TurnTimeout != "" {
		cfg.Game.TurnTimeout = c.TurnTimeout
	}
}

// humanName runs the welcome dialogue unless a name was given
func (c *PlayCmd) humanName(ctx context.Context, cfg *config.Config, logger *log.Logger) (string, error) {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name, nil
	}
	setup, err := onboarding.Run(ctx, *cfg.Script, tui.NewPrompter(),
		onboarding.WithMaxAttempts(cfg.Game.MaxAttempts),
		onboarding.WithLogger(logger),
	)
	if err != nil {
		return "", err
	}
	return setup.Names[0], nil
}
