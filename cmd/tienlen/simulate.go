package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/lox/tienlen/internal/combo"
	"github.com/lox/tienlen/internal/simulator"
	"github.com/lox/tienlen/internal/tui"
	"github.com/pterm/pterm"
)

type SimulateCmd struct {
	Games      int           `default:"1000" help:"Number of games to simulate"`
	Players    int           `default:"4" help:"Players per game (2 to 4)"`
	Workers    int           `default:"0" help:"Games played at once (0 for one per CPU)"`
	PassChance float64       `default:"-1" help:"Chance a computer withholds a playable move (negative uses the config)"`
	Timeout    time.Duration `default:"10s" help:"Abort a game that runs longer than this"`
	Quiet      bool          `short:"q" help:"Hide the progress bar"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.PassChance >= 0 {
		cfg.Game.PassChance = c.PassChance
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := openLog(cfg.Log, "simulate")
	if err != nil {
		return err
	}
	defer closeLog()

	if g.Plain {
		tui.DisableStyling()
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	s := seed(cfg)
	logger.Info("Starting simulation", "games", c.Games, "players", c.Players, "workers", workers, "seed", s)

	simCfg := simulator.Config{
		Games:      c.Games,
		Players:    c.Players,
		Workers:    workers,
		Seed:       s,
		PassChance: cfg.Game.PassChance,
		Rules:      combo.Rules{StrictFourOfAKind: cfg.Game.StrictFourOfAKind},
		Timeout:    c.Timeout,
		Logger:     logger,
	}

	if !c.Quiet {
		bar, err := pterm.DefaultProgressbar.WithTotal(c.Games).WithTitle("Simulating").Start()
		if err != nil {
			return fmt.Errorf("failed to start progress bar: %w", err)
		}
		var mu sync.Mutex
		simCfg.Progress = func() {
			mu.Lock()
			defer mu.Unlock()
			bar.Increment()
		}
		defer func() { _, _ = bar.Stop() }()
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	stats, err := simulator.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	simulator.PrintSummary(os.Stdout, stats, c.Players)
	fmt.Printf("\nSeed: %d (replay with --seed %d)\n", s, s)
	pterm.Success.Printfln("%d games in %s (%.0f games/sec)", stats.Games, elapsed.Round(time.Millisecond),
		float64(stats.Games)/elapsed.Seconds())
	return nil
}
