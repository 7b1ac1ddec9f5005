package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/tienlen/internal/combo"
	"github.com/lox/tienlen/internal/deck"
	"github.com/lox/tienlen/internal/game"
	"github.com/lox/tienlen/internal/randutil"
	"github.com/lox/tienlen/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games      int
	Players    int
	Workers    int
	Seed       int64
	PassChance float64
	Rules      combo.Rules
	Timeout    time.Duration // per game; zero disables
	Logger     *log.Logger

	// Progress, when set, is called after each finished game. It may be
	// called from several goroutines at once.
	Progress func()
}

// Simulator plays batches of computer-only games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Simulator{config: config}
}

// Run plays every game and returns the aggregated results. Each game gets
// its own seed derived from the configured one, so the results do not
// depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	cfg := s.config
	if cfg.Games < 1 {
		return nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if cfg.Players < game.MinPlayers || cfg.Players > game.MaxPlayers {
		return nil, fmt.Errorf("players must be between %d and %d, got %d", game.MinPlayers, game.MaxPlayers, cfg.Players)
	}

	results := make([]statistics.GameResult, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := range cfg.Games {
		seed := randutil.Derive(cfg.Seed, i)
		g.Go(func() error {
			result, err := s.PlayGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			if cfg.Progress != nil {
				cfg.Progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// PlayGame plays one full game between computer players from seed
func (s *Simulator) PlayGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	cfg := s.config
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	rng := randutil.New(seed)
	d := deck.New()
	d.Shuffle(rng)

	names := game.NewNamePool(game.DefaultNames, nil)
	players := make([]*game.Player, cfg.Players)
	for i := range players {
		name, err := names.Take()
		if err != nil {
			return statistics.GameResult{}, err
		}
		players[i] = game.NewPlayer(name, game.Computer)
	}

	g, err := game.NewGame(players, d,
		game.WithRules(cfg.Rules),
		game.WithStrategy(game.Strategy{PassChance: cfg.PassChance, Rand: rng}),
		game.WithLogger(cfg.Logger),
	)
	if err != nil {
		return statistics.GameResult{}, err
	}

	leader := seatOf(players, g.Leader())
	plays := 0
	for !g.IsGameOver() {
		res, err := g.PlayRound(ctx)
		if err != nil {
			return statistics.GameResult{}, err
		}
		plays += len(res.Plays)
	}

	result := statistics.GameResult{
		Seed:      seed,
		Seats:     len(players),
		Winner:    seatOf(players, g.Winner()),
		Leader:    leader,
		Rounds:    g.Round() + 1,
		Plays:     plays,
		CardsLeft: make([]int, len(players)),
	}
	for i, p := range players {
		result.CardsLeft[i] = p.CardCount()
	}
	cfg.Logger.Debug("Game finished", "seed", seed, "winner", g.Winner().Name, "rounds", result.Rounds)
	return result, nil
}

func seatOf(players []*game.Player, p *game.Player) int {
	for i, candidate := range players {
		if candidate == p {
			return i
		}
	}
	return -1
}

// Run is a convenience function for running a simulation
func Run(ctx context.Context, config Config) (*statistics.Statistics, error) {
	return New(config).Run(ctx)
}

// PrintSummary prints a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, players int) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS (%d players) ===\n", players)
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)
	fmt.Fprintf(w, "Plays: %d (%.1f per game)\n", stats.Plays, float64(stats.Plays)/float64(stats.Games))

	fmt.Fprintf(w, "\n=== ROUNDS PER GAME ===\n")
	fmt.Fprintf(w, "Mean: %.2f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== SEAT ANALYSIS ===\n")
	fmt.Fprintf(w, "Opening seat won %.1f%% of games\n", stats.OpenerWinRate()*100)
	for seat := 0; seat < players && seat < statistics.MaxSeats; seat++ {
		ss := stats.SeatResults[seat]
		if ss.Games == 0 {
			continue
		}
		fmt.Fprintf(w, "Seat %d: %d wins (%.1f%%), opened %d, %.1f cards left per game\n",
			seat+1, ss.Wins, stats.WinRate(seat)*100, ss.Opened, float64(ss.CardsLeft)/float64(ss.Games))
	}
}
