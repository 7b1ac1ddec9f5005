package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/tienlen/internal/combo"
	"github.com/lox/tienlen/internal/deck"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
	// HandSize is the number of cards dealt to each player
	HandSize = 13
)

var (
	// ErrInvalidGame is returned when a game cannot be set up.
	ErrInvalidGame = errors.New("invalid game")
	// ErrGameOver is returned when playing a round after the game ended.
	ErrGameOver = errors.New("game is over")
)

// Phase is where the round state machine currently sits
type Phase int

const (
	RoundLeaderToPlay Phase = iota
	AwaitingFollowers
	RoundOver
	GameOver
)

func (p Phase) String() string {
	switch p {
	case RoundLeaderToPlay:
		return "leader to play"
	case AwaitingFollowers:
		return "awaiting followers"
	case RoundOver:
		return "round over"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// RoundResult contains the results of a completed round
type RoundResult struct {
	Round    int
	Winner   string // winner of the round, or of the game when GameOver
	Plays    []PlayResult
	Passes   []string
	GameOver bool
}

// Game runs rounds between 2 to 4 players until one sheds every card.
// It is not safe for concurrent use.
type Game struct {
	players     []*Player
	agents      []Agent
	rules       combo.Rules
	maxAttempts int
	eventBus    EventBus
	logger      *log.Logger
	clock       quartz.Clock

	phase      Phase
	round      int
	leader     int
	lastPlayer int
	lastHand   combo.Hand
	winner     *Player
	started    bool
}

// NewGame validates the players, deals each of them 13 cards from the front
// of d and picks the first leader. The deck is dealt in its current order,
// so shuffle it first for a random game.
func NewGame(players []*Player, d *deck.Deck, opts ...Option) (*Game, error) {
	cfg := &gameConfig{
		agents:      make(map[string]Agent),
		rules:       combo.Standard,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.eventBus == nil {
		cfg.eventBus = NewEventBus()
	}

	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, fmt.Errorf("%w: %d players, need %d to %d", ErrInvalidGame, len(players), MinPlayers, MaxPlayers)
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p == nil || p.Name == "" {
			return nil, fmt.Errorf("%w: every player needs a name", ErrInvalidGame)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrInvalidGame, p.Name)
		}
		seen[p.Name] = true
	}
	if d == nil || d.Len() < HandSize*len(players) {
		have := 0
		if d != nil {
			have = d.Len()
		}
		return nil, fmt.Errorf("%w: %d players need %d cards, deck has %d", ErrInvalidGame, len(players), HandSize*len(players), have)
	}

	agents := make([]Agent, len(players))
	for i, p := range players {
		a := cfg.agents[p.Name]
		if a == nil {
			if p.Kind == Human {
				return nil, fmt.Errorf("%w: human player %q has no agent", ErrInvalidGame, p.Name)
			}
			a = NewComputerAgent(cfg.strategy)
		}
		agents[i] = a
	}

	for _, p := range players {
		cards, err := d.DealHand(HandSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidGame, err)
		}
		p.rules = cfg.rules
		p.Deal(cards)
		p.ResetRound()
	}

	g := &Game{
		players:     slices.Clone(players),
		agents:      agents,
		rules:       cfg.rules,
		maxAttempts: cfg.maxAttempts,
		eventBus:    cfg.eventBus,
		logger:      cfg.logger.WithPrefix("game"),
		clock:       cfg.clock,
		phase:       RoundLeaderToPlay,
	}
	g.leader = g.firstLeader()
	g.lastPlayer = g.leader
	return g, nil
}

// firstLeader returns the seat holding the lowest card, normally 3♦.
func (g *Game) firstLeader() int {
	leader, found := 0, false
	var lowest deck.Card
	for i, p := range g.players {
		c, ok := p.lowestCard()
		if !ok {
			continue
		}
		if !found || deck.Compare(c, lowest) < 0 {
			leader, lowest, found = i, c, true
		}
	}
	return leader
}

// Play runs rounds until the game is over and returns the winner.
func (g *Game) Play(ctx context.Context) (*Player, error) {
	for !g.IsGameOver() {
		if _, err := g.PlayRound(ctx); err != nil {
			return nil, err
		}
	}
	return g.winner, nil
}

// PlayRound runs one round from the leader's play until every other player
// has passed, or until a player sheds their last card.
func (g *Game) PlayRound(ctx context.Context) (RoundResult, error) {
	if g.phase == GameOver {
		return RoundResult{}, ErrGameOver
	}
	if !g.started {
		g.started = true
		g.publishGameStart()
	}

	res := RoundResult{Round: g.round}
	g.lastHand = combo.Hand{}
	g.lastPlayer = g.leader
	g.phase = RoundLeaderToPlay

	leader := g.players[g.leader]
	g.logger.Info("Round started", "round", g.round, "leader", leader.Name)
	g.eventBus.Publish(RoundStartEvent{Round: g.round, Leader: leader.Name, timestamp: g.clock.Now()})

	if err := g.takeTurn(ctx, g.leader, &res); err != nil {
		return res, err
	}
	if g.phase == GameOver {
		return res, nil
	}

	g.phase = AwaitingFollowers
	for idx := g.next(g.leader); idx != g.lastPlayer; idx = g.next(idx) {
		if g.players[idx].Passed() {
			continue
		}
		if err := g.takeTurn(ctx, idx, &res); err != nil {
			return res, err
		}
		if g.phase == GameOver {
			return res, nil
		}
	}

	g.phase = RoundOver
	winner := g.players[g.lastPlayer]
	res.Winner = winner.Name
	for _, p := range g.players {
		p.ResetRound()
	}
	g.logger.Info("Round won", "round", g.round, "winner", winner.Name, "hand", g.lastHand.String())
	g.eventBus.Publish(RoundEndEvent{Round: g.round, Winner: winner.Name, LastHand: g.lastHand, timestamp: g.clock.Now()})

	g.round++
	g.leader = g.lastPlayer
	g.lastHand = combo.Hand{}
	return res, nil
}

func (g *Game) next(idx int) int {
	return (idx + 1) % len(g.players)
}

// takeTurn asks the seat's agent for a move, retrying rejected moves up to
// maxAttempts times. A leader who runs out of attempts auto-plays; a
// follower passes.
func (g *Game) takeTurn(ctx context.Context, idx int, res *RoundResult) error {
	p := g.players[idx]
	agent := g.agents[idx]
	leading := g.lastHand.IsZero()

	var rejected error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		d, err := agent.Decide(ctx, g.turnFor(idx, attempt, rejected))
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if p.Kind == Human && !errors.Is(err, ErrIllegalMove) {
				return fmt.Errorf("reading move for %s: %w", p.Name, err)
			}
			rejected = err
		case d.Pass && !leading:
			g.pass(idx, res, d.Reasoning, d.TimedOut)
			return nil
		case d.Pass && d.TimedOut:
			attempt = g.maxAttempts
			rejected = fmt.Errorf("%w: timed out", ErrIllegalMove)
		case d.Pass:
			rejected = fmt.Errorf("%w: the round leader cannot pass", ErrIllegalMove)
		default:
			played, err := g.play(p, d.Cards)
			if err == nil {
				g.recordPlay(idx, played, res, leading, d.Reasoning)
				return nil
			}
			rejected = err
		}

		g.logger.Debug("Move rejected", "player", p.Name, "attempt", attempt, "error", rejected)
		g.eventBus.Publish(RejectedEvent{Round: g.round, Player: p.Name, Attempt: attempt, Err: rejected, timestamp: g.clock.Now()})
		if p.Kind == Computer {
			break
		}
	}

	if !leading {
		g.pass(idx, res, fmt.Sprintf("no legal move: %v", rejected), false)
		return nil
	}
	played, ok := p.AutoPlay(combo.Hand{}, g.round)
	if !ok {
		return fmt.Errorf("leader %s has no legal play", p.Name)
	}
	g.recordPlay(idx, played, res, true, "auto-played")
	return nil
}

// play validates the submitted cards for the current turn and applies them.
func (g *Game) play(p *Player, cards []deck.Card) (PlayResult, error) {
	h, err := g.rules.New(cards)
	if err != nil {
		return PlayResult{}, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	if err := p.CheckOpening(h, g.lastHand, g.round); err != nil {
		return PlayResult{}, err
	}
	return p.PlayCombo(h, g.lastHand)
}

func (g *Game) recordPlay(idx int, played PlayResult, res *RoundResult, leading bool, reasoning string) {
	p := g.players[idx]
	g.lastHand = played.Hand
	g.lastPlayer = idx
	res.Plays = append(res.Plays, played)

	g.logger.Debug("Played", "round", g.round, "player", p.Name, "hand", played.Hand.String(), "remaining", played.Remaining)
	g.eventBus.Publish(PlayEvent{
		Round:     g.round,
		Player:    p.Name,
		Hand:      played.Hand,
		Remaining: played.Remaining,
		Leading:   leading,
		Reasoning: reasoning,
		timestamp: g.clock.Now(),
	})

	if played.Remaining == 0 {
		g.finish(idx, res)
	}
}

func (g *Game) pass(idx int, res *RoundResult, reasoning string, timedOut bool) {
	p := g.players[idx]
	p.Pass()
	res.Passes = append(res.Passes, p.Name)
	g.logger.Debug("Passed", "round", g.round, "player", p.Name, "reason", reasoning)
	g.eventBus.Publish(PassEvent{Round: g.round, Player: p.Name, Reasoning: reasoning, TimedOut: timedOut, timestamp: g.clock.Now()})
}

func (g *Game) finish(idx int, res *RoundResult) {
	g.phase = GameOver
	g.winner = g.players[idx]
	res.GameOver = true
	res.Winner = g.winner.Name

	remaining := make(map[string]int, len(g.players))
	for _, p := range g.players {
		remaining[p.Name] = p.CardCount()
	}
	g.logger.Info("Game over", "winner", g.winner.Name, "rounds", g.round+1)
	g.eventBus.Publish(GameOverEvent{Winner: g.winner.Name, Rounds: g.round + 1, Remaining: remaining, timestamp: g.clock.Now()})
}

func (g *Game) publishGameStart() {
	seats := make([]SeatInfo, len(g.players))
	for i, p := range g.players {
		seats[i] = SeatInfo{Name: p.Name, Kind: p.Kind, Cards: p.CardCount()}
	}
	g.eventBus.Publish(GameStartEvent{Seats: seats, Leader: g.players[g.leader].Name, timestamp: g.clock.Now()})
}

func (g *Game) turnFor(idx, attempt int, rejected error) Turn {
	p := g.players[idx]
	turn := Turn{
		Player:     p.Name,
		Round:      g.round,
		Attempt:    attempt,
		Cards:      p.Cards(),
		ToBeat:     g.lastHand,
		LegalMoves: p.LegalMoves(g.lastHand, g.round),
		Rejected:   rejected,
	}
	if !g.lastHand.IsZero() {
		turn.LastPlayer = g.players[g.lastPlayer].Name
	}
	for i := 1; i < len(g.players); i++ {
		o := g.players[(idx+i)%len(g.players)]
		turn.Opponents = append(turn.Opponents, Opponent{Name: o.Name, Cards: o.CardCount(), Passed: o.Passed()})
	}
	return turn
}

// IsGameOver reports whether a player has shed every card
func (g *Game) IsGameOver() bool { return g.phase == GameOver }

// Winner returns the game winner, or nil while the game is running
func (g *Game) Winner() *Player { return g.winner }

// Phase returns the current state of the round state machine
func (g *Game) Phase() Phase { return g.phase }

// Round returns the zero-based index of the current round
func (g *Game) Round() int { return g.round }

// LastHand returns the hand to beat, zero when the leader is to play
func (g *Game) LastHand() combo.Hand { return g.lastHand }

// Leader returns the player leading the current or next round
func (g *Game) Leader() *Player { return g.players[g.leader] }

// Players returns the seats in turn order
func (g *Game) Players() []*Player { return slices.Clone(g.players) }

// EventBus returns the event bus for subscribing to game events
func (g *Game) EventBus() EventBus { return g.eventBus }
