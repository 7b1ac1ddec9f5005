package game

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/tienlen/internal/combo"
)

// DefaultMaxAttempts bounds how often a player may resubmit a rejected move
const DefaultMaxAttempts = 3

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	agents      map[string]Agent
	strategy    Strategy
	rules       combo.Rules
	maxAttempts int
	eventBus    EventBus
	logger      *log.Logger
	clock       quartz.Clock
}

// WithAgent drives the named player with a. Computer players without an
// agent get a ComputerAgent.
func WithAgent(name string, a Agent) Option {
	return func(c *gameConfig) { c.agents[name] = a }
}

// WithStrategy sets the strategy for default computer agents
func WithStrategy(s Strategy) Option {
	return func(c *gameConfig) { c.strategy = s }
}

// WithRules sets the classification rules
func WithRules(r combo.Rules) Option {
	return func(c *gameConfig) { c.rules = r }
}

// WithMaxAttempts bounds retries of rejected moves. Values below one are
// ignored.
func WithMaxAttempts(n int) Option {
	return func(c *gameConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithEventBus publishes game events on bus
func WithEventBus(bus EventBus) Option {
	return func(c *gameConfig) { c.eventBus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) { c.logger = logger }
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) Option {
	return func(c *gameConfig) { c.clock = clock }
}
