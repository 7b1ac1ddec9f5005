package game

import (
	"time"

	"github.com/lox/tienlen/internal/combo"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeGameStart  EventType = "game_start"
	EventTypeRoundStart EventType = "round_start"
	EventTypePlay       EventType = "play"
	EventTypePass       EventType = "pass"
	EventTypeRoundEnd   EventType = "round_end"
	EventTypeGameOver   EventType = "game_over"
	EventTypeRejected   EventType = "rejected"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// SeatInfo describes a seat at game start
type SeatInfo struct {
	Name  string
	Kind  Kind
	Cards int
}

// GameStartEvent is published before the first round
type GameStartEvent struct {
	Seats     []SeatInfo
	Leader    string
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// RoundStartEvent is published when a leader is about to play
type RoundStartEvent struct {
	Round     int
	Leader    string
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// PlayEvent is published for every accepted play
type PlayEvent struct {
	Round     int
	Player    string
	Hand      combo.Hand
	Remaining int
	Leading   bool
	Reasoning string
	timestamp time.Time
}

func (e PlayEvent) EventType() EventType { return EventTypePlay }
func (e PlayEvent) Timestamp() time.Time { return e.timestamp }

// PassEvent is published when a player passes for the rest of the round
type PassEvent struct {
	Round     int
	Player    string
	Reasoning string
	TimedOut  bool
	timestamp time.Time
}

func (e PassEvent) EventType() EventType { return EventTypePass }
func (e PassEvent) Timestamp() time.Time { return e.timestamp }

// RejectedEvent is published when a submitted move is refused
type RejectedEvent struct {
	Round     int
	Player    string
	Attempt   int
	Err       error
	timestamp time.Time
}

func (e RejectedEvent) EventType() EventType { return EventTypeRejected }
func (e RejectedEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published when everyone but the last player has passed
type RoundEndEvent struct {
	Round     int
	Winner    string
	LastHand  combo.Hand
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published when a player sheds their last card
type GameOverEvent struct {
	Winner    string
	Rounds    int
	Remaining map[string]int
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers, synchronously and in order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
