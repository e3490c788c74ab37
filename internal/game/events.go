package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pyramid/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStart      EventType = "game_start"
	EventTypeCardSelected   EventType = "card_selected"
	EventTypeSelectionClear EventType = "selection_cleared"
	EventTypeKingRemoved    EventType = "king_removed"
	EventTypePairRemoved    EventType = "pair_removed"
	EventTypePairRejected   EventType = "pair_rejected"
	EventTypeCardDrawn      EventType = "card_drawn"
	EventTypeStockRecycled  EventType = "stock_recycled"
	EventTypeGameWon        EventType = "game_won"
	EventTypeGameLost       EventType = "game_lost"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything that happens during a game
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published after every deal
type GameStartEvent struct {
	GameID    string
	Seed      int64
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// CardSelectedEvent is published when a card becomes the first selection
type CardSelectedEvent struct {
	Card      deck.Card
	Target    Target
	timestamp time.Time
}

func (e CardSelectedEvent) EventType() EventType { return EventTypeCardSelected }
func (e CardSelectedEvent) Timestamp() time.Time { return e.timestamp }

// SelectionClearedEvent is published when a card is deselected by clicking it again
type SelectionClearedEvent struct {
	timestamp time.Time
}

func (e SelectionClearedEvent) EventType() EventType { return EventTypeSelectionClear }
func (e SelectionClearedEvent) Timestamp() time.Time { return e.timestamp }

// KingRemovedEvent is published when a King is removed on its own
type KingRemovedEvent struct {
	Card      deck.Card
	Score     int
	timestamp time.Time
}

func (e KingRemovedEvent) EventType() EventType { return EventTypeKingRemoved }
func (e KingRemovedEvent) Timestamp() time.Time { return e.timestamp }

// PairRemovedEvent is published when two cards summing to 13 are removed
type PairRemovedEvent struct {
	First     deck.Card
	Second    deck.Card
	Score     int
	timestamp time.Time
}

func (e PairRemovedEvent) EventType() EventType { return EventTypePairRemoved }
func (e PairRemovedEvent) Timestamp() time.Time { return e.timestamp }

// PairRejectedEvent is published when two selected cards do not sum to 13
type PairRejectedEvent struct {
	First     deck.Card
	Second    deck.Card
	timestamp time.Time
}

func (e PairRejectedEvent) EventType() EventType { return EventTypePairRejected }
func (e PairRejectedEvent) Timestamp() time.Time { return e.timestamp }

// CardDrawnEvent is published when a stock card is turned onto the waste
type CardDrawnEvent struct {
	Card      deck.Card
	StockLeft int
	timestamp time.Time
}

func (e CardDrawnEvent) EventType() EventType { return EventTypeCardDrawn }
func (e CardDrawnEvent) Timestamp() time.Time { return e.timestamp }

// StockRecycledEvent is published when the stock is rebuilt from the backup
type StockRecycledEvent struct {
	Cards     int
	timestamp time.Time
}

func (e StockRecycledEvent) EventType() EventType { return EventTypeStockRecycled }
func (e StockRecycledEvent) Timestamp() time.Time { return e.timestamp }

// GameWonEvent is published when the pyramid is cleared
type GameWonEvent struct {
	GameID    string
	Score     int
	Moves     int
	Elapsed   time.Duration
	timestamp time.Time
}

func (e GameWonEvent) EventType() EventType { return EventTypeGameWon }
func (e GameWonEvent) Timestamp() time.Time { return e.timestamp }

// GameLostEvent is published when no moves remain
type GameLostEvent struct {
	GameID    string
	Score     int
	Moves     int
	Remaining int
	timestamp time.Time
}

func (e GameLostEvent) EventType() EventType { return EventTypeGameLost }
func (e GameLostEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(Event)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a synchronous in-memory event bus
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

// Unsubscribe removes a subscriber. Function subscribers are not
// comparable and cannot be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish delivers an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// EventRecorder keeps every published event, mainly for tests and replays
type EventRecorder struct {
	Events []Event
}

// OnEvent appends the event
func (r *EventRecorder) OnEvent(event Event) {
	r.Events = append(r.Events, event)
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []EventType {
	types := make([]EventType, len(r.Events))
	for i, e := range r.Events {
		types[i] = e.EventType()
	}
	return types
}

// Reset drops recorded events
func (r *EventRecorder) Reset() {
	r.Events = nil
}

// LoggingSubscriber writes game events to a logger at info level
type LoggingSubscriber struct {
	logger *log.Logger
}

// NewLoggingSubscriber creates a subscriber that logs through logger
func NewLoggingSubscriber(logger *log.Logger) *LoggingSubscriber {
	return &LoggingSubscriber{logger: logger.WithPrefix("events")}
}

// OnEvent logs one event with its key fields
func (s *LoggingSubscriber) OnEvent(event Event) {
	switch e := event.(type) {
	case GameStartEvent:
		s.logger.Info("Game started", "id", e.GameID, "seed", e.Seed)
	case KingRemovedEvent:
		s.logger.Info("King removed", "card", e.Card, "score", e.Score)
	case PairRemovedEvent:
		s.logger.Info("Pair removed", "first", e.First, "second", e.Second, "score", e.Score)
	case PairRejectedEvent:
		s.logger.Info("Pair rejected", "first", e.First, "second", e.Second)
	case CardDrawnEvent:
		s.logger.Info("Card drawn", "card", e.Card, "stock", e.StockLeft)
	case StockRecycledEvent:
		s.logger.Info("Stock recycled", "cards", e.Cards)
	case GameWonEvent:
		s.logger.Info("Game won", "id", e.GameID, "score", e.Score, "moves", e.Moves, "elapsed", e.Elapsed)
	case GameLostEvent:
		s.logger.Info("Game lost", "id", e.GameID, "score", e.Score, "remaining", e.Remaining)
	default:
		s.logger.Debug("Event", "type", event.EventType())
	}
}
