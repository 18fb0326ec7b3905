package events

import (
	"context"
	"sync"
	"time"

	"sportsbook/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeUserCreated    EventType = "user_created"
	EventTypeWagerPlaced    EventType = "wager_placed"
	EventTypeWagerCancelled EventType = "wager_cancelled"
	EventTypeWagerSettled   EventType = "wager_settled"
	EventTypePeriodChanged  EventType = "period_changed"
)

// AllEventTypes lists every event type emitted by the ledger
var AllEventTypes = []EventType{
	EventTypeBalanceChange,
	EventTypeUserCreated,
	EventTypeWagerPlaced,
	EventTypeWagerCancelled,
	EventTypeWagerSettled,
	EventTypePeriodChanged,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64                  `json:"user_id"`
	OldBalance      decimal.Decimal        `json:"old_balance"`
	NewBalance      decimal.Decimal        `json:"new_balance"`
	TransactionType models.TransactionType `json:"transaction_type"`
	ChangeAmount    decimal.Decimal        `json:"change_amount"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new user creation
type UserCreatedEvent struct {
	UserID         int64           `json:"user_id"`
	Username       string          `json:"username"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// WagerPlacedEvent represents a wager that was placed
type WagerPlacedEvent struct {
	WagerID      int64           `json:"wager_id"`
	UserID       int64           `json:"user_id"`
	Week         int             `json:"week"`
	Amount       decimal.Decimal `json:"amount"`
	Odds         string          `json:"odds"`
	PotentialWin decimal.Decimal `json:"potential_win"`
}

func (e WagerPlacedEvent) Type() EventType {
	return EventTypeWagerPlaced
}

// WagerCancelledEvent represents a pending wager that was refunded
type WagerCancelledEvent struct {
	WagerID int64           `json:"wager_id"`
	UserID  int64           `json:"user_id"`
	Week    int             `json:"week"`
	Amount  decimal.Decimal `json:"amount"`
}

func (e WagerCancelledEvent) Type() EventType {
	return EventTypeWagerCancelled
}

// WagerSettledEvent represents a wager resolved to won or lost
type WagerSettledEvent struct {
	WagerID int64              `json:"wager_id"`
	UserID  int64              `json:"user_id"`
	Week    int                `json:"week"`
	Status  models.WagerStatus `json:"status"`
	Result  decimal.Decimal    `json:"result"`
	Payout  decimal.Decimal    `json:"payout"`
}

func (e WagerSettledEvent) Type() EventType {
	return EventTypeWagerSettled
}

// PeriodChangedEvent represents a period state transition
type PeriodChangedEvent struct {
	Week     int                `json:"week"`
	OldState models.PeriodState `json:"old_state"`
	NewState models.PeriodState `json:"new_state"`
	LockTime time.Time          `json:"lock_time"`
}

func (e PeriodChangedEvent) Type() EventType {
	return EventTypePeriodChanged
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed event handler")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a Unit of Work until it commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits pending events; called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing committed events")

	// Handlers outlive the request that committed the transaction
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events; called after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// SubscribeAll adds a handler for every ledger event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes {
		b.Subscribe(eventType, handler)
	}
}
