// Package bus provides the in-process event fan-out used to keep open
// panels and browser views consistent after a write. Delivery is
// synchronous, in subscriber registration order, and events are not
// replayed to late subscribers.
package bus

import (
	"sync"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"go.uber.org/zap"
)

// Event is a published notification. Name returns the wire-level event
// name consumed by browser clients.
type Event interface {
	Name() string
}

// CaseUpdated is published after any successful case write and carries the
// full refreshed record
type CaseUpdated struct {
	Case domain.CaseDTO `json:"case"`
}

// Name implements Event
func (CaseUpdated) Name() string { return "caseUpdated" }

// CustomerUpdated is published after a customer is created or edited
type CustomerUpdated struct {
	Customer domain.CustomerDTO `json:"customer"`
}

// Name implements Event
func (CustomerUpdated) Name() string { return "customerUpdated" }

// DocumentCreated is published after a document is generated. It carries
// only the case id; document lists reload on receipt.
type DocumentCreated struct {
	CaseID uuid.UUID `json:"caseId"`
}

// Name implements Event
func (DocumentCreated) Name() string { return "documentCreated" }

type subscriber struct {
	id int
	fn func(Event)
}

// Bus dispatches events to subscribers. Safe for concurrent use.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
	logger *zap.Logger
}

// New creates an event bus
func New(logger *zap.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers a handler for all events and returns an unsubscribe
// function. Handlers run synchronously on the publishing goroutine, in the
// order they were registered.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// SubscribeCaseUpdated registers a handler for CaseUpdated events only
func (b *Bus) SubscribeCaseUpdated(fn func(CaseUpdated)) func() {
	return b.Subscribe(func(ev Event) {
		if e, ok := ev.(CaseUpdated); ok {
			fn(e)
		}
	})
}

// SubscribeCustomerUpdated registers a handler for CustomerUpdated events only
func (b *Bus) SubscribeCustomerUpdated(fn func(CustomerUpdated)) func() {
	return b.Subscribe(func(ev Event) {
		if e, ok := ev.(CustomerUpdated); ok {
			fn(e)
		}
	})
}

// SubscribeDocumentCreated registers a handler for DocumentCreated events only
func (b *Bus) SubscribeDocumentCreated(fn func(DocumentCreated)) func() {
	return b.Subscribe(func(ev Event) {
		if e, ok := ev.(DocumentCreated); ok {
			fn(e)
		}
	})
}

// Publish delivers an event to every subscriber in registration order.
// The subscriber list is copied under the lock so handlers may subscribe
// or unsubscribe without deadlocking.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	if b.logger != nil {
		b.logger.Debug("publishing event",
			zap.String("event", ev.Name()),
			zap.Int("subscribers", len(subs)))
	}

	for _, sub := range subs {
		sub.fn(ev)
	}
}
