package bus_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/bus"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBus_DeliversInRegistrationOrder(t *testing.T) {
	b := bus.New(zap.NewNop())

	var order []string
	b.Subscribe(func(bus.Event) { order = append(order, "first") })
	b.Subscribe(func(bus.Event) { order = append(order, "second") })
	b.Subscribe(func(bus.Event) { order = append(order, "third") })

	b.Publish(bus.CaseUpdated{})

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := bus.New(zap.NewNop())

	calls := 0
	unsubscribe := b.Subscribe(func(bus.Event) { calls++ })

	b.Publish(bus.CaseUpdated{})
	assert.Equal(t, 1, calls)

	unsubscribe()
	b.Publish(bus.CaseUpdated{})
	assert.Equal(t, 1, calls)

	// Unsubscribing twice is a no-op
	unsubscribe()
}

func TestBus_TypedSubscriptions(t *testing.T) {
	b := bus.New(zap.NewNop())

	var caseEvents, customerEvents, documentEvents int
	b.SubscribeCaseUpdated(func(bus.CaseUpdated) { caseEvents++ })
	b.SubscribeCustomerUpdated(func(bus.CustomerUpdated) { customerEvents++ })
	b.SubscribeDocumentCreated(func(bus.DocumentCreated) { documentEvents++ })

	b.Publish(bus.CaseUpdated{})
	b.Publish(bus.CustomerUpdated{})
	b.Publish(bus.DocumentCreated{CaseID: uuid.New()})
	b.Publish(bus.CaseUpdated{})

	assert.Equal(t, 2, caseEvents)
	assert.Equal(t, 1, customerEvents)
	assert.Equal(t, 1, documentEvents)
}

func TestBus_EventCarriesPayload(t *testing.T) {
	b := bus.New(zap.NewNop())

	caseID := uuid.New()
	var received domain.CaseDTO
	b.SubscribeCaseUpdated(func(ev bus.CaseUpdated) { received = ev.Case })

	b.Publish(bus.CaseUpdated{Case: domain.CaseDTO{ID: caseID, CaseNumber: "CASE-2026-00042"}})

	assert.Equal(t, caseID, received.ID)
	assert.Equal(t, "CASE-2026-00042", received.CaseNumber)
}

func TestBus_SubscriberMayUnsubscribeDuringPublish(t *testing.T) {
	b := bus.New(zap.NewNop())

	var unsubscribe func()
	calls := 0
	unsubscribe = b.Subscribe(func(bus.Event) {
		calls++
		unsubscribe()
	})

	b.Publish(bus.CaseUpdated{})
	b.Publish(bus.CaseUpdated{})

	assert.Equal(t, 1, calls)
}

func TestEventNames(t *testing.T) {
	assert.Equal(t, "caseUpdated", bus.CaseUpdated{}.Name())
	assert.Equal(t, "customerUpdated", bus.CustomerUpdated{}.Name())
	assert.Equal(t, "documentCreated", bus.DocumentCreated{}.Name())
}
