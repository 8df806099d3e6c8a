package service

import (
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"

	"serviceregistry/domain"
)

func TestEventBus_DeliversInOrder(t *testing.T) {
	bus := NewEventBus(log.NewNopLogger())

	var order []string
	bus.Subscribe(domain.EventInstanceRegistered, func(ev domain.Event) {
		order = append(order, "first:"+ev.Instance.ID)
	})
	bus.Subscribe(domain.EventInstanceRegistered, func(ev domain.Event) {
		order = append(order, "second:"+ev.Instance.ID)
	})

	bus.Publish(domain.Event{Type: domain.EventInstanceRegistered, Instance: domain.Instance{ID: "a"}})
	bus.Publish(domain.Event{Type: domain.EventInstanceRegistered, Instance: domain.Instance{ID: "b"}})

	assert.Equal(t, []string{"first:a", "second:a", "first:b", "second:b"}, order)
}

func TestEventBus_NoSubscribersIsFine(t *testing.T) {
	bus := NewEventBus(log.NewNopLogger())
	bus.Publish(domain.Event{Type: domain.EventHealthCheckFailed})
}

func TestEventBus_TypesAreIndependent(t *testing.T) {
	bus := NewEventBus(log.NewNopLogger())

	var removed int
	bus.Subscribe(domain.EventInstanceRemoved, func(domain.Event) { removed++ })

	bus.Publish(domain.Event{Type: domain.EventInstanceRegistered})
	bus.Publish(domain.Event{Type: domain.EventInstanceRemoved})

	assert.Equal(t, 1, removed)
}

func TestEventBus_PanickingSubscriberIsIsolated(t *testing.T) {
	bus := NewEventBus(log.NewNopLogger())

	var delivered bool
	bus.Subscribe(domain.EventInstanceRegistered, func(domain.Event) {
		panic("subscriber bug")
	})
	bus.Subscribe(domain.EventInstanceRegistered, func(domain.Event) {
		delivered = true
	})

	assert.NotPanics(t, func() {
		bus.Publish(domain.Event{Type: domain.EventInstanceRegistered})
	})
	assert.True(t, delivered, "later subscribers still run after a panic")
}

func TestEventBus_PassedEventCarriesProbeBody(t *testing.T) {
	bus := NewEventBus(log.NewNopLogger())

	var body map[string]any
	bus.Subscribe(domain.EventHealthCheckPassed, func(ev domain.Event) {
		body = ev.ProbeBody
	})

	bus.Publish(domain.Event{
		Type:      domain.EventHealthCheckPassed,
		ProbeBody: map[string]any{"status": "UP"},
	})
	assert.Equal(t, "UP", body["status"])
}
