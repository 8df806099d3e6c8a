package service

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"serviceregistry/domain"
)

// EventBus fans registry lifecycle events out to optional subscribers.
// Delivery is synchronous and in emission order; a panicking subscriber
// is isolated and logged so it cannot corrupt registry state.
type EventBus struct {
	subscribers map[domain.EventType][]domain.EventHandler
	logger      log.Logger
}

// NewEventBus creates an EventBus. Subscription is expected at startup,
// before the registry starts emitting.
func NewEventBus(logger log.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[domain.EventType][]domain.EventHandler),
		logger:      log.WithPrefix(logger, "component", "EventBus"),
	}
}

// Subscribe adds a handler for one event type.
func (b *EventBus) Subscribe(t domain.EventType, h domain.EventHandler) {
	b.subscribers[t] = append(b.subscribers[t], h)
}

// Publish delivers the event to every subscriber of its type, in
// subscription order.
func (b *EventBus) Publish(ev domain.Event) {
	for _, h := range b.subscribers[ev.Type] {
		b.deliver(h, ev)
	}
}

func (b *EventBus) deliver(h domain.EventHandler, ev domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			level.Error(b.logger).Log(
				"msg", "subscriber panic",
				"event", ev.Type,
				"panic", r,
			)
		}
	}()
	h(ev)
}
