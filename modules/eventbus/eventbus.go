// Package eventbus provides an in-memory event bus for session events.
package eventbus

import (
	"context"
	"log"
	"sync"

	"github.com/example/taskflow/domain/user"
)

// Handler is a function that handles session events. It is an alias so
// subscribers can be expressed as plain funcs on interfaces.
type Handler = func(event user.SessionEvent)

// Bus provides publish-subscribe functionality for session events.
type Bus struct {
	handlers map[user.EventType][]Handler
	mu       sync.RWMutex
}

// New creates a new Bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[user.EventType][]Handler),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *Bus) Subscribe(eventType user.EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	log.Printf("[eventbus] Subscribed to %s", eventType)
}

// Publish publishes an event to all registered handlers.
func (b *Bus) Publish(_ context.Context, event user.SessionEvent) {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	for _, handler := range handlers {
		// Run handlers asynchronously to not block the publisher
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[eventbus] Handler panic for %s: %v", event.Type, r)
				}
			}()
			h(event)
		}(handler)
	}
}

// PublishSignedIn publishes a signed-in event.
func (b *Bus) PublishSignedIn(ctx context.Context, userID, email string) {
	b.Publish(ctx, user.NewSignedInEvent(userID, email))
}

// PublishSignedOut publishes a signed-out event.
func (b *Bus) PublishSignedOut(ctx context.Context, userID, email string) {
	b.Publish(ctx, user.NewSignedOutEvent(userID, email))
}

// HandlerCount returns the number of handlers for a specific event type.
func (b *Bus) HandlerCount(eventType user.EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
