package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/taskflow/domain/user"
	"github.com/example/taskflow/modules/store"
	"github.com/go-monolith/mono"
)

// SessionBus is the subset of the event bus the cache listens on.
type SessionBus interface {
	Subscribe(eventType user.EventType, handler func(user.SessionEvent))
}

// Module provides the task cache as a mono module.
type Module struct {
	cache   *Cache
	storeM  *store.Module
	bus     SessionBus
	timeout time.Duration
}

// NewModule creates a new cache module. timeout bounds each refetch.
func NewModule(timeout time.Duration) *Module {
	return &Module{
		timeout: timeout,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cache"
}

// SetStoreModule wires the store module. The gateway is resolved at
// start, after the store has opened its database.
func (m *Module) SetStoreModule(sm *store.Module) {
	m.storeM = sm
}

// SetFetcher builds the cache around an explicit fetcher.
func (m *Module) SetFetcher(f Fetcher) {
	m.cache = New(f, m.timeout)
}

// SetSessionBus wires the event bus used to react to sign-outs.
func (m *Module) SetSessionBus(bus SessionBus) {
	m.bus = bus
}

// Init initializes the module. The cache itself is built at start, once
// the store gateway exists.
func (m *Module) Init(_ mono.ServiceContainer) error {
	return nil
}

// Start resolves the store gateway, builds the cache and subscribes to
// sign-out events.
func (m *Module) Start(_ context.Context) error {
	if m.cache == nil {
		if m.storeM == nil {
			return fmt.Errorf("store module not set")
		}
		gateway := m.storeM.GetGateway()
		if gateway == nil {
			return fmt.Errorf("store gateway not available")
		}
		m.cache = New(gateway, m.timeout)
	}

	if m.bus != nil {
		cache := m.cache
		m.bus.Subscribe(user.EventTypeSignedOut, func(e user.SessionEvent) {
			cache.Drop(e.UserID)
			log.Printf("[cache] Dropped snapshot for user %s (signed out)", e.UserID)
		})
	}

	log.Printf("[cache] Module started (refetch timeout: %s)", m.timeout)
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[cache] Module stopped")
	return nil
}

// GetCache returns the cache instance.
func (m *Module) GetCache() *Cache {
	return m.cache
}
