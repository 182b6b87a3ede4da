package tasks

import (
	"context"
	"fmt"
	"log"

	cachemod "github.com/example/taskflow/modules/cache"
	"github.com/example/taskflow/modules/store"
	"github.com/go-monolith/mono"
)

// Module provides the task coordinator as a mono module.
type Module struct {
	service *Service
	storeM  *store.Module
	cacheM  *cachemod.Module
	gateway store.Gateway
	cache   SnapshotCache
}

// NewModule creates a new tasks module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "tasks"
}

// SetStoreModule wires the store module. Its gateway is resolved at
// start.
func (m *Module) SetStoreModule(sm *store.Module) {
	m.storeM = sm
}

// SetCacheModule wires the cache module. Its cache is resolved at
// start.
func (m *Module) SetCacheModule(cm *cachemod.Module) {
	m.cacheM = cm
}

// SetGateway wires an explicit store gateway.
func (m *Module) SetGateway(g store.Gateway) {
	m.gateway = g
}

// SetCache wires an explicit task cache.
func (m *Module) SetCache(c SnapshotCache) {
	m.cache = c
}

// Init initializes the module.
func (m *Module) Init(_ mono.ServiceContainer) error {
	return nil
}

// Start resolves the wired dependencies and builds the service.
func (m *Module) Start(_ context.Context) error {
	if m.gateway == nil {
		if m.storeM == nil {
			return fmt.Errorf("store module not set")
		}
		gateway := m.storeM.GetGateway()
		if gateway == nil {
			return fmt.Errorf("store gateway not available")
		}
		m.gateway = gateway
	}

	if m.cache == nil {
		if m.cacheM == nil {
			return fmt.Errorf("cache module not set")
		}
		cache := m.cacheM.GetCache()
		if cache == nil {
			return fmt.Errorf("task cache not available")
		}
		m.cache = cache
	}

	m.service = NewService(m.gateway, m.cache)
	log.Println("[tasks] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[tasks] Module stopped")
	return nil
}

// GetService returns the task service.
func (m *Module) GetService() *Service {
	return m.service
}
