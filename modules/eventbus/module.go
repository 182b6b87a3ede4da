package eventbus

import (
	"context"
	"log"

	"github.com/go-monolith/mono"
)

// Module provides the Bus as a mono module. The bus itself is created
// eagerly so other modules can subscribe before the app starts.
type Module struct {
	bus *Bus
}

// NewModule creates a new event bus module.
func NewModule() *Module {
	return &Module{
		bus: New(),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "eventbus"
}

// Init initializes the module.
func (m *Module) Init(_ mono.ServiceContainer) error {
	log.Println("[eventbus] EventBus initialized")
	return nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[eventbus] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[eventbus] Module stopped")
	return nil
}

// GetEventBus returns the Bus instance.
func (m *Module) GetEventBus() *Bus {
	return m.bus
}
