// Package api exposes the task tracker over HTTP.
package api

import (
	"context"
	"fmt"
	"log"

	authmod "github.com/example/taskflow/modules/auth"
	tasksmod "github.com/example/taskflow/modules/tasks"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module provides the HTTP API as a mono module.
type Module struct {
	app         *fiber.App
	handlers    *Handlers
	authModule  *authmod.Module
	tasksModule *tasksmod.Module
	port        int
}

// NewModule creates a new API module.
func NewModule(port int) *Module {
	return &Module{
		port: port,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// SetAuthModule sets the auth module dependency.
func (m *Module) SetAuthModule(am *authmod.Module) {
	m.authModule = am
}

// SetTasksModule sets the tasks module dependency.
func (m *Module) SetTasksModule(tm *tasksmod.Module) {
	m.tasksModule = tm
}

// Init initializes the Fiber app and its global middleware.
func (m *Module) Init(_ mono.ServiceContainer) error {
	m.app = fiber.New(fiber.Config{
		AppName:               "TaskFlow",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	return nil
}

// Start builds handlers from the wired modules and starts the server.
func (m *Module) Start(_ context.Context) error {
	if m.authModule == nil || m.tasksModule == nil {
		return fmt.Errorf("auth and tasks modules must be set")
	}

	authService := m.authModule.GetService()
	taskService := m.tasksModule.GetService()
	if authService == nil || taskService == nil {
		return fmt.Errorf("dependent services not available")
	}

	m.handlers = NewHandlers(authService, taskService)
	m.setupRoutes(authService)

	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		log.Printf("[api] Starting HTTP server on %s", addr)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	return nil
}

// setupRoutes configures all HTTP routes.
func (m *Module) setupRoutes(validator TokenValidator) {
	m.app.Get("/health", m.handlers.HealthCheck)

	v1 := m.app.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", m.handlers.Register)
	authRoutes.Post("/login", m.handlers.Login)
	authRoutes.Post("/refresh", m.handlers.Refresh)

	protected := v1.Group("")
	protected.Use(AuthMiddleware(validator))
	protected.Post("/auth/signout", m.handlers.SignOut)

	protected.Get("/profile", m.handlers.GetProfile)
	protected.Put("/profile", m.handlers.UpdateProfile)

	taskRoutes := protected.Group("/tasks")
	taskRoutes.Get("/", m.handlers.ListTasks)
	taskRoutes.Post("/", m.handlers.CreateTask)
	taskRoutes.Put("/:id", m.handlers.UpdateTask)
	taskRoutes.Delete("/:id", m.handlers.DeleteTask)

	protected.Get("/dashboard/stats", m.handlers.DashboardStats)
}

// Stop stops the HTTP server gracefully.
func (m *Module) Stop(_ context.Context) error {
	if m.app != nil {
		log.Println("[api] Shutting down HTTP server...")
		return m.app.Shutdown()
	}
	return nil
}

// errorHandler handles errors from Fiber routes.
func (m *Module) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}

// GetApp returns the Fiber app (for testing).
func (m *Module) GetApp() *fiber.App {
	return m.app
}
