package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	apimod "github.com/example/taskflow/modules/api"
	authmod "github.com/example/taskflow/modules/auth"
	cachemod "github.com/example/taskflow/modules/cache"
	eventbusmod "github.com/example/taskflow/modules/eventbus"
	storemod "github.com/example/taskflow/modules/store"
	tasksmod "github.com/example/taskflow/modules/tasks"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	dbPath := getEnv("DB_PATH", "./tasks.db")
	usersDBPath := getEnv("USERS_DB_PATH", "./users.db")
	redisAddr := getEnv("REDIS_ADDR", "")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	refetchTimeout := getEnvDuration("CACHE_REFETCH_TIMEOUT", 10*time.Second)

	log.Println("=== TaskFlow ===")
	log.Printf("Task database: %s", dbPath)
	log.Printf("User database: %s", usersDBPath)
	if redisAddr != "" {
		log.Printf("Redis: %s", redisAddr)
	}
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Cache refetch timeout: %s", refetchTimeout)

	// Create modules
	eventbusModule := eventbusmod.NewModule()
	storeModule := storemod.NewModule(dbPath)
	cacheModule := cachemod.NewModule(refetchTimeout)
	tasksModule := tasksmod.NewModule()
	authModule := authmod.NewModule(usersDBPath, redisAddr)
	apiModule := apimod.NewModule(httpPort)

	// Wire up dependencies. Module pointers are wired now; the modules
	// resolve the concrete services at start, in registration order.
	cacheModule.SetStoreModule(storeModule)
	cacheModule.SetSessionBus(eventbusModule.GetEventBus())
	tasksModule.SetStoreModule(storeModule)
	tasksModule.SetCacheModule(cacheModule)
	authModule.SetSessionBus(eventbusModule.GetEventBus())
	apiModule.SetAuthModule(authModule)
	apiModule.SetTasksModule(tasksModule)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules in dependency order
	app.Register(eventbusModule)
	app.Register(storeModule)
	app.Register(cacheModule)
	app.Register(tasksModule)
	app.Register(authModule)
	app.Register(apiModule)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", httpPort)
	log.Println("Endpoints:")
	log.Println("  GET    /health                    - Health check")
	log.Println("  POST   /api/v1/auth/register      - Register")
	log.Println("  POST   /api/v1/auth/login         - Login")
	log.Println("  POST   /api/v1/auth/refresh       - Refresh tokens")
	log.Println("  POST   /api/v1/auth/signout       - Sign out")
	log.Println("  GET    /api/v1/profile            - Get profile")
	log.Println("  PUT    /api/v1/profile            - Update profile")
	log.Println("  GET    /api/v1/tasks              - List tasks (filtered)")
	log.Println("  POST   /api/v1/tasks              - Create task")
	log.Println("  PUT    /api/v1/tasks/:id          - Update task")
	log.Println("  DELETE /api/v1/tasks/:id          - Delete task")
	log.Println("  GET    /api/v1/dashboard/stats    - Dashboard stats")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	// Setup graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
