package auth

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	domain "github.com/example/taskflow/domain/user"
	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module provides authentication and profile services as a mono module.
type Module struct {
	db        *gorm.DB
	client    *redis.Client
	service   *AuthService
	bus       SessionPublisher
	dbPath    string
	redisAddr string
}

// NewModule creates a new auth module. redisAddr may be empty, which
// disables the token revocation list.
func NewModule(dbPath, redisAddr string) *Module {
	return &Module{
		dbPath:    dbPath,
		redisAddr: redisAddr,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "auth"
}

// Init opens the user database, runs migrations and connects the
// revocation list.
func (m *Module) Init(_ mono.ServiceContainer) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.User{}, &domain.Profile{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var revoker Revoker
	if m.redisAddr != "" {
		m.client = redis.NewClient(&redis.Options{
			Addr:         m.redisAddr,
			PoolSize:     10,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err := m.client.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		revoker = NewRedisRevoker(m.client, "revoked:")
		log.Printf("[auth] Revocation list connected at %s", m.redisAddr)
	} else {
		log.Println("[auth] No Redis address configured, token revocation disabled")
	}

	repo := NewUserRepository(db)
	hasher := NewPasswordHasher()
	jwtManager := NewJWTManager(loadJWTConfig())

	m.service = NewAuthService(repo, hasher, jwtManager, revoker, m.bus)

	log.Printf("[auth] Database initialized at %s", m.dbPath)
	return nil
}

// Start starts the module (no-op for this module).
func (m *Module) Start(_ context.Context) error {
	log.Println("[auth] Module started")
	return nil
}

// Stop stops the module and closes its connections.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			log.Printf("[auth] Error closing Redis connection: %v", err)
		}
	}
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// SetSessionBus wires the session event publisher.
func (m *Module) SetSessionBus(bus SessionPublisher) {
	m.bus = bus
	if m.service != nil {
		m.service.bus = bus
	}
}

// GetService returns the auth service instance.
func (m *Module) GetService() *AuthService {
	return m.service
}

// HealthCheck verifies the database and revocation list are healthy.
func (m *Module) HealthCheck(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	if m.client != nil {
		return m.client.Ping(ctx).Err()
	}
	return nil
}

// loadJWTConfig loads JWT configuration from environment variables.
func loadJWTConfig() JWTConfig {
	config := DefaultJWTConfig()

	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.SecretKey = secret
	}

	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		config.Issuer = issuer
	}

	return config
}
