package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker invalidates issued tokens ahead of their natural expiry.
type Revoker interface {
	// Revoke marks the token id as revoked until it would have expired
	// anyway.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	// IsRevoked reports whether the token id has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevoker implements Revoker on Redis keys, one per revoked token
// id. Entries expire together with the tokens they shadow, so the list
// never needs sweeping.
type RedisRevoker struct {
	client *redis.Client
	prefix string
}

// NewRedisRevoker creates a new Redis-backed revocation list.
func NewRedisRevoker(client *redis.Client, prefix string) *RedisRevoker {
	return &RedisRevoker{
		client: client,
		prefix: prefix,
	}
}

// Revoke marks the token id as revoked for the given TTL.
func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Already expired, nothing to shadow.
	}
	key := r.prefix + tokenID
	if err := r.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been revoked.
func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := r.prefix + tokenID
	_, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return true, nil
}

// Ping checks if the Redis connection is healthy.
func (r *RedisRevoker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
