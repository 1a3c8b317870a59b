// Package sessioncache keeps refresh-token liveness in Redis so that per-request gatekeeping
// does not hit Postgres.
package sessioncache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/service"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "nibtara:session:"

type RedisCache struct {
	client *redis.Client
}

func New(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Connect dials addr and pings it once.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, refreshID string) (service.SessionState, bool, error) {
	value, err := c.client.Get(ctx, sessionKey(refreshID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	switch state := service.SessionState(value); state {
	case service.SessionActive, service.SessionRevoked:
		return state, true, nil
	default:
		return "", false, nil
	}
}

// Set stores state for ttl. An active state never replaces an existing entry, so a concurrent
// read-through cannot overwrite a revocation.
func (c *RedisCache) Set(ctx context.Context, refreshID string, state service.SessionState, ttl time.Duration) error {
	key := sessionKey(refreshID)
	if state == service.SessionActive {
		return c.client.SetNX(ctx, key, string(state), ttl).Err()
	}
	return c.client.Set(ctx, key, string(state), ttl).Err()
}

func sessionKey(refreshID string) string {
	return keyPrefix + refreshID
}
