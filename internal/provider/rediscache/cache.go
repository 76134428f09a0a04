// Package rediscache layers an optional read-through Redis cache over the
// seller-directory and moderation providers. Both are candidate-independent
// or slowly-changing lookups, so caching them avoids re-reading the whole
// seller directory and per-product moderation state on every ranking request.
// Any Redis failure falls through to the wrapped provider; the cache can
// never make a ranking fail.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"discovery-service/pkg/config"

	"github.com/redis/go-redis/v9"
)

// NewClient creates a Redis client from configuration.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
}

// Ping tests the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// getJSON loads key into dest, reporting whether it was present.
func getJSON(ctx context.Context, client *redis.Client, key string, dest interface{}) (bool, error) {
	payload, err := client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return false, err
	}
	return true, nil
}

// setJSON stores value under key with the cache TTL. Errors are returned for
// logging only; callers never fail on them.
func setJSON(ctx context.Context, client *redis.Client, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, payload, ttl).Err()
}
