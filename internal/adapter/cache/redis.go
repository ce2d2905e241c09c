// Package cache provides the Redis-backed read-through cache used by the
// recitation pipeline.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements the pipeline cache on a Redis connection.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(uri string) (*Redis, func(), error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis URI: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, func() { _ = client.Close() }, fmt.Errorf("connect to redis: %w", err)
	}
	return &Redis{client: client}, func() { _ = client.Close() }, nil
}

// Client exposes the underlying connection for collaborators that share it.
func (r *Redis) Client() *redis.Client { return r.client }

// Get returns the cached value; a missing key is (_, false, nil).
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key for ttl.
func (r *Redis) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
