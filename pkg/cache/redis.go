package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// The package keeps one process-wide Redis client, shared by every consumer
// of the cache. The connection itself is owned by the database layer; this
// registry only borrows it.

var redisClient *redis.Client

// SetClient registers the shared Redis client. Passing nil disables caching;
// callers check IsInitialized before use.
func SetClient(client *redis.Client) {
	redisClient = client
}

// Client returns the registered Redis client, or nil if caching is disabled.
func Client() *redis.Client {
	return redisClient
}

// IsInitialized checks if a Redis client has been registered
func IsInitialized() bool {
	return redisClient != nil
}

// Ping tests the Redis connection
func Ping() error {
	if redisClient == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}
