package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisOpTimeout bounds every Redis operation so the cache never blocks
// indefinitely on a slow or unreachable server.
const redisOpTimeout = 5 * time.Second

// keyPattern matches every key written by Keyer implementations in this
// package; Clear scans it rather than flushing a possibly shared database.
const keyPattern = "cache:*"

// RedisCache is a Redis-backed cache, for sharing memoized responses between
// processes or surviving restarts.
type RedisCache struct {
	client    *redis.Client
	opTimeout time.Duration
}

// NewRedisCache creates a cache backed by the given Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:    client,
		opTimeout: redisOpTimeout,
	}
}

// Get retrieves a value. A missing key, an expired key, or a transport error
// are all misses; Get never errors.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores a value with the given TTL. TTL<=0 means no caching. Redis
// handles expiry server-side.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a value. Idempotent - no error on miss.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	err := c.client.Del(ctx, key).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// Clear removes every cache entry written by this package.
func (c *RedisCache) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	iter := c.client.Scan(ctx, 0, keyPattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Ping reports whether the backing Redis server is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	return c.client.Ping(ctx).Err()
}

// Ensure RedisCache implements Cache
var _ Cache = (*RedisCache)(nil)
