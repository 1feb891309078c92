package health

import (
	"context"

	"github.com/bbye98/minim-sub004/cache"
	"github.com/bbye98/minim-sub004/tokens"
)

// StoreChecker reports whether the token store is reachable by issuing a
// cheap read against it.
type StoreChecker struct {
	store tokens.Store
}

var _ Checker = (*StoreChecker)(nil)

// NewStoreChecker wraps a token store.
func NewStoreChecker(store tokens.Store) *StoreChecker {
	return &StoreChecker{store: store}
}

// Check implements Checker. Any store error, including
// tokens.ErrStoreUnavailable, is unhealthy; an empty store is healthy.
func (c *StoreChecker) Check(ctx context.Context) Result {
	if _, err := c.store.List(ctx, tokens.Filter{}); err != nil {
		return Unhealthy("token store unreachable", err)
	}
	return Healthy("token store reachable")
}

// RedisChecker reports whether the Redis response cache answers pings.
type RedisChecker struct {
	cache *cache.RedisCache
}

var _ Checker = (*RedisChecker)(nil)

// NewRedisChecker wraps a Redis cache.
func NewRedisChecker(rc *cache.RedisCache) *RedisChecker {
	return &RedisChecker{cache: rc}
}

// Check implements Checker.
func (c *RedisChecker) Check(ctx context.Context) Result {
	if err := c.cache.Ping(ctx); err != nil {
		return Unhealthy("redis unreachable", err)
	}
	return Healthy("redis reachable")
}
