// Package cache provides the Redis-backed rate cache used when multiple
// processes should share one rate store. Expiry is enforced server-side by
// Redis TTLs; capacity is governed by the Redis instance's own eviction
// policy rather than an entry count.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/moneydash/fx/pkg/exchange"
	"github.com/redis/go-redis/v9"
)

// RedisRateCache implements exchange.RateCache on top of Redis.
type RedisRateCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisRateCache connects to the Redis instance at url (redis://...)
// and namespaces all keys with prefix.
func NewRedisRateCache(
	url, prefix string,
	logger *slog.Logger,
) (*RedisRateCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRateCache{
		client: redis.NewClient(opt),
		prefix: prefix,
		logger: logger.With("component", "redis_rate_cache"),
	}, nil
}

func (r *RedisRateCache) key(key string) string {
	return r.prefix + key
}

// Get returns the cached rate for key. Redis errors degrade to a cache
// miss: the caller falls through to the provider instead of failing the
// conversion.
func (r *RedisRateCache) Get(key string) (exchange.Rate, bool) {
	ctx := context.Background()
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return exchange.Rate{}, false
	}
	if err != nil {
		r.logger.Error("redis get failed", "key", key, "error", err)
		return exchange.Rate{}, false
	}

	var rate exchange.Rate
	if err := json.Unmarshal([]byte(val), &rate); err != nil {
		r.logger.Error("corrupt cache entry", "key", key, "error", err)
		return exchange.Rate{}, false
	}
	return rate, true
}

// Set stores rate under key with a server-side TTL. Failures are logged
// and swallowed; the cache is best-effort, never a source of truth.
func (r *RedisRateCache) Set(key string, rate exchange.Rate, ttl time.Duration) {
	ctx := context.Background()
	data, err := json.Marshal(rate)
	if err != nil {
		r.logger.Error("failed to marshal cache entry", "key", key, "error", err)
		return
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.Error("redis set failed", "key", key, "error", err)
	}
}

// Has reports whether key holds an unexpired entry.
func (r *RedisRateCache) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Clear removes every entry under this cache's prefix.
func (r *RedisRateCache) Clear() {
	ctx := context.Background()
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			r.logger.Error("redis del failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("redis scan failed", "prefix", r.prefix, "error", err)
	}
}

// Ping verifies connectivity at startup.
func (r *RedisRateCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Ensure RedisRateCache implements exchange.RateCache.
var _ exchange.RateCache = (*RedisRateCache)(nil)
