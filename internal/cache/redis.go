package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/slabwatch/slabwatch/internal/domain"
)

// RedisCache is a Redis-backed resolution cache for multi-process scanners
// sharing one cache. Backend errors degrade to misses; the resolver then
// hits the sources as if the entry were absent.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache wraps a Redis client as a resolution cache store.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (domain.ResolutionResult, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return domain.ResolutionResult{}, false
	}
	if err != nil {
		log.Warn().Err(err).Str("component", "cache").Msg("redis get failed, treating as miss")
		return domain.ResolutionResult{}, false
	}

	var res domain.ResolutionResult
	if err := json.Unmarshal(data, &res); err != nil {
		log.Warn().Err(err).Str("component", "cache").Msg("corrupt cache entry, treating as miss")
		return domain.ResolutionResult{}, false
	}
	return res, true
}

func (c *RedisCache) Put(ctx context.Context, key string, res domain.ResolutionResult) {
	data, err := json.Marshal(res)
	if err != nil {
		log.Warn().Err(err).Str("component", "cache").Msg("failed to marshal resolution result")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("component", "cache").Msg("redis set failed")
	}
}
