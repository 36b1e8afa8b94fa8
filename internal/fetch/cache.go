package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long a fetched page stays cached.
const DefaultCacheTTL = 24 * time.Hour

// Cache keeps fetched HTML by URL.
type Cache interface {
	Get(ctx context.Context, url string) (html string, ok bool, err error)
	Set(ctx context.Context, url, html string, ttl time.Duration) error
}

// RedisCache stores pages in Redis under page:{sha256(url)}.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache returns a cache backed by client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// CacheKey is the Redis key of a cached page.
func CacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "page:" + hex.EncodeToString(sum[:])
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, url string) (string, bool, error) {
	html, err := c.client.Get(ctx, CacheKey(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cached page: %w", err)
	}
	return html, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, url, html string, ttl time.Duration) error {
	if err := c.client.Set(ctx, CacheKey(url), html, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}
	return nil
}
