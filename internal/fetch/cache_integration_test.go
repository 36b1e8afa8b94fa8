//go:build integration

package fetch

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	cache := NewRedisCache(client)
	url := "https://mp.weixin.qq.com/s/integration-" + time.Now().Format("150405.000")

	_, ok, err := cache.Get(ctx, url)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, url, "<html></html>", time.Minute))
	html, ok, err := cache.Get(ctx, url)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<html></html>", html)

	_ = client.Del(ctx, CacheKey(url)).Err()
}
