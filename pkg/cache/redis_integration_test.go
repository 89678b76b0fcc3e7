//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func redisURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv("TOPODIAGRAM_REDIS_URL"); url != "" {
		return url
	}
	return "redis://localhost:6379/15"
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, redisURL(t))
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer c.Close()

	key := NewScopedKeyer(nil, "test:").ArtifactKey(Hash([]byte(t.Name())), "png")
	t.Cleanup(func() { _ = c.Delete(ctx, key) })

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get() = _, %v, %v, want miss", hit, err)
	}
	if err := c.Set(ctx, key, []byte("data"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "data" {
		t.Errorf("Get() = %q, %v, %v, want data hit", data, hit, err)
	}

	n, err := c.Clear(ctx, "test:artifact:*")
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n < 1 {
		t.Errorf("Clear() = %d, want at least 1", n)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get() after Clear() should miss")
	}
}
