package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Integration tests require Redis running on localhost:6379 and are
// skipped otherwise.
const testRedisAddr = "localhost:6379"

// setupTestCache creates a cache instance for testing.
// Returns the cache and a cleanup function.
func setupTestCache(t *testing.T, prefix string) (*Cache, func()) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	cleanupKeys(ctx, client, prefix+"*")

	c := New(client, prefix, 5*time.Minute)

	cleanup := func() {
		cleanupKeys(ctx, client, prefix+"*")
		client.Close()
	}

	return c, cleanup
}

// cleanupKeys removes all keys matching the pattern.
func cleanupKeys(ctx context.Context, client *redis.Client, pattern string) {
	var cursor uint64
	for {
		keys, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
}

func TestCacheSetAndGet(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:setget:")
	defer cleanup()

	ctx := context.Background()

	type testData struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	if err := c.Set(ctx, "item", testData{ID: 1, Name: "report"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got testData
	found, err := c.Get(ctx, "item", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("expected a cache hit")
	}
	if got.ID != 1 || got.Name != "report" {
		t.Errorf("got %+v", got)
	}
}

func TestCacheMissIsNotAnError(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:miss:")
	defer cleanup()

	var got string
	found, err := c.Get(context.Background(), "absent", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("expected a miss")
	}
}

func TestCacheDelete(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:delete:")
	defer cleanup()

	ctx := context.Background()
	if err := c.Set(ctx, "item", "value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "item"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var got string
	found, err := c.Get(ctx, "item", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("expected entry to be gone")
	}
}

func TestCacheInvalidateAll(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:invalidate:")
	defer cleanup()

	ctx := context.Background()
	for _, key := range []string{"id:1", "id:2", "list:0:100"} {
		if err := c.Set(ctx, key, "value"); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("InvalidateAll() error = %v", err)
	}

	for _, key := range []string{"id:1", "id:2", "list:0:100"} {
		var got string
		found, err := c.Get(ctx, key, &got)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", key, err)
		}
		if found {
			t.Errorf("expected %q to be invalidated", key)
		}
	}
}

func TestCacheStats(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:stats:")
	defer cleanup()

	ctx := context.Background()

	var got string
	if _, err := c.Get(ctx, "absent", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if err := c.Set(ctx, "item", "value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := c.Get(ctx, "item", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("hits = %d, expected 1", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("misses = %d, expected 1", stats.Misses)
	}
	if stats.Sets != 1 {
		t.Errorf("sets = %d, expected 1", stats.Sets)
	}
	if stats.TotalGets != 2 {
		t.Errorf("total gets = %d, expected 2", stats.TotalGets)
	}
	if stats.HitRate != 50 {
		t.Errorf("hit rate = %v, expected 50", stats.HitRate)
	}

	c.ResetStats()
	if c.Stats().TotalGets != 0 {
		t.Error("expected counters to reset")
	}
}
