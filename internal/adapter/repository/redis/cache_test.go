package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

func TestCacheSetGetDelete(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "items", []byte(`[{"id":"a"}]`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := cache.Get(ctx, "items")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Errorf("unexpected value: %s", got)
	}

	if err := cache.Delete(ctx, "items"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "items"); err != redislib.Nil {
		t.Errorf("expected redis.Nil after delete, got %v", err)
	}
}

func TestCacheGetMissingKey(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client)

	if _, err := cache.Get(context.Background(), "missing"); err != redislib.Nil {
		t.Errorf("expected redis.Nil for missing key, got %v", err)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "items", []byte("x"), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := cache.Get(ctx, "items"); err != redislib.Nil {
		t.Errorf("expected expired key to be gone, got %v", err)
	}
}
