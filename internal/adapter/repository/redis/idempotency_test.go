package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyFirstRequestLocksKey(t *testing.T) {
	client, _ := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, cached, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("first request must not find an existing key")
	}
	if cached != nil {
		t.Fatalf("expected no cached response, got %s", cached)
	}
}

func TestIdempotencyReplayReturnsStoredResponse(t *testing.T) {
	client, _ := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Update(ctx, "key-1", []byte(`{"new_balance":40}`), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, cached, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected key to exist on replay")
	}
	if string(cached) != `{"new_balance":40}` {
		t.Errorf("unexpected cached response: %s", cached)
	}
}

func TestIdempotencyKeyExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if err := store.Update(ctx, "key-1", []byte("x"), time.Second); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	exists, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected expired key to be treated as new")
	}
}
