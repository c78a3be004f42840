package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyKeyFormat(t *testing.T) {
	if got := idempotencyKey("abc-123"); got != "idem:asset:abc-123" {
		t.Fatalf("unexpected key: %q", got)
	}
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	if s := NewIdempotencyStore(nil, 0); s.ttl != DefaultIdempotencyTTL {
		t.Fatalf("expected default ttl, got %v", s.ttl)
	}
	if s := NewIdempotencyStore(nil, time.Minute); s.ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", s.ttl)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := Connect(ctx, Config{Addr: "127.0.0.1:1", Timeout: 500 * time.Millisecond}); err == nil {
		t.Fatalf("expected connect error for unreachable address")
	}
}

func newTestStore(t *testing.T, ttl time.Duration) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, ttl), mr
}

func TestIdempotencyStore_LookupMiss(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	id, err := store.Lookup(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestIdempotencyStore_RememberThenLookup(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Remember(ctx, "k-1", "asset-1"))

	id, err := store.Lookup(ctx, "k-1")
	require.NoError(t, err)
	assert.Equal(t, "asset-1", id)
	mr.CheckGet(t, "idem:asset:k-1", "asset-1")
	assert.Equal(t, time.Hour, mr.TTL("idem:asset:k-1"))
}

func TestIdempotencyStore_RememberKeepsFirstAsset(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Remember(ctx, "k-1", "asset-1"))
	require.NoError(t, store.Remember(ctx, "k-1", "asset-2"))

	id, err := store.Lookup(ctx, "k-1")
	require.NoError(t, err)
	assert.Equal(t, "asset-1", id)
}

func TestIdempotencyStore_KeyExpires(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Remember(ctx, "k-1", "asset-1"))
	mr.FastForward(time.Minute + time.Second)

	id, err := store.Lookup(ctx, "k-1")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestIdempotencyStore_ServerError(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	_, err := store.Lookup(context.Background(), "warm-up")
	require.NoError(t, err)
	mr.SetError("ERR injected failure")

	_, err = store.Lookup(context.Background(), "k-1")
	assert.ErrorContains(t, err, "idempotency lookup")
	assert.ErrorContains(t, store.Remember(context.Background(), "k-1", "asset-1"), "idempotency remember")
}

func TestConnect_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, Ping(client)(context.Background()))
}
