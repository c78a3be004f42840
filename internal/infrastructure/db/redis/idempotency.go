package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyTTL is how long an Idempotency-Key is remembered.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps Idempotency-Key headers to the asset they created.
// Key format: idem:asset:<key>
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl means DefaultIdempotencyTTL.
func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the stored asset id, or "" when the key is unknown.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, error) {
	id, err := s.client.Get(ctx, idempotencyKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, nil
}

// Remember records assetID under key. An existing entry is kept.
func (s *IdempotencyStore) Remember(ctx context.Context, key, assetID string) error {
	if err := s.client.SetNX(ctx, idempotencyKey(key), assetID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func idempotencyKey(key string) string {
	return "idem:asset:" + key
}
