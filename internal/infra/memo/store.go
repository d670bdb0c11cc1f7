// Package memo caches deterministic collaborator results, such as sun events
// and elevations, keyed by rounded inputs.
package memo

import (
	"context"
	"encoding/json"
	"time"
)

// Store holds opaque values with an optional TTL. A zero TTL never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Fetch returns the cached value of key, or computes, stores and returns it.
// Store failures degrade to calling compute; they are never returned.
func Fetch[T any](ctx context.Context, store Store, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	if payload, ok, err := store.Get(ctx, key); err == nil && ok {
		var cached T
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}
	value, err := compute(ctx)
	if err != nil {
		return value, err
	}
	if payload, err := json.Marshal(value); err == nil {
		_ = store.Set(ctx, key, payload, ttl)
	}
	return value, nil
}
