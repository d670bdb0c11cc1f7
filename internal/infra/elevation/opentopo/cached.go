package opentopo

import (
	"context"
	"fmt"
	"time"

	"github.com/vastr/panchanga/internal/infra/memo"
)

// Lookup is satisfied by Client.
type Lookup interface {
	Elevation(ctx context.Context, latitude, longitude float64) (float64, error)
}

// Cached memoises elevations per coordinates rounded to 1e-4 degrees.
type Cached struct {
	next  Lookup
	store memo.Store
	ttl   time.Duration
}

// NewCached wraps next with a memo store.
func NewCached(next Lookup, store memo.Store, ttl time.Duration) *Cached {
	return &Cached{next: next, store: store, ttl: ttl}
}

// Elevation implements panchanga.ElevationProvider.
func (c *Cached) Elevation(ctx context.Context, latitude, longitude float64) (float64, error) {
	key := fmt.Sprintf("elev:%.4f:%.4f", latitude, longitude)
	return memo.Fetch(ctx, c.store, key, c.ttl, func(ctx context.Context) (float64, error) {
		return c.next.Elevation(ctx, latitude, longitude)
	})
}
