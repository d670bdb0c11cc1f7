package sunevents

import (
	"context"
	"fmt"
	"time"

	"github.com/vastr/panchanga/internal/domain/vara"
	"github.com/vastr/panchanga/internal/infra/memo"
)

// Cached memoises another provider per date and rounded place.
type Cached struct {
	next  vara.SunEventsProvider
	store memo.Store
	ttl   time.Duration
}

// NewCached wraps next with a memo store.
func NewCached(next vara.SunEventsProvider, store memo.Store, ttl time.Duration) *Cached {
	return &Cached{next: next, store: store, ttl: ttl}
}

type events struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// SunEvents implements vara.SunEventsProvider.
func (c *Cached) SunEvents(ctx context.Context, date time.Time, place vara.Place) (time.Time, time.Time, error) {
	res, err := memo.Fetch(ctx, c.store, cacheKey(date, place), c.ttl, func(ctx context.Context) (events, error) {
		rise, set, err := c.next.SunEvents(ctx, date, place)
		return events{Sunrise: rise, Sunset: set}, err
	})
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return res.Sunrise, res.Sunset, nil
}

// cacheKey rounds coordinates to 1e-4 degrees (about 11 m) and elevation to
// whole metres; neither moves sunrise by a measurable amount.
func cacheKey(date time.Time, place vara.Place) string {
	return fmt.Sprintf("sun:%s:%.4f:%.4f:%.0f", date.Format(time.DateOnly), place.Latitude, place.Longitude, place.Elevation)
}

var _ vara.SunEventsProvider = (*Cached)(nil)
