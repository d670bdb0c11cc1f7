package panchanga

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vastr/panchanga/internal/domain/angles"
	"github.com/vastr/panchanga/internal/domain/boundary"
	"github.com/vastr/panchanga/internal/domain/vara"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// linearPositions moves the Sun 1 and the Moon 13 degrees per day from
// fixed longitudes at epoch.
type linearPositions struct {
	sun0, moon0 float64
	err         error
	nan         bool
}

func newLinearPositions() *linearPositions {
	return &linearPositions{sun0: 100, moon0: 50}
}

func (p *linearPositions) Longitude(_ context.Context, body angles.Body, t time.Time) (float64, error) {
	if p.err != nil {
		return 0, p.err
	}
	if p.nan {
		return nanValue(), nil
	}
	days := t.Sub(epoch).Hours() / 24
	if body == angles.Sun {
		return boundary.Normalize(p.sun0 + days), nil
	}
	return boundary.Normalize(p.moon0 + 13*days), nil
}

func (p *linearPositions) Latitude(_ context.Context, body angles.Body, _ time.Time) (float64, error) {
	if body == angles.Moon {
		return 2.5, nil
	}
	return 0, nil
}

func nanValue() float64 {
	zero := 0.0
	return zero / zero
}

// dailyEvents puts sunrise at 06:00 and sunset at 18:00 UTC.
type dailyEvents struct{}

func (dailyEvents) SunEvents(_ context.Context, date time.Time, _ vara.Place) (time.Time, time.Time, error) {
	return date.Add(6 * time.Hour), date.Add(18 * time.Hour), nil
}

type stubZones struct {
	name  string
	err   error
	calls int
}

func (z *stubZones) TimezoneFor(context.Context, float64, float64) (string, error) {
	z.calls++
	return z.name, z.err
}

type stubElevations struct {
	value float64
	err   error
}

func (e stubElevations) Elevation(context.Context, float64, float64) (float64, error) {
	return e.value, e.err
}

type stubHistory struct {
	mu      sync.Mutex
	entries []HistoryEntry
	saveErr error
	limit   int
}

func (h *stubHistory) Save(_ context.Context, entry HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.saveErr != nil {
		return h.saveErr
	}
	h.entries = append(h.entries, entry)
	return nil
}

func (h *stubHistory) Recent(_ context.Context, limit int) ([]HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.limit = limit
	if limit > len(h.entries) {
		limit = len(h.entries)
	}
	return append([]HistoryEntry(nil), h.entries[:limit]...), nil
}

var errProvider = errors.New("ephemeris offline")

func newTestCalculator(positions angles.PositionProvider, cfg Config) *Calculator {
	return NewCalculator(cfg, positions, boundary.NewSolver(boundary.DefaultConfig()), vara.NewCalculator(dailyEvents{}))
}
