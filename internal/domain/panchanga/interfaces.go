package panchanga

import "context"

// TimezoneProvider maps coordinates to an IANA zone name.
type TimezoneProvider interface {
	TimezoneFor(ctx context.Context, latitude, longitude float64) (string, error)
}

// ElevationProvider returns the ground elevation in metres.
type ElevationProvider interface {
	Elevation(ctx context.Context, latitude, longitude float64) (float64, error)
}

// HistoryRepository persists served computations.
type HistoryRepository interface {
	Save(ctx context.Context, entry HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)
}
