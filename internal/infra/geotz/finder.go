// Package geotz maps coordinates to IANA timezone names with the
// polygon index embedded in github.com/ringsaturn/tzf.
package geotz

import (
	"context"
	"fmt"

	"github.com/ringsaturn/tzf"
)

// Finder implements panchanga.TimezoneProvider.
type Finder struct {
	finder tzf.F
}

// NewFinder loads the embedded timezone index. Loading takes a noticeable
// fraction of a second, so build one Finder per process.
func NewFinder() (*Finder, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("load timezone index: %w", err)
	}
	return &Finder{finder: finder}, nil
}

// TimezoneFor returns the zone containing the point.
func (f *Finder) TimezoneFor(ctx context.Context, latitude, longitude float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := f.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("no timezone at %.4f,%.4f", latitude, longitude)
	}
	return name, nil
}
