// Package sunevents computes sunrise and sunset for the Vedic day boundary.
package sunevents

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"

	"github.com/vastr/panchanga/internal/domain/vara"
)

// Backend names the algorithm used for sun events.
type Backend string

const (
	GoSunrise Backend = "gosunrise"
	SunCalc   Backend = "suncalc"
)

// ParseBackend accepts "gosunrise" (also the empty string) or "suncalc".
func ParseBackend(value string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(value))) {
	case "", GoSunrise:
		return GoSunrise, nil
	case SunCalc:
		return SunCalc, nil
	default:
		return "", fmt.Errorf("unknown sun events backend %q", value)
	}
}

// New returns the provider of a backend.
func New(backend Backend) vara.SunEventsProvider {
	if backend == SunCalc {
		return SunCalcProvider{}
	}
	return SunriseProvider{}
}

// standardAltitude is the apparent altitude of the upper limb at rise,
// refraction and semidiameter included.
const standardAltitude = -0.833

// horizonDip returns how far below the horizon, in degrees, an observer at
// elevation metres sees it.
func horizonDip(elevation float64) float64 {
	if elevation <= 0 {
		return 0
	}
	return 2.076 * math.Sqrt(elevation) / 60
}

// SunriseProvider uses github.com/nathan-osman/go-sunrise.
type SunriseProvider struct{}

// SunEvents implements vara.SunEventsProvider.
func (SunriseProvider) SunEvents(ctx context.Context, date time.Time, place vara.Place) (time.Time, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	y, m, d := date.Date()
	var rise, set time.Time
	if place.Elevation > 0 {
		rise, set = sunrise.TimeOfElevation(place.Latitude, place.Longitude,
			standardAltitude-horizonDip(place.Elevation), y, m, d)
	} else {
		rise, set = sunrise.SunriseSunset(place.Latitude, place.Longitude, y, m, d)
	}
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}, vara.ErrNoSunrise
	}
	return rise.UTC(), set.UTC(), nil
}

// SunCalcProvider uses github.com/sixdouglas/suncalc, which accounts for
// the observer height itself.
type SunCalcProvider struct{}

// SunEvents implements vara.SunEventsProvider.
func (SunCalcProvider) SunEvents(ctx context.Context, date time.Time, place vara.Place) (time.Time, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	// suncalc picks the solar cycle nearest to the instant, so ask at local
	// mean noon.
	y, m, d := date.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Add(-time.Duration(place.Longitude / 15 * float64(time.Hour)))
	times := suncalc.GetTimesWithObserver(noon, suncalc.Observer{
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Height:    math.Max(place.Elevation, 0),
		Location:  time.UTC,
	})
	rise, set := times[suncalc.Sunrise].Value, times[suncalc.Sunset].Value
	if rise.IsZero() || set.IsZero() || rise.Year() < 1 || !set.After(rise) {
		return time.Time{}, time.Time{}, vara.ErrNoSunrise
	}
	return rise.UTC(), set.UTC(), nil
}

var (
	_ vara.SunEventsProvider = SunriseProvider{}
	_ vara.SunEventsProvider = SunCalcProvider{}
)
