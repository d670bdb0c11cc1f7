package sunevents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vastr/panchanga/internal/domain/vara"
	"github.com/vastr/panchanga/internal/infra/memo"
)

var greenwich = vara.Place{Latitude: 51.4769, Longitude: -0.0005}

func TestBackendsAgreeOnGreenwich(t *testing.T) {
	date := time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)
	for _, backend := range []Backend{GoSunrise, SunCalc} {
		rise, set, err := New(backend).SunEvents(context.Background(), date, greenwich)
		require.NoError(t, err, backend)
		// Published times for London on 2025-03-28: 05:46 and 18:27 UTC.
		require.WithinDuration(t, time.Date(2025, 3, 28, 5, 46, 0, 0, time.UTC), rise, 5*time.Minute, backend)
		require.WithinDuration(t, time.Date(2025, 3, 28, 18, 27, 0, 0, time.UTC), set, 5*time.Minute, backend)
	}
}

func TestElevationAdvancesSunrise(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sea, _, err := SunriseProvider{}.SunEvents(context.Background(), date, greenwich)
	require.NoError(t, err)
	high := greenwich
	high.Elevation = 2000
	mountain, _, err := SunriseProvider{}.SunEvents(context.Background(), date, high)
	require.NoError(t, err)
	require.True(t, mountain.Before(sea))
}

func TestPolarNightHasNoSunrise(t *testing.T) {
	date := time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC)
	_, _, err := SunriseProvider{}.SunEvents(context.Background(), date, vara.Place{Latitude: 78.22, Longitude: 15.65})
	require.ErrorIs(t, err, vara.ErrNoSunrise)
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("")
	require.NoError(t, err)
	require.Equal(t, GoSunrise, b)
	b, err = ParseBackend("SunCalc")
	require.NoError(t, err)
	require.Equal(t, SunCalc, b)
	_, err = ParseBackend("swisseph")
	require.Error(t, err)
}

type countingProvider struct{ calls int }

func (c *countingProvider) SunEvents(_ context.Context, date time.Time, _ vara.Place) (time.Time, time.Time, error) {
	c.calls++
	return date.Add(6 * time.Hour), date.Add(18 * time.Hour), nil
}

func TestCachedMemoisesPerDateAndPlace(t *testing.T) {
	next := &countingProvider{}
	cached := NewCached(next, memo.NewMemoryStore(), time.Hour)
	ctx := context.Background()
	date := time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		rise, set, err := cached.SunEvents(ctx, date, greenwich)
		require.NoError(t, err)
		require.Equal(t, date.Add(6*time.Hour), rise)
		require.Equal(t, date.Add(18*time.Hour), set)
	}
	require.Equal(t, 1, next.calls)

	_, _, err := cached.SunEvents(ctx, date.AddDate(0, 0, 1), greenwich)
	require.NoError(t, err)
	require.Equal(t, 2, next.calls)
}
