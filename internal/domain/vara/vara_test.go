package vara

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vastr/panchanga/internal/domain/elements"
)

// fixedEvents puts sunrise at 06:00 and sunset at 18:00 UTC every day.
type fixedEvents struct {
	calls []time.Time
	err   error
	zero  bool
}

func (f *fixedEvents) SunEvents(_ context.Context, date time.Time, _ Place) (time.Time, time.Time, error) {
	f.calls = append(f.calls, date)
	if f.err != nil {
		return time.Time{}, time.Time{}, f.err
	}
	if f.zero {
		return time.Time{}, time.Time{}, nil
	}
	return date.Add(6 * time.Hour), date.Add(18 * time.Hour), nil
}

func TestComputeAfterSunrise(t *testing.T) {
	events := &fixedEvents{}
	calc := NewCalculator(events)
	instant := time.Date(2025, 3, 28, 14, 0, 0, 0, time.UTC)

	day, err := calc.Compute(context.Background(), instant, Place{Latitude: 51.4769, Longitude: -0.0005})
	require.NoError(t, err)
	require.Equal(t, 5, day.Number)
	require.Equal(t, "Friday", day.Name)
	require.Equal(t, "Shukravara", day.Sanskrit)
	require.Equal(t, "Venus", day.Ruler)
	require.Equal(t, elements.Favorable, day.Favorability)
	require.Equal(t, time.Date(2025, 3, 28, 6, 0, 0, 0, time.UTC), day.Sunrise)
	require.Equal(t, time.Date(2025, 3, 28, 18, 0, 0, 0, time.UTC), day.Sunset)
	require.Equal(t, time.Date(2025, 3, 29, 6, 0, 0, 0, time.UTC), day.NextSunrise)
	require.Len(t, events.calls, 2)
}

func TestComputeBeforeSunriseBelongsToPreviousDay(t *testing.T) {
	calc := NewCalculator(&fixedEvents{})
	instant := time.Date(2025, 3, 28, 5, 59, 59, 0, time.UTC)

	day, err := calc.Compute(context.Background(), instant, Place{})
	require.NoError(t, err)
	require.Equal(t, "Thursday", day.Name)
	require.Equal(t, time.Date(2025, 3, 27, 0, 0, 0, 0, time.UTC), day.Date)
	require.True(t, !instant.Before(day.Sunrise) && instant.Before(day.NextSunrise))
}

func TestComputeAtSunriseStartsNewDay(t *testing.T) {
	calc := NewCalculator(&fixedEvents{})
	instant := time.Date(2025, 3, 30, 6, 0, 0, 0, time.UTC)

	day, err := calc.Compute(context.Background(), instant, Place{})
	require.NoError(t, err)
	require.Equal(t, "Sunday", day.Name)
	require.Equal(t, elements.Neutral, day.Favorability)
	require.Equal(t, instant, day.Sunrise)
}

func TestComputeUsesLocalCivilDate(t *testing.T) {
	calc := NewCalculator(&fixedEvents{})
	// 23:00 UTC on Friday is already Saturday in UTC+9.
	instant := time.Date(2025, 3, 28, 23, 0, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*3600)

	day, err := calc.Compute(context.Background(), instant, Place{Location: tokyo})
	require.NoError(t, err)
	// Saturday's sunrise (06:00 UTC) is after the instant, so it is still Friday.
	require.Equal(t, "Friday", day.Name)
	require.Equal(t, time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC), day.Date)
}

func TestComputePropagatesProviderFailure(t *testing.T) {
	boom := errors.New("boom")
	calc := NewCalculator(&fixedEvents{err: boom})

	_, err := calc.Compute(context.Background(), time.Now(), Place{})
	require.ErrorIs(t, err, boom)
}

func TestComputeReportsPolarNight(t *testing.T) {
	calc := NewCalculator(&fixedEvents{zero: true})

	_, err := calc.Compute(context.Background(), time.Now(), Place{Latitude: 89})
	require.ErrorIs(t, err, ErrNoSunrise)
}

func TestRecordsFollowWeekdays(t *testing.T) {
	unfavorable := map[time.Weekday]bool{time.Tuesday: true, time.Saturday: true}
	for d := time.Sunday; d <= time.Saturday; d++ {
		rec := For(d)
		require.Equal(t, int(d), rec.Number)
		require.Equal(t, d.String(), rec.Name)
		switch {
		case d == time.Sunday:
			require.Equal(t, elements.Neutral, rec.Favorability)
		case unfavorable[d]:
			require.Equal(t, elements.Unfavorable, rec.Favorability)
		default:
			require.Equal(t, elements.Favorable, rec.Favorability)
		}
	}
}
