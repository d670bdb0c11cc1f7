// Package vara resolves the Vedic weekday. A Vedic day runs from one sunrise
// to the next, so an instant before local sunrise still belongs to the
// previous civil day.
package vara

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vastr/panchanga/internal/domain/elements"
	"github.com/vastr/panchanga/pkg/util"
)

// ErrNoSunrise reports a date without a sunrise at the place (polar day or night).
var ErrNoSunrise = errors.New("sun does not rise on this date")

// Place is a point on the Earth surface. Location decides which civil date
// an instant falls on; nil means UTC.
type Place struct {
	Latitude  float64
	Longitude float64
	Elevation float64
	Location  *time.Location
}

// SunEventsProvider returns sunrise and sunset, in UTC, of a civil date
// given as midnight UTC.
type SunEventsProvider interface {
	SunEvents(ctx context.Context, date time.Time, place Place) (sunrise, sunset time.Time, err error)
}

// Record classifies a weekday. Number 0 is Sunday.
type Record struct {
	Number       int
	Name         string
	Sanskrit     string
	Ruler        string
	Favorability elements.Favorability
}

var records = [7]Record{
	{0, "Sunday", "Ravivara", "Sun", elements.Neutral},
	{1, "Monday", "Somavara", "Moon", elements.Favorable},
	{2, "Tuesday", "Mangalavara", "Mars", elements.Unfavorable},
	{3, "Wednesday", "Budhavara", "Mercury", elements.Favorable},
	{4, "Thursday", "Guruvara", "Jupiter", elements.Favorable},
	{5, "Friday", "Shukravara", "Venus", elements.Favorable},
	{6, "Saturday", "Shanivara", "Saturn", elements.Unfavorable},
}

// For returns the record of a weekday.
func For(day time.Weekday) Record {
	return records[int(day)%7]
}

// Day is the resolved Vedic day around an instant. Sunrise <= instant < NextSunrise.
type Day struct {
	Record
	// Date is the civil date the Vedic day is named after, as midnight UTC.
	Date        time.Time
	Sunrise     time.Time
	Sunset      time.Time
	NextSunrise time.Time
}

// Calculator resolves Vedic days from a sun events provider.
type Calculator struct {
	events SunEventsProvider
}

// NewCalculator wires the events provider.
func NewCalculator(events SunEventsProvider) *Calculator {
	return &Calculator{events: events}
}

// Compute returns the Vedic day containing instant at place.
func (c *Calculator) Compute(ctx context.Context, instant time.Time, place Place) (Day, error) {
	instant = instant.UTC()
	date := util.CivilDate(instant, place.Location)

	sunrise, sunset, err := c.sunEvents(ctx, date, place)
	if err != nil {
		return Day{}, err
	}
	if instant.Before(sunrise) {
		date = util.AddDays(date, -1)
		if sunrise, sunset, err = c.sunEvents(ctx, date, place); err != nil {
			return Day{}, err
		}
	}
	next, _, err := c.sunEvents(ctx, util.AddDays(date, 1), place)
	if err != nil {
		return Day{}, err
	}
	if !next.After(instant) {
		return Day{}, fmt.Errorf("next sunrise %s not after %s", next.Format(time.RFC3339), instant.Format(time.RFC3339))
	}
	return Day{
		Record:      For(date.Weekday()),
		Date:        date,
		Sunrise:     sunrise,
		Sunset:      sunset,
		NextSunrise: next,
	}, nil
}

func (c *Calculator) sunEvents(ctx context.Context, date time.Time, place Place) (time.Time, time.Time, error) {
	sunrise, sunset, err := c.events.SunEvents(ctx, date, place)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("sun events on %s: %w", date.Format(time.DateOnly), err)
	}
	if sunrise.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("sun events on %s: %w", date.Format(time.DateOnly), ErrNoSunrise)
	}
	return sunrise.UTC(), sunset.UTC(), nil
}
