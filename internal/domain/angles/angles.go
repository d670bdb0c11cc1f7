// Package angles derives the four periodic Sun/Moon angles that drive the
// cyclic Panchanga elements.
package angles

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vastr/panchanga/internal/domain/boundary"
)

// Body identifies a luminary known to the position provider.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return fmt.Sprintf("body(%d)", int(b))
	}
}

// PositionProvider supplies ecliptic coordinates in degrees.
type PositionProvider interface {
	Longitude(ctx context.Context, body Body, t time.Time) (float64, error)
	Latitude(ctx context.Context, body Body, t time.Time) (float64, error)
}

// Slot widths in degrees.
const (
	TithiWidth     = 12.0
	NakshatraWidth = 40.0 / 3
	YogaWidth      = 40.0 / 3
	KaranaWidth    = 6.0
)

// Kind enumerates the cyclic elements.
type Kind int

const (
	Tithi Kind = iota
	Nakshatra
	Yoga
	Karana
)

// Kinds lists every cyclic element in display order.
var Kinds = []Kind{Tithi, Nakshatra, Yoga, Karana}

func (k Kind) String() string {
	switch k {
	case Tithi:
		return "tithi"
	case Nakshatra:
		return "nakshatra"
	case Yoga:
		return "yoga"
	case Karana:
		return "karana"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Width returns the slot width of the kind.
func (k Kind) Width() float64 {
	switch k {
	case Tithi:
		return TithiWidth
	case Nakshatra:
		return NakshatraWidth
	case Yoga:
		return YogaWidth
	case Karana:
		return KaranaWidth
	default:
		return 0
	}
}

// Slots returns how many slots of the kind tile the circle.
func (k Kind) Slots() int {
	if w := k.Width(); w > 0 {
		return int(math.Round(360 / w))
	}
	return 0
}

// Functions exposes the derived angles of one provider.
type Functions struct {
	provider PositionProvider
}

// NewFunctions wraps a position provider.
func NewFunctions(provider PositionProvider) Functions {
	return Functions{provider: provider}
}

// Tithi is the lunar phase angle, Moon minus Sun.
func (f Functions) Tithi(ctx context.Context, t time.Time) (float64, error) {
	sun, moon, err := f.pair(ctx, t)
	if err != nil {
		return 0, err
	}
	return boundary.Normalize(moon - sun), nil
}

// Nakshatra is the Moon longitude.
func (f Functions) Nakshatra(ctx context.Context, t time.Time) (float64, error) {
	moon, err := f.longitude(ctx, Moon, t)
	if err != nil {
		return 0, err
	}
	return boundary.Normalize(moon), nil
}

// Yoga is the Sun plus Moon longitude.
func (f Functions) Yoga(ctx context.Context, t time.Time) (float64, error) {
	sun, moon, err := f.pair(ctx, t)
	if err != nil {
		return 0, err
	}
	return boundary.Normalize(sun + moon), nil
}

// Karana is the lunar phase angle again; only the width differs.
func (f Functions) Karana(ctx context.Context, t time.Time) (float64, error) {
	return f.Tithi(ctx, t)
}

// For returns the angle function of a kind.
func (f Functions) For(kind Kind) (boundary.AngleFunc, error) {
	switch kind {
	case Tithi:
		return f.Tithi, nil
	case Nakshatra:
		return f.Nakshatra, nil
	case Yoga:
		return f.Yoga, nil
	case Karana:
		return f.Karana, nil
	default:
		return nil, fmt.Errorf("unknown element kind %d", int(kind))
	}
}

func (f Functions) pair(ctx context.Context, t time.Time) (sun, moon float64, err error) {
	if sun, err = f.longitude(ctx, Sun, t); err != nil {
		return 0, 0, err
	}
	if moon, err = f.longitude(ctx, Moon, t); err != nil {
		return 0, 0, err
	}
	return sun, moon, nil
}

func (f Functions) longitude(ctx context.Context, body Body, t time.Time) (float64, error) {
	v, err := f.provider.Longitude(ctx, body, t)
	if err != nil {
		return 0, fmt.Errorf("%s longitude at %s: %w", body, t.UTC().Format(time.RFC3339), err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s longitude at %s: %w", body, t.UTC().Format(time.RFC3339), boundary.ErrNonFinite)
	}
	return v, nil
}
