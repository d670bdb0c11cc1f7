// Package meeus supplies apparent geocentric Sun and Moon positions from the
// algorithms of Meeus' Astronomical Algorithms.
package meeus

import (
	"context"
	"fmt"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/base"
	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/moonposition"
	"github.com/mooncaker816/learnmeeus/v3/nutation"
	"github.com/mooncaker816/learnmeeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/vastr/panchanga/internal/domain/angles"
	"github.com/vastr/panchanga/internal/domain/boundary"
)

// Provider implements angles.PositionProvider. It is stateless and safe for
// concurrent use.
type Provider struct {
	ayanamsa Ayanamsa
}

// NewProvider constructs a provider reporting longitudes in the given zodiac.
func NewProvider(ayanamsa Ayanamsa) *Provider {
	if ayanamsa == "" {
		ayanamsa = Lahiri
	}
	return &Provider{ayanamsa: ayanamsa}
}

// Ayanamsa reports the configured zodiac.
func (p *Provider) Ayanamsa() Ayanamsa {
	return p.ayanamsa
}

// Longitude implements angles.PositionProvider.
func (p *Provider) Longitude(ctx context.Context, body angles.Body, t time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	jde := ephemerisDay(t)
	var lon unit.Angle
	switch body {
	case angles.Sun:
		lon = solar.ApparentLongitude(base.J2000Century(jde))
	case angles.Moon:
		λ, _, _ := moonposition.Position(jde)
		Δψ, _ := nutation.Nutation(jde)
		lon = λ + Δψ
	default:
		return 0, fmt.Errorf("unsupported body %s", body)
	}
	return boundary.Normalize(lon.Deg() - p.ayanamsa.offset(jde)), nil
}

// Latitude implements angles.PositionProvider. The solar latitude never
// exceeds 1.2 arcseconds and is reported as zero.
func (p *Provider) Latitude(ctx context.Context, body angles.Body, t time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	switch body {
	case angles.Sun:
		return 0, nil
	case angles.Moon:
		_, β, _ := moonposition.Position(ephemerisDay(t))
		return β.Deg(), nil
	default:
		return 0, fmt.Errorf("unsupported body %s", body)
	}
}

// ephemerisDay converts a UT instant to a Julian Ephemeris Day.
func ephemerisDay(t time.Time) float64 {
	jd := julian.TimeToJD(t)
	return jd + deltaT(t, jd).Day()
}

var _ angles.PositionProvider = (*Provider)(nil)
