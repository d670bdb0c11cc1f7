package meeus

import (
	"time"

	"github.com/mooncaker816/learnmeeus/v3/deltat"
	"github.com/soniakeys/unit"
)

// deltaT returns TT minus UT at t. The observed table covers 1620 to 2010;
// outside it Espenak and Meeus polynomials are used.
func deltaT(t time.Time, jd float64) unit.Time {
	y := decimalYear(t)
	switch {
	case y < 948:
		return deltat.PolyBefore948(y)
	case y < 1620:
		return deltat.Poly948to1600(y)
	case y < 2010:
		return deltat.Interp10A(jd)
	case y < 2050:
		u := y - 2000
		return unit.Time(62.92 + 0.32217*u + 0.005589*u*u)
	case y < 2150:
		u := (y - 1820) / 100
		return unit.Time(-20 + 32*u*u - 0.5628*(2150-y))
	default:
		u := (y - 1820) / 100
		return unit.Time(-20 + 32*u*u)
	}
}

func decimalYear(t time.Time) float64 {
	t = t.UTC()
	start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return float64(t.Year()) + float64(t.Sub(start))/float64(end.Sub(start))
}
