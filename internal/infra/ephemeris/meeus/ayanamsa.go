package meeus

import (
	"fmt"
	"strings"

	"github.com/mooncaker816/learnmeeus/v3/base"
)

// Ayanamsa selects the zodiac longitudes are reported in.
type Ayanamsa string

const (
	// Lahiri is the sidereal zodiac adopted by the Indian calendar reform.
	Lahiri Ayanamsa = "lahiri"
	// Tropical reports longitudes from the true equinox of date.
	Tropical Ayanamsa = "tropical"
)

// ParseAyanamsa accepts "lahiri" (also the empty string) or "tropical".
func ParseAyanamsa(value string) (Ayanamsa, error) {
	switch Ayanamsa(strings.ToLower(strings.TrimSpace(value))) {
	case "", Lahiri:
		return Lahiri, nil
	case Tropical:
		return Tropical, nil
	default:
		return "", fmt.Errorf("unknown ayanamsa %q", value)
	}
}

// offset returns the ayanamsa in degrees at jde.
func (a Ayanamsa) offset(jde float64) float64 {
	if a == Tropical {
		return 0
	}
	T := base.J2000Century(jde)
	// Lahiri value at J2000 advanced by general precession in longitude.
	return 23.857092 + (5028.796195*T+1.1054348*T*T)/3600
}
