package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCivilDateUsesLocation(t *testing.T) {
	instant := time.Date(2025, 3, 28, 20, 0, 0, 0, time.UTC)
	kolkata := time.FixedZone("IST", 5*3600+1800)

	require.Equal(t, time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC), CivilDate(instant, nil))
	require.Equal(t, time.Date(2025, 3, 29, 0, 0, 0, 0, time.UTC), CivilDate(instant, kolkata))
}

func TestAddDaysCrossesMonth(t *testing.T) {
	date := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), AddDays(date, 1))
	require.Equal(t, time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC), AddDays(date, -1))
}
