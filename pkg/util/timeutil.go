package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// CivilDate returns the calendar date of t as observed in loc, as midnight UTC.
// A nil loc means UTC.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a civil date by n whole days.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}
