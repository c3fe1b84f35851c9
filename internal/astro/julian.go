package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// JulianDate returns the Julian date of the instant t.
func JulianDate(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// DayJulianDate returns the Julian date of 00:00 UTC on the UTC calendar
// date of t, shifted west by the observer's longitude.
func DayJulianDate(t time.Time, longitude float64) float64 {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return JulianDate(midnight) - longitude/360
}
