package prayer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/pray/internal/astro"
	"github.com/smokyabdulrahman/pray/internal/method"
)

var (
	// ErrNilSettings is returned when no settings are supplied.
	ErrNilSettings = errors.New("settings must not be nil")

	// ErrInvalidParameterKind is returned when Imsak is configured as an
	// angle or Fajr as a minute offset.
	ErrInvalidParameterKind = errors.New("invalid calculation parameter kind")

	// ErrInvalidHighLatitude is returned for a high-latitude mode outside
	// the declared set. It always wraps astro.ErrNoNightFraction.
	ErrInvalidHighLatitude = errors.New("invalid high-latitude mode")

	// ErrUndefinedTime is returned when a time cannot be computed because
	// the sun never reaches the required angle and no high-latitude
	// adjustment is configured.
	ErrUndefinedTime = errors.New("prayer time is undefined at this latitude and date")
)

// Reference hours of day used to pick the fraction of the day at which the
// solar position is evaluated.
const (
	fajrHour    = 5.0
	sunriseHour = 6.0
	dhuhrHour   = 12.0
	asrHour     = 13.0
	sunsetHour  = 18.0
	maghribHour = 18.0
	ishaHour    = 18.0
)

// dhuhrDelay is 65 seconds in hours: the time for the sun's disk to clear
// the meridian.
const dhuhrDelay = 0.018055555555555554

// RawTimes holds one day's times as hours after local midnight. Values may
// fall outside [0, 24) or be NaN when the sun never reaches an angle.
type RawTimes struct {
	Imsak    float64
	Fajr     float64
	Sunrise  float64
	Dhuha    float64
	Dhuhr    float64
	Asr      float64
	Sunset   float64
	Maghrib  float64
	Isha     float64
	Midnight float64
}

// ComputeDay returns the prayer times for the UTC calendar date of date at
// coordinate c, expressed as instants on that date at the given UTC offset
// in hours. Every time is rounded up to a whole minute.
func ComputeDay(date time.Time, s *Settings, c Geocoordinate, utcOffset float64) (Prayers, error) {
	if s == nil {
		return Prayers{}, ErrNilSettings
	}

	jd := astro.DayJulianDate(date, c.Longitude)

	raw, err := ComputeRaw(jd, s, c.Latitude, c.Altitude)
	if err != nil {
		return Prayers{}, err
	}

	adjusted, err := AdjustTime(raw, s, c.Longitude, utcOffset)
	if err != nil {
		return Prayers{}, err
	}
	adjusted.Midnight = midnightTime(s.Method.Midnight(), adjusted)

	if name, ok := firstUndefined(adjusted); ok {
		return Prayers{}, fmt.Errorf("%w: %s", ErrUndefinedTime, name)
	}

	u := date.UTC()
	base := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, Zone(utcOffset))
	at := func(h float64) time.Time {
		return RoundUp(base.Add(time.Duration(h * float64(time.Hour))))
	}

	return Prayers{
		Imsak:    at(adjusted.Imsak),
		Fajr:     at(adjusted.Fajr),
		Sunrise:  at(adjusted.Sunrise),
		Dhuha:    at(adjusted.Dhuha),
		Dhuhr:    at(adjusted.Dhuhr),
		Asr:      at(adjusted.Asr),
		Sunset:   at(adjusted.Sunset),
		Maghrib:  at(adjusted.Maghrib),
		Isha:     at(adjusted.Isha),
		Midnight: at(adjusted.Midnight),
	}, nil
}

// Today computes the prayer times for the clock's current day.
func Today(clock Clock, s *Settings, c Geocoordinate, utcOffset float64) (Prayers, error) {
	return ComputeDay(clockOrSystem(clock).Now(), s, c, utcOffset)
}

// ComputeRaw evaluates the solar position for each prayer. jd is the
// longitude-corrected Julian date of the day. Imsak, and Maghrib and Isha
// when configured as minute offsets, are left for AdjustTime.
func ComputeRaw(jd float64, s *Settings, latitude, altitude float64) (RawTimes, error) {
	if s == nil {
		return RawTimes{}, ErrNilSettings
	}
	if s.Imsak.Kind != method.MinutesAdjust {
		return RawTimes{}, fmt.Errorf("%w: imsak must be a minute offset", ErrInvalidParameterKind)
	}
	if s.Method.Fajr().Kind != method.Angle {
		return RawTimes{}, fmt.Errorf("%w: fajr must be an angle", ErrInvalidParameterKind)
	}
	if err := checkHighLatitude(s.HighLatitude); err != nil {
		return RawTimes{}, err
	}

	var r RawTimes
	r.Fajr = astro.SolarTime(jd, astro.DayFraction(fajrHour), s.Method.Fajr().Value, latitude, astro.CounterClockwise)
	r.Sunrise = astro.SolarTime(jd, astro.DayFraction(sunriseHour), astro.SunriseAngle(altitude), latitude, astro.CounterClockwise)
	r.Dhuha = dhuhaTime(r.Fajr, r.Sunrise)
	r.Dhuhr = astro.MidDay(jd, astro.DayFraction(dhuhrHour)) + dhuhrDelay
	r.Asr = asrTime(jd, s.Juristic.Shadow(), latitude)
	r.Sunset = astro.SolarTime(jd, astro.DayFraction(sunsetHour), astro.SunriseAngle(altitude), latitude, astro.Clockwise)

	if m := s.Method.Maghrib(); m.Kind == method.Angle {
		r.Maghrib = astro.SolarTime(jd, astro.DayFraction(maghribHour), m.Value, latitude, astro.Clockwise)
	}
	if i := s.Method.Isha(); i.Kind == method.Angle {
		r.Isha = astro.SolarTime(jd, astro.DayFraction(ishaHour), i.Value, latitude, astro.Clockwise)
	}

	return r, nil
}

func checkHighLatitude(mode astro.HighLatitude) error {
	if !mode.Valid() {
		return fmt.Errorf("%w %v: %w", ErrInvalidHighLatitude, mode, astro.ErrNoNightFraction)
	}
	return nil
}

// dhuhaTime is a third of the Fajr-to-sunrise span after sunrise.
func dhuhaTime(fajr, sunrise float64) float64 {
	return sunrise + (sunrise-fajr)/3
}

// asrTime is when an object's shadow equals shadow times its length plus
// its noon shadow.
func asrTime(jd float64, shadow int, latitude float64) float64 {
	fraction := astro.DayFraction(asrHour)
	decl := astro.SunDeclination(jd + fraction)
	angle := -astro.Acot(float64(shadow) + astro.Tan(math.Abs(latitude-decl)))
	return astro.SolarTime(jd, fraction, angle, latitude, astro.Clockwise)
}

// midnightTime is halfway from sunset to sunrise, or to Fajr for the
// Jafari rule.
func midnightTime(m method.Midnight, t RawTimes) float64 {
	end := t.Sunrise
	if m == method.MidnightJafari {
		end = t.Fajr
	}
	return t.Sunset + astro.Duration(end, t.Sunset)/2
}

func firstUndefined(t RawTimes) (string, bool) {
	values := []float64{t.Imsak, t.Fajr, t.Sunrise, t.Dhuha, t.Dhuhr, t.Asr, t.Sunset, t.Maghrib, t.Isha, t.Midnight}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return EventNames[i], true
		}
	}
	return "", false
}

// RoundUp moves t forward to the next whole minute when it has a non-zero
// seconds component. Sub-second precision is dropped.
func RoundUp(t time.Time) time.Time {
	if s := t.UTC().Second(); s > 0 {
		t = t.Add(time.Duration(60-s) * time.Second)
	}
	return t.Truncate(time.Second)
}

// Zone returns a fixed location for an offset from UTC in hours.
func Zone(utcOffset float64) *time.Location {
	secs := int(math.Round(utcOffset * 3600))
	sign := "+"
	if secs < 0 {
		sign = "-"
	}
	abs := secs
	if abs < 0 {
		abs = -abs
	}
	return time.FixedZone(fmt.Sprintf("UTC%s%02d:%02d", sign, abs/3600, abs%3600/60), secs)
}

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}
