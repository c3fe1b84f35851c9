package astro

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoNightFraction is returned when a night fraction is requested for a
// high-latitude mode that does not define one.
var ErrNoNightFraction = errors.New("high-latitude mode has no night fraction")

// j2000 is the Julian date of 2000-01-01 12:00 TT.
const j2000 = 2451545.0

// Direction selects which side of solar noon a solar time falls on.
type Direction int

const (
	// Clockwise places the time after noon.
	Clockwise Direction = iota
	// CounterClockwise places the time before noon.
	CounterClockwise
)

// HighLatitude selects how night-bound times are clipped where twilight
// angles are reached late or never.
type HighLatitude int

const (
	HighLatitudeNone HighLatitude = iota
	MiddleOfNight
	OneSeventhOfNight
	AngleBased
)

var highLatitudeKeys = map[HighLatitude]string{
	HighLatitudeNone:  "none",
	MiddleOfNight:     "middle-of-night",
	OneSeventhOfNight: "one-seventh",
	AngleBased:        "angle-based",
}

func (h HighLatitude) String() string {
	if s, ok := highLatitudeKeys[h]; ok {
		return s
	}
	return fmt.Sprintf("HighLatitude(%d)", int(h))
}

// Valid reports whether h is one of the declared modes.
func (h HighLatitude) Valid() bool {
	_, ok := highLatitudeKeys[h]
	return ok
}

// HighLatitudeKeys lists the accepted configuration keys in declaration order.
func HighLatitudeKeys() []string {
	return []string{"none", "middle-of-night", "one-seventh", "angle-based"}
}

// ParseHighLatitude resolves a configuration key such as "one-seventh".
func ParseHighLatitude(s string) (HighLatitude, error) {
	for h, key := range highLatitudeKeys {
		if key == s {
			return h, nil
		}
	}
	return HighLatitudeNone, fmt.Errorf("unknown high-latitude mode %q: valid modes are %v", s, HighLatitudeKeys())
}

// DayFraction converts an hour of day into a fraction of the day.
func DayFraction(hour float64) float64 {
	return hour / 24
}

// NightFraction returns the portion of the night, in hours, that a
// night-bound time may be away from its base under the given mode.
// diff is the length of the night in hours.
func NightFraction(mode HighLatitude, angle, diff float64) (float64, error) {
	switch mode {
	case MiddleOfNight:
		return diff * 0.5, nil
	case OneSeventhOfNight:
		return diff / 7, nil
	case AngleBased:
		return diff * angle / 60, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrNoNightFraction, mode)
	}
}

// SolarTime returns the hour at which the sun reaches the given depression
// angle on the requested side of solar noon. The result is NaN when the sun
// never reaches that angle on that day.
func SolarTime(jd, fraction, angle, latitude float64, dir Direction) float64 {
	decl := SunDeclination(jd + fraction)
	noon := MidDay(jd, fraction)
	t := Acos((-Sin(angle)-Sin(decl)*Sin(latitude))/(Cos(decl)*Cos(latitude))) / 15
	if dir == CounterClockwise {
		return noon - t
	}
	return noon + t
}

// SunDeclination returns the sun's declination in degrees at jd.
func SunDeclination(jd float64) float64 {
	d := jd - j2000
	return Asin(Sin(obliquity(d)) * Sin(eclipticLongitude(d)))
}

// MidDay returns solar noon in hours for the day fraction of jd.
func MidDay(jd, fraction float64) float64 {
	return FixHour(12 - equationOfTime(jd+fraction))
}

// SunriseAngle returns the sun's depression angle at sunrise and sunset for
// an observer at the given altitude in metres.
func SunriseAngle(altitude float64) float64 {
	return 0.833 + 0.0347*math.Sqrt(altitude)
}

func meanAnomaly(d float64) float64 {
	return FixDegrees(357.529 + 0.98560028*d)
}

func meanLongitude(d float64) float64 {
	return FixDegrees(280.459 + 0.98564736*d)
}

func eclipticLongitude(d float64) float64 {
	g := meanAnomaly(d)
	return FixDegrees(meanLongitude(d) + 1.915*Sin(g) + 0.020*Sin(2*g))
}

func obliquity(d float64) float64 {
	return 23.439 - 0.00000036*d
}

// rightAscension is expressed in hours.
func rightAscension(d float64) float64 {
	l := eclipticLongitude(d)
	return Atan2(Cos(obliquity(d))*Sin(l), Cos(l)) / 15
}

func equationOfTime(jd float64) float64 {
	d := jd - j2000
	return meanLongitude(d)/15 - FixHour(rightAscension(d))
}
