package prayer

import (
	"time"

	"github.com/smokyabdulrahman/pray/internal/astro"
	"github.com/smokyabdulrahman/pray/internal/method"
)

// Adjustments are per-prayer offsets in minutes applied after all other
// adjustments. Sunset and Midnight have none.
type Adjustments struct {
	Imsak   int
	Fajr    int
	Sunrise int
	Dhuha   int
	Dhuhr   int
	Asr     int
	Maghrib int
	Isha    int
}

// Settings gathers every input of a day computation other than the date,
// location and time zone.
type Settings struct {
	Method       method.Method
	Juristic     method.Juristic
	Imsak        method.Parameter
	HighLatitude astro.HighLatitude
	Adjustments  Adjustments
}

// DefaultSettings returns Umm Al-Qura parameters in effect at the given
// instant, the standard juristic school, Imsak ten minutes before Fajr and
// no high-latitude adjustment.
func DefaultSettings(at time.Time) Settings {
	return Settings{
		Method:       method.UmmAlQuraAt(at),
		Juristic:     method.NewJuristic(1),
		Imsak:        method.MinutesParam(-10),
		HighLatitude: astro.HighLatitudeNone,
	}
}
