package prayer

import (
	"fmt"
	"math"

	"github.com/smokyabdulrahman/pray/internal/astro"
	"github.com/smokyabdulrahman/pray/internal/method"
)

// oneMinute is the precautionary delay added between sunset and Maghrib.
const oneMinute = 1.0 / 60

// AdjustTime turns raw solar times into local clock hours. The layers run
// in a fixed order: Imsak from Fajr, minute-based Maghrib and Isha, time
// zone shift, high-latitude clipping, then per-prayer minute offsets.
// Midnight is left untouched. Imsak is only derived when it is a minute
// offset.
func AdjustTime(raw RawTimes, s *Settings, longitude, utcOffset float64) (RawTimes, error) {
	if s == nil {
		return raw, ErrNilSettings
	}
	if err := checkHighLatitude(s.HighLatitude); err != nil {
		return raw, err
	}
	t := raw

	if s.Imsak.Kind == method.MinutesAdjust {
		t.Imsak = t.Fajr + s.Imsak.Value/60
	}
	if m := s.Method.Maghrib(); m.Kind == method.MinutesAdjust {
		t.Maghrib = t.Sunset + oneMinute + m.Value/60
	}
	if i := s.Method.Isha(); i.Kind == method.MinutesAdjust {
		t.Isha = t.Maghrib + i.Value/60
	}

	t = shiftToZone(t, longitude, utcOffset)
	t, err := adjustHighLatitude(t, s)
	if err != nil {
		return raw, err
	}
	return applyOffsets(t, s.Adjustments), nil
}

func shiftToZone(t RawTimes, longitude, utcOffset float64) RawTimes {
	shift := utcOffset - longitude/15
	t.Imsak += shift
	t.Fajr += shift
	t.Sunrise += shift
	t.Dhuha += shift
	t.Dhuhr += shift
	t.Asr += shift
	t.Sunset += shift
	t.Maghrib += shift
	t.Isha += shift
	return t
}

// adjustHighLatitude keeps night-bound times within a fraction of the
// night from sunrise or sunset. Undefined times are always clipped.
func adjustHighLatitude(t RawTimes, s *Settings) (RawTimes, error) {
	mode := s.HighLatitude
	if mode == astro.HighLatitudeNone {
		return t, nil
	}

	night := astro.Duration(t.Sunrise, t.Sunset)
	fajrAngle := s.Method.Fajr().Value
	fajrUndefined := math.IsNaN(t.Fajr)

	var err error
	if t.Fajr, err = clip(mode, t.Fajr, t.Sunrise, fajrAngle, night, astro.CounterClockwise); err != nil {
		return t, err
	}
	// Imsak has no angle of its own and shares Fajr's. When Fajr was
	// undefined, Imsak and Dhuha are derived again from the clipped value.
	if fajrUndefined {
		if s.Imsak.Kind == method.MinutesAdjust {
			t.Imsak = t.Fajr + s.Imsak.Value/60
		}
		t.Dhuha = dhuhaTime(t.Fajr, t.Sunrise)
	} else if t.Imsak, err = clip(mode, t.Imsak, t.Sunrise, fajrAngle, night, astro.CounterClockwise); err != nil {
		return t, err
	}

	if m := s.Method.Maghrib(); m.Kind == method.Angle || mode != astro.AngleBased {
		if t.Maghrib, err = clip(mode, t.Maghrib, t.Sunset, m.Value, night, astro.Clockwise); err != nil {
			return t, err
		}
	}
	if i := s.Method.Isha(); i.Kind == method.Angle || mode != astro.AngleBased {
		if t.Isha, err = clip(mode, t.Isha, t.Sunset, i.Value, night, astro.Clockwise); err != nil {
			return t, err
		}
	}

	return t, nil
}

// clip moves value to base plus or minus the night fraction when it lies
// further than that from base, or is undefined.
func clip(mode astro.HighLatitude, value, base, angle, night float64, dir astro.Direction) (float64, error) {
	limit, err := astro.NightFraction(mode, angle, night)
	if err != nil {
		return value, fmt.Errorf("%w %v: %w", ErrInvalidHighLatitude, mode, err)
	}

	var distance float64
	if dir == astro.Clockwise {
		distance = astro.Duration(value, base)
	} else {
		distance = astro.Duration(base, value)
	}

	if !math.IsNaN(value) && distance <= limit {
		return value, nil
	}
	if dir == astro.Clockwise {
		return base + limit, nil
	}
	return base - limit, nil
}

func applyOffsets(t RawTimes, a Adjustments) RawTimes {
	t.Imsak += float64(a.Imsak) / 60
	t.Fajr += float64(a.Fajr) / 60
	t.Sunrise += float64(a.Sunrise) / 60
	t.Dhuha += float64(a.Dhuha) / 60
	t.Dhuhr += float64(a.Dhuhr) / 60
	t.Asr += float64(a.Asr) / 60
	t.Maghrib += float64(a.Maghrib) / 60
	t.Isha += float64(a.Isha) / 60
	return t
}
