package config

import (
	"errors"
	"testing"
	"time"

	"github.com/smokyabdulrahman/pray/internal/astro"
	"github.com/smokyabdulrahman/pray/internal/method"
)

var at2018 = time.Date(2018, 4, 12, 0, 0, 0, 0, time.UTC)

func TestSettings_Defaults(t *testing.T) {
	cfg := &Config{}
	s, err := cfg.Settings(at2018)
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}

	if s.Method.Preset() != method.UmmAlQura {
		t.Errorf("method = %v, want Umm Al-Qura", s.Method.Preset())
	}
	if s.Juristic.Shadow() != 1 {
		t.Errorf("shadow = %d, want 1", s.Juristic.Shadow())
	}
	if s.Imsak != method.MinutesParam(-10) {
		t.Errorf("imsak = %v, want -10 min", s.Imsak)
	}
	if s.HighLatitude != astro.HighLatitudeNone {
		t.Errorf("high latitude = %v, want none", s.HighLatitude)
	}
}

func TestSettings_Configured(t *testing.T) {
	cfg := &Config{
		Method:       "isna",
		School:       "hanafi",
		HighLatitude: "one-seventh",
		ImsakMinutes: floatPtr(-15),
		Adjustments:  map[string]int{"fajr": 2, "isha": -1},
	}

	s, err := cfg.Settings(at2018)
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}

	if s.Method.Preset() != method.ISNA || s.Method.Fajr() != method.AngleParam(15) {
		t.Errorf("method = %v %v", s.Method.Preset(), s.Method.Fajr())
	}
	if s.Juristic.Shadow() != 2 {
		t.Errorf("shadow = %d, want 2", s.Juristic.Shadow())
	}
	if s.HighLatitude != astro.OneSeventhOfNight {
		t.Errorf("high latitude = %v", s.HighLatitude)
	}
	if s.Imsak != method.MinutesParam(-15) {
		t.Errorf("imsak = %v", s.Imsak)
	}
	if s.Adjustments.Fajr != 2 || s.Adjustments.Isha != -1 || s.Adjustments.Asr != 0 {
		t.Errorf("adjustments = %+v", s.Adjustments)
	}
}

func TestSettings_CustomMethod(t *testing.T) {
	cfg := &Config{Method: "custom", FajrAngle: floatPtr(16), Maghrib: "4°", Isha: "14", Midnight: "jafari"}

	s, err := cfg.Settings(at2018)
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	// These parameters match the Ithna-Ashari convention.
	if got := method.Detect(s.Method); got != method.IthnaAshari {
		t.Errorf("Detect = %v, want IthnaAshari", got)
	}
}

func TestSettings_CustomMethodDefaults(t *testing.T) {
	cfg := &Config{Method: "custom"}

	s, err := cfg.Settings(at2018)
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	if got := method.Detect(s.Method); got != method.MWL {
		t.Errorf("Detect = %v, want MWL", got)
	}
}

func TestSettings_InvalidMethod(t *testing.T) {
	cfg := &Config{Method: "gulf"}
	if _, err := cfg.Settings(at2018); !errors.Is(err, method.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestCoordinate(t *testing.T) {
	cfg := &Config{Latitude: floatPtr(2)}
	if _, err := cfg.Coordinate(); !errors.Is(err, ErrNoLocation) {
		t.Errorf("expected ErrNoLocation, got %v", err)
	}

	cfg.Longitude = floatPtr(101)
	cfg.Altitude = 2
	c, err := cfg.Coordinate()
	if err != nil {
		t.Fatalf("Coordinate error: %v", err)
	}
	if c.Latitude != 2 || c.Longitude != 101 || c.Altitude != 2 {
		t.Errorf("Coordinate = %+v", c)
	}
}

func TestOffset(t *testing.T) {
	cfg := &Config{UTCOffset: floatPtr(5.5)}
	if got := cfg.Offset(at2018); got != 5.5 {
		t.Errorf("Offset = %v, want 5.5", got)
	}

	cfg = &Config{}
	_, secs := at2018.In(time.Local).Zone()
	if got := cfg.Offset(at2018); got != float64(secs)/3600 {
		t.Errorf("Offset = %v, want system offset %v", got, float64(secs)/3600)
	}
}

func TestPrayerNamesAndTimeFormat(t *testing.T) {
	cfg := &Config{}
	if got := cfg.PrayerNames(); len(got) != 6 || got[0] != "Fajr" {
		t.Errorf("default PrayerNames = %v", got)
	}
	cfg.Prayers = "Imsak,Midnight"
	if got := cfg.PrayerNames(); len(got) != 2 || got[1] != "Midnight" {
		t.Errorf("PrayerNames = %v", got)
	}

	if got := cfg.GoTimeFormat(); got != "15:04" {
		t.Errorf("GoTimeFormat = %q", got)
	}
	cfg.TimeFormat = "12h"
	if got := cfg.GoTimeFormat(); got != "3:04 PM" {
		t.Errorf("GoTimeFormat = %q", got)
	}
}
