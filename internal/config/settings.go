package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/pray/internal/astro"
	"github.com/smokyabdulrahman/pray/internal/method"
	"github.com/smokyabdulrahman/pray/internal/prayer"
)

// WithDefaults returns a copy of c with unset values filled from Defaults.
func (c *Config) WithDefaults() *Config {
	d := Defaults()
	out := *c
	if out.Method == "" {
		out.Method = d.Method
	}
	if out.School == "" {
		out.School = d.School
	}
	if out.HighLatitude == "" {
		out.HighLatitude = d.HighLatitude
	}
	if out.ImsakMinutes == nil {
		out.ImsakMinutes = d.ImsakMinutes
	}
	if out.TimeFormat == "" {
		out.TimeFormat = d.TimeFormat
	}
	return &out
}

// Coordinate returns the configured observer position.
func (c *Config) Coordinate() (prayer.Geocoordinate, error) {
	if c.Latitude == nil || c.Longitude == nil {
		return prayer.Geocoordinate{}, ErrNoLocation
	}
	return prayer.Geocoordinate{
		Latitude:  *c.Latitude,
		Longitude: *c.Longitude,
		Altitude:  c.Altitude,
	}, nil
}

// Offset returns the configured UTC offset in hours, or the offset of the
// system time zone at the given instant.
func (c *Config) Offset(at time.Time) float64 {
	if c.UTCOffset != nil {
		return *c.UTCOffset
	}
	_, secs := at.In(time.Local).Zone()
	return float64(secs) / 3600
}

// Settings builds the calculation settings in effect at the given instant.
// Unset values fall back to Defaults.
func (c *Config) Settings(at time.Time) (prayer.Settings, error) {
	cfg := c.WithDefaults()

	m, err := cfg.calculationMethod(at)
	if err != nil {
		return prayer.Settings{}, err
	}

	school, err := method.ParseSchool(cfg.School)
	if err != nil {
		return prayer.Settings{}, err
	}
	juristic, err := method.JuristicFromSchool(school)
	if err != nil {
		return prayer.Settings{}, err
	}

	high, err := astro.ParseHighLatitude(cfg.HighLatitude)
	if err != nil {
		return prayer.Settings{}, err
	}

	return prayer.Settings{
		Method:       m,
		Juristic:     juristic,
		Imsak:        method.MinutesParam(*cfg.ImsakMinutes),
		HighLatitude: high,
		Adjustments: prayer.Adjustments{
			Imsak:   cfg.Adjustments["imsak"],
			Fajr:    cfg.Adjustments["fajr"],
			Sunrise: cfg.Adjustments["sunrise"],
			Dhuha:   cfg.Adjustments["dhuha"],
			Dhuhr:   cfg.Adjustments["dhuhr"],
			Asr:     cfg.Adjustments["asr"],
			Maghrib: cfg.Adjustments["maghrib"],
			Isha:    cfg.Adjustments["isha"],
		},
	}, nil
}

func (c *Config) calculationMethod(at time.Time) (method.Method, error) {
	p, err := method.ParsePreset(c.Method)
	if err != nil {
		return method.Method{}, err
	}
	if p != method.Custom {
		return method.FromPreset(at, p)
	}

	fajr := defaultFajrAngle
	if c.FajrAngle != nil {
		fajr = *c.FajrAngle
	}
	maghrib, err := method.ParseParameter(orDefault(c.Maghrib, defaultMaghrib))
	if err != nil {
		return method.Method{}, fmt.Errorf("custom maghrib: %w", err)
	}
	isha, err := method.ParseParameter(orDefault(c.Isha, defaultIsha))
	if err != nil {
		return method.Method{}, fmt.Errorf("custom isha: %w", err)
	}
	midnight, err := method.ParseMidnight(orDefault(c.Midnight, defaultMidnight))
	if err != nil {
		return method.Method{}, err
	}

	return method.NewCustom(fajr, maghrib, isha, midnight), nil
}

// PrayerNames returns the configured event selection, or the default one.
func (c *Config) PrayerNames() []string {
	if c.Prayers == "" {
		return prayer.DefaultEventNames
	}
	names, err := prayer.NormalizeNames(strings.Split(c.Prayers, ","))
	if err != nil {
		return prayer.DefaultEventNames
	}
	return names
}

// GoTimeFormat returns the layout for the configured time format.
func (c *Config) GoTimeFormat() string {
	if c.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
