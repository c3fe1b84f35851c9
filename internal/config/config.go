// Package config provides persistent configuration for the prayer-times CLI.
//
// Configuration is stored as JSON at ~/.config/prayer-times/config.json
// (XDG-compliant). The merge priority is:
// CLI flags > environment > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/pray/internal/astro"
	"github.com/smokyabdulrahman/pray/internal/method"
	"github.com/smokyabdulrahman/pray/internal/prayer"
)

const (
	configDirName  = "prayer-times"
	configFileName = "config.json"

	adjustPrefix = "adjust_"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude", "altitude", "utc_offset",
	"method", "school", "high_latitude", "imsak_minutes",
	"fajr_angle", "maghrib", "isha", "midnight",
	"adjust_imsak", "adjust_fajr", "adjust_sunrise", "adjust_dhuha",
	"adjust_dhuhr", "adjust_asr", "adjust_maghrib", "adjust_isha",
	"time_format",
	"prayers",
}

// ErrNoLocation is returned when latitude or longitude is not configured.
var ErrNoLocation = errors.New("no location configured: set latitude and longitude")

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults).
type Config struct {
	Latitude     *float64       `json:"latitude,omitempty"` // pointer so 0° is distinguishable from unset
	Longitude    *float64       `json:"longitude,omitempty"`
	Altitude     float64        `json:"altitude,omitempty"`   // metres
	UTCOffset    *float64       `json:"utc_offset,omitempty"` // hours; nil uses the system zone
	Method       string         `json:"method,omitempty"`     // preset key, e.g. "mwl", or "custom"
	School       string         `json:"school,omitempty"`     // "standard" or "hanafi"
	HighLatitude string         `json:"high_latitude,omitempty"`
	ImsakMinutes *float64       `json:"imsak_minutes,omitempty"`
	FajrAngle    *float64       `json:"fajr_angle,omitempty"` // custom method only
	Maghrib      string         `json:"maghrib,omitempty"`    // custom method only, e.g. "4" or "0 min"
	Isha         string         `json:"isha,omitempty"`       // custom method only, e.g. "17" or "90 min"
	Midnight     string         `json:"midnight,omitempty"`   // custom method only
	Adjustments  map[string]int `json:"adjustments,omitempty"`
	TimeFormat   string         `json:"time_format,omitempty"` // "12h" or "24h"
	Prayers      string         `json:"prayers,omitempty"`     // comma-separated list
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	imsak := -10.0
	return Config{
		Method:       method.UmmAlQura.Key(),
		School:       method.Standard.String(),
		HighLatitude: astro.HighLatitudeNone.String(),
		ImsakMinutes: &imsak,
		TimeFormat:   "24h",
	}
}

// Custom method parameters used when a key is left unset.
const (
	defaultFajrAngle = 18.0
	defaultMaghrib   = "0 min"
	defaultIsha      = "17"
	defaultMidnight  = "standard"
)

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	if name, ok := strings.CutPrefix(key, adjustPrefix); ok && isAdjustable(name) {
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: must be a whole number of minutes", key, value)
		}
		if c.Adjustments == nil {
			c.Adjustments = make(map[string]int)
		}
		c.Adjustments[name] = v
		return nil
	}

	switch key {
	case "latitude":
		v, err := parseRange(key, value, -90, 90)
		if err != nil {
			return err
		}
		c.Latitude = &v
	case "longitude":
		v, err := parseRange(key, value, -180, 180)
		if err != nil {
			return err
		}
		c.Longitude = &v
	case "altitude":
		v, err := parseRange(key, value, 0, 9000)
		if err != nil {
			return err
		}
		c.Altitude = v
	case "utc_offset":
		v, err := parseRange(key, value, -12, 14)
		if err != nil {
			return err
		}
		c.UTCOffset = &v
	case "method":
		p, err := method.ParsePreset(value)
		if err != nil {
			return fmt.Errorf("invalid method %q: use a key from `prayer-times methods`", value)
		}
		c.Method = p.Key()
	case "school":
		s, err := method.ParseSchool(value)
		if err != nil {
			return err
		}
		c.School = s.String()
	case "high_latitude":
		h, err := astro.ParseHighLatitude(value)
		if err != nil {
			return err
		}
		c.HighLatitude = h.String()
	case "imsak_minutes":
		v, err := parseRange(key, value, -120, 0)
		if err != nil {
			return err
		}
		c.ImsakMinutes = &v
	case "fajr_angle":
		v, err := parseRange(key, value, 0, 30)
		if err != nil {
			return err
		}
		c.FajrAngle = &v
	case "maghrib", "isha":
		p, err := method.ParseParameter(value)
		if err != nil {
			return err
		}
		if key == "maghrib" {
			c.Maghrib = p.String()
		} else {
			c.Isha = p.String()
		}
	case "midnight":
		m, err := method.ParseMidnight(value)
		if err != nil {
			return err
		}
		c.Midnight = m.String()
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		names, err := prayer.NormalizeNames(strings.Split(value, ","))
		if err != nil {
			return fmt.Errorf("invalid prayers list: %w", err)
		}
		c.Prayers = strings.Join(names, ",")
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	if name, ok := strings.CutPrefix(key, adjustPrefix); ok && isAdjustable(name) {
		v, ok := c.Adjustments[name]
		if !ok {
			return "", nil
		}
		return strconv.Itoa(v), nil
	}

	switch key {
	case "latitude":
		return formatFloatPtr(c.Latitude), nil
	case "longitude":
		return formatFloatPtr(c.Longitude), nil
	case "altitude":
		if c.Altitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Altitude, 'f', -1, 64), nil
	case "utc_offset":
		return formatFloatPtr(c.UTCOffset), nil
	case "method":
		return c.Method, nil
	case "school":
		return c.School, nil
	case "high_latitude":
		return c.HighLatitude, nil
	case "imsak_minutes":
		return formatFloatPtr(c.ImsakMinutes), nil
	case "fajr_angle":
		return formatFloatPtr(c.FajrAngle), nil
	case "maghrib":
		return c.Maghrib, nil
	case "isha":
		return c.Isha, nil
	case "midnight":
		return c.Midnight, nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// adjustableNames are the prayers that accept a minute offset.
var adjustableNames = map[string]bool{
	"imsak": true, "fajr": true, "sunrise": true, "dhuha": true,
	"dhuhr": true, "asr": true, "maghrib": true, "isha": true,
}

func isAdjustable(name string) bool {
	return adjustableNames[name]
}

func parseRange(key, value string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("invalid %s %q: must be between %g and %g", key, value, lo, hi)
	}
	return v, nil
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
