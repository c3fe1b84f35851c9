// Package prayer computes the daily Islamic prayer times for a location
// and classifies an instant into the prayer interval it falls in.
package prayer

import (
	"fmt"
	"strings"
	"time"
)

// Type is one of the eight boundaries that split a day into prayer
// intervals. Sunset and Midnight are reported in Prayers but are not
// interval boundaries.
type Type int

const (
	Imsak Type = iota
	Fajr
	Sunrise
	Dhuha
	Dhuhr
	Asr
	Maghrib
	Isha
)

var typeNames = [...]string{"Imsak", "Fajr", "Sunrise", "Dhuha", "Dhuhr", "Asr", "Maghrib", "Isha"}

// shortNames are single- or two-letter abbreviations for status lines.
var shortNames = [...]string{"Im", "F", "S", "Du", "D", "A", "M", "I"}

// Types returns every prayer type in chronological order.
func Types() []Type {
	return []Type{Imsak, Fajr, Sunrise, Dhuha, Dhuhr, Asr, Maghrib, Isha}
}

func (t Type) String() string {
	if t < Imsak || t > Isha {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ShortName returns the abbreviation used by the short format modes.
func (t Type) ShortName() string {
	if t < Imsak || t > Isha {
		return "?"
	}
	return shortNames[t]
}

// Prayer is a single prayer boundary.
type Prayer struct {
	Type Type
	Time time.Time
}

// Geocoordinate is an observer position. Altitude is in metres.
type Geocoordinate struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// Prayers holds the ten computed instants of one day.
type Prayers struct {
	Imsak    time.Time
	Fajr     time.Time
	Sunrise  time.Time
	Dhuha    time.Time
	Dhuhr    time.Time
	Asr      time.Time
	Sunset   time.Time
	Maghrib  time.Time
	Isha     time.Time
	Midnight time.Time
}

// Event is a named instant of a day, including Sunset and Midnight.
type Event struct {
	Name string
	Time time.Time
}

// EventNames lists every reported instant in chronological order.
var EventNames = []string{
	"Imsak", "Fajr", "Sunrise", "Dhuha", "Dhuhr", "Asr", "Sunset", "Maghrib", "Isha", "Midnight",
}

// DefaultEventNames are the events shown when no selection is configured.
var DefaultEventNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// Events returns all ten instants in chronological order.
func (p Prayers) Events() []Event {
	return []Event{
		{"Imsak", p.Imsak},
		{"Fajr", p.Fajr},
		{"Sunrise", p.Sunrise},
		{"Dhuha", p.Dhuha},
		{"Dhuhr", p.Dhuhr},
		{"Asr", p.Asr},
		{"Sunset", p.Sunset},
		{"Maghrib", p.Maghrib},
		{"Isha", p.Isha},
		{"Midnight", p.Midnight},
	}
}

// Select returns the events named in names, in the order given.
func (p Prayers) Select(names []string) ([]Event, error) {
	events := make([]Event, 0, len(names))
	for _, name := range names {
		t, ok := p.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown prayer name: %s", name)
		}
		events = append(events, Event{Name: canonicalName(name), Time: t})
	}
	return events, nil
}

// Lookup returns the instant for an event name, case-insensitively.
func (p Prayers) Lookup(name string) (time.Time, bool) {
	for _, e := range p.Events() {
		if strings.EqualFold(e.Name, name) {
			return e.Time, true
		}
	}
	return time.Time{}, false
}

// Get returns the instant of a prayer boundary.
func (p Prayers) Get(t Type) time.Time {
	switch t {
	case Imsak:
		return p.Imsak
	case Fajr:
		return p.Fajr
	case Sunrise:
		return p.Sunrise
	case Dhuha:
		return p.Dhuha
	case Dhuhr:
		return p.Dhuhr
	case Asr:
		return p.Asr
	case Maghrib:
		return p.Maghrib
	case Isha:
		return p.Isha
	default:
		return time.Time{}
	}
}

// Boundaries returns the eight interval boundaries of the day in order.
func (p Prayers) Boundaries() []Prayer {
	out := make([]Prayer, 0, len(typeNames))
	for _, t := range Types() {
		out = append(out, Prayer{Type: t, Time: p.Get(t)})
	}
	return out
}

// NormalizeNames maps user-supplied names to their canonical spelling and
// rejects unknown ones.
func NormalizeNames(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		c := canonicalName(strings.TrimSpace(n))
		if c == "" {
			return nil, fmt.Errorf("unknown prayer name: %s", n)
		}
		out = append(out, c)
	}
	return out, nil
}

func canonicalName(name string) string {
	for _, n := range EventNames {
		if strings.EqualFold(n, name) {
			return n
		}
	}
	return ""
}
