package prayer

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/smokyabdulrahman/pray/internal/astro"
	"github.com/smokyabdulrahman/pray/internal/method"
)

// Reference location: lat 2, lon 101, altitude 2 m, UTC+8.
var kualaLumpur = Geocoordinate{Latitude: 2, Longitude: 101, Altitude: 2}

// helper: settings for a preset with Imsak ten minutes before Fajr.
func presetSettings(t *testing.T, p method.Preset, at time.Time) *Settings {
	t.Helper()
	m, err := method.FromPreset(at, p)
	if err != nil {
		t.Fatalf("FromPreset(%v): %v", p, err)
	}
	j, err := method.JuristicFromSchool(method.Standard)
	if err != nil {
		t.Fatalf("JuristicFromSchool: %v", err)
	}
	return &Settings{Method: m, Juristic: j, Imsak: method.MinutesParam(-10)}
}

// helper: a local wall-clock time at a fixed offset.
func local(offset float64, month time.Month, day, hour, min int) time.Time {
	return time.Date(2018, month, day, hour, min, 0, 0, Zone(offset))
}

func assertEvents(t *testing.T, got Prayers, want map[string]time.Time) {
	t.Helper()
	for _, name := range EventNames {
		w, ok := want[name]
		if !ok {
			continue
		}
		g, _ := got.Lookup(name)
		if !g.Equal(w) {
			t.Errorf("%s = %s, want %s", name, g.Format("01-02 15:04:05 -07:00"), w.Format("01-02 15:04:05 -07:00"))
		}
	}
}

// ---------------------------------------------------------------------------
// ComputeDay
// ---------------------------------------------------------------------------

func TestComputeDay_Reference(t *testing.T) {
	date := time.Date(2018, 4, 12, 0, 0, 0, 0, time.UTC)
	s := presetSettings(t, method.JAKIM, date)

	got, err := ComputeDay(date, s, kualaLumpur, 8)
	if err != nil {
		t.Fatalf("ComputeDay: %v", err)
	}

	assertEvents(t, got, map[string]time.Time{
		"Imsak":    local(8, 4, 12, 5, 45),
		"Fajr":     local(8, 4, 12, 5, 55),
		"Sunrise":  local(8, 4, 12, 7, 13),
		"Dhuha":    local(8, 4, 12, 7, 38),
		"Dhuhr":    local(8, 4, 12, 13, 18),
		"Asr":      local(8, 4, 12, 16, 29),
		"Sunset":   local(8, 4, 12, 19, 22),
		"Maghrib":  local(8, 4, 12, 19, 23),
		"Isha":     local(8, 4, 12, 20, 32),
		"Midnight": local(8, 4, 13, 1, 17),
	})
}

func TestComputeDay_AdjacentDays(t *testing.T) {
	tests := []struct {
		day  int
		want map[string]time.Time
	}{
		{11, map[string]time.Time{
			"Imsak":    local(8, 4, 11, 5, 46),
			"Fajr":     local(8, 4, 11, 5, 56),
			"Dhuha":    local(8, 4, 11, 7, 39),
			"Dhuhr":    local(8, 4, 11, 13, 19),
			"Isha":     local(8, 4, 11, 20, 32),
			"Midnight": local(8, 4, 12, 1, 18),
		}},
		{13, map[string]time.Time{
			"Imsak":    local(8, 4, 13, 5, 45),
			"Sunrise":  local(8, 4, 13, 7, 12),
			"Dhuhr":    local(8, 4, 13, 13, 18),
			"Isha":     local(8, 4, 13, 20, 31),
			"Midnight": local(8, 4, 14, 1, 17),
		}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("april-%d", tt.day), func(t *testing.T) {
			date := time.Date(2018, 4, tt.day, 0, 0, 0, 0, time.UTC)
			got, err := ComputeDay(date, presetSettings(t, method.JAKIM, date), kualaLumpur, 8)
			if err != nil {
				t.Fatalf("ComputeDay: %v", err)
			}
			assertEvents(t, got, tt.want)
		})
	}
}

func TestComputeDay_UsesUTCCalendarDate(t *testing.T) {
	s := presetSettings(t, method.JAKIM, time.Date(2018, 4, 12, 0, 0, 0, 0, time.UTC))

	// 07:00 on the 13th at +08:00 is 23:00 on the 12th in UTC.
	got, err := ComputeDay(local(8, 4, 13, 7, 0), s, kualaLumpur, 8)
	if err != nil {
		t.Fatalf("ComputeDay: %v", err)
	}
	if want := local(8, 4, 12, 13, 18); !got.Dhuhr.Equal(want) {
		t.Errorf("Dhuhr = %s, want %s", got.Dhuhr, want)
	}
}

func TestComputeDay_MinuteOffsets(t *testing.T) {
	date := time.Date(2018, 4, 12, 0, 0, 0, 0, time.UTC)
	s := presetSettings(t, method.JAKIM, date)
	s.Adjustments = Adjustments{Fajr: 2, Asr: -3, Isha: 5}

	got, err := ComputeDay(date, s, kualaLumpur, 8)
	if err != nil {
		t.Fatalf("ComputeDay: %v", err)
	}

	assertEvents(t, got, map[string]time.Time{
		// Imsak follows the unadjusted Fajr.
		"Imsak":    local(8, 4, 12, 5, 45),
		"Fajr":     local(8, 4, 12, 5, 57),
		"Asr":      local(8, 4, 12, 16, 26),
		"Maghrib":  local(8, 4, 12, 19, 23),
		"Isha":     local(8, 4, 12, 20, 37),
		"Midnight": local(8, 4, 13, 1, 17),
	})
}

func TestComputeDay_Hanafi(t *testing.T) {
	date := time.Date(2018, 4, 12, 0, 0, 0, 0, time.UTC)
	s := presetSettings(t, method.JAKIM, date)
	s.Juristic, _ = method.JuristicFromSchool(method.Hanafi)

	got, err := ComputeDay(date, s, kualaLumpur, 8)
	if err != nil {
		t.Fatalf("ComputeDay: %v", err)
	}
	if want := local(8, 4, 12, 17, 36); !got.Asr.Equal(want) {
		t.Errorf("Hanafi Asr = %s, want %s", got.Asr, want)
	}
}

func TestComputeDay_MinuteBasedIsha(t *testing.T) {
	date := time.Date(2018, 4, 12, 0, 0, 0, 0, time.UTC)
	s := presetSettings(t, method.UmmAlQura, date)
	makkah := Geocoordinate{Latitude: 21.42, Longitude: 39.83}

	got, err := ComputeDay(date, s, makkah, 3)
	if err != nil {
		t.Fatalf("ComputeDay: %v", err)
	}

	assertEvents(t, got, map[string]time.Time{
		"Fajr":    local(3, 4, 12, 4, 47),
		"Sunset":  local(3, 4, 12, 18, 40),
		"Maghrib": local(3, 4, 12, 18, 41),
		"Isha":    local(3, 4, 12, 20, 11),
	})
}

func TestComputeDay_Ordering(t *testing.T) {
	date := time.Date(2018, 4, 12, 0, 0, 0, 0, time.UTC)
	got, err := ComputeDay(date, presetSettings(t, method.MWL, date), kualaLumpur, 8)
	if err != nil {
		t.Fatalf("ComputeDay: %v", err)
	}

	events := got.Events()
	for i := 1; i < len(events); i++ {
		if events[i].Time.Before(events[i-1].Time) {
			t.Errorf("%s (%s) before %s (%s)", events[i].Name, events[i].Time, events[i-1].Name, events[i-1].Time)
		}
	}
	for _, e := range events {
		if e.Time.Second() != 0 || e.Time.Nanosecond() != 0 {
			t.Errorf("%s not on a whole minute: %s", e.Name, e.Time)
		}
	}
}

func TestComputeDay_NilSettings(t *testing.T) {
	_, err := ComputeDay(time.Now(), nil, kualaLumpur, 8)
	if !errors.Is(err, ErrNilSettings) {
		t.Errorf("expected ErrNilSettings, got %v", err)
	}
}

func TestComputeDay_UnknownHighLatitudeRejected(t *testing.T) {
	oslo := Geocoordinate{Latitude: 59.91, Longitude: 10.75}
	date := time.Date(2018, 6, 21, 0, 0, 0, 0, time.UTC)
	s := presetSettings(t, method.MWL, date)
	s.HighLatitude = astro.HighLatitude(42)

	_, err := ComputeDay(date, s, oslo, 2)
	if !errors.Is(err, ErrInvalidHighLatitude) {
		t.Fatalf("expected ErrInvalidHighLatitude, got %v", err)
	}
	if !errors.Is(err, astro.ErrNoNightFraction) {
		t.Errorf("expected error to wrap astro.ErrNoNightFraction, got %v", err)
	}
	if errors.Is(err, ErrUndefinedTime) {
		t.Errorf("unknown mode reported as undefined time: %v", err)
	}

	// Rejected even where no clipping would be needed.
	_, err = ComputeDay(date, s, kualaLumpur, 8)
	if !errors.Is(err, ErrInvalidHighLatitude) {
		t.Errorf("expected ErrInvalidHighLatitude at low latitude, got %v", err)
	}
}

func TestComputeDay_AngleImsakRejected(t *testing.T) {
	date := time.Date(2018, 4, 12, 0, 0, 0, 0, time.UTC)
	s := presetSettings(t, method.JAKIM, date)
	s.Imsak = method.AngleParam(22)

	_, err := ComputeDay(date, s, kualaLumpur, 8)
	if !errors.Is(err, ErrInvalidParameterKind) {
		t.Errorf("expected ErrInvalidParameterKind, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// High latitudes
// ---------------------------------------------------------------------------

func TestComputeDay_HighLatitudeLondon(t *testing.T) {
	london := Geocoordinate{Latitude: 51.5, Longitude: -0.12}
	date := time.Date(2018, 6, 21, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		mode astro.HighLatitude
		want map[string]time.Time
	}{
		{astro.HighLatitudeNone, map[string]time.Time{
			"Imsak": local(1, 6, 21, 1, 7),
			"Fajr":  local(1, 6, 21, 1, 17),
			"Isha":  local(1, 6, 22, 0, 49),
		}},
		{astro.MiddleOfNight, map[string]time.Time{
			"Imsak": local(1, 6, 21, 1, 7),
			"Fajr":  local(1, 6, 21, 1, 17),
			"Isha":  local(1, 6, 22, 0, 49),
		}},
		{astro.OneSeventhOfNight, map[string]time.Time{
			"Imsak":    local(1, 6, 21, 3, 40),
			"Fajr":     local(1, 6, 21, 3, 40),
			"Sunrise":  local(1, 6, 21, 4, 44),
			"Sunset":   local(1, 6, 21, 21, 22),
			"Maghrib":  local(1, 6, 21, 21, 23),
			"Isha":     local(1, 6, 21, 22, 25),
			"Midnight": local(1, 6, 22, 1, 3),
		}},
		{astro.AngleBased, map[string]time.Time{
			"Imsak":   local(1, 6, 21, 2, 53),
			"Fajr":    local(1, 6, 21, 2, 53),
			"Maghrib": local(1, 6, 21, 21, 23),
			"Isha":    local(1, 6, 21, 23, 12),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s := presetSettings(t, method.ISNA, date)
			s.HighLatitude = tt.mode

			got, err := ComputeDay(date, s, london, 1)
			if err != nil {
				t.Fatalf("ComputeDay: %v", err)
			}
			assertEvents(t, got, tt.want)
		})
	}
}

func TestComputeDay_HighLatitudeOslo(t *testing.T) {
	oslo := Geocoordinate{Latitude: 59.91, Longitude: 10.75}
	date := time.Date(2018, 6, 21, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		mode astro.HighLatitude
		want map[string]time.Time
	}{
		{astro.MiddleOfNight, map[string]time.Time{
			"Imsak": local(2, 6, 21, 1, 9),
			"Fajr":  local(2, 6, 21, 1, 19),
			"Dhuha": local(2, 6, 21, 4, 46),
			"Isha":  local(2, 6, 22, 1, 19),
		}},
		{astro.OneSeventhOfNight, map[string]time.Time{
			"Imsak": local(2, 6, 21, 3, 0),
			"Fajr":  local(2, 6, 21, 3, 10),
			"Dhuha": local(2, 6, 21, 4, 9),
			"Isha":  local(2, 6, 21, 23, 29),
		}},
		{astro.AngleBased, map[string]time.Time{
			"Imsak": local(2, 6, 21, 2, 11),
			"Fajr":  local(2, 6, 21, 2, 21),
			"Dhuha": local(2, 6, 21, 4, 25),
			"Isha":  local(2, 6, 22, 0, 12),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s := presetSettings(t, method.MWL, date)
			s.HighLatitude = tt.mode

			got, err := ComputeDay(date, s, oslo, 2)
			if err != nil {
				t.Fatalf("ComputeDay: %v", err)
			}
			assertEvents(t, got, tt.want)
			assertEvents(t, got, map[string]time.Time{
				"Sunrise": local(2, 6, 21, 3, 54),
				"Dhuhr":   local(2, 6, 21, 13, 20),
				"Asr":     local(2, 6, 21, 18, 1),
				"Sunset":  local(2, 6, 21, 22, 44),
				"Maghrib": local(2, 6, 21, 22, 45),
			})
		})
	}
}

func TestComputeDay_UndefinedWithoutAdjustment(t *testing.T) {
	oslo := Geocoordinate{Latitude: 59.91, Longitude: 10.75}
	date := time.Date(2018, 6, 21, 0, 0, 0, 0, time.UTC)

	_, err := ComputeDay(date, presetSettings(t, method.MWL, date), oslo, 2)
	if !errors.Is(err, ErrUndefinedTime) {
		t.Errorf("expected ErrUndefinedTime, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Raw computation and adjustment layers
// ---------------------------------------------------------------------------

func TestComputeRaw_MinuteParametersLeftForAdjustment(t *testing.T) {
	date := time.Date(2018, 4, 12, 0, 0, 0, 0, time.UTC)
	s := presetSettings(t, method.UmmAlQura, date)

	raw, err := ComputeRaw(astro.DayJulianDate(date, 39.83), s, 21.42, 0)
	if err != nil {
		t.Fatalf("ComputeRaw: %v", err)
	}
	if raw.Maghrib != 0 || raw.Isha != 0 || raw.Imsak != 0 {
		t.Errorf("minute-based times should be unset: %+v", raw)
	}
	if want := raw.Sunrise + (raw.Sunrise-raw.Fajr)/3; raw.Dhuha != want {
		t.Errorf("Dhuha = %v, want %v", raw.Dhuha, want)
	}
}

func TestAdjustTime_Layers(t *testing.T) {
	s := &Settings{
		Method:      method.NewCustom(18, method.MinutesParam(2), method.MinutesParam(60), method.MidnightStandard),
		Imsak:       method.MinutesParam(-10),
		Adjustments: Adjustments{Dhuhr: 1},
	}
	raw := RawTimes{Fajr: 5, Sunrise: 6.5, Dhuha: 7, Dhuhr: 12, Asr: 15, Sunset: 18}

	got, err := AdjustTime(raw, s, 15, 2)
	if err != nil {
		t.Fatalf("AdjustTime: %v", err)
	}

	// Longitude 15 on UTC+2 shifts everything by one hour.
	checks := []struct {
		name      string
		got, want float64
	}{
		{"imsak", got.Imsak, 5 - 10.0/60 + 1},
		{"fajr", got.Fajr, 6},
		{"dhuhr", got.Dhuhr, 13 + 1.0/60},
		{"maghrib", got.Maghrib, 18 + 3.0/60 + 1},
		{"isha", got.Isha, 19 + 3.0/60 + 1},
		{"midnight", got.Midnight, 0},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestAdjustTime_DoesNotMutateInput(t *testing.T) {
	s := &Settings{Method: method.NewCustom(18, method.MinutesParam(0), method.AngleParam(17), method.MidnightStandard), Imsak: method.MinutesParam(-10)}
	raw := RawTimes{Fajr: 5, Sunrise: 6.5, Sunset: 18, Isha: 19.5}
	before := raw

	if _, err := AdjustTime(raw, s, 0, 3); err != nil {
		t.Fatalf("AdjustTime: %v", err)
	}
	if raw != before {
		t.Errorf("input modified: %+v", raw)
	}
}

func TestAdjustTime_AngleImsakNotDerived(t *testing.T) {
	s := &Settings{
		Method: method.NewCustom(18, method.MinutesParam(0), method.AngleParam(17), method.MidnightStandard),
		Imsak:  method.AngleParam(22),
	}
	raw := RawTimes{Imsak: 4.5, Fajr: 5, Sunrise: 6.5, Sunset: 18, Isha: 19.5}

	got, err := AdjustTime(raw, s, 0, 0)
	if err != nil {
		t.Fatalf("AdjustTime: %v", err)
	}
	if got.Imsak != 4.5 {
		t.Errorf("Imsak = %v, want 4.5 left as computed", got.Imsak)
	}
}

func TestAdjustTime_InvalidSettings(t *testing.T) {
	raw := RawTimes{Fajr: 5, Sunrise: 6.5, Sunset: 18, Isha: 19.5}

	if _, err := AdjustTime(raw, nil, 0, 0); !errors.Is(err, ErrNilSettings) {
		t.Errorf("nil settings: expected ErrNilSettings, got %v", err)
	}

	s := &Settings{
		Method:       method.NewCustom(18, method.MinutesParam(0), method.AngleParam(17), method.MidnightStandard),
		Imsak:        method.MinutesParam(-10),
		HighLatitude: astro.HighLatitude(42),
	}
	_, err := AdjustTime(raw, s, 0, 0)
	if !errors.Is(err, ErrInvalidHighLatitude) || !errors.Is(err, astro.ErrNoNightFraction) {
		t.Errorf("unknown mode: expected ErrInvalidHighLatitude, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Rounding and zones
// ---------------------------------------------------------------------------

func TestRoundUp(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"whole minute unchanged", time.Date(2018, 4, 12, 5, 55, 0, 0, time.UTC), time.Date(2018, 4, 12, 5, 55, 0, 0, time.UTC)},
		{"one second rounds up", time.Date(2018, 4, 12, 5, 55, 1, 0, time.UTC), time.Date(2018, 4, 12, 5, 56, 0, 0, time.UTC)},
		{"59 seconds rounds up", time.Date(2018, 4, 12, 5, 55, 59, 0, time.UTC), time.Date(2018, 4, 12, 5, 56, 0, 0, time.UTC)},
		{"sub-second dropped", time.Date(2018, 4, 12, 5, 55, 30, 999, time.UTC), time.Date(2018, 4, 12, 5, 56, 0, 0, time.UTC)},
		{"sub-second only", time.Date(2018, 4, 12, 5, 55, 0, 500000000, time.UTC), time.Date(2018, 4, 12, 5, 55, 0, 0, time.UTC)},
		{"crosses hour", time.Date(2018, 4, 12, 23, 59, 30, 0, time.UTC), time.Date(2018, 4, 13, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundUp(tt.in); !got.Equal(tt.want) {
				t.Errorf("RoundUp(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestZone(t *testing.T) {
	tests := []struct {
		offset   float64
		wantSecs int
		wantName string
	}{
		{8, 8 * 3600, "UTC+08:00"},
		{5.5, 19800, "UTC+05:30"},
		{5.75, 20700, "UTC+05:45"},
		{-3.5, -12600, "UTC-03:30"},
		{0, 0, "UTC+00:00"},
	}

	for _, tt := range tests {
		name, secs := time.Date(2018, 1, 1, 0, 0, 0, 0, Zone(tt.offset)).Zone()
		if secs != tt.wantSecs || name != tt.wantName {
			t.Errorf("Zone(%v) = %s %d, want %s %d", tt.offset, name, secs, tt.wantName, tt.wantSecs)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings(time.Date(2018, 4, 12, 0, 0, 0, 0, time.UTC))
	if s.Method.Preset() != method.UmmAlQura {
		t.Errorf("method = %v, want Umm Al-Qura", s.Method.Preset())
	}
	if s.Imsak != method.MinutesParam(-10) {
		t.Errorf("imsak = %v, want -10 min", s.Imsak)
	}
	if s.Juristic.Shadow() != 1 || s.HighLatitude != astro.HighLatitudeNone {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.Adjustments != (Adjustments{}) {
		t.Errorf("adjustments = %+v, want zero", s.Adjustments)
	}
}
