package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smokyabdulrahman/pray/internal/display"
	"github.com/smokyabdulrahman/pray/internal/hijri"
	"github.com/smokyabdulrahman/pray/internal/method"
	"github.com/smokyabdulrahman/pray/internal/prayer"
	"github.com/spf13/cobra"
)

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	day, err := s.compute(s.day)
	if err != nil {
		return err
	}

	events, err := day.Select(s.cfg.PrayerNames())
	if err != nil {
		return err
	}

	// Current and next are only meaningful when showing today.
	var current, next *prayer.Prayer
	if s.isToday {
		current, next = s.currentAndNext()
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printTodayJSON(out, s, events, current, next)
	}

	printTodayRich(out, s, events, current, next)
	return nil
}

// currentAndNext classifies the session instant. Failures are logged and
// leave the highlight off.
func (s *session) currentAndNext() (*prayer.Prayer, *prayer.Prayer) {
	st, err := s.settings(s.day)
	if err != nil {
		return nil, nil
	}
	at := prayer.FixedClock(s.now)

	cur, err := prayer.CurrentPrayer(st, s.coord, s.offset, at)
	if err != nil {
		log.Warn().Err(err).Msg("cannot determine the current prayer")
		return nil, nil
	}
	nxt, err := prayer.NextPrayer(st, s.coord, s.offset, at)
	if err != nil {
		log.Warn().Err(err).Msg("cannot determine the next prayer")
		return &cur, nil
	}
	return &cur, &nxt
}

// matches reports whether an event is the given prayer boundary.
func matches(e prayer.Event, p *prayer.Prayer) bool {
	return p != nil && e.Name == p.Type.String() && e.Time.Equal(p.Time)
}

// printTodayRich renders the colored terminal output for a day's schedule.
func printTodayRich(w io.Writer, s *session, events []prayer.Event, current, next *prayer.Prayer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", s.locationString())
	fmt.Fprintf(w, "  %s\n", display.Gray(s.zone.String()+" · "+s.methodName()))
	fmt.Fprintf(w, "  %s\n", formatGregorianDate(s.day))
	fmt.Fprintf(w, "  %s\n", hijri.FromTime(s.day).Format())
	fmt.Fprintln(w)

	maxNameLen := 0
	for _, e := range events {
		maxNameLen = max(maxNameLen, len(e.Name))
	}

	for _, e := range events {
		line := fmt.Sprintf("  %s  %s", padRight(e.Name, maxNameLen), e.Time.Format(s.timeFmt))

		switch {
		case matches(e, current):
			fmt.Fprintln(w, display.Dim(line))
		case matches(e, next):
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(*next, s.now))
			suffix := fmt.Sprintf("  <- next in %s", remaining)
			fmt.Fprintln(w, display.Accent(line)+display.Accent(suffix))
		default:
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w)
}

// methodName names the calculation method in effect. Custom parameters
// that equal a preset are named after it.
func (s *session) methodName() string {
	st, err := s.settings(s.day)
	if err != nil {
		return s.cfg.Method
	}
	return method.Detect(st.Method).String()
}

// formatGregorianDate returns a formatted Gregorian date string.
func formatGregorianDate(day time.Time) string {
	return day.Format("Monday, 02 January 2006")
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Method   string            `json:"method"`
	Date     todayJSONDate     `json:"date"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current,omitempty"`
	Next     *todayJSONNext    `json:"next,omitempty"`
}

type todayJSONLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Timezone  string  `json:"timezone"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func (s *session) jsonLocation() todayJSONLocation {
	return todayJSONLocation{
		Latitude:  s.coord.Latitude,
		Longitude: s.coord.Longitude,
		Altitude:  s.coord.Altitude,
		Timezone:  s.zone.String(),
	}
}

// timingsMap keys event times by lowercase name.
func timingsMap(events []prayer.Event, timeFmt string) map[string]string {
	timings := make(map[string]string, len(events))
	for _, e := range events {
		timings[strings.ToLower(e.Name)] = e.Time.Format(timeFmt)
	}
	return timings
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, s *session, events []prayer.Event, current, next *prayer.Prayer) error {
	out := todayJSON{
		Location: s.jsonLocation(),
		Method:   s.methodName(),
		Date: todayJSONDate{
			Gregorian: s.day.Format("2006-01-02"),
			Hijri:     hijri.FromTime(s.day).Format(),
		},
		Timings: timingsMap(events, s.timeFmt),
	}

	if current != nil {
		out.Current = strings.ToLower(current.Type.String())
	}

	if next != nil {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Type.String()),
			Time:      next.Time.Format(s.timeFmt),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, s.now)),
		}
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
