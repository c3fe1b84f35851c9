package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smokyabdulrahman/pray/internal/config"
	"github.com/smokyabdulrahman/pray/internal/method"
	"github.com/smokyabdulrahman/pray/internal/prayer"
	"github.com/spf13/pflag"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, prayer.SystemClock{}))
}

// flagKeys maps flags onto the config keys they override.
var flagKeys = []struct{ flag, key string }{
	{"latitude", "latitude"},
	{"longitude", "longitude"},
	{"altitude", "altitude"},
	{"utc-offset", "utc_offset"},
	{"method", "method"},
	{"school", "school"},
	{"high-latitude", "high_latitude"},
	{"time-format", "time_format"},
}

// run parses args and prints one status line. It returns the exit code.
func run(args []string, stdout, stderr io.Writer, clock prayer.Clock) int {
	fs := pflag.NewFlagSet("tmux-prayer-times", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	// Location and calculation flags; unset ones fall back to the
	// prayer-times config file and PRAYER_TIMES_* environment.
	fs.Float64("latitude", 0, "Latitude for prayer time calculation")
	fs.Float64("longitude", 0, "Longitude for prayer time calculation")
	fs.Float64("altitude", 0, "Altitude in metres")
	fs.Float64("utc-offset", 0, "UTC offset in hours (default: system time zone)")
	fs.String("method", "", "Calculation method key or ID (see --list-methods)")
	fs.String("school", "", "Juristic school for Asr: standard or hanafi")
	fs.String("high-latitude", "", "High latitude rule: none, middle-of-night, one-seventh, angle-based")

	// Display flags
	format := fs.String("format", prayer.FormatNameAndTime, "Display format: "+strings.Join(prayer.Modes, ", ")+", or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .Time, .Date, .Remaining, .Hours, .Minutes")
	fs.String("time-format", "", "Time format: 12h or 24h")
	query := fs.String("query", prayer.QueryNext.String(), "Which prayer to show: now, next, later or after-later")

	// Info flags
	showVersion := fs.Bool("version", false, "Print version and exit")
	listMethods := fs.Bool("list-methods", false, "Print supported calculation methods and exit")
	verbose := fs.BoolP("verbose", "v", false, "Log calculation inputs to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).Level(level)

	if *showVersion {
		fmt.Fprintf(stdout, "tmux-prayer-times %s\n", version)
		return 0
	}

	if *listMethods {
		printMethods(stdout, clock.Now())
		return 0
	}

	out, err := status(fs, *query, *format, clock)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, out)
	return 0
}

// printMethods prints the table of supported calculation methods.
func printMethods(w io.Writer, at time.Time) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-10s %-4s %s\n", "Key", "ID", "Name")
	fmt.Fprintf(w, "  %-10s %-4s %s\n", "───", "──", "────")
	for _, p := range method.Presets() {
		fmt.Fprintf(w, "  %-10s %-4d %s\n", p.Key(), p.ID(), p)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <key or ID> to select a calculation method.")
	fmt.Fprintf(w, "If omitted, %s is used.\n", method.UmmAlQura)
}

// status computes the requested prayer and formats it.
func status(fs *pflag.FlagSet, queryName, format string, clock prayer.Clock) (string, error) {
	q, err := prayer.ParseQuery(queryName)
	if err != nil {
		return "", err
	}

	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if err := cfg.ApplyEnv(""); err != nil {
		return "", err
	}
	for _, fk := range flagKeys {
		if f := fs.Lookup(fk.flag); f != nil && f.Changed {
			if err := cfg.Set(fk.key, f.Value.String()); err != nil {
				return "", fmt.Errorf("--%s: %w", fk.flag, err)
			}
		}
	}
	cfg = cfg.WithDefaults()

	coord, err := cfg.Coordinate()
	if err != nil {
		return "", err
	}

	now := clock.Now()
	offset := cfg.Offset(now)
	settings, err := cfg.Settings(now)
	if err != nil {
		return "", err
	}

	log.Debug().
		Float64("latitude", coord.Latitude).
		Float64("longitude", coord.Longitude).
		Float64("utc_offset", offset).
		Str("method", cfg.Method).
		Str("query", q.String()).
		Msg("computing status")

	p, err := prayer.Classify(q, &settings, coord, offset, prayer.FixedClock(now))
	if err != nil {
		return "", err
	}

	return prayer.FormatOutput(p, now.In(prayer.Zone(offset)), format, cfg.GoTimeFormat()), nil
}
