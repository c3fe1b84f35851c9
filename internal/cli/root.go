package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smokyabdulrahman/pray/internal/astro"
	"github.com/smokyabdulrahman/pray/internal/config"
	"github.com/smokyabdulrahman/pray/internal/display"
	"github.com/smokyabdulrahman/pray/internal/prayer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Global flags shared across all subcommands.
var (
	FlagLatitude     float64
	FlagLongitude    float64
	FlagAltitude     float64
	FlagUTCOffset    float64
	FlagMethod       string
	FlagSchool       string
	FlagHighLatitude string
	FlagDate         string
	FlagJSON         bool
	FlagTimeFormat   string
	FlagEnvFile      string
	FlagVerbose      bool
)

// flagKeys maps persistent flags onto the config keys they override.
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

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// clock supplies the current instant. Tests replace it.
var clock prayer.Clock = prayer.SystemClock{}

// NewRootCmd creates the root command for the prayer-times CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "prayer-times",
		Short:   "Islamic prayer times CLI",
		Long:    "A full-featured CLI for Islamic prayer times, computed locally from your coordinates.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), FlagVerbose)
			if FlagJSON {
				display.SetEnabled(false)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude in degrees")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude in degrees")
	pf.Float64Var(&FlagAltitude, "altitude", 0, "Override altitude in metres")
	pf.Float64Var(&FlagUTCOffset, "utc-offset", 0, "UTC offset in hours (default: system time zone)")
	pf.StringVar(&FlagMethod, "method", "", "Calculation method key or ID (see 'methods')")
	pf.StringVar(&FlagSchool, "school", "", "Juristic school for Asr: standard or hanafi")
	pf.StringVar(&FlagHighLatitude, "high-latitude", "", "High latitude rule: "+strings.Join(astro.HighLatitudeKeys(), ", "))
	pf.StringVar(&FlagDate, "date", "", "Date to show as YYYY-MM-DD (default: today)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagEnvFile, "env-file", ".env", "Optional .env file with PRAYER_TIMES_* overrides")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Log calculation inputs to stderr")

	// Register subcommands.
	for _, q := range prayer.Queries() {
		rootCmd.AddCommand(newClassifyCmd(q))
	}
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("prayer-times %s\n", version)
}

// setupLogging points the global zerolog logger at w. Only warnings are
// shown unless verbose is set.
func setupLogging(w io.Writer, verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !display.Enabled()}
	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if loadedConfig != nil {
		merged := *loadedConfig
		cfg = &merged
	}

	if err := cfg.ApplyEnv(FlagEnvFile); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	for _, fk := range flagKeys {
		f := changedFlag(flags, root, fk.flag)
		if f == nil {
			continue
		}
		if err := cfg.Set(fk.key, f.Value.String()); err != nil {
			return nil, fmt.Errorf("--%s: %w", fk.flag, err)
		}
	}

	return cfg.WithDefaults(), nil
}

// changedFlag returns the named flag if it was explicitly set on either the
// local or persistent flag set.
func changedFlag(local, persistent *pflag.FlagSet, name string) *pflag.Flag {
	if f := local.Lookup(name); f != nil && f.Changed {
		return f
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return f
	}
	return nil
}

// session is everything a command needs to compute and print times.
type session struct {
	cfg     *config.Config
	coord   prayer.Geocoordinate
	offset  float64
	zone    *time.Location
	now     time.Time // in zone
	day     time.Time // UTC midnight of the selected local date
	isToday bool
	timeFmt string
}

// newSession merges configuration and resolves the location, zone and day.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}

	coord, err := cfg.Coordinate()
	if err != nil {
		return nil, fmt.Errorf("%w (use --latitude/--longitude or `prayer-times config set`)", err)
	}

	now := clock.Now()
	if cfg.UTCOffset == nil {
		log.Warn().Msg("utc_offset not configured; using the system time zone")
	}
	offset := cfg.Offset(now)
	zone := prayer.Zone(offset)
	now = now.In(zone)

	s := &session{
		cfg:     cfg,
		coord:   coord,
		offset:  offset,
		zone:    zone,
		now:     now,
		day:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		isToday: true,
		timeFmt: cfg.GoTimeFormat(),
	}

	if FlagDate != "" {
		d, err := time.Parse("2006-01-02", FlagDate)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", FlagDate)
		}
		s.isToday = d.Equal(s.day)
		s.day = d
	}

	log.Debug().
		Float64("latitude", coord.Latitude).
		Float64("longitude", coord.Longitude).
		Float64("altitude", coord.Altitude).
		Float64("utc_offset", offset).
		Str("method", cfg.Method).
		Str("school", cfg.School).
		Str("high_latitude", cfg.HighLatitude).
		Str("day", s.day.Format("2006-01-02")).
		Msg("resolved calculation inputs")

	return s, nil
}

// settings returns the calculation settings in effect on day.
func (s *session) settings(day time.Time) (*prayer.Settings, error) {
	st, err := s.cfg.Settings(day)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// compute returns the times for the local calendar date day.
func (s *session) compute(day time.Time) (prayer.Prayers, error) {
	st, err := s.settings(day)
	if err != nil {
		return prayer.Prayers{}, err
	}
	p, err := prayer.ComputeDay(day, st, s.coord, s.offset)
	if err != nil {
		return prayer.Prayers{}, withHint(err)
	}
	return p, nil
}

// withHint points the user at the high latitude rules when a time is
// undefined.
func withHint(err error) error {
	if errors.Is(err, prayer.ErrUndefinedTime) {
		return fmt.Errorf("%w; try --high-latitude %s", err, strings.Join(astro.HighLatitudeKeys()[1:], "|"))
	}
	return err
}

// locationString formats the observer position for display.
func (s *session) locationString() string {
	return fmt.Sprintf("%.4f, %.4f", s.coord.Latitude, s.coord.Longitude)
}
