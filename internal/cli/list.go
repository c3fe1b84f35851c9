package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/smokyabdulrahman/pray/internal/display"
	"github.com/smokyabdulrahman/pray/internal/hijri"
	"github.com/smokyabdulrahman/pray/internal/prayer"
	"github.com/spf13/cobra"
)

// maxDays bounds multi-day tables.
const maxDays = 366

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7), starting today or at --date.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := 7
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid number of days: %q (must be a positive integer)", args[0])
				}
				days = n
			}
			return runList(cmd, days)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, 30)
		},
	}
}

// dayData holds a single day's computed data for list/query output.
type dayData struct {
	Date    string // YYYY-MM-DD
	Label   string // Mon 02 Jan
	Hijri   string
	Prayers prayer.Prayers
}

// computeDays computes n consecutive days starting at the session day.
func (s *session) computeDays(n int) ([]dayData, error) {
	if n > maxDays {
		log.Warn().Int("requested", n).Int("max", maxDays).Msg("limiting number of days")
		n = maxDays
	}

	out := make([]dayData, 0, n)
	for i := 0; i < n; i++ {
		d := s.day.AddDate(0, 0, i)
		p, err := s.compute(d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Format("2006-01-02"), err)
		}
		out = append(out, dayData{
			Date:    d.Format("2006-01-02"),
			Label:   d.Format("Mon 02 Jan"),
			Hijri:   hijri.FromTime(d).Format(),
			Prayers: p,
		})
	}
	return out, nil
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, days int) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	names := s.cfg.PrayerNames()

	daysList, err := s.computeDays(days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printListJSON(out, s, daysList, names)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("Prayer Times: %d Days", len(daysList))))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", s.locationString())
	fmt.Fprintf(out, "  %s\n", display.Gray(s.zone.String()+" · "+s.methodName()))
	fmt.Fprintln(out)

	headers := append([]string{"Date"}, names...)
	tbl := display.NewTable(headers)

	for i, dd := range daysList {
		events, err := dd.Prayers.Select(names)
		if err != nil {
			return err
		}

		row := []string{dd.Label}
		for _, e := range events {
			row = append(row, e.Time.Format(s.timeFmt))
		}
		tbl.AddRow(row)

		if i == 0 && s.isToday {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location todayJSONLocation `json:"location"`
	Method   string            `json:"method"`
	Days     []listJSONDay     `json:"days"`
}

type listJSONDay struct {
	Date    string            `json:"date"`
	Hijri   string            `json:"hijri"`
	Timings map[string]string `json:"timings"`
}

func printListJSON(w io.Writer, s *session, daysList []dayData, names []string) error {
	out := listJSONOutput{
		Location: s.jsonLocation(),
		Method:   s.methodName(),
	}

	for _, dd := range daysList {
		events, err := dd.Prayers.Select(names)
		if err != nil {
			return err
		}
		out.Days = append(out.Days, listJSONDay{
			Date:    dd.Date,
			Hijri:   dd.Hijri,
			Timings: timingsMap(events, s.timeFmt),
		})
	}

	return writeJSON(w, out)
}
