package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/pray/internal/display"
	"github.com/smokyabdulrahman/pray/internal/prayer"
	"github.com/spf13/cobra"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for today, or across multiple days with --days.\n\nValid prayer names: " +
			strings.Join(prayer.EventNames, ", "),
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

// parseDays reads a --days value.
func parseDays(v string) (int, error) {
	switch v {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", v)
	}
	return n, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	names, err := prayer.NormalizeNames(args[:1])
	if err != nil {
		return fmt.Errorf("unknown prayer %q; valid names: %s", args[0], strings.Join(prayer.EventNames, ", "))
	}
	name := names[0]

	days, err := parseDays(flagQueryDays)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	daysList, err := s.computeDays(days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if days == 1 {
		return printQuerySingleDay(out, s, daysList[0], name)
	}
	return printQueryMultiDay(out, s, daysList, name)
}

func printQuerySingleDay(w io.Writer, s *session, dd dayData, name string) error {
	t, _ := dd.Prayers.Lookup(name)
	timeStr := t.Format(s.timeFmt)

	if FlagJSON {
		return writeJSON(w, queryJSONSingle{
			Prayer: strings.ToLower(name),
			Time:   timeStr,
			Date:   dd.Date,
			Hijri:  dd.Hijri,
		})
	}

	fmt.Fprintf(w, "%s %s\n", name, timeStr)
	return nil
}

func printQueryMultiDay(w io.Writer, s *session, daysList []dayData, name string) error {
	if FlagJSON {
		return printQueryJSON(w, s, daysList, name)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(fmt.Sprintf("%s Times: %d Days", name, len(daysList))))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.locationString())
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Date", name, "Hijri"})

	for i, dd := range daysList {
		t, _ := dd.Prayers.Lookup(name)
		tbl.AddRow([]string{dd.Label, t.Format(s.timeFmt), dd.Hijri})

		if i == 0 && s.isToday {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

type queryJSONSingle struct {
	Prayer string `json:"prayer"`
	Time   string `json:"time"`
	Date   string `json:"date"`
	Hijri  string `json:"hijri"`
}

type queryJSONMulti struct {
	Location todayJSONLocation `json:"location"`
	Prayer   string            `json:"prayer"`
	Days     []queryJSONDay    `json:"days"`
}

type queryJSONDay struct {
	Date  string `json:"date"`
	Hijri string `json:"hijri"`
	Time  string `json:"time"`
}

func printQueryJSON(w io.Writer, s *session, daysList []dayData, name string) error {
	out := queryJSONMulti{
		Location: s.jsonLocation(),
		Prayer:   strings.ToLower(name),
	}

	for _, dd := range daysList {
		t, _ := dd.Prayers.Lookup(name)
		out.Days = append(out.Days, queryJSONDay{
			Date:  dd.Date,
			Hijri: dd.Hijri,
			Time:  t.Format(s.timeFmt),
		})
	}

	return writeJSON(w, out)
}
