package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/pray/internal/prayer"
	"github.com/spf13/cobra"
)

var classifyDescriptions = map[prayer.Query]string{
	prayer.QueryNow:        "Show the prayer whose time is in effect now",
	prayer.QueryNext:       "Show the next prayer with countdown",
	prayer.QueryLater:      "Show the prayer after the next one",
	prayer.QueryAfterLater: "Show the prayer three intervals ahead",
}

// newClassifyCmd builds one of the now/next/later/after-later commands.
func newClassifyCmd(q prayer.Query) *cobra.Command {
	var (
		format string
		at     string
	)

	cmd := &cobra.Command{
		Use:   q.String(),
		Short: classifyDescriptions[q],
		Long: classifyDescriptions[q] + ".\n\nPrayer intervals run Imsak, Fajr, Sunrise, Dhuha, Dhuhr, Asr, Maghrib, Isha;\n" +
			"each lasts until the next one begins. The output suits status bars such as tmux.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, q, format, at)
		},
	}

	cmd.Flags().StringVar(&format, "format", prayer.FormatFull, "Display format: "+strings.Join(prayer.Modes, ", ")+", or a custom Go template")
	cmd.Flags().StringVar(&at, "at", "", "Classify this RFC 3339 instant instead of now")

	return cmd
}

// classifyJSON is the JSON output structure for the classification commands.
type classifyJSON struct {
	Query     string `json:"query"`
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Date      string `json:"date"`
	Remaining string `json:"remaining"`
}

func runClassify(cmd *cobra.Command, q prayer.Query, format, at string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	if at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("invalid --at %q: want RFC 3339, e.g. 2018-04-12T08:00:00+08:00", at)
		}
		s.now = t.In(s.zone)
	}

	st, err := s.settings(s.now)
	if err != nil {
		return err
	}

	p, err := prayer.Classify(q, st, s.coord, s.offset, prayer.FixedClock(s.now))
	if err != nil {
		return withHint(err)
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return writeJSON(out, classifyJSON{
			Query:     q.String(),
			Prayer:    strings.ToLower(p.Type.String()),
			Time:      p.Time.Format(s.timeFmt),
			Date:      p.Time.Format("2006-01-02"),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(p, s.now)),
		})
	}

	fmt.Fprint(out, prayer.FormatOutput(p, s.now, format, s.timeFmt))
	return nil
}
