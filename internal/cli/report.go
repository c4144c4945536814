package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/sadopc/dualtrack/internal/analytics"
	"github.com/sadopc/dualtrack/internal/tracker"
)

const noteWidth = 48

type reportOptions struct {
	days   int
	period analytics.Period
}

func addReport(topLevel *cobra.Command) {
	var days int
	var period, from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the hours series, time breakdown, streaks and moods.",
		Example: `
dualtrack report
dualtrack report --days 7 --period week
dualtrack report --period custom --from 2024-03-01 --to 2024-03-15
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := analytics.ParsePeriodKind(period)
			if err != nil {
				return err
			}
			e, err := openEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			if days <= 0 {
				days = e.cfg.SeriesDays
			}
			opts := reportOptions{
				days:   days,
				period: analytics.Period{Kind: kind, From: from, To: to},
			}
			return writeReport(cmd.OutOrStdout(), e.sess.Data(), opts, e.sess.Today())
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "number of trailing days in the hours series (default series_days)")
	cmd.Flags().StringVar(&period, "period", string(analytics.PeriodWeek), "breakdown period: day, week, month or custom")
	cmd.Flags().StringVar(&from, "from", "", "first day of a custom period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day of a custom period (YYYY-MM-DD)")

	topLevel.AddCommand(cmd)
}

func writeReport(w io.Writer, d tracker.Data, opts reportOptions, today time.Time) error {
	bold := color.New(color.Bold)
	heading := func(s string) {
		fmt.Fprintln(w, bold.Sprint(s))
	}

	heading(fmt.Sprintf("Hours, last %d days", opts.days))
	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{"DATE", "TOTAL"}
	for _, c := range tracker.PrimaryCategories {
		header = append(header, strings.ToUpper(c.Label))
	}
	tbl.AddRow(header...)
	for _, p := range analytics.LastNDaysSeries(d, opts.days, today) {
		row := []interface{}{p.Label, formatHours(p.Total)}
		for _, c := range tracker.PrimaryCategories {
			row = append(row, formatHours(p.ByPrimary[c.Key]))
		}
		tbl.AddRow(row...)
	}
	for i := 1; i < len(header); i++ {
		tbl.RightAlign(i)
	}
	fmt.Fprintln(w, tbl)

	b := analytics.PeriodBreakdown(d, opts.period, today)
	fmt.Fprintln(w)
	heading(fmt.Sprintf("Breakdown, %s (%sh)", opts.period, formatHours(b.Total)))
	if len(b.Slices) == 0 {
		fmt.Fprintln(w, "no hours recorded")
	} else {
		tbl = uitable.New()
		tbl.Separator = "  "
		for _, s := range b.Slices {
			tbl.AddRow(s.Label, formatHours(s.Hours)+"h", fmt.Sprintf("%d%%", s.Percent), strings.Repeat("█", s.Percent/5))
		}
		tbl.RightAlign(1)
		tbl.RightAlign(2)
		fmt.Fprintln(w, tbl)
	}

	fmt.Fprintln(w)
	heading("Habit streaks")
	streaks := analytics.Streaks(d, today)
	if len(streaks) == 0 {
		fmt.Fprintln(w, "no habits yet")
	} else {
		tbl = uitable.New()
		tbl.Separator = "  "
		for _, s := range streaks {
			end := s.Habit.EndDate
			if end == "" {
				end = "ongoing"
			}
			tbl.AddRow(s.Habit.Name, s.Habit.StartDate+" to "+end, fmt.Sprintf("%d days", s.Days))
		}
		fmt.Fprintln(w, tbl)
	}

	fmt.Fprintln(w)
	heading("Moods")
	tbl = uitable.New()
	tbl.Separator = "  "
	for _, m := range analytics.MoodHistogram(d) {
		tbl.AddRow(m.Label, m.Count)
	}
	tbl.RightAlign(1)
	fmt.Fprintln(w, tbl)

	log := analytics.PeriodMoodLog(d, analytics.Period{Kind: analytics.PeriodMonth}, today)
	for _, g := range log {
		fmt.Fprintln(w)
		heading("Mood notes, " + g.Label)
		tbl = uitable.New()
		tbl.Separator = "  "
		for _, e := range g.Entries {
			tbl.AddRow(e.Label, e.Mood.Label(), truncate.StringWithTail(e.Note, noteWidth, "…"))
		}
		fmt.Fprintln(w, tbl)
	}

	open := 0
	for _, t := range d.Todos {
		if !t.Completed {
			open++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %d open of %d\n", bold.Sprint("Todos:"), open, len(d.Todos))
	return nil
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.1f", h)
}
