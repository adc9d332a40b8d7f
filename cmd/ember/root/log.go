package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/storage"
	"ember/internal/timeutil"
	"ember/internal/ui"
)

func newLogCmd() *cobra.Command {
	var notes bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the recent activity history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := svc.UpsertTodayLog(ctx); err != nil {
				return err
			}
			logs, err := svc.History(ctx)
			if err != nil {
				return err
			}
			byDay := make(map[string]storage.DailyLog, len(logs))
			for _, l := range logs {
				byDay[l.Day] = l
			}

			out := cmd.OutOrStdout()
			cfg := svc.Config()
			now := svc.Now()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, fmt.Sprintf("Last %d weeks", cfg.Streak.DisplayWeeks)))

			weekStart := timeutil.WeekStart(now, cfg.Calendar.FirstWeekday)
			weekStart = weekStart.AddDate(0, 0, -7*(cfg.Streak.DisplayWeeks-1))
			for w := 0; w < cfg.Streak.DisplayWeeks; w++ {
				var row strings.Builder
				for d := 0; d < 7; d++ {
					day := weekStart.AddDate(0, 0, d)
					if day.After(now) {
						row.WriteString(" ")
						continue
					}
					l, ok := byDay[string(timeutil.Day(day))]
					if !ok {
						row.WriteString(ui.Muted.Render("░"))
						continue
					}
					row.WriteString(ui.IntensityGlyph(l.Intensity, l.Protected))
				}
				fmt.Fprintf(out, "  %s  %s\n", ui.Dim.Render(string(timeutil.Day(weekStart))), row.String())
				weekStart = weekStart.AddDate(0, 0, 7)
			}

			if notes {
				fmt.Fprintln(out)
				for _, l := range logs {
					if l.Note == "" && l.PhotoRef == nil {
						continue
					}
					line := fmt.Sprintf("  %s  %s", ui.Dim.Render(l.Day), l.Note)
					if l.PhotoRef != nil {
						line += ui.Dim.Render("  [" + *l.PhotoRef + "]")
					}
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&notes, "notes", false, "also list day notes and photo references")
	return cmd
}
