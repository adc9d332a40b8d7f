package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/engine"
	"ember/internal/timeutil"
	"ember/internal/ui"
)

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's log (recomputes it first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			log, err := svc.UpsertTodayLog(ctx)
			if err != nil {
				return err
			}
			streaks, err := svc.Streaks(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconFlame, "Today "+log.Day))
			fmt.Fprintln(out, ui.LabelValue("Priorities", fmt.Sprintf("%d/%d", log.CompletedPriorities, log.TotalPriorities)))
			fmt.Fprintln(out, ui.LabelValue("Habits", fmt.Sprintf("%d/%d", log.CompletedHabits, log.TotalHabits)))
			fmt.Fprintln(out, ui.LabelValue("Focus", fmt.Sprintf("%d min", log.FocusMinutes)))
			fmt.Fprintln(out, ui.LabelValue("Intensity", fmt.Sprintf("%.2f %s", log.Intensity, ui.ProgressBar(log.Intensity, 14))))
			if log.Protected {
				fmt.Fprintln(out, ui.Key.Render(ui.IconSnow+" streak protected today"))
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d days (best %d)", streaks.Current, streaks.Best)))
			if log.Note != "" {
				fmt.Fprintln(out, ui.Muted.Render("note: "+log.Note))
			}

			day := string(timeutil.Day(svc.Now()))
			slate, err := svc.PriorityRepo().ListSlate(ctx, day, svc.Config().Slate.Size)
			if err != nil {
				return err
			}
			if len(slate) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconTarget+" Slate"))
				for _, p := range slate {
					mark := "[ ]"
					if p.IsCompleted {
						mark = "[x]"
					}
					fmt.Fprintf(out, "  %s %s %s\n", mark, p.Title, ui.Muted.Render("("+p.ID[:8]+")"))
				}
			}

			habits, err := svc.HabitRepo().ListActive(ctx)
			if err != nil {
				return err
			}
			if len(habits) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconLoop+" Habits"))
				for i := range habits {
					h := &habits[i]
					mark := "[ ]"
					if h.Progress >= 1 {
						mark = "[x]"
					} else if h.Progress > 0 {
						mark = fmt.Sprintf("[%2.0f%%]", h.Progress*100)
					}
					due := ""
					if !engine.IsHabitDueOn(h, svc.Now()) {
						due = ui.Muted.Render(" (not due today)")
					}
					fmt.Fprintf(out, "  %s %s %s%s\n", mark, h.Name, ui.Muted.Render("("+h.ID[:8]+")"), due)
				}
			}

			return nil
		},
	}

	return cmd
}
