package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ember/internal/engine"
	"ember/internal/timeutil"
	"ember/internal/ui"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus [minutes]",
		Short: "Log a finished focus session, or list today's sessions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				now := svc.Now()
				sessions, err := svc.FocusRepo().ListBetween(ctx, timeutil.DayStart(now), timeutil.DayEnd(now))
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					fmt.Fprintln(out, ui.Dim.Render("no focus sessions today"))
					return nil
				}
				total := 0
				fmt.Fprintln(out, ui.Heading(ui.IconTimer, "Focus today"))
				for _, s := range sessions {
					total += s.Minutes
					fmt.Fprintf(out, "  %s  %d min\n", ui.Dim.Render(s.EndedAt.Local().Format("15:04")), s.Minutes)
				}
				fmt.Fprintln(out, ui.LabelValue("Total", fmt.Sprintf("%d min", total)))
				return nil
			}

			minutes, err := strconv.Atoi(args[0])
			if err != nil || minutes <= 0 {
				return fmt.Errorf("minutes must be a positive number, got %q", args[0])
			}
			log, err := svc.LogFocus(ctx, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %d min logged (%d min today)\n",
				ui.Good.Render(ui.IconTimer), minutes, log.FocusMinutes)
			if log.FocusMinutes >= engine.FocusCapMinutes {
				fmt.Fprintln(out, ui.Dim.Render(fmt.Sprintf("focus XP is capped at %d min/day; the rest still counts toward quests", engine.FocusCapMinutes)))
			}
			return nil
		},
	}

	return cmd
}
