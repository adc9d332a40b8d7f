package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP and overall progress",
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
			prog, err := svc.LevelStatus(ctx)
			if err != nil {
				return err
			}
			res, err := svc.Streaks(ctx)
			if err != nil {
				return err
			}
			stats, err := svc.FreezeStatus(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", prog.Level))
			fmt.Fprintf(out, "  %s %s\n",
				ui.ProgressBar(prog.Ratio, 20),
				ui.Dim.Render(fmt.Sprintf("%d / %d XP to level %d", prog.Current, prog.Needed, prog.Level+1)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days (best %d)", ui.IconFlame, res.Current, res.Best)))
			fmt.Fprintln(out, ui.LabelValue("Freeze tokens", fmt.Sprintf("%s %d / %d", ui.IconSnow, stats.FreezeTokens, stats.FreezeAllowance)))
			fmt.Fprintln(out, ui.LabelValue("Lifetime focus", fmt.Sprintf("%s %d min", ui.IconTimer, stats.FocusMinutes)))
			return nil
		},
	}

	return cmd
}
