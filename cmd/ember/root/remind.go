package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/engine"
	"ember/internal/ui"
)

var weekdayNames = [8]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func newRemindCmd() *cobra.Command {
	var on bool
	var off bool
	var at string

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Show or change reminder settings",
		Long:  "Shows the weekly reminder triggers habits resolve to. Actual delivery is up to the platform scheduler; this prints what it should register.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			out := cmd.OutOrStdout()

			stats, err := svc.FreezeStatus(ctx)
			if err != nil {
				return err
			}
			if on || off || at != "" {
				hour, minute := stats.ReminderHour, stats.ReminderMinute
				if at != "" {
					hour, minute, err = parseClock(at)
					if err != nil {
						return err
					}
				}
				enabled := stats.RemindersEnabled || on
				if off {
					enabled = false
				}
				stats, err = svc.SetReminderPrefs(ctx, enabled, hour, minute)
				if err != nil {
					return err
				}
			}

			state := ui.Bad.Render("off")
			if stats.RemindersEnabled {
				state = ui.Good.Render("on")
			}
			fmt.Fprintln(out, ui.Heading(ui.IconInfo, "Reminders"))
			fmt.Fprintln(out, ui.LabelValue("Enabled", state))
			fmt.Fprintln(out, ui.LabelValue("Default time", fmt.Sprintf("%02d:%02d", stats.ReminderHour, stats.ReminderMinute)))

			habits, err := svc.HabitRepo().ListActive(ctx)
			if err != nil {
				return err
			}
			for _, h := range habits {
				triggers := engine.ResolveReminders(&h)
				for _, t := range triggers {
					fmt.Fprintf(out, "  %s %02d:%02d  %s  %s\n",
						weekdayNames[t.Weekday], t.Hour, t.Minute, h.Name, ui.Dim.Render(t.ID))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&on, "on", false, "enable reminders")
	cmd.Flags().BoolVar(&off, "off", false, "disable reminders")
	cmd.Flags().StringVar(&at, "at", "", "default reminder time HH:MM")
	cmd.MarkFlagsMutuallyExclusive("on", "off")
	return cmd
}
