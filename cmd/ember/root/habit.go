package root

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/engine"
	"ember/internal/storage"
	"ember/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage recurring habits",
	}
	cmd.AddCommand(newHabitAddCmd())
	cmd.AddCommand(newHabitCheckCmd())
	cmd.AddCommand(newHabitListCmd())
	cmd.AddCommand(newHabitArchiveCmd())
	return cmd
}

// parseScheduleDays reads a comma-separated list of Monday-first weekday
// codes (1..7). An empty string means the habit is due every day.
func parseScheduleDays(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid weekday %q (use 1=Mon..7=Sun)", p)
		}
		if n < 1 || n > 7 {
			return nil, fmt.Errorf("weekday %d out of range (use 1=Mon..7=Sun)", n)
		}
		days = append(days, n)
	}
	return days, nil
}

func parseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1, 0, nil
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q (use HH:MM)", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err == nil {
		minute, err = strconv.Atoi(parts[1])
	}
	if err != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q (use HH:MM)", s)
	}
	return hour, minute, nil
}

func newHabitAddCmd() *cobra.Command {
	var days string
	var remind string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			schedule, err := parseScheduleDays(days)
			if err != nil {
				return err
			}
			hour, minute, err := parseClock(remind)
			if err != nil {
				return err
			}
			if hour < 0 {
				hour = svc.Config().Reminders.DefaultHour
				minute = svc.Config().Reminders.DefaultMinute
			}

			h, err := svc.AddHabit(ctx, strings.Join(args, " "), schedule, hour, minute)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n",
				ui.Good.Render(ui.IconLoop+" habit added:"), h.Name, ui.Dim.Render(shortID(h.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&days, "days", "", "due weekdays, comma separated (1=Mon..7=Sun, empty = daily)")
	cmd.Flags().StringVar(&remind, "remind", "", "reminder time HH:MM")
	return cmd
}

func newHabitCheckCmd() *cobra.Command {
	var progress float64

	cmd := &cobra.Command{
		Use:   "check <id>",
		Short: "Check in a habit for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := resolveHabit(ctx, svc, args[0])
			if err != nil {
				return err
			}
			log, err := svc.CheckInHabit(ctx, h.ID, svc.Now(), progress)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n",
				ui.Good.Render(ui.IconDone+" checked:"), h.Name,
				ui.Dim.Render(fmt.Sprintf("day intensity %.0f%%", log.Intensity*100)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&progress, "progress", 1, "partial completion in [0,1]")
	return cmd
}

func newHabitListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := svc.HabitRepo().ListActive(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(habits) == 0 {
				fmt.Fprintln(out, ui.Dim.Render("no habits yet — try `ember habit add`"))
				return nil
			}
			now := svc.Now()
			fmt.Fprintln(out, ui.Heading(ui.IconLoop, "Habits"))
			for _, h := range habits {
				due := "  "
				if engine.IsHabitDueOn(&h, now) {
					due = ui.Warn.Render("• ")
				}
				fmt.Fprintf(out, "  %s%s  %s  %s\n",
					due, h.Name,
					ui.Dim.Render(fmt.Sprintf("streak %d", h.Streak)),
					ui.Dim.Render(shortID(h.ID)))
			}
			return nil
		},
	}

	return cmd
}

func newHabitArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Retire a habit (history keeps counting)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := resolveHabit(ctx, svc, args[0])
			if err != nil {
				return err
			}
			if err := svc.ArchiveHabit(ctx, h.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s archived\n", ui.Warn.Render("·"), h.Name)
			return nil
		},
	}
	return cmd
}

func resolveHabit(ctx context.Context, svc *engine.Service, ref string) (*storage.Habit, error) {
	habits, err := svc.HabitRepo().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range habits {
		h := &habits[i]
		if strings.HasPrefix(h.ID, ref) || strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return nil, fmt.Errorf("no habit matches %q", ref)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
