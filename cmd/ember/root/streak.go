package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/engine"
	"ember/internal/timeutil"
	"ember/internal/ui"
)

func newStreakCmd() *cobra.Command {
	var protect bool
	var unprotect bool

	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the activity streak and freeze-token budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			out := cmd.OutOrStdout()

			// Recompute first so day rollover is reflected before we read.
			if _, err := svc.UpsertTodayLog(ctx); err != nil {
				return err
			}

			if protect {
				_, err := svc.ActivateStreakProtection(ctx)
				var insufficient engine.InsufficientTokensError
				if errors.As(err, &insufficient) {
					fmt.Fprintln(out, ui.Bad.Render(ui.IconSnow+" no freeze tokens left this month"))
					fmt.Fprintln(out, ui.Dim.Render(fmt.Sprintf("the budget resets to %d on the 1st", insufficient.Allowance)))
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render(ui.IconSnow+" today is protected"))
			}
			if unprotect {
				day := string(timeutil.Day(svc.Now()))
				log, err := svc.LogRepo().Get(ctx, day)
				if err != nil {
					return err
				}
				if log == nil || !log.Protected {
					fmt.Fprintln(out, ui.Dim.Render("today was not protected"))
				} else {
					if _, err := svc.ToggleStreakProtection(ctx); err != nil {
						return err
					}
					fmt.Fprintln(out, ui.Warn.Render("protection removed; the token is not refunded"))
				}
			}

			res, err := svc.Streaks(ctx)
			if err != nil {
				return err
			}
			stats, err := svc.FreezeStatus(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconFlame, "Streak"))
			fmt.Fprintln(out, ui.LabelValue("Current", fmt.Sprintf("%d days", res.Current)))
			fmt.Fprintln(out, ui.LabelValue("Best", fmt.Sprintf("%d days", res.Best)))
			fmt.Fprintln(out, ui.LabelValue("Freeze tokens", fmt.Sprintf("%d / %d this month", stats.FreezeTokens, stats.FreezeAllowance)))
			if stats.StreakProtected {
				fmt.Fprintln(out, ui.Good.Render(ui.IconSnow+" today is protected"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&protect, "protect", false, "spend a freeze token to protect today")
	cmd.Flags().BoolVar(&unprotect, "unprotect", false, "remove today's protection (no refund)")
	cmd.MarkFlagsMutuallyExclusive("protect", "unprotect")
	return cmd
}
