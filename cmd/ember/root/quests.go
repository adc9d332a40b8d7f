package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/engine"
	"ember/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	var claim string

	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Show this week's quests and claim finished ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			out := cmd.OutOrStdout()

			if claim != "" {
				_, bonus, err := svc.ClaimQuest(ctx, claim)
				var already engine.AlreadyClaimedError
				var notDone engine.NotCompleteError
				switch {
				case errors.As(err, &already):
					fmt.Fprintln(out, ui.Warn.Render("already claimed this week"))
				case errors.As(err, &notDone):
					fmt.Fprintf(out, "%s %d / %d\n",
						ui.Bad.Render("not finished yet:"), notDone.Progress, notDone.Target)
					return nil
				case err != nil:
					return err
				default:
					fmt.Fprintf(out, "%s +%d XP\n", ui.Gold.Render(ui.IconTrophy+" claimed!"), bonus.Amount)
				}
			}

			quests, err := svc.WeeklyQuests(ctx)
			if err != nil {
				return err
			}
			if len(quests) == 0 {
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Weekly Quests"))
			fmt.Fprintln(out, ui.Dim.Render("week of "+quests[0].WeekStart))
			for _, q := range quests {
				mark := ui.Dim.Render("·")
				switch {
				case q.IsClaimed:
					mark = ui.Gold.Render(ui.IconTrophy)
				case q.IsComplete:
					mark = ui.Good.Render(ui.IconDone)
				}
				fmt.Fprintf(out, "  %s %-28s %s  %s\n",
					mark, q.Title,
					ui.ProgressBar(float64(q.Progress)/float64(q.Target), 12),
					ui.Dim.Render(fmt.Sprintf("%d/%d  +%d XP  (%s)", q.Progress, q.Target, q.RewardXP, q.ID)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&claim, "claim", "", "claim a finished quest by id (e.g. deep_work)")
	return cmd
}
