package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage long-term goals and their milestones",
	}
	cmd.AddCommand(newGoalAddCmd())
	cmd.AddCommand(newGoalMilestoneCmd())
	cmd.AddCommand(newGoalListCmd())
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := svc.AddGoal(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s goal %s %s\n",
				ui.IconTarget, g.Title, ui.Muted.Render("("+shortID(g.ID)+")"))
			return nil
		},
	}
	return cmd
}

func newGoalMilestoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone <goal-id> <title>",
		Short: "Add a milestone to a goal",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			goals, err := svc.GoalRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			var goalID string
			for _, g := range goals {
				if strings.HasPrefix(g.ID, args[0]) {
					goalID = g.ID
					break
				}
			}
			if goalID == "" {
				return fmt.Errorf("no goal matches %q", args[0])
			}

			m, err := svc.AddMilestone(ctx, goalID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s milestone %s %s\n",
				ui.IconPlus, m.Title, ui.Muted.Render("("+shortID(m.ID)+")"))
			return nil
		},
	}
	return cmd
}

func newGoalListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals with milestone progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			out := cmd.OutOrStdout()

			goals, err := svc.GoalRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Fprintln(out, ui.Dim.Render("no goals yet"))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Goals"))
			for _, g := range goals {
				milestones, err := svc.GoalRepo().ListMilestones(ctx, g.ID)
				if err != nil {
					return err
				}
				done := 0
				for _, m := range milestones {
					if m.CompletedAt != nil {
						done++
					}
				}
				fmt.Fprintf(out, "  %s %s  %s\n", ui.Key.Render(g.Title),
					ui.Dim.Render(fmt.Sprintf("%d/%d milestones", done, len(milestones))),
					ui.Dim.Render("("+shortID(g.ID)+")"))
				for _, m := range milestones {
					mark := "[ ]"
					if m.CompletedAt != nil {
						mark = "[x]"
					}
					fmt.Fprintf(out, "    %s %s %s\n", mark, m.Title, ui.Dim.Render("("+shortID(m.ID)+")"))
				}
			}
			return nil
		},
	}
	return cmd
}
