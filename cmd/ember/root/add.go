package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/ui"
)

func newAddCmd() *cobra.Command {
	var rank int
	var asTask bool
	var weight int
	var goalID string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a priority to today's slate (or a task with --task)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if asTask {
				var gid *string
				if goalID != "" {
					gid = &goalID
				}
				task, err := svc.AddTask(ctx, args[0], weight, gid)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s task %s %s\n", ui.IconPlus, task.Title, ui.Muted.Render("("+task.ID[:8]+")"))
				return nil
			}

			p, err := svc.AddPriority(ctx, args[0], rank)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s priority #%d %s %s\n", ui.IconPlus, p.Rank, p.Title, ui.Muted.Render("("+p.ID[:8]+")"))
			return nil
		},
	}

	cmd.Flags().IntVarP(&rank, "rank", "r", 1, "Slate position (1..N)")
	cmd.Flags().BoolVar(&asTask, "task", false, "Add a standalone task instead of a slate priority")
	cmd.Flags().IntVarP(&weight, "weight", "w", 0, "Task weight (adds XP on completion)")
	cmd.Flags().StringVar(&goalID, "goal", "", "Attach the task to a goal ID")

	return cmd
}
