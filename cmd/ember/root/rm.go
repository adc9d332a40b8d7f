package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a priority or task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			kind, id, err := resolveTarget(ctx, svc, args[0])
			if err != nil {
				return err
			}
			switch kind {
			case targetPriority:
				err = svc.DeletePriority(ctx, id)
			case targetTask:
				err = svc.DeleteTask(ctx, id)
			case targetMilestone:
				return fmt.Errorf("milestones cannot be deleted; uncomplete them with `ember undo %s`", shortID(id))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("deleted"))
			return nil
		},
	}

	return cmd
}
