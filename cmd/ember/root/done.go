package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/engine"
	"ember/internal/timeutil"
	"ember/internal/ui"
)

type targetKind int

const (
	targetPriority targetKind = iota
	targetTask
	targetMilestone
)

// resolveTarget matches an ID or unique ID prefix against today's slate,
// tasks, and milestones.
func resolveTarget(ctx context.Context, svc *engine.Service, ref string) (targetKind, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, "", errors.New("id is required")
	}

	day := string(timeutil.Day(svc.Now()))
	slate, err := svc.PriorityRepo().ListSlate(ctx, day, svc.Config().Slate.Size)
	if err != nil {
		return 0, "", err
	}
	for _, p := range slate {
		if strings.HasPrefix(p.ID, ref) {
			return targetPriority, p.ID, nil
		}
	}

	tasks, err := svc.TaskRepo().ListAll(ctx)
	if err != nil {
		return 0, "", err
	}
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			return targetTask, t.ID, nil
		}
	}

	milestones, err := svc.GoalRepo().ListAllMilestones(ctx)
	if err != nil {
		return 0, "", err
	}
	for _, m := range milestones {
		if strings.HasPrefix(m.ID, ref) {
			return targetMilestone, m.ID, nil
		}
	}

	return 0, "", fmt.Errorf("no priority, task or milestone matches %q", ref)
}

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a priority, task or milestone",
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
				if _, err := svc.CompletePriority(ctx, id); err != nil {
					return err
				}
			case targetTask:
				if err := svc.CompleteTask(ctx, id); err != nil {
					return err
				}
			case targetMilestone:
				if err := svc.CompleteMilestone(ctx, id); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" done"))
			return nil
		},
	}

	return cmd
}

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Revert a completion (the day recomputes cleanly)",
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
				if _, err := svc.UncompletePriority(ctx, id); err != nil {
					return err
				}
			case targetTask:
				if err := svc.UncompleteTask(ctx, id); err != nil {
					return err
				}
			case targetMilestone:
				if err := svc.UncompleteMilestone(ctx, id); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("↩ reverted"))
			return nil
		},
	}

	return cmd
}
