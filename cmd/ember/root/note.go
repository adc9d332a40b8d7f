package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/timeutil"
	"ember/internal/ui"
)

func newNoteCmd() *cobra.Command {
	var day string
	var photo string

	cmd := &cobra.Command{
		Use:   "note <text>",
		Short: "Attach a note (and optional photo reference) to a day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			at := svc.Now()
			if day != "" {
				parsed, err := timeutil.ParseDay(timeutil.DayKey(day), at.Location())
				if err != nil {
					return fmt.Errorf("invalid --day %q (use YYYY-MM-DD): %w", day, err)
				}
				at = parsed
			}
			var photoRef *string
			if photo != "" {
				photoRef = &photo
			}

			log, err := svc.SetDayNote(ctx, at, strings.Join(args, " "), photoRef)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("noted:"), ui.Dim.Render(log.Day))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "day to annotate (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&photo, "photo", "", "photo reference (path or URL)")
	return cmd
}
