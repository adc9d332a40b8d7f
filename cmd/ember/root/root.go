package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/ui"
)

const Version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:           "ember",
	Short:         "Ember, a local-first habit & progress tracker",
	Long:          "Ember is a local-first CLI/TUI habit tracker with streaks, freeze tokens, weekly quests and XP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newTodayCmd(),
		newAddCmd(),
		newDoneCmd(),
		newUndoCmd(),
		newRmCmd(),
		newHabitCmd(),
		newGoalCmd(),
		newFocusCmd(),
		newStreakCmd(),
		newQuestsCmd(),
		newStatusCmd(),
		newLogCmd(),
		newNoteCmd(),
		newRemindCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
