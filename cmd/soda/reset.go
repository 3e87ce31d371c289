package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spikan/soda-clicker/internal/feedback"
)

var (
	flagResetYes     bool
	flagResetHistory bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the save and start over",
	Long: `Delete the current save. Options are kept.

Examples:
  soda reset --yes
  soda reset --yes --history`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Confirm deleting the save")
	resetCmd.Flags().BoolVar(&flagResetHistory, "history", false, "Also delete the save history")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !flagResetYes {
		return errors.New("refusing to delete the save without --yes")
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	rt, err := openRuntime(logger, feedback.Hooks{
		Deleted: func() { fmt.Fprintln(out, "Save deleted. A new game starts on the next 'soda play'.") },
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	oldID := rt.game.State().SaveID
	if err := rt.game.Reset(); err != nil {
		return err
	}
	if flagResetHistory && oldID != "" {
		if err := rt.db.ClearHistory(oldID); err != nil {
			return err
		}
	}
	return nil
}
