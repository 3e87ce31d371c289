package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spikan/soda-clicker/internal/feedback"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print a portable save code",
	Long: `Print the current save as a compact text code that can be restored with
'soda import', on this machine or another.

Examples:
  soda export
  soda export > backup.txt`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <code|->",
	Short: "Replace the save with a code",
	Long: `Replace the current save with one produced by 'soda export'.
Pass - to read the code from standard input.

Examples:
  soda import - < backup.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runExport(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	rt, err := openRuntime(logger, feedback.Hooks{})
	if err != nil {
		return err
	}
	defer rt.Close()

	code, err := rt.game.Export()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), code)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	code := args[0]
	if code == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading code: %w", err)
		}
		code = string(data)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("empty save code")
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	rt, err := openRuntime(logger, feedback.Hooks{})
	if err != nil {
		return err
	}
	defer rt.Close()

	rep, err := rt.game.Import(code)
	if err != nil {
		return err
	}
	if !rep.Clean() {
		logger.Warn("imported with defaults", "missing", rep.Missing, "reset", rep.Reset)
	}

	s := rt.game.State()
	fmt.Fprintf(cmd.OutOrStdout(), "Imported: %s sips, level %d\n", s.Sips.Short(), s.Level)
	return nil
}
