package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spikan/soda-clicker/internal/clock"
	"github.com/spikan/soda-clicker/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game.

Controls:
  Space/Enter  - Sip
  1-7          - Buy an upgrade
  A            - Autosave on/off
  +/-          - Autosave interval
  S / M        - Click sounds / music on/off
  Ctrl+S       - Save now
  Tab          - Save history
  Q/Ctrl+C     - Save and quit

Logs are written to ~/.soda/soda.log.

Examples:
  soda play
  soda play --pace hard
  soda play --db :memory:`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	// Get terminal size early for the first layout
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	flash := tui.NewFlash(clock.Real{})
	rt, err := openRuntime(logger, flash.Hooks())
	if err != nil {
		return err
	}
	defer rt.Close()

	runErr := tui.Run(rt.game, tui.Config{
		FPS:     flagFPS,
		Width:   width,
		Height:  height,
		Flash:   flash,
		History: rt.db,
		Clock:   rt.clock,
		Logger:  logger.WithPrefix("tui"),
	})
	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
