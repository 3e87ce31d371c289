package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spikan/soda-clicker/internal/feedback"
	"github.com/spikan/soda-clicker/internal/loop"
)

var (
	flagIdleFor    time.Duration
	flagIdleReport time.Duration
)

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Run the game headless",
	Long: `Run the drink loop without a UI. Drinks, autosaves and level-ups happen
as they would while playing. Stops after --for, or on Ctrl+C, and saves.

Examples:
  soda idle --for 1h
  soda idle --report 10s --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runIdle,
}

func init() {
	idleCmd.Flags().DurationVar(&flagIdleFor, "for", 0, "How long to run (0 = until interrupted)")
	idleCmd.Flags().DurationVar(&flagIdleReport, "report", time.Minute, "How often to log progress")
}

func runIdle(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	rt, err := openRuntime(logger, feedback.Hooks{})
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := loop.NewManualHost()
	l := loop.New(host, rt.clock, loop.WithLogger(logger.WithPrefix("loop")))
	rt.game.Attach(l)
	l.Start()

	fps := max(flagFPS, 1)
	frames := time.NewTicker(time.Second / time.Duration(fps))
	defer frames.Stop()

	report := time.NewTicker(max(flagIdleReport, time.Second))
	defer report.Stop()

	var deadline <-chan time.Time
	if flagIdleFor > 0 {
		timer := time.NewTimer(flagIdleFor)
		defer timer.Stop()
		deadline = timer.C
	}

	logger.Info("idling", "for", flagIdleFor, "fps", fps)

run:
	for {
		select {
		case <-ctx.Done():
			break run
		case <-deadline:
			break run
		case <-frames.C:
			host.Fire(rt.clock.Now())
		case <-report.C:
			s := rt.game.State()
			logger.Info("progress",
				"sips", s.Sips.Short(),
				"per_drink", s.Production.SPD.Short(),
				"level", s.Level,
			)
		}
	}

	l.Stop()
	if err := rt.game.Save(); err != nil {
		return err
	}
	s := rt.game.State()
	logger.Info("stopped", "sips", s.Sips.Short(), "level", s.Level, "frames", l.Frames())
	return nil
}
