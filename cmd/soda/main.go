// soda is a terminal incremental game about drinking soda.
//
// Usage:
//
//	soda play             - Play in the terminal
//	soda idle             - Let the game run headless for a while
//	soda stats            - Show progress and save history
//	soda export           - Print a portable save code
//	soda import <code>    - Replace the save with a code
//	soda reset --yes      - Delete the save and start over
//	soda config           - Print the effective balance as YAML
//
// Global flags:
//
//	--fps <rate>          - Frames per second (default: 30)
//	--seed <value>        - RNG seed for critical clicks
//	--db <path>           - Database path (default: ~/.soda/soda.db)
//	--config <path>       - Custom balance YAML
//	--pace <preset>       - Economy pace: relaxed, normal, hard
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPace     string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "soda",
	Short: "Soda Clicker - an incremental game for your terminal",
	Long: `Soda Clicker is an incremental game: sip for sips, buy straws and cups,
and let every drink pour sips in while you are busy.

Available commands:
  play     - Play in the terminal
  idle     - Run the game headless for a while
  stats    - Show progress and save history
  export   - Print a portable save code
  import   - Replace the save with a code
  reset    - Delete the save and start over
  config   - Print the effective balance

Examples:
  soda play
  soda play --pace relaxed
  soda idle --for 30m
  soda export > backup.txt
  soda import - < backup.txt`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frames per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.soda/soda.db", "Path to save database (:memory: for a throwaway game)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom balance YAML")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Economy pace: relaxed, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(idleCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
}
