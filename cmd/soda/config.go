package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spikan/soda-clicker/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective balance as YAML",
	Long: `Print the balance the game would use, after resolving --config and --pace.
Save the output to ~/.soda/configs/balance.yaml to customize it.

Examples:
  soda config
  soda config --pace relaxed > ~/.soda/configs/balance.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	bal, err := loadBalance()
	if err != nil {
		return err
	}
	data, err := config.MarshalBalance(bal)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
