// Package commands wires the rotation CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rotation",
	Short: "A-share rotating portfolio engine",
	Long: `Rotation runs rule-driven rebalancing strategies over A-share
daily bars, with T+1 settlement, price limit bands, board lot rounding,
and tiered commission models.

Usage:
  go run ./cmd/rotation [command]

Examples:
  go run ./cmd/rotation backtest run --task tasks/momentum.yaml
  go run ./cmd/rotation cost --value 100000 --scheme v1 --side sell
  go run ./cmd/rotation signals --task tasks/momentum.yaml
  go run ./cmd/rotation api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "directory of per-symbol CSV bars (default from DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
