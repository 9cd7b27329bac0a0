package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chenglinzhou/ashare-rotation/internal/strategyconfig"
)

// validateCmd checks a task file without running anything.
var validateCmd = &cobra.Command{
	Use:   "validate [task.yaml]",
	Short: "Validate a task file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := strategyconfig.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("✅ %s is valid\n", args[0])
		fmt.Printf("Task: %s  Symbols: %d  Weights: %s  Commission: %s  Cadence: %s\n",
			task.Name, len(task.Symbols), task.WeightScheme, task.CommissionScheme, task.Cadence)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
