package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chenglinzhou/ashare-rotation/internal/api/handlers"
	"github.com/chenglinzhou/ashare-rotation/internal/scheduler/jobs"
	"github.com/chenglinzhou/ashare-rotation/internal/signal"
	"github.com/chenglinzhou/ashare-rotation/internal/store"
	"github.com/chenglinzhou/ashare-rotation/internal/strategyconfig"
	"github.com/chenglinzhou/ashare-rotation/pkg/config"
)

// signalsCmd evaluates a task's rules once and prints the latest state.
var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Evaluate today's signals for a task",
	Long: `Loads the freshest bars, evaluates the task's buy and sell
rules, and prints the per-symbol decisions and the ranked selection.

Example:
  go run ./cmd/rotation signals --task tasks/momentum.yaml`,
	RunE: runSignals,
}

var signalsTask string

func init() {
	rootCmd.AddCommand(signalsCmd)

	signalsCmd.Flags().StringVar(&signalsTask, "task", "", "task YAML file (required)")
	signalsCmd.MarkFlagRequired("task")
}

func runSignals(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	task, err := strategyconfig.Load(signalsTask)
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}

	resultStore := handlers.NewResultStore()
	loader := store.NewCSVLoader(resolveDataDir(cfg))
	job := jobs.NewDailySignalsJob(task, loader, resultStore, log)

	if err := job.Run(cmd.Context()); err != nil {
		return err
	}

	snap := resultStore.Signals()
	fmt.Printf("Signals for %s as of %s\n\n", task.Name, snap.Date.Format("2006-01-02"))

	for _, symbol := range task.Symbols {
		state := "FLAT"
		if snap.Decisions[symbol] == signal.DecisionHold {
			state = "HOLD"
		}
		fmt.Printf("  %-10s %s\n", symbol, state)
	}

	fmt.Printf("\nSelected (%d):", len(snap.Selected))
	for _, symbol := range snap.Selected {
		fmt.Printf(" %s", symbol)
	}
	fmt.Println()
	return nil
}
