package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chenglinzhou/ashare-rotation/internal/engine"
	"github.com/chenglinzhou/ashare-rotation/internal/store"
	"github.com/chenglinzhou/ashare-rotation/internal/strategyconfig"
	"github.com/chenglinzhou/ashare-rotation/internal/weights"
	"github.com/chenglinzhou/ashare-rotation/pkg/config"
)

// backtestCmd represents the backtest command
var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Historical simulation of a rotation task",
	Long: `Replays a task's rules over stored daily bars and reports
returns, risk metrics, and commission totals.

Example:
  go run ./cmd/rotation backtest run --task tasks/momentum.yaml`,
}

var (
	backtestRunCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a backtest",
		Long: `Runs the task end to end: indicators, signal votes, ranking,
weighting, and daily rebalancing with A-share trading constraints.

Example:
  go run ./cmd/rotation backtest run --task tasks/momentum.yaml
  go run ./cmd/rotation backtest run --task tasks/momentum.yaml --data ./quotes`,
		RunE: runBacktest,
	}

	backtestTask string
)

func init() {
	rootCmd.AddCommand(backtestCmd)
	backtestCmd.AddCommand(backtestRunCmd)

	backtestRunCmd.Flags().StringVar(&backtestTask, "task", "", "task YAML file (required)")
	backtestRunCmd.MarkFlagRequired("task")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	task, err := strategyconfig.Load(backtestTask)
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}

	loader := store.NewCSVLoader(resolveDataDir(cfg))
	p, err := loader.LoadPanel(task.Symbols)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}

	fmt.Printf("=== Backtest: %s ===\n", task.Name)
	fmt.Printf("Symbols: %d  Initial cash: %s\n\n", len(task.Symbols), formatNumber(int64(task.InitialCash)))

	eng := engine.New(task, weights.NewIterativeERC(), log)
	result, err := eng.Run(cmd.Context(), p)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	printBacktestResult(result)
	return nil
}

func printBacktestResult(result *engine.Result) {
	fmt.Println("\n✅ Backtest Completed")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	fmt.Println("📊 Summary")
	fmt.Printf("Period: %s ~ %s (%d trading days)\n",
		result.StartDate.Format("2006-01-02"),
		result.EndDate.Format("2006-01-02"),
		result.TradingDays)
	fmt.Printf("Rebalances: %d times\n", result.RebalanceCount)
	fmt.Printf("Duration: %.2f seconds\n", result.Duration.Seconds())
	fmt.Println()

	fmt.Println("💰 Performance")
	fmt.Printf("Initial Cash:  %.2f\n", result.InitialCash)
	fmt.Printf("Final Equity:  %.2f\n", result.FinalEquity)
	fmt.Printf("Total Return:  %+.2f%%\n", result.Metrics.TotalReturn*100)
	fmt.Printf("Annual Return: %+.2f%%\n", result.Metrics.AnnualizedReturn*100)
	fmt.Printf("CAGR:          %+.2f%%\n", result.Metrics.CAGR*100)
	fmt.Printf("Volatility:    %.2f%%\n", result.Metrics.Volatility*100)
	fmt.Println()

	fmt.Println("📉 Risk Metrics")
	fmt.Printf("Sharpe Ratio:  %.2f\n", result.Metrics.SharpeRatio)
	fmt.Printf("Sortino Ratio: %.2f\n", result.Metrics.SortinoRatio)
	fmt.Printf("Max Drawdown:  %.2f%%\n", result.Metrics.MaxDrawdown*100)
	fmt.Println()

	fmt.Println("💹 Trading")
	fmt.Printf("Filled Orders:    %d\n", result.FilledOrders)
	fmt.Printf("Rejected Orders:  %d\n", result.RejectedOrders)
	fmt.Printf("Commission Total: %.2f (brokerage %.2f, stamp tax %.2f, transfer %.2f)\n",
		result.TotalCommission.Total,
		result.TotalCommission.Brokerage,
		result.TotalCommission.StampTax,
		result.TotalCommission.TransferFee)
	fmt.Println()

	fmt.Println("📈 Equity Curve (Last 10 Days)")
	startIdx := len(result.EquityCurve) - 10
	if startIdx < 0 {
		startIdx = 0
	}
	for _, point := range result.EquityCurve[startIdx:] {
		fmt.Printf("%s: %.2f (%+.2f%%)\n",
			point.Date.Format("2006-01-02"),
			point.Equity,
			point.Return*100)
	}
	fmt.Println()
}
