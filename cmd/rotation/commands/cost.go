package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chenglinzhou/ashare-rotation/internal/commission"
)

// costCmd prices a single hypothetical trade under a commission scheme.
var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Commission calculator for one trade",
	Long: `Computes the commission breakdown for a trade value under a
named scheme (v1, v2, zero, flat).

Example:
  go run ./cmd/rotation cost --value 100000 --scheme v1 --side sell
  go run ./cmd/rotation cost --value 50000 --scheme flat --rate 0.001`,
	RunE: runCost,
}

var (
	costValue  float64
	costScheme string
	costSide   string
	costRate   float64
)

func init() {
	rootCmd.AddCommand(costCmd)

	costCmd.Flags().Float64Var(&costValue, "value", 0, "trade value (required)")
	costCmd.Flags().StringVar(&costScheme, "scheme", "v1", "commission scheme (v1|v2|zero|flat)")
	costCmd.Flags().StringVar(&costSide, "side", "buy", "trade side (buy|sell)")
	costCmd.Flags().Float64Var(&costRate, "rate", 0, "flat scheme rate")
	costCmd.MarkFlagRequired("value")
}

func runCost(cmd *cobra.Command, args []string) error {
	if costSide != "buy" && costSide != "sell" {
		return fmt.Errorf("invalid side %q (want buy or sell)", costSide)
	}

	scheme, err := commission.ByName(costScheme, costRate)
	if err != nil {
		return err
	}

	breakdown, err := scheme.Cost(costValue, costSide == "sell")
	if err != nil {
		return err
	}

	fmt.Printf("Scheme: %s  Side: %s  Value: %.2f\n\n", costScheme, costSide, costValue)
	fmt.Printf("Brokerage:    %.4f\n", breakdown.Brokerage)
	fmt.Printf("Stamp Tax:    %.4f\n", breakdown.StampTax)
	fmt.Printf("Transfer Fee: %.4f\n", breakdown.TransferFee)
	fmt.Printf("Total:        %.4f\n", breakdown.Total)
	return nil
}
