// Package commission implements the A-share transaction cost model:
// brokerage with a minimum floor, a one-sided stamp tax on sells, and a
// transfer fee. The transfer fee is charged in both directions regardless
// of listing exchange, a simplification of the Shanghai-only levy.
package commission

import (
	"fmt"
	"math"

	"github.com/chenglinzhou/ashare-rotation/internal/contracts"
)

// Scheme is an immutable per-run commission configuration.
type Scheme struct {
	Name            string
	BrokerageRate   float64
	StampTaxRate    float64 // sells only
	TransferFeeRate float64
	MinBrokerage    float64
}

// Named presets. V1 uses the pre-2023 stamp tax (0.1%), V2 the reduced
// rate after the August 2023 cut (0.05%).
var (
	SchemeV1 = Scheme{
		Name:            "v1",
		BrokerageRate:   0.00025,
		StampTaxRate:    0.001,
		TransferFeeRate: 0.00001,
		MinBrokerage:    5.0,
	}

	SchemeV2 = Scheme{
		Name:            "v2",
		BrokerageRate:   0.0002,
		StampTaxRate:    0.0005,
		TransferFeeRate: 0.00001,
		MinBrokerage:    5.0,
	}

	SchemeZero = Scheme{Name: "zero"}
)

// Flat returns a single-rate scheme with no minimum and no tax split,
// for quick tests.
func Flat(rate float64) Scheme {
	return Scheme{
		Name:          "flat",
		BrokerageRate: rate,
	}
}

// ByName resolves a preset by name. An unknown name is a configuration
// error and aborts the run before simulation starts.
func ByName(name string, flatRate float64) (Scheme, error) {
	switch name {
	case "v1":
		return SchemeV1, nil
	case "v2":
		return SchemeV2, nil
	case "zero":
		return SchemeZero, nil
	case "flat":
		if flatRate <= 0 {
			flatRate = 0.0003
		}
		return Flat(flatRate), nil
	default:
		return Scheme{}, fmt.Errorf("unknown commission scheme: %q", name)
	}
}

// Cost computes the full cost breakdown for a fill of the given gross
// trade value. Negative or non-finite values are the caller's bug.
func (s Scheme) Cost(tradeValue float64, isSell bool) (contracts.CommissionBreakdown, error) {
	if tradeValue < 0 || math.IsNaN(tradeValue) || math.IsInf(tradeValue, 0) {
		return contracts.CommissionBreakdown{},
			fmt.Errorf("%w: trade value %v", contracts.ErrInvalidArgument, tradeValue)
	}

	var b contracts.CommissionBreakdown

	b.Brokerage = tradeValue * s.BrokerageRate
	if b.Brokerage < s.MinBrokerage {
		b.Brokerage = s.MinBrokerage
	}

	if isSell {
		b.StampTax = tradeValue * s.StampTaxRate
	}

	b.TransferFee = tradeValue * s.TransferFeeRate

	b.Total = b.Brokerage + b.StampTax + b.TransferFee
	return b, nil
}
