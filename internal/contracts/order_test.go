package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderSignedQty(t *testing.T) {
	buy := Order{Side: OrderSideBuy, Qty: 100}
	sell := Order{Side: OrderSideSell, Qty: 100}

	assert.Equal(t, int64(100), buy.SignedQty())
	assert.Equal(t, int64(-100), sell.SignedQty())
}

func TestOrderValue(t *testing.T) {
	o := Order{Qty: 200, Price: 10.5}
	assert.InDelta(t, 2100.0, o.Value(), 1e-9)
}

func TestOrderResultRejected(t *testing.T) {
	filled := OrderResult{Status: OrderFilled}
	rejected := OrderResult{Status: OrderRejected, Reason: RejectT1Restricted}

	assert.False(t, filled.Rejected())
	assert.True(t, rejected.Rejected())
}

func TestCommissionBreakdownAdd(t *testing.T) {
	var total CommissionBreakdown
	total.Add(CommissionBreakdown{Brokerage: 5, StampTax: 10, TransferFee: 1, Total: 16})
	total.Add(CommissionBreakdown{Brokerage: 5, Total: 5})

	assert.InDelta(t, 10.0, total.Brokerage, 1e-9)
	assert.InDelta(t, 10.0, total.StampTax, 1e-9)
	assert.InDelta(t, 1.0, total.TransferFee, 1e-9)
	assert.InDelta(t, 21.0, total.Total, 1e-9)
}
