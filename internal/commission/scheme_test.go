package commission

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenglinzhou/ashare-rotation/internal/contracts"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		want    string
		wantErr bool
	}{
		{"v1", 0, "v1", false},
		{"v2", 0, "v2", false},
		{"zero", 0, "zero", false},
		{"flat", 0.001, "flat", false},
		{"bogus", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ByName(tt.name, tt.rate)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name)
		})
	}
}

func TestByNameFlatDefaultsRate(t *testing.T) {
	s, err := ByName("flat", 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0003, s.BrokerageRate, 1e-12)
}

func TestCostBuy(t *testing.T) {
	b, err := SchemeV1.Cost(100_000, false)
	require.NoError(t, err)

	assert.InDelta(t, 25.0, b.Brokerage, 1e-9)  // 100000 * 0.00025
	assert.InDelta(t, 0.0, b.StampTax, 1e-9)    // buys pay no stamp tax
	assert.InDelta(t, 1.0, b.TransferFee, 1e-9) // 100000 * 0.00001
	assert.InDelta(t, 26.0, b.Total, 1e-9)
}

func TestCostSell(t *testing.T) {
	b, err := SchemeV1.Cost(100_000, true)
	require.NoError(t, err)

	assert.InDelta(t, 25.0, b.Brokerage, 1e-9)
	assert.InDelta(t, 100.0, b.StampTax, 1e-9) // 100000 * 0.001
	assert.InDelta(t, 1.0, b.TransferFee, 1e-9)
	assert.InDelta(t, 126.0, b.Total, 1e-9)
}

func TestCostMinimumBrokerageFloor(t *testing.T) {
	// 1000 * 0.0002 = 0.20, far below the 5.0 minimum.
	b, err := SchemeV2.Cost(1000, false)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, b.Brokerage, 1e-9)
}

func TestCostZeroScheme(t *testing.T) {
	b, err := SchemeZero.Cost(100_000, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, b.Total, 1e-9)
}

func TestCostZeroValue(t *testing.T) {
	// Zero value under a minimum-floor scheme still pays the floor.
	b, err := SchemeV1.Cost(0, false)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, b.Total, 1e-9)
}

func TestCostInvalidValues(t *testing.T) {
	for _, v := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := SchemeV1.Cost(v, false)
		assert.ErrorIs(t, err, contracts.ErrInvalidArgument)
	}
}

func TestBreakdownAdd(t *testing.T) {
	var total contracts.CommissionBreakdown

	b1, _ := SchemeV1.Cost(100_000, false)
	b2, _ := SchemeV1.Cost(100_000, true)
	total.Add(b1)
	total.Add(b2)

	assert.InDelta(t, b1.Total+b2.Total, total.Total, 1e-9)
	assert.InDelta(t, b1.StampTax+b2.StampTax, total.StampTax, 1e-9)
}
