package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func curveOf(start time.Time, equities ...float64) []EquityPoint {
	out := make([]EquityPoint, len(equities))
	for i, e := range equities {
		out[i] = EquityPoint{Date: start.AddDate(0, 0, i), Equity: e}
	}
	return out
}

func TestComputeMetricsEmpty(t *testing.T) {
	assert.Zero(t, computeMetrics(nil, 100))
	assert.Zero(t, computeMetrics(curveOf(time.Now(), 100), 0))
}

func TestComputeMetricsTotalReturn(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	m := computeMetrics(curveOf(start, 100, 110, 121), 100)

	assert.InDelta(t, 0.21, m.TotalReturn, 1e-9)
	assert.Greater(t, m.Volatility, 0.0)
	assert.Greater(t, m.SharpeRatio, 0.0)
}

func TestComputeMetricsMaxDrawdown(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	// Peak 120, trough 90: drawdown 25%.
	m := computeMetrics(curveOf(start, 100, 120, 90, 110), 100)
	assert.InDelta(t, 0.25, m.MaxDrawdown, 1e-9)

	// Monotonic rise has zero drawdown.
	m = computeMetrics(curveOf(start, 100, 110, 120), 100)
	assert.Zero(t, m.MaxDrawdown)
}

func TestComputeMetricsFlatCurve(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	m := computeMetrics(curveOf(start, 100, 100, 100), 100)

	assert.Zero(t, m.TotalReturn)
	assert.Zero(t, m.Volatility)
	assert.Zero(t, m.SharpeRatio, "no volatility means no ratio, not NaN")
	assert.Zero(t, m.SortinoRatio)
}

func TestComputeMetricsSortinoIgnoresUpside(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	// Only positive daily moves: downside deviation is zero.
	m := computeMetrics(curveOf(start, 100, 105, 111), 100)
	assert.Zero(t, m.SortinoRatio)

	// A losing day produces a finite Sortino.
	m = computeMetrics(curveOf(start, 100, 105, 103, 111), 100)
	assert.NotZero(t, m.SortinoRatio)
}
