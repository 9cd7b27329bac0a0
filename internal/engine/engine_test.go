package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenglinzhou/ashare-rotation/internal/indicator"
	"github.com/chenglinzhou/ashare-rotation/internal/panel"
	"github.com/chenglinzhou/ashare-rotation/internal/signal"
	"github.com/chenglinzhou/ashare-rotation/internal/strategyconfig"
)

// trendPanel seeds a rising and a falling symbol over n days.
func trendPanel(n int) *panel.Panel {
	p := panel.New()
	for i := 0; i < n; i++ {
		date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		p.Set(panel.FieldClose, date, "600000.SH", 10.0*(1+0.005*float64(i)))
		p.Set(panel.FieldClose, date, "000001.SZ", 10.0*(1-0.005*float64(i)))
	}
	return p
}

func smokeTask() *strategyconfig.Task {
	task := &strategyconfig.Task{
		Name:              "smoke",
		Symbols:           []string{"600000.SH", "000001.SZ"},
		InitialCash:       1_000_000,
		EnableT1:          true,
		EnablePriceLimit:  true,
		EnableLotRounding: true,
		Indicators: []indicator.Spec{
			{Name: "roc_5", Kind: indicator.KindROC, Window: 5},
		},
		BuyRules:         []signal.Rule{{Field: "roc_5", Op: signal.OpGT, Value: 0.0}},
		SellRules:        []signal.Rule{{Field: "roc_5", Op: signal.OpLT, Value: -0.01}},
		WeightScheme:     strategyconfig.WeightEqual,
		CommissionScheme: "zero",
		Cadence:          strategyconfig.CadenceDaily,
	}
	task.Defaults()
	return task
}

func TestEngineRunSmoke(t *testing.T) {
	task := smokeTask()
	eng := New(task, nil, nil)

	result, err := eng.Run(context.Background(), trendPanel(30))
	require.NoError(t, err)

	assert.Equal(t, "smoke", result.TaskName)
	assert.Equal(t, 30, result.TradingDays)
	assert.Len(t, result.EquityCurve, 30)
	assert.Greater(t, result.FilledOrders, 0)

	// Only the rising symbol passes the buy rule; the run ends holding it.
	assert.Contains(t, result.FinalPositions, "600000.SH")
	assert.NotContains(t, result.FinalPositions, "000001.SZ")
	assert.Greater(t, result.FinalEquity, task.InitialCash)

	// The held position carries its last-buy date out in the settlement
	// snapshot; the never-held symbol has no entry.
	require.Contains(t, result.Settlement, "600000.SH")
	lastBuy := result.Settlement["600000.SH"]
	assert.False(t, lastBuy.Before(result.StartDate))
	assert.False(t, lastBuy.After(result.EndDate))
	assert.NotContains(t, result.Settlement, "000001.SZ")
}

func TestEngineRunDateRange(t *testing.T) {
	task := smokeTask()
	task.StartDate = "2023-01-10"
	task.EndDate = "2023-01-20"
	eng := New(task, nil, nil)

	result, err := eng.Run(context.Background(), trendPanel(30))
	require.NoError(t, err)

	assert.Equal(t, 11, result.TradingDays)
	assert.Equal(t, "2023-01-10", result.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2023-01-20", result.EndDate.Format("2006-01-02"))
}

func TestEngineRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(smokeTask(), nil, nil)
	_, err := eng.Run(ctx, trendPanel(30))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineRunRiskParityNeedsSolver(t *testing.T) {
	task := smokeTask()
	task.WeightScheme = strategyconfig.WeightRiskParity

	eng := New(task, nil, nil)
	_, err := eng.Run(context.Background(), trendPanel(30))
	assert.Error(t, err)
}

func TestEngineRunRankSelection(t *testing.T) {
	task := smokeTask()
	task.BuyRules = nil // select-all baseline
	task.SellRules = nil
	task.OrderBy = "roc_5"
	task.TopK = 1
	task.Descending = true

	eng := New(task, nil, nil)
	result, err := eng.Run(context.Background(), trendPanel(30))
	require.NoError(t, err)

	// Top-1 by momentum is always the rising symbol.
	assert.Contains(t, result.FinalPositions, "600000.SH")
	assert.NotContains(t, result.FinalPositions, "000001.SZ")
}
