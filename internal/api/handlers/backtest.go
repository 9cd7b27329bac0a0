package handlers

import (
	"net/http"

	"github.com/chenglinzhou/ashare-rotation/pkg/logger"
)

// BacktestHandler serves results of the most recent run.
type BacktestHandler struct {
	store  *ResultStore
	logger *logger.Logger
}

// NewBacktestHandler creates a new backtest handler.
func NewBacktestHandler(store *ResultStore, log *logger.Logger) *BacktestHandler {
	return &BacktestHandler{
		store:  store,
		logger: log,
	}
}

// GetSummary returns run-level metrics.
// GET /api/backtest/summary
func (h *BacktestHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	result := h.store.Result()
	if result == nil {
		respondError(w, http.StatusNotFound, "No completed run")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"task_name":        result.TaskName,
		"start_date":       result.StartDate,
		"end_date":         result.EndDate,
		"trading_days":     result.TradingDays,
		"rebalance_count":  result.RebalanceCount,
		"initial_cash":     result.InitialCash,
		"final_equity":     result.FinalEquity,
		"metrics":          result.Metrics,
		"total_commission": result.TotalCommission,
		"filled_orders":    result.FilledOrders,
		"rejected_orders":  result.RejectedOrders,
	})
}

// GetEquity returns the daily equity curve.
// GET /api/backtest/equity
func (h *BacktestHandler) GetEquity(w http.ResponseWriter, r *http.Request) {
	result := h.store.Result()
	if result == nil {
		respondError(w, http.StatusNotFound, "No completed run")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"task_name": result.TaskName,
		"count":     len(result.EquityCurve),
		"points":    result.EquityCurve,
	})
}

// GetPositions returns end-of-run holdings.
// GET /api/backtest/positions
func (h *BacktestHandler) GetPositions(w http.ResponseWriter, r *http.Request) {
	result := h.store.Result()
	if result == nil {
		respondError(w, http.StatusNotFound, "No completed run")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"task_name": result.TaskName,
		"positions": result.FinalPositions,
	})
}
