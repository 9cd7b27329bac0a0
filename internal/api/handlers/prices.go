package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/chenglinzhou/ashare-rotation/internal/contracts"
	"github.com/chenglinzhou/ashare-rotation/pkg/logger"
)

const queryDateLayout = "2006-01-02"

// PricesHandler serves stored daily bars.
type PricesHandler struct {
	repo   contracts.PriceRepository
	logger *logger.Logger
}

// NewPricesHandler creates a new prices handler.
func NewPricesHandler(repo contracts.PriceRepository, log *logger.Logger) *PricesHandler {
	return &PricesHandler{
		repo:   repo,
		logger: log,
	}
}

// GetBySymbol returns bars for one symbol within an optional range.
// GET /api/prices/{symbol}?from=2023-01-01&to=2023-12-31
func (h *PricesHandler) GetBySymbol(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]

	from, err := parseDateParam(r, "from", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid from date (want YYYY-MM-DD)")
		return
	}
	to, err := parseDateParam(r, "to", time.Now().UTC())
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid to date (want YYYY-MM-DD)")
		return
	}

	prices, err := h.repo.GetBySymbolAndDateRange(ctx, symbol, from, to)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to query prices")
		respondError(w, http.StatusInternalServerError, "Failed to query prices")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"count":  len(prices),
		"prices": prices,
	})
}

func parseDateParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(queryDateLayout, raw)
}
