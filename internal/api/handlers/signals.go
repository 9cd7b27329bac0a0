package handlers

import (
	"net/http"

	"github.com/chenglinzhou/ashare-rotation/pkg/logger"
)

// SignalsHandler serves the latest decision snapshot.
type SignalsHandler struct {
	store  *ResultStore
	logger *logger.Logger
}

// NewSignalsHandler creates a new signals handler.
func NewSignalsHandler(store *ResultStore, log *logger.Logger) *SignalsHandler {
	return &SignalsHandler{
		store:  store,
		logger: log,
	}
}

// GetLatest returns the most recent per-symbol decisions.
// GET /api/signals/latest
func (h *SignalsHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Signals()
	if snap == nil {
		respondError(w, http.StatusNotFound, "No signal snapshot yet")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":      snap.Date,
		"count":     len(snap.Decisions),
		"decisions": snap.Decisions,
		"selected":  snap.Selected,
	})
}
