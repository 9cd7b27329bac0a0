package contracts

import (
	"context"
	"time"
)

// Price represents one daily OHLCV bar for a symbol.
type Price struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceRepository is the persistence boundary for daily bars.
type PriceRepository interface {
	GetBySymbolAndDateRange(ctx context.Context, symbol string, from, to time.Time) ([]*Price, error)
	SaveBatch(ctx context.Context, prices []*Price) error
}
