// Package store loads daily bars into signal panels, either from
// PostgreSQL or from per-symbol CSV files.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chenglinzhou/ashare-rotation/internal/contracts"
	"github.com/chenglinzhou/ashare-rotation/internal/panel"
)

// PriceRepository reads and writes daily bars in PostgreSQL.
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a price repository on the given pool.
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// GetBySymbolAndDateRange retrieves bars for a symbol within [from, to].
func (r *PriceRepository) GetBySymbolAndDateRange(ctx context.Context, symbol string, from, to time.Time) ([]*contracts.Price, error) {
	query := `
		SELECT symbol, trade_date, open_price, high_price, low_price, close_price, volume
		FROM daily_prices
		WHERE symbol = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []*contracts.Price
	for rows.Next() {
		var p contracts.Price
		if err := rows.Scan(&p.Symbol, &p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume); err != nil {
			return nil, err
		}
		prices = append(prices, &p)
	}
	return prices, rows.Err()
}

// SaveBatch upserts bars one statement at a time; batch sizes here are
// small enough that COPY is not worth the ceremony.
func (r *PriceRepository) SaveBatch(ctx context.Context, prices []*contracts.Price) error {
	if len(prices) == 0 {
		return nil
	}

	query := `
		INSERT INTO daily_prices (symbol, trade_date, open_price, high_price, low_price, close_price, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			open_price = EXCLUDED.open_price,
			high_price = EXCLUDED.high_price,
			low_price = EXCLUDED.low_price,
			close_price = EXCLUDED.close_price,
			volume = EXCLUDED.volume
	`

	for _, p := range prices {
		if _, err := r.pool.Exec(ctx, query,
			p.Symbol, p.Date, p.Open, p.High, p.Low, p.Close, p.Volume,
		); err != nil {
			return err
		}
	}
	return nil
}

// LoadPanel builds a panel with open/high/low/close/volume fields for the
// given symbols and date range.
func (r *PriceRepository) LoadPanel(ctx context.Context, symbols []string, from, to time.Time) (*panel.Panel, error) {
	p := panel.New()
	for _, symbol := range symbols {
		prices, err := r.GetBySymbolAndDateRange(ctx, symbol, from, to)
		if err != nil {
			return nil, err
		}
		for _, bar := range prices {
			addBar(p, bar)
		}
	}
	return p, nil
}

func addBar(p *panel.Panel, bar *contracts.Price) {
	p.Set("open", bar.Date, bar.Symbol, bar.Open)
	p.Set("high", bar.Date, bar.Symbol, bar.High)
	p.Set("low", bar.Date, bar.Symbol, bar.Low)
	p.Set(panel.FieldClose, bar.Date, bar.Symbol, bar.Close)
	p.Set("volume", bar.Date, bar.Symbol, bar.Volume)
}
