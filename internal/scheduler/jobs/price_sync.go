package jobs

import (
	"context"
	"fmt"

	"github.com/chenglinzhou/ashare-rotation/internal/contracts"
	"github.com/chenglinzhou/ashare-rotation/internal/store"
	"github.com/chenglinzhou/ashare-rotation/pkg/logger"
)

// PriceSyncJob copies bars from the CSV drop directory into PostgreSQL
// so the API can serve them.
type PriceSyncJob struct {
	symbols []string
	loader  *store.CSVLoader
	repo    contracts.PriceRepository
	logger  *logger.Logger
}

// NewPriceSyncJob creates the job.
func NewPriceSyncJob(symbols []string, loader *store.CSVLoader, repo contracts.PriceRepository, log *logger.Logger) *PriceSyncJob {
	return &PriceSyncJob{
		symbols: symbols,
		loader:  loader,
		repo:    repo,
		logger:  log,
	}
}

// Name returns the job name.
func (j *PriceSyncJob) Name() string {
	return "price_sync"
}

// Schedule runs nightly after the signal evaluation.
func (j *PriceSyncJob) Schedule() string {
	return "0 30 16 * * 1-5"
}

// Run upserts every symbol's bars.
func (j *PriceSyncJob) Run(ctx context.Context) error {
	total := 0
	for _, symbol := range j.symbols {
		prices, err := j.loader.LoadSymbol(symbol)
		if err != nil {
			return fmt.Errorf("load %s: %w", symbol, err)
		}
		if err := j.repo.SaveBatch(ctx, prices); err != nil {
			return fmt.Errorf("save %s: %w", symbol, err)
		}
		total += len(prices)
	}

	j.logger.WithFields(map[string]interface{}{
		"symbols": len(j.symbols),
		"bars":    total,
	}).Info("Price sync completed")

	return nil
}
