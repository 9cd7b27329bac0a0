// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/chenglinzhou/ashare-rotation/internal/api/handlers"
	"github.com/chenglinzhou/ashare-rotation/internal/indicator"
	"github.com/chenglinzhou/ashare-rotation/internal/panel"
	"github.com/chenglinzhou/ashare-rotation/internal/signal"
	"github.com/chenglinzhou/ashare-rotation/internal/strategyconfig"
	"github.com/chenglinzhou/ashare-rotation/pkg/logger"
)

// PanelLoader yields a price panel for a symbol list.
type PanelLoader interface {
	LoadPanel(symbols []string) (*panel.Panel, error)
}

// DailySignalsJob re-evaluates the strategy rules over the freshest
// panel and publishes the latest per-symbol decisions.
type DailySignalsJob struct {
	task   *strategyconfig.Task
	loader PanelLoader
	store  *handlers.ResultStore
	logger *logger.Logger
}

// NewDailySignalsJob creates the job.
func NewDailySignalsJob(task *strategyconfig.Task, loader PanelLoader, store *handlers.ResultStore, log *logger.Logger) *DailySignalsJob {
	return &DailySignalsJob{
		task:   task,
		loader: loader,
		store:  store,
		logger: log,
	}
}

// Name returns the job name.
func (j *DailySignalsJob) Name() string {
	return "daily_signals"
}

// Schedule runs after the A-share close, 16:00 local time on weekdays.
func (j *DailySignalsJob) Schedule() string {
	return "0 0 16 * * 1-5"
}

// Run evaluates the rules and publishes the latest snapshot.
func (j *DailySignalsJob) Run(ctx context.Context) error {
	p, err := j.loader.LoadPanel(j.task.Symbols)
	if err != nil {
		return fmt.Errorf("load panel: %w", err)
	}

	dates := p.Dates()
	if len(dates) == 0 {
		return fmt.Errorf("panel has no dates")
	}
	latest := dates[len(dates)-1]

	if err := indicator.Enrich(p, j.task.Indicators); err != nil {
		return fmt.Errorf("indicator enrichment: %w", err)
	}

	combiner := &signal.Combiner{
		BuyRules:    j.task.BuyRules,
		SellRules:   j.task.SellRules,
		BuyAtLeast:  j.task.BuyAtLeast,
		SellAtLeast: j.task.SellAtLeast,
	}
	decisions := combiner.Decisions(p)

	row := decisions[latest]
	held := make([]string, 0, len(row))
	for _, symbol := range p.Symbols() {
		if row[symbol] == signal.DecisionHold {
			held = append(held, symbol)
		}
	}

	selected := held
	if j.task.OrderBy != "" {
		selector := &signal.RankSelector{
			Field:      j.task.OrderBy,
			TopK:       j.task.TopK,
			DropN:      j.task.DropN,
			Descending: j.task.Descending,
		}
		selected = selector.Select(p, latest, held)
	}

	j.store.SetSignals(&handlers.SignalSnapshot{
		Date:      latest,
		Decisions: row,
		Selected:  selected,
	})

	j.logger.WithFields(map[string]interface{}{
		"date":     latest.Format("2006-01-02"),
		"held":     len(held),
		"selected": len(selected),
	}).Info("Signal snapshot published")

	return nil
}
