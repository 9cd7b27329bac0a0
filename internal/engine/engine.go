// Package engine runs the sequential backtest loop: cadence-gated
// decision pipeline, rebalancing, equity tracking, and final metrics.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/commission"
	"github.com/chenglinzhou/ashare-rotation/internal/contracts"
	"github.com/chenglinzhou/ashare-rotation/internal/indicator"
	"github.com/chenglinzhou/ashare-rotation/internal/market"
	"github.com/chenglinzhou/ashare-rotation/internal/panel"
	"github.com/chenglinzhou/ashare-rotation/internal/rebalance"
	"github.com/chenglinzhou/ashare-rotation/internal/signal"
	"github.com/chenglinzhou/ashare-rotation/internal/strategyconfig"
	"github.com/chenglinzhou/ashare-rotation/internal/weights"
	"github.com/chenglinzhou/ashare-rotation/pkg/logger"
)

// EquityPoint is one point on the equity curve.
type EquityPoint struct {
	Date   time.Time `json:"date"`
	Equity float64   `json:"equity"`
	Return float64   `json:"return"`
}

// Result holds everything a run produced.
type Result struct {
	TaskName  string        `json:"task_name"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Duration  time.Duration `json:"duration"`

	TradingDays    int `json:"trading_days"`
	RebalanceCount int `json:"rebalance_count"`

	InitialCash float64 `json:"initial_cash"`
	FinalEquity float64 `json:"final_equity"`

	Metrics Metrics `json:"metrics"`

	TotalCommission contracts.CommissionBreakdown `json:"total_commission"`
	FilledOrders    int                           `json:"filled_orders"`
	RejectedOrders  int                           `json:"rejected_orders"`

	EquityCurve []EquityPoint       `json:"equity_curve"`
	Steps       []*rebalance.Result `json:"-"`

	// End-of-run diagnostics
	FinalPositions map[string]rebalance.Position `json:"final_positions"`
	Settlement     map[string]time.Time          `json:"settlement"`
}

// Engine wires the decision pipeline to the rebalancer for one task.
// Every stateful component is constructed per run; nothing is shared
// across concurrent engines.
type Engine struct {
	task   *strategyconfig.Task
	solver weights.ERCSolver // required only for risk_parity tasks
	log    *logger.Logger
}

// New creates an engine for a validated task. solver may be nil unless
// the task uses the risk-parity weight scheme.
func New(task *strategyconfig.Task, solver weights.ERCSolver, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{task: task, solver: solver, log: log}
}

// Run executes the full simulation over the panel's dates. The loop is
// strictly sequential: order of processing decides which orders see how
// much freed-up capital, so this is a correctness property, not a
// performance choice.
func (e *Engine) Run(ctx context.Context, p *panel.Panel) (*Result, error) {
	startTime := time.Now()
	task := e.task

	scheme, err := commission.ByName(task.CommissionScheme, task.FlatRate)
	if err != nil {
		return nil, fmt.Errorf("commission scheme: %w", err)
	}

	allocator, err := e.buildAllocator()
	if err != nil {
		return nil, fmt.Errorf("weight scheme: %w", err)
	}

	if err := indicator.Enrich(p, task.Indicators); err != nil {
		return nil, fmt.Errorf("indicator enrichment: %w", err)
	}

	combiner := &signal.Combiner{
		BuyRules:    task.BuyRules,
		SellRules:   task.SellRules,
		BuyAtLeast:  task.BuyAtLeast,
		SellAtLeast: task.SellAtLeast,
	}
	decisions := combiner.Decisions(p)

	var selector *signal.RankSelector
	if task.OrderBy != "" {
		selector = &signal.RankSelector{
			Field:      task.OrderBy,
			TopK:       task.TopK,
			DropN:      task.DropN,
			Descending: task.Descending,
		}
	}

	cadence, err := CadenceByName(task.Cadence, task.CadenceDays)
	if err != nil {
		return nil, err
	}

	limits := market.NewPriceLimitChecker(task.STSymbols)
	rb := rebalance.New(rebalance.Config{
		LotSize:           task.LotSize,
		EnableT1:          task.EnableT1,
		EnablePriceLimit:  task.EnablePriceLimit,
		EnableLotRounding: task.EnableLotRounding,
		Commission:        scheme,
	}, limits, e.log)
	rb.Initialize(task.InitialCash)

	from, to, err := e.dateRange()
	if err != nil {
		return nil, err
	}

	result := &Result{
		TaskName:    task.Name,
		InitialCash: task.InitialCash,
	}

	e.log.WithFields(map[string]interface{}{
		"task":    task.Name,
		"symbols": len(task.Symbols),
		"scheme":  scheme.Name,
		"cadence": task.Cadence,
	}).Info("Starting backtest")

	for _, date := range p.Dates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !from.IsZero() && date.Before(from) {
			continue
		}
		if !to.IsZero() && date.After(to) {
			break
		}

		if result.TradingDays == 0 {
			result.StartDate = date
		}
		result.EndDate = date
		result.TradingDays++

		if cadence.ShouldRun(date) {
			selected := heldSymbols(decisions[date], p.Symbols())
			if selector != nil {
				selected = selector.Select(p, date, selected)
			}

			targets, err := allocator.Allocate(p, date, selected)
			if err != nil {
				return nil, fmt.Errorf("allocate %s: %w", date.Format("2006-01-02"), err)
			}

			step := rb.Rebalance(p, date, targets)
			if len(step.Orders) > 0 {
				result.Steps = append(result.Steps, step)
				result.RebalanceCount++
			}
			for _, fill := range step.Fills {
				result.TotalCommission.Add(fill.Commission)
				result.FilledOrders++
			}
			for _, or := range step.Orders {
				if or.Rejected() {
					result.RejectedOrders++
				}
			}
		}

		equity := rb.TotalValue(p, date)
		result.EquityCurve = append(result.EquityCurve, EquityPoint{
			Date:   date,
			Equity: equity,
			Return: equity/task.InitialCash - 1,
		})
	}

	result.Duration = time.Since(startTime)
	result.FinalEquity = task.InitialCash
	if n := len(result.EquityCurve); n > 0 {
		result.FinalEquity = result.EquityCurve[n-1].Equity
	}
	result.FinalPositions = rb.Positions()
	result.Settlement = rb.SettlementSnapshot()
	result.Metrics = computeMetrics(result.EquityCurve, task.InitialCash)

	e.log.WithFields(map[string]interface{}{
		"trading_days": result.TradingDays,
		"rebalances":   result.RebalanceCount,
		"filled":       result.FilledOrders,
		"rejected":     result.RejectedOrders,
		"total_return": fmt.Sprintf("%.2f%%", result.Metrics.TotalReturn*100),
		"max_drawdown": fmt.Sprintf("%.2f%%", result.Metrics.MaxDrawdown*100),
	}).Info("Backtest completed")

	return result, nil
}

func (e *Engine) buildAllocator() (weights.Allocator, error) {
	switch e.task.WeightScheme {
	case strategyconfig.WeightEqual:
		return weights.Equal{}, nil
	case strategyconfig.WeightSpecified:
		return weights.NewSpecified(e.task.WeightFixed)
	case strategyconfig.WeightRiskParity:
		if e.solver == nil {
			return nil, fmt.Errorf("risk_parity weight scheme requires an ERC solver")
		}
		return weights.NewRiskParity(e.solver, e.task.ERCLookback, e.log), nil
	default:
		return nil, fmt.Errorf("unknown weight scheme: %q", e.task.WeightScheme)
	}
}

func (e *Engine) dateRange() (from, to time.Time, err error) {
	if e.task.StartDate != "" {
		from, err = time.Parse("2006-01-02", e.task.StartDate)
		if err != nil {
			return
		}
		from = panel.Normalize(from)
	}
	if e.task.EndDate != "" {
		to, err = time.Parse("2006-01-02", e.task.EndDate)
		if err != nil {
			return
		}
		to = panel.Normalize(to)
	}
	return
}

// heldSymbols filters the date's decision row down to held assets,
// preserving panel symbol order.
func heldSymbols(row map[string]signal.Decision, symbols []string) []string {
	if row == nil {
		return nil
	}
	var out []string
	for _, s := range symbols {
		if row[s] == signal.DecisionHold {
			out = append(out, s)
		}
	}
	return out
}
