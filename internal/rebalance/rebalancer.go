// Package rebalance converts target weights into constraint-checked
// orders and applies the resulting fills to the portfolio. This is the
// only place portfolio and settlement state is mutated.
package rebalance

import (
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/commission"
	"github.com/chenglinzhou/ashare-rotation/internal/contracts"
	"github.com/chenglinzhou/ashare-rotation/internal/market"
	"github.com/chenglinzhou/ashare-rotation/internal/panel"
	"github.com/chenglinzhou/ashare-rotation/pkg/logger"
)

// Config controls which market constraints apply to a run.
type Config struct {
	LotSize           int64
	EnableT1          bool
	EnablePriceLimit  bool
	EnableLotRounding bool
	Commission        commission.Scheme
}

// Position is one held asset: signed share count plus the date the
// current lot was acquired.
type Position struct {
	Shares     int64
	AcquiredAt time.Time
}

// Result is the outcome of one rebalancing step.
type Result struct {
	Date   time.Time
	Orders []contracts.OrderResult
	Fills  []contracts.Fill
}

// Rebalancer owns all per-run mutable state: cash, positions, and the
// settlement book. One instance per simulation run; single writer, never
// shared across concurrent runs.
type Rebalancer struct {
	cfg        Config
	lots       market.LotRounder
	limits     *market.PriceLimitChecker
	settlement *market.SettlementBook

	cash      float64
	positions map[string]*Position

	log *logger.Logger
}

// New creates a Rebalancer with fresh state. A nil limits checker gets a
// default one with an empty ST set.
func New(cfg Config, limits *market.PriceLimitChecker, log *logger.Logger) *Rebalancer {
	if limits == nil {
		limits = market.NewPriceLimitChecker(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Rebalancer{
		cfg:        cfg,
		lots:       market.NewLotRounder(cfg.LotSize),
		limits:     limits,
		settlement: market.NewSettlementBook(),
		positions:  make(map[string]*Position),
		log:        log,
	}
}

// Initialize resets the portfolio to the given starting cash.
func (r *Rebalancer) Initialize(cash float64) {
	r.cash = cash
	r.positions = make(map[string]*Position)
	r.settlement.Clear()
}

// Cash returns current uninvested cash.
func (r *Rebalancer) Cash() float64 {
	return r.cash
}

// Positions returns a copy of the current position map.
func (r *Rebalancer) Positions() map[string]Position {
	out := make(map[string]Position, len(r.positions))
	for k, v := range r.positions {
		out[k] = *v
	}
	return out
}

// SettlementSnapshot exposes the end-of-run restriction state for
// diagnostics.
func (r *Rebalancer) SettlementSnapshot() map[string]time.Time {
	return r.settlement.Snapshot()
}

// TotalValue marks the portfolio to market at the given date. Positions
// without a bar that day are valued at their last known close.
func (r *Rebalancer) TotalValue(p *panel.Panel, date time.Time) float64 {
	total := r.cash
	for symbol, pos := range r.positions {
		price, ok := p.Close(date, symbol)
		if !ok {
			price, ok = p.PrevClose(date, symbol)
		}
		if !ok {
			continue
		}
		total += float64(pos.Shares) * price
	}
	return total
}

// Rebalance runs one step for the given date. Sells are processed before
// buys in panel symbol order; buy sizes are computed against the
// portfolio value after all sells settled, so freed capital is what funds
// the buys. Rejected orders are dropped for the date and never retried.
func (r *Rebalancer) Rebalance(p *panel.Panel, date time.Time, targets map[string]float64) *Result {
	date = panel.Normalize(date)
	result := &Result{Date: date}

	totalValue := r.TotalValue(p, date)

	// Phase 1: sells, collecting buy candidates for phase 2.
	var buyCandidates []string
	for _, symbol := range p.Symbols() {
		price, ok := p.Close(date, symbol)
		if !ok || price <= 0 {
			continue
		}

		delta := r.sizeDelta(symbol, price, totalValue*targets[symbol])
		if delta < 0 {
			r.processSell(p, date, symbol, price, -delta, result)
		} else if delta > 0 {
			buyCandidates = append(buyCandidates, symbol)
		}
	}

	// Phase 2: buys against the post-sell portfolio value.
	totalValue = r.TotalValue(p, date)
	for _, symbol := range buyCandidates {
		price, _ := p.Close(date, symbol)
		delta := r.sizeDelta(symbol, price, totalValue*targets[symbol])
		if delta <= 0 {
			continue
		}
		r.processBuy(p, date, symbol, price, delta, result)
	}

	return result
}

// sizeDelta is the raw share delta between target and current value.
func (r *Rebalancer) sizeDelta(symbol string, price, targetValue float64) float64 {
	currentValue := 0.0
	if pos, ok := r.positions[symbol]; ok {
		currentValue = float64(pos.Shares) * price
	}
	return (targetValue - currentValue) / price
}

func (r *Rebalancer) processSell(p *panel.Panel, date time.Time, symbol string, price, rawSize float64, result *Result) {
	order := contracts.Order{
		Symbol: symbol,
		Side:   contracts.OrderSideSell,
		Price:  price,
		Date:   date,
	}

	if r.cfg.EnableT1 && !r.settlement.CanSell(symbol, date) {
		r.reject(result, order, contracts.RejectT1Restricted)
		return
	}

	qty := int64(rawSize)
	if r.cfg.EnableLotRounding {
		qty = r.lots.RoundToLot(rawSize)
	}
	pos := r.positions[symbol]
	if pos != nil && qty > pos.Shares {
		qty = pos.Shares
	}
	if qty <= 0 {
		r.reject(result, order, contracts.RejectSubLot)
		return
	}
	order.Qty = qty

	if r.cfg.EnablePriceLimit {
		priorClose, ok := p.PrevClose(date, symbol)
		if !ok {
			priorClose = price
		}
		if breached, _ := r.limits.IsBreached(symbol, price, priorClose, date); breached {
			r.reject(result, order, contracts.RejectPriceLimit)
			return
		}
	}

	r.fillSell(order, result)
}

func (r *Rebalancer) processBuy(p *panel.Panel, date time.Time, symbol string, price, rawSize float64, result *Result) {
	order := contracts.Order{
		Symbol: symbol,
		Side:   contracts.OrderSideBuy,
		Price:  price,
		Date:   date,
	}

	qty := int64(rawSize)
	if r.cfg.EnableLotRounding {
		qty = r.lots.RoundToLot(rawSize)
	}
	if qty <= 0 {
		r.reject(result, order, contracts.RejectSubLot)
		return
	}
	order.Qty = qty

	if r.cfg.EnablePriceLimit {
		priorClose, ok := p.PrevClose(date, symbol)
		if !ok {
			priorClose = price
		}
		if breached, _ := r.limits.IsBreached(symbol, price, priorClose, date); breached {
			r.reject(result, order, contracts.RejectPriceLimit)
			return
		}
	}

	r.fillBuy(order, result)
}

// fillSell executes an accepted sell at the order price and updates
// settlement state when the position returns to zero.
func (r *Rebalancer) fillSell(order contracts.Order, result *Result) {
	value := order.Value()
	breakdown, err := r.cfg.Commission.Cost(value, true)
	if err != nil {
		r.log.WithError(err).Error("commission computation failed on sell")
		return
	}

	r.cash += value - breakdown.Total

	pos := r.positions[order.Symbol]
	if pos == nil {
		pos = &Position{}
		r.positions[order.Symbol] = pos
	}
	pos.Shares -= order.Qty
	if pos.Shares == 0 {
		delete(r.positions, order.Symbol)
		r.settlement.Remove(order.Symbol)
	}

	r.record(result, order, breakdown)
}

// fillBuy executes an accepted buy and starts the T+1 clock.
func (r *Rebalancer) fillBuy(order contracts.Order, result *Result) {
	value := order.Value()
	breakdown, err := r.cfg.Commission.Cost(value, false)
	if err != nil {
		r.log.WithError(err).Error("commission computation failed on buy")
		return
	}

	totalCost := value + breakdown.Total
	if totalCost > r.cash {
		r.reject(result, order, contracts.RejectInsufficientCash)
		return
	}
	r.cash -= totalCost

	pos := r.positions[order.Symbol]
	if pos == nil {
		pos = &Position{}
		r.positions[order.Symbol] = pos
	}
	pos.Shares += order.Qty
	pos.AcquiredAt = order.Date
	r.settlement.RecordBuy(order.Symbol, order.Date)

	r.record(result, order, breakdown)
}

func (r *Rebalancer) record(result *Result, order contracts.Order, breakdown contracts.CommissionBreakdown) {
	result.Orders = append(result.Orders, contracts.OrderResult{
		Order:  order,
		Status: contracts.OrderFilled,
	})
	result.Fills = append(result.Fills, contracts.Fill{
		Order:      order,
		Price:      order.Price,
		Value:      order.Value(),
		Commission: breakdown,
	})
}

func (r *Rebalancer) reject(result *Result, order contracts.Order, reason contracts.RejectReason) {
	r.log.WithFields(map[string]interface{}{
		"symbol": order.Symbol,
		"side":   order.Side,
		"date":   order.Date.Format("2006-01-02"),
		"reason": reason,
	}).Debug("order rejected")

	result.Orders = append(result.Orders, contracts.OrderResult{
		Order:  order,
		Status: contracts.OrderRejected,
		Reason: reason,
	})
}
