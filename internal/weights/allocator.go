// Package weights maps a selected asset set to target portfolio weights.
package weights

import (
	"fmt"
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/panel"
	"github.com/chenglinzhou/ashare-rotation/pkg/logger"
)

// equalCashBuffer keeps 2% of the portfolio in cash under equal
// weighting, so lot rounding and commissions never force a margin breach.
const equalCashBuffer = 0.98

// Allocator turns a date's selection into target weights.
type Allocator interface {
	Allocate(p *panel.Panel, date time.Time, selected []string) (map[string]float64, error)
}

// Equal gives every selected asset the same slice of 98% of the
// portfolio. Not a bug: the 2% remainder is a deliberate cash buffer.
type Equal struct{}

// Allocate implements Allocator.
func (Equal) Allocate(_ *panel.Panel, _ time.Time, selected []string) (map[string]float64, error) {
	out := make(map[string]float64, len(selected))
	if len(selected) == 0 {
		return out, nil
	}
	w := equalCashBuffer / float64(len(selected))
	for _, s := range selected {
		out[s] = w
	}
	return out, nil
}

// Specified uses a caller-supplied weight map; unselected assets
// implicitly get zero.
type Specified struct {
	Weights map[string]float64
}

// NewSpecified validates that the fixed weights sum to at most 1.
func NewSpecified(weights map[string]float64) (*Specified, error) {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total > 1 {
		return nil, fmt.Errorf("fixed weights sum to %.4f, must be <= 1", total)
	}
	return &Specified{Weights: weights}, nil
}

// Allocate implements Allocator. Selection is ignored: the fixed map is
// the whole target.
func (s *Specified) Allocate(_ *panel.Panel, _ time.Time, _ []string) (map[string]float64, error) {
	out := make(map[string]float64, len(s.Weights))
	for k, v := range s.Weights {
		out[k] = v
	}
	return out, nil
}

// ERCSolver is the external equal-risk-contribution routine. Given a
// lookback return matrix (rows = days, columns = selected assets, in
// order) it returns one weight per asset summing to at most 1.
type ERCSolver interface {
	Solve(returns [][]float64) ([]float64, error)
}

// ercCashBuffer scales solver output to leave a small cash remainder.
const ercCashBuffer = 0.995

// RiskParity delegates to an ERCSolver over a lookback window of daily
// returns. On any failure it falls back to the previously used weights --
// deliberately not to equal weight, so a transient solver hiccup does not
// flip the whole allocation style.
type RiskParity struct {
	Solver   ERCSolver
	Lookback int

	log  *logger.Logger
	last map[string]float64
}

// NewRiskParity creates a risk-parity allocator. lookback <= 1 defaults
// to 60 days.
func NewRiskParity(solver ERCSolver, lookback int, log *logger.Logger) *RiskParity {
	if lookback <= 1 {
		lookback = 60
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RiskParity{Solver: solver, Lookback: lookback, log: log}
}

// Allocate implements Allocator.
func (r *RiskParity) Allocate(p *panel.Panel, date time.Time, selected []string) (map[string]float64, error) {
	if len(selected) == 0 {
		return map[string]float64{}, nil
	}

	returns, ok := r.returnMatrix(p, date, selected)
	if !ok {
		r.log.WithField("date", date.Format("2006-01-02")).
			Warn("risk parity: insufficient return history, keeping previous weights")
		return r.fallback(), nil
	}

	solved, err := r.Solver.Solve(returns)
	if err != nil || len(solved) != len(selected) {
		r.log.WithError(err).Warn("risk parity solver failed, keeping previous weights")
		return r.fallback(), nil
	}

	out := make(map[string]float64, len(selected))
	for i, s := range selected {
		out[s] = solved[i] * ercCashBuffer
	}
	r.last = out
	return out, nil
}

// returnMatrix builds the lookback daily-return matrix, one column per
// selected asset. Any asset without lookback+1 closes disqualifies the
// window.
func (r *RiskParity) returnMatrix(p *panel.Panel, date time.Time, selected []string) ([][]float64, bool) {
	cols := make([][]float64, len(selected))
	for i, symbol := range selected {
		closes := p.History(panel.FieldClose, date, symbol, r.Lookback+1)
		if len(closes) < r.Lookback+1 {
			return nil, false
		}
		rets := make([]float64, r.Lookback)
		for j := 1; j < len(closes); j++ {
			if closes[j-1] == 0 {
				rets[j-1] = 0
				continue
			}
			rets[j-1] = closes[j]/closes[j-1] - 1
		}
		cols[i] = rets
	}

	rows := make([][]float64, r.Lookback)
	for d := 0; d < r.Lookback; d++ {
		row := make([]float64, len(selected))
		for i := range selected {
			row[i] = cols[i][d]
		}
		rows[d] = row
	}
	return rows, true
}

// fallback returns a copy of the last successful weights, or an empty map
// when there are none yet.
func (r *RiskParity) fallback() map[string]float64 {
	out := make(map[string]float64, len(r.last))
	for k, v := range r.last {
		out[k] = v
	}
	return out
}
