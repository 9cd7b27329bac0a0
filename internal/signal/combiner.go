// Package signal turns rule panels into hold/flat decisions and ranks the
// held candidates for selection.
package signal

import (
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/panel"
)

// Decision is the per-date, per-asset outcome of combining rules.
type Decision int

const (
	DecisionFlat Decision = 0
	DecisionHold Decision = 1
)

// Op compares a panel field against a threshold. Rules are simple
// comparators by design; there is no expression language.
type Op string

const (
	OpGT Op = "gt"
	OpGE Op = "ge"
	OpLT Op = "lt"
	OpLE Op = "le"
)

// Rule is one vote: field <op> value.
type Rule struct {
	Field string  `yaml:"field"`
	Op    Op      `yaml:"op"`
	Value float64 `yaml:"value"`
}

// eval returns the rule's vote for (date, symbol). ok=false means the
// field has no entry there: the vote is unknown, not false.
func (r Rule) eval(p *panel.Panel, date time.Time, symbol string) (vote, ok bool) {
	v, ok := p.Value(r.Field, date, symbol)
	if !ok {
		return false, false
	}
	switch r.Op {
	case OpGT:
		return v > r.Value, true
	case OpGE:
		return v >= r.Value, true
	case OpLT:
		return v < r.Value, true
	case OpLE:
		return v <= r.Value, true
	default:
		return false, true
	}
}

// Combiner merges buy and sell rule votes into a decision panel with
// forward-filled state: a day that triggers neither side repeats the
// previous day's decision for that asset.
type Combiner struct {
	BuyRules  []Rule
	SellRules []Rule

	// BuyAtLeast is the minimum number of agreeing buy votes. Zero or
	// negative means all buy rules must agree.
	BuyAtLeast int

	// SellAtLeast is the minimum number of agreeing sell votes
	// (default 1: any single rule liquidates).
	SellAtLeast int
}

// Decisions evaluates every (date, symbol) of the panel.
//
// Semantics carried over from the reference model:
//   - a missing value fails a buy vote and passes a sell vote, so an asset
//     with unknown data is liquidated rather than held blind;
//   - sell wins over buy on the same date;
//   - with no buy rules at all, the baseline is select-all;
//   - before the first signal the decision is flat.
func (c *Combiner) Decisions(p *panel.Panel) map[time.Time]map[string]Decision {
	buyAtLeast := c.BuyAtLeast
	if buyAtLeast <= 0 {
		buyAtLeast = len(c.BuyRules)
	}
	sellAtLeast := c.SellAtLeast
	if sellAtLeast <= 0 {
		sellAtLeast = 1
	}

	dates := p.Dates()
	symbols := p.Symbols()

	out := make(map[time.Time]map[string]Decision, len(dates))
	prev := make(map[string]Decision, len(symbols))

	for _, date := range dates {
		row := make(map[string]Decision, len(symbols))
		for _, symbol := range symbols {
			decision, decided := c.decide(p, date, symbol, buyAtLeast, sellAtLeast)
			if !decided {
				decision = prev[symbol] // forward fill; zero value is flat
			}
			row[symbol] = decision
			prev[symbol] = decision
		}
		out[date] = row
	}
	return out
}

// decide returns the fresh decision for one (date, symbol), or
// decided=false when neither side triggers and the previous state carries.
func (c *Combiner) decide(p *panel.Panel, date time.Time, symbol string, buyAtLeast, sellAtLeast int) (Decision, bool) {
	if len(c.SellRules) > 0 && c.countVotes(p, c.SellRules, date, symbol, true) >= sellAtLeast {
		return DecisionFlat, true
	}

	if len(c.BuyRules) == 0 {
		// no buy rules: select-all baseline
		return DecisionHold, true
	}

	if c.countVotes(p, c.BuyRules, date, symbol, false) >= buyAtLeast {
		return DecisionHold, true
	}

	return DecisionFlat, false
}

// countVotes tallies agreeing rules. missingPasses controls the unknown
// vote: sell rules treat missing data as agreement, buy rules as refusal.
func (c *Combiner) countVotes(p *panel.Panel, rules []Rule, date time.Time, symbol string, missingPasses bool) int {
	count := 0
	for _, r := range rules {
		vote, ok := r.eval(p, date, symbol)
		if !ok {
			if missingPasses {
				count++
			}
			continue
		}
		if vote {
			count++
		}
	}
	return count
}
