package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chenglinzhou/ashare-rotation/internal/panel"
)

func d(day int) time.Time {
	return time.Date(2023, 1, day, 0, 0, 0, 0, time.UTC)
}

// seed builds a panel with one field for one symbol over consecutive days.
func seed(field, symbol string, values []float64) *panel.Panel {
	p := panel.New()
	for i, v := range values {
		p.Set(field, d(1+i), symbol, v)
	}
	return p
}

func TestDecisionsForwardFill(t *testing.T) {
	// Buy triggers on day 1 only; days 2 and 3 trigger neither side and
	// must repeat the held state.
	p := seed("mom", "a", []float64{1.0, 0.5, 0.5})
	c := &Combiner{
		BuyRules:  []Rule{{Field: "mom", Op: OpGT, Value: 0.8}},
		SellRules: []Rule{{Field: "mom", Op: OpLT, Value: 0.0}},
	}

	out := c.Decisions(p)
	assert.Equal(t, DecisionHold, out[d(1)]["a"])
	assert.Equal(t, DecisionHold, out[d(2)]["a"])
	assert.Equal(t, DecisionHold, out[d(3)]["a"])
}

func TestDecisionsFlatBeforeFirstSignal(t *testing.T) {
	p := seed("mom", "a", []float64{0.5, 0.5, 1.0})
	c := &Combiner{
		BuyRules:  []Rule{{Field: "mom", Op: OpGT, Value: 0.8}},
		SellRules: []Rule{{Field: "mom", Op: OpLT, Value: 0.0}},
	}

	out := c.Decisions(p)
	assert.Equal(t, DecisionFlat, out[d(1)]["a"])
	assert.Equal(t, DecisionFlat, out[d(2)]["a"])
	assert.Equal(t, DecisionHold, out[d(3)]["a"])
}

func TestDecisionsSellWinsOverBuy(t *testing.T) {
	// Both sides trigger on the same day; sell takes priority.
	p := seed("x", "a", []float64{5.0})
	c := &Combiner{
		BuyRules:  []Rule{{Field: "x", Op: OpGT, Value: 1.0}},
		SellRules: []Rule{{Field: "x", Op: OpGT, Value: 1.0}},
	}

	out := c.Decisions(p)
	assert.Equal(t, DecisionFlat, out[d(1)]["a"])
}

func TestDecisionsNoBuyRulesSelectAll(t *testing.T) {
	p := seed("x", "a", []float64{1.0, 1.0})
	c := &Combiner{
		SellRules: []Rule{{Field: "x", Op: OpLT, Value: 0.0}},
	}

	out := c.Decisions(p)
	assert.Equal(t, DecisionHold, out[d(1)]["a"])
	assert.Equal(t, DecisionHold, out[d(2)]["a"])
}

func TestDecisionsMissingDataVotes(t *testing.T) {
	// Symbol b never has the field: its buy vote fails and its sell vote
	// passes, so it stays flat throughout.
	p := panel.New()
	p.Set("mom", d(1), "a", 2.0)
	p.Set(panel.FieldClose, d(1), "b", 10.0)

	c := &Combiner{
		BuyRules:  []Rule{{Field: "mom", Op: OpGT, Value: 1.0}},
		SellRules: []Rule{{Field: "mom", Op: OpLT, Value: 0.0}},
	}

	out := c.Decisions(p)
	assert.Equal(t, DecisionHold, out[d(1)]["a"])
	assert.Equal(t, DecisionFlat, out[d(1)]["b"])
}

func TestDecisionsBuyAtLeast(t *testing.T) {
	p := panel.New()
	p.Set("f1", d(1), "a", 2.0) // passes
	p.Set("f2", d(1), "a", 0.0) // fails

	rules := []Rule{
		{Field: "f1", Op: OpGT, Value: 1.0},
		{Field: "f2", Op: OpGT, Value: 1.0},
	}

	// Default (0) requires all rules: one passing vote is not enough.
	strict := &Combiner{BuyRules: rules}
	assert.Equal(t, DecisionFlat, strict.Decisions(p)[d(1)]["a"])

	// Relaxed threshold of 1 holds.
	loose := &Combiner{BuyRules: rules, BuyAtLeast: 1}
	assert.Equal(t, DecisionHold, loose.Decisions(p)[d(1)]["a"])
}

func TestDecisionsSellAtLeast(t *testing.T) {
	p := panel.New()
	p.Set("f1", d(1), "a", -1.0) // sell rule passes
	p.Set("f2", d(1), "a", 1.0)  // sell rule fails

	sellRules := []Rule{
		{Field: "f1", Op: OpLT, Value: 0.0},
		{Field: "f2", Op: OpLT, Value: 0.0},
	}

	// Default: any single sell vote liquidates.
	c := &Combiner{SellRules: sellRules}
	assert.Equal(t, DecisionFlat, c.Decisions(p)[d(1)]["a"])

	// Requiring both keeps the select-all hold.
	c2 := &Combiner{SellRules: sellRules, SellAtLeast: 2}
	assert.Equal(t, DecisionHold, c2.Decisions(p)[d(1)]["a"])
}

func TestRuleOps(t *testing.T) {
	p := panel.New()
	p.Set("x", d(1), "a", 5.0)

	tests := []struct {
		op    Op
		value float64
		want  bool
	}{
		{OpGT, 4.0, true},
		{OpGT, 5.0, false},
		{OpGE, 5.0, true},
		{OpLT, 6.0, true},
		{OpLT, 5.0, false},
		{OpLE, 5.0, true},
	}

	for _, tt := range tests {
		r := Rule{Field: "x", Op: tt.op, Value: tt.value}
		vote, ok := r.eval(p, d(1), "a")
		assert.True(t, ok)
		assert.Equal(t, tt.want, vote, "%s %v", tt.op, tt.value)
	}
}
