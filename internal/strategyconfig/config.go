// Package strategyconfig defines the per-run YAML task configuration and
// its validation. Unknown fields, scheme names, or cadences fail before
// the simulation starts.
package strategyconfig

import (
	"github.com/chenglinzhou/ashare-rotation/internal/indicator"
	"github.com/chenglinzhou/ashare-rotation/internal/signal"
)

// Task is the full configuration of one backtest run.
type Task struct {
	Name    string   `yaml:"name" json:"name"`
	Symbols []string `yaml:"symbols" json:"symbols"`

	StartDate string `yaml:"start_date" json:"start_date"` // YYYY-MM-DD
	EndDate   string `yaml:"end_date" json:"end_date"`

	InitialCash float64 `yaml:"initial_cash" json:"initial_cash"`

	// Market constraints
	LotSize           int64    `yaml:"lot_size" json:"lot_size"`
	EnableT1          bool     `yaml:"enable_t1" json:"enable_t1"`
	EnablePriceLimit  bool     `yaml:"enable_price_limit" json:"enable_price_limit"`
	EnableLotRounding bool     `yaml:"enable_lot_rounding" json:"enable_lot_rounding"`
	STSymbols         []string `yaml:"st_symbols" json:"st_symbols"`

	// Derived panel fields
	Indicators []indicator.Spec `yaml:"indicators" json:"indicators"`

	// Signal rules
	BuyRules    []signal.Rule `yaml:"buy_rules" json:"buy_rules"`
	BuyAtLeast  int           `yaml:"buy_at_least" json:"buy_at_least"`
	SellRules   []signal.Rule `yaml:"sell_rules" json:"sell_rules"`
	SellAtLeast int           `yaml:"sell_at_least" json:"sell_at_least"`

	// Ranking
	OrderBy    string `yaml:"order_by" json:"order_by"`
	TopK       int    `yaml:"top_k" json:"top_k"`
	DropN      int    `yaml:"drop_n" json:"drop_n"`
	Descending bool   `yaml:"descending" json:"descending"`

	// Weighting
	WeightScheme string             `yaml:"weight_scheme" json:"weight_scheme"` // equal, specified, risk_parity
	WeightFixed  map[string]float64 `yaml:"weight_fixed" json:"weight_fixed"`
	ERCLookback  int                `yaml:"erc_lookback" json:"erc_lookback"`

	// Commission
	CommissionScheme string  `yaml:"commission_scheme" json:"commission_scheme"` // v1, v2, zero, flat
	FlatRate         float64 `yaml:"flat_rate" json:"flat_rate"`

	// Rebalancing cadence: daily, weekly, monthly, every_n_days
	Cadence     string `yaml:"cadence" json:"cadence"`
	CadenceDays int    `yaml:"cadence_days" json:"cadence_days"`
}

// Weight scheme names.
const (
	WeightEqual      = "equal"
	WeightSpecified  = "specified"
	WeightRiskParity = "risk_parity"
)

// Cadence names.
const (
	CadenceDaily   = "daily"
	CadenceWeekly  = "weekly"
	CadenceMonthly = "monthly"
	CadenceEveryN  = "every_n_days"
)

// Defaults fills unset fields with the standard run settings.
func (t *Task) Defaults() {
	if t.LotSize == 0 {
		t.LotSize = 100
	}
	if t.InitialCash == 0 {
		t.InitialCash = 1_000_000
	}
	if t.TopK == 0 {
		t.TopK = 1
	}
	if t.SellAtLeast == 0 {
		t.SellAtLeast = 1
	}
	if t.WeightScheme == "" {
		t.WeightScheme = WeightEqual
	}
	if t.CommissionScheme == "" {
		t.CommissionScheme = "v2"
	}
	if t.Cadence == "" {
		t.Cadence = CadenceDaily
	}
}
