// Package panel holds the per-date, per-asset, per-field numeric values
// the rebalancing pipeline consumes. A missing (date, asset) entry means
// "unknown" and is distinct from an explicit zero or NaN.
package panel

import (
	"sort"
	"time"
)

// FieldClose is the one field every panel must carry.
const FieldClose = "close"

// Panel is a mapping from (field, date, symbol) to a float64 value.
// Dates form an ascending, deduplicated sequence; on duplicate input rows
// for the same key the first occurrence wins.
type Panel struct {
	dates   []time.Time
	dateSet map[time.Time]struct{}

	symbols []string
	symSet  map[string]struct{}

	// values[field][date][symbol]
	values map[string]map[time.Time]map[string]float64
}

// New creates an empty panel.
func New() *Panel {
	return &Panel{
		dateSet: make(map[time.Time]struct{}),
		symSet:  make(map[string]struct{}),
		values:  make(map[string]map[time.Time]map[string]float64),
	}
}

// AddDate registers a date; duplicates are ignored.
func (p *Panel) AddDate(date time.Time) {
	date = Normalize(date)
	if _, ok := p.dateSet[date]; ok {
		return
	}
	p.dateSet[date] = struct{}{}
	p.dates = append(p.dates, date)
	sort.Slice(p.dates, func(i, j int) bool { return p.dates[i].Before(p.dates[j]) })
}

// Set stores a value. The first write for a (field, date, symbol) wins;
// later writes for the same key are ignored so duplicate input rows
// cannot silently rewrite history.
func (p *Panel) Set(field string, date time.Time, symbol string, value float64) {
	date = Normalize(date)
	p.AddDate(date)

	byDate, ok := p.values[field]
	if !ok {
		byDate = make(map[time.Time]map[string]float64)
		p.values[field] = byDate
	}
	bySym, ok := byDate[date]
	if !ok {
		bySym = make(map[string]float64)
		byDate[date] = bySym
	}
	if _, exists := bySym[symbol]; exists {
		return
	}
	bySym[symbol] = value

	if _, known := p.symSet[symbol]; !known {
		p.symSet[symbol] = struct{}{}
		p.symbols = append(p.symbols, symbol)
	}
}

// Value returns the stored value and whether it exists.
func (p *Panel) Value(field string, date time.Time, symbol string) (float64, bool) {
	date = Normalize(date)
	byDate, ok := p.values[field]
	if !ok {
		return 0, false
	}
	bySym, ok := byDate[date]
	if !ok {
		return 0, false
	}
	v, ok := bySym[symbol]
	return v, ok
}

// Close returns the close price for (date, symbol).
func (p *Panel) Close(date time.Time, symbol string) (float64, bool) {
	return p.Value(FieldClose, date, symbol)
}

// PrevClose returns the close of the trading day before date. When no
// prior bar exists, today's close is the defined fallback; missing both
// returns ok=false.
func (p *Panel) PrevClose(date time.Time, symbol string) (float64, bool) {
	date = Normalize(date)
	i, ok := p.dateIndex(date)
	if !ok {
		return 0, false
	}
	for j := i - 1; j >= 0; j-- {
		if v, ok := p.Close(p.dates[j], symbol); ok {
			return v, true
		}
	}
	return p.Close(date, symbol)
}

func (p *Panel) dateIndex(date time.Time) (int, bool) {
	i := sort.Search(len(p.dates), func(k int) bool { return !p.dates[k].Before(date) })
	if i < len(p.dates) && p.dates[i].Equal(date) {
		return i, true
	}
	return 0, false
}

// Dates returns the ascending date sequence.
func (p *Panel) Dates() []time.Time {
	out := make([]time.Time, len(p.dates))
	copy(out, p.dates)
	return out
}

// Symbols returns symbols in first-seen order. This order is the
// deterministic iteration order of the whole pipeline.
func (p *Panel) Symbols() []string {
	out := make([]string, len(p.symbols))
	copy(out, p.symbols)
	return out
}

// HasField reports whether any value was stored under field.
func (p *Panel) HasField(field string) bool {
	_, ok := p.values[field]
	return ok
}

// History returns up to n values of field for symbol ending at date
// (inclusive), oldest first. Dates with no value are skipped.
func (p *Panel) History(field string, date time.Time, symbol string, n int) []float64 {
	date = Normalize(date)
	i, ok := p.dateIndex(date)
	if !ok {
		return nil
	}

	var out []float64
	for j := i; j >= 0 && len(out) < n; j-- {
		if v, ok := p.Value(field, p.dates[j], symbol); ok {
			out = append(out, v)
		}
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// Normalize truncates a timestamp to its UTC calendar day so equal days
// always compare equal as map keys.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
