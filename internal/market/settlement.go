package market

import "time"

// SettlementBook tracks T+1 restrictions: a security bought today may only
// be sold from the next calendar day on. Only the most recent buy date per
// symbol is tracked, not a FIFO lot ledger, so a re-buy resets the
// restriction clock for the whole position. That is a deliberate
// simplification carried over from the reference model, as is the use of
// calendar days rather than trading days.
//
// One SettlementBook belongs to exactly one simulation run and is mutated
// only by its Rebalancer.
type SettlementBook struct {
	buyDates map[string]time.Time
}

// NewSettlementBook creates an empty settlement book.
func NewSettlementBook() *SettlementBook {
	return &SettlementBook{buyDates: make(map[string]time.Time)}
}

// RecordBuy enters or overwrites the restriction for symbol. A new buy
// resets the clock even when a restriction is already active.
func (b *SettlementBook) RecordBuy(symbol string, date time.Time) {
	b.buyDates[symbol] = date
}

// CanSell reports whether symbol may be sold on current. A symbol with no
// entry is a pre-existing holding and is always sellable.
func (b *SettlementBook) CanSell(symbol string, current time.Time) bool {
	buyDate, ok := b.buyDates[symbol]
	if !ok {
		return true
	}
	return daysBetween(buyDate, current) >= 1
}

// Remove clears the entry for symbol. The Rebalancer calls this exactly
// when a position's size returns to zero.
func (b *SettlementBook) Remove(symbol string) {
	delete(b.buyDates, symbol)
}

// HoldingDays returns elapsed calendar days since the tracked buy, or 0
// when no entry exists.
func (b *SettlementBook) HoldingDays(symbol string, current time.Time) int {
	buyDate, ok := b.buyDates[symbol]
	if !ok {
		return 0
	}
	return daysBetween(buyDate, current)
}

// Len returns the number of restricted symbols.
func (b *SettlementBook) Len() int {
	return len(b.buyDates)
}

// Clear drops all entries.
func (b *SettlementBook) Clear() {
	b.buyDates = make(map[string]time.Time)
}

// Snapshot returns a copy of the restriction map for diagnostics.
func (b *SettlementBook) Snapshot() map[string]time.Time {
	out := make(map[string]time.Time, len(b.buyDates))
	for k, v := range b.buyDates {
		out[k] = v
	}
	return out
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
