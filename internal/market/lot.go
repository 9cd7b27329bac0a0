package market

import "math"

// DefaultLotSize is the standard A-share board lot.
const DefaultLotSize = 100

// LotRounder rounds raw share quantities down to tradable board-lot
// multiples. Pure and stateless; callers must guard price <= 0 before
// SizeForBudget.
type LotRounder struct {
	LotSize int64
}

// NewLotRounder creates a LotRounder; lotSize <= 0 falls back to 100.
func NewLotRounder(lotSize int64) LotRounder {
	if lotSize <= 0 {
		lotSize = DefaultLotSize
	}
	return LotRounder{LotSize: lotSize}
}

// RoundToLot truncates toward zero to the nearest lot multiple. It never
// rounds up.
func (r LotRounder) RoundToLot(size float64) int64 {
	lots := int64(math.Floor(math.Abs(size) / float64(r.LotSize)))
	rounded := lots * r.LotSize
	if size < 0 {
		return -rounded
	}
	return rounded
}

// SizeForBudget computes how many whole-lot shares a target value buys at
// the given price. Returns ok=false when the result is below one full lot:
// there is no minimum-lot fallback, so a too-small budget is rejected
// instead of silently overspending.
func (r LotRounder) SizeForBudget(targetValue, price float64) (int64, bool) {
	raw := math.Floor(targetValue / price)
	rounded := r.RoundToLot(raw)
	if rounded < r.LotSize {
		return 0, false
	}
	return rounded, true
}

// AdjustWithFloor rounds size down to a lot multiple but returns minShares
// instead of rejecting when the result falls short. minShares <= 0 defaults
// to one lot.
func (r LotRounder) AdjustWithFloor(size float64, minShares int64) int64 {
	if minShares <= 0 {
		minShares = r.LotSize
	}
	rounded := r.RoundToLot(size)
	if rounded < minShares {
		return minShares
	}
	return rounded
}
