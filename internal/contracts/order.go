package contracts

import "time"

// Order is a single rebalancing instruction for one asset on one date.
// Orders are ephemeral: they are produced, accepted or rejected, and
// discarded within a single rebalancing step.
type Order struct {
	Symbol string    `json:"symbol"`
	Side   OrderSide `json:"side"`
	Qty    int64     `json:"qty"`   // always positive; Side carries direction
	Price  float64   `json:"price"` // requested price (close of the day)
	Date   time.Time `json:"date"`
}

// SignedQty returns the share delta, negative for sells.
func (o *Order) SignedQty() int64 {
	if o.Side == OrderSideSell {
		return -o.Qty
	}
	return o.Qty
}

// Value returns the gross trade value of the order.
func (o *Order) Value() float64 {
	return float64(o.Qty) * o.Price
}

// OrderSide represents buy or sell.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// RejectReason classifies why an order was dropped. A rejection is a
// normal decision outcome, not an error: the order is skipped for the
// date and never retried.
type RejectReason string

const (
	RejectNone             RejectReason = ""
	RejectT1Restricted     RejectReason = "T1_RESTRICTED"
	RejectPriceLimit       RejectReason = "PRICE_LIMIT"
	RejectSubLot           RejectReason = "SUB_LOT"
	RejectInsufficientCash RejectReason = "INSUFFICIENT_CASH"
)

// OrderStatus is the terminal state of an order within a rebalancing step.
type OrderStatus string

const (
	OrderAccepted OrderStatus = "ACCEPTED"
	OrderRejected OrderStatus = "REJECTED"
	OrderFilled   OrderStatus = "FILLED"
)

// OrderResult is an order together with its outcome.
type OrderResult struct {
	Order  Order        `json:"order"`
	Status OrderStatus  `json:"status"`
	Reason RejectReason `json:"reason,omitempty"`
}

// Rejected reports whether the order was dropped.
func (r *OrderResult) Rejected() bool {
	return r.Status == OrderRejected
}

// Fill is a completed execution with its transaction cost breakdown.
type Fill struct {
	Order      Order               `json:"order"`
	Price      float64             `json:"price"`
	Value      float64             `json:"value"`
	Commission CommissionBreakdown `json:"commission"`
}
