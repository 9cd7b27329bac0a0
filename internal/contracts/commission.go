package contracts

// CommissionBreakdown itemizes the transaction cost of a single fill.
type CommissionBreakdown struct {
	Brokerage   float64 `json:"brokerage"`
	StampTax    float64 `json:"stamp_tax"`    // one-sided, sells only
	TransferFee float64 `json:"transfer_fee"` // charged both directions (simplified)
	Total       float64 `json:"total"`
}

// Add accumulates another breakdown into this one.
func (c *CommissionBreakdown) Add(other CommissionBreakdown) {
	c.Brokerage += other.Brokerage
	c.StampTax += other.StampTax
	c.TransferFee += other.TransferFee
	c.Total += other.Total
}
