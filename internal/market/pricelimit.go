package market

import (
	"fmt"
	"math"
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/contracts"
)

// Daily price-move bands by band kind.
const (
	LimitRegular = 0.10
	LimitST      = 0.05
	LimitSTAR    = 0.20 // STAR and ChiNext share the 20% band
	LimitBeijing = 0.30
)

// newIssueGraceDays is the window after listing with no price limit.
const newIssueGraceDays = 5

// BandKind names which limit band applied to a check.
type BandKind string

const (
	BandRegular BandKind = "REGULAR"
	BandST      BandKind = "ST"
	BandSTAR    BandKind = "STAR"
	BandBeijing BandKind = "BEIJING"
	BandNewIPO  BandKind = "NEW_IPO"
	BandNone    BandKind = "NONE"
)

// Direction of a limit price computation.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// PriceLimitChecker classifies an asset's daily price-move band and tests
// whether an order price would breach it. It owns the set of currently
// ST-flagged symbols and the listing dates used for the new-issue grace
// window.
type PriceLimitChecker struct {
	stSymbols    map[string]struct{}
	listingDates map[string]time.Time
}

// NewPriceLimitChecker creates a checker with an optional initial ST set.
func NewPriceLimitChecker(stSymbols []string) *PriceLimitChecker {
	c := &PriceLimitChecker{
		stSymbols:    make(map[string]struct{}),
		listingDates: make(map[string]time.Time),
	}
	for _, s := range stSymbols {
		c.stSymbols[s] = struct{}{}
	}
	return c
}

// UpdateSTSymbols replaces the ST flag set.
func (c *PriceLimitChecker) UpdateSTSymbols(symbols []string) {
	c.stSymbols = make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		c.stSymbols[s] = struct{}{}
	}
}

// SetListingDate records a symbol's listing date for the grace window.
func (c *PriceLimitChecker) SetListingDate(symbol string, date time.Time) {
	c.listingDates[symbol] = date
}

func (c *PriceLimitChecker) isST(symbol string) bool {
	_, ok := c.stSymbols[symbol]
	return ok
}

func (c *PriceLimitChecker) isNewIssue(symbol string, asOf time.Time) bool {
	listed, ok := c.listingDates[symbol]
	if !ok {
		return false
	}
	days := int(asOf.Sub(listed).Hours() / 24)
	return days >= 0 && days <= newIssueGraceDays
}

// bandKind resolves which band applies; most specific wins.
func (c *PriceLimitChecker) bandKind(symbol string, asOf time.Time) BandKind {
	if c.isNewIssue(symbol, asOf) {
		return BandNewIPO
	}
	switch Classify(symbol) {
	case BoardBeijing:
		return BandBeijing
	case BoardSTAR, BoardChiNext:
		return BandSTAR
	}
	if c.isST(symbol) {
		return BandST
	}
	return BandRegular
}

// LimitBand returns the fractional daily band for the symbol. New issues
// inside the grace window get 1.0 (no limit enforced).
func (c *PriceLimitChecker) LimitBand(symbol string, asOf time.Time) float64 {
	switch c.bandKind(symbol, asOf) {
	case BandNewIPO:
		return 1.0
	case BandBeijing:
		return LimitBeijing
	case BandSTAR:
		return LimitSTAR
	case BandST:
		return LimitST
	default:
		return LimitRegular
	}
}

// IsBreached reports whether the order price touches or exceeds the band
// relative to the prior close. The boundary is inclusive: an exact limit
// touch counts as breached. priorClose == 0 is a degenerate input and is
// defined as never breached.
func (c *PriceLimitChecker) IsBreached(symbol string, orderPrice, priorClose float64, asOf time.Time) (bool, BandKind) {
	if priorClose == 0 {
		return false, BandNone
	}

	kind := c.bandKind(symbol, asOf)
	if kind == BandNewIPO {
		// No limit is enforced inside the grace window, so not even an
		// exact doubling counts as a touch.
		return false, kind
	}

	changePct := math.Abs(orderPrice-priorClose) / priorClose
	return changePct >= c.LimitBand(symbol, asOf), kind
}

// LimitPrice computes the limit-up or limit-down price from the prior
// close. An unknown direction is the caller's bug.
func (c *PriceLimitChecker) LimitPrice(symbol string, priorClose float64, direction Direction, asOf time.Time) (float64, error) {
	band := c.LimitBand(symbol, asOf)

	switch direction {
	case DirectionUp:
		return priorClose * (1 + band), nil
	case DirectionDown:
		return priorClose * (1 - band), nil
	default:
		return 0, fmt.Errorf("%w: direction %q", contracts.ErrInvalidArgument, direction)
	}
}
