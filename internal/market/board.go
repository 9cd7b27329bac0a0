package market

import "strings"

// Board is the listing-board classification of an A-share symbol.
// Classification is a pure function of the symbol code; ST status is a
// runtime flag tracked separately (see PriceLimitChecker).
type Board string

const (
	BoardRegular Board = "REGULAR"
	BoardSTAR    Board = "STAR"    // Shanghai STAR market (688xxx.SH)
	BoardChiNext Board = "CHINEXT" // Shenzhen ChiNext (30xxxx.SZ)
	BoardBeijing Board = "BEIJING" // Beijing exchange (*.BJ)
)

// Classify derives the board from the symbol's code prefix/suffix.
func Classify(symbol string) Board {
	switch {
	case strings.HasSuffix(symbol, ".BJ"):
		return BoardBeijing
	case strings.HasPrefix(symbol, "688") && strings.HasSuffix(symbol, ".SH"):
		return BoardSTAR
	case strings.HasPrefix(symbol, "30") && strings.HasSuffix(symbol, ".SZ"):
		return BoardChiNext
	default:
		return BoardRegular
	}
}
