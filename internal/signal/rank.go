package signal

import (
	"math"
	"sort"
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/panel"
)

// RankSelector ranks candidates by an ordering signal and keeps the slice
// [DropN : DropN+TopK]. Dropping the very top avoids chasing assets that
// already made their move.
type RankSelector struct {
	Field      string
	TopK       int
	DropN      int
	Descending bool
}

// Select ranks candidates for one date. Candidates with a missing or NaN
// signal are skipped; ties keep the incoming candidate order (stable
// sort). Fewer candidates than DropN+TopK yields a shorter or empty
// selection, never an error.
func (s *RankSelector) Select(p *panel.Panel, date time.Time, candidates []string) []string {
	type entry struct {
		symbol string
		value  float64
	}

	ranked := make([]entry, 0, len(candidates))
	for _, symbol := range candidates {
		v, ok := p.Value(s.Field, date, symbol)
		if !ok || math.IsNaN(v) {
			continue
		}
		ranked = append(ranked, entry{symbol: symbol, value: v})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if s.Descending {
			return ranked[i].value > ranked[j].value
		}
		return ranked[i].value < ranked[j].value
	})

	start := s.DropN
	if start < 0 {
		start = 0
	}
	if start >= len(ranked) {
		return nil
	}
	end := start + s.TopK
	if end > len(ranked) {
		end = len(ranked)
	}

	out := make([]string, 0, end-start)
	for _, e := range ranked[start:end] {
		out = append(out, e.symbol)
	}
	return out
}
