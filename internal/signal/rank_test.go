package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chenglinzhou/ashare-rotation/internal/panel"
)

func rankPanel(scores map[string]float64) *panel.Panel {
	p := panel.New()
	for symbol, v := range scores {
		p.Set("score", d(1), symbol, v)
	}
	return p
}

func TestSelectTopKDropN(t *testing.T) {
	p := rankPanel(map[string]float64{"a": 5, "b": 3, "c": 9, "d": 1})
	s := &RankSelector{Field: "score", TopK: 2, DropN: 1, Descending: true}

	// Descending order: c(9) a(5) b(3) d(1); drop c, keep a and b.
	got := s.Select(p, d(1), []string{"a", "b", "c", "d"})
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSelectAscending(t *testing.T) {
	p := rankPanel(map[string]float64{"a": 5, "b": 3, "c": 9})
	s := &RankSelector{Field: "score", TopK: 2}

	got := s.Select(p, d(1), []string{"a", "b", "c"})
	assert.Equal(t, []string{"b", "a"}, got)
}

func TestSelectSkipsMissingAndNaN(t *testing.T) {
	p := rankPanel(map[string]float64{"a": 5, "b": math.NaN()})
	s := &RankSelector{Field: "score", TopK: 3, Descending: true}

	// c has no score at all, b is NaN; only a survives.
	got := s.Select(p, d(1), []string{"a", "b", "c"})
	assert.Equal(t, []string{"a"}, got)
}

func TestSelectShortCandidateList(t *testing.T) {
	p := rankPanel(map[string]float64{"a": 5, "b": 3})
	s := &RankSelector{Field: "score", TopK: 5, DropN: 1, Descending: true}

	// Fewer than DropN+TopK: shorter slice, no error.
	got := s.Select(p, d(1), []string{"a", "b"})
	assert.Equal(t, []string{"b"}, got)

	// DropN past the end yields empty.
	s2 := &RankSelector{Field: "score", TopK: 2, DropN: 5, Descending: true}
	assert.Empty(t, s2.Select(p, d(1), []string{"a", "b"}))
}

func TestSelectStableTies(t *testing.T) {
	p := rankPanel(map[string]float64{"a": 5, "b": 5, "c": 5})
	s := &RankSelector{Field: "score", TopK: 3, Descending: true}

	// Equal scores keep candidate order.
	got := s.Select(p, d(1), []string{"c", "a", "b"})
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestSelectEmptyCandidates(t *testing.T) {
	p := rankPanel(map[string]float64{"a": 5})
	s := &RankSelector{Field: "score", TopK: 2}
	assert.Empty(t, s.Select(p, d(1), nil))
}
