// Package indicator computes a fixed set of rolling fields into a panel:
// rate of change, moving average, lagged reference, and a regression-based
// trend score. It is intentionally not an expression language; rules refer
// to fields by the names defined here.
package indicator

import (
	"fmt"
	"math"
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/panel"
)

// Kind is a supported rolling computation.
type Kind string

const (
	KindROC        Kind = "roc"         // (x[t] - x[t-n]) / x[t-n]
	KindMA         Kind = "ma"          // mean of last n values
	KindRef        Kind = "ref"         // x[t-n]
	KindTrendScore Kind = "trend_score" // annualized log-price OLS slope x R^2
)

// Spec defines one derived field.
type Spec struct {
	Name   string `yaml:"name"`
	Kind   Kind   `yaml:"kind"`
	Source string `yaml:"source"`
	Window int    `yaml:"window"`
}

// Enrich computes every spec into the panel for all dates and symbols.
// Dates without enough history simply get no entry (unknown), except for
// trend_score whose degeneracies resolve to 0.0 once a full window exists.
func Enrich(p *panel.Panel, specs []Spec) error {
	for _, spec := range specs {
		if err := enrichOne(p, spec); err != nil {
			return fmt.Errorf("indicator %q: %w", spec.Name, err)
		}
	}
	return nil
}

func enrichOne(p *panel.Panel, spec Spec) error {
	if spec.Window <= 0 {
		return fmt.Errorf("window must be positive, got %d", spec.Window)
	}
	source := spec.Source
	if source == "" {
		source = panel.FieldClose
	}

	dates := p.Dates()
	for _, symbol := range p.Symbols() {
		for _, date := range dates {
			v, ok := compute(p, spec, source, date, symbol)
			if !ok {
				continue
			}
			p.Set(spec.Name, date, symbol, v)
		}
	}
	return nil
}

func compute(p *panel.Panel, spec Spec, source string, date time.Time, symbol string) (float64, bool) {
	switch spec.Kind {
	case KindROC:
		hist := p.History(source, date, symbol, spec.Window+1)
		if len(hist) < spec.Window+1 {
			return 0, false
		}
		base := hist[0]
		if base == 0 {
			return 0, true // degenerate base resolves to neutral zero
		}
		return (hist[len(hist)-1] - base) / base, true

	case KindMA:
		hist := p.History(source, date, symbol, spec.Window)
		if len(hist) < spec.Window {
			return 0, false
		}
		sum := 0.0
		for _, v := range hist {
			sum += v
		}
		return sum / float64(len(hist)), true

	case KindRef:
		hist := p.History(source, date, symbol, spec.Window+1)
		if len(hist) < spec.Window+1 {
			return 0, false
		}
		return hist[0], true

	case KindTrendScore:
		hist := p.History(source, date, symbol, spec.Window)
		if len(hist) < spec.Window {
			return 0, false
		}
		return TrendScore(hist), true

	default:
		return 0, false
	}
}

// TrendScore regresses log prices against time and returns the annualized
// regression return weighted by R-squared. All numeric degeneracies (short
// windows, zero variance, zero denominators) resolve to 0.0 so no NaN or
// Inf reaches the weight computation downstream.
func TrendScore(closes []float64) float64 {
	n := len(closes)
	if n < 2 {
		return 0.0
	}

	y := make([]float64, n)
	for i, c := range closes {
		if c <= 0 {
			return 0.0
		}
		y[i] = math.Log(c)
	}

	var sumX, sumY, sumX2, sumXY float64
	for i := 0; i < n; i++ {
		x := float64(i)
		sumX += x
		sumY += y[i]
		sumX2 += x * x
		sumXY += x * y[i]
	}

	fn := float64(n)
	denominator := fn*sumX2 - sumX*sumX
	if math.Abs(denominator) <= 1e-9 {
		return 0.0
	}

	slope := (fn*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / fn

	var ssRes float64
	for i := 0; i < n; i++ {
		pred := slope*float64(i) + intercept
		d := y[i] - pred
		ssRes += d * d
	}
	ssTot := 0.0
	for i := 0; i < n; i++ {
		ssTot += y[i] * y[i]
	}
	ssTot -= sumY * sumY / fn

	rSquared := 0.0
	if math.Abs(ssTot) > 1e-9 {
		rSquared = 1 - ssRes/ssTot
	}
	if rSquared < 0 {
		rSquared = 0
	} else if rSquared > 1 {
		rSquared = 1
	}

	annualized := math.Exp(slope*250) - 1
	return annualized * rSquared
}
