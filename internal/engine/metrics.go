package engine

import "math"

// tradingDaysPerYear annualizes daily volatility.
const tradingDaysPerYear = 252

// Metrics are the standard performance statistics of an equity curve.
type Metrics struct {
	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
	CAGR             float64 `json:"cagr"`
	Volatility       float64 `json:"volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	SortinoRatio     float64 `json:"sortino_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown"`
}

func computeMetrics(curve []EquityPoint, initialCash float64) Metrics {
	var m Metrics
	if len(curve) == 0 || initialCash <= 0 {
		return m
	}

	final := curve[len(curve)-1].Equity
	m.TotalReturn = final/initialCash - 1

	days := curve[len(curve)-1].Date.Sub(curve[0].Date).Hours() / 24
	years := days / 365.25
	if years > 0 {
		m.AnnualizedReturn = m.TotalReturn / years
		m.CAGR = math.Pow(final/initialCash, 1.0/years) - 1.0
	}

	dailyReturns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev == 0 {
			dailyReturns = append(dailyReturns, 0)
			continue
		}
		dailyReturns = append(dailyReturns, curve[i].Equity/prev-1)
	}

	m.Volatility = stddev(dailyReturns) * math.Sqrt(tradingDaysPerYear)
	if m.Volatility > 0 {
		m.SharpeRatio = m.AnnualizedReturn / m.Volatility
	}

	var downside []float64
	for _, r := range dailyReturns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	downsideDev := stddev(downside) * math.Sqrt(tradingDaysPerYear)
	if downsideDev > 0 {
		m.SortinoRatio = m.AnnualizedReturn / downsideDev
	}

	m.MaxDrawdown = maxDrawdown(curve)
	return m
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}

func maxDrawdown(curve []EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}

	maxDD := 0.0
	peak := curve[0].Equity

	for _, point := range curve {
		if point.Equity > peak {
			peak = point.Equity
		}
		if peak <= 0 {
			continue
		}
		dd := (peak - point.Equity) / peak
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
