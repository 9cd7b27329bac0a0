package weights

import (
	"errors"
	"math"
)

// IterativeERC solves for equal-risk-contribution weights with a
// fixed-point iteration on the sample covariance of the return matrix.
type IterativeERC struct {
	MaxIter   int
	Tolerance float64
}

// NewIterativeERC creates a solver with the default iteration budget.
func NewIterativeERC() *IterativeERC {
	return &IterativeERC{MaxIter: 500, Tolerance: 1e-10}
}

// Solve implements ERCSolver. Weights sum to 1.
func (s *IterativeERC) Solve(returns [][]float64) ([]float64, error) {
	if len(returns) < 2 {
		return nil, errors.New("erc: need at least two return rows")
	}
	n := len(returns[0])
	if n == 0 {
		return nil, errors.New("erc: empty return row")
	}
	for _, row := range returns {
		if len(row) != n {
			return nil, errors.New("erc: ragged return matrix")
		}
	}
	if n == 1 {
		return []float64{1}, nil
	}

	cov, err := covariance(returns)
	if err != nil {
		return nil, err
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}

	next := make([]float64, n)
	for iter := 0; iter < s.MaxIter; iter++ {
		m := matVec(cov, w)
		total := dot(w, m)
		if total <= 0 || math.IsNaN(total) {
			return nil, errors.New("erc: degenerate covariance")
		}
		target := total / float64(n)

		for i := range w {
			rc := w[i] * m[i]
			if rc <= 0 {
				next[i] = w[i]
				continue
			}
			next[i] = w[i] * math.Sqrt(target/rc)
		}
		normalize(next)

		delta := 0.0
		for i := range w {
			delta = math.Max(delta, math.Abs(next[i]-w[i]))
		}
		copy(w, next)
		if delta < s.Tolerance {
			break
		}
	}

	for _, v := range w {
		if math.IsNaN(v) || v < 0 {
			return nil, errors.New("erc: iteration diverged")
		}
	}
	return w, nil
}

// covariance computes the sample covariance matrix, columns as assets.
func covariance(returns [][]float64) ([][]float64, error) {
	rows := len(returns)
	n := len(returns[0])

	means := make([]float64, n)
	for _, row := range returns {
		for i, v := range row {
			means[i] += v
		}
	}
	for i := range means {
		means[i] /= float64(rows)
	}

	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
	}
	for _, row := range returns {
		for i := 0; i < n; i++ {
			di := row[i] - means[i]
			for j := i; j < n; j++ {
				cov[i][j] += di * (row[j] - means[j])
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cov[i][j] /= float64(rows - 1)
			cov[j][i] = cov[i][j]
		}
		if cov[i][i] <= 0 {
			return nil, errors.New("erc: zero-variance asset")
		}
	}
	return cov, nil
}

func matVec(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(v))
	for i := range m {
		for j, mv := range m[i] {
			out[i] += mv * v[j]
		}
	}
	return out
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize(w []float64) {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if sum == 0 {
		return
	}
	for i := range w {
		w[i] /= sum
	}
}
