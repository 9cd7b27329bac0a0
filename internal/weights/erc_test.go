package weights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterativeERCSingleAsset(t *testing.T) {
	s := NewIterativeERC()
	w, err := s.Solve([][]float64{{0.01}, {-0.02}, {0.01}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0}, w)
}

func TestIterativeERCInverseVolatility(t *testing.T) {
	// Two uncorrelated assets, b twice as volatile as a. ERC weights are
	// inversely proportional to volatility: 2/3 and 1/3.
	var returns [][]float64
	signA := []float64{1, -1, 1, -1}
	signB := []float64{1, 1, -1, -1}
	for cycle := 0; cycle < 10; cycle++ {
		for i := 0; i < 4; i++ {
			returns = append(returns, []float64{signA[i] * 0.01, signB[i] * 0.02})
		}
	}

	s := NewIterativeERC()
	w, err := s.Solve(returns)
	require.NoError(t, err)
	require.Len(t, w, 2)

	assert.InDelta(t, 2.0/3.0, w[0], 0.02)
	assert.InDelta(t, 1.0/3.0, w[1], 0.02)
	assert.InDelta(t, 1.0, w[0]+w[1], 1e-9)
}

func TestIterativeERCEqualAssets(t *testing.T) {
	// Three mutually uncorrelated assets with identical volatility.
	var returns [][]float64
	signA := []float64{1, -1, 1, -1}
	signB := []float64{1, 1, -1, -1}
	signC := []float64{1, -1, -1, 1}
	for cycle := 0; cycle < 10; cycle++ {
		for i := 0; i < 4; i++ {
			returns = append(returns, []float64{signA[i] * 0.01, signB[i] * 0.01, signC[i] * 0.01})
		}
	}

	s := NewIterativeERC()
	w, err := s.Solve(returns)
	require.NoError(t, err)
	for _, v := range w {
		assert.InDelta(t, 1.0/3.0, v, 0.02)
	}
}

func TestIterativeERCRejectsDegenerateInput(t *testing.T) {
	s := NewIterativeERC()

	_, err := s.Solve(nil)
	assert.Error(t, err)

	_, err = s.Solve([][]float64{{0.01}})
	assert.Error(t, err, "single row")

	_, err = s.Solve([][]float64{{0.01, 0.02}, {0.01}})
	assert.Error(t, err, "ragged matrix")

	// Zero-variance asset.
	_, err = s.Solve([][]float64{{0.01, 0}, {-0.01, 0}, {0.01, 0}})
	assert.Error(t, err)
}
