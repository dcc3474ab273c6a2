package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinMaxScaleBounds(t *testing.T) {
	t.Parallel()

	data := []float64{-3.5, 0.0, 2.0, 7.25, 1.0}
	MinMaxScale(data)

	lo, hi := MinMax(data)
	assert.Equal(t, 0.0, lo, "minimum must be exactly 0")
	assert.Equal(t, 1.0, hi, "maximum must be exactly 1")

	for _, v := range data {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestMinMaxScalePreservesOrder(t *testing.T) {
	t.Parallel()

	data := []float64{5, 1, 3}
	MinMaxScale(data)

	require.Equal(t, []float64{1, 0, 0.5}, data)
}

func TestMinMaxScaleConstantInput(t *testing.T) {
	t.Parallel()

	// A constant array has no range; the degenerate policy is all zeros
	// rather than a division by zero
	data := []float64{4.2, 4.2, 4.2, 4.2}
	MinMaxScale(data)

	for _, v := range data {
		assert.Equal(t, 0.0, v)
	}
}

func TestMinMaxScaleEmpty(t *testing.T) {
	t.Parallel()

	var data []float64
	MinMaxScale(data) // must not panic
	assert.Empty(t, data)
}

func TestStats(t *testing.T) {
	t.Parallel()

	data := []float64{1, 2, 3, 4}
	assert.InDelta(t, 2.5, Mean(data), 1e-12)
	assert.InDelta(t, 10.0, Sum(data), 1e-12)

	lo, hi := MinMax(data)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 4.0, hi)

	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Variance([]float64{1}))
}
