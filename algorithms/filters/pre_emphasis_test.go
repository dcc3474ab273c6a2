package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreEmphasisDifferenceEquation(t *testing.T) {
	t.Parallel()

	pe, err := NewPreEmphasis(0.97)
	require.NoError(t, err)

	out := pe.ProcessBuffer([]float64{1.0, 1.0, 1.0})

	// y[0] = x[0], then y[n] = x[n] - 0.97*x[n-1]
	assert.InDelta(t, 1.0, out[0], 1e-12)
	assert.InDelta(t, 0.03, out[1], 1e-12)
	assert.InDelta(t, 0.03, out[2], 1e-12)
}

func TestPreEmphasisReset(t *testing.T) {
	t.Parallel()

	pe := NewPreEmphasisDefault()
	_ = pe.Process(1.0)
	pe.Reset()

	// After reset the filter forgets the previous segment
	assert.InDelta(t, 1.0, pe.Process(1.0), 1e-12)
}

func TestPreEmphasisRejectsBadCoefficient(t *testing.T) {
	t.Parallel()

	for _, c := range []float64{-0.1, 0.0, 1.0, 1.5} {
		_, err := NewPreEmphasis(c)
		assert.Error(t, err, "coefficient %f", c)
	}
}
