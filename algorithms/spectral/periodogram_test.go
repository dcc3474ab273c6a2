package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineWave(freq float64, sampleRate, n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return signal
}

func TestPeriodogramBinCount(t *testing.T) {
	t.Parallel()

	// One second at 16 kHz: transform length 16000, one-sided spectrum
	// minus the DC bin leaves 7999 bins at exactly 1 Hz each
	p := NewPeriodogram()
	magnitude, err := p.Compute(sineWave(440, 16000, 16000), 16000)
	require.NoError(t, err)
	assert.Len(t, magnitude, 7999)
}

func TestPeriodogramPeakBin(t *testing.T) {
	t.Parallel()

	const sampleRate = 2000
	p := NewPeriodogram()
	magnitude, err := p.Compute(sineWave(440, sampleRate, sampleRate), sampleRate)
	require.NoError(t, err)
	require.Len(t, magnitude, sampleRate/2-1)

	// With a 1 Hz-per-bin axis starting at 1 Hz, a 440 Hz tone peaks at
	// index 439
	peak := 0
	for i, mag := range magnitude {
		if mag > magnitude[peak] {
			peak = i
		}
	}
	assert.Equal(t, 439, peak)
}

func TestPeriodogramShortSignalZeroPads(t *testing.T) {
	t.Parallel()

	p := NewPeriodogram()
	magnitude, err := p.Compute(sineWave(100, 2000, 500), 2000)
	require.NoError(t, err)
	assert.Len(t, magnitude, 999)
}

func TestPeriodogramEmptySignal(t *testing.T) {
	t.Parallel()

	p := NewPeriodogram()
	_, err := p.Compute(nil, 2000)
	assert.Error(t, err)
}

func TestPeriodogramToDecibels(t *testing.T) {
	t.Parallel()

	p := NewPeriodogram()
	magnitude := []float64{1.0, 0.1, 0.0}
	p.ToDecibels(magnitude)

	assert.InDelta(t, 0.0, magnitude[0], 1e-9)
	assert.InDelta(t, -20.0, magnitude[1], 1e-9)

	// Silent bins hit the floor instead of -Inf
	assert.False(t, math.IsInf(magnitude[2], -1))
	assert.InDelta(t, -200.0, magnitude[2], 1e-9)
}

func TestPeriodogramFrequencies(t *testing.T) {
	t.Parallel()

	p := NewPeriodogram()
	freqs := p.Frequencies(2000)
	require.Len(t, freqs, 999)
	assert.Equal(t, 1.0, freqs[0])
	assert.Equal(t, 999.0, freqs[998])
}
