package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMFCCFrameShape(t *testing.T) {
	t.Parallel()

	const (
		sampleRate = 4096
		windowSize = 256
		coeffs     = 13
	)

	signal := sineWave(440, sampleRate, sampleRate)
	stft, err := NewSTFT().Compute(signal, windowSize, windowSize, sampleRate, nil)
	require.NoError(t, err)

	mfcc := NewMFCC(sampleRate, coeffs)
	frames, err := mfcc.ComputeFrames(stft.Magnitude)
	require.NoError(t, err)

	require.Len(t, frames, stft.TimeFrames)
	for _, frame := range frames {
		require.Len(t, frame, coeffs)
	}
}

func TestMFCCDeterministic(t *testing.T) {
	t.Parallel()

	spectrum := make([]float64, 129)
	for i := range spectrum {
		spectrum[i] = float64(i%7) + 0.5
	}

	a, err := NewMFCC(4096, 13).Compute(spectrum)
	require.NoError(t, err)
	b, err := NewMFCC(4096, 13).Compute(spectrum)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestMFCCDefaults(t *testing.T) {
	t.Parallel()

	mfcc := NewMFCCWithParams(4096, MFCCParams{})
	params := mfcc.GetParams()

	assert.Equal(t, 13, params.NumCoefficients)
	assert.Equal(t, 26, params.NumMelFilters)
	assert.Equal(t, 2048.0, params.HighFreq)
	assert.Equal(t, 22.0, params.LifterCoeff)
}

func TestMFCCRejectsEmptySpectrum(t *testing.T) {
	t.Parallel()

	_, err := NewMFCC(4096, 13).Compute(nil)
	assert.Error(t, err)
}

func TestMFCCInitializeRejectsBadFFTSize(t *testing.T) {
	t.Parallel()

	err := NewMFCC(4096, 13).Initialize(-1)
	assert.Error(t, err)
}
