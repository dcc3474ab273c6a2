package filters

import (
	"fmt"
)

// PreEmphasis implements a first-order pre-emphasis filter:
//
//	y[n] = x[n] - α*x[n-1]
//
// Pre-emphasis flattens the natural spectral roll-off of recorded audio and
// is the conventional front end for cepstral analysis. α is typically
// 0.95-0.97.
type PreEmphasis struct {
	coefficient float64
	lastSample  float64
}

// NewPreEmphasis creates a pre-emphasis filter with the given coefficient.
// The coefficient must be in (0, 1).
func NewPreEmphasis(coefficient float64) (*PreEmphasis, error) {
	if coefficient <= 0.0 || coefficient >= 1.0 {
		return nil, fmt.Errorf("coefficient must be between 0 and 1, got %f", coefficient)
	}
	return &PreEmphasis{coefficient: coefficient}, nil
}

// NewPreEmphasisDefault creates a pre-emphasis filter with the standard
// speech-processing coefficient (0.97).
func NewPreEmphasisDefault() *PreEmphasis {
	return &PreEmphasis{coefficient: 0.97}
}

// Process applies pre-emphasis to a single sample
func (pe *PreEmphasis) Process(input float64) float64 {
	output := input - pe.coefficient*pe.lastSample
	pe.lastSample = input
	return output
}

// ProcessBuffer applies pre-emphasis to an entire buffer of samples
func (pe *PreEmphasis) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = pe.Process(sample)
	}
	return output
}

// Reset clears the filter's internal state. Call this between discontinuous
// audio segments.
func (pe *PreEmphasis) Reset() {
	pe.lastSample = 0.0
}

// GetCoefficient returns the filter coefficient
func (pe *PreEmphasis) GetCoefficient() float64 {
	return pe.coefficient
}
