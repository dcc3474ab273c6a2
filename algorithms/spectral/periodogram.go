package spectral

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Periodogram estimates the power distribution of a signal across frequency
// from the magnitude of a single full-length Fourier transform.
//
// The transform length always equals the sample rate, which pins the
// frequency axis to exactly 1 Hz per bin up to Nyquist. The zero-frequency
// bin is discarded, so a signal sampled at 16 kHz yields 7999 bins covering
// 1 Hz .. 7999 Hz.
type Periodogram struct {
	fft *FFT
}

// NewPeriodogram creates a new periodogram calculator
func NewPeriodogram() *Periodogram {
	return &Periodogram{
		fft: NewFFT(),
	}
}

// dbFloor is the magnitude floor applied before decibel conversion so that
// silent bins produce a finite value instead of -Inf.
const dbFloor = 1e-10

// Compute returns the one-sided magnitude spectrum of signal, excluding the
// DC bin: bins [1, sampleRate/2), one per Hz. The signal is truncated or
// zero-padded to sampleRate samples.
func (p *Periodogram) Compute(signal []float64, sampleRate int) ([]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	spectrum := p.fft.ComputeN(signal, sampleRate)

	bins := sampleRate/2 - 1
	if bins < 1 {
		return nil, fmt.Errorf("sample rate %d too small for a one-sided spectrum", sampleRate)
	}

	magnitude := make([]float64, bins)
	for i := 0; i < bins; i++ {
		magnitude[i] = cmplx.Abs(spectrum[i+1])
	}

	return magnitude, nil
}

// ToDecibels converts a magnitude spectrum of a full-scale-normalized signal
// to dBFS in place: 20*log10(mag), with magnitudes floored at dbFloor.
// Input samples are assumed to have been divided by the PCM full scale
// already, so no reference divisor is applied here.
func (p *Periodogram) ToDecibels(magnitude []float64) {
	for i, mag := range magnitude {
		if mag < dbFloor {
			mag = dbFloor
		}
		magnitude[i] = 20.0 * math.Log10(mag)
	}
}

// Frequencies returns the center frequency of each bin produced by Compute
// for the given sample rate: 1 Hz, 2 Hz, ... sampleRate/2-1 Hz.
func (p *Periodogram) Frequencies(sampleRate int) []float64 {
	bins := sampleRate/2 - 1
	if bins < 1 {
		return []float64{}
	}

	freqs := make([]float64, bins)
	for i := 0; i < bins; i++ {
		freqs[i] = float64(i + 1)
	}
	return freqs
}
