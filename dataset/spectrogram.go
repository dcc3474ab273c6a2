package dataset

import (
	"fmt"

	"github.com/smartula/hivesound/algorithms/common"
	"github.com/smartula/hivesound/algorithms/spectral"
	"github.com/smartula/hivesound/algorithms/windowing"
	"github.com/smartula/hivesound/sound"
)

// SpectrogramConfig configures STFT spectrogram extraction
type SpectrogramConfig struct {
	// NFFT is the analysis window size in samples
	NFFT int `json:"nfft"`

	// HopLength is the number of samples between successive frames
	HopLength int `json:"hop_len"`

	// FMax drops frequency bins above this cutoff in Hz; <= 0 keeps all
	// bins up to Nyquist
	FMax int `json:"fmax"`

	// LogScale converts power to decibels referenced to the sample's own
	// peak
	LogScale bool `json:"log_scale"`

	// TruncatePowerTwo drops trailing frames so the time dimension is a
	// power of two, for downstream architectures that require it
	TruncatePowerTwo bool `json:"truncate_power_two"`

	// Normalize rescales the final array to [0, 1] via min-max over the
	// whole 2-D array, not per row
	Normalize bool `json:"scale"`
}

// DefaultSpectrogramConfig returns the documented defaults:
// nfft 4096, hop 1396, fmax 2750 Hz, log scale, power-of-two time axis,
// min-max normalization on
func DefaultSpectrogramConfig() SpectrogramConfig {
	return SpectrogramConfig{
		NFFT:             4096,
		HopLength:        1396,
		FMax:             2750,
		LogScale:         true,
		TruncatePowerTwo: true,
		Normalize:        true,
	}
}

// Validate fails fast on malformed parameters
func (c SpectrogramConfig) Validate() error {
	if c.NFFT <= 0 {
		return fmt.Errorf("%w: nfft must be positive, got %d", ErrInvalidConfig, c.NFFT)
	}
	if c.HopLength <= 0 {
		return fmt.Errorf("%w: hop length must be positive, got %d", ErrInvalidConfig, c.HopLength)
	}
	return nil
}

// SpectrogramDataset yields 2-D time-frequency power features of shape
// (1, bands, frames)
type SpectrogramDataset struct {
	files  []string
	labels *sound.LabelSet
	config SpectrogramConfig
	stft   *spectral.STFT
	window *windowing.Hann
}

// NewSpectrogramDataset binds a manifest to a spectrogram configuration
func NewSpectrogramDataset(files []string, labels *sound.LabelSet, config SpectrogramConfig) (*SpectrogramDataset, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &SpectrogramDataset{
		files:  files,
		labels: labels,
		config: config,
		stft:   spectral.NewSTFT(),
		window: windowing.NewHann(config.NFFT, false),
	}, nil
}

// Len returns the number of samples
func (d *SpectrogramDataset) Len() int {
	return len(d.files)
}

// Get computes the spectrogram sample at idx
func (d *SpectrogramDataset) Get(idx int) (Sample, error) {
	clip, label, err := readLabeled(d.files, d.labels, idx)
	if err != nil {
		return Sample{}, err
	}

	result, err := d.stft.Compute(clip.Samples, d.config.NFFT, d.config.HopLength, clip.SampleRate, d.window)
	if err != nil {
		return Sample{}, fmt.Errorf("spectrogram for %s: %w", clip.Path, err)
	}

	power := result.PowerSpectrogram()

	bands := result.FreqBins
	if d.config.FMax > 0 {
		bands = result.BinForFrequency(float64(d.config.FMax)) + 1
	}
	for t := range power {
		power[t] = power[t][:bands]
	}

	if d.config.LogScale {
		power = spectral.PowerToDB(power)
	}

	frames := result.TimeFrames
	if d.config.TruncatePowerTwo {
		frames = powerTwoFloor(frames)
	}

	feature := bandMajor(power[:frames], bands, frames)

	if d.config.Normalize {
		common.MinMaxScale(feature.Data)
	}

	return Sample{Feature: feature, Label: label}, nil
}

// Params returns the active extraction parameters
func (d *SpectrogramDataset) Params() map[string]any {
	return map[string]any{
		"nfft":               d.config.NFFT,
		"hop_len":            d.config.HopLength,
		"fmax":               d.config.FMax,
		"log_scale":          d.config.LogScale,
		"truncate_power_two": d.config.TruncatePowerTwo,
		"scale":              d.config.Normalize,
	}
}
