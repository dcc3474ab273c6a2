package dataset

import (
	"fmt"

	"github.com/smartula/hivesound/algorithms/common"
	"github.com/smartula/hivesound/algorithms/spectral"
	"github.com/smartula/hivesound/algorithms/windowing"
	"github.com/smartula/hivesound/sound"
)

// MelSpectrogramConfig configures mel-spectrogram extraction
type MelSpectrogramConfig struct {
	// NFFT is the analysis window size in samples
	NFFT int `json:"nfft"`

	// HopLength is the number of samples between successive frames
	HopLength int `json:"hop_len"`

	// Mels is the number of mel bands
	Mels int `json:"mels"`

	// LogScale converts power to decibels referenced to the sample's own
	// peak
	LogScale bool `json:"log_scale"`

	// TruncatePowerTwo drops trailing frames so the time dimension is a
	// power of two
	TruncatePowerTwo bool `json:"truncate_power_two"`

	// Normalize rescales the final array to [0, 1] via min-max over the
	// whole 2-D array
	Normalize bool `json:"scale"`
}

// DefaultMelSpectrogramConfig returns the documented defaults:
// nfft 4096, hop 1396, 64 mel bands, log scale, power-of-two time axis,
// min-max normalization on
func DefaultMelSpectrogramConfig() MelSpectrogramConfig {
	return MelSpectrogramConfig{
		NFFT:             4096,
		HopLength:        1396,
		Mels:             64,
		LogScale:         true,
		TruncatePowerTwo: true,
		Normalize:        true,
	}
}

// Validate fails fast on malformed parameters
func (c MelSpectrogramConfig) Validate() error {
	if c.NFFT <= 0 {
		return fmt.Errorf("%w: nfft must be positive, got %d", ErrInvalidConfig, c.NFFT)
	}
	if c.HopLength <= 0 {
		return fmt.Errorf("%w: hop length must be positive, got %d", ErrInvalidConfig, c.HopLength)
	}
	if c.Mels <= 0 {
		return fmt.Errorf("%w: mel band count must be positive, got %d", ErrInvalidConfig, c.Mels)
	}
	return nil
}

// MelSpectrogramDataset yields spectrograms with the frequency axis warped
// onto the mel scale, shape (1, mels, frames)
type MelSpectrogramDataset struct {
	files  []string
	labels *sound.LabelSet
	config MelSpectrogramConfig
	stft   *spectral.STFT
	mel    *spectral.MelScale
	window *windowing.Hann
}

// NewMelSpectrogramDataset binds a manifest to a mel-spectrogram configuration
func NewMelSpectrogramDataset(files []string, labels *sound.LabelSet, config MelSpectrogramConfig) (*MelSpectrogramDataset, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &MelSpectrogramDataset{
		files:  files,
		labels: labels,
		config: config,
		stft:   spectral.NewSTFT(),
		mel:    spectral.NewMelScale(),
		window: windowing.NewHann(config.NFFT, false),
	}, nil
}

// Len returns the number of samples
func (d *MelSpectrogramDataset) Len() int {
	return len(d.files)
}

// Get computes the mel-spectrogram sample at idx
func (d *MelSpectrogramDataset) Get(idx int) (Sample, error) {
	clip, label, err := readLabeled(d.files, d.labels, idx)
	if err != nil {
		return Sample{}, err
	}

	result, err := d.stft.Compute(clip.Samples, d.config.NFFT, d.config.HopLength, clip.SampleRate, d.window)
	if err != nil {
		return Sample{}, fmt.Errorf("mel-spectrogram for %s: %w", clip.Path, err)
	}

	melPower := d.mel.ComputeMelSpectrogramFrames(
		result.Magnitude,
		d.config.Mels,
		clip.SampleRate,
		0,
		float64(clip.SampleRate)/2.0,
	)

	if d.config.LogScale {
		melPower = spectral.PowerToDB(melPower)
	}

	frames := result.TimeFrames
	if d.config.TruncatePowerTwo {
		frames = powerTwoFloor(frames)
	}

	feature := bandMajor(melPower[:frames], d.config.Mels, frames)

	if d.config.Normalize {
		common.MinMaxScale(feature.Data)
	}

	return Sample{Feature: feature, Label: label}, nil
}

// Params returns the active extraction parameters
func (d *MelSpectrogramDataset) Params() map[string]any {
	return map[string]any{
		"nfft":               d.config.NFFT,
		"hop_len":            d.config.HopLength,
		"mels":               d.config.Mels,
		"log_scale":          d.config.LogScale,
		"truncate_power_two": d.config.TruncatePowerTwo,
		"scale":              d.config.Normalize,
	}
}
