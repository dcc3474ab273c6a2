package dataset

import (
	"fmt"

	"github.com/smartula/hivesound/algorithms/common"
	"github.com/smartula/hivesound/algorithms/filters"
	"github.com/smartula/hivesound/algorithms/spectral"
	"github.com/smartula/hivesound/algorithms/windowing"
	"github.com/smartula/hivesound/sound"
)

// MFCCConfig configures mel-frequency cepstral coefficient extraction
type MFCCConfig struct {
	// NFFT is the analysis window size in samples
	NFFT int `json:"nfft"`

	// HopLength is the number of samples between successive frames
	HopLength int `json:"hop_len"`

	// Mels is the number of mel filter bank filters
	Mels int `json:"mels"`

	// Coeffs is the number of cepstral coefficients kept per frame
	Coeffs int `json:"coeffs"`

	// PreEmphasis is the pre-emphasis coefficient applied to the waveform
	// before analysis; 0 disables the filter
	PreEmphasis float64 `json:"pre_emphasis"`

	// Normalize rescales the final array to [0, 1] via min-max over the
	// whole 2-D array
	Normalize bool `json:"scale"`
}

// DefaultMFCCConfig returns the documented defaults: nfft 4096, hop 1396,
// 64 mel filters, 13 coefficients, no pre-emphasis, min-max normalization on
func DefaultMFCCConfig() MFCCConfig {
	return MFCCConfig{
		NFFT:        4096,
		HopLength:   1396,
		Mels:        64,
		Coeffs:      13,
		PreEmphasis: 0,
		Normalize:   true,
	}
}

// Validate fails fast on malformed parameters
func (c MFCCConfig) Validate() error {
	if c.NFFT <= 0 {
		return fmt.Errorf("%w: nfft must be positive, got %d", ErrInvalidConfig, c.NFFT)
	}
	if c.HopLength <= 0 {
		return fmt.Errorf("%w: hop length must be positive, got %d", ErrInvalidConfig, c.HopLength)
	}
	if c.Mels <= 0 {
		return fmt.Errorf("%w: mel filter count must be positive, got %d", ErrInvalidConfig, c.Mels)
	}
	if c.Coeffs <= 0 {
		return fmt.Errorf("%w: coefficient count must be positive, got %d", ErrInvalidConfig, c.Coeffs)
	}
	if c.Coeffs > c.Mels {
		return fmt.Errorf("%w: coefficient count (%d) cannot exceed mel filter count (%d)", ErrInvalidConfig, c.Coeffs, c.Mels)
	}
	if c.PreEmphasis < 0 || c.PreEmphasis >= 1 {
		return fmt.Errorf("%w: pre-emphasis coefficient must be in [0, 1), got %f", ErrInvalidConfig, c.PreEmphasis)
	}
	return nil
}

// MFCCDataset yields cepstral coefficient matrices of shape
// (1, coeffs, frames). The temporal axis is kept rather than aggregated so
// downstream models see the coefficient trajectories.
type MFCCDataset struct {
	files  []string
	labels *sound.LabelSet
	config MFCCConfig
	stft   *spectral.STFT
	window *windowing.Hamming
}

// NewMFCCDataset binds a manifest to an MFCC configuration
func NewMFCCDataset(files []string, labels *sound.LabelSet, config MFCCConfig) (*MFCCDataset, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &MFCCDataset{
		files:  files,
		labels: labels,
		config: config,
		stft:   spectral.NewSTFT(),
		window: windowing.NewHamming(config.NFFT, false),
	}, nil
}

// Len returns the number of samples
func (d *MFCCDataset) Len() int {
	return len(d.files)
}

// Get computes the MFCC sample at idx
func (d *MFCCDataset) Get(idx int) (Sample, error) {
	clip, label, err := readLabeled(d.files, d.labels, idx)
	if err != nil {
		return Sample{}, err
	}

	samples := clip.Samples
	if d.config.PreEmphasis > 0 {
		// Fresh filter per call keeps Get stateless across indices
		pe, err := filters.NewPreEmphasis(d.config.PreEmphasis)
		if err != nil {
			return Sample{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		samples = pe.ProcessBuffer(samples)
	}

	result, err := d.stft.Compute(samples, d.config.NFFT, d.config.HopLength, clip.SampleRate, d.window)
	if err != nil {
		return Sample{}, fmt.Errorf("mfcc for %s: %w", clip.Path, err)
	}

	mfcc := spectral.NewMFCCWithParams(clip.SampleRate, spectral.MFCCParams{
		NumCoefficients: d.config.Coeffs,
		NumMelFilters:   d.config.Mels,
	})

	coeffFrames, err := mfcc.ComputeFrames(result.Magnitude)
	if err != nil {
		return Sample{}, fmt.Errorf("mfcc for %s: %w", clip.Path, err)
	}

	feature := bandMajor(coeffFrames, d.config.Coeffs, len(coeffFrames))

	if d.config.Normalize {
		common.MinMaxScale(feature.Data)
	}

	return Sample{Feature: feature, Label: label}, nil
}

// Params returns the active extraction parameters
func (d *MFCCDataset) Params() map[string]any {
	return map[string]any{
		"nfft":         d.config.NFFT,
		"hop_len":      d.config.HopLength,
		"mels":         d.config.Mels,
		"coeffs":       d.config.Coeffs,
		"pre_emphasis": d.config.PreEmphasis,
		"scale":        d.config.Normalize,
	}
}
