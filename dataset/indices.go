package dataset

import (
	"fmt"

	"github.com/smartula/hivesound/algorithms/bioacoustics"
	"github.com/smartula/hivesound/algorithms/spectral"
	"github.com/smartula/hivesound/algorithms/windowing"
	"github.com/smartula/hivesound/sound"
)

// Indicator selects a bioacoustic summary index
type Indicator string

const (
	// IndicatorACI is the Acoustic Complexity Index
	IndicatorACI Indicator = "aci"
)

// IndicesConfig configures bioacoustic index extraction
type IndicesConfig struct {
	// Indicator selects the index algorithm
	Indicator Indicator `json:"type"`

	// JSamples is the analysis-window length in samples. It sets both the
	// STFT window and hop, and clusters are sized to cover roughly one
	// second of audio each.
	JSamples int `json:"j_samples"`
}

// DefaultIndicesConfig returns the documented defaults: ACI with a
// 512-sample analysis window
func DefaultIndicesConfig() IndicesConfig {
	return IndicesConfig{
		Indicator: IndicatorACI,
		JSamples:  512,
	}
}

// Validate fails fast on malformed parameters, including an indicator
// outside the enumerated set
func (c IndicesConfig) Validate() error {
	switch c.Indicator {
	case IndicatorACI:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedIndicator, c.Indicator)
	}
	if c.JSamples <= 0 {
		return fmt.Errorf("%w: j_samples must be positive, got %d", ErrInvalidConfig, c.JSamples)
	}
	return nil
}

// SoundIndicesDataset yields per-cluster bioacoustic index vectors of shape
// (1, clusters)
type SoundIndicesDataset struct {
	files  []string
	labels *sound.LabelSet
	config IndicesConfig
	stft   *spectral.STFT
	window *windowing.Hann
}

// NewSoundIndicesDataset binds a manifest to a bioacoustic index configuration
func NewSoundIndicesDataset(files []string, labels *sound.LabelSet, config IndicesConfig) (*SoundIndicesDataset, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &SoundIndicesDataset{
		files:  files,
		labels: labels,
		config: config,
		stft:   spectral.NewSTFT(),
		window: windowing.NewHann(config.JSamples, false),
	}, nil
}

// Len returns the number of samples
func (d *SoundIndicesDataset) Len() int {
	return len(d.files)
}

// Get computes the index sample at idx
func (d *SoundIndicesDataset) Get(idx int) (Sample, error) {
	clip, label, err := readLabeled(d.files, d.labels, idx)
	if err != nil {
		return Sample{}, err
	}

	// Non-overlapping frames of JSamples each
	result, err := d.stft.Compute(clip.Samples, d.config.JSamples, d.config.JSamples, clip.SampleRate, d.window)
	if err != nil {
		return Sample{}, fmt.Errorf("indices for %s: %w", clip.Path, err)
	}

	// One cluster per second of audio
	clusterFrames := clip.SampleRate / d.config.JSamples

	aci := bioacoustics.NewACI(clusterFrames)
	indexResult, err := aci.Compute(result.Magnitude)
	if err != nil {
		return Sample{}, fmt.Errorf("indices for %s: %w", clip.Path, err)
	}

	return Sample{
		Feature: NewFeature(indexResult.PerCluster, 1, len(indexResult.PerCluster)),
		Label:   label,
	}, nil
}

// Params returns the active extraction parameters
func (d *SoundIndicesDataset) Params() map[string]any {
	return map[string]any{
		"type":      string(d.config.Indicator),
		"j_samples": d.config.JSamples,
	}
}
