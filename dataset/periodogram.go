package dataset

import (
	"fmt"

	"github.com/smartula/hivesound/algorithms/common"
	"github.com/smartula/hivesound/algorithms/spectral"
	"github.com/smartula/hivesound/sound"
)

// PeriodogramConfig configures periodogram extraction
type PeriodogramConfig struct {
	// SliceStart and SliceStop bound the retained bin range [start, stop).
	// Bins map 1:1 onto Hz above DC, so the defaults keep 0..2048 Hz.
	SliceStart int `json:"slice_frequency_start"`
	SliceStop  int `json:"slice_frequency_stop"`

	// DBScale converts magnitudes to decibels relative to PCM full scale
	DBScale bool `json:"scale_db"`

	// Normalize rescales the final array to [0, 1] via min-max over the
	// whole array
	Normalize bool `json:"scale"`
}

// DefaultPeriodogramConfig returns the documented defaults:
// slice [0, 2048), no dB scaling, min-max normalization on
func DefaultPeriodogramConfig() PeriodogramConfig {
	return PeriodogramConfig{
		SliceStart: 0,
		SliceStop:  2048,
		DBScale:    false,
		Normalize:  true,
	}
}

// Validate fails fast on malformed parameters
func (c PeriodogramConfig) Validate() error {
	if c.SliceStart < 0 {
		return fmt.Errorf("%w: slice start must be non-negative, got %d", ErrInvalidConfig, c.SliceStart)
	}
	if c.SliceStop <= c.SliceStart {
		return fmt.Errorf("%w: slice stop (%d) must exceed slice start (%d)", ErrInvalidConfig, c.SliceStop, c.SliceStart)
	}
	return nil
}

// PeriodogramDataset yields one-sided magnitude spectra with a fixed
// 1 Hz-per-bin frequency axis, shape (1, bins)
type PeriodogramDataset struct {
	files  []string
	labels *sound.LabelSet
	config PeriodogramConfig
	perio  *spectral.Periodogram
}

// NewPeriodogramDataset binds a manifest to a periodogram configuration
func NewPeriodogramDataset(files []string, labels *sound.LabelSet, config PeriodogramConfig) (*PeriodogramDataset, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &PeriodogramDataset{
		files:  files,
		labels: labels,
		config: config,
		perio:  spectral.NewPeriodogram(),
	}, nil
}

// Len returns the number of samples
func (d *PeriodogramDataset) Len() int {
	return len(d.files)
}

// Get computes the periodogram sample at idx
func (d *PeriodogramDataset) Get(idx int) (Sample, error) {
	clip, label, err := readLabeled(d.files, d.labels, idx)
	if err != nil {
		return Sample{}, err
	}

	magnitude, err := d.perio.Compute(clip.Samples, clip.SampleRate)
	if err != nil {
		return Sample{}, fmt.Errorf("periodogram for %s: %w", clip.Path, err)
	}

	if d.config.DBScale {
		d.perio.ToDecibels(magnitude)
	}

	// Slice the bin range, clamped to the available bins
	start := min(d.config.SliceStart, len(magnitude))
	stop := min(d.config.SliceStop, len(magnitude))
	magnitude = magnitude[start:stop]

	if d.config.Normalize {
		common.MinMaxScale(magnitude)
	}

	return Sample{
		Feature: NewFeature(magnitude, 1, len(magnitude)),
		Label:   label,
	}, nil
}

// Params returns the active extraction parameters
func (d *PeriodogramDataset) Params() map[string]any {
	return map[string]any{
		"slice_frequency_start": d.config.SliceStart,
		"slice_frequency_stop":  d.config.SliceStop,
		"scale_db":              d.config.DBScale,
		"scale":                 d.config.Normalize,
	}
}
