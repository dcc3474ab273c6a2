package dataset

import (
	"fmt"
)

// DoubleFeatureDataset composes a foreground and a background dataset for
// contrastive-style sample pairing. The two datasets may have different
// lengths: the composed length is the foreground length capped at the
// background length, and the background is indexed modulo its own length so
// a longer foreground still draws a background for every index.
type DoubleFeatureDataset struct {
	foreground Dataset
	background Dataset
}

// NewDoubleFeatureDataset composes two datasets. Both must be non-empty.
func NewDoubleFeatureDataset(foreground, background Dataset) (*DoubleFeatureDataset, error) {
	if foreground == nil || background == nil {
		return nil, fmt.Errorf("both datasets must be provided")
	}
	if foreground.Len() == 0 || background.Len() == 0 {
		return nil, fmt.Errorf("both datasets must be non-empty (foreground %d, background %d)",
			foreground.Len(), background.Len())
	}
	return &DoubleFeatureDataset{
		foreground: foreground,
		background: background,
	}, nil
}

// Len returns the minimum of the two constituent lengths
func (d *DoubleFeatureDataset) Len() int {
	return min(d.foreground.Len(), d.background.Len())
}

// Get returns the foreground sample at idx with the background sample at
// idx modulo the background length attached. Both halves independently
// satisfy the single-dataset Get contract.
func (d *DoubleFeatureDataset) Get(idx int) (Sample, error) {
	fg, err := d.foreground.Get(idx)
	if err != nil {
		return Sample{}, fmt.Errorf("foreground: %w", err)
	}

	bg, err := d.background.Get(idx % d.background.Len())
	if err != nil {
		return Sample{}, fmt.Errorf("background: %w", err)
	}

	fg.Background = &bg
	return fg, nil
}

// Params returns the foreground dataset's parameters; both halves share one
// extraction configuration by construction
func (d *DoubleFeatureDataset) Params() map[string]any {
	return d.foreground.Params()
}
