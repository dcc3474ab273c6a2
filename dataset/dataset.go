// Package dataset exposes hive recordings as labeled feature samples for
// model training. Each dataset binds a file manifest to one feature
// extractor configuration and computes features on demand, per index, with
// no shared mutable state, so consumers may fetch items out of order and in
// parallel.
package dataset

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/smartula/hivesound/sound"
)

var (
	// ErrUnknownFeatureType marks a feature selector outside the enumerated set
	ErrUnknownFeatureType = errors.New("dataset: unknown feature type")

	// ErrUnsupportedIndicator marks a bioacoustic indicator outside the enumerated set
	ErrUnsupportedIndicator = errors.New("dataset: unsupported indicator")

	// ErrInvalidConfig marks a malformed feature configuration
	ErrInvalidConfig = errors.New("dataset: invalid configuration")
)

// Feature is a fixed-shape numeric array stored row-major. Shapes follow
// tensor conventions with a leading channel dimension: (1, bins) for
// vector features, (1, bands, frames) for matrix features.
type Feature struct {
	Data  []float64 `json:"data"`
	Shape []int     `json:"shape"`
}

// NewFeature wraps flat data with its shape
func NewFeature(data []float64, shape ...int) Feature {
	return Feature{Data: data, Shape: shape}
}

// Size returns the number of elements implied by the shape
func (f Feature) Size() int {
	if len(f.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range f.Shape {
		n *= d
	}
	return n
}

// Sample pairs one feature array with its integer class label. Background
// is nil except for samples produced by a DoubleFeatureDataset, where it
// carries the independently drawn background sample for contrastive
// pairing.
type Sample struct {
	Feature    Feature `json:"feature"`
	Label      int     `json:"label"`
	Background *Sample `json:"background,omitempty"`
}

// Dataset is the contract a feature dataset satisfies so it can be iterated
// by a batching consumer. Get is a pure per-index computation - nothing is
// cached and no call mutates shared state, so unordered concurrent access
// is safe.
type Dataset interface {
	// Len returns the number of samples
	Len() int

	// Get reads the recording at idx, derives its label, and extracts the
	// configured feature. Errors surface per item.
	Get(idx int) (Sample, error)

	// Params returns the active extraction parameters for experiment
	// bookkeeping
	Params() map[string]any
}

// Random draws one sample at a random index, for quick inspection of a
// dataset's output
func Random(ds Dataset, rng *rand.Rand) (Sample, error) {
	if ds.Len() == 0 {
		return Sample{}, fmt.Errorf("empty dataset")
	}
	return ds.Get(rng.Intn(ds.Len()))
}

// checkIndex validates a manifest index
func checkIndex(idx, n int) error {
	if idx < 0 || idx >= n {
		return fmt.Errorf("index %d out of range [0, %d)", idx, n)
	}
	return nil
}

// readLabeled loads the recording at idx and resolves its label from the
// parent-directory token
func readLabeled(files []string, labels *sound.LabelSet, idx int) (*sound.Clip, int, error) {
	if err := checkIndex(idx, len(files)); err != nil {
		return nil, 0, err
	}

	clip, err := sound.Read(files[idx])
	if err != nil {
		return nil, 0, err
	}

	label, err := labels.ResolvePath(files[idx])
	if err != nil {
		return nil, 0, err
	}

	return clip, label, nil
}

// bandMajor flattens a Time x Band matrix into a band-major Feature of
// shape (1, bands, frames)
func bandMajor(matrix [][]float64, bands, frames int) Feature {
	data := make([]float64, bands*frames)
	for t := 0; t < frames; t++ {
		for b := 0; b < bands; b++ {
			data[b*frames+t] = matrix[t][b]
		}
	}
	return NewFeature(data, 1, bands, frames)
}

// powerTwoFloor returns the largest power of two not exceeding n (n >= 1)
func powerTwoFloor(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
