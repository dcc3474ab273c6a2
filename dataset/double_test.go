package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleFeatureLenIsMinimum(t *testing.T) {
	t.Parallel()

	ds, err := NewDoubleFeatureDataset(stubDataset{n: 5}, stubDataset{n: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	ds, err = NewDoubleFeatureDataset(stubDataset{n: 2}, stubDataset{n: 9})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestDoubleFeatureGetPairsSamples(t *testing.T) {
	t.Parallel()

	ds, err := NewDoubleFeatureDataset(stubDataset{n: 5}, stubDataset{n: 3})
	require.NoError(t, err)

	sample, err := ds.Get(1)
	require.NoError(t, err)

	assert.Equal(t, 1, sample.Label)
	require.NotNil(t, sample.Background)
	assert.Equal(t, 1, sample.Background.Label)

	// The background half carries no further nesting
	assert.Nil(t, sample.Background.Background)
}

func TestDoubleFeatureBackgroundWrapsModulo(t *testing.T) {
	t.Parallel()

	ds, err := NewDoubleFeatureDataset(stubDataset{n: 5}, stubDataset{n: 3})
	require.NoError(t, err)

	sample, err := ds.Get(4)
	require.NoError(t, err)
	assert.Equal(t, 4, sample.Label)
	require.NotNil(t, sample.Background)
	assert.Equal(t, 1, sample.Background.Label, "background index is 4 mod 3")
}

func TestDoubleFeatureParamsComeFromForeground(t *testing.T) {
	t.Parallel()

	ds, err := NewDoubleFeatureDataset(stubDataset{n: 2}, stubDataset{n: 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"kind": "stub"}, ds.Params())
}

func TestDoubleFeatureRejectsEmptyOrNil(t *testing.T) {
	t.Parallel()

	_, err := NewDoubleFeatureDataset(nil, stubDataset{n: 1})
	assert.Error(t, err)

	_, err = NewDoubleFeatureDataset(stubDataset{n: 1}, nil)
	assert.Error(t, err)

	_, err = NewDoubleFeatureDataset(stubDataset{n: 0}, stubDataset{n: 1})
	assert.Error(t, err)

	_, err = NewDoubleFeatureDataset(stubDataset{n: 1}, stubDataset{n: 0})
	assert.Error(t, err)
}

func TestDoubleFeatureEndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fgFiles := hiveManifest(t, root, "hiveA", 2, testSampleRate, 440)
	bgFiles := hiveManifest(t, root, "hiveB", 1, testSampleRate, 220)

	config := DefaultPeriodogramConfig()
	fg, err := NewPeriodogramDataset(fgFiles, testLabels, config)
	require.NoError(t, err)
	bg, err := NewPeriodogramDataset(bgFiles, testLabels, config)
	require.NoError(t, err)

	ds, err := NewDoubleFeatureDataset(fg, bg)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	sample, err := ds.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 0, sample.Label)
	require.NotNil(t, sample.Background)
	assert.Equal(t, 1, sample.Background.Label)
	assert.Equal(t, sample.Feature.Shape, sample.Background.Feature.Shape)
}
