package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartula/hivesound/sound"
)

const testSampleRate = 4096

func TestPeriodogramDatasetGet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := hiveManifest(t, root, "hiveB", 2, testSampleRate, 440)

	config := DefaultPeriodogramConfig()
	config.SliceStop = 1024
	ds, err := NewPeriodogramDataset(files, testLabels, config)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())

	sample, err := ds.Get(0)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1024}, sample.Feature.Shape)
	assert.Len(t, sample.Feature.Data, 1024)
	assert.Equal(t, 1, sample.Label, "hiveB is index 1")

	// Min-max normalization over the whole array
	lo, hi := featureBounds(sample.Feature)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	// The 440 Hz tone survives slicing: bin 439 is the peak
	peak := 0
	for i, v := range sample.Feature.Data {
		if v > sample.Feature.Data[peak] {
			peak = i
		}
	}
	assert.Equal(t, 439, peak)
}

func TestPeriodogramDatasetDeterministic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := hiveManifest(t, root, "hiveA", 1, testSampleRate, 300)

	ds, err := NewPeriodogramDataset(files, testLabels, DefaultPeriodogramConfig())
	require.NoError(t, err)

	a, err := ds.Get(0)
	require.NoError(t, err)
	b, err := ds.Get(0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSpectrogramDatasetShape(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := hiveManifest(t, root, "hiveA", 1, testSampleRate, 440)

	config := SpectrogramConfig{
		NFFT:             256,
		HopLength:        128,
		FMax:             1000,
		LogScale:         true,
		TruncatePowerTwo: true,
		Normalize:        true,
	}
	ds, err := NewSpectrogramDataset(files, testLabels, config)
	require.NoError(t, err)

	sample, err := ds.Get(0)
	require.NoError(t, err)

	// (4096-256)/128+1 = 31 frames, truncated down to 16; 16 Hz/bin up to
	// 1000 Hz keeps bins 0..62
	assert.Equal(t, []int{1, 63, 16}, sample.Feature.Shape)
	assert.Len(t, sample.Feature.Data, 63*16)
	assert.Equal(t, 0, sample.Label)

	lo, hi := featureBounds(sample.Feature)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestSpectrogramDatasetNoTruncateNoFmax(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := hiveManifest(t, root, "hiveA", 1, testSampleRate, 440)

	config := SpectrogramConfig{
		NFFT:      256,
		HopLength: 128,
		FMax:      0,
	}
	ds, err := NewSpectrogramDataset(files, testLabels, config)
	require.NoError(t, err)

	sample, err := ds.Get(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 129, 31}, sample.Feature.Shape)
}

func TestMelSpectrogramDatasetShape(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := hiveManifest(t, root, "hiveB", 1, testSampleRate, 440)

	config := MelSpectrogramConfig{
		NFFT:             256,
		HopLength:        128,
		Mels:             20,
		LogScale:         true,
		TruncatePowerTwo: true,
		Normalize:        true,
	}
	ds, err := NewMelSpectrogramDataset(files, testLabels, config)
	require.NoError(t, err)

	sample, err := ds.Get(0)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 20, 16}, sample.Feature.Shape)
	assert.Equal(t, 1, sample.Label)

	lo, hi := featureBounds(sample.Feature)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestMFCCDatasetShape(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := hiveManifest(t, root, "hiveA", 1, testSampleRate, 440)

	config := MFCCConfig{
		NFFT:        256,
		HopLength:   128,
		Mels:        26,
		Coeffs:      13,
		PreEmphasis: 0.97,
		Normalize:   true,
	}
	ds, err := NewMFCCDataset(files, testLabels, config)
	require.NoError(t, err)

	sample, err := ds.Get(0)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 13, 31}, sample.Feature.Shape)

	lo, hi := featureBounds(sample.Feature)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestSoundIndicesDatasetShape(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := hiveManifest(t, root, "hiveA", 1, testSampleRate, 440)

	ds, err := NewSoundIndicesDataset(files, testLabels, DefaultIndicesConfig())
	require.NoError(t, err)

	sample, err := ds.Get(0)
	require.NoError(t, err)

	// One second of audio in 512-sample frames forms a single one-second
	// cluster
	assert.Equal(t, []int{1, 1}, sample.Feature.Shape)
	assert.GreaterOrEqual(t, sample.Feature.Data[0], 0.0)
}

func TestDatasetGetOutOfRange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := hiveManifest(t, root, "hiveA", 1, testSampleRate, 440)

	ds, err := NewPeriodogramDataset(files, testLabels, DefaultPeriodogramConfig())
	require.NoError(t, err)

	_, err = ds.Get(5)
	assert.Error(t, err)
	_, err = ds.Get(-1)
	assert.Error(t, err)
}

func TestDatasetUnknownLabelSurfacesPerItem(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := hiveManifest(t, root, "hiveZ", 1, testSampleRate, 440)

	ds, err := NewPeriodogramDataset(files, testLabels, DefaultPeriodogramConfig())
	require.NoError(t, err)

	_, err = ds.Get(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, sound.ErrLabelNotFound)
}

func TestDatasetMissingFileSurfacesPerItem(t *testing.T) {
	t.Parallel()

	files := []string{filepath.Join(t.TempDir(), "hiveA_2020", "missing.wav")}

	ds, err := NewPeriodogramDataset(files, testLabels, DefaultPeriodogramConfig())
	require.NoError(t, err)

	_, err = ds.Get(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, sound.ErrRead)
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	_, err := NewSpectrogramDataset(nil, testLabels, SpectrogramConfig{NFFT: -4096, HopLength: 128})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewMelSpectrogramDataset(nil, testLabels, MelSpectrogramConfig{NFFT: 4096, HopLength: 1396, Mels: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewMFCCDataset(nil, testLabels, MFCCConfig{NFFT: 4096, HopLength: 1396, Mels: 12, Coeffs: 20})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewPeriodogramDataset(nil, testLabels, PeriodogramConfig{SliceStart: 100, SliceStop: 50})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSoundIndicesDataset(nil, testLabels, IndicesConfig{Indicator: IndicatorACI, JSamples: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
