package dataset

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"

	"github.com/smartula/hivesound/sound"
)

// writeHiveWAV encodes a one-second sine tone under <root>/<hive>_2020/,
// so the label token derives from the directory name
func writeHiveWAV(t *testing.T, root, hive, name string, sampleRate int, freq float64) string {
	t.Helper()

	dir := filepath.Join(root, hive+"_2020")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	require.NoError(t, err)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, sampleRate),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = int(0.5 * 32767.0 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	return path
}

// hiveManifest writes n recordings for one hive and returns their paths
func hiveManifest(t *testing.T, root, hive string, n, sampleRate int, freq float64) []string {
	t.Helper()

	files := make([]string, n)
	for i := 0; i < n; i++ {
		files[i] = writeHiveWAV(t, root, hive, fmt.Sprintf("rec-%03d.wav", i), sampleRate, freq)
	}
	return files
}

var testLabels = sound.NewLabelSet([]string{"hiveA", "hiveB"})

// stubDataset is an in-memory Dataset for loader and composition tests
type stubDataset struct {
	n int
}

func (s stubDataset) Len() int { return s.n }

func (s stubDataset) Get(i int) (Sample, error) {
	return Sample{Feature: NewFeature([]float64{float64(i)}, 1, 1), Label: i}, nil
}

func (s stubDataset) Params() map[string]any {
	return map[string]any{"kind": "stub"}
}

// featureBounds returns the minimum and maximum of a feature's data
func featureBounds(f Feature) (float64, float64) {
	lo, hi := f.Data[0], f.Data[0]
	for _, v := range f.Data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
