// Package sound loads hive recordings from WAV files and derives their
// class labels from the directory layout.
package sound

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/smartula/hivesound/logging"
)

// ErrRead marks a recording that is missing, unreadable, or not a PCM WAV
// file. Match with errors.Is.
var ErrRead = errors.New("sound: read failed")

// Clip holds one decoded recording
type Clip struct {
	Path       string    `json:"path"`
	Samples    []float64 `json:"-"`           // Channel-0 samples scaled to [-1, 1]
	SampleRate int       `json:"sample_rate"` // Sample rate in Hz
	BitDepth   int       `json:"bit_depth"`   // Source PCM bit depth
}

// pcmFullScale returns the positive full-scale value for a signed integer
// PCM bit depth. Depths outside 1..32 are rejected; shifting past 32 bits
// would overflow the scale.
func pcmFullScale(bitDepth int) (float64, error) {
	if bitDepth <= 0 || bitDepth > 32 {
		return 0, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
	return float64(int64(1) << (bitDepth - 1)), nil
}

// Read decodes the WAV file at path. Only the first channel of
// multi-channel recordings is kept, and integer PCM is divided by the full
// scale of its bit depth (2^31 for signed 32-bit) so samples land in a real
// amplitude range.
func Read(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrRead, path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a valid WAV file", ErrRead, path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrRead, path, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("%w: %s contains no samples", ErrRead, path)
	}

	bitDepth := int(decoder.BitDepth)
	fullScale, err := pcmFullScale(bitDepth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	// Channel 0 only; interleaved frames
	numFrames := len(buf.Data) / channels
	samples := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		samples[i] = float64(buf.Data[i*channels]) / fullScale
	}

	logging.Debug("decoded recording", logging.Fields{
		"path":        path,
		"sample_rate": buf.Format.SampleRate,
		"channels":    channels,
		"bit_depth":   bitDepth,
		"samples":     numFrames,
	})

	return &Clip{
		Path:       path,
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		BitDepth:   bitDepth,
	}, nil
}
