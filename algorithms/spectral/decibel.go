package spectral

import (
	"math"
)

// Decibel conversion for power spectrograms, referenced to the matrix's own
// maximum so every sample is normalized to its own peak rather than a global
// reference.

const (
	// amin is the power floor applied before taking the logarithm
	amin = 1e-10

	// topDB bounds the dynamic range below the peak
	topDB = 80.0
)

// PowerToDB converts a Time x Frequency power matrix to decibels relative to
// the matrix maximum: 10*log10(power/ref), floored at amin and clipped to
// topDB below the peak. A new matrix is returned.
func PowerToDB(power [][]float64) [][]float64 {
	if len(power) == 0 {
		return [][]float64{}
	}

	ref := amin
	for _, frame := range power {
		for _, p := range frame {
			if p > ref {
				ref = p
			}
		}
	}
	logRef := 10.0 * math.Log10(ref)

	db := make([][]float64, len(power))
	peak := 0.0
	for t, frame := range power {
		db[t] = make([]float64, len(frame))
		for f, p := range frame {
			if p < amin {
				p = amin
			}
			db[t][f] = 10.0*math.Log10(p) - logRef
			if db[t][f] > peak {
				peak = db[t][f]
			}
		}
	}

	// Clip to topDB below the peak
	floor := peak - topDB
	for t := range db {
		for f := range db[t] {
			if db[t][f] < floor {
				db[t][f] = floor
			}
		}
	}

	return db
}
