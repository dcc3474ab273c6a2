package common

import (
	"math"
)

// MinMaxScale rescales values to [0, 1] in place using the slice's own
// minimum and maximum. The scaling spans the entire slice, so a flattened
// 2-D feature is normalized over the whole array rather than per row.
//
// A constant input has no range to scale; it becomes all zeros rather than
// dividing by zero.
func MinMaxScale(data []float64) {
	if len(data) == 0 {
		return
	}

	lo, hi := MinMax(data)

	if math.Abs(hi-lo) < 1e-10 {
		for i := range data {
			data[i] = 0.0
		}
		return
	}

	span := hi - lo
	for i := range data {
		data[i] = (data[i] - lo) / span
	}
}
