package bioacoustics

import (
	"fmt"

	"github.com/smartula/hivesound/algorithms/common"
)

// ACI computes the Acoustic Complexity Index (Pieretti, Farina, Morri 2011),
// a bioacoustic summary of how much spectral intensity fluctuates over time.
// Steady drones score low; modulated activity such as bee buzzing variation
// scores high.
//
// The spectrogram is divided along the time axis into clusters of
// clusterFrames frames. Within a cluster, each frequency bin contributes the
// sum of absolute intensity differences between adjacent frames divided by
// the bin's total intensity; the cluster's ACI is the sum over bins.
type ACI struct {
	clusterFrames int
}

// NewACI creates an ACI calculator. clusterFrames is the number of
// spectrogram frames per temporal cluster; values < 1 put the whole
// spectrogram in a single cluster.
func NewACI(clusterFrames int) *ACI {
	return &ACI{clusterFrames: clusterFrames}
}

// ACIResult holds per-cluster index values and their total
type ACIResult struct {
	PerCluster []float64 `json:"per_cluster"` // ACI of each temporal cluster
	Total      float64   `json:"total"`       // Sum over clusters
}

// Compute calculates the ACI of a Time x Frequency magnitude matrix
func (a *ACI) Compute(magnitude [][]float64) (*ACIResult, error) {
	frames := len(magnitude)
	if frames < 2 {
		return nil, fmt.Errorf("need at least 2 spectrogram frames, got %d", frames)
	}

	clusterFrames := a.clusterFrames
	if clusterFrames < 1 || clusterFrames > frames {
		clusterFrames = frames
	}

	bins := len(magnitude[0])
	numClusters := frames / clusterFrames

	perCluster := make([]float64, 0, numClusters)

	for c := 0; c < numClusters; c++ {
		start := c * clusterFrames
		end := start + clusterFrames

		aci := 0.0
		for k := 0; k < bins; k++ {
			diffSum := 0.0
			intensity := make([]float64, 0, clusterFrames)

			for t := start; t < end; t++ {
				intensity = append(intensity, magnitude[t][k])
				if t > start {
					d := magnitude[t][k] - magnitude[t-1][k]
					if d < 0 {
						d = -d
					}
					diffSum += d
				}
			}

			total := common.Sum(intensity)
			if total > 0 {
				aci += diffSum / total
			}
		}

		perCluster = append(perCluster, aci)
	}

	if len(perCluster) == 0 {
		return nil, fmt.Errorf("cluster length %d leaves no complete cluster in %d frames", clusterFrames, frames)
	}

	return &ACIResult{
		PerCluster: perCluster,
		Total:      common.Sum(perCluster),
	}, nil
}
