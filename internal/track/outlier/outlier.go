// Package outlier drops isolated spikes from raw survey sequences.
package outlier

import (
	"fmt"
	"math"

	"github.com/banshee-data/trackgeo/internal/track"
)

// DefaultThreshold is the neighbour distance, in metres, above which an
// interior survey point is treated as a spike.
const DefaultThreshold = 100.0

// Indices returns the positions of p that survive the filter, in order.
//
// The first and last points are always kept. An interior point is kept only
// when the distance to both of its neighbours is strictly below threshold.
// Distances are Euclidean in p's own frame, so geodetic input must be
// converted to a metric frame first.
func Indices(p track.Path, threshold float64) ([]int, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("outlier: %w", track.ErrEmptyBoundary)
	}
	if math.IsNaN(threshold) || threshold <= 0 {
		return nil, fmt.Errorf("outlier: %w: threshold %v must be positive", track.ErrInvalidParameter, threshold)
	}

	keep := make([]int, 0, len(p))
	keep = append(keep, 0)
	for i := 1; i < len(p)-1; i++ {
		if track.Distance(p[i-1], p[i]) < threshold && track.Distance(p[i], p[i+1]) < threshold {
			keep = append(keep, i)
		}
	}
	if len(p) > 1 {
		keep = append(keep, len(p)-1)
	}
	return keep, nil
}

// Filter returns the retained points of p as a new path.
func Filter(p track.Path, threshold float64) (track.Path, error) {
	idx, err := Indices(p, threshold)
	if err != nil {
		return nil, err
	}
	return p.Subset(idx), nil
}
