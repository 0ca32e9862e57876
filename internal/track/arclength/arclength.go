// Package arclength measures distance along a path and transplants
// distance-keyed tables onto path stations.
package arclength

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/trackgeo/internal/track"
)

// Cumulative returns the running Euclidean length of p. Entry 0 is 0 and the
// sequence never decreases.
func Cumulative(p track.Path) ([]float64, error) {
	return cumulative(p, track.Distance)
}

// Planar is Cumulative measured on X and Y only, which is how surveyed
// banking tables are keyed.
func Planar(p track.Path) ([]float64, error) {
	return cumulative(p, track.PlanarDistance)
}

func cumulative(p track.Path, dist func(a, b track.Point) float64) ([]float64, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("arclength: %w", track.ErrEmptyBoundary)
	}
	steps := make([]float64, len(p))
	for i := 1; i < len(p); i++ {
		steps[i] = dist(p[i-1], p[i])
	}
	out := floats.CumSum(make([]float64, len(p)), steps)
	if len(p) > 1 && out[len(out)-1] == 0 {
		return nil, fmt.Errorf("arclength: %w: %d points with zero total length", track.ErrDegenerateInput, len(p))
	}
	return out, nil
}

// MapByNearestDistance looks up, for every target distance, the table entry
// whose distance is closest and returns its value. Ties go to the earlier
// table entry. The table need not be sorted.
func MapByNearestDistance(target, tableDist, tableVals []float64) ([]float64, error) {
	if len(tableDist) != len(tableVals) {
		return nil, fmt.Errorf("arclength: %w: table distances=%d values=%d", track.ErrShapeMismatch, len(tableDist), len(tableVals))
	}
	if len(tableDist) == 0 {
		return nil, fmt.Errorf("arclength: %w: empty table", track.ErrInsufficientSamples)
	}
	out := make([]float64, len(target))
	for i, d := range target {
		out[i] = tableVals[floats.NearestIdx(tableDist, d)]
	}
	return out, nil
}
