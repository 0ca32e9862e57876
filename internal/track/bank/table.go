package bank

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/trackgeo/internal/track"
)

// TableSource turns a surveyed distance/angle table into station samples.
// Each table row is placed at the station whose arc length is closest to the
// row's distance. When several rows land on one station the first row wins.
type TableSource struct {
	Stations []float64 // cumulative distance of each station
	Distance []float64
	Angle    []float64
}

// Samples implements Source.
func (t TableSource) Samples() ([]track.BankSample, error) {
	if len(t.Distance) != len(t.Angle) {
		return nil, fmt.Errorf("bank: %w: table distances=%d angles=%d", track.ErrShapeMismatch, len(t.Distance), len(t.Angle))
	}
	if len(t.Stations) == 0 {
		return nil, fmt.Errorf("bank: %w: no stations", track.ErrEmptyBoundary)
	}
	seen := make(map[int]bool, len(t.Distance))
	out := make([]track.BankSample, 0, len(t.Distance))
	for i, d := range t.Distance {
		idx := floats.NearestIdx(t.Stations, d)
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, track.BankSample{Abscissa: float64(idx), Angle: t.Angle[i]})
	}
	return out, nil
}
