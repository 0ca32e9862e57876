// Package track holds the data model shared by the centerline reconstruction
// stages: ordered point sequences, centerline stations and bank-angle samples.
//
// Every stage in the sub-packages consumes a Path and returns a new one. No
// stage mutates its input, so stages compose freely and runs are repeatable.
package track

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a position in a metric or geodetic frame. Two-dimensional data
// carries Z == 0.
type Point = r3.Vec

// Path is an ordered point sequence. Index order is traversal order along a
// physical boundary, so consecutive points are assumed to be spatially
// adjacent.
type Path []Point

// Station is one sample of the reconstructed centerline.
type Station struct {
	Position  Point
	Distance  float64 // cumulative arc length from the first station
	BankAngle float64 // radians
}

// BankSample is a sparse (abscissa, angle) pair supplied from a table or
// entered by hand. Angle is in radians.
type BankSample struct {
	Abscissa float64
	Angle    float64
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// PlanarDistance returns the distance between a and b ignoring Z.
func PlanarDistance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Clone returns a copy of p that shares no storage with it.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Channels splits p into its X, Y and Z channels.
func (p Path) Channels() (xs, ys, zs []float64) {
	xs = make([]float64, len(p))
	ys = make([]float64, len(p))
	zs = make([]float64, len(p))
	for i, pt := range p {
		xs[i], ys[i], zs[i] = pt.X, pt.Y, pt.Z
	}
	return xs, ys, zs
}

// Subset returns the points of p at the given indices, in index order.
func (p Path) Subset(indices []int) Path {
	out := make(Path, len(indices))
	for i, idx := range indices {
		out[i] = p[idx]
	}
	return out
}

// FromChannels zips separate coordinate channels into a Path. zs may be nil
// for planar data; otherwise every channel must have the same length.
func FromChannels(xs, ys, zs []float64) (Path, error) {
	if len(xs) != len(ys) || (zs != nil && len(zs) != len(xs)) {
		return nil, fmt.Errorf("%w: channel lengths x=%d y=%d z=%d", ErrShapeMismatch, len(xs), len(ys), len(zs))
	}
	out := make(Path, len(xs))
	for i := range xs {
		out[i] = Point{X: xs[i], Y: ys[i]}
		if zs != nil {
			out[i].Z = zs[i]
		}
	}
	return out, nil
}

// NewStations combines centerline positions with their arc-length distances
// and bank angles. Inputs produced by different stages may differ in length
// (rolling-average window loss, table truncation); the result is truncated
// to the shortest of the three.
func NewStations(center Path, distance, bank []float64) []Station {
	n := min(len(center), len(distance), len(bank))
	out := make([]Station, n)
	for i := 0; i < n; i++ {
		out[i] = Station{Position: center[i], Distance: distance[i], BankAngle: bank[i]}
	}
	return out
}

// StationPositions returns the positions of stations as a Path.
func StationPositions(stations []Station) Path {
	out := make(Path, len(stations))
	for i, s := range stations {
		out[i] = s.Position
	}
	return out
}
