// Package bank expands a handful of bank-angle samples into one angle per
// centerline station.
package bank

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/banshee-data/trackgeo/internal/track"
)

// DefaultCandidates is how many stations are offered for manual entry.
const DefaultCandidates = 100

// Source supplies sparse bank-angle samples. Implementations include fixed
// slices, files and interactive entry.
type Source interface {
	Samples() ([]track.BankSample, error)
}

// Static is a Source backed by a fixed slice.
type Static []track.BankSample

// Samples implements Source.
func (s Static) Samples() ([]track.BankSample, error) {
	out := make([]track.BankSample, len(s))
	copy(out, s)
	return out, nil
}

// Interpolator is a piecewise-linear fit through bank samples that
// extrapolates past either end along the slope of the edge segment.
type Interpolator struct {
	xs, ys []float64
	pl     interp.PiecewiseLinear
}

// NewInterpolator sorts samples by abscissa and fits them. At least two
// samples with distinct abscissas are required.
func NewInterpolator(samples []track.BankSample) (*Interpolator, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("bank: %w: got %d, need 2", track.ErrInsufficientSamples, len(samples))
	}
	sorted := make([]track.BankSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Abscissa < sorted[j].Abscissa })

	it := &Interpolator{
		xs: make([]float64, len(sorted)),
		ys: make([]float64, len(sorted)),
	}
	for i, s := range sorted {
		if math.IsNaN(s.Abscissa) || math.IsNaN(s.Angle) {
			return nil, fmt.Errorf("bank: %w: sample %d is NaN", track.ErrDegenerateInput, i)
		}
		if i > 0 && s.Abscissa == sorted[i-1].Abscissa {
			return nil, fmt.Errorf("bank: %w: duplicate abscissa %v", track.ErrDegenerateInput, s.Abscissa)
		}
		it.xs[i], it.ys[i] = s.Abscissa, s.Angle
	}
	if err := it.pl.Fit(it.xs, it.ys); err != nil {
		return nil, fmt.Errorf("bank: %w: %v", track.ErrDegenerateInput, err)
	}
	return it, nil
}

// Predict returns the interpolated angle at x. Querying a sample's own
// abscissa returns its angle exactly.
func (it *Interpolator) Predict(x float64) float64 {
	n := len(it.xs)
	switch {
	case x < it.xs[0]:
		return it.ys[0] + slope(it.xs[0], it.ys[0], it.xs[1], it.ys[1])*(x-it.xs[0])
	case x > it.xs[n-1]:
		return it.ys[n-1] + slope(it.xs[n-2], it.ys[n-2], it.xs[n-1], it.ys[n-1])*(x-it.xs[n-1])
	}
	return it.pl.Predict(x)
}

func slope(x0, y0, x1, y1 float64) float64 {
	return (y1 - y0) / (x1 - x0)
}

// Dense returns predictions at stations 0 through m-1.
func (it *Interpolator) Dense(m int) []float64 {
	if m <= 0 {
		return nil
	}
	out := make([]float64, m)
	for i := range out {
		out[i] = it.Predict(float64(i))
	}
	return out
}

// Interpolate pulls samples from src and expands them over m stations.
func Interpolate(src Source, m int) ([]float64, error) {
	samples, err := src.Samples()
	if err != nil {
		return nil, fmt.Errorf("bank: reading samples: %w", err)
	}
	it, err := NewInterpolator(samples)
	if err != nil {
		return nil, err
	}
	return it.Dense(m), nil
}

// CandidateAbscissas returns up to count station indices evenly spread over
// [0, m-1], truncated to integers. Repeats caused by count exceeding m are
// dropped so the result is strictly increasing.
func CandidateAbscissas(m, count int) []int {
	if m <= 0 || count <= 0 {
		return nil
	}
	if count == 1 || m == 1 {
		return []int{0}
	}
	span := floats.Span(make([]float64, count), 0, float64(m-1))
	span[count-1] = float64(m - 1)
	out := make([]int, 0, count)
	for _, v := range span {
		i := int(v)
		if i > m-1 {
			i = m - 1
		}
		if len(out) > 0 && out[len(out)-1] == i {
			continue
		}
		out = append(out, i)
	}
	return out
}
