// Package resample fits an interpolating space curve through an ordered
// point sequence and evaluates it at evenly spaced curve parameters.
package resample

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/banshee-data/trackgeo/internal/track"
)

// DefaultCount is the number of samples boundaries are resampled to.
const DefaultCount = 400

// MinDistinctPoints is the fewest distinct points a cubic fit accepts.
const MinDistinctPoints = 4

// Resampler fits a curve through p and returns n points evenly spaced in
// curve parameter, including both endpoints.
type Resampler interface {
	Resample(p track.Path, n int) (track.Path, error)
}

// SplineKind selects the 1-D interpolant fitted to each coordinate.
type SplineKind string

const (
	NotAKnot SplineKind = "not-a-knot"
	Natural  SplineKind = "natural"
	Akima    SplineKind = "akima"
)

// ValidKinds lists the accepted spline kinds.
var ValidKinds = []SplineKind{NotAKnot, Natural, Akima}

// ParseSplineKind maps a config string to a SplineKind. The empty string
// selects NotAKnot.
func ParseSplineKind(s string) (SplineKind, error) {
	if s == "" {
		return NotAKnot, nil
	}
	for _, k := range ValidKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("resample: %w: unknown spline kind %q", track.ErrInvalidParameter, s)
}

func (k SplineKind) newPredictor() interp.FittablePredictor {
	switch k {
	case Natural:
		return &interp.NaturalCubic{}
	case Akima:
		return &interp.AkimaSpline{}
	default:
		return &interp.NotAKnotCubic{}
	}
}

// Spline resamples with an exact-interpolating cubic per coordinate,
// parameterised by cumulative chord length normalised to [0, 1]. The fitted
// curve passes through every input point.
type Spline struct {
	Kind SplineKind
}

// Resample implements Resampler.
func (s Spline) Resample(p track.Path, n int) (track.Path, error) {
	if n < 2 {
		return nil, fmt.Errorf("resample: %w: count %d must be at least 2", track.ErrInvalidParameter, n)
	}
	t, err := ChordParameter(p)
	if err != nil {
		return nil, err
	}

	xs, ys, zs := p.Channels()
	at := floats.Span(make([]float64, n), 0, 1)
	at[n-1] = 1

	out := make([][]float64, 3)
	for c, ch := range [][]float64{xs, ys, zs} {
		f := s.Kind.newPredictor()
		if err := f.Fit(t, ch); err != nil {
			return nil, fmt.Errorf("resample: %w: %v", track.ErrDegenerateInput, err)
		}
		out[c] = make([]float64, n)
		for i, u := range at {
			out[c][i] = f.Predict(u)
		}
	}
	return track.FromChannels(out[0], out[1], out[2])
}

// ChordParameter assigns each point of p its cumulative chord length divided
// by the total, giving a strictly increasing parameter from 0 to 1. It fails
// when p has fewer than MinDistinctPoints distinct points or when two
// consecutive points coincide.
func ChordParameter(p track.Path) ([]float64, error) {
	distinct := make(map[track.Point]struct{}, len(p))
	for _, pt := range p {
		distinct[pt] = struct{}{}
	}
	if len(distinct) < MinDistinctPoints {
		return nil, fmt.Errorf("resample: %w: %d distinct points, need %d", track.ErrDegenerateInput, len(distinct), MinDistinctPoints)
	}

	chords := make([]float64, len(p))
	for i := 1; i < len(p); i++ {
		d := track.Distance(p[i-1], p[i])
		if d == 0 {
			return nil, fmt.Errorf("resample: %w: points %d and %d coincide", track.ErrDegenerateInput, i-1, i)
		}
		chords[i] = d
	}
	t := floats.CumSum(make([]float64, len(p)), chords)
	total := t[len(t)-1]
	for i := range t {
		t[i] /= total
	}

	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return nil, fmt.Errorf("resample: %w: chord %d vanishes after normalisation", track.ErrDegenerateInput, i)
		}
	}
	return t, nil
}
