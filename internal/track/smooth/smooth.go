// Package smooth provides the rolling-average and one-pole low-pass filters
// applied to boundary channels before and during centerline construction.
package smooth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/trackgeo/internal/track"
)

// DefaultAlpha is the low-pass factor used for surveyed heights.
const DefaultAlpha = 0.08

// RollingAverage returns the mean of every window of n consecutive samples.
// The output has len(v)-n+1 samples; edges are dropped rather than padded.
func RollingAverage(v []float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("smooth: %w: window %d must be at least 1", track.ErrInvalidParameter, n)
	}
	if n > len(v) {
		return nil, fmt.Errorf("smooth: %w: window %d longer than %d samples", track.ErrDegenerateInput, n, len(v))
	}

	out := make([]float64, len(v)-n+1)
	if n == 1 {
		copy(out, v)
		return out, nil
	}
	for i := range out {
		out[i] = floats.Sum(v[i:i+n]) / float64(n)
	}
	return out, nil
}

// RollingAveragePath applies RollingAverage with the same window to the X,
// Y and Z channels so they stay index-aligned.
func RollingAveragePath(p track.Path, n int) (track.Path, error) {
	xs, ys, zs := p.Channels()
	var err error
	if xs, err = RollingAverage(xs, n); err != nil {
		return nil, err
	}
	if ys, err = RollingAverage(ys, n); err != nil {
		return nil, err
	}
	if zs, err = RollingAverage(zs, n); err != nil {
		return nil, err
	}
	return track.FromChannels(xs, ys, zs)
}

func checkAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha > 1 {
		return fmt.Errorf("smooth: %w: alpha %v outside (0, 1]", track.ErrInvalidParameter, alpha)
	}
	return nil
}

// LowPass runs a one-pole exponential filter over v:
//
//	out[0] = v[0]
//	out[i] = alpha*v[i] + (1-alpha)*out[i-1]
func LowPass(v []float64, alpha float64) ([]float64, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	out := make([]float64, len(v))
	for i, x := range v {
		if i == 0 {
			out[i] = x
			continue
		}
		out[i] = alpha*x + (1-alpha)*out[i-1]
	}
	return out, nil
}

// LowPassDedup low-pass filters the Z channel of p and carries X and Y
// along. A sample is emitted only when its filtered height differs from the
// last emitted height by more than tolerance, which collapses runs of
// near-identical heights into their first sample. The filter state advances
// on every input sample whether or not it is emitted. A tolerance of zero
// emits on any change at all.
func LowPassDedup(p track.Path, alpha, tolerance float64) (track.Path, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("smooth: %w", track.ErrEmptyBoundary)
	}
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	if math.IsNaN(tolerance) || tolerance < 0 {
		return nil, fmt.Errorf("smooth: %w: tolerance %v must be non-negative", track.ErrInvalidParameter, tolerance)
	}

	out := track.Path{p[0]}
	state := p[0].Z
	emitted := state
	for _, pt := range p[1:] {
		state = alpha*pt.Z + (1-alpha)*state
		if math.Abs(state-emitted) > tolerance {
			out = append(out, track.Point{X: pt.X, Y: pt.Y, Z: state})
			emitted = state
		}
	}
	return out, nil
}
