// Package centerline pairs the outside boundary of a track with its inside
// boundary and derives the midpoint centerline and bank angle of each pair.
package centerline

import (
	"fmt"
	"math"

	"github.com/banshee-data/trackgeo/internal/track"
	"github.com/banshee-data/trackgeo/internal/track/smooth"
)

// DefaultWindow is the rolling-average window applied to matched pairs.
const DefaultWindow = 3

// AngleRange bounds computed bank angles, in radians.
type AngleRange struct {
	Min float64
	Max float64
}

// Options controls Compute.
type Options struct {
	// Window is the rolling-average window applied to the outside boundary
	// and its matched inside points before they are combined. Values of 0
	// or 1 disable smoothing.
	Window int

	// Clamp, when set, limits bank angles to [Min, Max] before Negate.
	Clamp *AngleRange

	// Negate flips the sign of every bank angle for tracks that bank the
	// other way.
	Negate bool

	// Strategy selects the nearest-point search. Nil means BruteForce.
	Strategy Strategy
}

// Result holds the aligned outputs of Compute. After smoothing, Outside,
// Matched, Center and Bank all have len(outside)-Window+1 entries;
// MatchedIndex always has one entry per raw outside point.
type Result struct {
	Outside      track.Path
	Matched      track.Path
	Center       track.Path
	Bank         []float64
	MatchedIndex []int
}

// Match returns, for every outside point, the index of its nearest inside
// point. Several outside points may share one inside point.
func Match(inside, outside track.Path, s Strategy) ([]int, error) {
	if len(inside) == 0 || len(outside) == 0 {
		return nil, fmt.Errorf("centerline: %w: inside=%d outside=%d", track.ErrEmptyBoundary, len(inside), len(outside))
	}
	if s == nil {
		s = BruteForce{}
	}
	idx := s.Build(inside)
	out := make([]int, len(outside))
	for i, q := range outside {
		out[i] = idx.Nearest(q)
	}
	return out, nil
}

// BankAngle returns the angle above horizontal of the line from inner to
// outer: positive when outer sits higher than inner.
func BankAngle(outer, inner track.Point) float64 {
	horizontal := math.Hypot(outer.X-inner.X, outer.Y-inner.Y)
	return math.Atan2(outer.Z-inner.Z, horizontal)
}

// Compute builds the centerline between the two boundaries. The boundaries
// may differ in length; each outside point is matched independently.
func Compute(inside, outside track.Path, opts Options) (*Result, error) {
	if opts.Clamp != nil && opts.Clamp.Min > opts.Clamp.Max {
		return nil, fmt.Errorf("centerline: %w: clamp min %v above max %v", track.ErrInvalidParameter, opts.Clamp.Min, opts.Clamp.Max)
	}

	matchIdx, err := Match(inside, outside, opts.Strategy)
	if err != nil {
		return nil, err
	}

	outer := outside.Clone()
	inner := inside.Subset(matchIdx)
	if opts.Window > 1 {
		if outer, err = smooth.RollingAveragePath(outer, opts.Window); err != nil {
			return nil, fmt.Errorf("centerline: outside boundary: %w", err)
		}
		if inner, err = smooth.RollingAveragePath(inner, opts.Window); err != nil {
			return nil, fmt.Errorf("centerline: matched boundary: %w", err)
		}
	}

	res := &Result{
		Outside:      outer,
		Matched:      inner,
		Center:       make(track.Path, len(outer)),
		Bank:         make([]float64, len(outer)),
		MatchedIndex: matchIdx,
	}
	for i := range outer {
		o, m := outer[i], inner[i]
		res.Center[i] = track.Point{X: (o.X + m.X) / 2, Y: (o.Y + m.Y) / 2, Z: (o.Z + m.Z) / 2}

		a := BankAngle(o, m)
		if opts.Clamp != nil {
			a = math.Max(opts.Clamp.Min, math.Min(opts.Clamp.Max, a))
		}
		if opts.Negate {
			a = -a
		}
		res.Bank[i] = a
	}
	return res, nil
}
