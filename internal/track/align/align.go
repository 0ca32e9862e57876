// Package align reconciles paths produced by separate runs: snapping points
// onto a reference polyline and translating a path onto a reference's
// extent.
package align

import (
	"fmt"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/trackgeo/internal/track"
)

// ProjectOntoPath moves each query point to the closest position on the
// reference polyline, working in X and Y. Each segment is tried in order and
// the projection parameter is clamped to the segment, so points beyond an
// end snap to that end. The first segment reaching the minimum wins. Query
// heights are carried through unchanged.
func ProjectOntoPath(query, reference track.Path) (track.Path, error) {
	if len(reference) < 2 {
		return nil, fmt.Errorf("align: %w: reference needs at least 2 points, got %d", track.ErrDegenerateInput, len(reference))
	}
	segs := make([]segment, len(reference)-1)
	for i := range segs {
		a := r2.Vec{X: reference[i].X, Y: reference[i].Y}
		b := r2.Vec{X: reference[i+1].X, Y: reference[i+1].Y}
		d := r2.Sub(b, a)
		l2 := r2.Norm2(d)
		if l2 == 0 {
			return nil, fmt.Errorf("align: %w: reference segment %d has zero length", track.ErrDegenerateInput, i)
		}
		segs[i] = segment{a: a, d: d, l2: l2}
	}

	out := make(track.Path, len(query))
	for i, q := range query {
		p := r2.Vec{X: q.X, Y: q.Y}
		best := r2.Vec{}
		bestD := -1.0
		for _, s := range segs {
			c := s.closest(p)
			if d := r2.Norm2(r2.Sub(p, c)); bestD < 0 || d < bestD {
				best, bestD = c, d
			}
		}
		out[i] = track.Point{X: best.X, Y: best.Y, Z: q.Z}
	}
	return out, nil
}

type segment struct {
	a, d r2.Vec
	l2   float64
}

func (s segment) closest(p r2.Vec) r2.Vec {
	t := r2.Dot(r2.Sub(p, s.a), s.d) / s.l2
	t = max(0, min(1, t))
	return r2.Add(s.a, r2.Scale(t, s.d))
}

// AlignByLeftmostPoint translates moving so that its minimum X and minimum Y
// coincide with those of reference. The two minima are taken independently
// and may come from different points. Heights are unchanged.
func AlignByLeftmostPoint(reference, moving track.Path) (track.Path, error) {
	if len(reference) == 0 || len(moving) == 0 {
		return nil, fmt.Errorf("align: %w: reference=%d moving=%d", track.ErrEmptyBoundary, len(reference), len(moving))
	}
	refMin := planarBound(reference).Min
	movMin := planarBound(moving).Min
	dx, dy := movMin.X()-refMin.X(), movMin.Y()-refMin.Y()

	out := make(track.Path, len(moving))
	for i, p := range moving {
		out[i] = track.Point{X: p.X - dx, Y: p.Y - dy, Z: p.Z}
	}
	return out, nil
}

func planarBound(p track.Path) orb.Bound {
	mp := make(orb.MultiPoint, len(p))
	for i, pt := range p {
		mp[i] = orb.Point{pt.X, pt.Y}
	}
	return mp.Bound()
}
