// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers and synthetic track geometry
// so the stage packages test against the same shapes.
package testutil

import (
	"math"
	"testing"

	"github.com/banshee-data/trackgeo/internal/track"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertPathsNear fails the test unless got has the same length as want and
// every point lies within tol of its counterpart.
func AssertPathsNear(t testing.TB, want, got track.Path, tol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("path length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if d := track.Distance(want[i], got[i]); d > tol {
			t.Errorf("point %d = %+v, want %+v (off by %g)", i, got[i], want[i], d)
		}
	}
}

// Arc returns n points on a circle of the given radius centred on the
// origin, from angle start to end inclusive, all at height z.
func Arc(radius, start, end float64, n int, z float64) track.Path {
	out := make(track.Path, n)
	step := 0.0
	if n > 1 {
		step = (end - start) / float64(n-1)
	}
	for i := range out {
		a := start + float64(i)*step
		out[i] = track.Point{X: radius * math.Cos(a), Y: radius * math.Sin(a), Z: z}
	}
	return out
}

// Circle returns n points evenly spaced around a full circle without
// repeating the first point.
func Circle(radius float64, n int, z float64) track.Path {
	out := make(track.Path, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = track.Point{X: radius * math.Cos(a), Y: radius * math.Sin(a), Z: z}
	}
	return out
}

// Line returns n evenly spaced points from a to b inclusive.
func Line(a, b track.Point, n int) track.Path {
	out := make(track.Path, n)
	for i := range out {
		f := 0.0
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		out[i] = track.Point{
			X: a.X + f*(b.X-a.X),
			Y: a.Y + f*(b.Y-a.Y),
			Z: a.Z + f*(b.Z-a.Z),
		}
	}
	return out
}
