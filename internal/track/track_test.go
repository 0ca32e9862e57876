package track

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromChannels(t *testing.T) {
	p, err := FromChannels([]float64{1, 2}, []float64{3, 4}, nil)
	require.NoError(t, err)
	assert.Equal(t, Path{{X: 1, Y: 3}, {X: 2, Y: 4}}, p)

	p, err = FromChannels([]float64{1}, []float64{2}, []float64{3})
	require.NoError(t, err)
	assert.Equal(t, Path{{X: 1, Y: 2, Z: 3}}, p)

	_, err = FromChannels([]float64{1, 2}, []float64{3}, nil)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = FromChannels([]float64{1}, []float64{3}, []float64{})
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestChannelsRoundTrip(t *testing.T) {
	in := Path{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}
	xs, ys, zs := in.Channels()
	out, err := FromChannels(xs, ys, zs)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCloneIsIndependent(t *testing.T) {
	in := Path{{X: 1}, {X: 2}}
	c := in.Clone()
	c[0].X = 99
	assert.Equal(t, 1.0, in[0].X)
	assert.Nil(t, Path(nil).Clone())
}

func TestSubset(t *testing.T) {
	in := Path{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	assert.Equal(t, Path{{X: 0}, {X: 2}, {X: 3}}, in.Subset([]int{0, 2, 3}))
}

func TestDistance(t *testing.T) {
	a := Point{X: 0, Y: 0, Z: 0}
	b := Point{X: 3, Y: 4, Z: 12}
	if d := Distance(a, b); math.Abs(d-13) > 1e-12 {
		t.Errorf("Distance = %f, want 13", d)
	}
	if d := PlanarDistance(a, b); math.Abs(d-5) > 1e-12 {
		t.Errorf("PlanarDistance = %f, want 5", d)
	}
}

func TestNewStationsTruncatesToShortest(t *testing.T) {
	center := Path{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	dist := []float64{0, 1, 2}
	bank := []float64{0.1, 0.2, 0.3, 0.4, 0.5}

	st := NewStations(center, dist, bank)
	require.Len(t, st, 3)
	assert.Equal(t, Station{Position: Point{X: 2}, Distance: 2, BankAngle: 0.3}, st[2])
	assert.Equal(t, center[:3], StationPositions(st))
}
