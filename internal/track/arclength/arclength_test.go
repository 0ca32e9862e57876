package arclength

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackgeo/internal/testutil"
	"github.com/banshee-data/trackgeo/internal/track"
)

func TestCumulative(t *testing.T) {
	p := track.Path{{X: 0}, {X: 3, Y: 4}, {X: 3, Y: 4, Z: 12}, {X: 3, Y: 4, Z: 12}}
	got, err := Cumulative(p)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 5, 17, 17}, got, 1e-12)

	planar, err := Planar(p)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 5, 5, 5}, planar, 1e-12)
}

func TestCumulative_NonDecreasingFromZero(t *testing.T) {
	p := testutil.Arc(25, 0, 2*math.Pi, 500, 3)
	got, err := Cumulative(p)
	require.NoError(t, err)
	require.Len(t, got, len(p))
	assert.Equal(t, 0.0, got[0])
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("arc length decreased at %d: %f < %f", i, got[i], got[i-1])
		}
	}
	assert.InDelta(t, 2*math.Pi*25, got[len(got)-1], 0.01)
}

func TestCumulative_Errors(t *testing.T) {
	_, err := Cumulative(nil)
	assert.True(t, errors.Is(err, track.ErrEmptyBoundary))

	_, err = Cumulative(track.Path{{X: 1}, {X: 1}, {X: 1}})
	assert.True(t, errors.Is(err, track.ErrDegenerateInput))

	// A vertical-only path has planar length zero.
	_, err = Planar(track.Path{{Z: 0}, {Z: 5}})
	assert.True(t, errors.Is(err, track.ErrDegenerateInput))

	single, err := Cumulative(track.Path{{X: 4}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, single)
}

func TestMapByNearestDistance(t *testing.T) {
	tableDist := []float64{0, 10, 20, 30}
	tableVals := []float64{0.1, 0.2, 0.3, 0.4}

	tests := []struct {
		name   string
		target []float64
		want   []float64
	}{
		{"exact hits", []float64{0, 20}, []float64{0.1, 0.3}},
		{"nearest", []float64{4, 6, 26}, []float64{0.1, 0.2, 0.4}},
		{"tie takes first", []float64{5, 15}, []float64{0.1, 0.2}},
		{"beyond table", []float64{-50, 400}, []float64{0.1, 0.4}},
		{"empty target", nil, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapByNearestDistance(tt.target, tableDist, tableVals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapByNearestDistance_Unsorted(t *testing.T) {
	got, err := MapByNearestDistance([]float64{19}, []float64{30, 20, 0}, []float64{3, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, got)
}

func TestMapByNearestDistance_Errors(t *testing.T) {
	_, err := MapByNearestDistance([]float64{1}, []float64{1, 2}, []float64{1})
	assert.True(t, errors.Is(err, track.ErrShapeMismatch))

	_, err = MapByNearestDistance([]float64{1}, nil, nil)
	assert.True(t, errors.Is(err, track.ErrInsufficientSamples))
}
