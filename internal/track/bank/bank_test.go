package bank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackgeo/internal/track"
)

func TestInterpolator_ExactAtSamples(t *testing.T) {
	samples := []track.BankSample{
		{Abscissa: 0, Angle: 0.1},
		{Abscissa: 37, Angle: 0.2345},
		{Abscissa: 120, Angle: -0.05},
		{Abscissa: 399, Angle: 0.3},
	}
	it, err := NewInterpolator(samples)
	require.NoError(t, err)
	for _, s := range samples {
		assert.Equal(t, s.Angle, it.Predict(s.Abscissa), "abscissa %v", s.Abscissa)
	}
}

func TestInterpolator_LinearBetweenSamples(t *testing.T) {
	it, err := NewInterpolator([]track.BankSample{{Abscissa: 10, Angle: 1}, {Abscissa: 20, Angle: 3}})
	require.NoError(t, err)
	assert.InDelta(t, 2, it.Predict(15), 1e-12)
	assert.InDelta(t, 1.2, it.Predict(11), 1e-12)
}

func TestInterpolator_ExtrapolatesAlongEdgeSlope(t *testing.T) {
	it, err := NewInterpolator([]track.BankSample{
		{Abscissa: 10, Angle: 1},
		{Abscissa: 20, Angle: 2},
		{Abscissa: 30, Angle: 0},
	})
	require.NoError(t, err)

	tests := []struct {
		x, want float64
	}{
		{0, 0},    // left slope +0.1
		{5, 0.5},  // left slope +0.1
		{35, -1},  // right slope -0.2
		{40, -2},  // right slope -0.2
		{25, 1.0}, // interior
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, it.Predict(tt.x), 1e-12, "x=%v", tt.x)
	}
}

func TestInterpolator_SortsUnorderedSamples(t *testing.T) {
	it, err := NewInterpolator([]track.BankSample{{Abscissa: 8, Angle: 4}, {Abscissa: 0, Angle: 0}, {Abscissa: 4, Angle: 2}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5}, it.Dense(10), 1e-12)
}

func TestInterpolator_Errors(t *testing.T) {
	_, err := NewInterpolator(nil)
	assert.True(t, errors.Is(err, track.ErrInsufficientSamples))

	_, err = NewInterpolator([]track.BankSample{{Abscissa: 1, Angle: 1}})
	assert.True(t, errors.Is(err, track.ErrInsufficientSamples))

	_, err = NewInterpolator([]track.BankSample{{Abscissa: 1, Angle: 1}, {Abscissa: 1, Angle: 2}})
	assert.True(t, errors.Is(err, track.ErrDegenerateInput))
}

func TestInterpolate(t *testing.T) {
	src := Static{{Abscissa: 0, Angle: 0}, {Abscissa: 2, Angle: 0.2}}
	got, err := Interpolate(src, 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.1, 0.2, 0.3}, got, 1e-12)

	_, err = Interpolate(Static{{Abscissa: 0, Angle: 0}}, 4)
	assert.True(t, errors.Is(err, track.ErrInsufficientSamples))

	_, err = Interpolate(failingSource{}, 4)
	assert.Error(t, err)
}

type failingSource struct{}

func (failingSource) Samples() ([]track.BankSample, error) {
	return nil, errors.New("keyboard unplugged")
}

func TestStatic_ReturnsCopy(t *testing.T) {
	src := Static{{Abscissa: 1, Angle: 2}}
	got, err := src.Samples()
	require.NoError(t, err)
	got[0].Angle = 99
	assert.Equal(t, 2.0, src[0].Angle)
}

func TestCandidateAbscissas(t *testing.T) {
	tests := []struct {
		name     string
		m, count int
		want     []int
	}{
		{"five of eleven", 11, 5, []int{0, 2, 5, 7, 10}},
		{"truncates", 400, 4, []int{0, 133, 266, 399}},
		{"more candidates than stations", 3, 10, []int{0, 1, 2}},
		{"single", 50, 1, []int{0}},
		{"empty domain", 0, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CandidateAbscissas(tt.m, tt.count))
		})
	}

	got := CandidateAbscissas(400, DefaultCandidates)
	require.Len(t, got, DefaultCandidates)
	assert.Equal(t, 0, got[0])
	assert.Equal(t, 399, got[len(got)-1])
}
