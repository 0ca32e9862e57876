package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackgeo/internal/track"
)

func TestGeodeticToECEF_Equator(t *testing.T) {
	e := GeodeticToECEF(0, 0, 0)
	assert.InDelta(t, SemiMajorAxis, e.X, 1e-6)
	assert.InDelta(t, 0, e.Y, 1e-6)
	assert.InDelta(t, 0, e.Z, 1e-6)

	e = GeodeticToECEF(0, 90, 100)
	assert.InDelta(t, 0, e.X, 1e-6)
	assert.InDelta(t, SemiMajorAxis+100, e.Y, 1e-6)
}

func TestECEFRoundTrip(t *testing.T) {
	tests := []LLA{
		{Lat: 0, Lon: 0, Alt: 0},
		{Lat: 47.25, Lon: 11.39, Alt: 574},
		{Lat: -33.87, Lon: 151.21, Alt: 20},
		{Lat: 64.1, Lon: -21.9, Alt: -30},
	}
	for _, p := range tests {
		e := GeodeticToECEF(p.Lat, p.Lon, p.Alt)
		lat, lon, alt := ECEFToGeodetic(e.X, e.Y, e.Z)
		if math.Abs(lat-p.Lat) > 1e-9 || math.Abs(lon-p.Lon) > 1e-9 || math.Abs(alt-p.Alt) > 1e-6 {
			t.Errorf("round trip %+v -> (%f, %f, %f)", p, lat, lon, alt)
		}
	}
}

func TestGeodeticToLocal_OriginIsZero(t *testing.T) {
	o := Origin{Lat: 47.2181, Lon: 14.7647, Alt: 677}
	x, y, z := GeodeticToLocal(o.Lat, o.Lon, o.Alt, o)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
	assert.InDelta(t, 0, z, 1e-6)
}

func TestGeodeticToLocal_Axes(t *testing.T) {
	o := Origin{}

	// Small step east along the equator.
	x, y, z := GeodeticToLocal(0, 0.001, 0, o)
	wantEast := SemiMajorAxis * math.Sin(0.001*math.Pi/180)
	assert.InDelta(t, wantEast, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
	assert.Less(t, z, 0.0) // the ellipsoid curves away below the tangent plane

	// Step north moves +y.
	x, y, _ = GeodeticToLocal(0.001, 0, 0, o)
	assert.InDelta(t, 0, x, 1e-6)
	assert.Greater(t, y, 100.0)

	// Altitude maps onto up.
	_, _, z = GeodeticToLocal(0, 0, 12.5, o)
	assert.InDelta(t, 12.5, z, 1e-9)
}

func TestLocalRoundTrip(t *testing.T) {
	o := Origin{Lat: 52.0786, Lon: -1.0169, Alt: 150}
	tests := []struct {
		name string
		lla  LLA
	}{
		{"origin", o},
		{"hundreds of metres", LLA{Lat: 52.0801, Lon: -1.0132, Alt: 153.2}},
		{"kilometres", LLA{Lat: 52.0912, Lon: -0.9871, Alt: 141}},
		{"south west", LLA{Lat: 52.0703, Lon: -1.0301, Alt: 160}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := GeodeticToLocal(tt.lla.Lat, tt.lla.Lon, tt.lla.Alt, o)
			lat, lon, alt := LocalToGeodetic(x, y, z, o)
			if math.Abs(lat-tt.lla.Lat) > 1e-6 || math.Abs(lon-tt.lla.Lon) > 1e-6 {
				t.Errorf("lat/lon = (%f, %f), want (%f, %f)", lat, lon, tt.lla.Lat, tt.lla.Lon)
			}
			if math.Abs(alt-tt.lla.Alt) > 1e-3 {
				t.Errorf("alt = %f, want %f", alt, tt.lla.Alt)
			}
		})
	}
}

func TestVectorisedConversions(t *testing.T) {
	o := Origin{Lat: 45.6156, Lon: 9.2811, Alt: 162}
	lats := []float64{45.6156, 45.6160, 45.6171}
	lons := []float64{9.2811, 9.2815, 9.2830}
	alts := []float64{162, 163, 161}

	p, err := ToLocal(lats, lons, alts, o)
	require.NoError(t, err)
	require.Len(t, p, 3)

	xs, ys, zs := p.Channels()
	gl, gn, ga, err := ToGeodetic(xs, ys, zs, o)
	require.NoError(t, err)
	for i := range lats {
		assert.InDelta(t, lats[i], gl[i], 1e-6)
		assert.InDelta(t, lons[i], gn[i], 1e-6)
		assert.InDelta(t, alts[i], ga[i], 1e-3)
	}

	pts := PathToGeodetic(p, o)
	back := PathToLocal(pts, o)
	for i := range p {
		assert.InDelta(t, 0, track.Distance(p[i], back[i]), 1e-6)
	}
}

func TestVectorisedShapeMismatch(t *testing.T) {
	_, err := ToLocal([]float64{1, 2}, []float64{1}, []float64{1, 2}, Origin{})
	assert.True(t, errors.Is(err, track.ErrShapeMismatch))

	_, _, _, err = ToGeodetic([]float64{1}, []float64{1}, nil, Origin{})
	assert.True(t, errors.Is(err, track.ErrShapeMismatch))
}

func TestParseOrigin(t *testing.T) {
	tests := []struct {
		in      string
		want    Origin
		wantErr bool
	}{
		{"38.71250474,-84.91847019", Origin{Lat: 38.71250474, Lon: -84.91847019}, false},
		{"47.21978, 14.76471, 677", Origin{Lat: 47.21978, Lon: 14.76471, Alt: 677}, false},
		{"47.2", Origin{}, true},
		{"1,2,3,4", Origin{}, true},
		{"north,14", Origin{}, true},
		{"91,0", Origin{}, true},
		{"0,-181", Origin{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrigin(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, track.ErrInvalidParameter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
