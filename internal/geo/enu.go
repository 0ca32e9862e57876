// Package geo converts between WGS-84 geodetic coordinates and a local
// East-North-Up tangent plane anchored at a survey origin.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/trackgeo/internal/track"
)

// WGS-84 ellipsoid.
const (
	SemiMajorAxis = 6378137.0
	Flattening    = 1 / 298.257223563
)

var eccentricitySq = Flattening * (2 - Flattening)

// LLA is a geodetic position: latitude and longitude in degrees, altitude in
// metres above the ellipsoid.
type LLA struct {
	Lat float64
	Lon float64
	Alt float64
}

// Origin anchors an ENU frame. Every point converted together must share the
// same origin; mixing origins is not detected.
type Origin = LLA

// Frame is an ENU tangent plane at a fixed origin. The rotation and the
// origin's ECEF position are computed once so batches convert cheaply.
type Frame struct {
	origin Origin
	ecef0  r3.Vec
	rot    *r3.Mat // ECEF delta -> ENU
}

// NewFrame builds the tangent plane at o.
func NewFrame(o Origin) *Frame {
	phi := o.Lat * math.Pi / 180
	lam := o.Lon * math.Pi / 180
	sp, cp := math.Sincos(phi)
	sl, cl := math.Sincos(lam)

	return &Frame{
		origin: o,
		ecef0:  GeodeticToECEF(o.Lat, o.Lon, o.Alt),
		rot: r3.NewMat([]float64{
			-sl, cl, 0,
			-sp * cl, -sp * sl, cp,
			cp * cl, cp * sl, sp,
		}),
	}
}

// Origin returns the frame's anchor.
func (f *Frame) Origin() Origin { return f.origin }

// ToLocal converts a geodetic position to ENU metres.
func (f *Frame) ToLocal(p LLA) track.Point {
	d := r3.Sub(GeodeticToECEF(p.Lat, p.Lon, p.Alt), f.ecef0)
	return f.rot.MulVec(d)
}

// ToGeodetic converts an ENU offset back to a geodetic position.
func (f *Frame) ToGeodetic(p track.Point) LLA {
	e := r3.Add(f.rot.MulVecTrans(p), f.ecef0)
	lat, lon, alt := ECEFToGeodetic(e.X, e.Y, e.Z)
	return LLA{Lat: lat, Lon: lon, Alt: alt}
}

// GeodeticToECEF returns the earth-centred earth-fixed position of a
// geodetic coordinate.
func GeodeticToECEF(lat, lon, alt float64) r3.Vec {
	phi := lat * math.Pi / 180
	lam := lon * math.Pi / 180
	sp, cp := math.Sincos(phi)
	sl, cl := math.Sincos(lam)

	n := SemiMajorAxis / math.Sqrt(1-eccentricitySq*sp*sp)
	return r3.Vec{
		X: (n + alt) * cp * cl,
		Y: (n + alt) * cp * sl,
		Z: (n*(1-eccentricitySq) + alt) * sp,
	}
}

// ECEFToGeodetic inverts GeodeticToECEF. Latitude is found by fixed-point
// iteration, which converges to well below survey precision in a handful of
// steps anywhere off the polar axis.
func ECEFToGeodetic(x, y, z float64) (lat, lon, alt float64) {
	p := math.Hypot(x, y)
	lam := math.Atan2(y, x)

	phi := math.Atan2(z, p*(1-eccentricitySq))
	var n float64
	for i := 0; i < 20; i++ {
		sp := math.Sin(phi)
		n = SemiMajorAxis / math.Sqrt(1-eccentricitySq*sp*sp)
		next := math.Atan2(z+eccentricitySq*n*sp, p)
		if math.Abs(next-phi) < 1e-15 {
			phi = next
			break
		}
		phi = next
	}

	sp, cp := math.Sincos(phi)
	n = SemiMajorAxis / math.Sqrt(1-eccentricitySq*sp*sp)
	h := p*cp + z*sp - n*(1-eccentricitySq*sp*sp)

	return phi * 180 / math.Pi, lam * 180 / math.Pi, h
}

// GeodeticToLocal converts one geodetic coordinate to an ENU offset from o.
func GeodeticToLocal(lat, lon, alt float64, o Origin) (x, y, z float64) {
	p := NewFrame(o).ToLocal(LLA{Lat: lat, Lon: lon, Alt: alt})
	return p.X, p.Y, p.Z
}

// LocalToGeodetic is the inverse of GeodeticToLocal.
func LocalToGeodetic(x, y, z float64, o Origin) (lat, lon, alt float64) {
	g := NewFrame(o).ToGeodetic(track.Point{X: x, Y: y, Z: z})
	return g.Lat, g.Lon, g.Alt
}

// ToLocal converts parallel latitude, longitude and altitude arrays.
func ToLocal(lats, lons, alts []float64, o Origin) (track.Path, error) {
	if len(lats) != len(lons) || len(lats) != len(alts) {
		return nil, fmt.Errorf("geo: %w: lat=%d lon=%d alt=%d", track.ErrShapeMismatch, len(lats), len(lons), len(alts))
	}
	f := NewFrame(o)
	out := make(track.Path, len(lats))
	for i := range lats {
		out[i] = f.ToLocal(LLA{Lat: lats[i], Lon: lons[i], Alt: alts[i]})
	}
	return out, nil
}

// ToGeodetic converts parallel x, y and z arrays.
func ToGeodetic(xs, ys, zs []float64, o Origin) (lats, lons, alts []float64, err error) {
	if len(xs) != len(ys) || len(xs) != len(zs) {
		return nil, nil, nil, fmt.Errorf("geo: %w: x=%d y=%d z=%d", track.ErrShapeMismatch, len(xs), len(ys), len(zs))
	}
	f := NewFrame(o)
	lats = make([]float64, len(xs))
	lons = make([]float64, len(xs))
	alts = make([]float64, len(xs))
	for i := range xs {
		g := f.ToGeodetic(track.Point{X: xs[i], Y: ys[i], Z: zs[i]})
		lats[i], lons[i], alts[i] = g.Lat, g.Lon, g.Alt
	}
	return lats, lons, alts, nil
}

// PathToLocal converts a sequence of geodetic positions.
func PathToLocal(pts []LLA, o Origin) track.Path {
	f := NewFrame(o)
	out := make(track.Path, len(pts))
	for i, p := range pts {
		out[i] = f.ToLocal(p)
	}
	return out
}

// PathToGeodetic converts an ENU path back to geodetic positions.
func PathToGeodetic(p track.Path, o Origin) []LLA {
	f := NewFrame(o)
	out := make([]LLA, len(p))
	for i, pt := range p {
		out[i] = f.ToGeodetic(pt)
	}
	return out
}

// ParseOrigin reads "lat,lon" or "lat,lon,alt" in degrees and metres.
func ParseOrigin(s string) (Origin, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return Origin{}, fmt.Errorf("geo: %w: origin %q, want lat,lon[,alt]", track.ErrInvalidParameter, s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Origin{}, fmt.Errorf("geo: %w: origin %q: %v", track.ErrInvalidParameter, s, err)
		}
		v[i] = f
	}
	if v[0] < -90 || v[0] > 90 || v[1] < -180 || v[1] > 180 {
		return Origin{}, fmt.Errorf("geo: %w: origin %q out of range", track.ErrInvalidParameter, s)
	}
	return Origin{Lat: v[0], Lon: v[1], Alt: v[2]}, nil
}
