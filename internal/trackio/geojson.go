package trackio

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/banshee-data/trackgeo/internal/geo"
	"github.com/banshee-data/trackgeo/internal/track"
)

// StationsGeoJSON converts stations to a FeatureCollection: one LineString
// for the whole centerline followed by one Point per station carrying its
// index, distance, height and bank angle.
func StationsGeoJSON(stations []track.Station, o geo.Origin) *geojson.FeatureCollection {
	frame := geo.NewFrame(o)
	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, len(stations))
	points := make([]*geojson.Feature, len(stations))
	for i, s := range stations {
		lla := frame.ToGeodetic(s.Position)
		pt := orb.Point{lla.Lon, lla.Lat}
		line[i] = pt

		f := geojson.NewFeature(pt)
		f.Properties["station"] = i
		f.Properties["distance"] = s.Distance
		f.Properties["altitude"] = lla.Alt
		f.Properties["bank_angle"] = s.BankAngle
		points[i] = f
	}

	centre := geojson.NewFeature(line)
	centre.Properties["name"] = "centerline"
	centre.Properties["stations"] = len(stations)
	fc.Append(centre)
	for _, f := range points {
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON encodes StationsGeoJSON to w.
func WriteGeoJSON(w io.Writer, stations []track.Station, o geo.Origin) error {
	data, err := StationsGeoJSON(stations, o).MarshalJSON()
	if err != nil {
		return fmt.Errorf("trackio: encoding geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}
