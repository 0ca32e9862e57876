// Package trackio reads and writes the flat CSV tables the track tools
// exchange, plus GeoJSON and ZIP exports.
package trackio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/banshee-data/trackgeo/internal/fsutil"
	"github.com/banshee-data/trackgeo/internal/geo"
	"github.com/banshee-data/trackgeo/internal/track"
	"github.com/banshee-data/trackgeo/internal/units"
)

// ErrFormat reports a table that cannot be interpreted.
var ErrFormat = errors.New("trackio: malformed table")

// ReadOptions controls how coordinate tables are read.
type ReadOptions struct {
	// SkipRows drops this many leading rows, usually a header.
	SkipRows int

	// Dims is the number of leading numeric columns, 2 or 3. Zero takes
	// three when the first data row has at least three columns.
	Dims int
}

// ReadPath reads x, y and optionally z from the leading columns of a
// table. Any further columns are returned untouched, one slice per row.
func ReadPath(fsys fsutil.FileSystem, name string, opts ReadOptions) (track.Path, [][]string, error) {
	vals, extra, err := readNumeric(fsys, name, opts)
	if err != nil {
		return nil, nil, err
	}
	out := make(track.Path, len(vals))
	for i, v := range vals {
		out[i] = track.Point{X: v[0], Y: v[1], Z: v[2]}
	}
	return out, extra, nil
}

// ReadGeodetic reads latitude, longitude and optionally altitude columns.
func ReadGeodetic(fsys fsutil.FileSystem, name string, opts ReadOptions) ([]geo.LLA, [][]string, error) {
	vals, extra, err := readNumeric(fsys, name, opts)
	if err != nil {
		return nil, nil, err
	}
	out := make([]geo.LLA, len(vals))
	for i, v := range vals {
		out[i] = geo.LLA{Lat: v[0], Lon: v[1], Alt: v[2]}
	}
	return out, extra, nil
}

// ReadSurveyExport reads a receiver export whose header names Latitude and
// Longitude columns. Altitudes are left at zero; survey heights are not
// trusted for track geometry.
func ReadSurveyExport(fsys fsutil.FileSystem, name string) ([]geo.LLA, error) {
	cols, err := readNamed(fsys, name, "latitude", "longitude")
	if err != nil {
		return nil, err
	}
	out := make([]geo.LLA, len(cols[0]))
	for i := range out {
		out[i] = geo.LLA{Lat: cols[0][i], Lon: cols[1][i]}
	}
	return out, nil
}

// ReadBankTable reads a surveyed banking table with distance and bank_angle
// columns. Angles are converted from unit to radians.
func ReadBankTable(fsys fsutil.FileSystem, name, unit string) (dist, angle []float64, err error) {
	cols, err := readNamed(fsys, name, "distance", "bank_angle")
	if err != nil {
		return nil, nil, err
	}
	for i, a := range cols[1] {
		cols[1][i] = units.ToRadians(a, unit)
	}
	return cols[0], cols[1], nil
}

// ReadBankSamples reads sparse samples from abscissa and bank_angle
// columns. Angles are converted from unit to radians.
func ReadBankSamples(fsys fsutil.FileSystem, name, unit string) ([]track.BankSample, error) {
	cols, err := readNamed(fsys, name, "abscissa", "bank_angle")
	if err != nil {
		return nil, err
	}
	out := make([]track.BankSample, len(cols[0]))
	for i := range out {
		out[i] = track.BankSample{Abscissa: cols[0][i], Angle: units.ToRadians(cols[1][i], unit)}
	}
	return out, nil
}

// ReadENU reads a local-frame table whose header carries the frame origin
// in its last three fields as latitude, longitude and altitude.
func ReadENU(fsys fsutil.FileSystem, name string) (track.Path, geo.Origin, error) {
	recs, err := readAll(fsys, name)
	if err != nil {
		return nil, geo.Origin{}, err
	}
	if len(recs) == 0 {
		return nil, geo.Origin{}, fmt.Errorf("%w: %s: missing header", ErrFormat, name)
	}
	header := recs[0]
	if len(header) < 3 {
		return nil, geo.Origin{}, fmt.Errorf("%w: %s: header has %d fields, origin needs 3", ErrFormat, name, len(header))
	}
	o, err := parseFloats(header[len(header)-3:])
	if err != nil {
		return nil, geo.Origin{}, fmt.Errorf("%w: %s: origin: %v", ErrFormat, name, err)
	}
	vals, _, err := parseRows(name, recs[1:], 3)
	if err != nil {
		return nil, geo.Origin{}, err
	}
	out := make(track.Path, len(vals))
	for i, v := range vals {
		out[i] = track.Point{X: v[0], Y: v[1], Z: v[2]}
	}
	return out, geo.Origin{Lat: o[0], Lon: o[1], Alt: o[2]}, nil
}

func readAll(fsys fsutil.FileSystem, name string) ([][]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
	}
	return recs, nil
}

func readNumeric(fsys fsutil.FileSystem, name string, opts ReadOptions) ([][3]float64, [][]string, error) {
	if opts.SkipRows < 0 || (opts.Dims != 0 && opts.Dims != 2 && opts.Dims != 3) {
		return nil, nil, fmt.Errorf("trackio: %w: skip=%d dims=%d", track.ErrInvalidParameter, opts.SkipRows, opts.Dims)
	}
	recs, err := readAll(fsys, name)
	if err != nil {
		return nil, nil, err
	}
	if opts.SkipRows >= len(recs) {
		return nil, nil, nil
	}
	recs = recs[opts.SkipRows:]

	dims := opts.Dims
	if dims == 0 {
		dims = min(3, len(recs[0]))
	}
	return parseRows(name, recs, dims)
}

func parseRows(name string, recs [][]string, dims int) ([][3]float64, [][]string, error) {
	vals := make([][3]float64, len(recs))
	extra := make([][]string, len(recs))
	for i, rec := range recs {
		if len(rec) < max(dims, 2) {
			return nil, nil, fmt.Errorf("%w: %s row %d: %d columns, need %d", ErrFormat, name, i+1, len(rec), max(dims, 2))
		}
		v, err := parseFloats(rec[:dims])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s row %d: %v", ErrFormat, name, i+1, err)
		}
		copy(vals[i][:], v)
		extra[i] = slices.Clone(rec[dims:])
	}
	return vals, extra, nil
}

func readNamed(fsys fsutil.FileSystem, name string, cols ...string) ([][]float64, error) {
	recs, err := readAll(fsys, name)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header", ErrFormat, name)
	}
	idx := make([]int, len(cols))
	for c, want := range cols {
		idx[c] = -1
		for i, h := range recs[0] {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				idx[c] = i
				break
			}
		}
		if idx[c] < 0 {
			return nil, fmt.Errorf("%w: %s: no %q column", ErrFormat, name, want)
		}
	}

	out := make([][]float64, len(cols))
	for c := range out {
		out[c] = make([]float64, 0, len(recs)-1)
	}
	for r, rec := range recs[1:] {
		for c, i := range idx {
			if i >= len(rec) {
				return nil, fmt.Errorf("%w: %s row %d: missing %q", ErrFormat, name, r+1, cols[c])
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d: %v", ErrFormat, name, r+1, err)
			}
			out[c] = append(out[c], v)
		}
	}
	return out, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// =====================================================================
// Writers
// =====================================================================

func fixed(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
func exact(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// WritePath writes X, Y and Z with six decimals, followed by extra[i] on
// row i when extra is non-nil. A nil header writes no header row.
func WritePath(w io.Writer, header []string, p track.Path, extra [][]string) error {
	return writePath(w, header, p, extra, 3)
}

// WritePlanarPath is WritePath without the Z column.
func WritePlanarPath(w io.Writer, header []string, p track.Path, extra [][]string) error {
	return writePath(w, header, p, extra, 2)
}

func writePath(w io.Writer, header []string, p track.Path, extra [][]string, dims int) error {
	if extra != nil && len(extra) != len(p) {
		return fmt.Errorf("trackio: %w: path=%d extra=%d", track.ErrShapeMismatch, len(p), len(extra))
	}
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for i, pt := range p {
		row := []string{fixed(pt.X), fixed(pt.Y), fixed(pt.Z)}[:dims]
		if extra != nil {
			row = append(row, extra[i]...)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCenterline writes the station table consumed by the simulator:
// x, y, height and bank angle in radians.
func WriteCenterline(w io.Writer, stations []track.Station) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "height", "bank_angle"}); err != nil {
		return err
	}
	for _, s := range stations {
		p := s.Position
		if err := cw.Write([]string{fixed(p.X), fixed(p.Y), fixed(p.Z), fixed(s.BankAngle)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStations writes the centerline with its arc length, angles in unit.
func WriteStations(w io.Writer, stations []track.Station, unit string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "height", "distance", "bank_angle"}); err != nil {
		return err
	}
	for _, s := range stations {
		p := s.Position
		row := []string{fixed(p.X), fixed(p.Y), fixed(p.Z), fixed(s.Distance), fixed(units.FromRadians(s.BankAngle, unit))}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteENU writes a local-frame table whose header records the origin so
// ReadENU can recover geodetic coordinates later.
func WriteENU(w io.Writer, p track.Path, o geo.Origin) error {
	return WritePath(w, ENUHeader(o), p, nil)
}

// ENUHeader is the header row of a local-frame table recording origin o.
func ENUHeader(o geo.Origin) []string {
	return []string{"x", "y", "z", exact(o.Lat), exact(o.Lon), exact(o.Alt)}
}

// ReadRecords returns every row of a CSV file as strings, header included.
func ReadRecords(fsys fsutil.FileSystem, name string) ([][]string, error) {
	return readAll(fsys, name)
}

// WriteRecords writes rows verbatim.
func WriteRecords(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("trackio: %w", err)
	}
	return nil
}

// WriteGeodeticCSV writes latitude, longitude and altitude at full
// precision.
func WriteGeodeticCSV(w io.Writer, pts []geo.LLA) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"latitude", "longitude", "altitude"}); err != nil {
		return err
	}
	for _, p := range pts {
		if err := cw.Write([]string{exact(p.Lat), exact(p.Lon), exact(p.Alt)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendNormals adds norm_x and norm_y columns holding the unit left
// normal of the heading in column yawCol (radians). rows excludes any
// header. The input rows are not modified.
func AppendNormals(rows [][]string, yawCol int) ([][]string, error) {
	if yawCol < 0 {
		return nil, fmt.Errorf("trackio: %w: yaw column %d", track.ErrInvalidParameter, yawCol)
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		if yawCol >= len(row) {
			return nil, fmt.Errorf("%w: row %d has no column %d", ErrFormat, i+1, yawCol)
		}
		yaw, err := strconv.ParseFloat(strings.TrimSpace(row[yawCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrFormat, i+1, err)
		}
		out[i] = append(append(make([]string, 0, len(row)+2), row...), exact(-math.Sin(yaw)), exact(math.Cos(yaw)))
	}
	return out, nil
}
