// Command centerline reconstructs the centerline and bank angle of a track
// from its inside and outside boundaries and writes the station table.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/banshee-data/trackgeo/internal/banktui"
	"github.com/banshee-data/trackgeo/internal/config"
	"github.com/banshee-data/trackgeo/internal/fsutil"
	"github.com/banshee-data/trackgeo/internal/geo"
	"github.com/banshee-data/trackgeo/internal/track"
	"github.com/banshee-data/trackgeo/internal/track/bank"
	"github.com/banshee-data/trackgeo/internal/track/pipeline"
	"github.com/banshee-data/trackgeo/internal/trackio"
	"github.com/banshee-data/trackgeo/internal/trackplot"
	"github.com/banshee-data/trackgeo/internal/version"
)

var (
	configPath  = flag.String("config", "", "Track config JSON (defaults apply when empty)")
	insidePath  = flag.String("inside", "", "Inside boundary CSV")
	outsidePath = flag.String("outside", "", "Outside boundary CSV")
	geodetic    = flag.Bool("geodetic", false, "Boundaries are lat,lon,alt rather than ENU")
	originFlag  = flag.String("origin", "", "Override origin as lat,lon[,alt]")
	outPath     = flag.String("out", "centerline_with_bank_angles.csv", "Centerline table to write")
	bankMode    = flag.String("bank", "", "Override bank_mode: computed, table, samples or manual")
	bankTable   = flag.String("bank-table", "", "Distance/bank_angle CSV for -bank table")
	bankSamples = flag.String("bank-samples", "", "Abscissa/bank_angle CSV for -bank samples")
	stationsOut = flag.String("stations", "", "Also write x,y,height,distance,bank_angle here")
	geojsonOut  = flag.String("geojson", "", "Also write a GeoJSON FeatureCollection here")
	htmlOut     = flag.String("html", "", "Also write an HTML bank-angle map here")
	plotDir     = flag.String("plots", "", "Directory for overview and bank profile PNGs")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

type options struct {
	inside, outside string
	geodetic        bool
	out             string
	bankTable       string
	bankSamples     string
	stations        string
	geojson         string
	html            string
	plots           string
}

// manualSource builds the interactive sample source once the centerline
// is known.
type manualSource func(center track.Path, candidates []int, unit string) bank.Source

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("centerline"))
		return
	}
	if *insidePath == "" || *outsidePath == "" {
		log.Fatal("-inside and -outside are required")
	}

	cfg, err := config.LoadTrackConfigOrDefault(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *originFlag != "" {
		o, err := geo.ParseOrigin(*originFlag)
		if err != nil {
			log.Fatalf("invalid -origin: %v", err)
		}
		cfg.SetOrigin(o)
	}
	if *bankMode != "" {
		cfg.BankMode = bankMode
		if err := cfg.Validate(); err != nil {
			log.Fatalf("invalid -bank: %v", err)
		}
	}

	opts := options{
		inside:      *insidePath,
		outside:     *outsidePath,
		geodetic:    *geodetic,
		out:         *outPath,
		bankTable:   *bankTable,
		bankSamples: *bankSamples,
		stations:    *stationsOut,
		geojson:     *geojsonOut,
		html:        *htmlOut,
		plots:       *plotDir,
	}
	prompt := func(center track.Path, candidates []int, unit string) bank.Source {
		return banktui.Prompt{Center: center, Candidates: candidates, Unit: unit}
	}
	if err := run(fsutil.OSFileSystem{}, cfg, opts, prompt); err != nil {
		log.Fatalf("centerline: %v", err)
	}
}

func run(fsys fsutil.FileSystem, cfg *config.TrackConfig, opts options, manual manualSource) error {
	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	inside, err := readBoundary(fsys, p, opts.inside, opts.geodetic)
	if err != nil {
		return fmt.Errorf("inside boundary: %w", err)
	}
	outside, err := readBoundary(fsys, p, opts.outside, opts.geodetic)
	if err != nil {
		return fmt.Errorf("outside boundary: %w", err)
	}

	res, err := p.Centerline(inside, outside)
	if err != nil {
		return err
	}

	stations, err := stationsFor(fsys, p, res, opts, manual)
	if err != nil {
		return err
	}
	log.Printf("centerline: run %s produced %d stations over %.1fm (bank=%s)",
		res.RunID, len(stations), res.Distance[len(res.Distance)-1], cfg.GetBankMode())

	if err := writeFile(fsys, opts.out, func(b *bytes.Buffer) error {
		return trackio.WriteCenterline(b, stations)
	}); err != nil {
		return err
	}
	if opts.stations != "" {
		if err := writeFile(fsys, opts.stations, func(b *bytes.Buffer) error {
			return trackio.WriteStations(b, stations, cfg.GetBankAngleUnits())
		}); err != nil {
			return err
		}
	}
	if opts.geojson != "" {
		origin, err := resolveOrigin(fsys, cfg, opts)
		if err != nil {
			return err
		}
		if err := writeFile(fsys, opts.geojson, func(b *bytes.Buffer) error {
			return trackio.WriteGeoJSON(b, stations, origin)
		}); err != nil {
			return err
		}
	}
	if opts.html != "" {
		if err := writeFile(fsys, opts.html, func(b *bytes.Buffer) error {
			return trackplot.RenderBankMap(b, stations, "Bank angle along centerline")
		}); err != nil {
			return err
		}
	}
	if opts.plots != "" {
		if err := fsys.MkdirAll(opts.plots, 0o755); err != nil {
			return err
		}
		if err := writeFile(fsys, filepath.Join(opts.plots, "overview.png"), func(b *bytes.Buffer) error {
			return trackplot.WriteOverview(b, res.Inside, res.Outside, stations)
		}); err != nil {
			return err
		}
		if err := writeFile(fsys, filepath.Join(opts.plots, "bank_profile.png"), func(b *bytes.Buffer) error {
			return trackplot.WriteBankProfile(b, stations)
		}); err != nil {
			return err
		}
	}
	return nil
}

func readBoundary(fsys fsutil.FileSystem, p *pipeline.Pipeline, name string, geodetic bool) (track.Path, error) {
	cfg := p.Config()
	opts := trackio.ReadOptions{SkipRows: cfg.GetHeaderRows(), Dims: 3}
	if !geodetic {
		path, _, err := trackio.ReadPath(fsys, name, opts)
		return path, err
	}
	origin, ok := cfg.Origin()
	if !ok {
		return nil, errors.New("geodetic input needs an origin")
	}
	raw, _, err := trackio.ReadGeodetic(fsys, name, opts)
	if err != nil {
		return nil, err
	}
	path, _, err := p.PrepareBoundary(raw, origin)
	return path, err
}

func stationsFor(fsys fsutil.FileSystem, p *pipeline.Pipeline, res *pipeline.Result, opts options, manual manualSource) ([]track.Station, error) {
	cfg := p.Config()
	unit := cfg.GetBankAngleUnits()
	switch cfg.GetBankMode() {
	case config.BankTable:
		if opts.bankTable == "" {
			return nil, errors.New("bank mode table needs -bank-table")
		}
		dist, angle, err := trackio.ReadBankTable(fsys, opts.bankTable, unit)
		if err != nil {
			return nil, err
		}
		return p.TableStations(res, dist, angle)
	case config.BankSamples:
		if opts.bankSamples == "" {
			return nil, errors.New("bank mode samples needs -bank-samples")
		}
		samples, err := trackio.ReadBankSamples(fsys, opts.bankSamples, unit)
		if err != nil {
			return nil, err
		}
		return p.SampleStations(res, bank.Static(samples))
	case config.BankManual:
		return p.SampleStations(res, manual(res.Engine.Center, p.Candidates(res), unit))
	}
	return p.ComputedStations(res), nil
}

// resolveOrigin prefers the configured origin and falls back to the one
// recorded in an ENU boundary header.
func resolveOrigin(fsys fsutil.FileSystem, cfg *config.TrackConfig, opts options) (geo.Origin, error) {
	if o, ok := cfg.Origin(); ok {
		return o, nil
	}
	if !opts.geodetic {
		if _, o, err := trackio.ReadENU(fsys, opts.inside); err == nil {
			return o, nil
		}
	}
	return geo.Origin{}, errors.New("geojson output needs an origin: set origin_lat/origin_lon, pass -origin, or use ENU files with an origin header")
}

func writeFile(fsys fsutil.FileSystem, name string, fill func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	w, err := fsys.Create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
