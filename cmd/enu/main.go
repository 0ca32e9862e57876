// Command enu converts a surveyed boundary from geodetic coordinates to the
// local East-North-Up frame, dropping isolated spikes on the way.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/trackgeo/internal/config"
	"github.com/banshee-data/trackgeo/internal/fsutil"
	"github.com/banshee-data/trackgeo/internal/geo"
	"github.com/banshee-data/trackgeo/internal/track/pipeline"
	"github.com/banshee-data/trackgeo/internal/trackio"
	"github.com/banshee-data/trackgeo/internal/version"
)

var (
	configPath  = flag.String("config", "", "Track config JSON (defaults apply when empty)")
	inPath      = flag.String("in", "", "Geodetic CSV: lat,lon[,alt][,extra...]")
	outPath     = flag.String("out", "", "ENU CSV to write")
	originFlag  = flag.String("origin", "", "Override origin as lat,lon[,alt]")
	survey      = flag.Bool("survey", false, "Input is a receiver export with Latitude/Longitude columns")
	threshold   = flag.Float64("threshold", 0, "Override outlier_threshold in metres (0 keeps config)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("enu"))
		return
	}
	if *inPath == "" || *outPath == "" {
		log.Fatal("-in and -out are required")
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
	if *threshold > 0 {
		cfg.OutlierThreshold = threshold
	}

	n, kept, err := run(fsutil.OSFileSystem{}, cfg, *inPath, *outPath, *survey)
	if err != nil {
		log.Fatalf("enu: %v", err)
	}
	log.Printf("enu: wrote %d of %d points to %s", kept, n, *outPath)
}

// run converts inPath into outPath and reports how many rows were read and
// kept.
func run(fsys fsutil.FileSystem, cfg *config.TrackConfig, inPath, outPath string, survey bool) (read, kept int, err error) {
	origin, ok := cfg.Origin()
	if !ok {
		return 0, 0, fmt.Errorf("no origin: set origin_lat/origin_lon in the config or pass -origin")
	}
	p, err := pipeline.New(cfg)
	if err != nil {
		return 0, 0, err
	}

	var raw []geo.LLA
	var extra [][]string
	if survey {
		raw, err = trackio.ReadSurveyExport(fsys, inPath)
	} else {
		raw, extra, err = trackio.ReadGeodetic(fsys, inPath, trackio.ReadOptions{SkipRows: cfg.GetHeaderRows()})
	}
	if err != nil {
		return 0, 0, err
	}

	local, keep, err := p.PrepareBoundary(raw, origin)
	if err != nil {
		return 0, 0, err
	}
	var keptExtra [][]string
	if extra != nil {
		keptExtra = make([][]string, len(keep))
		for i, k := range keep {
			keptExtra[i] = extra[k]
		}
	}

	w, err := fsys.Create(outPath)
	if err != nil {
		return 0, 0, err
	}
	if err := trackio.WritePath(w, trackio.ENUHeader(origin), local, keptExtra); err != nil {
		w.Close()
		return 0, 0, err
	}
	if err := w.Close(); err != nil {
		return 0, 0, err
	}
	return len(raw), len(local), nil
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: enu -in boundary_geodetic.csv -out boundary_enu.csv [-config track.json] [-origin lat,lon,alt]\n\n")
		flag.PrintDefaults()
	}
}
