// Command pathalign reconciles a path with a reference path. In project
// mode every point is snapped onto the reference polyline; in shift mode the
// path is translated so its lower-left extent matches the reference.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"

	"github.com/banshee-data/trackgeo/internal/fsutil"
	"github.com/banshee-data/trackgeo/internal/track"
	"github.com/banshee-data/trackgeo/internal/track/align"
	"github.com/banshee-data/trackgeo/internal/trackio"
	"github.com/banshee-data/trackgeo/internal/version"
)

const (
	modeProject = "project"
	modeShift   = "shift"
)

var (
	mode        = flag.String("mode", modeProject, "Alignment: project or shift")
	refPath     = flag.String("reference", "", "Reference path CSV (x,y in the first two columns)")
	inPath      = flag.String("in", "", "Path CSV to align")
	outPath     = flag.String("out", "", "Aligned CSV to write")
	headerRows  = flag.Int("header-rows", 1, "Leading rows to skip; the first is copied to the output")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("pathalign"))
		return
	}
	if *refPath == "" || *inPath == "" || *outPath == "" {
		log.Fatal("-reference, -in and -out are required")
	}

	n, err := run(fsutil.OSFileSystem{}, *mode, *refPath, *inPath, *outPath, *headerRows)
	if err != nil {
		log.Fatalf("pathalign: %v", err)
	}
	log.Printf("pathalign: %s aligned %d points to %s", *mode, n, *outPath)
}

func run(fsys fsutil.FileSystem, mode, ref, in, out string, skip int) (int, error) {
	opts := trackio.ReadOptions{SkipRows: skip, Dims: 2}
	reference, _, err := trackio.ReadPath(fsys, ref, opts)
	if err != nil {
		return 0, fmt.Errorf("reference: %w", err)
	}
	moving, extra, err := trackio.ReadPath(fsys, in, opts)
	if err != nil {
		return 0, fmt.Errorf("input: %w", err)
	}

	var aligned track.Path
	switch mode {
	case modeProject:
		aligned, err = align.ProjectOntoPath(moving, reference)
	case modeShift:
		aligned, err = align.AlignByLeftmostPoint(reference, moving)
	default:
		return 0, fmt.Errorf("unknown mode %q (want %s or %s)", mode, modeProject, modeShift)
	}
	if err != nil {
		return 0, err
	}

	var header []string
	if skip > 0 {
		rows, err := trackio.ReadRecords(fsys, in)
		if err != nil {
			return 0, err
		}
		if len(rows) > 0 {
			header = rows[0]
		}
	}

	var buf bytes.Buffer
	if err := trackio.WritePlanarPath(&buf, header, aligned, extra); err != nil {
		return 0, err
	}
	w, err := fsys.Create(out)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		return 0, err
	}
	return len(aligned), w.Close()
}
