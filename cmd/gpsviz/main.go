// Command gpsviz converts ENU tables back to latitude/longitude and bundles
// them into one ZIP per source directory for upload to map viewers.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/trackgeo/internal/fsutil"
	"github.com/banshee-data/trackgeo/internal/geo"
	"github.com/banshee-data/trackgeo/internal/trackio"
	"github.com/banshee-data/trackgeo/internal/version"
)

var (
	inDir       = flag.String("in", "ttls", "Directory searched for ENU tables")
	outDir      = flag.String("out", ".", "Directory the archives are written to")
	pattern     = flag.String("glob", "*.csv", "File name pattern matched at any depth")
	workers     = flag.Int("workers", runtime.NumCPU(), "Files converted in parallel")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("gpsviz"))
		return
	}

	archives, err := run(fsutil.OSFileSystem{}, *inDir, *outDir, *pattern, *workers, time.Now())
	if err != nil {
		log.Fatalf("gpsviz: %v", err)
	}
	for _, a := range archives {
		log.Printf("gpsviz: wrote %s", a)
	}
}

type converted struct {
	dir  string // relative to the search root
	name string
	csv  []byte
}

// run converts every matching table and returns the archives written.
func run(fsys fsutil.FileSystem, in, out, pattern string, workers int, now time.Time) ([]string, error) {
	files, err := fsys.Find(in, pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files matching %q under %s", pattern, in)
	}

	results := make([]converted, len(files))
	g := new(errgroup.Group)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			data, err := toGeodetic(fsys, f)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			rel, err := filepath.Rel(in, filepath.Dir(f))
			if err != nil {
				return err
			}
			results[i] = converted{dir: rel, name: filepath.Base(f), csv: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byDir := make(map[string][]converted)
	for _, r := range results {
		byDir[r.dir] = append(byDir[r.dir], r)
	}
	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	if err := fsys.MkdirAll(out, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for _, d := range dirs {
		name := filepath.Join(out, trackio.ArchiveName(archivePrefix(d), now))
		if err := writeArchive(fsys, name, byDir[d]); err != nil {
			return written, err
		}
		written = append(written, name)
	}
	return written, nil
}

func toGeodetic(fsys fsutil.FileSystem, name string) ([]byte, error) {
	path, origin, err := trackio.ReadENU(fsys, name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := trackio.WriteGeodeticCSV(&buf, geo.PathToGeodetic(path, origin)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// archivePrefix names an archive after its directory, nested directories
// joined with underscores. The search root itself gets no prefix.
func archivePrefix(rel string) string {
	if rel == "." {
		return ""
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "_") + "_"
}

func writeArchive(fsys fsutil.FileSystem, name string, entries []converted) error {
	var buf bytes.Buffer
	a := trackio.NewArchive(&buf)
	for _, e := range entries {
		if err := a.Add(e.name, e.csv); err != nil {
			return err
		}
	}
	if err := a.Close(); err != nil {
		return err
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
