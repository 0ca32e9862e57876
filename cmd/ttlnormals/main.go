// Command ttlnormals appends the unit left normal of each row's heading to
// every trajectory table under a directory, rewriting the files in place.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"

	"github.com/banshee-data/trackgeo/internal/fsutil"
	"github.com/banshee-data/trackgeo/internal/trackio"
	"github.com/banshee-data/trackgeo/internal/version"
)

var (
	dir         = flag.String("in", "ttls", "Directory searched for trajectory tables")
	pattern     = flag.String("glob", "*.csv", "File name pattern matched at any depth")
	yawCol      = flag.Int("yaw-col", 3, "Zero-based column holding the heading in radians")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("ttlnormals"))
		return
	}

	n, err := run(fsutil.OSFileSystem{}, *dir, *pattern, *yawCol)
	if err != nil {
		log.Fatalf("ttlnormals: %v", err)
	}
	log.Printf("ttlnormals: updated %d files", n)
}

// run rewrites each matching file with norm_x and norm_y appended to every
// row after the first. The first row is kept as it was.
func run(fsys fsutil.FileSystem, dir, pattern string, yawCol int) (int, error) {
	files, err := fsys.Find(dir, pattern)
	if err != nil {
		return 0, err
	}
	for i, f := range files {
		if err := addNormals(fsys, f, yawCol); err != nil {
			return i, fmt.Errorf("%s: %w", f, err)
		}
	}
	return len(files), nil
}

func addNormals(fsys fsutil.FileSystem, name string, yawCol int) error {
	rows, err := trackio.ReadRecords(fsys, name)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	body, err := trackio.AppendNormals(rows[1:], yawCol)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := trackio.WriteRecords(&buf, append([][]string{rows[0]}, body...)); err != nil {
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
