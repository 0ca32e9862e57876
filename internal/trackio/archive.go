package trackio

import (
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"
)

// Archive collects generated tables into a single ZIP stream. Entries are
// written in the order they are added.
type Archive struct {
	zw *zip.Writer
}

// NewArchive starts an archive on w. The caller closes w after Close.
func NewArchive(w io.Writer) *Archive {
	return &Archive{zw: zip.NewWriter(w)}
}

// Add stores data under name.
func (a *Archive) Add(name string, data []byte) error {
	f, err := a.zw.Create(name)
	if err != nil {
		return fmt.Errorf("trackio: archive %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("trackio: archive %s: %w", name, err)
	}
	return nil
}

// Close writes the central directory.
func (a *Archive) Close() error {
	return a.zw.Close()
}

// ArchiveName returns the file name used for a directory's geodetic
// bundle, stamped with t as month-day_hour:minute:second.
func ArchiveName(prefix string, t time.Time) string {
	return prefix + "ttls_ky_" + t.Format("01-02_15:04:05") + ".zip"
}
