package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fs := OSFileSystem{}

	if !fs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}

	if fs.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_RoundTrip(t *testing.T) {
	osfs := OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "nested", "out")

	if err := osfs.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	name := filepath.Join(dir, "inside.csv")
	w, err := osfs.Create(name)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := io.WriteString(w, "x,y\n1,2\n"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := osfs.Open(name)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "x,y\n1,2\n" {
		t.Errorf("got %q", data)
	}

	root := filepath.Dir(filepath.Dir(dir))
	matches, err := osfs.Find(root, "*.csv")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(matches) != 1 || matches[0] != name {
		t.Errorf("Find = %v, want [%s]", matches, name)
	}
}

func TestMemoryFileSystem_CreateAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("/out/centerline.csv")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("x,y,height,bank_angle\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Not visible until Close.
	if data, _ := mfs.ReadFile("/out/centerline.csv"); len(data) != 0 {
		t.Errorf("expected empty file before Close, got %q", data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := mfs.ReadFile("/out/centerline.csv")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "x,y,height,bank_angle\n" {
		t.Errorf("got %q", data)
	}
}

func TestMemoryFileSystem_Open(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.WriteFile("/inside.csv", []byte("1,2\n"))

	r, err := mfs.Open("/inside.csv")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	mfs.WriteFile("/inside.csv", []byte("changed"))

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "1,2\n" {
		t.Errorf("reader saw later write: %q", data)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestMemoryFileSystem_NotExist(t *testing.T) {
	mfs := NewMemoryFileSystem()

	_, err := mfs.Open("/missing.csv")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open: expected ErrNotExist, got %v", err)
	}
	_, err = mfs.ReadFile("/missing.csv")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile: expected ErrNotExist, got %v", err)
	}
}

func TestMemoryFileSystem_DataIsolation(t *testing.T) {
	mfs := NewMemoryFileSystem()
	src := []byte("abc")
	mfs.WriteFile("/a", src)
	src[0] = 'z'

	got, _ := mfs.ReadFile("/a")
	if string(got) != "abc" {
		t.Errorf("stored data aliased caller slice: %q", got)
	}
	got[1] = 'z'
	again, _ := mfs.ReadFile("/a")
	if string(again) != "abc" {
		t.Errorf("returned data aliased stored slice: %q", again)
	}
}

func TestMemoryFileSystem_MkdirAllAndExists(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if err := mfs.MkdirAll("/runs/a/b", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, p := range []string{"/runs", "/runs/a", "/runs/a/b", "/runs/a/b/"} {
		if !mfs.Exists(p) {
			t.Errorf("expected %s to exist", p)
		}
	}
	if mfs.Exists("/runs/c") {
		t.Error("unexpected /runs/c")
	}
}

func TestMemoryFileSystem_Find(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.WriteFile("/ttls/b.csv", nil)
	mfs.WriteFile("/ttls/a.csv", nil)
	mfs.WriteFile("/ttls/race/c.csv", nil)
	mfs.WriteFile("/ttls/notes.txt", nil)
	mfs.WriteFile("/ttls-old/d.csv", nil)

	got, err := mfs.Find("/ttls", "*.csv")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	want := []string{"/ttls/a.csv", "/ttls/b.csv", "/ttls/race/c.csv"}
	if len(got) != len(want) {
		t.Fatalf("Find = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Find[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if _, err := mfs.Find("/ttls", "["); err == nil {
		t.Error("expected bad pattern error")
	}
}
