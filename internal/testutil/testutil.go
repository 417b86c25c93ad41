// Package testutil provides helpers shared by package tests.
package testutil

import (
	"io/fs"
	"path"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// TestFile describes a file created by NewMemFS.
type TestFile struct {
	Content []byte
	Mode    fs.FileMode // 0 means 0o644
	ModTime time.Time   // zero leaves the filesystem default
}

// NewMemFS returns an in-memory filesystem populated with files.
// Parent directories are created as needed.
func NewMemFS(tb testing.TB, files map[string]TestFile) afero.Fs {
	tb.Helper()

	fsys := afero.NewMemMapFs()
	for name, f := range files {
		WriteFile(tb, fsys, name, f)
	}
	return fsys
}

// WriteFile writes one file into fsys, creating parent directories.
func WriteFile(tb testing.TB, fsys afero.Fs, name string, f TestFile) {
	tb.Helper()

	mode := f.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err := fsys.MkdirAll(path.Dir(name), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", name, err)
	}
	if err := afero.WriteFile(fsys, name, f.Content, mode); err != nil {
		tb.Fatalf("write %s: %v", name, err)
	}
	if err := fsys.Chmod(name, mode); err != nil {
		tb.Fatalf("chmod %s: %v", name, err)
	}
	if !f.ModTime.IsZero() {
		if err := fsys.Chtimes(name, f.ModTime, f.ModTime); err != nil {
			tb.Fatalf("chtimes %s: %v", name, err)
		}
	}
}
