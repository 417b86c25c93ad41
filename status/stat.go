package status

import (
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/meigma/gitindex/internal/platform"
	"github.com/meigma/gitindex/stale"
)

// Stat returns the live metadata of path. Symbolic links are not followed
// when fsys supports lstat.
func Stat(fsys afero.Fs, path string) (stale.Stat, error) {
	var (
		info fs.FileInfo
		err  error
	)
	if lst, ok := fsys.(afero.Lstater); ok {
		info, _, err = lst.LstatIfPossible(path)
	} else {
		info, err = fsys.Stat(path)
	}
	if err != nil {
		return stale.Stat{}, fmt.Errorf("status: stat %s: %w", path, err)
	}
	return platform.Stat(info), nil
}
