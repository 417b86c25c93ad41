// Package platform converts file info into the metadata an index records.
package platform

import (
	"io/fs"

	"github.com/meigma/gitindex/stale"
)

// Unix file type bits.
const (
	modeDir     uint32 = 0o040000
	modeRegular uint32 = 0o100000
	modeSymlink uint32 = 0o120000
)

// Stat converts info to a stale.Stat. Raw system fields are used when
// info carries them; otherwise the values are derived from the portable
// fs.FileInfo methods and the inode, device and owner are left zero.
func Stat(info fs.FileInfo) stale.Stat {
	if st, ok := sysStat(info); ok {
		return st
	}
	return FromFileInfo(info)
}

// FromFileInfo derives a stale.Stat from the portable fs.FileInfo fields.
// The change time is not available and is reported equal to the
// modification time.
func FromFileInfo(info fs.FileInfo) stale.Stat {
	mtime := stale.TimespecFromTime(info.ModTime())
	return stale.Stat{
		Mtime: mtime,
		Ctime: mtime,
		Mode:  UnixMode(info.Mode()),
		Size:  info.Size(),
	}
}

// UnixMode maps an fs.FileMode to unix st_mode bits.
func UnixMode(mode fs.FileMode) uint32 {
	perm := uint32(mode.Perm())
	switch {
	case mode&fs.ModeSymlink != 0:
		return modeSymlink | perm
	case mode.IsDir():
		return modeDir | perm
	default:
		return modeRegular | perm
	}
}
