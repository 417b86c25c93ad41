//go:build linux

package platform

import (
	"io/fs"
	"syscall"

	"github.com/meigma/gitindex/stale"
)

//nolint:unconvert // field widths differ between architectures
func sysStat(info fs.FileInfo) (stale.Stat, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return stale.Stat{}, false
	}
	return stale.Stat{
		Mtime: stale.Timespec{Sec: int64(st.Mtim.Sec), Nsec: int64(st.Mtim.Nsec)},
		Ctime: stale.Timespec{Sec: int64(st.Ctim.Sec), Nsec: int64(st.Ctim.Nsec)},
		Dev:   uint64(st.Dev),
		Ino:   uint64(st.Ino),
		Mode:  uint32(st.Mode),
		UID:   st.Uid,
		GID:   st.Gid,
		Size:  int64(st.Size),
	}, true
}
