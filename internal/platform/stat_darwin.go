//go:build darwin

package platform

import (
	"io/fs"
	"syscall"

	"github.com/meigma/gitindex/stale"
)

func sysStat(info fs.FileInfo) (stale.Stat, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return stale.Stat{}, false
	}
	return stale.Stat{
		Mtime: stale.Timespec{Sec: st.Mtimespec.Sec, Nsec: st.Mtimespec.Nsec},
		Ctime: stale.Timespec{Sec: st.Ctimespec.Sec, Nsec: st.Ctimespec.Nsec},
		Dev:   uint64(uint32(st.Dev)), //nolint:gosec // dev_t is reinterpreted as unsigned
		Ino:   st.Ino,
		Mode:  uint32(st.Mode),
		UID:   st.Uid,
		GID:   st.Gid,
		Size:  st.Size,
	}, true
}
