package stale

import (
	"math"
	"time"

	"github.com/meigma/gitindex/index"
)

// Permission bits recorded for regular files.
const (
	PermExecutable uint32 = 0o755
	PermRegular    uint32 = 0o644
)

// Timespec is a point in time as seconds and nanoseconds since the epoch.
type Timespec struct {
	Sec  int64
	Nsec int64
}

// TimespecFromTime converts t to a Timespec.
func TimespecFromTime(t time.Time) Timespec {
	if t.IsZero() {
		return Timespec{}
	}
	return Timespec{Sec: t.Unix(), Nsec: int64(t.Nanosecond())}
}

// TimespecFromMillis converts a millisecond timestamp, as reported by stat
// providers without native nanoseconds, to a Timespec. The sub-second part
// becomes the nanosecond component.
func TimespecFromMillis(ms float64) Timespec {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return Timespec{}
	}
	sec := math.Floor(ms / 1000)
	nsec := math.Round((ms - sec*1000) * 1e6)
	if nsec >= 1e9 {
		sec++
		nsec -= 1e9
	}
	return Timespec{Sec: int64(sec), Nsec: int64(nsec)}
}

// Time converts the Timespec to a time.Time.
func (ts Timespec) Time() time.Time {
	return time.Unix(ts.Sec, ts.Nsec)
}

// Stat is the live metadata of a file in the working tree.
type Stat struct {
	Mtime Timespec
	Ctime Timespec
	Dev   uint64
	Ino   uint64
	Mode  uint32
	UID   uint32
	GID   uint32

	// Size is negative when the provider could not determine it.
	Size int64
}

// Normalized holds metadata reduced to the widths stored in an index entry.
// Entries and live stats are compared in this form.
type Normalized struct {
	CtimeSec  uint32
	CtimeNsec uint32
	MtimeSec  uint32
	MtimeNsec uint32
	Dev       uint32
	Ino       uint32
	Mode      uint32
	UID       uint32
	GID       uint32
	Size      uint32
}

// Matches reports whether n and other agree on every field that decides
// staleness. Nanoseconds and the device number are not compared.
func (n Normalized) Matches(other Normalized) bool {
	return n.Mode == other.Mode &&
		n.MtimeSec == other.MtimeSec &&
		n.CtimeSec == other.CtimeSec &&
		n.UID == other.UID &&
		n.GID == other.GID &&
		n.Ino == other.Ino &&
		n.Size == other.Size
}

// NormalizeEntry reduces an index entry.
func NormalizeEntry(e index.Entry) Normalized {
	return Normalized{
		CtimeSec:  e.Ctime.Seconds,
		CtimeNsec: e.Ctime.Nanoseconds,
		MtimeSec:  e.Mtime.Seconds,
		MtimeNsec: e.Mtime.Nanoseconds,
		Dev:       e.Dev,
		Ino:       e.Ino,
		Mode:      NormalizeMode(e.Mode),
		UID:       e.UID,
		GID:       e.GID,
		Size:      e.FileSize,
	}
}

// NormalizeStat reduces a live stat. Values wider than 32 bits wrap.
func NormalizeStat(s Stat) Normalized {
	size := s.Size
	if size < 0 {
		size = 0
	}
	return Normalized{
		CtimeSec:  uint32(s.Ctime.Sec),  //nolint:gosec // wraps modulo 2^32
		CtimeNsec: uint32(s.Ctime.Nsec), //nolint:gosec // see above
		MtimeSec:  uint32(s.Mtime.Sec),  //nolint:gosec // see above
		MtimeNsec: uint32(s.Mtime.Nsec), //nolint:gosec // see above
		Dev:       uint32(s.Dev),        //nolint:gosec // see above
		Ino:       uint32(s.Ino),        //nolint:gosec // see above
		Mode:      NormalizeMode(s.Mode),
		UID:       s.UID,
		GID:       s.GID,
		Size:      uint32(size), //nolint:gosec // see above
	}
}

// NormalizeMode canonicalizes a unix mode to what an index records.
//
// The object type is taken from the high nibble and defaults to a regular
// file when unrecognized. Regular files keep 0755 if any execute bit is set
// and 0644 otherwise; every other type has no permission bits.
func NormalizeMode(mode uint32) uint32 {
	typ := (mode >> 12) & 0xf
	switch typ {
	case index.TypeDirectory, index.TypeRegular, index.TypeSymlink, index.TypeGitlink:
	default:
		typ = index.TypeRegular
	}

	var perm uint32
	if typ == index.TypeRegular {
		perm = PermRegular
		if mode&0o111 != 0 {
			perm = PermExecutable
		}
	}
	return typ<<12 | perm
}

// IsStale reports whether the recorded entry no longer describes the live
// file.
func IsStale(entry index.Entry, live Stat) bool {
	return !NormalizeEntry(entry).Matches(NormalizeStat(live))
}

// IsRacy reports whether entry was recorded no earlier than the index file
// was last written. Its content must be re-checked even when the metadata
// matches. A zero indexMtime never marks an entry racy.
func IsRacy(entry index.Entry, indexMtime Timespec) bool {
	if indexMtime == (Timespec{}) {
		return false
	}
	idxSec := uint32(indexMtime.Sec) //nolint:gosec // compared in index width
	switch {
	case entry.Mtime.Seconds != idxSec:
		return entry.Mtime.Seconds > idxSec
	default:
		return entry.Mtime.Nanoseconds >= uint32(indexMtime.Nsec) //nolint:gosec // see above
	}
}

// Verdict is the outcome of checking one entry against the working tree.
type Verdict int

// Verdicts.
const (
	Clean Verdict = iota
	Modified
	Racy
	Deleted
)

// String returns the lowercase name of the verdict.
func (v Verdict) String() string {
	switch v {
	case Clean:
		return "clean"
	case Modified:
		return "modified"
	case Racy:
		return "racy"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Check combines IsStale and IsRacy. Stale entries are Modified; entries
// that match but are racy are Racy; all others are Clean.
func Check(entry index.Entry, live Stat, indexMtime Timespec) Verdict {
	if IsStale(entry, live) {
		return Modified
	}
	if IsRacy(entry, indexMtime) {
		return Racy
	}
	return Clean
}
