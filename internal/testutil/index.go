package testutil

import (
	"crypto/sha1" //nolint:gosec // the index trailer is defined as SHA-1
	"encoding/binary"
	"testing"
)

// TestEntry holds data for building test index entries.
type TestEntry struct {
	Path      string
	CtimeSec  uint32
	CtimeNsec uint32
	MtimeSec  uint32
	MtimeNsec uint32
	Dev       uint32
	Ino       uint32
	Mode      uint32 // 0 means 0o100644
	UID       uint32
	GID       uint32
	Size      uint32
	Hash      [20]byte
}

// entryFixedSize is the byte size of an entry without its path.
const entryFixedSize = 62

// BuildIndex encodes a header and entries in index file layout.
// Entries are written in the given order, each NUL-padded to the next
// 8-byte boundary with at least one NUL byte.
func BuildIndex(tb testing.TB, version uint32, entries []TestEntry) []byte {
	tb.Helper()

	buf := make([]byte, 0, 12+len(entries)*96)
	buf = append(buf, "DIRC"...)
	buf = binary.BigEndian.AppendUint32(buf, version)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(entries))) //nolint:gosec // test sizes are small

	for _, e := range entries {
		if len(e.Path) > 0xffff {
			tb.Fatalf("path too long: %d bytes", len(e.Path))
		}
		mode := e.Mode
		if mode == 0 {
			mode = 0o100644
		}
		start := len(buf)
		buf = binary.BigEndian.AppendUint32(buf, e.CtimeSec)
		buf = binary.BigEndian.AppendUint32(buf, e.CtimeNsec)
		buf = binary.BigEndian.AppendUint32(buf, e.MtimeSec)
		buf = binary.BigEndian.AppendUint32(buf, e.MtimeNsec)
		buf = binary.BigEndian.AppendUint32(buf, e.Dev)
		buf = binary.BigEndian.AppendUint32(buf, e.Ino)
		buf = binary.BigEndian.AppendUint32(buf, mode)
		buf = binary.BigEndian.AppendUint32(buf, e.UID)
		buf = binary.BigEndian.AppendUint32(buf, e.GID)
		buf = binary.BigEndian.AppendUint32(buf, e.Size)
		buf = append(buf, e.Hash[:]...)
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(e.Path))) //nolint:gosec // checked above
		buf = append(buf, e.Path...)

		n := len(buf) - start
		pad := 8 - n%8
		buf = append(buf, make([]byte, pad)...)
	}
	return buf
}

// AppendChecksum appends the SHA-1 trailer over buf.
func AppendChecksum(buf []byte) []byte {
	sum := sha1.Sum(buf) //nolint:gosec // format-defined checksum
	return append(buf, sum[:]...)
}
