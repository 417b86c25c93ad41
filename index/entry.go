package index

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/meigma/gitindex/schema"
)

// Object types stored in the high nibble of an entry mode.
const (
	TypeDirectory uint32 = 0b0100
	TypeRegular   uint32 = 0b1000
	TypeSymlink   uint32 = 0b1010
	TypeGitlink   uint32 = 0b1110
)

// Header is the decoded file header.
type Header struct {
	Signature string
	Version   uint32
	Count     uint32
}

// Validate checks the signature and that the version is one the entry
// layout applies to. Only version 2 is accepted: version 3 adds extended
// flags and version 4 compresses paths, neither of which EntrySchema reads.
func (h Header) Validate() error {
	if h.Signature != Signature {
		return fmt.Errorf("%w: %q", ErrBadSignature, h.Signature)
	}
	if h.Version != SupportedVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	return nil
}

// Timestamp is a second/nanosecond pair as stored in an entry.
type Timestamp struct {
	Seconds     uint32
	Nanoseconds uint32
}

// Time converts the timestamp to a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t.Seconds), int64(t.Nanoseconds))
}

// ObjectID is the content hash of an entry.
type ObjectID [ObjectIDSize]byte

// String returns the lowercase hex form.
func (id ObjectID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether the hash is all zeros.
func (id ObjectID) IsZero() bool {
	return id == ObjectID{}
}

// Entry is one tracked file.
type Entry struct {
	Ctime        Timestamp
	Mtime        Timestamp
	Dev          uint32
	Ino          uint32
	Mode         uint32
	UID          uint32
	GID          uint32
	FileSize     uint32
	ObjectID     ObjectID
	FilePathSize uint16
	FilePath     string
}

// Type returns the object type nibble of the mode.
func (e Entry) Type() uint32 {
	return (e.Mode >> 12) & 0xf
}

// IsExecutable reports whether a regular file has any execute bit set.
func (e Entry) IsExecutable() bool {
	return e.Type() == TypeRegular && e.Mode&0o111 != 0
}

// IsSymlink reports whether the entry is a symbolic link.
func (e Entry) IsSymlink() bool {
	return e.Type() == TypeSymlink
}

// IsGitlink reports whether the entry refers to a nested repository.
func (e Entry) IsGitlink() bool {
	return e.Type() == TypeGitlink
}

func headerFromRecord(rec schema.Record) (Header, error) {
	sig, err := rec.Text(FieldSignature)
	if err != nil {
		return Header{}, err
	}
	version, err := uint32Field(rec, FieldVersion)
	if err != nil {
		return Header{}, err
	}
	count, err := uint32Field(rec, FieldCount)
	if err != nil {
		return Header{}, err
	}
	return Header{Signature: sig, Version: version, Count: count}, nil
}

func entryFromRecord(rec schema.Record) (Entry, error) {
	var (
		e   Entry
		err error
	)
	if e.Ctime, err = timestampField(rec, FieldCtime); err != nil {
		return Entry{}, err
	}
	if e.Mtime, err = timestampField(rec, FieldMtime); err != nil {
		return Entry{}, err
	}
	for _, f := range []struct {
		name string
		dst  *uint32
	}{
		{FieldDev, &e.Dev},
		{FieldIno, &e.Ino},
		{FieldMode, &e.Mode},
		{FieldUID, &e.UID},
		{FieldGID, &e.GID},
		{FieldFileSize, &e.FileSize},
	} {
		if *f.dst, err = uint32Field(rec, f.name); err != nil {
			return Entry{}, err
		}
	}

	id, err := rec.Uint(FieldObjectID)
	if err != nil {
		return Entry{}, err
	}
	copy(e.ObjectID[:], id.Padded(ObjectIDSize))

	n, err := rec.Uint64(FieldFilePathSize)
	if err != nil {
		return Entry{}, err
	}
	e.FilePathSize = uint16(n) //nolint:gosec // field is two bytes wide
	if e.FilePath, err = rec.Text(FieldFilePath); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func uint32Field(rec schema.Record, name string) (uint32, error) {
	n, err := rec.Uint64(name)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil //nolint:gosec // fields are at most four bytes wide
}

// timestampField splits an 8-byte timestamp into its seconds (high word)
// and nanoseconds (low word).
func timestampField(rec schema.Record, name string) (Timestamp, error) {
	n, err := rec.Uint64(name)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{Seconds: uint32(n >> 32), Nanoseconds: uint32(n)}, nil //nolint:gosec // split of a 64-bit word
}
