package index

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // the index trailer is defined as SHA-1
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/meigma/gitindex/codec"
	"github.com/meigma/gitindex/schema"
)

// Index is a decoded index file. Entries keep their on-disk order.
type Index struct {
	Header  Header
	Entries []Entry

	// End is the offset just past the last entry's padding. Extensions and
	// the trailing checksum, when present, start here.
	End int
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.Entries)
}

// Lookup returns the first entry with the given path.
func (idx *Index) Lookup(path string) (Entry, bool) {
	for _, e := range idx.Entries {
		if e.FilePath == path {
			return e, true
		}
	}
	return Entry{}, false
}

// All returns an iterator over all entries in file order.
func (idx *Index) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range idx.Entries {
			if !yield(e) {
				return
			}
		}
	}
}

// EntriesWithPrefix returns an iterator over entries whose path starts with
// prefix, in file order.
func (idx *Index) EntriesWithPrefix(prefix string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range idx.Entries {
			if !strings.HasPrefix(e.FilePath, prefix) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

type parser struct {
	maxEntries     uint32
	checksum       bool
	validateHeader bool
	logger         *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (p *parser) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}

// Parse decodes the header and entries of an index file.
//
// The header is decoded big-endian at offset 0. Entries follow it and each
// one occupies Pad(fixed entry size + path length) bytes. Parse fails
// without returning a partial index when any entry, including its padding,
// extends past the end of buf.
func Parse(buf []byte, opts ...Option) (*Index, error) {
	p := &parser{maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(p)
	}

	hrec, offset, err := schema.DecodeAt(HeaderSchema, buf, codec.BigEndian, 0)
	if err != nil {
		return nil, fmt.Errorf("index: header: %w", err)
	}
	header, err := headerFromRecord(hrec)
	if err != nil {
		return nil, fmt.Errorf("index: header: %w", err)
	}
	if p.validateHeader {
		if err := header.Validate(); err != nil {
			return nil, err
		}
	}
	if p.maxEntries > 0 && header.Count > p.maxEntries {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEntries, header.Count, p.maxEntries)
	}

	entrySize := EntrySchema.FixedSize()
	entries := make([]Entry, 0, min(int(header.Count), len(buf)/Pad(entrySize)))
	for i := range header.Count {
		rec, err := schema.Decode(EntrySchema, buf, codec.BigEndian, offset)
		if err != nil {
			return nil, fmt.Errorf("index: entry %d at offset %d: %w", i, offset, err)
		}
		e, err := entryFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("index: entry %d at offset %d: %w", i, offset, err)
		}
		next := offset + Pad(entrySize+int(e.FilePathSize))
		if next > len(buf) {
			return nil, fmt.Errorf("index: entry %d padding: %w",
				i, &codec.UnderrunError{Offset: offset, Length: next - offset, Size: len(buf)})
		}
		entries = append(entries, e)
		offset = next
	}

	idx := &Index{Header: header, Entries: entries, End: offset}
	if p.checksum {
		if err := verifyChecksum(buf, idx.End); err != nil {
			return nil, err
		}
	}

	p.log().Debug("index parsed",
		"version", header.Version,
		"entries", len(entries),
		"end", offset,
		"size", len(buf))
	return idx, nil
}

// verifyChecksum checks the SHA-1 trailer at the end of buf. The trailer
// must not overlap the entries ending at end.
func verifyChecksum(buf []byte, end int) error {
	if len(buf)-ChecksumSize < end {
		return fmt.Errorf("%w: no room for trailer after offset %d", ErrChecksumMismatch, end)
	}
	body := buf[:len(buf)-ChecksumSize]
	sum := sha1.Sum(body) //nolint:gosec // format-defined checksum
	if !bytes.Equal(sum[:], buf[len(body):]) {
		return ErrChecksumMismatch
	}
	return nil
}
