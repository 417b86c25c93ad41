package source

import (
	"bytes"
	"context"
	_ "crypto/sha256" // registers the digest algorithm
	"fmt"
	"log/slog"
	"math"

	"github.com/docker/go-units"
	"github.com/opencontainers/go-digest"
	"github.com/spf13/afero"

	"github.com/meigma/gitindex/internal/sizing"
	"github.com/meigma/gitindex/stale"
)

// Buffer is the content of an index file.
type Buffer struct {
	// Data is the decompressed index bytes.
	Data []byte

	// Digest identifies Data.
	Digest digest.Digest

	// ModTime is the modification time of the file itself. Entries recorded
	// at or after it are racily clean.
	ModTime stale.Timespec

	// Compressed reports whether the file was stored as a zstd frame.
	Compressed bool
}

// Reader reads index files from a filesystem. It is safe for concurrent
// use.
type Reader struct {
	fsys             afero.Fs
	maxSize          uint64
	decoderMaxMemory uint64
	decoders         *decoderPool
	logger           *slog.Logger
}

// NewReader creates a Reader over fsys.
func NewReader(fsys afero.Fs, opts ...Option) *Reader {
	r := &Reader{
		fsys:             fsys,
		maxSize:          DefaultMaxSize,
		decoderMaxMemory: DefaultDecoderMaxMemory,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.decoders = newDecoderPool(r.decoderMaxMemory)
	return r
}

// ReadFile reads a single index file. Use a Reader to share decoders
// between reads.
func ReadFile(ctx context.Context, fsys afero.Fs, path string, opts ...Option) (*Buffer, error) {
	return NewReader(fsys, opts...).Read(ctx, path)
}

// log returns the logger, falling back to a discard logger if nil.
func (r *Reader) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// limit returns the effective size limit and the error reported when it is
// exceeded.
func (r *Reader) limit() (uint64, error) {
	if r.maxSize == 0 {
		return math.MaxInt - 1, ErrIndexTooLarge
	}
	return r.maxSize, fmt.Errorf("%w: limit %s", ErrIndexTooLarge, units.BytesSize(float64(r.maxSize)))
}

// Read reads the index file at path.
func (r *Reader) Read(ctx context.Context, path string) (*Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := r.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("source: stat %s: %w", path, err)
	}

	limit, tooLarge := r.limit()
	raw, err := sizing.ReadAllWithLimit(f, limit, tooLarge)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := &Buffer{
		Data:    raw,
		ModTime: stale.TimespecFromTime(info.ModTime()),
	}
	if isZstd(raw) {
		data, err := r.decompress(raw, limit, tooLarge)
		if err != nil {
			return nil, fmt.Errorf("source: decompress %s: %w", path, err)
		}
		buf.Data = data
		buf.Compressed = true
	}
	buf.Digest = digest.FromBytes(buf.Data)

	r.log().Debug("index read",
		"path", path,
		"size", units.HumanSize(float64(len(buf.Data))),
		"compressed", buf.Compressed,
		"digest", buf.Digest.String())
	return buf, nil
}

func (r *Reader) decompress(raw []byte, limit uint64, tooLarge error) ([]byte, error) {
	dec, release, err := r.decoders.get(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer release()
	return sizing.ReadAllWithLimit(dec, limit, tooLarge)
}
