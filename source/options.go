package source

import (
	"log/slog"

	"github.com/docker/go-units"
)

// Default limits.
const (
	// DefaultMaxSize bounds the bytes read from an index file, after
	// decompression.
	DefaultMaxSize uint64 = 256 * units.MiB

	// DefaultDecoderMaxMemory bounds the memory a zstd decoder may allocate.
	DefaultDecoderMaxMemory uint64 = 512 * units.MiB
)

// Option configures a Reader.
type Option func(*Reader)

// WithMaxSize limits the size of the index data (default: 256 MiB).
// Set limit to 0 to disable the limit.
func WithMaxSize(limit uint64) Option {
	return func(r *Reader) {
		r.maxSize = limit
	}
}

// WithDecoderMaxMemory limits the memory used to decompress zstd-compressed
// index snapshots (default: 512 MiB). Set limit to 0 to disable the limit.
func WithDecoderMaxMemory(limit uint64) Option {
	return func(r *Reader) {
		r.decoderMaxMemory = limit
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}
