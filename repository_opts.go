package gitindex

import (
	"errors"
	"log/slog"
)

// Option configures a Repository.
type Option func(*Repository) error

// WithIndexPath sets the index file location, relative to the filesystem
// rather than the work tree (default: <work tree>/.git/index).
func WithIndexPath(path string) Option {
	return func(r *Repository) error {
		if path == "" {
			return errors.New("index path must not be empty")
		}
		r.indexPath = path
		return nil
	}
}

// WithMaxIndexSize limits the size of the index data in bytes
// (default: source.DefaultMaxSize). Zero disables the limit.
func WithMaxIndexSize(limit uint64) Option {
	return func(r *Repository) error {
		r.maxIndexSize = limit
		return nil
	}
}

// WithMaxEntries limits the number of entries an index may declare
// (default: index.DefaultMaxEntries). Zero disables the limit.
func WithMaxEntries(limit uint32) Option {
	return func(r *Repository) error {
		r.maxEntries = limit
		return nil
	}
}

// WithChecksum enables verification of the index trailer checksum
// (default: false).
func WithChecksum(enabled bool) Option {
	return func(r *Repository) error {
		r.checksum = enabled
		return nil
	}
}

// WithWorkers sets the number of concurrent stat calls made by Status
// (default: status.DefaultWorkers).
func WithWorkers(n int) Option {
	return func(r *Repository) error {
		if n < 1 {
			return errors.New("workers must be at least 1")
		}
		r.workers = n
		return nil
	}
}

// WithLogger sets the logger used by the repository and the packages it
// drives.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) error {
		r.logger = logger
		return nil
	}
}
