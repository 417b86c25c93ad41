package gitindex

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"

	"github.com/meigma/gitindex/index"
	"github.com/meigma/gitindex/source"
	"github.com/meigma/gitindex/stale"
	"github.com/meigma/gitindex/status"
)

// Snapshot is a parsed index together with the identity of the bytes it
// was parsed from.
type Snapshot struct {
	Index *index.Index

	// Digest identifies the decompressed index data.
	Digest digest.Digest

	// ModTime is the modification time of the index file.
	ModTime stale.Timespec
}

// Repository reads the index of a work tree and compares it with the
// files on disk.
//
// Repository is safe for concurrent use. Concurrent Index calls share a
// single read, and an index whose content has not changed since the last
// call is not parsed again.
type Repository struct {
	fsys      afero.Fs
	workTree  string
	indexPath string

	maxIndexSize uint64
	maxEntries   uint32
	checksum     bool
	workers      int
	logger       *slog.Logger

	reader    *source.Reader
	loadGroup singleflight.Group

	mu   sync.Mutex
	last *Snapshot
}

// Open prepares a Repository for the work tree at workTree in fsys. The
// index itself is read lazily by Index and Status.
func Open(fsys afero.Fs, workTree string, opts ...Option) (*Repository, error) {
	r := &Repository{
		fsys:         fsys,
		workTree:     workTree,
		indexPath:    filepath.Join(workTree, ".git", "index"),
		maxIndexSize: source.DefaultMaxSize,
		maxEntries:   index.DefaultMaxEntries,
		workers:      status.DefaultWorkers(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("gitindex: %w", err)
		}
	}

	info, err := fsys.Stat(workTree)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWorkTree, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotWorkTree, workTree)
	}

	r.reader = source.NewReader(fsys,
		source.WithMaxSize(r.maxIndexSize),
		source.WithLogger(r.logger))
	return r, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (r *Repository) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// WorkTree returns the work tree root.
func (r *Repository) WorkTree() string {
	return r.workTree
}

// IndexPath returns the location of the index file.
func (r *Repository) IndexPath() string {
	return r.indexPath
}

// Index reads and parses the index file. The header is always validated.
func (r *Repository) Index(ctx context.Context) (*Snapshot, error) {
	v, err, shared := r.loadGroup.Do(r.indexPath, func() (any, error) {
		return r.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.log().Debug("index load shared", "path", r.indexPath)
	}
	snap, _ := v.(*Snapshot) //nolint:errcheck // type assertion always succeeds when err is nil
	return snap, nil
}

func (r *Repository) load(ctx context.Context) (*Snapshot, error) {
	buf, err := r.reader.Read(ctx, r.indexPath)
	if err != nil {
		return nil, fmt.Errorf("gitindex: %w", err)
	}

	r.mu.Lock()
	last := r.last
	r.mu.Unlock()
	if last != nil && last.Digest == buf.Digest {
		r.log().Debug("index unchanged", "digest", buf.Digest.String())
		snap := &Snapshot{Index: last.Index, Digest: buf.Digest, ModTime: buf.ModTime}
		r.store(snap)
		return snap, nil
	}

	idx, err := index.Parse(buf.Data,
		index.WithHeaderValidation(true),
		index.WithMaxEntries(r.maxEntries),
		index.WithChecksum(r.checksum),
		index.WithLogger(r.logger))
	if err != nil {
		return nil, fmt.Errorf("gitindex: %s: %w", r.indexPath, err)
	}
	snap := &Snapshot{Index: idx, Digest: buf.Digest, ModTime: buf.ModTime}
	r.store(snap)
	return snap, nil
}

func (r *Repository) store(snap *Snapshot) {
	r.mu.Lock()
	r.last = snap
	r.mu.Unlock()
}

// Status reads the index and checks every entry against the work tree.
// Results are in index order.
func (r *Repository) Status(ctx context.Context) ([]status.Result, error) {
	snap, err := r.Index(ctx)
	if err != nil {
		return nil, err
	}
	results, err := status.Scan(ctx, r.fsys, r.workTree, snap.Index, snap.ModTime,
		status.WithWorkers(r.workers),
		status.WithLogger(r.logger))
	if err != nil {
		return nil, fmt.Errorf("gitindex: status: %w", err)
	}
	return results, nil
}
