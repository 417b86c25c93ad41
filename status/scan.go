package status

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/gitindex/index"
	"github.com/meigma/gitindex/stale"
)

// Result is the outcome of checking one entry.
type Result struct {
	Entry   index.Entry
	Verdict stale.Verdict

	// Live is the metadata read from the working tree. It is zero for
	// deleted entries.
	Live stale.Stat
}

type scanner struct {
	workers int
	logger  *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (s *scanner) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Scan checks every entry of idx against the files under root in fsys.
//
// indexMtime is the modification time of the index file and is used to
// detect racily clean entries; pass a zero Timespec to skip that check.
// Results are returned in index order. A missing file yields Deleted; any
// other stat failure aborts the scan.
//
// Gitlink entries only require the directory to exist, since their
// recorded metadata describes a commit rather than a file.
func Scan(ctx context.Context, fsys afero.Fs, root string, idx *index.Index, indexMtime stale.Timespec, opts ...Option) ([]Result, error) {
	s := &scanner{workers: DefaultWorkers()}
	for _, opt := range opts {
		opt(s)
	}

	results := make([]Result, idx.Len())
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.workers))

	for i, entry := range idx.Entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := check(fsys, filepath.Join(root, filepath.FromSlash(entry.FilePath)), entry, indexMtime)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.log().Enabled(ctx, slog.LevelDebug) {
		counts := make(map[stale.Verdict]int, 4)
		for _, r := range results {
			counts[r.Verdict]++
		}
		s.log().Debug("status scanned",
			"entries", len(results),
			"clean", counts[stale.Clean],
			"modified", counts[stale.Modified],
			"racy", counts[stale.Racy],
			"deleted", counts[stale.Deleted])
	}
	return results, nil
}

func check(fsys afero.Fs, path string, entry index.Entry, indexMtime stale.Timespec) (Result, error) {
	live, err := Stat(fsys, path)
	// A path component replaced by a regular file reports ENOTDIR.
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return Result{Entry: entry, Verdict: stale.Deleted}, nil
	}
	if err != nil {
		return Result{}, err
	}

	res := Result{Entry: entry, Live: live}
	if entry.IsGitlink() {
		if (live.Mode>>12)&0xf != index.TypeDirectory {
			res.Verdict = stale.Modified
		}
		return res, nil
	}
	res.Verdict = stale.Check(entry, live, indexMtime)
	return res, nil
}

// Changed returns the results whose verdict is not Clean.
func Changed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Verdict != stale.Clean {
			out = append(out, r)
		}
	}
	return out
}
