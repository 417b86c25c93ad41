package status

import (
	"log/slog"
	"runtime"
)

// DefaultWorkers returns the default number of concurrent stat calls.
func DefaultWorkers() int {
	return max(4, runtime.GOMAXPROCS(0))
}

// Option configures Scan.
type Option func(*scanner)

// WithWorkers sets the number of concurrent stat calls. Values below 1 are
// treated as 1.
func WithWorkers(n int) Option {
	return func(s *scanner) {
		s.workers = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *scanner) {
		s.logger = logger
	}
}
