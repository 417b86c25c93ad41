package index

import "log/slog"

// DefaultMaxEntries is the default upper bound on the header entry count.
const DefaultMaxEntries = 1 << 24

// Option configures Parse.
type Option func(*parser)

// WithMaxEntries limits the entry count accepted from the header.
// Set limit to 0 to disable the limit.
func WithMaxEntries(limit uint32) Option {
	return func(p *parser) {
		p.maxEntries = limit
	}
}

// WithChecksum controls whether Parse verifies the trailing SHA-1 checksum
// (default: false).
func WithChecksum(enabled bool) Option {
	return func(p *parser) {
		p.checksum = enabled
	}
}

// WithHeaderValidation controls whether Parse rejects unknown signatures
// and versions (default: false).
func WithHeaderValidation(enabled bool) Option {
	return func(p *parser) {
		p.validateHeader = enabled
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *parser) {
		p.logger = logger
	}
}
