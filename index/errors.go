package index

import "errors"

// Sentinel errors for index decoding.
var (
	// ErrBadSignature is returned when the header does not start with "DIRC".
	ErrBadSignature = errors.New("index: bad signature")

	// ErrUnsupportedVersion is returned for header versions other than 2.
	ErrUnsupportedVersion = errors.New("index: unsupported version")

	// ErrTooManyEntries is returned when the header count exceeds the configured limit.
	ErrTooManyEntries = errors.New("index: too many entries")

	// ErrChecksumMismatch is returned when the trailing checksum does not match.
	ErrChecksumMismatch = errors.New("index: checksum mismatch")
)
