package gitindex

import (
	"errors"

	"github.com/meigma/gitindex/codec"
	"github.com/meigma/gitindex/index"
	"github.com/meigma/gitindex/schema"
	"github.com/meigma/gitindex/source"
)

// ErrNotWorkTree is returned by Open when the work tree is not a directory.
var ErrNotWorkTree = errors.New("gitindex: not a work tree")

// Errors re-exported from codec and schema.
var (
	// ErrBufferUnderrun is returned when a field extends past the end of the data.
	ErrBufferUnderrun = codec.ErrBufferUnderrun

	// ErrUnsupportedFieldType is returned when a schema field has an unknown kind.
	ErrUnsupportedFieldType = schema.ErrUnsupportedFieldType
)

// Errors re-exported from index and source.
var (
	// ErrBadSignature is returned when the index does not start with "DIRC".
	ErrBadSignature = index.ErrBadSignature

	// ErrUnsupportedVersion is returned for index versions other than 2.
	ErrUnsupportedVersion = index.ErrUnsupportedVersion

	// ErrTooManyEntries is returned when the index declares more entries than allowed.
	ErrTooManyEntries = index.ErrTooManyEntries

	// ErrChecksumMismatch is returned when the index trailer does not match its content.
	ErrChecksumMismatch = index.ErrChecksumMismatch

	// ErrIndexTooLarge is returned when the index file exceeds the size limit.
	ErrIndexTooLarge = source.ErrIndexTooLarge
)
