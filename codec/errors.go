package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for integer decoding.
var (
	// ErrBufferUnderrun is returned when a read extends past the end of the buffer.
	ErrBufferUnderrun = errors.New("codec: buffer underrun")

	// ErrWidthOverflow is returned when a value is too wide for the requested
	// numeric representation.
	ErrWidthOverflow = errors.New("codec: value too wide")
)

// UnderrunError describes a read that does not fit inside the buffer.
// It matches ErrBufferUnderrun with errors.Is.
type UnderrunError struct {
	Offset int
	Length int
	Size   int
}

func (e *UnderrunError) Error() string {
	return fmt.Sprintf("codec: buffer underrun: %d bytes at offset %d, buffer holds %d",
		e.Length, e.Offset, e.Size)
}

// Is reports whether target is ErrBufferUnderrun.
func (e *UnderrunError) Is(target error) bool {
	return target == ErrBufferUnderrun
}
