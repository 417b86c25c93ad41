package source

import "errors"

// ErrIndexTooLarge is returned when the index data exceeds the configured
// size limit.
var ErrIndexTooLarge = errors.New("source: index too large")
