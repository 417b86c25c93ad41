// Package codec extracts unsigned integers of arbitrary byte width from byte
// buffers in either byte order.
//
// Values are kept as big-endian magnitudes rather than native integers so
// that wide fields such as 20-byte object hashes decode without truncation.
// Callers that need arithmetic convert with [Uint.Uint64] or [Uint.Int].
package codec
