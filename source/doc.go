// Package source reads raw index bytes from a filesystem.
//
// A [Reader] returns a [Buffer] holding the file contents, their digest and
// the file's modification time. Index snapshots compressed with zstd are
// decompressed transparently. Reads are bounded by [WithMaxSize].
package source
