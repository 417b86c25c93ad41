// Package stale decides whether an index entry still describes a file in
// the working tree.
//
// Both sides are reduced to a [Normalized] form first: timestamps, device,
// inode, owner and size wrap to 32 bits, negative sizes become zero, and
// modes are canonicalized by [NormalizeMode]. An entry is stale when the
// mode, whole-second mtime or ctime, owner, inode or size differ.
// Nanoseconds and the device number are ignored so that checks stay stable
// across filesystems that do not preserve them.
//
// All functions are pure and safe for concurrent use.
package stale
