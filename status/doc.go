// Package status compares index entries against a working tree.
//
// [Stat] reads live file metadata through an afero filesystem and [Scan]
// checks every entry of an index with bounded parallelism, reporting a
// [stale.Verdict] per entry in index order.
package status
