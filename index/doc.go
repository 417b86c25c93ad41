// Package index decodes version-control index ("DIRC") files.
//
// The header and entry layouts are declared as schema.Schema values and
// decoded with the schema engine. Each entry is followed by NUL padding that
// keeps the next entry 8-byte aligned; see [Pad].
//
// Only the header and the entries section are decoded. Extensions and the
// trailing checksum begin at [Index.End].
package index
