// Package schema decodes binary records from declarative field lists.
//
// A [Schema] is an ordered list of [Field] values. [Decode] walks the fields
// in order, reading each one at the running offset (or at a pinned absolute
// offset) and interpreting its raw integer according to the field's [Kind]:
//
//   - [ValueKind]: the integer itself
//   - [StringKind]: the field bytes as text
//   - [IgnoreKind]: skipped
//   - [EnumKind]: a label per value
//   - [ArrayKind]: a label list indexed by value
//   - [BitKind]: labels per bit mask
//
// A field's size may reference an earlier field with [Ref], which lets a
// length prefix size a trailing variable-length field in a single pass.
//
// Schemas can also be loaded from YAML with [ParseYAML].
package schema
