package schema

import (
	"fmt"
	"strconv"

	"github.com/meigma/gitindex/codec"
)

// Size is the byte length of a field: either fixed, or taken from the
// decoded value of an earlier field in the same record.
type Size struct {
	n   int
	ref string
}

// Bytes returns a fixed Size of n bytes.
func Bytes(n int) Size {
	return Size{n: n}
}

// Ref returns a Size read from the already-decoded integer value of the
// named field.
func Ref(field string) Size {
	return Size{ref: field}
}

// Fixed returns the fixed byte count. ok is false for references.
func (s Size) Fixed() (n int, ok bool) {
	if s.ref != "" {
		return 0, false
	}
	return s.n, true
}

// RefName returns the referenced field name, or "" for fixed sizes.
func (s Size) RefName() string {
	return s.ref
}

func (s Size) String() string {
	if s.ref != "" {
		return "ref(" + s.ref + ")"
	}
	return strconv.Itoa(s.n)
}

// Offset optionally pins a field to an absolute buffer offset.
// The zero value reads the field at the running offset.
type Offset struct {
	at  int
	set bool
}

// At returns an Offset pinned to the absolute byte position n.
func At(n int) Offset {
	return Offset{at: n, set: true}
}

// Get returns the absolute offset. ok is false for sequential fields.
func (o Offset) Get() (n int, ok bool) {
	return o.at, o.set
}

// Field describes one element of a Schema.
type Field struct {
	// Name identifies the field in the decoded Record.
	Name string

	// Size is the number of bytes the field occupies.
	Size Size

	// Kind selects how the raw integer is interpreted.
	Kind Kind

	// Offset pins the field to an absolute position. Pinned fields still
	// advance the running offset by their size.
	Offset Offset
}

// Kind is the interpretation applied to a field's raw value. The
// implementations in this package form a closed set; decoding any other
// Kind fails with an UnsupportedFieldTypeError.
type Kind interface {
	kindName() string
}

// ValueKind stores the raw integer.
type ValueKind struct{}

// StringKind decodes the field bytes as text with trailing NUL padding
// removed.
type StringKind struct{}

// IgnoreKind skips the field; it is absent from the Record.
type IgnoreKind struct{}

// EnumKind maps a value directly to a label. Keys are canonical hex strings
// as produced by codec.Uint.Hex; use Enum or EnumHex to build one.
type EnumKind struct {
	Labels map[string]string
}

// ArrayKind uses the value as an index into Labels.
type ArrayKind struct {
	Labels []string
}

// BitKind maps bit masks to labels. Flags are tested in declaration order.
//
// Bit fields are at most MaxBitWidth bytes wide. New rejects wider fixed
// sizes; a referenced size above the limit fails at decode time with
// codec.ErrWidthOverflow.
type BitKind struct {
	Flags []BitFlag
}

// MaxBitWidth is the widest Bit field, in bytes.
const MaxBitWidth = 32

// BitFlag names one mask of a BitKind.
type BitFlag struct {
	Mask  codec.Uint
	Label string
}

func (ValueKind) kindName() string  { return "value" }
func (StringKind) kindName() string { return "string" }
func (IgnoreKind) kindName() string { return "ignore" }
func (EnumKind) kindName() string   { return "enum" }
func (ArrayKind) kindName() string  { return "array" }
func (BitKind) kindName() string    { return "bit" }

// unknownKind carries a kind name that no interpreter exists for, such as
// one read from a schema definition file.
type unknownKind struct {
	name string
}

func (k unknownKind) kindName() string { return k.name }

// KindName returns the name of k, or "<nil>".
func KindName(k Kind) string {
	if k == nil {
		return "<nil>"
	}
	return k.kindName()
}

// Enum builds an EnumKind from integer keys.
func Enum(labels map[uint64]string) EnumKind {
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[codec.FromUint64(k).Hex()] = v
	}
	return EnumKind{Labels: out}
}

// EnumHex builds an EnumKind from keys written as hexadecimal ("0x1f") or
// decimal ("31") strings of any width up to 256 bits.
func EnumHex(labels map[string]string) (EnumKind, error) {
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		u, err := codec.ParseUint(k)
		if err != nil {
			return EnumKind{}, err
		}
		out[u.Hex()] = v
	}
	return EnumKind{Labels: out}, nil
}

// Flag returns a BitFlag for an integer mask.
func Flag(mask uint64, label string) BitFlag {
	return BitFlag{Mask: codec.FromUint64(mask), Label: label}
}

// Bits builds a BitKind from flags, keeping their order.
func Bits(flags ...BitFlag) BitKind {
	return BitKind{Flags: flags}
}

// Array builds an ArrayKind.
func Array(labels ...string) ArrayKind {
	return ArrayKind{Labels: labels}
}

func (f Field) String() string {
	return fmt.Sprintf("%s[%s]:%s", f.Name, f.Size, KindName(f.Kind))
}
