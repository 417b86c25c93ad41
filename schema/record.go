package schema

import (
	"fmt"
	"iter"

	"github.com/meigma/gitindex/codec"
	"github.com/meigma/gitindex/internal/sizing"
)

// Value is one decoded field.
type Value struct {
	// Raw is the integer read from the buffer.
	Raw codec.Uint

	// Text is the decoded string or label when Labeled is set.
	Text string

	// Labels holds every matching label of a bit field.
	Labels []string

	// Labeled is true when Text replaces the raw value: string fields,
	// matched enum and array labels, and bit fields.
	Labeled bool
}

// String returns Text for labeled values and the canonical hex form of Raw
// otherwise.
func (v Value) String() string {
	if v.Labeled {
		return v.Text
	}
	return v.Raw.Hex()
}

type recordField struct {
	name  string
	value Value
}

// Record is the ordered result of decoding a Schema. Fields appear in schema
// order; ignored fields are absent. A Record is never modified once returned.
type Record struct {
	fields []recordField
}

// with returns a new Record extended by one field. The receiver is left
// untouched so partially built records can be shared safely.
func (r Record) with(name string, v Value) Record {
	next := make([]recordField, len(r.fields), len(r.fields)+1)
	copy(next, r.fields)
	return Record{fields: append(next, recordField{name: name, value: v})}
}

// Len returns the number of decoded fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Get returns the named value.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.name == name {
			return f.value, true
		}
	}
	return Value{}, false
}

// Names returns the field names in decode order.
func (r Record) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.name
	}
	return names
}

// All iterates over the fields in decode order.
func (r Record) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, f := range r.fields {
			if !yield(f.name, f.value) {
				return
			}
		}
	}
}

// Uint returns the raw integer of the named field.
func (r Record) Uint(name string) (codec.Uint, error) {
	v, ok := r.Get(name)
	if !ok {
		return codec.Uint{}, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return v.Raw, nil
}

// Uint64 returns the raw integer of the named field as a uint64.
func (r Record) Uint64(name string) (uint64, error) {
	u, err := r.Uint(name)
	if err != nil {
		return 0, err
	}
	n, ok := u.Uint64()
	if !ok {
		return 0, fmt.Errorf("field %q: %w", name, codec.ErrWidthOverflow)
	}
	return n, nil
}

// Text returns the decoded text of the named field.
func (r Record) Text(name string) (string, error) {
	v, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return v.String(), nil
}

// Strings returns every field rendered with Value.String.
func (r Record) Strings() map[string]string {
	out := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		out[f.name] = f.value.String()
	}
	return out
}

// resolveSize returns the byte length of f, reading references from the
// fields decoded so far. A reference to a field missing from rec resolves
// to zero.
func resolveSize(f Field, rec Record) (int, error) {
	if n, ok := f.Size.Fixed(); ok {
		return n, nil
	}
	v, ok := rec.Get(f.Size.RefName())
	if !ok {
		return 0, nil
	}
	n, ok := v.Raw.Uint64()
	if !ok {
		return 0, fmt.Errorf("size of %q from %q: %w", f.Name, f.Size.RefName(), codec.ErrWidthOverflow)
	}
	size, err := sizing.ToInt(n, codec.ErrWidthOverflow)
	if err != nil {
		return 0, fmt.Errorf("size of %q from %q: %w", f.Name, f.Size.RefName(), err)
	}
	return size, nil
}
