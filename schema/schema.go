package schema

import (
	"fmt"
	"slices"
)

// Schema is an ordered, immutable list of fields.
type Schema struct {
	name   string
	fields []Field
}

// New builds a Schema from fields in decode order.
//
// It rejects empty or duplicate names, negative sizes, Bit fields wider than
// MaxBitWidth, and size references that do not name an earlier field. Kinds
// are not checked here; an unsupported Kind fails when a record is decoded.
func New(name string, fields ...Field) (*Schema, error) {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidSchema, i)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		if n, ok := f.Size.Fixed(); ok {
			if n < 0 {
				return nil, fmt.Errorf("%w: field %q has negative size %d", ErrInvalidSchema, f.Name, n)
			}
			if _, bit := f.Kind.(BitKind); bit && n > MaxBitWidth {
				return nil, fmt.Errorf("%w: bit field %q is %d bytes wide, limit %d",
					ErrInvalidSchema, f.Name, n, MaxBitWidth)
			}
		}
		if ref := f.Size.RefName(); ref != "" {
			if _, ok := seen[ref]; !ok {
				return nil, fmt.Errorf("%w: field %q sizes from %q which is not decoded before it",
					ErrInvalidSchema, f.Name, ref)
			}
		}
		if at, ok := f.Offset.Get(); ok && at < 0 {
			return nil, fmt.Errorf("%w: field %q has negative offset %d", ErrInvalidSchema, f.Name, at)
		}
		seen[f.Name] = struct{}{}
	}
	return &Schema{name: name, fields: slices.Clone(fields)}, nil
}

// MustNew is like New but panics on error. It is intended for package-level
// schema definitions.
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the fields in decode order.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// Field returns the named field.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FixedSize returns the total byte size of the fixed-size fields, excluding
// fields sized by reference.
func (s *Schema) FixedSize() int {
	total := 0
	for _, f := range s.fields {
		if n, ok := f.Size.Fixed(); ok {
			total += n
		}
	}
	return total
}
