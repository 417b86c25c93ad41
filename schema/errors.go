package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for schema construction and decoding.
var (
	// ErrUnsupportedFieldType is returned when a field's Kind has no interpreter.
	ErrUnsupportedFieldType = errors.New("schema: unsupported field type")

	// ErrInvalidSchema is returned when a schema definition is malformed.
	ErrInvalidSchema = errors.New("schema: invalid schema")

	// ErrFieldNotFound is returned when a record has no field of the requested name.
	ErrFieldNotFound = errors.New("schema: field not found")
)

// UnsupportedFieldTypeError reports the field whose Kind could not be decoded.
// It matches ErrUnsupportedFieldType with errors.Is.
type UnsupportedFieldTypeError struct {
	Field  string
	Kind   string
	Offset int
}

func (e *UnsupportedFieldTypeError) Error() string {
	return fmt.Sprintf("schema: unsupported field type %q for field %q at offset %d", e.Kind, e.Field, e.Offset)
}

// Is reports whether target is ErrUnsupportedFieldType.
func (e *UnsupportedFieldTypeError) Is(target error) bool {
	return target == ErrUnsupportedFieldType
}

// FieldError wraps a failure to read a single field.
type FieldError struct {
	Field  string
	Offset int
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("schema: field %q at offset %d: %v", e.Field, e.Offset, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
