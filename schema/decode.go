package schema

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/meigma/gitindex/codec"
)

// Decode interprets s against buf starting at offset start.
//
// Fields are read strictly in schema order. On error no partial record is
// returned.
func Decode(s *Schema, buf []byte, order codec.Endian, start int) (Record, error) {
	rec, _, err := DecodeAt(s, buf, order, start)
	return rec, err
}

// DecodeAt is like Decode and also returns the running offset after the
// last field.
func DecodeAt(s *Schema, buf []byte, order codec.Endian, start int) (Record, int, error) {
	read := codec.NewReader(order)
	var rec Record
	offset := start
	for _, f := range s.fields {
		size, err := resolveSize(f, rec)
		if err != nil {
			return Record{}, 0, &FieldError{Field: f.Name, Offset: offset, Err: err}
		}
		at := offset
		if pinned, ok := f.Offset.Get(); ok {
			at = pinned
		}

		raw, err := read(buf, at, size)
		if err != nil {
			return Record{}, 0, &FieldError{Field: f.Name, Offset: at, Err: err}
		}
		offset += size

		v, keep, err := interpret(f, raw, buf[at:at+size], at)
		if err != nil {
			return Record{}, 0, err
		}
		if keep {
			rec = rec.with(f.Name, v)
		}
	}
	return rec, offset, nil
}

// interpret applies the field kind to a raw value. field holds the field
// bytes in buffer order. keep is false for ignored fields.
func interpret(f Field, raw codec.Uint, field []byte, at int) (v Value, keep bool, err error) {
	switch k := f.Kind.(type) {
	case ValueKind:
		return Value{Raw: raw}, true, nil
	case StringKind:
		return Value{Raw: raw, Text: string(bytes.TrimRight(field, "\x00")), Labeled: true}, true, nil
	case IgnoreKind:
		return Value{}, false, nil
	case EnumKind:
		if label, ok := k.Labels[raw.Hex()]; ok {
			return Value{Raw: raw, Text: label, Labeled: true}, true, nil
		}
		return Value{Raw: raw}, true, nil
	case ArrayKind:
		if i, ok := raw.Uint64(); ok && i < uint64(len(k.Labels)) {
			return Value{Raw: raw, Text: k.Labels[i], Labeled: true}, true, nil
		}
		return Value{Raw: raw}, true, nil
	case BitKind:
		v, err := matchFlags(k, raw)
		if err != nil {
			return Value{}, false, &FieldError{Field: f.Name, Offset: at, Err: err}
		}
		return v, true, nil
	default:
		return Value{}, false, &UnsupportedFieldTypeError{Field: f.Name, Kind: KindName(f.Kind), Offset: at}
	}
}

// matchFlags returns the single label whose mask equals raw, or else every
// label whose mask shares a set bit with raw.
func matchFlags(k BitKind, raw codec.Uint) (Value, error) {
	for _, fl := range k.Flags {
		if fl.Mask.Equal(raw) {
			return Value{Raw: raw, Text: fl.Label, Labels: []string{fl.Label}, Labeled: true}, nil
		}
	}

	n, err := raw.Int()
	if err != nil {
		return Value{}, err
	}
	var (
		labels []string
		and    uint256.Int
	)
	for _, fl := range k.Flags {
		mask, err := fl.Mask.Int()
		if err != nil {
			return Value{}, fmt.Errorf("mask %s: %w", fl.Label, err)
		}
		if !and.And(n, mask).IsZero() {
			labels = append(labels, fl.Label)
		}
	}
	return Value{Raw: raw, Text: strings.Join(labels, "|"), Labels: labels, Labeled: true}, nil
}
