package codec

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/meigma/gitindex/internal/sizing"
)

// Endian selects the byte order used to assemble a multi-byte integer.
type Endian uint8

const (
	// BigEndian reads the most significant byte first (buffer order).
	BigEndian Endian = iota
	// LittleEndian reads the least significant byte first.
	LittleEndian
)

// String returns the human-readable name of the byte order.
func (e Endian) String() string {
	switch e {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return "unknown"
	}
}

// ParseEndian parses "big"/"be" or "little"/"le".
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "big", "be", "":
		return BigEndian, nil
	case "little", "le":
		return LittleEndian, nil
	default:
		return 0, fmt.Errorf("codec: unknown byte order %q", s)
	}
}

// Uint is an unsigned integer of arbitrary width.
//
// The magnitude is stored big-endian with leading zero bytes stripped, so two
// Uints are equal exactly when they denote the same number regardless of the
// width they were read from. The zero value is 0.
type Uint struct {
	b []byte
}

// FromUint64 returns the Uint for v.
func FromUint64(v uint64) Uint {
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	return fromBigEndian(buf[:])
}

// FromBytes interprets b as a big-endian magnitude. b is copied.
func FromBytes(b []byte) Uint {
	return fromBigEndian(b)
}

func fromBigEndian(b []byte) Uint {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	if i == len(b) {
		return Uint{}
	}
	out := make([]byte, len(b)-i)
	copy(out, b[i:])
	return Uint{b: out}
}

// Hex returns the canonical hexadecimal form: a 0x prefix followed by the
// digits without leading zeros. Zero renders as "0x0".
func (u Uint) Hex() string {
	if len(u.b) == 0 {
		return "0x0"
	}
	digits := strings.TrimLeft(hex.EncodeToString(u.b), "0")
	return "0x" + digits
}

// String implements fmt.Stringer using the canonical hex form.
func (u Uint) String() string {
	return u.Hex()
}

// IsZero reports whether u is 0.
func (u Uint) IsZero() bool {
	return len(u.b) == 0
}

// Len returns the number of significant bytes.
func (u Uint) Len() int {
	return len(u.b)
}

// Equal reports whether u and o denote the same number.
func (u Uint) Equal(o Uint) bool {
	return bytes.Equal(u.b, o.b)
}

// Bytes returns a copy of the big-endian magnitude without leading zeros.
func (u Uint) Bytes() []byte {
	return bytes.Clone(u.b)
}

// Padded returns the big-endian magnitude left-padded with zeros to width
// bytes. Values wider than width are returned unpadded.
func (u Uint) Padded(width int) []byte {
	if len(u.b) >= width {
		return bytes.Clone(u.b)
	}
	out := make([]byte, width)
	copy(out[width-len(u.b):], u.b)
	return out
}

// Uint64 returns the value as a uint64. ok is false when the value needs
// more than 64 bits.
func (u Uint) Uint64() (v uint64, ok bool) {
	if len(u.b) > 8 {
		return 0, false
	}
	for _, c := range u.b {
		v = v<<8 | uint64(c)
	}
	return v, true
}

// Int returns the value as a 256-bit integer.
// Values wider than 32 bytes return ErrWidthOverflow.
func (u Uint) Int() (*uint256.Int, error) {
	if len(u.b) > 32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrWidthOverflow, len(u.b))
	}
	return new(uint256.Int).SetBytes(u.b), nil
}

// ReadUint reads length bytes at off and assembles them into an unsigned
// integer using the given byte order.
//
// A range that does not fit inside buf fails with an *UnderrunError.
func ReadUint(buf []byte, off, length int, order Endian) (Uint, error) {
	raw, err := Span(buf, off, length)
	if err != nil {
		return Uint{}, err
	}
	if order == BigEndian {
		return fromBigEndian(raw), nil
	}
	rev := make([]byte, len(raw))
	for i, c := range raw {
		rev[len(raw)-1-i] = c
	}
	return fromBigEndian(rev), nil
}

// Span returns the bytes [off, off+length) of buf in buffer order.
// The returned slice aliases buf.
func Span(buf []byte, off, length int) ([]byte, error) {
	if off < 0 || length < 0 || !sizing.InRange(off, length, len(buf)) {
		return nil, &UnderrunError{Offset: off, Length: length, Size: len(buf)}
	}
	return buf[off : off+length], nil
}

// Reader reads an unsigned integer with a byte order already chosen.
type Reader func(buf []byte, off, length int) (Uint, error)

// NewReader binds order into a Reader.
func NewReader(order Endian) Reader {
	return func(buf []byte, off, length int) (Uint, error) {
		return ReadUint(buf, off, length, order)
	}
}

// ParseUint parses a hexadecimal ("0x"-prefixed) or decimal string of up to
// 256 bits. Leading zero digits are accepted.
func ParseUint(s string) (Uint, error) {
	s = strings.TrimSpace(s)
	var (
		n   *uint256.Int
		err error
	)
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		rest = strings.TrimLeft(rest, "0")
		if rest == "" {
			return Uint{}, nil
		}
		n, err = uint256.FromHex("0x" + rest)
	} else {
		n, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return Uint{}, fmt.Errorf("codec: parse %q: %w", s, err)
	}
	b := n.Bytes32()
	return fromBigEndian(b[:]), nil
}
