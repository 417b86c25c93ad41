package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/gitindex/codec"
)

func TestDecodeValueAndString(t *testing.T) {
	t.Parallel()

	s := MustNew("record",
		Field{Name: "sig", Size: Bytes(4), Kind: StringKind{}},
		Field{Name: "n", Size: Bytes(4), Kind: ValueKind{}},
	)
	buf := []byte{'D', 'I', 'R', 'C', 0x00, 0x00, 0x01, 0x2c}

	rec, end, err := DecodeAt(s, buf, codec.BigEndian, 0)
	require.NoError(t, err)
	assert.Equal(t, len(buf), end)
	assert.Equal(t, []string{"sig", "n"}, rec.Names())

	sig, err := rec.Text("sig")
	require.NoError(t, err)
	assert.Equal(t, "DIRC", sig)

	n, err := rec.Uint64("n")
	require.NoError(t, err)
	assert.Equal(t, uint64(300), n)
	assert.Equal(t, "0x12c", rec.Strings()["n"])
}

func TestDecodeFieldRef(t *testing.T) {
	t.Parallel()

	s := MustNew("prefixed",
		Field{Name: "A", Size: Bytes(4), Kind: ValueKind{}},
		Field{Name: "B", Size: Ref("A"), Kind: StringKind{}},
		Field{Name: "C", Size: Bytes(1), Kind: ValueKind{}},
	)
	buf := []byte{0, 0, 0, 5, 'h', 'e', 'l', 'l', 'o', 0x2a}

	rec, end, err := DecodeAt(s, buf, codec.BigEndian, 0)
	require.NoError(t, err)
	assert.Equal(t, len(buf), end)

	b, err := rec.Text("B")
	require.NoError(t, err)
	assert.Equal(t, "hello", b)

	c, err := rec.Uint64("C")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x2a), c)
}

func TestDecodeRefToIgnoredFieldIsZero(t *testing.T) {
	t.Parallel()

	s := MustNew("ignored",
		Field{Name: "len", Size: Bytes(1), Kind: IgnoreKind{}},
		Field{Name: "body", Size: Ref("len"), Kind: StringKind{}},
		Field{Name: "tail", Size: Bytes(1), Kind: ValueKind{}},
	)
	rec, err := Decode(s, []byte{3, 7}, codec.BigEndian, 0)
	require.NoError(t, err)

	_, ok := rec.Get("len")
	assert.False(t, ok, "ignored fields are not recorded")
	body, _ := rec.Get("body")
	assert.Equal(t, "", body.Text)
	tail, err := rec.Uint64("tail")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), tail)
}

func TestDecodeStringKeepsLeadingNUL(t *testing.T) {
	t.Parallel()

	s := MustNew("padded", Field{Name: "s", Size: Bytes(4), Kind: StringKind{}})
	rec, err := Decode(s, []byte{0x00, 'a', 0x00, 0x00}, codec.BigEndian, 0)
	require.NoError(t, err)

	text, err := rec.Text("s")
	require.NoError(t, err)
	assert.Equal(t, "\x00a", text, "only trailing padding is removed")
}

func TestDecodeLittleEndian(t *testing.T) {
	t.Parallel()

	s := MustNew("le",
		Field{Name: "n", Size: Bytes(2), Kind: ValueKind{}},
		Field{Name: "s", Size: Bytes(3), Kind: StringKind{}},
	)
	rec, err := Decode(s, []byte{0x01, 0x02, 'a', 'b', 'c'}, codec.LittleEndian, 0)
	require.NoError(t, err)

	n, err := rec.Uint64("n")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0201), n)

	text, err := rec.Text("s")
	require.NoError(t, err)
	assert.Equal(t, "abc", text, "text keeps file order in either byte order")
}

func TestDecodeStartOffsetAndPinnedOffset(t *testing.T) {
	t.Parallel()

	s := MustNew("pinned",
		Field{Name: "a", Size: Bytes(1), Kind: ValueKind{}},
		Field{Name: "magic", Size: Bytes(1), Kind: ValueKind{}, Offset: At(0)},
		Field{Name: "c", Size: Bytes(1), Kind: ValueKind{}},
	)
	buf := []byte{0xee, 0x01, 0x02, 0x03}

	rec, end, err := DecodeAt(s, buf, codec.BigEndian, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, end, "pinned fields still advance the running offset")

	a, _ := rec.Uint64("a")
	magic, _ := rec.Uint64("magic")
	c, _ := rec.Uint64("c")
	assert.Equal(t, uint64(0x01), a)
	assert.Equal(t, uint64(0xee), magic)
	assert.Equal(t, uint64(0x03), c)
}

func TestDecodeEnum(t *testing.T) {
	t.Parallel()

	s := MustNew("enum",
		Field{Name: "stage", Size: Bytes(1), Kind: Enum(map[uint64]string{0: "normal", 1: "base", 2: "ours"})},
	)

	rec, err := Decode(s, []byte{2}, codec.BigEndian, 0)
	require.NoError(t, err)
	v, _ := rec.Get("stage")
	assert.Equal(t, "ours", v.String())

	rec, err = Decode(s, []byte{9}, codec.BigEndian, 0)
	require.NoError(t, err)
	v, _ = rec.Get("stage")
	assert.False(t, v.Labeled)
	assert.Equal(t, "0x9", v.String(), "unknown values fall back to the raw value")
}

func TestDecodeArray(t *testing.T) {
	t.Parallel()

	s := MustNew("array",
		Field{Name: "type", Size: Bytes(1), Kind: Array("none", "commit", "tree", "blob")},
	)

	rec, err := Decode(s, []byte{3}, codec.BigEndian, 0)
	require.NoError(t, err)
	v, _ := rec.Get("type")
	assert.Equal(t, "blob", v.String())

	rec, err = Decode(s, []byte{7}, codec.BigEndian, 0)
	require.NoError(t, err)
	v, _ = rec.Get("type")
	assert.Equal(t, "0x7", v.String())
}

func TestDecodeBit(t *testing.T) {
	t.Parallel()

	s := MustNew("flags",
		Field{Name: "flags", Size: Bytes(2), Kind: Bits(
			Flag(0x8000, "assume-valid"),
			Flag(0x4000, "extended"),
			Flag(0x3000, "stage"),
		)},
	)

	tests := []struct {
		name   string
		buf    []byte
		text   string
		labels []string
	}{
		{name: "exact match", buf: []byte{0x40, 0x00}, text: "extended", labels: []string{"extended"}},
		{name: "exact match of multi-bit mask", buf: []byte{0x30, 0x00}, text: "stage", labels: []string{"stage"}},
		{name: "combined", buf: []byte{0xc0, 0x12}, text: "assume-valid|extended", labels: []string{"assume-valid", "extended"}},
		{name: "partial overlap", buf: []byte{0x90, 0x00}, text: "assume-valid|stage", labels: []string{"assume-valid", "stage"}},
		{name: "no match", buf: []byte{0x00, 0x01}, text: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, err := Decode(s, tt.buf, codec.BigEndian, 0)
			require.NoError(t, err)
			v, ok := rec.Get("flags")
			require.True(t, ok)
			assert.Equal(t, tt.text, v.Text)
			assert.Equal(t, tt.labels, v.Labels)
		})
	}
}

func TestDecodeUnsupportedFieldType(t *testing.T) {
	t.Parallel()

	for _, kind := range []Kind{bogusKind{}, nil} {
		s := MustNew("bad",
			Field{Name: "ok", Size: Bytes(1), Kind: ValueKind{}},
			Field{Name: "broken", Size: Bytes(1), Kind: kind},
		)
		rec, err := Decode(s, []byte{1, 2}, codec.BigEndian, 0)
		require.ErrorIs(t, err, ErrUnsupportedFieldType)
		assert.Equal(t, 0, rec.Len(), "no partial record")

		var uerr *UnsupportedFieldTypeError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "broken", uerr.Field)
		assert.Equal(t, KindName(kind), uerr.Kind)
		assert.Equal(t, 1, uerr.Offset)
	}
}

func TestDecodeBufferUnderrun(t *testing.T) {
	t.Parallel()

	s := MustNew("short",
		Field{Name: "len", Size: Bytes(1), Kind: ValueKind{}},
		Field{Name: "body", Size: Ref("len"), Kind: StringKind{}},
	)
	rec, err := Decode(s, []byte{10, 'a', 'b'}, codec.BigEndian, 0)
	require.ErrorIs(t, err, codec.ErrBufferUnderrun)
	assert.Equal(t, 0, rec.Len())

	var ferr *FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "body", ferr.Field)
	assert.Equal(t, 1, ferr.Offset)
}

func TestRecordIsImmutable(t *testing.T) {
	t.Parallel()

	var base Record
	a := base.with("a", Value{Raw: codec.FromUint64(1)})
	b := a.with("b", Value{Raw: codec.FromUint64(2)})
	c := a.with("c", Value{Raw: codec.FromUint64(3)})

	assert.Equal(t, 0, base.Len())
	assert.Equal(t, []string{"a"}, a.Names())
	assert.Equal(t, []string{"a", "b"}, b.Names())
	assert.Equal(t, []string{"a", "c"}, c.Names())

	_, err := a.Uint64("missing")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}
