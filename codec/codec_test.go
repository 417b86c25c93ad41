package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		buf    []byte
		off    int
		length int
		order  Endian
		want   string
	}{
		{name: "all zero big endian", buf: make([]byte, 8), length: 8, order: BigEndian, want: "0x0"},
		{name: "all zero little endian", buf: make([]byte, 4), length: 4, order: LittleEndian, want: "0x0"},
		{name: "zero length", buf: []byte{0xff}, length: 0, order: BigEndian, want: "0x0"},
		{name: "300 big endian", buf: []byte{0x00, 0x00, 0x01, 0x2c}, length: 4, order: BigEndian, want: "0x12c"},
		{name: "300 bytes little endian", buf: []byte{0x00, 0x00, 0x01, 0x2c}, length: 4, order: LittleEndian, want: "0x2c010000"},
		{name: "offset", buf: []byte{0xaa, 0xbb, 0x00, 0x07}, off: 2, length: 2, order: BigEndian, want: "0x7"},
		{name: "leading nibble kept once", buf: []byte{0x0a, 0x0b}, length: 2, order: BigEndian, want: "0xa0b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ReadUint(tt.buf, tt.off, tt.length, tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Hex())
		})
	}
}

func TestReadUintNumericValue(t *testing.T) {
	t.Parallel()

	buf := []byte{0x00, 0x00, 0x01, 0x2c}

	be, err := ReadUint(buf, 0, 4, BigEndian)
	require.NoError(t, err)
	v, ok := be.Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(300), v)

	le, err := ReadUint(buf, 0, 4, LittleEndian)
	require.NoError(t, err)
	v, ok = le.Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(0x2c010000), v)
	assert.False(t, be.Equal(le))
}

func TestReadUintWide(t *testing.T) {
	t.Parallel()

	hash := []byte{
		0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
		0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
	}
	u, err := ReadUint(hash, 0, len(hash), BigEndian)
	require.NoError(t, err)

	assert.Equal(t, "0xdeadbeef0102030405060708090a0b0c0d0e0f10", u.Hex())
	_, ok := u.Uint64()
	assert.False(t, ok, "20-byte value must not fit in uint64")

	n, err := u.Int()
	require.NoError(t, err)
	assert.Equal(t, u.Hex(), n.Hex())
	assert.Equal(t, hash, u.Padded(20))
}

func TestReadUintUnderrun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		off    int
		length int
	}{
		{name: "past end", off: 2, length: 4},
		{name: "offset beyond buffer", off: 10, length: 1},
		{name: "negative offset", off: -1, length: 1},
		{name: "negative length", off: 0, length: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadUint([]byte{1, 2, 3, 4}, tt.off, tt.length, BigEndian)
			require.ErrorIs(t, err, ErrBufferUnderrun)

			var uerr *UnderrunError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tt.off, uerr.Offset)
			assert.Equal(t, 4, uerr.Size)
		})
	}
}

func TestNewReader(t *testing.T) {
	t.Parallel()

	buf := []byte{0x01, 0x00}
	be := NewReader(BigEndian)
	le := NewReader(LittleEndian)

	got, err := be(buf, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "0x100", got.Hex())

	got, err = le(buf, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "0x1", got.Hex())
}

func TestUint(t *testing.T) {
	t.Parallel()

	t.Run("from uint64", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "0x0", FromUint64(0).Hex())
		assert.Equal(t, "0xffffffffffffffff", FromUint64(^uint64(0)).Hex())
		assert.True(t, FromUint64(300).Equal(FromBytes([]byte{0, 0, 1, 0x2c})))
	})

	t.Run("width overflow", func(t *testing.T) {
		t.Parallel()
		wide := make([]byte, 33)
		wide[0] = 1
		_, err := FromBytes(wide).Int()
		assert.ErrorIs(t, err, ErrWidthOverflow)
	})

	t.Run("bytes are copies", func(t *testing.T) {
		t.Parallel()
		src := []byte{0x12, 0x34}
		u := FromBytes(src)
		src[0] = 0
		assert.Equal(t, []byte{0x12, 0x34}, u.Bytes())
	})
}

func TestParseEndian(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Endian{"big": BigEndian, "BE": BigEndian, "little": LittleEndian, "le": LittleEndian} {
		got, err := ParseEndian(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseEndian("middle")
	assert.Error(t, err)
}
