package sizing

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTooBig = errors.New("too big")

func TestAddInt(t *testing.T) {
	t.Parallel()

	sum, ok := AddInt(2, 3)
	assert.True(t, ok)
	assert.Equal(t, 5, sum)

	_, ok = AddInt(math.MaxInt, 1)
	assert.False(t, ok)
	_, ok = AddInt(-1, 1)
	assert.False(t, ok)
}

func TestInRange(t *testing.T) {
	t.Parallel()

	assert.True(t, InRange(0, 4, 4))
	assert.True(t, InRange(4, 0, 4))
	assert.False(t, InRange(1, 4, 4))
	assert.False(t, InRange(math.MaxInt, 1, 4))
}

func TestReadAllWithLimit(t *testing.T) {
	t.Parallel()

	data, err := ReadAllWithLimit(bytes.NewReader([]byte("abcd")), 4, errTooBig)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), data)

	_, err = ReadAllWithLimit(bytes.NewReader([]byte("abcde")), 4, errTooBig)
	assert.ErrorIs(t, err, errTooBig)
}

func TestToInt(t *testing.T) {
	t.Parallel()

	n, err := ToInt(42, errTooBig)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = ToInt(math.MaxUint64, errTooBig)
	assert.ErrorIs(t, err, errTooBig)
}
