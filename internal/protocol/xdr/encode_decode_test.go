package xdr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint32RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint32(&buf, 0xdeadbeef))
	got, err := DecodeUint32(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), got)
}

func TestInt32RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInt32(&buf, -1))
	got, err := DecodeInt32(&buf)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), got)
}

func TestBoolRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		var buf bytes.Buffer
		require.NoError(t, WriteBool(&buf, v))
		got, err := DecodeBool(&buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteString(&buf, "/home/u/src.txt", 4096))
	got, err := DecodeString(&buf, 4096)
	require.NoError(t, err)
	assert.Equal(t, "/home/u/src.txt", got)
}

func TestStringRoundTrip_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteString(&buf, "", 4096))
	got, err := DecodeString(&buf, 4096)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

// Every encoded string/opaque value must end on a 4-byte boundary.
func TestWriteOpaque_PadsToFourByteBoundary(t *testing.T) {
	for n := 0; n <= 8; n++ {
		var buf bytes.Buffer
		require.NoError(t, WriteOpaque(&buf, bytes.Repeat([]byte{'x'}, n), 4096))
		assert.Equal(t, 0, buf.Len()%4, "length %d did not pad to a 4-byte boundary", n)
	}
}

func TestWriteOpaque_RejectsOverMax(t *testing.T) {
	var buf bytes.Buffer
	err := WriteOpaque(&buf, make([]byte, 10), 5)
	assert.Error(t, err)
}

// A decoder must reject a frame that declares a length greater than the
// field's max without allocating the oversized buffer.
func TestDecodeOpaque_RejectsOverMax(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint32(&buf, 1<<30)) // declared length, body never written
	_, err := DecodeOpaque(&buf, 4096)
	assert.Error(t, err)
}

func TestDecodeOpaque_TruncatedInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint32(&buf, 10))
	buf.WriteString("short") // fewer than the declared 10 bytes
	_, err := DecodeOpaque(&buf, 4096)
	assert.Error(t, err)
}

func TestUnionDiscriminantRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeUnionDiscriminant(&buf, 7))
	got, err := DecodeUnionDiscriminant(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), got)
}
