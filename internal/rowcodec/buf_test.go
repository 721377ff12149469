package rowcodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuf_WireEndianRoundTrip(t *testing.T) {
	for _, le := range []bool{false, true} {
		buf := NewBuf(le)
		buf.WriteI16(-7)
		buf.WriteI32(123456)
		buf.WriteI64(-9876543210)

		out := NewBufFromBytes(buf.Bytes(), le)
		v16, err := out.ReadI16()
		require.NoError(t, err)
		require.Equal(t, int16(-7), v16)

		v32, err := out.ReadI32()
		require.NoError(t, err)
		require.Equal(t, int32(123456), v32)

		v64, err := out.ReadI64()
		require.NoError(t, err)
		require.Equal(t, int64(-9876543210), v64)
	}
}

func TestBuf_WireEndianBytesDiffer(t *testing.T) {
	leHost := NewBuf(true)
	leHost.WriteI32(1)
	beHost := NewBuf(false)
	beHost.WriteI32(1)
	require.NotEqual(t, leHost.Bytes(), beHost.Bytes())
	require.Equal(t, byte(1), leHost.Bytes()[3])
	require.Equal(t, byte(1), beHost.Bytes()[0])
}

func TestBuf_PositionalWrite(t *testing.T) {
	buf := NewBuf(false)
	buf.WriteI32(0)
	buf.WriteI32(0)
	require.NoError(t, buf.WriteI32At(0, 42))
	require.NoError(t, buf.WriteI32At(4, -1))

	v, err := buf.ReadI32At(0)
	require.NoError(t, err)
	require.Equal(t, int32(42), v)

	v, err = buf.ReadI32At(4)
	require.NoError(t, err)
	require.Equal(t, int32(-1), v)
}

func TestBuf_OutOfRangeFails(t *testing.T) {
	buf := NewBuf(false)
	buf.WriteU8(1)

	_, err := buf.ReadI32()
	require.ErrorIs(t, err, ErrBadBuffer)

	err = buf.Skip(10)
	require.ErrorIs(t, err, ErrBadBuffer)

	err = buf.WriteI32At(0, 1)
	require.ErrorIs(t, err, ErrBadBuffer)
}

func TestBuf_I32FirstBitFlippedPreservesOrder(t *testing.T) {
	values := []int32{-5, -1, 0, 1, 5}
	var encoded [][]byte
	for _, v := range values {
		buf := NewBuf(false)
		buf.WriteI32FirstBitFlipped(v)
		encoded = append(encoded, buf.Bytes())
	}
	for i := 1; i < len(encoded); i++ {
		require.Less(t, string(encoded[i-1]), string(encoded[i]))
	}
}

func TestBuf_I32FirstBitFlippedRoundTrip(t *testing.T) {
	for _, v := range []int32{-2147483648, -1, 0, 1, 2147483647} {
		buf := NewBuf(false)
		buf.WriteI32FirstBitFlipped(v)
		out := NewBufFromBytes(buf.Bytes(), false)
		got, err := out.ReadI32FirstBitFlipped()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestBuf_U32InvertedRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 0x7fffffff, 0x80000000, 0xffffffff} {
		buf := NewBuf(false)
		buf.WriteU32Inverted(v)
		out := NewBufFromBytes(buf.Bytes(), false)
		got, err := out.ReadU32Inverted()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestBuf_SetReadOffsetBounds(t *testing.T) {
	buf := NewBufFromBytes([]byte{1, 2, 3}, false)
	require.NoError(t, buf.SetReadOffset(3))
	require.Error(t, buf.SetReadOffset(4))
	require.Error(t, buf.SetReadOffset(-1))
}
