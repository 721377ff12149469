package rowcodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueHeader_PlaceholderAndPatchRoundTrip(t *testing.T) {
	buf := NewBuf(false)
	headerStart := writeValueHeaderPlaceholder(buf, 3, 2)
	require.Equal(t, valueHeaderSize(2), buf.Size())

	idPos0, offPos0 := valueHeaderSlotPos(headerStart, 2, 0)
	idPos1, offPos1 := valueHeaderSlotPos(headerStart, 2, 1)
	require.NoError(t, buf.WriteI16At(idPos0, 5))
	require.NoError(t, buf.WriteI32At(offPos0, -1))
	require.NoError(t, buf.WriteI16At(idPos1, 6))
	require.NoError(t, buf.WriteI32At(offPos1, 20))
	require.NoError(t, patchValueHeaderCounts(buf, headerStart, 1, 1))

	out := NewBufFromBytes(buf.Bytes(), false)
	h, err := readValueHeader(out)
	require.NoError(t, err)
	require.Equal(t, int32(3), h.schemaVersion)
	require.Equal(t, int16(1), h.cntNotNull)
	require.Equal(t, int16(1), h.cntNull)
	require.Equal(t, []int16{5, 6}, h.ids)
	require.Equal(t, []int32{-1, 20}, h.offsets)

	off, isNull, ok := h.offsetForColumn(5)
	require.True(t, ok)
	require.True(t, isNull)
	require.Equal(t, int32(-1), off)

	off, isNull, ok = h.offsetForColumn(6)
	require.True(t, ok)
	require.False(t, isNull)
	require.Equal(t, int32(20), off)

	_, _, ok = h.offsetForColumn(99)
	require.False(t, ok)
}
