package rowcodec

import "fmt"

// valueHeader is the parsed form of a V2 value string's header: a schema
// version, parallel counts of present vs. null value columns, and parallel
// id/offset arrays letting a reader seek straight to one column's payload
// without walking the others.
//
// offsets[i] is the byte offset (within the value string) where column
// ids[i]'s payload begins, or -1 when that column is null. Slots follow the
// schema-declared order of the value columns, so null and non-null columns
// are interleaved rather than grouped.
type valueHeader struct {
	schemaVersion int32
	cntNotNull    int16
	cntNull       int16
	ids           []int16
	offsets       []int32
}

const (
	valueHeaderFixedSize = 4 + 2 + 2 // schema_version + cnt_not_null + cnt_null
	valueHeaderIDSize    = 2
	valueHeaderOffSize   = 4
)

// valueHeaderSize returns the byte size of a header over n value columns.
func valueHeaderSize(n int) int {
	return valueHeaderFixedSize + n*(valueHeaderIDSize+valueHeaderOffSize)
}

// writeValueHeaderPlaceholder appends a zeroed header of the right size so
// the encoder can back-patch the real ids/offsets once it knows where each
// column's payload landed. Returns the buffer offset the header starts at.
func writeValueHeaderPlaceholder(buf *Buf, schemaVersion int32, n int) int {
	start := buf.Size()
	buf.WriteI32(schemaVersion)
	buf.WriteI16(0)
	buf.WriteI16(0)
	for i := 0; i < n; i++ {
		buf.WriteI16(0)
	}
	for i := 0; i < n; i++ {
		buf.WriteI32(0)
	}
	return start
}

// valueHeaderSlotPos returns the byte positions of the i-th id and offset
// slot in a header of colCnt columns starting at headerStart. Slot i always
// corresponds to the i-th non-key column in schema-declared order, whether
// or not that column is null — ids are never grouped by nullness.
func valueHeaderSlotPos(headerStart, colCnt, i int) (idPos, offPos int) {
	idPos = headerStart + valueHeaderFixedSize + i*valueHeaderIDSize
	offPos = headerStart + valueHeaderFixedSize + colCnt*valueHeaderIDSize + i*valueHeaderOffSize
	return idPos, offPos
}

// patchValueHeaderCounts back-patches the two counts once the declared-
// order pass over non-key columns has finished.
func patchValueHeaderCounts(buf *Buf, headerStart int, cntNotNull, cntNull int16) error {
	if err := buf.WriteI16At(headerStart+4, cntNotNull); err != nil {
		return err
	}
	return buf.WriteI16At(headerStart+6, cntNull)
}

// readValueHeader parses a header starting at the buffer's current read
// offset, leaving the cursor positioned right after it (i.e. at the start
// of the column payload region).
func readValueHeader(buf *Buf) (valueHeader, error) {
	schemaVersion, err := buf.ReadI32()
	if err != nil {
		return valueHeader{}, fmt.Errorf("rowcodec: read value header schema version: %w", err)
	}
	cntNotNull, err := buf.ReadI16()
	if err != nil {
		return valueHeader{}, fmt.Errorf("rowcodec: read value header cnt_not_null: %w", err)
	}
	cntNull, err := buf.ReadI16()
	if err != nil {
		return valueHeader{}, fmt.Errorf("rowcodec: read value header cnt_null: %w", err)
	}
	total := int(cntNotNull) + int(cntNull)
	ids := make([]int16, total)
	for i := 0; i < total; i++ {
		id, err := buf.ReadI16()
		if err != nil {
			return valueHeader{}, fmt.Errorf("rowcodec: read value header id[%d]: %w", i, err)
		}
		ids[i] = id
	}
	offsets := make([]int32, total)
	for i := 0; i < total; i++ {
		off, err := buf.ReadI32()
		if err != nil {
			return valueHeader{}, fmt.Errorf("rowcodec: read value header offset[%d]: %w", i, err)
		}
		offsets[i] = off
	}
	return valueHeader{
		schemaVersion: schemaVersion,
		cntNotNull:    cntNotNull,
		cntNull:       cntNull,
		ids:           ids,
		offsets:       offsets,
	}, nil
}

// offsetForColumn returns the payload offset for columnID and whether the
// header records it as null. ok is false if the column isn't present in
// the header at all (schema/value mismatch).
func (h valueHeader) offsetForColumn(columnID int16) (offset int32, isNull bool, ok bool) {
	for i, id := range h.ids {
		if id == columnID {
			return h.offsets[i], h.offsets[i] == -1, true
		}
	}
	return 0, false, false
}
