package rowcodec

import (
	"fmt"
	"log/slog"
	"math"
)

// codecVersionTagV2 is the 4-byte trailing discriminator this package
// writes at the end of every key it produces. Always written fixed
// big-endian regardless of the instance's configured wire endianness —
// like common_id, its byte layout is part of the wire contract, not
// subject to per-instance configuration, because the dispatcher (and
// this package's own framing check) depends on its last byte reading
// back as 0x02 no matter how the producing instance was constructed.
const codecVersionTagV2 uint32 = 2

// Encoder produces (key, value) byte strings from a record and a schema
// list.
type Encoder struct {
	CommonID      int64
	SchemaVersion int32
	Schemas       SchemaList
	LE            bool
}

// Encode emits the key (namespace, common_id, key columns in declared
// order, codec_version_tag) and the value (header region back-patched with
// per-column ids/offsets, then column payloads).
func (e Encoder) Encode(namespace byte, record []ColumnValue) (key, value []byte, err error) {
	key, err = e.EncodeKeyOnly(namespace, record)
	if err != nil {
		return nil, nil, err
	}
	value, err = e.EncodeValueOnly(record)
	if err != nil {
		return nil, nil, err
	}
	return key, value, nil
}

// EncodeKeyOnly emits just the key byte string.
func (e Encoder) EncodeKeyOnly(namespace byte, record []ColumnValue) ([]byte, error) {
	if err := e.Schemas.Validate(); err != nil {
		return nil, err
	}
	buf := NewBuf(e.LE)
	buf.WriteU8(namespace)
	buf.WriteU64BE(uint64(e.CommonID))
	for _, col := range e.Schemas {
		if !col.IsKey {
			continue
		}
		v, err := recordValue(record, col)
		if err != nil {
			return nil, err
		}
		if v.IsNull() && !col.AllowNull {
			return nil, fmt.Errorf("rowcodec: column %q (index %d): %w", col.Name, col.Index, ErrInvalidNull)
		}
		codec, err := codecFor(col.Type)
		if err != nil {
			return nil, err
		}
		if err := codec.EncodeKey(v, buf); err != nil {
			return nil, fmt.Errorf("rowcodec: encode key column %q: %w", col.Name, err)
		}
	}
	buf.WriteU32BE(codecVersionTagV2)
	return buf.Bytes(), nil
}

// EncodeValueOnly emits just the value byte string.
func (e Encoder) EncodeValueOnly(record []ColumnValue) ([]byte, error) {
	nonKey := e.Schemas.ValueColumns()
	colCnt := len(nonKey)

	buf := NewBuf(e.LE)
	headerStart := writeValueHeaderPlaceholder(buf, e.SchemaVersion, colCnt)

	var cntNotNull, cntNull int16
	for i, col := range nonKey {
		v, err := recordValue(record, col)
		if err != nil {
			return nil, err
		}
		idPos, offPos := valueHeaderSlotPos(headerStart, colCnt, i)
		if v.IsNull() {
			if !col.AllowNull {
				return nil, fmt.Errorf("rowcodec: column %q (index %d): %w", col.Name, col.Index, ErrInvalidNull)
			}
			cntNull++
			if err := buf.WriteI16At(idPos, int16(col.Index)); err != nil {
				return nil, err
			}
			if err := buf.WriteI32At(offPos, -1); err != nil {
				return nil, err
			}
			continue
		}
		cntNotNull++
		offset := buf.Size() - headerStart
		if err := buf.WriteI16At(idPos, int16(col.Index)); err != nil {
			return nil, err
		}
		if err := buf.WriteI32At(offPos, int32(offset)); err != nil {
			return nil, err
		}
		codec, err := codecFor(col.Type)
		if err != nil {
			return nil, err
		}
		if _, err := codec.EncodeValue(v, buf); err != nil {
			return nil, fmt.Errorf("rowcodec: encode value column %q: %w", col.Name, err)
		}
	}
	if err := patchValueHeaderCounts(buf, headerStart, cntNotNull, cntNull); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeMinKeyPrefix returns namespace | common_id, the inclusive lower
// bound of every key this encoder's common_id can produce.
func (e Encoder) EncodeMinKeyPrefix(namespace byte) ([]byte, error) {
	buf := NewBuf(e.LE)
	buf.WriteU8(namespace)
	buf.WriteU64BE(uint64(e.CommonID))
	return buf.Bytes(), nil
}

// EncodeMaxKeyPrefix returns namespace | (common_id+1), the exclusive
// upper bound. Fails with ErrCommonIDOverflow when common_id is already
// math.MaxInt64.
func (e Encoder) EncodeMaxKeyPrefix(namespace byte) ([]byte, error) {
	if e.CommonID == math.MaxInt64 {
		return nil, ErrCommonIDOverflow
	}
	buf := NewBuf(e.LE)
	buf.WriteU8(namespace)
	buf.WriteU64BE(uint64(e.CommonID + 1))
	return buf.Bytes(), nil
}

// recordValue looks up the value for col in record by its schema index,
// treating an out-of-range record as an all-null tail (a caller-supplied
// record slice need not be padded with explicit nulls past its last
// present column).
func recordValue(record []ColumnValue, col ColumnSchema) (ColumnValue, error) {
	if col.Index < 0 {
		return ColumnValue{}, fmt.Errorf("rowcodec: column %q has negative index %d: %w", col.Name, col.Index, ErrMalformed)
	}
	if col.Index >= len(record) {
		slog.Debug("rowcodec: record shorter than schema index, treating as null", "column", col.Name, "index", col.Index, "record_len", len(record))
		return Null(), nil
	}
	return record[col.Index], nil
}
