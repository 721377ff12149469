// Package v1 is the legacy row codec kept readable for forward-compatible
// reads. It only needs to present the same abstract Encode/Decode surface
// the V2 codec does so pkg/rowcodec's dispatcher can delegate to either
// one: a null-bitmap prefix followed by a fixed switch-per-type append,
// little-endian for field widths and fixed big-endian for the key prefix.
package v1

import (
	"errors"
	"math"
)

// ColumnType is V1's own closed type set, narrower than V2's (no floats
// split by width, no lists).
type ColumnType uint8

const (
	ColInt32 ColumnType = iota
	ColInt64
	ColBool
	ColFloat64
	ColText
	ColBytes
)

// Column and Schema describe one legacy table's layout, kept in the v1
// package so the V2 side never imports legacy types.
type Column struct {
	Index    int
	Name     string
	Type     ColumnType
	IsKey    bool
	Nullable bool
}

type Schema struct {
	Cols []Column
}

func (s Schema) NumCols() int { return len(s.Cols) }

func (s Schema) KeyColumns() []Column {
	var out []Column
	for _, c := range s.Cols {
		if c.IsKey {
			out = append(out, c)
		}
	}
	return out
}

func (s Schema) ValueColumns() []Column {
	var out []Column
	for _, c := range s.Cols {
		if !c.IsKey {
			out = append(out, c)
		}
	}
	return out
}

var (
	ErrSchemaMismatch  = errors.New("rowcodec/v1: schema/values mismatch")
	ErrBadBuffer       = errors.New("rowcodec/v1: buffer underflow/overflow")
	ErrVarTooLong      = errors.New("rowcodec/v1: variable length exceeds u16")
	ErrUnsupportedType = errors.New("rowcodec/v1: unsupported type")
)

// codecVersionTagV1 is the trailing tag V2's dispatcher (pkg/rowcodec)
// checks the low byte of to route a key to this package. Written fixed
// big-endian so its last byte is always 0x01, mirroring V2's tag.
const codecVersionTagV1 uint32 = 1

// Codec is a fixed-schema V1 encoder/decoder: one instance per (namespace,
// common_id, schema) tuple, matching V2's Encoder/Decoder shape so the
// dispatcher can hold either behind one field.
type Codec struct {
	CommonID int64
	Schema   Schema
}

// Encode produces (key, value) for one record. Key columns and value
// columns are each packed with a null-bitmap-then-fields layout,
// independently, so the value half can still be decoded without
// re-parsing the key.
func (c Codec) Encode(namespace byte, record []any) (key, value []byte, err error) {
	keyCols := c.Schema.KeyColumns()
	valCols := c.Schema.ValueColumns()

	keyBody, err := encodeRow(keyCols, recordFor(record, keyCols))
	if err != nil {
		return nil, nil, err
	}
	valBody, err := encodeRow(valCols, recordFor(record, valCols))
	if err != nil {
		return nil, nil, err
	}

	key = make([]byte, 0, 1+8+len(keyBody)+4)
	key = append(key, namespace)
	var idBuf [8]byte
	putU64BE(idBuf[:], uint64(c.CommonID))
	key = append(key, idBuf[:]...)
	key = append(key, keyBody...)
	var tagBuf [4]byte
	putU32BE(tagBuf[:], codecVersionTagV1)
	key = append(key, tagBuf[:]...)

	return key, valBody, nil
}

// Decode parses (key, value) back into a record sized to the schema's
// widest column index.
func (c Codec) Decode(key, value []byte) ([]any, error) {
	if len(key) < 1+8+4 {
		return nil, ErrBadBuffer
	}
	if int64(getU64BEAt(key, 1)) != c.CommonID {
		return nil, ErrSchemaMismatch
	}
	keyBody := key[9 : len(key)-4]

	keyCols := c.Schema.KeyColumns()
	valCols := c.Schema.ValueColumns()

	keyVals, err := decodeRow(keyCols, keyBody)
	if err != nil {
		return nil, err
	}
	valVals, err := decodeRow(valCols, value)
	if err != nil {
		return nil, err
	}

	n := 0
	for _, col := range c.Schema.Cols {
		if col.Index+1 > n {
			n = col.Index + 1
		}
	}
	out := make([]any, n)
	for i, col := range keyCols {
		out[col.Index] = keyVals[i]
	}
	for i, col := range valCols {
		out[col.Index] = valVals[i]
	}
	return out, nil
}

func recordFor(record []any, cols []Column) []any {
	out := make([]any, len(cols))
	for i, col := range cols {
		if col.Index < len(record) {
			out[i] = record[col.Index]
		}
	}
	return out
}

// encodeRow packs a row as a null bitmap followed by one switch-per-type
// append per column.
func encodeRow(cols []Column, values []any) ([]byte, error) {
	nc := len(cols)
	if len(values) != nc {
		return nil, ErrSchemaMismatch
	}

	nbBytes := (nc + 7) / 8
	out := make([]byte, nbBytes)

	for i, col := range cols {
		v := values[i]
		if v == nil {
			if !col.Nullable {
				return nil, ErrSchemaMismatch
			}
			out[i/8] |= 1 << (uint(i) & 7)
			continue
		}

		switch col.Type {
		case ColInt32:
			x, ok := asInt32(v)
			if !ok {
				return nil, ErrSchemaMismatch
			}
			var b [4]byte
			putU32(b[:], uint32(x))
			out = append(out, b[:]...)

		case ColInt64:
			x, ok := asInt64(v)
			if !ok {
				return nil, ErrSchemaMismatch
			}
			var b [8]byte
			putU64(b[:], uint64(x))
			out = append(out, b[:]...)

		case ColBool:
			x, ok := v.(bool)
			if !ok {
				return nil, ErrSchemaMismatch
			}
			if x {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}

		case ColFloat64:
			x, ok := asFloat64(v)
			if !ok {
				return nil, ErrSchemaMismatch
			}
			var b [8]byte
			putU64(b[:], math.Float64bits(x))
			out = append(out, b[:]...)

		case ColText:
			str, ok := v.(string)
			if !ok {
				return nil, ErrSchemaMismatch
			}
			bs := []byte(str)
			if len(bs) > math.MaxUint16 {
				return nil, ErrVarTooLong
			}
			var l [2]byte
			putU16(l[:], uint16(len(bs)))
			out = append(out, l[:]...)
			out = append(out, bs...)

		case ColBytes:
			bs, ok := v.([]byte)
			if !ok {
				return nil, ErrSchemaMismatch
			}
			if len(bs) > math.MaxUint16 {
				return nil, ErrVarTooLong
			}
			var l [2]byte
			putU16(l[:], uint16(len(bs)))
			out = append(out, l[:]...)
			out = append(out, bs...)

		default:
			return nil, ErrUnsupportedType
		}
	}
	return out, nil
}

// decodeRow is the inverse of encodeRow.
func decodeRow(cols []Column, buf []byte) ([]any, error) {
	nc := len(cols)
	nbBytes := (nc + 7) / 8
	if len(buf) < nbBytes {
		return nil, ErrBadBuffer
	}
	nullmap := buf[:nbBytes]
	i := nbBytes

	out := make([]any, nc)
	for colIdx, col := range cols {
		isNull := (nullmap[colIdx/8]>>(uint(colIdx)&7))&1 == 1
		if isNull {
			out[colIdx] = nil
			continue
		}

		switch col.Type {
		case ColInt32:
			if i+4 > len(buf) {
				return nil, ErrBadBuffer
			}
			out[colIdx] = int32(getU32(buf[i : i+4]))
			i += 4

		case ColInt64:
			if i+8 > len(buf) {
				return nil, ErrBadBuffer
			}
			out[colIdx] = int64(getU64(buf[i : i+8]))
			i += 8

		case ColBool:
			if i+1 > len(buf) {
				return nil, ErrBadBuffer
			}
			out[colIdx] = buf[i] != 0
			i++

		case ColFloat64:
			if i+8 > len(buf) {
				return nil, ErrBadBuffer
			}
			out[colIdx] = math.Float64frombits(getU64(buf[i : i+8]))
			i += 8

		case ColText:
			if i+2 > len(buf) {
				return nil, ErrBadBuffer
			}
			l := int(getU16(buf[i : i+2]))
			i += 2
			if i+l > len(buf) {
				return nil, ErrBadBuffer
			}
			out[colIdx] = string(buf[i : i+l])
			i += l

		case ColBytes:
			if i+2 > len(buf) {
				return nil, ErrBadBuffer
			}
			l := int(getU16(buf[i : i+2]))
			i += 2
			if i+l > len(buf) {
				return nil, ErrBadBuffer
			}
			cp := make([]byte, l)
			copy(cp, buf[i:i+l])
			out[colIdx] = cp
			i += l

		default:
			return nil, ErrUnsupportedType
		}
	}
	return out, nil
}

func asInt32(v any) (int32, bool) {
	switch x := v.(type) {
	case int32:
		return x, true
	case int:
		if x >= math.MinInt32 && x <= math.MaxInt32 {
			return int32(x), true
		}
	case int64:
		if x >= math.MinInt32 && x <= math.MaxInt32 {
			return int32(x), true
		}
	}
	return 0, false
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}
