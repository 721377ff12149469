package rowcodec

import (
	"fmt"
	"log/slog"
	"sort"
)

// Decoder parses (key, value) byte strings into a record, using the value
// header's id/offset arrays to support O(1) column projection.
type Decoder struct {
	CommonID      int64
	SchemaVersion int32
	Schemas       SchemaList
	LE            bool
}

// Decode runs the framing checks, parses the header, then makes one pass
// over the schema list decoding every column.
func (d Decoder) Decode(key, value []byte) ([]ColumnValue, error) {
	keyBuf, valueBuf, header, err := d.frame(key, value)
	if err != nil {
		return nil, err
	}
	record := make([]ColumnValue, recordLen(d.Schemas))
	for _, col := range d.Schemas {
		if col.IsKey {
			v, err := decodeKeyColumn(keyBuf, col)
			if err != nil {
				return nil, err
			}
			record[col.Index] = v
			continue
		}
		v, err := decodeValueColumn(valueBuf, header, col)
		if err != nil {
			return nil, err
		}
		record[col.Index] = v
	}
	return record, nil
}

// DecodeKeyOnly runs only the key pass; value slots in the returned record
// are set to Null().
func (d Decoder) DecodeKeyOnly(key []byte) ([]ColumnValue, error) {
	keyBuf, err := d.frameKey(key)
	if err != nil {
		return nil, err
	}
	record := make([]ColumnValue, recordLen(d.Schemas))
	for _, col := range d.Schemas {
		if !col.IsKey {
			record[col.Index] = Null()
			continue
		}
		v, err := decodeKeyColumn(keyBuf, col)
		if err != nil {
			return nil, err
		}
		record[col.Index] = v
	}
	return record, nil
}

// DecodeProjected decodes only the requested columns: columns is a
// sequence of distinct schema indices. Key columns are always walked
// sequentially (key layout has no per-column offsets to jump through);
// value columns seek directly via the header's offset map. Output slot i
// of the returned slice holds the value for columns[i].
func (d Decoder) DecodeProjected(key, value []byte, columns []int) ([]ColumnValue, error) {
	keyBuf, valueBuf, header, err := d.frame(key, value)
	if err != nil {
		return nil, err
	}

	type want struct {
		index int
		slot  int
	}
	wanted := make([]want, len(columns))
	for i, idx := range columns {
		wanted[i] = want{index: idx, slot: i}
	}
	sort.Slice(wanted, func(i, j int) bool { return wanted[i].index < wanted[j].index })

	byIndex := make(map[int]ColumnSchema, len(d.Schemas))
	for _, col := range d.Schemas {
		byIndex[col.Index] = col
	}

	out := make([]ColumnValue, len(columns))
	wi := 0
	for _, col := range d.Schemas {
		isWanted := wi < len(wanted) && wanted[wi].index == col.Index
		if col.IsKey {
			if isWanted {
				v, err := decodeKeyColumn(keyBuf, col)
				if err != nil {
					return nil, err
				}
				out[wanted[wi].slot] = v
				wi++
			} else {
				codec, err := codecFor(col.Type)
				if err != nil {
					return nil, err
				}
				if _, err := codec.SkipKey(keyBuf); err != nil {
					return nil, fmt.Errorf("rowcodec: skip key column %q: %w: %w", col.Name, ErrMalformed, err)
				}
			}
			continue
		}
		if isWanted {
			v, err := decodeValueColumn(valueBuf, header, col)
			if err != nil {
				return nil, err
			}
			out[wanted[wi].slot] = v
			wi++
		}
	}
	if wi < len(wanted) {
		return nil, fmt.Errorf("rowcodec: projected column index %d not present in schema: %w", wanted[wi].index, ErrMalformed)
	}
	return out, nil
}

// frame runs the shared framing checks and returns the positioned key
// buffer, value buffer and parsed value header.
func (d Decoder) frame(key, value []byte) (*Buf, *Buf, valueHeader, error) {
	keyBuf, err := d.frameKey(key)
	if err != nil {
		return nil, nil, valueHeader{}, err
	}
	valueBuf := NewBufFromBytes(value, d.LE)
	header, err := readValueHeader(valueBuf)
	if err != nil {
		return nil, nil, valueHeader{}, fmt.Errorf("rowcodec: %w: %v", ErrMalformed, err)
	}
	if header.schemaVersion > d.SchemaVersion {
		slog.Warn("rowcodec: value schema version too new", "got", header.schemaVersion, "max", d.SchemaVersion)
		return nil, nil, valueHeader{}, ErrSchemaVersionTooNew
	}
	total := int(header.cntNotNull) + int(header.cntNull)
	if total != len(header.ids) || int(header.cntNotNull) < 0 || int(header.cntNull) < 0 {
		return nil, nil, valueHeader{}, fmt.Errorf("rowcodec: inconsistent value header counts: %w", ErrMalformed)
	}
	return keyBuf, valueBuf, header, nil
}

// frameKey runs the key-only half of the framing checks: namespace
// discard, common_id prefix match, codec_version_tag match.
func (d Decoder) frameKey(key []byte) (*Buf, error) {
	keyBuf := NewBufFromBytes(key, d.LE)
	if _, err := keyBuf.ReadU8(); err != nil {
		return nil, fmt.Errorf("rowcodec: read namespace byte: %w", ErrMalformed)
	}
	commonID, err := keyBuf.ReadU64BE()
	if err != nil {
		return nil, fmt.Errorf("rowcodec: read common id: %w", ErrMalformed)
	}
	if int64(commonID) != d.CommonID {
		return nil, ErrPrefixMismatch
	}
	if keyBuf.Size() < 4 {
		return nil, fmt.Errorf("rowcodec: key too short for codec version tag: %w", ErrMalformed)
	}
	tag, err := keyBuf.ReadU32BEAt(keyBuf.Size() - 4)
	if err != nil {
		return nil, fmt.Errorf("rowcodec: read codec version tag: %w", ErrMalformed)
	}
	if tag != codecVersionTagV2 {
		return nil, ErrCodecMismatch
	}
	return keyBuf, nil
}

func decodeKeyColumn(keyBuf *Buf, col ColumnSchema) (ColumnValue, error) {
	codec, err := codecFor(col.Type)
	if err != nil {
		return ColumnValue{}, err
	}
	v, err := codec.DecodeKey(keyBuf)
	if err != nil {
		return ColumnValue{}, fmt.Errorf("rowcodec: decode key column %q: %w: %w", col.Name, ErrMalformed, err)
	}
	return v, nil
}

func decodeValueColumn(valueBuf *Buf, header valueHeader, col ColumnSchema) (ColumnValue, error) {
	offset, isNull, ok := header.offsetForColumn(int16(col.Index))
	if !ok || isNull {
		return Null(), nil
	}
	if err := valueBuf.SetReadOffset(int(offset)); err != nil {
		return ColumnValue{}, fmt.Errorf("rowcodec: seek to column %q offset %d: %w", col.Name, offset, ErrMalformed)
	}
	codec, err := codecFor(col.Type)
	if err != nil {
		return ColumnValue{}, err
	}
	v, err := codec.DecodeValue(valueBuf)
	if err != nil {
		return ColumnValue{}, fmt.Errorf("rowcodec: decode value column %q: %w: %w", col.Name, ErrMalformed, err)
	}
	return v, nil
}

func recordLen(schemas SchemaList) int {
	n := 0
	for _, col := range schemas {
		if col.Index+1 > n {
			n = col.Index + 1
		}
	}
	return n
}
