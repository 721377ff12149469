package rowcodec

import "fmt"

// stringCodec's key form carries the raw bytes unmodified, prefixed with
// the null flag and a fixed big-endian length so a key column's wire form
// stays independent of the per-instance wire-endian mode, like every other
// key-form codec's fixed big-endian layout. Because the length comes first,
// two string keys compare by length before their bytes. The value form
// carries a wire-endian length prefix followed by the raw bytes.
type stringCodec struct{}

func (stringCodec) LengthForKey() (int, error) {
	return 0, fmt.Errorf("rowcodec: string key length is variable: %w", ErrUnsupportedOperation)
}

func (stringCodec) LengthForValue() (int, error) {
	return 0, fmt.Errorf("rowcodec: string value length is variable: %w", ErrUnsupportedOperation)
}

func (stringCodec) EncodeKey(v ColumnValue, buf *Buf) error {
	if v.IsNull() {
		buf.WriteU8(keyNullFlag)
		buf.WriteU32BE(0)
		return nil
	}
	s, _ := v.String()
	buf.WriteU8(keyNotNullFlag)
	buf.WriteU32BE(uint32(len(s)))
	buf.WriteString(s)
	return nil
}

func (stringCodec) EncodeValue(v ColumnValue, buf *Buf) (int, error) {
	if v.IsNull() {
		return 0, nil
	}
	s, _ := v.String()
	buf.WriteI32(int32(len(s)))
	buf.WriteString(s)
	return 4 + len(s), nil
}

func (stringCodec) DecodeKey(buf *Buf) (ColumnValue, error) {
	flag, err := buf.ReadU8()
	if err != nil {
		return ColumnValue{}, err
	}
	n, err := buf.ReadU32BEAt(buf.ReadOffset())
	if err != nil {
		return ColumnValue{}, err
	}
	if err := buf.Skip(4); err != nil {
		return ColumnValue{}, err
	}
	raw, err := buf.ReadBytes(int(n))
	if err != nil {
		return ColumnValue{}, err
	}
	if flag == keyNullFlag {
		return Null(), nil
	}
	return StringValue(string(raw)), nil
}

func (stringCodec) DecodeValue(buf *Buf) (ColumnValue, error) {
	n, err := buf.ReadI32()
	if err != nil {
		return ColumnValue{}, err
	}
	raw, err := buf.ReadBytes(int(n))
	if err != nil {
		return ColumnValue{}, err
	}
	return StringValue(string(raw)), nil
}

func (stringCodec) SkipKey(buf *Buf) (int, error) {
	start := buf.ReadOffset()
	if err := buf.Skip(1); err != nil {
		return 0, err
	}
	n, err := buf.ReadU32BEAt(buf.ReadOffset())
	if err != nil {
		return 0, err
	}
	if err := buf.Skip(4 + int(n)); err != nil {
		return 0, err
	}
	return buf.ReadOffset() - start, nil
}

func (stringCodec) SkipValue(buf *Buf) (int, error) {
	start := buf.ReadOffset()
	n, err := buf.ReadI32()
	if err != nil {
		return 0, err
	}
	if err := buf.Skip(int(n)); err != nil {
		return 0, err
	}
	return buf.ReadOffset() - start, nil
}
