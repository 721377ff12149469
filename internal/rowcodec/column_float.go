package rowcodec

import "math"

// float32Codec / float64Codec give floats an order-preserving key form:
// non-negative values toggle the sign bit (so they sort above all negative
// values and preserve their own relative order), negative values get every
// bit inverted (so the most-negative value, which has the largest magnitude
// bit pattern, sorts first).
type float32Codec struct{}

func (float32Codec) LengthForKey() (int, error)   { return 5, nil }
func (float32Codec) LengthForValue() (int, error) { return 4, nil }

func encodeFloat32Comparable(buf *Buf, f float32) {
	bits := math.Float32bits(f)
	if bits&0x8000_0000 == 0 {
		buf.WriteU32Inverted(^(bits ^ 0x8000_0000))
	} else {
		buf.WriteU32Inverted(bits)
	}
}

// decodeFloat32Comparable is the exact inverse of encodeFloat32Comparable.
func decodeFloat32Comparable(buf *Buf) (float32, error) {
	u, err := buf.ReadU32Inverted()
	if err != nil {
		return 0, err
	}
	var bits uint32
	if u&0x8000_0000 != 0 {
		bits = u
	} else {
		bits = ^u ^ 0x8000_0000
	}
	return math.Float32frombits(bits), nil
}

func (float32Codec) EncodeKey(v ColumnValue, buf *Buf) error {
	if v.IsNull() {
		buf.WriteU8(keyNullFlag)
		encodeFloat32Comparable(buf, 0)
		return nil
	}
	f, _ := v.Float32()
	buf.WriteU8(keyNotNullFlag)
	encodeFloat32Comparable(buf, f)
	return nil
}

func (float32Codec) EncodeValue(v ColumnValue, buf *Buf) (int, error) {
	if v.IsNull() {
		return 0, nil
	}
	f, _ := v.Float32()
	buf.WriteI32(int32(math.Float32bits(f)))
	return 4, nil
}

func (float32Codec) DecodeKey(buf *Buf) (ColumnValue, error) {
	flag, err := buf.ReadU8()
	if err != nil {
		return ColumnValue{}, err
	}
	f, err := decodeFloat32Comparable(buf)
	if err != nil {
		return ColumnValue{}, err
	}
	if flag == keyNullFlag {
		return Null(), nil
	}
	return Float32Value(f), nil
}

func (float32Codec) DecodeValue(buf *Buf) (ColumnValue, error) {
	n, err := buf.ReadI32()
	if err != nil {
		return ColumnValue{}, err
	}
	return Float32Value(math.Float32frombits(uint32(n))), nil
}

func (float32Codec) SkipKey(buf *Buf) (int, error) {
	if err := buf.Skip(5); err != nil {
		return 0, err
	}
	return 5, nil
}

func (float32Codec) SkipValue(buf *Buf) (int, error) {
	if err := buf.Skip(4); err != nil {
		return 0, err
	}
	return 4, nil
}

type float64Codec struct{}

func (float64Codec) LengthForKey() (int, error)   { return 9, nil }
func (float64Codec) LengthForValue() (int, error) { return 8, nil }

func encodeFloat64Comparable(buf *Buf, f float64) {
	bits := math.Float64bits(f)
	if bits&0x8000_0000_0000_0000 == 0 {
		buf.WriteU64Inverted(^(bits ^ 0x8000_0000_0000_0000))
	} else {
		buf.WriteU64Inverted(bits)
	}
}

func decodeFloat64Comparable(buf *Buf) (float64, error) {
	u, err := buf.ReadU64Inverted()
	if err != nil {
		return 0, err
	}
	var bits uint64
	if u&0x8000_0000_0000_0000 != 0 {
		bits = u
	} else {
		bits = ^u ^ 0x8000_0000_0000_0000
	}
	return math.Float64frombits(bits), nil
}

func (float64Codec) EncodeKey(v ColumnValue, buf *Buf) error {
	if v.IsNull() {
		buf.WriteU8(keyNullFlag)
		encodeFloat64Comparable(buf, 0)
		return nil
	}
	f, _ := v.Float64()
	buf.WriteU8(keyNotNullFlag)
	encodeFloat64Comparable(buf, f)
	return nil
}

func (float64Codec) EncodeValue(v ColumnValue, buf *Buf) (int, error) {
	if v.IsNull() {
		return 0, nil
	}
	f, _ := v.Float64()
	buf.WriteI64(int64(math.Float64bits(f)))
	return 8, nil
}

func (float64Codec) DecodeKey(buf *Buf) (ColumnValue, error) {
	flag, err := buf.ReadU8()
	if err != nil {
		return ColumnValue{}, err
	}
	f, err := decodeFloat64Comparable(buf)
	if err != nil {
		return ColumnValue{}, err
	}
	if flag == keyNullFlag {
		return Null(), nil
	}
	return Float64Value(f), nil
}

func (float64Codec) DecodeValue(buf *Buf) (ColumnValue, error) {
	n, err := buf.ReadI64()
	if err != nil {
		return ColumnValue{}, err
	}
	return Float64Value(math.Float64frombits(uint64(n))), nil
}

func (float64Codec) SkipKey(buf *Buf) (int, error) {
	if err := buf.Skip(9); err != nil {
		return 0, err
	}
	return 9, nil
}

func (float64Codec) SkipValue(buf *Buf) (int, error) {
	if err := buf.Skip(8); err != nil {
		return 0, err
	}
	return 8, nil
}
