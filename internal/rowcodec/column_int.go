package rowcodec

// int32Codec / int64Codec give integers an order-preserving key form (MSB
// bit flipped so two's-complement order matches unsigned byte order) and a
// compact value form (native width, no flag byte).
type int32Codec struct{}

func (int32Codec) LengthForKey() (int, error)   { return 5, nil } // null_flag + 4
func (int32Codec) LengthForValue() (int, error) { return 4, nil }

func (int32Codec) EncodeKey(v ColumnValue, buf *Buf) error {
	if v.IsNull() {
		buf.WriteU8(keyNullFlag)
		buf.WriteI32FirstBitFlipped(0)
		return nil
	}
	n, _ := v.Int32()
	buf.WriteU8(keyNotNullFlag)
	buf.WriteI32FirstBitFlipped(n)
	return nil
}

func (int32Codec) EncodeValue(v ColumnValue, buf *Buf) (int, error) {
	if v.IsNull() {
		return 0, nil
	}
	n, _ := v.Int32()
	buf.WriteI32(n)
	return 4, nil
}

func (int32Codec) DecodeKey(buf *Buf) (ColumnValue, error) {
	flag, err := buf.ReadU8()
	if err != nil {
		return ColumnValue{}, err
	}
	n, err := buf.ReadI32FirstBitFlipped()
	if err != nil {
		return ColumnValue{}, err
	}
	if flag == keyNullFlag {
		return Null(), nil
	}
	return Int32Value(n), nil
}

func (int32Codec) DecodeValue(buf *Buf) (ColumnValue, error) {
	n, err := buf.ReadI32()
	if err != nil {
		return ColumnValue{}, err
	}
	return Int32Value(n), nil
}

func (int32Codec) SkipKey(buf *Buf) (int, error) {
	if err := buf.Skip(5); err != nil {
		return 0, err
	}
	return 5, nil
}

func (int32Codec) SkipValue(buf *Buf) (int, error) {
	if err := buf.Skip(4); err != nil {
		return 0, err
	}
	return 4, nil
}

type int64Codec struct{}

func (int64Codec) LengthForKey() (int, error)   { return 9, nil }
func (int64Codec) LengthForValue() (int, error) { return 8, nil }

func (int64Codec) EncodeKey(v ColumnValue, buf *Buf) error {
	if v.IsNull() {
		buf.WriteU8(keyNullFlag)
		buf.WriteI64FirstBitFlipped(0)
		return nil
	}
	n, _ := v.Int64()
	buf.WriteU8(keyNotNullFlag)
	buf.WriteI64FirstBitFlipped(n)
	return nil
}

func (int64Codec) EncodeValue(v ColumnValue, buf *Buf) (int, error) {
	if v.IsNull() {
		return 0, nil
	}
	n, _ := v.Int64()
	buf.WriteI64(n)
	return 8, nil
}

func (int64Codec) DecodeKey(buf *Buf) (ColumnValue, error) {
	flag, err := buf.ReadU8()
	if err != nil {
		return ColumnValue{}, err
	}
	n, err := buf.ReadI64FirstBitFlipped()
	if err != nil {
		return ColumnValue{}, err
	}
	if flag == keyNullFlag {
		return Null(), nil
	}
	return Int64Value(n), nil
}

func (int64Codec) DecodeValue(buf *Buf) (ColumnValue, error) {
	n, err := buf.ReadI64()
	if err != nil {
		return ColumnValue{}, err
	}
	return Int64Value(n), nil
}

func (int64Codec) SkipKey(buf *Buf) (int, error) {
	if err := buf.Skip(9); err != nil {
		return 0, err
	}
	return 9, nil
}

func (int64Codec) SkipValue(buf *Buf) (int, error) {
	if err := buf.Skip(8); err != nil {
		return 0, err
	}
	return 8, nil
}
