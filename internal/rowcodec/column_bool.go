package rowcodec

// Null-flag byte values shared by every key-form codec: 0x00 marks a null
// key column, 0x01 marks a present one.
const (
	keyNullFlag    byte = 0x00
	keyNotNullFlag byte = 0x01
)

// boolCodec's key form is two bytes, the null/not-null flag followed by a
// 0/1 payload byte (0x00 for a null key); its value form is a bare 0/1
// byte.
type boolCodec struct{}

func (boolCodec) LengthForKey() (int, error)   { return 2, nil }
func (boolCodec) LengthForValue() (int, error) { return 1, nil }

func (boolCodec) EncodeKey(v ColumnValue, buf *Buf) error {
	if v.IsNull() {
		buf.WriteU8(keyNullFlag)
		buf.WriteU8(0x00)
		return nil
	}
	b, _ := v.Bool()
	buf.WriteU8(keyNotNullFlag)
	if b {
		buf.WriteU8(0x01)
	} else {
		buf.WriteU8(0x00)
	}
	return nil
}

func (boolCodec) EncodeValue(v ColumnValue, buf *Buf) (int, error) {
	if v.IsNull() {
		return 0, nil
	}
	b, _ := v.Bool()
	if b {
		buf.WriteU8(0x01)
	} else {
		buf.WriteU8(0x00)
	}
	return 1, nil
}

func (boolCodec) DecodeKey(buf *Buf) (ColumnValue, error) {
	flag, err := buf.ReadU8()
	if err != nil {
		return ColumnValue{}, err
	}
	if flag == keyNullFlag {
		if _, err := buf.ReadU8(); err != nil {
			return ColumnValue{}, err
		}
		return Null(), nil
	}
	b, err := buf.ReadU8()
	if err != nil {
		return ColumnValue{}, err
	}
	return BoolValue(b != 0), nil
}

func (boolCodec) DecodeValue(buf *Buf) (ColumnValue, error) {
	b, err := buf.ReadU8()
	if err != nil {
		return ColumnValue{}, err
	}
	return BoolValue(b != 0), nil
}

func (boolCodec) SkipKey(buf *Buf) (int, error) {
	if err := buf.Skip(2); err != nil {
		return 0, err
	}
	return 2, nil
}

func (boolCodec) SkipValue(buf *Buf) (int, error) {
	if err := buf.Skip(1); err != nil {
		return 0, err
	}
	return 1, nil
}
