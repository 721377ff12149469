package rowcodec

// listCodec gives a list column a value-only wire form: count(4B
// wire-endian) followed by each element's value-form encoding back to
// back, with no per-element null flag (list elements are never null, only
// the whole column can be). Lists never have a key wire form, matching
// schema.go's Validate rejecting IsKey on a list column.
//
// One generic type parameterized over the element codec covers
// bool/int32/int64/float32/float64/string lists instead of six
// near-identical implementations.
type listCodec[T any] struct {
	elem ColumnCodec
	get  func(ColumnValue) ([]T, bool)
	mk   func([]T) ColumnValue
}

func (listCodec[T]) LengthForKey() (int, error) {
	return 0, ErrUnsupportedKeyList
}

func (listCodec[T]) LengthForValue() (int, error) {
	return 0, ErrUnsupportedOperation
}

func (listCodec[T]) EncodeKey(ColumnValue, *Buf) error {
	return ErrUnsupportedKeyList
}

func (c listCodec[T]) EncodeValue(v ColumnValue, buf *Buf) (int, error) {
	if v.IsNull() {
		return 0, nil
	}
	items, _ := c.get(v)
	buf.WriteI32(int32(len(items)))
	n := 4
	for _, item := range items {
		m, err := c.elem.EncodeValue(elementColumnValue(item), buf)
		if err != nil {
			return 0, err
		}
		n += m
	}
	return n, nil
}

func (listCodec[T]) DecodeKey(*Buf) (ColumnValue, error) {
	return ColumnValue{}, ErrUnsupportedKeyList
}

func (c listCodec[T]) DecodeValue(buf *Buf) (ColumnValue, error) {
	count, err := buf.ReadI32()
	if err != nil {
		return ColumnValue{}, err
	}
	items := make([]T, 0, count)
	for i := int32(0); i < count; i++ {
		elemVal, err := c.elem.DecodeValue(buf)
		if err != nil {
			return ColumnValue{}, err
		}
		item, ok := elementFromColumnValue[T](elemVal)
		if !ok {
			return ColumnValue{}, ErrTypeMismatch
		}
		items = append(items, item)
	}
	return c.mk(items), nil
}

func (listCodec[T]) SkipKey(*Buf) (int, error) {
	return 0, ErrUnsupportedKeyList
}

func (c listCodec[T]) SkipValue(buf *Buf) (int, error) {
	start := buf.ReadOffset()
	count, err := buf.ReadI32()
	if err != nil {
		return 0, err
	}
	for i := int32(0); i < count; i++ {
		if _, err := c.elem.SkipValue(buf); err != nil {
			return 0, err
		}
	}
	return buf.ReadOffset() - start, nil
}

// elementColumnValue wraps a bare list element back into a ColumnValue so
// it can flow through the scalar codec's EncodeValue, which only knows how
// to read out of a ColumnValue's typed accessors.
func elementColumnValue(v any) ColumnValue {
	switch t := v.(type) {
	case bool:
		return BoolValue(t)
	case int32:
		return Int32Value(t)
	case int64:
		return Int64Value(t)
	case float32:
		return Float32Value(t)
	case float64:
		return Float64Value(t)
	case string:
		return StringValue(t)
	default:
		return Null()
	}
}

// elementFromColumnValue is the inverse of elementColumnValue, pulling a
// single element back out after the scalar codec decoded it.
func elementFromColumnValue[T any](v ColumnValue) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case bool:
		b, ok := v.Bool()
		return any(b).(T), ok
	case int32:
		n, ok := v.Int32()
		return any(n).(T), ok
	case int64:
		n, ok := v.Int64()
		return any(n).(T), ok
	case float32:
		f, ok := v.Float32()
		return any(f).(T), ok
	case float64:
		f, ok := v.Float64()
		return any(f).(T), ok
	case string:
		s, ok := v.String()
		return any(s).(T), ok
	default:
		return zero, false
	}
}
