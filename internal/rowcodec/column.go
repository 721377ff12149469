package rowcodec

import "fmt"

// ColumnCodec is the per-type capability set: encode/decode/skip for both
// the key and value wire forms, plus fixed-width length queries. One codec
// instance is shared across every schema of its logical type — callers
// dispatch on the owning ColumnSchema's Type tag, never on inspecting the
// ColumnValue.
//
// Nullability (allow_null) is enforced once, by the record encoder, before
// EncodeKey/EncodeValue are called — see encoder.go — so implementations
// here only need to handle "null value, always allowed to encode the null
// wire form".
type ColumnCodec interface {
	EncodeKey(v ColumnValue, buf *Buf) error
	EncodeValue(v ColumnValue, buf *Buf) (int, error)
	DecodeKey(buf *Buf) (ColumnValue, error)
	DecodeValue(buf *Buf) (ColumnValue, error)
	SkipKey(buf *Buf) (int, error)
	SkipValue(buf *Buf) (int, error)
	LengthForKey() (int, error)
	LengthForValue() (int, error)
}

// codecFor returns the shared codec instance for a logical type: a switch
// on the type tag selecting one of a fixed set of monomorphic codecs,
// preferred here over a virtual-dispatch interface-per-value scheme
// because the type set is closed.
func codecFor(t ColumnType) (ColumnCodec, error) {
	switch t {
	case TypeBool:
		return boolCodec{}, nil
	case TypeInt32:
		return int32Codec{}, nil
	case TypeInt64:
		return int64Codec{}, nil
	case TypeFloat32:
		return float32Codec{}, nil
	case TypeFloat64:
		return float64Codec{}, nil
	case TypeString:
		return stringCodec{}, nil
	case TypeListBool:
		return listCodec[bool]{elem: boolCodec{}, get: ColumnValue.ListBool, mk: ListBoolValue}, nil
	case TypeListInt32:
		return listCodec[int32]{elem: int32Codec{}, get: ColumnValue.ListInt32, mk: ListInt32Value}, nil
	case TypeListInt64:
		return listCodec[int64]{elem: int64Codec{}, get: ColumnValue.ListInt64, mk: ListInt64Value}, nil
	case TypeListFloat32:
		return listCodec[float32]{elem: float32Codec{}, get: ColumnValue.ListFloat32, mk: ListFloat32Value}, nil
	case TypeListFloat64:
		return listCodec[float64]{elem: float64Codec{}, get: ColumnValue.ListFloat64, mk: ListFloat64Value}, nil
	case TypeListString:
		return listCodec[string]{elem: stringCodec{}, get: ColumnValue.ListString, mk: ListStringValue}, nil
	default:
		return nil, fmt.Errorf("rowcodec: unsupported column type %v: %w", t, ErrUnsupportedOperation)
	}
}
