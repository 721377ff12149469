package rowcodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_FullRoundTripMixedTypes(t *testing.T) {
	schema := SchemaList{
		{Index: 0, Name: "id", IsKey: true, Type: TypeInt32},
		{Index: 1, Name: "label", IsKey: true, Type: TypeString},
		{Index: 2, Name: "active", AllowNull: false, Type: TypeBool},
		{Index: 3, Name: "score", AllowNull: true, Type: TypeFloat64},
	}
	enc := Encoder{CommonID: 100, SchemaVersion: 1, Schemas: schema}
	dec := Decoder{CommonID: 100, SchemaVersion: 1, Schemas: schema}

	record := []ColumnValue{
		Int32Value(7),
		StringValue("ab"),
		BoolValue(true),
		Null(),
	}

	key, value, err := enc.Encode(0x72, record)
	require.NoError(t, err)
	require.Equal(t, byte(0x02), key[len(key)-1])

	got, err := dec.Decode(key, value)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i := range record {
		require.True(t, record[i].Equal(got[i]), "column %d: %+v != %+v", i, record[i], got[i])
	}
}

func TestEncodeDecode_KeyOrderPreservationOnIntegers(t *testing.T) {
	schema := SchemaList{{Index: 0, Name: "id", IsKey: true, Type: TypeInt32}}
	enc := Encoder{CommonID: 1, Schemas: schema}

	k1, err := enc.EncodeKeyOnly(0x01, []ColumnValue{Int32Value(-5)})
	require.NoError(t, err)
	k2, err := enc.EncodeKeyOnly(0x01, []ColumnValue{Int32Value(0)})
	require.NoError(t, err)
	k3, err := enc.EncodeKeyOnly(0x01, []ColumnValue{Int32Value(5)})
	require.NoError(t, err)

	require.Less(t, string(k1), string(k2))
	require.Less(t, string(k2), string(k3))
}

func TestEncodeDecode_Projection(t *testing.T) {
	schema := SchemaList{
		{Index: 0, Name: "id", IsKey: true, Type: TypeInt32},
		{Index: 1, Name: "label", IsKey: true, Type: TypeString},
		{Index: 2, Name: "active", Type: TypeBool},
		{Index: 3, Name: "score", AllowNull: true, Type: TypeFloat64},
		{Index: 4, Name: "count", Type: TypeInt64},
		{Index: 5, Name: "note", Type: TypeString},
	}
	enc := Encoder{CommonID: 100, Schemas: schema}
	dec := Decoder{CommonID: 100, Schemas: schema}

	record := []ColumnValue{
		Int32Value(7),
		StringValue("ab"),
		BoolValue(true),
		Null(),
		Int64Value(42),
		StringValue("xyz"),
	}

	key, value, err := enc.Encode(0x72, record)
	require.NoError(t, err)

	got, err := dec.DecodeProjected(key, value, []int{5, 2})
	require.NoError(t, err)
	require.Len(t, got, 2)

	s, ok := got[0].String()
	require.True(t, ok)
	require.Equal(t, "xyz", s)

	b, ok := got[1].Bool()
	require.True(t, ok)
	require.True(t, b)
}

func TestEncodeDecode_AllNullValue(t *testing.T) {
	schema := SchemaList{
		{Index: 0, Name: "id", IsKey: true, Type: TypeInt32},
		{Index: 1, Name: "a", AllowNull: true, Type: TypeInt32},
		{Index: 2, Name: "b", AllowNull: true, Type: TypeString},
	}
	enc := Encoder{CommonID: 1, Schemas: schema}
	dec := Decoder{CommonID: 1, Schemas: schema}

	record := []ColumnValue{Int32Value(9), Null(), Null()}
	_, value, err := enc.Encode(0x01, record)
	require.NoError(t, err)

	// Chosen behavior: always materialize the full id/offset arrays, even
	// when every non-key column is null (see DESIGN.md open question 1).
	require.Equal(t, valueHeaderSize(2), len(value))
	require.Equal(t, 20, len(value))

	key, err := enc.EncodeKeyOnly(0x01, record)
	require.NoError(t, err)
	got, err := dec.Decode(key, value)
	require.NoError(t, err)
	require.True(t, got[1].IsNull())
	require.True(t, got[2].IsNull())
}

func TestEncodeDecode_AllNonNullValue(t *testing.T) {
	schema := SchemaList{
		{Index: 0, Name: "id", IsKey: true, Type: TypeInt32},
		{Index: 1, Name: "a", Type: TypeInt32},
		{Index: 2, Name: "b", Type: TypeString},
	}
	enc := Encoder{CommonID: 1, Schemas: schema}
	dec := Decoder{CommonID: 1, Schemas: schema}

	record := []ColumnValue{Int32Value(9), Int32Value(41), StringValue("zz")}
	key, value, err := enc.Encode(0x01, record)
	require.NoError(t, err)

	got, err := dec.Decode(key, value)
	require.NoError(t, err)
	for i := range record {
		require.True(t, record[i].Equal(got[i]))
	}
}

func TestEncodeDecode_DispatcherTrailingByte(t *testing.T) {
	schema := SchemaList{{Index: 0, Name: "id", IsKey: true, Type: TypeInt32}}
	enc := Encoder{CommonID: 1, Schemas: schema}
	key, err := enc.EncodeKeyOnly(0x01, []ColumnValue{Int32Value(1)})
	require.NoError(t, err)
	require.Equal(t, byte(0x02), key[len(key)-1])
}

func TestEncodeDecode_BoundaryOverflow(t *testing.T) {
	enc := Encoder{CommonID: math.MaxInt64}
	_, err := enc.EncodeMaxKeyPrefix(0x01)
	require.ErrorIs(t, err, ErrCommonIDOverflow)

	enc2 := Encoder{CommonID: 10}
	prefix, err := enc2.EncodeMaxKeyPrefix(0x01)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 11}, prefix)
}

func TestEncodeDecode_MinKeyPrefix(t *testing.T) {
	enc := Encoder{CommonID: 10}
	prefix, err := enc.EncodeMinKeyPrefix(0x01)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 10}, prefix)
}

func TestDecode_PrefixMismatch(t *testing.T) {
	schema := SchemaList{{Index: 0, Name: "id", IsKey: true, Type: TypeInt32}}
	enc := Encoder{CommonID: 1, Schemas: schema}
	dec := Decoder{CommonID: 2, Schemas: schema}

	key, value, err := enc.Encode(0x01, []ColumnValue{Int32Value(1)})
	require.NoError(t, err)

	_, err = dec.Decode(key, value)
	require.ErrorIs(t, err, ErrPrefixMismatch)
}

func TestDecode_SchemaVersionTooNew(t *testing.T) {
	schema := SchemaList{{Index: 0, Name: "id", IsKey: true, Type: TypeInt32}}
	enc := Encoder{CommonID: 1, SchemaVersion: 5, Schemas: schema}
	dec := Decoder{CommonID: 1, SchemaVersion: 1, Schemas: schema}

	key, value, err := enc.Encode(0x01, []ColumnValue{Int32Value(1)})
	require.NoError(t, err)

	_, err = dec.Decode(key, value)
	require.ErrorIs(t, err, ErrSchemaVersionTooNew)
}

func TestEncode_InvalidNullFails(t *testing.T) {
	schema := SchemaList{
		{Index: 0, Name: "id", IsKey: true, Type: TypeInt32},
		{Index: 1, Name: "a", AllowNull: false, Type: TypeInt32},
	}
	enc := Encoder{CommonID: 1, Schemas: schema}

	_, _, err := enc.Encode(0x01, []ColumnValue{Int32Value(1), Null()})
	require.ErrorIs(t, err, ErrInvalidNull)
}

func TestSchema_UnsupportedKeyList(t *testing.T) {
	schema := SchemaList{
		{Index: 0, Name: "a", IsKey: true, Type: TypeListInt32},
	}
	err := schema.Validate()
	require.ErrorIs(t, err, ErrUnsupportedKeyList)

	enc := Encoder{CommonID: 1, Schemas: schema}
	_, err = enc.EncodeKeyOnly(0x01, []ColumnValue{ListInt32Value([]int32{1})})
	require.ErrorIs(t, err, ErrUnsupportedKeyList)
}

func TestEncodeDecode_StringBoundaryLength(t *testing.T) {
	schema := SchemaList{
		{Index: 0, Name: "id", IsKey: true, Type: TypeInt32},
		{Index: 1, Name: "big", Type: TypeString},
	}
	enc := Encoder{CommonID: 1, Schemas: schema}
	dec := Decoder{CommonID: 1, Schemas: schema}

	big := make([]byte, 1<<16)
	for i := range big {
		big[i] = byte(i)
	}
	record := []ColumnValue{Int32Value(1), StringValue(string(big))}
	key, value, err := enc.Encode(0x01, record)
	require.NoError(t, err)

	got, err := dec.Decode(key, value)
	require.NoError(t, err)
	s, ok := got[1].String()
	require.True(t, ok)
	require.Equal(t, string(big), s)
}
