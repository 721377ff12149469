package rowcodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnCodecs_ValueRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		v    ColumnValue
		typ  ColumnType
	}{
		{"bool true", BoolValue(true), TypeBool},
		{"bool false", BoolValue(false), TypeBool},
		{"i32 min", Int32Value(math.MinInt32), TypeInt32},
		{"i32 max", Int32Value(math.MaxInt32), TypeInt32},
		{"i32 zero", Int32Value(0), TypeInt32},
		{"i64", Int64Value(-9876543210), TypeInt64},
		{"f32", Float32Value(3.5), TypeFloat32},
		{"f64 neg zero", Float64Value(math.Copysign(0, -1)), TypeFloat64},
		{"f64 inf", Float64Value(math.Inf(1)), TypeFloat64},
		{"f64 -inf", Float64Value(math.Inf(-1)), TypeFloat64},
		{"f64 nan", Float64Value(math.NaN()), TypeFloat64},
		{"string empty", StringValue(""), TypeString},
		{"string", StringValue("ab"), TypeString},
		{"list bool", ListBoolValue([]bool{true, false, true}), TypeListBool},
		{"list empty", ListInt32Value(nil), TypeListInt32},
		{"list string", ListStringValue([]string{"x", "yz"}), TypeListString},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec, err := codecFor(tc.typ)
			require.NoError(t, err)

			buf := NewBuf(false)
			n, err := codec.EncodeValue(tc.v, buf)
			require.NoError(t, err)
			require.Equal(t, buf.Size(), n)

			out := NewBufFromBytes(buf.Bytes(), false)
			got, err := codec.DecodeValue(out)
			require.NoError(t, err)

			if tc.typ == TypeFloat64 {
				f, _ := tc.v.Float64()
				g, _ := got.Float64()
				require.Equal(t, math.Float64bits(f), math.Float64bits(g))
			} else {
				require.True(t, tc.v.Equal(got), "%+v != %+v", tc.v, got)
			}
		})
	}
}

func TestColumnCodecs_KeyRoundTripAndNull(t *testing.T) {
	cases := []struct {
		name string
		v    ColumnValue
		typ  ColumnType
	}{
		{"bool", BoolValue(true), TypeBool},
		{"bool null", Null(), TypeBool},
		{"i32", Int32Value(-5), TypeInt32},
		{"i32 null", Null(), TypeInt32},
		{"i64", Int64Value(1 << 40), TypeInt64},
		{"f64", Float64Value(-1.5), TypeFloat64},
		{"f64 null", Null(), TypeFloat64},
		{"string", StringValue("hello"), TypeString},
		{"string null", Null(), TypeString},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec, err := codecFor(tc.typ)
			require.NoError(t, err)

			buf := NewBuf(false)
			require.NoError(t, codec.EncodeKey(tc.v, buf))

			out := NewBufFromBytes(buf.Bytes(), false)
			got, err := codec.DecodeKey(out)
			require.NoError(t, err)
			require.True(t, tc.v.Equal(got))
		})
	}
}

func TestListCodec_KeyUnsupported(t *testing.T) {
	codec, err := codecFor(TypeListBool)
	require.NoError(t, err)

	buf := NewBuf(false)
	err = codec.EncodeKey(ListBoolValue([]bool{true}), buf)
	require.ErrorIs(t, err, ErrUnsupportedKeyList)

	_, err = codec.DecodeKey(buf)
	require.ErrorIs(t, err, ErrUnsupportedKeyList)

	_, err = codec.SkipKey(buf)
	require.ErrorIs(t, err, ErrUnsupportedKeyList)
}

func TestFloatKeyCodec_PreservesOrder(t *testing.T) {
	values := []float64{
		math.Inf(-1), -1e300, -1.5, math.Copysign(0, -1), 0.0, 1.5, 1e300, math.Inf(1),
	}
	codec, err := codecFor(TypeFloat64)
	require.NoError(t, err)

	var encoded []string
	for _, v := range values {
		buf := NewBuf(false)
		require.NoError(t, codec.EncodeKey(Float64Value(v), buf))
		encoded = append(encoded, string(buf.Bytes()))
	}
	for i := 1; i < len(encoded); i++ {
		require.LessOrEqual(t, encoded[i-1], encoded[i], "index %d", i)
	}
}

func TestIntKeyCodec_PreservesOrder(t *testing.T) {
	values := []int32{math.MinInt32, -5, -1, 0, 1, 5, math.MaxInt32}
	codec, err := codecFor(TypeInt32)
	require.NoError(t, err)

	var encoded []string
	for _, v := range values {
		buf := NewBuf(false)
		require.NoError(t, codec.EncodeKey(Int32Value(v), buf))
		encoded = append(encoded, string(buf.Bytes()))
	}
	for i := 1; i < len(encoded); i++ {
		require.Less(t, encoded[i-1], encoded[i])
	}
}

func TestColumnCodecs_SkipMatchesLength(t *testing.T) {
	fixed := []ColumnType{TypeBool, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64}
	for _, typ := range fixed {
		codec, err := codecFor(typ)
		require.NoError(t, err)

		want, err := codec.LengthForKey()
		require.NoError(t, err)

		buf := NewBuf(false)
		require.NoError(t, codec.EncodeKey(Null(), buf))
		got, err := codec.SkipKey(NewBufFromBytes(buf.Bytes(), false))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestStringCodec_SkipValue(t *testing.T) {
	codec := stringCodec{}
	buf := NewBuf(false)
	n, err := codec.EncodeValue(StringValue("hello world"), buf)
	require.NoError(t, err)

	skipped, err := codec.SkipValue(NewBufFromBytes(buf.Bytes(), false))
	require.NoError(t, err)
	require.Equal(t, n, skipped)
}
