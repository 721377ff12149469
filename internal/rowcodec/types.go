package rowcodec

// ColumnType is the logical type tag for a schema column: bool, i32, i64,
// f32, f64, string, and a list variant of each.
type ColumnType uint8

const (
	TypeBool ColumnType = iota
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeListBool
	TypeListInt32
	TypeListInt64
	TypeListFloat32
	TypeListFloat64
	TypeListString
)

func (t ColumnType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt32:
		return "i32"
	case TypeInt64:
		return "i64"
	case TypeFloat32:
		return "f32"
	case TypeFloat64:
		return "f64"
	case TypeString:
		return "string"
	case TypeListBool:
		return "list<bool>"
	case TypeListInt32:
		return "list<i32>"
	case TypeListInt64:
		return "list<i64>"
	case TypeListFloat32:
		return "list<f32>"
	case TypeListFloat64:
		return "list<f64>"
	case TypeListString:
		return "list<string>"
	default:
		return "unknown"
	}
}

// IsList reports whether t is a list variant of a primitive type.
func (t ColumnType) IsList() bool { return t >= TypeListBool }

// ColumnValue is a tagged sum type carrying one column's value: exactly one
// of the typed fields is meaningful, selected by Kind, unless Absent is
// true. Column codecs dispatch on the owning schema's declared type, not
// on inspecting this struct's Kind — Kind exists for construction-time
// bookkeeping and for mismatch detection between a value and its column's
// declared type.
type ColumnValue struct {
	absent bool
	kind   ColumnType

	vBool bool
	vI32  int32
	vI64  int64
	vF32  float32
	vF64  float64
	vStr  string

	vListBool []bool
	vListI32  []int32
	vListI64  []int64
	vListF32  []float32
	vListF64  []float64
	vListStr  []string
}

// Null returns the absent variant.
func Null() ColumnValue { return ColumnValue{absent: true} }

func BoolValue(v bool) ColumnValue       { return ColumnValue{kind: TypeBool, vBool: v} }
func Int32Value(v int32) ColumnValue     { return ColumnValue{kind: TypeInt32, vI32: v} }
func Int64Value(v int64) ColumnValue     { return ColumnValue{kind: TypeInt64, vI64: v} }
func Float32Value(v float32) ColumnValue { return ColumnValue{kind: TypeFloat32, vF32: v} }
func Float64Value(v float64) ColumnValue { return ColumnValue{kind: TypeFloat64, vF64: v} }
func StringValue(v string) ColumnValue   { return ColumnValue{kind: TypeString, vStr: v} }

func ListBoolValue(v []bool) ColumnValue       { return ColumnValue{kind: TypeListBool, vListBool: v} }
func ListInt32Value(v []int32) ColumnValue     { return ColumnValue{kind: TypeListInt32, vListI32: v} }
func ListInt64Value(v []int64) ColumnValue     { return ColumnValue{kind: TypeListInt64, vListI64: v} }
func ListFloat32Value(v []float32) ColumnValue { return ColumnValue{kind: TypeListFloat32, vListF32: v} }
func ListFloat64Value(v []float64) ColumnValue { return ColumnValue{kind: TypeListFloat64, vListF64: v} }
func ListStringValue(v []string) ColumnValue   { return ColumnValue{kind: TypeListString, vListStr: v} }

func (v ColumnValue) IsNull() bool     { return v.absent }
func (v ColumnValue) Kind() ColumnType { return v.kind }

func (v ColumnValue) Bool() (bool, bool)             { return v.vBool, !v.absent && v.kind == TypeBool }
func (v ColumnValue) Int32() (int32, bool)           { return v.vI32, !v.absent && v.kind == TypeInt32 }
func (v ColumnValue) Int64() (int64, bool)           { return v.vI64, !v.absent && v.kind == TypeInt64 }
func (v ColumnValue) Float32() (float32, bool)       { return v.vF32, !v.absent && v.kind == TypeFloat32 }
func (v ColumnValue) Float64() (float64, bool)       { return v.vF64, !v.absent && v.kind == TypeFloat64 }
func (v ColumnValue) String() (string, bool)         { return v.vStr, !v.absent && v.kind == TypeString }
func (v ColumnValue) ListBool() ([]bool, bool)       { return v.vListBool, !v.absent && v.kind == TypeListBool }
func (v ColumnValue) ListInt32() ([]int32, bool)     { return v.vListI32, !v.absent && v.kind == TypeListInt32 }
func (v ColumnValue) ListInt64() ([]int64, bool)     { return v.vListI64, !v.absent && v.kind == TypeListInt64 }
func (v ColumnValue) ListFloat32() ([]float32, bool) { return v.vListF32, !v.absent && v.kind == TypeListFloat32 }
func (v ColumnValue) ListFloat64() ([]float64, bool) { return v.vListF64, !v.absent && v.kind == TypeListFloat64 }
func (v ColumnValue) ListString() ([]string, bool)   { return v.vListStr, !v.absent && v.kind == TypeListString }

// Equal reports whether two column values carry the same kind and payload.
// Used by tests to assert round-trip equality without reaching into the
// unexported fields directly.
func (v ColumnValue) Equal(o ColumnValue) bool {
	if v.absent != o.absent {
		return false
	}
	if v.absent {
		return true
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case TypeBool:
		return v.vBool == o.vBool
	case TypeInt32:
		return v.vI32 == o.vI32
	case TypeInt64:
		return v.vI64 == o.vI64
	case TypeFloat32:
		return v.vF32 == o.vF32 || (v.vF32 != v.vF32 && o.vF32 != o.vF32) // NaN-safe identity
	case TypeFloat64:
		return v.vF64 == o.vF64 || (v.vF64 != v.vF64 && o.vF64 != o.vF64)
	case TypeString:
		return v.vStr == o.vStr
	case TypeListBool:
		return equalSlice(v.vListBool, o.vListBool)
	case TypeListInt32:
		return equalSlice(v.vListI32, o.vListI32)
	case TypeListInt64:
		return equalSlice(v.vListI64, o.vListI64)
	case TypeListFloat32:
		return equalSlice(v.vListF32, o.vListF32)
	case TypeListFloat64:
		return equalSlice(v.vListF64, o.vListF64)
	case TypeListString:
		return equalSlice(v.vListStr, o.vListStr)
	default:
		return false
	}
}

func equalSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
