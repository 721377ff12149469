// Package rowcodec is the public façade over the V2 row codec and its V1
// fallback: a thin dispatcher that picks a version at encode time from
// construction and at decode time from the key's trailing byte.
package rowcodec

import (
	"fmt"

	"github.com/rowkv/codec/internal/rowcodec"
	v1 "github.com/rowkv/codec/internal/rowcodec/v1"
)

// Version is the wire codec version a Dispatcher is configured to encode
// with. There is no implicit default — callers must choose explicitly.
type Version int

const (
	V1 Version = 1
	V2 Version = 2
)

// ColumnSchema, SchemaList and ColumnValue are V2's types, re-exported so
// callers of this package never need to import internal/rowcodec
// directly.
type (
	ColumnSchema = rowcodec.ColumnSchema
	SchemaList   = rowcodec.SchemaList
	ColumnValue  = rowcodec.ColumnValue
	ColumnType   = rowcodec.ColumnType
)

const (
	TypeBool        = rowcodec.TypeBool
	TypeInt32       = rowcodec.TypeInt32
	TypeInt64       = rowcodec.TypeInt64
	TypeFloat32     = rowcodec.TypeFloat32
	TypeFloat64     = rowcodec.TypeFloat64
	TypeString      = rowcodec.TypeString
	TypeListBool    = rowcodec.TypeListBool
	TypeListInt32   = rowcodec.TypeListInt32
	TypeListInt64   = rowcodec.TypeListInt64
	TypeListFloat32 = rowcodec.TypeListFloat32
	TypeListFloat64 = rowcodec.TypeListFloat64
	TypeListString  = rowcodec.TypeListString
)

var (
	Null             = rowcodec.Null
	BoolValue        = rowcodec.BoolValue
	Int32Value       = rowcodec.Int32Value
	Int64Value       = rowcodec.Int64Value
	Float32Value     = rowcodec.Float32Value
	Float64Value     = rowcodec.Float64Value
	StringValue      = rowcodec.StringValue
	ListBoolValue    = rowcodec.ListBoolValue
	ListInt32Value   = rowcodec.ListInt32Value
	ListInt64Value   = rowcodec.ListInt64Value
	ListFloat32Value = rowcodec.ListFloat32Value
	ListFloat64Value = rowcodec.ListFloat64Value
	ListStringValue  = rowcodec.ListStringValue
)

var (
	ErrPrefixMismatch       = rowcodec.ErrPrefixMismatch
	ErrCodecMismatch        = rowcodec.ErrCodecMismatch
	ErrSchemaVersionTooNew  = rowcodec.ErrSchemaVersionTooNew
	ErrInvalidNull          = rowcodec.ErrInvalidNull
	ErrUnsupportedKeyList   = rowcodec.ErrUnsupportedKeyList
	ErrUnsupportedOperation = rowcodec.ErrUnsupportedOperation
	ErrCommonIDOverflow     = rowcodec.ErrCommonIDOverflow
	ErrMalformed            = rowcodec.ErrMalformed
)

// Config is the construction-time configuration surface: schema_version,
// common_id, schemas, is_le, plus the version this instance encodes with.
// LE is a plain bool: left unset it is false, and the host's byte order is
// not detected.
type Config struct {
	Version       Version
	SchemaVersion int32
	CommonID      int64
	Schemas       SchemaList
	LE            bool

	// V1Schema is consulted only when Version == V1; V2's SchemaList above
	// is unused on that path. Use ConvertSchema/ConvertSchemaList to derive
	// the V1 form from the V2 one (there is no V1-to-V2 conversion).
	V1Schema v1.Schema
}

// Dispatcher is the component F wrapper: it holds one configured codec
// version for encoding, and at decode time reads the key's trailing byte
// to pick which concrete codec parses it.
type Dispatcher struct {
	cfg     Config
	encV2   rowcodec.Encoder
	decV2   rowcodec.Decoder
	codecV1 v1.Codec
}

// NewDispatcher constructs a Dispatcher bound to cfg. There is no implicit
// version default; cfg.Version must be V1 or V2.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if cfg.Version != V1 && cfg.Version != V2 {
		return nil, fmt.Errorf("rowcodec: version must be V1 or V2, got %d: %w", cfg.Version, ErrUnsupportedOperation)
	}
	return &Dispatcher{
		cfg: cfg,
		encV2: rowcodec.Encoder{
			CommonID:      cfg.CommonID,
			SchemaVersion: cfg.SchemaVersion,
			Schemas:       cfg.Schemas,
			LE:            cfg.LE,
		},
		decV2: rowcodec.Decoder{
			CommonID:      cfg.CommonID,
			SchemaVersion: cfg.SchemaVersion,
			Schemas:       cfg.Schemas,
			LE:            cfg.LE,
		},
		codecV1: v1.Codec{
			CommonID: cfg.CommonID,
			Schema:   cfg.V1Schema,
		},
	}, nil
}

// EncodeV2 and EncodeV1 encode with the codec version this dispatcher is
// configured for: EncodeV2 takes V2's typed []ColumnValue, EncodeV1 takes
// V1's []any. Calling the one that does not match the configured version
// fails with ErrUnsupportedOperation.
func (d *Dispatcher) EncodeV2(namespace byte, record []ColumnValue) (key, value []byte, err error) {
	if d.cfg.Version != V2 {
		return nil, nil, fmt.Errorf("rowcodec: dispatcher configured for V1, EncodeV2 called: %w", ErrUnsupportedOperation)
	}
	return d.encV2.Encode(namespace, record)
}

func (d *Dispatcher) EncodeV1(namespace byte, record []any) (key, value []byte, err error) {
	if d.cfg.Version != V1 {
		return nil, nil, fmt.Errorf("rowcodec: dispatcher configured for V2, EncodeV1 called: %w", ErrUnsupportedOperation)
	}
	return d.codecV1.Encode(namespace, record)
}

// EncodeKeyOnly, EncodeValueOnly, EncodeMinKeyPrefix and EncodeMaxKeyPrefix
// are V2-only: V1 never supported a standalone key-prefix operation over a
// partial column list, so calling these while configured for V1 fails with
// ErrUnsupportedOperation.
func (d *Dispatcher) EncodeKeyOnly(namespace byte, record []ColumnValue) ([]byte, error) {
	if d.cfg.Version != V2 {
		return nil, fmt.Errorf("rowcodec: encode_key_only is V2-only: %w", ErrUnsupportedOperation)
	}
	return d.encV2.EncodeKeyOnly(namespace, record)
}

func (d *Dispatcher) EncodeValueOnly(record []ColumnValue) ([]byte, error) {
	if d.cfg.Version != V2 {
		return nil, fmt.Errorf("rowcodec: encode_value_only is V2-only: %w", ErrUnsupportedOperation)
	}
	return d.encV2.EncodeValueOnly(record)
}

func (d *Dispatcher) EncodeMinKeyPrefix(namespace byte) ([]byte, error) {
	if d.cfg.Version != V2 {
		return nil, fmt.Errorf("rowcodec: encode_min_key_prefix is V2-only: %w", ErrUnsupportedOperation)
	}
	return d.encV2.EncodeMinKeyPrefix(namespace)
}

func (d *Dispatcher) EncodeMaxKeyPrefix(namespace byte) ([]byte, error) {
	if d.cfg.Version != V2 {
		return nil, fmt.Errorf("rowcodec: encode_max_key_prefix is V2-only: %w", ErrUnsupportedOperation)
	}
	return d.encV2.EncodeMaxKeyPrefix(namespace)
}

// versionFromKey reads the dispatch discriminator: the low byte of the
// key's trailing 4-byte codec_version_tag, i.e. the key's very last byte.
// The upper three bytes are never consulted for routing.
func versionFromKey(key []byte) (byte, error) {
	if len(key) == 0 {
		return 0, fmt.Errorf("rowcodec: empty key: %w", ErrMalformed)
	}
	return key[len(key)-1], nil
}

// DecodeAny inspects key's trailing byte and routes to V1 or V2,
// returning the decoded record in whichever shape that version produces.
// V2 results are []ColumnValue; V1 results are []any.
func (d *Dispatcher) DecodeAny(key, value []byte) (any, Version, error) {
	tag, err := versionFromKey(key)
	if err != nil {
		return nil, 0, err
	}
	switch tag {
	case 0x01:
		rec, err := d.codecV1.Decode(key, value)
		return rec, V1, err
	case 0x02:
		rec, err := d.decV2.Decode(key, value)
		return rec, V2, err
	default:
		return nil, 0, fmt.Errorf("rowcodec: key trailing byte 0x%02x is neither V1 nor V2: %w", tag, ErrCodecMismatch)
	}
}

// DecodeV2 decodes key/value as V2, failing if the trailing byte selects
// V1 instead.
func (d *Dispatcher) DecodeV2(key, value []byte) ([]ColumnValue, error) {
	tag, err := versionFromKey(key)
	if err != nil {
		return nil, err
	}
	if tag != 0x02 {
		return nil, fmt.Errorf("rowcodec: key selects version 0x%02x, not V2: %w", tag, ErrCodecMismatch)
	}
	return d.decV2.Decode(key, value)
}

// DecodeProjected is V2-only: V1 has no per-column offset map to seek
// through, so it never supported true O(1) projection.
func (d *Dispatcher) DecodeProjected(key, value []byte, columns []int) ([]ColumnValue, error) {
	if d.cfg.Version != V2 {
		return nil, fmt.Errorf("rowcodec: decode_projected is V2-only: %w", ErrUnsupportedOperation)
	}
	return d.decV2.DecodeProjected(key, value, columns)
}

func (d *Dispatcher) DecodeKeyOnly(key []byte) ([]ColumnValue, error) {
	if d.cfg.Version != V2 {
		return nil, fmt.Errorf("rowcodec: decode_key_only is V2-only: %w", ErrUnsupportedOperation)
	}
	return d.decV2.DecodeKeyOnly(key)
}

// ConvertSchema translates one V2 ColumnSchema into its V1 equivalent via a
// pure 1:1 type-tag mapping. List types and the f32 width have no V1
// counterpart: V1 maps every float width to ColFloat64 and refuses list
// types outright, since the legacy codec never supported them.
func ConvertSchema(c ColumnSchema) (v1.Column, error) {
	t, err := convertType(c.Type)
	if err != nil {
		return v1.Column{}, err
	}
	return v1.Column{
		Index:    c.Index,
		Name:     c.Name,
		Type:     t,
		IsKey:    c.IsKey,
		Nullable: c.AllowNull,
	}, nil
}

// ConvertSchemaList converts an entire V2 SchemaList into a V1 Schema.
func ConvertSchemaList(s SchemaList) (v1.Schema, error) {
	cols := make([]v1.Column, 0, len(s))
	for _, c := range s {
		vc, err := ConvertSchema(c)
		if err != nil {
			return v1.Schema{}, err
		}
		cols = append(cols, vc)
	}
	return v1.Schema{Cols: cols}, nil
}

func convertType(t rowcodec.ColumnType) (v1.ColumnType, error) {
	switch t {
	case rowcodec.TypeBool:
		return v1.ColBool, nil
	case rowcodec.TypeInt32:
		return v1.ColInt32, nil
	case rowcodec.TypeInt64:
		return v1.ColInt64, nil
	case rowcodec.TypeFloat32, rowcodec.TypeFloat64:
		return v1.ColFloat64, nil
	case rowcodec.TypeString:
		return v1.ColText, nil
	default:
		return 0, fmt.Errorf("rowcodec: type %v has no V1 equivalent: %w", t, ErrUnsupportedOperation)
	}
}
