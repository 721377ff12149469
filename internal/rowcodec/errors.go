package rowcodec

import "errors"

// Error taxonomy for the V2 codec. Sentinel errors, wrapped with
// fmt.Errorf("...: %w", ...) for call-site context.
var (
	// ErrPrefixMismatch means a key does not belong to the decoder's
	// configured common_id/namespace pair.
	ErrPrefixMismatch = errors.New("rowcodec: key prefix mismatch")

	// ErrCodecMismatch means the key's trailing codec_version_tag does not
	// match the decoder's configured codec version.
	ErrCodecMismatch = errors.New("rowcodec: codec version mismatch")

	// ErrSchemaVersionTooNew means the value declares a schema_version
	// beyond the decoder's configured maximum.
	ErrSchemaVersionTooNew = errors.New("rowcodec: schema version too new")

	// ErrInvalidNull means a non-nullable column has no value at encode
	// time.
	ErrInvalidNull = errors.New("rowcodec: non-nullable column is null")

	// ErrUnsupportedKeyList means a list-typed column was placed in a key
	// position.
	ErrUnsupportedKeyList = errors.New("rowcodec: list columns cannot be key columns")

	// ErrUnsupportedOperation means the operation is not supported by the
	// active codec version.
	ErrUnsupportedOperation = errors.New("rowcodec: operation unsupported by this codec version")

	// ErrCommonIDOverflow means EncodeMaxKeyPrefix was called with
	// common_id == math.MaxInt64.
	ErrCommonIDOverflow = errors.New("rowcodec: common id at max, cannot form max prefix")

	// ErrMalformed means a buffer under-read, an inconsistent header, or an
	// out-of-range positional access was detected while decoding.
	ErrMalformed = errors.New("rowcodec: malformed record")

	// ErrBadBuffer means a buffer primitive was asked to read or write
	// past the end of its backing slice.
	ErrBadBuffer = errors.New("rowcodec: buffer out of range")

	// ErrTypeMismatch means a ColumnValue's kind does not match its
	// schema's declared type.
	ErrTypeMismatch = errors.New("rowcodec: value type does not match column schema")
)
