package rowcodec

import (
	"encoding/binary"
	"fmt"
)

const initialBufCapacity = 2 * oneKB

const oneKB = 1024

// Buf is a growable byte container with a monotonic read cursor, used to
// build and parse both the key and value byte strings. It honors a
// construction-time endianness mode for its generic multibyte primitives:
// le names the endianness of the host that constructed this buffer, not
// the wire stream itself — le=true streams most-significant-byte first,
// le=false streams least-significant-byte first.
//
// The order-preserving "Comparable" writers used by key columns
// deliberately ignore this mode and always stream most-significant-byte
// first — order preservation is an invariant of the format, not something
// a construction parameter should be able to break.
type Buf struct {
	data       []byte
	readOffset int
	le         bool
}

// NewBuf allocates an empty, writable buffer.
func NewBuf(le bool) *Buf {
	return &Buf{data: make([]byte, 0, initialBufCapacity), le: le}
}

// NewBufFromBytes wraps an existing byte string for reading. The slice is
// taken by reference, not copied; callers must not mutate it afterward.
func NewBufFromBytes(b []byte, le bool) *Buf {
	return &Buf{data: b, le: le}
}

func (b *Buf) IsLe() bool   { return b.le }
func (b *Buf) Size() int    { return len(b.data) }
func (b *Buf) IsEnd() bool  { return b.readOffset >= len(b.data) }
func (b *Buf) Bytes() []byte { return b.data }

func (b *Buf) Resize(n int) {
	if n <= len(b.data) {
		b.data = b.data[:n]
		return
	}
	b.data = append(b.data, make([]byte, n-len(b.data))...)
}

func (b *Buf) ReadOffset() int { return b.readOffset }

// SetReadOffset moves the read cursor. It fails if the offset lies past the
// end of the buffer, matching Buf::SetReadOffset's bounds check.
func (b *Buf) SetReadOffset(o int) error {
	if o < 0 || o > len(b.data) {
		return fmt.Errorf("rowcodec: set read offset %d: %w", o, ErrBadBuffer)
	}
	b.readOffset = o
	return nil
}

func (b *Buf) Skip(n int) error {
	if n < 0 || b.readOffset+n > len(b.data) {
		return fmt.Errorf("rowcodec: skip %d bytes: %w", n, ErrBadBuffer)
	}
	b.readOffset += n
	return nil
}

// --- byte level ---

func (b *Buf) WriteU8(v byte) { b.data = append(b.data, v) }

func (b *Buf) WriteU8At(pos int, v byte) error {
	if pos < 0 || pos >= len(b.data) {
		return fmt.Errorf("rowcodec: write u8 at %d: %w", pos, ErrBadBuffer)
	}
	b.data[pos] = v
	return nil
}

// WriteU8Negated appends ~v.
func (b *Buf) WriteU8Negated(v byte) { b.data = append(b.data, ^v) }

func (b *Buf) ReadU8() (byte, error) {
	if b.readOffset >= len(b.data) {
		return 0, fmt.Errorf("rowcodec: read u8: %w", ErrBadBuffer)
	}
	v := b.data[b.readOffset]
	b.readOffset++
	return v, nil
}

func (b *Buf) PeekU8() (byte, error) {
	if b.readOffset >= len(b.data) {
		return 0, fmt.Errorf("rowcodec: peek u8: %w", ErrBadBuffer)
	}
	return b.data[b.readOffset], nil
}

func (b *Buf) ReadU8At(pos int) (byte, error) {
	if pos < 0 || pos >= len(b.data) {
		return 0, fmt.Errorf("rowcodec: read u8 at %d: %w", pos, ErrBadBuffer)
	}
	return b.data[pos], nil
}

// --- wire-endian multibyte primitives (honor b.le) ---

// order returns the wire byte order for b's construction-time le flag. le
// names the host's endianness, not the stream's: le=true means the host
// that wrote this buffer is little-endian, which this format always
// serializes to a big-endian wire stream; le=false streams little-endian.
func (b *Buf) order() binary.ByteOrder {
	if b.le {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// WriteI16 appends a 16-bit signed integer in the buffer's wire order.
func (b *Buf) WriteI16(v int16) {
	var tmp [2]byte
	b.order().PutUint16(tmp[:], uint16(v))
	b.data = append(b.data, tmp[:]...)
}

func (b *Buf) WriteI16At(pos int, v int16) error {
	if pos < 0 || pos+2 > len(b.data) {
		return fmt.Errorf("rowcodec: write i16 at %d: %w", pos, ErrBadBuffer)
	}
	b.order().PutUint16(b.data[pos:pos+2], uint16(v))
	return nil
}

func (b *Buf) WriteI32(v int32) {
	var tmp [4]byte
	b.order().PutUint32(tmp[:], uint32(v))
	b.data = append(b.data, tmp[:]...)
}

func (b *Buf) WriteI32At(pos int, v int32) error {
	if pos < 0 || pos+4 > len(b.data) {
		return fmt.Errorf("rowcodec: write i32 at %d: %w", pos, ErrBadBuffer)
	}
	b.order().PutUint32(b.data[pos:pos+4], uint32(v))
	return nil
}

func (b *Buf) WriteI64(v int64) {
	var tmp [8]byte
	b.order().PutUint64(tmp[:], uint64(v))
	b.data = append(b.data, tmp[:]...)
}

func (b *Buf) WriteI64At(pos int, v int64) error {
	if pos < 0 || pos+8 > len(b.data) {
		return fmt.Errorf("rowcodec: write i64 at %d: %w", pos, ErrBadBuffer)
	}
	b.order().PutUint64(b.data[pos:pos+8], uint64(v))
	return nil
}

func (b *Buf) ReadI16() (int16, error) {
	if b.readOffset+2 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read i16: %w", ErrBadBuffer)
	}
	v := int16(b.order().Uint16(b.data[b.readOffset : b.readOffset+2]))
	b.readOffset += 2
	return v, nil
}

func (b *Buf) ReadI16At(pos int) (int16, error) {
	if pos < 0 || pos+2 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read i16 at %d: %w", pos, ErrBadBuffer)
	}
	return int16(b.order().Uint16(b.data[pos : pos+2])), nil
}

func (b *Buf) ReadI32() (int32, error) {
	if b.readOffset+4 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read i32: %w", ErrBadBuffer)
	}
	v := int32(b.order().Uint32(b.data[b.readOffset : b.readOffset+4]))
	b.readOffset += 4
	return v, nil
}

func (b *Buf) ReadI32At(pos int) (int32, error) {
	if pos < 0 || pos+4 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read i32 at %d: %w", pos, ErrBadBuffer)
	}
	return int32(b.order().Uint32(b.data[pos : pos+4])), nil
}

func (b *Buf) ReadI64() (int64, error) {
	if b.readOffset+8 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read i64: %w", ErrBadBuffer)
	}
	v := int64(b.order().Uint64(b.data[b.readOffset : b.readOffset+8]))
	b.readOffset += 8
	return v, nil
}

func (b *Buf) ReadI64At(pos int) (int64, error) {
	if pos < 0 || pos+8 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read i64 at %d: %w", pos, ErrBadBuffer)
	}
	return int64(b.order().Uint64(b.data[pos : pos+8])), nil
}

func (b *Buf) WriteBytes(p []byte) { b.data = append(b.data, p...) }

func (b *Buf) WriteString(s string) { b.data = append(b.data, s...) }

func (b *Buf) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.readOffset+n > len(b.data) {
		return nil, fmt.Errorf("rowcodec: read %d bytes: %w", n, ErrBadBuffer)
	}
	p := b.data[b.readOffset : b.readOffset+n]
	b.readOffset += n
	return p, nil
}

// --- fixed big-endian "comparable" primitives for order-preserving keys ---
//
// These always stream most-significant-byte first and ignore b.le: the
// order-preservation law (a < b iff bytes(a) < bytes(b)) must hold
// regardless of how a given codec instance is configured, so it cannot be
// conditioned on a per-instance flag. See DESIGN.md.

// WriteI32FirstBitFlipped writes v big-endian with the MSB's top bit XORed
// with 0x80, mapping signed 32-bit integers into unsigned lexicographic
// order.
func (b *Buf) WriteI32FirstBitFlipped(v int32) {
	u := uint32(v)
	b.data = append(b.data,
		byte(u>>24)^0x80,
		byte(u>>16),
		byte(u>>8),
		byte(u),
	)
}

func (b *Buf) ReadI32FirstBitFlipped() (int32, error) {
	if b.readOffset+4 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read i32 comparable: %w", ErrBadBuffer)
	}
	p := b.data[b.readOffset : b.readOffset+4]
	b.readOffset += 4
	u := (uint32(p[0]^0x80) << 24) | (uint32(p[1]) << 16) | (uint32(p[2]) << 8) | uint32(p[3])
	return int32(u), nil
}

// WriteI64FirstBitFlipped writes v big-endian with the MSB's top bit XORed
// with 0x80.
func (b *Buf) WriteI64FirstBitFlipped(v int64) {
	u := uint64(v)
	b.data = append(b.data,
		byte(u>>56)^0x80,
		byte(u>>48),
		byte(u>>40),
		byte(u>>32),
		byte(u>>24),
		byte(u>>16),
		byte(u>>8),
		byte(u),
	)
}

func (b *Buf) ReadI64FirstBitFlipped() (int64, error) {
	if b.readOffset+8 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read i64 comparable: %w", ErrBadBuffer)
	}
	p := b.data[b.readOffset : b.readOffset+8]
	b.readOffset += 8
	u := (uint64(p[0]^0x80) << 56) | (uint64(p[1]) << 48) | (uint64(p[2]) << 40) |
		(uint64(p[3]) << 32) | (uint64(p[4]) << 24) | (uint64(p[5]) << 16) |
		(uint64(p[6]) << 8) | uint64(p[7])
	return int64(u), nil
}

// writeBEInverted appends the low n bytes of bits big-endian with every
// byte bitwise-inverted; WriteU32Inverted/WriteU64Inverted use it for the
// order-preserving float key form.
func writeBEInverted(dst []byte, bits uint64, n int) []byte {
	for i := 0; i < n; i++ {
		shift := uint((n - 1 - i) * 8)
		dst = append(dst, ^byte(bits>>shift))
	}
	return dst
}

func (b *Buf) WriteU32Inverted(bits uint32) {
	b.data = writeBEInverted(b.data, uint64(bits), 4)
}

func (b *Buf) WriteU64Inverted(bits uint64) {
	b.data = writeBEInverted(b.data, bits, 8)
}

func (b *Buf) ReadU32Inverted() (uint32, error) {
	if b.readOffset+4 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read u32 inverted: %w", ErrBadBuffer)
	}
	p := b.data[b.readOffset : b.readOffset+4]
	b.readOffset += 4
	var u uint32
	for i := 0; i < 4; i++ {
		u = (u << 8) | uint32(^p[i])
	}
	return u, nil
}

func (b *Buf) ReadU64Inverted() (uint64, error) {
	if b.readOffset+8 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read u64 inverted: %w", ErrBadBuffer)
	}
	p := b.data[b.readOffset : b.readOffset+8]
	b.readOffset += 8
	var u uint64
	for i := 0; i < 8; i++ {
		u = (u << 8) | uint64(^p[i])
	}
	return u, nil
}

// WriteU32BE/WriteU64BE append a fixed big-endian representation,
// independent of the buffer's configured wire endianness — used for
// common_id and other key-prefix fields that must compare consistently
// regardless of per-instance configuration.
func (b *Buf) WriteU32BE(v uint32) {
	b.data = append(b.data, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (b *Buf) WriteU64BE(v uint64) {
	b.data = append(b.data,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v),
	)
}

func (b *Buf) ReadU32BEAt(pos int) (uint32, error) {
	if pos < 0 || pos+4 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read u32be at %d: %w", pos, ErrBadBuffer)
	}
	p := b.data[pos : pos+4]
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3]), nil
}

func (b *Buf) ReadU64BE() (uint64, error) {
	if b.readOffset+8 > len(b.data) {
		return 0, fmt.Errorf("rowcodec: read u64be: %w", ErrBadBuffer)
	}
	p := b.data[b.readOffset : b.readOffset+8]
	b.readOffset += 8
	var u uint64
	for i := 0; i < 8; i++ {
		u = (u << 8) | uint64(p[i])
	}
	return u, nil
}
