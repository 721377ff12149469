package v1

import "encoding/binary"

// Field widths inside a row body are little-endian (the legacy codec's
// native width, mirroring encoding/binary's Uint32/Uint64 directly); the
// common_id and codec_version_tag in the key are fixed big-endian so the
// dispatcher's trailing-byte check holds regardless of row layout.

func putU16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func putU32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func putU64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

func getU16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func getU32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func getU64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func putU32BE(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
func putU64BE(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }

func getU64BEAt(b []byte, off int) uint64 { return binary.BigEndian.Uint64(b[off:]) }
