// Package testbuf builds little-endian byte buffers for constructing
// in-memory record fixtures in _test.go files, standing in for the
// teacher's getAbsoluteFilePath("test/...") sample-binary fixtures (no
// sample .OLB/.DSN binaries are available to this module).
package testbuf

import "encoding/binary"

// Builder accumulates bytes for a single fixture stream.
type Builder struct {
	buf []byte
}

// New returns an empty Builder.
func New() *Builder { return &Builder{} }

// Bytes returns the accumulated buffer.
func (b *Builder) Bytes() []byte { return b.buf }

// U8 appends one byte.
func (b *Builder) U8(v uint8) *Builder {
	b.buf = append(b.buf, v)
	return b
}

// U16 appends a little-endian uint16.
func (b *Builder) U16(v uint16) *Builder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

// U32 appends a little-endian uint32.
func (b *Builder) U32(v uint32) *Builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

// I16 appends a little-endian int16.
func (b *Builder) I16(v int16) *Builder { return b.U16(uint16(v)) }

// I32 appends a little-endian int32.
func (b *Builder) I32(v int32) *Builder { return b.U32(uint32(v)) }

// Raw appends raw bytes verbatim.
func (b *Builder) Raw(data ...byte) *Builder {
	b.buf = append(b.buf, data...)
	return b
}

// Zeros appends n zero bytes.
func (b *Builder) Zeros(n int) *Builder {
	b.buf = append(b.buf, make([]byte, n)...)
	return b
}

// Str appends a NUL-terminated string.
func (b *Builder) Str(s string) *Builder {
	b.buf = append(b.buf, []byte(s)...)
	b.buf = append(b.buf, 0)
	return b
}

// Preamble appends the four-byte preamble magic followed by a zero-length
// optional tail (§4.3).
func (b *Builder) Preamble() *Builder {
	return b.Raw(0xFF, 0xE4, 0x5C, 0x39).U32(0)
}

// ShortPrefix appends a short-form prefix with no trailing name/value
// pairs: `{ tag, length_or_lock, reserved[4], tag_rep, size=0 }` (§4.3).
func (b *Builder) ShortPrefix(tag byte) *Builder {
	return b.U8(tag).U32(0x0B).Zeros(4).U8(tag).I16(0)
}

// StandardPrefix appends `{ tag, byte_offset, zeros[4], short-form }`.
func (b *Builder) StandardPrefix(tag byte, byteOffset uint32) *Builder {
	b.U8(tag).U32(byteOffset).Zeros(4)
	return b.ShortPrefix(tag)
}
