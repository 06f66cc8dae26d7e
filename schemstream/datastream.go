// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// DataStream is a positioned reader over a single extracted stream buffer.
// It seeks backwards only through Putback and Mark/Reset, and every read advances
// the cursor forward from offset zero, per §5's "single stream open at a
// time, read strictly forward" contract. The teacher's equivalent is
// File.data plus the ReadUint*/structUnpack helpers in helper.go; here the
// offset lives on the reader instead of being threaded through every call.
type DataStream struct {
	buf         []byte
	offset      uint32
	diagnostics []Diagnostic
}

// NewDataStream wraps buf (typically an mmap'd stream file) for forward
// reading starting at offset zero.
func NewDataStream(buf []byte) *DataStream {
	return &DataStream{buf: buf}
}

// CurrentOffset returns the stream's current read position.
func (d *DataStream) CurrentOffset() uint32 { return d.offset }

// Len returns the total size of the underlying buffer.
func (d *DataStream) Len() uint32 { return uint32(len(d.buf)) }

// IsEOF reports whether the stream has been fully consumed.
func (d *DataStream) IsEOF() bool { return d.offset >= uint32(len(d.buf)) }

func (d *DataStream) require(n uint32) error {
	if uint64(d.offset)+uint64(n) > uint64(len(d.buf)) {
		return &TruncatedStream{Offset: d.offset}
	}
	return nil
}

// ReadU8 reads one unsigned byte.
func (d *DataStream) ReadU8() (uint8, error) {
	if err := d.require(1); err != nil {
		return 0, err
	}
	v := d.buf[d.offset]
	d.offset++
	return v, nil
}

// ReadU16 reads a little-endian uint16.
func (d *DataStream) ReadU16() (uint16, error) {
	if err := d.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(d.buf[d.offset:])
	d.offset += 2
	return v, nil
}

// ReadU32 reads a little-endian uint32.
func (d *DataStream) ReadU32() (uint32, error) {
	if err := d.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.buf[d.offset:])
	d.offset += 4
	return v, nil
}

// ReadI16 reads a little-endian int16.
func (d *DataStream) ReadI16() (int16, error) {
	v, err := d.ReadU16()
	return int16(v), err
}

// ReadI32 reads a little-endian int32.
func (d *DataStream) ReadI32() (int32, error) {
	v, err := d.ReadU32()
	return int32(v), err
}

// ReadRaw returns the next n bytes without interpretation.
func (d *DataStream) ReadRaw(n uint32) ([]byte, error) {
	if err := d.require(n); err != nil {
		return nil, err
	}
	v := d.buf[d.offset : d.offset+n]
	d.offset += n
	return v, nil
}

// ReadStringZeroTerminated reads bytes up to and including a NUL, returning
// the bytes before the terminator (the terminator itself is consumed but
// not returned).
func (d *DataStream) ReadStringZeroTerminated() (string, error) {
	start := d.offset
	for {
		if d.offset >= uint32(len(d.buf)) {
			return "", &TruncatedStream{Offset: start}
		}
		if d.buf[d.offset] == 0 {
			s := string(d.buf[start:d.offset])
			d.offset++
			return s, nil
		}
		d.offset++
	}
}

// ReadUTF16String reads exactly units UTF-16LE code units and returns them
// decoded with any trailing NULs trimmed,
// per SPEC_FULL.md's optional wide-string reader for NetBundleMapData /
// HSObjects streams. Callers opt in explicitly; most streams use
// ReadStringZeroTerminated.
func (d *DataStream) ReadUTF16String(units uint32) (string, error) {
	raw, err := d.ReadRaw(units * 2)
	if err != nil {
		return "", err
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(out, "\x00")), nil
}

// AssumeBytes reads len(expected) bytes and fails with MagicMismatch unless
// they match exactly.
func (d *DataStream) AssumeBytes(expected []byte) error {
	offset := d.offset
	got, err := d.ReadRaw(uint32(len(expected)))
	if err != nil {
		return err
	}
	if !bytes.Equal(got, expected) {
		return &MagicMismatch{Offset: offset, Expected: expected, Actual: got}
	}
	return nil
}

// Putback rewinds the cursor by one byte, used by readers that peek a tag
// to decide between alternative record shapes.
func (d *DataStream) Putback() {
	if d.offset > 0 {
		d.offset--
	}
}

// Mark returns the current offset so a multi-byte lookahead (AssumeBytes,
// readPreamble) can be undone in full via Reset if it turns out not to
// apply, rather than relying on single-byte Putback.
func (d *DataStream) Mark() uint32 { return d.offset }

// Reset rewinds the cursor to an offset previously returned by Mark.
func (d *DataStream) Reset(mark uint32) { d.offset = mark }

// Diagnostic is one "opaque byte region" or "unresolved tail" note recorded
// while reading, per §9's design note that labels must survive so ongoing
// reverse-engineering can attach meaning later.
type Diagnostic struct {
	Offset uint32
	Length uint32
	Label  string
}

// PrintUnknown advances n bytes and records a labeled diagnostic instead of
// interpreting the bytes; this is the Go shape of the source's
// printUnknownData(n).
func (d *DataStream) PrintUnknown(n uint32, label string) ([]byte, error) {
	offset := d.offset
	raw, err := d.ReadRaw(n)
	if err != nil {
		return nil, err
	}
	d.diagnostics = append(d.diagnostics, Diagnostic{Offset: offset, Length: n, Label: label})
	return raw, nil
}

// Diagnostics returns every PrintUnknown/readUntilNextFutureData note
// recorded on this stream so far.
func (d *DataStream) Diagnostics() []Diagnostic { return d.diagnostics }
