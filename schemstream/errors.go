// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import "fmt"

// TruncatedStream is returned when a read would advance past the end of
// the current stream buffer.
type TruncatedStream struct {
	Offset uint32
}

func (e *TruncatedStream) Error() string {
	return fmt.Sprintf("truncated stream at offset 0x%x", e.Offset)
}

// MagicMismatch is returned when a preamble or assume_bytes comparison
// fails against its expected byte sequence.
type MagicMismatch struct {
	Offset           uint32
	Expected, Actual []byte
}

func (e *MagicMismatch) Error() string {
	return fmt.Sprintf("magic mismatch at offset 0x%x: expected % x, got % x",
		e.Offset, e.Expected, e.Actual)
}

// TagMismatch is returned when a prefix's outer tag and repeated tag
// disagree.
type TagMismatch struct {
	Offset       uint32
	First, Repeat byte
}

func (e *TagMismatch) Error() string {
	return fmt.Sprintf("tag mismatch at offset 0x%x: first=0x%02x repeat=0x%02x",
		e.Offset, e.First, e.Repeat)
}

// UnknownStructure is returned when the central dispatcher has no reader
// registered for a Structure tag.
type UnknownStructure struct {
	Tag    byte
	Offset uint32
}

func (e *UnknownStructure) Error() string {
	return fmt.Sprintf("unknown structure tag 0x%02x at offset 0x%x", e.Tag, e.Offset)
}

// UnknownEnumValue is returned when a raw integer cannot be converted to
// a named enum variant.
type UnknownEnumValue struct {
	Kind   string
	Raw    uint32
	Offset uint32
}

func (e *UnknownEnumValue) Error() string {
	return fmt.Sprintf("unknown %s value %d at offset 0x%x", e.Kind, e.Raw, e.Offset)
}

// CheckpointMisaligned is returned when a FutureData boundary does not
// land where it was declared to.
type CheckpointMisaligned struct {
	ExpectedEnd, Actual uint32
}

func (e *CheckpointMisaligned) Error() string {
	return fmt.Sprintf("checkpoint misaligned: expected end 0x%x, actual 0x%x",
		e.ExpectedEnd, e.Actual)
}

// InvariantViolated is returned when a record-level invariant from §3/§8
// fails (reserved bits set, enum out of its allowed subset, etc).
type InvariantViolated struct {
	What   string
	Offset uint32
}

func (e *InvariantViolated) Error() string {
	return fmt.Sprintf("invariant violated at offset 0x%x: %s", e.Offset, e.What)
}

// FilesystemMissing is returned when a required stream or directory entry
// is absent from the extracted container tree.
type FilesystemMissing struct {
	Path string
}

func (e *FilesystemMissing) Error() string {
	return fmt.Sprintf("missing required path: %s", e.Path)
}

// UnknownFileKind is returned when an input file's extension cannot be
// classified into a known container kind.
type UnknownFileKind struct {
	Extension string
}

func (e *UnknownFileKind) Error() string {
	return fmt.Sprintf("unknown file kind for extension %q", e.Extension)
}
