// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import (
	"testing"

	"github.com/schemparse/schemparse/internal/testbuf"
)

func TestReadShortPrefix(t *testing.T) {
	buf := testbuf.New().ShortPrefix(byte(StructureProperties2)).Bytes()
	ds := NewDataStream(buf)
	p, err := readShortPrefix(ds, byte(StructureProperties2), nil)
	if err != nil {
		t.Fatalf("readShortPrefix() error: %v", err)
	}
	if p.Tag != byte(StructureProperties2) || p.TagRepeat != p.Tag {
		t.Fatalf("readShortPrefix() = %+v; tag/tag_rep mismatch", p)
	}
}

func TestReadShortPrefixTagMismatch(t *testing.T) {
	buf := testbuf.New().
		U8(0x02).U32(0x0B).Zeros(4).U8(0x03).I16(0). // tag=2, tag_rep=3
		Bytes()
	ds := NewDataStream(buf)
	_, err := readShortPrefix(ds, 0, nil)
	if _, ok := err.(*TagMismatch); !ok {
		t.Fatalf("readShortPrefix() error = %T; want *TagMismatch", err)
	}
}

func TestReadStandardPrefixByteOffset(t *testing.T) {
	buf := testbuf.New().StandardPrefix(byte(StructureWireScalar), 0x40).Bytes()
	ds := NewDataStream(buf)
	p, err := readStandardPrefix(ds, byte(StructureWireScalar), nil)
	if err != nil {
		t.Fatalf("readStandardPrefix() error: %v", err)
	}
	if p.ByteOffset != 0x40 {
		t.Fatalf("ByteOffset = 0x%x; want 0x40", p.ByteOffset)
	}
}

func TestReadPreambleRequiresMagic(t *testing.T) {
	ds := NewDataStream([]byte{0x00, 0x00, 0x00, 0x00})
	if _, err := readPreamble(ds); err == nil {
		t.Fatal("readPreamble() should fail without the magic bytes")
	}
}

func TestReadPrimitivePrefixMismatch(t *testing.T) {
	buf := testbuf.New().U8(byte(PrimitiveRect)).U8(0x00).U8(byte(PrimitiveLine)).Bytes()
	ds := NewDataStream(buf)
	if _, err := readPrimitivePrefix(ds); err == nil {
		t.Fatal("readPrimitivePrefix() should fail when kind bytes disagree")
	}
}
