// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import (
	"testing"

	"github.com/schemparse/schemparse/internal/testbuf"
)

func TestReadT0x1f(t *testing.T) {
	buf := testbuf.New().
		Preamble().
		ShortPrefix(byte(StructureT0x1f)).
		Str("U1").
		Str("op1").
		Str("REF1").
		Str("op2").
		Str("0603").
		Zeros(2).
		Bytes()
	ds := NewDataStream(buf)
	rec, err := readT0x1f(ds, nil)
	if err != nil {
		t.Fatalf("readT0x1f() error: %v", err)
	}
	if rec.Name != "U1" || rec.RefDes != "REF1" || rec.PCBFootprint != "0603" {
		t.Fatalf("readT0x1f() = %+v", rec)
	}
}

func TestReadSthInPages0WithTail(t *testing.T) {
	rect := testbuf.New().
		U8(byte(PrimitiveRect)).U8(0x00).U8(byte(PrimitiveRect)).
		I32(0).I32(0).I32(1).I32(1)
	buildStyle(rect, byte(LineStyleSolid), byte(LineWidthDefault), byte(FillStyleNone), byte(HatchStyleNotValid), byte(ColorDefault), 0)

	buf := testbuf.New().
		Zeros(6).
		Zeros(4).
		U16(1).
		Raw(rect.Bytes()...).
		I32(5).I32(6). // 8-byte coordinate tail
		Bytes()
	ds := NewDataStream(buf)
	fd := NewFutureData(ds)
	fd.Push(ds.Len())

	s, err := readSthInPages0(ds, fd, FileFormatVersionC, nil)
	if err != nil {
		t.Fatalf("readSthInPages0() error: %v", err)
	}
	if len(s.Elements) != 1 {
		t.Fatalf("readSthInPages0() elements = %+v", s.Elements)
	}
	if s.Tail == nil || *s.Tail != (Point{5, 6}) {
		t.Fatalf("readSthInPages0() tail = %+v; want {5 6}", s.Tail)
	}
	if err := fd.Pop(); err != nil {
		t.Fatalf("fd.Pop() error: %v", err)
	}
}

func TestReadSthInPages0NoCheckpointSkipsTail(t *testing.T) {
	buf := testbuf.New().
		Zeros(6).
		Zeros(4).
		U16(0). // no geometry elements
		Bytes()
	ds := NewDataStream(buf)
	fd := NewFutureData(ds) // no checkpoint pushed: RemainingToTop() == -1

	s, err := readSthInPages0(ds, fd, FileFormatVersionC, nil)
	if err != nil {
		t.Fatalf("readSthInPages0() error: %v", err)
	}
	if s.Tail != nil {
		t.Fatalf("readSthInPages0() tail = %+v; want nil", s.Tail)
	}
	if !ds.IsEOF() {
		t.Fatalf("readSthInPages0() left %d unconsumed bytes", ds.Len()-ds.CurrentOffset())
	}
}
