// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import (
	"testing"

	"github.com/schemparse/schemparse/internal/testbuf"
)

func TestReadPortSymbol(t *testing.T) {
	buf := testbuf.New().
		ShortPrefix(byte(StructurePortSymbol)).
		Str("DATA_IN").
		I32(0).I32(0).
		U32(uint32(PortTypeInput)).
		U16(0). // empty geometry specification
		Bytes()
	ds := NewDataStream(buf)
	p, err := readPortSymbol(ds, FileFormatVersionC, nil)
	if err != nil {
		t.Fatalf("readPortSymbol() error: %v", err)
	}
	if p.Name != "DATA_IN" || p.PortType != PortTypeInput {
		t.Fatalf("readPortSymbol() = %+v", p)
	}
}

func TestReadPortSymbolUnknownPortType(t *testing.T) {
	buf := testbuf.New().
		ShortPrefix(byte(StructurePortSymbol)).
		Str("X").
		I32(0).I32(0).
		U32(0xBEEF).
		Bytes()
	ds := NewDataStream(buf)
	_, err := readPortSymbol(ds, FileFormatVersionC, nil)
	if _, ok := err.(*UnknownEnumValue); !ok {
		t.Fatalf("readPortSymbol() error = %T; want *UnknownEnumValue", err)
	}
}

func TestReadPinShapeSymbol(t *testing.T) {
	buf := testbuf.New().
		ShortPrefix(byte(StructurePinShapeSymbol)).
		U16(uint16(PinShapeClock)).
		U16(0).
		Bytes()
	ds := NewDataStream(buf)
	p, err := readPinShapeSymbol(ds, FileFormatVersionC, nil)
	if err != nil {
		t.Fatalf("readPinShapeSymbol() error: %v", err)
	}
	if p.Shape != PinShapeClock {
		t.Fatalf("readPinShapeSymbol() shape = %v; want PinShapeClock", p.Shape)
	}
}

func TestReadPartInstRotationInvariant(t *testing.T) {
	buf := testbuf.New().
		StandardPrefix(byte(StructurePartInst), 0x10).
		Str("R1").
		Str("RES_0603").
		I32(0).I32(0).
		U8(0x09). // out-of-range rotation
		U8(0).
		Bytes()
	ds := NewDataStream(buf)
	_, err := readPartInst(ds, nil)
	iv, ok := err.(*InvariantViolated)
	if !ok {
		t.Fatalf("readPartInst() error = %T; want *InvariantViolated", err)
	}
	if iv.What != "part rotation out of range" {
		t.Fatalf("InvariantViolated.What = %q", iv.What)
	}
}

func TestReadPartInstMirrored(t *testing.T) {
	buf := testbuf.New().
		StandardPrefix(byte(StructurePartInst), 0x10).
		Str("R2").
		Str("RES_0603").
		I32(5).I32(5).
		U8(byte(Rotation90)).
		U8(1).
		Bytes()
	ds := NewDataStream(buf)
	p, err := readPartInst(ds, nil)
	if err != nil {
		t.Fatalf("readPartInst() error: %v", err)
	}
	if p.RefDes != "R2" || p.Rotation != Rotation90 || !p.Mirrored {
		t.Fatalf("readPartInst() = %+v", p)
	}
}

func TestReadBusEntry(t *testing.T) {
	buf := testbuf.New().
		ShortPrefix(byte(StructureBusEntry)).
		I32(0).I32(0).
		I32(10).I32(10).
		Bytes()
	ds := NewDataStream(buf)
	b, err := readBusEntry(ds, nil)
	if err != nil {
		t.Fatalf("readBusEntry() error: %v", err)
	}
	if b.Start != (Point{0, 0}) || b.End != (Point{10, 10}) {
		t.Fatalf("readBusEntry() = %+v", b)
	}
}
