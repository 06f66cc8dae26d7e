// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import "testing"

func TestLineStyleFromU8Known(t *testing.T) {
	v, err := lineStyleFromU8(byte(LineStyleDashDotDot), 0)
	if err != nil {
		t.Fatalf("lineStyleFromU8() error: %v", err)
	}
	if v != LineStyleDashDotDot {
		t.Fatalf("lineStyleFromU8() = %v; want LineStyleDashDotDot", v)
	}
}

func TestLineStyleFromU8Unknown(t *testing.T) {
	_, err := lineStyleFromU8(0xFE, 42)
	uv, ok := err.(*UnknownEnumValue)
	if !ok {
		t.Fatalf("lineStyleFromU8() error = %T; want *UnknownEnumValue", err)
	}
	if uv.Kind != "LineStyle" || uv.Raw != 0xFE || uv.Offset != 42 {
		t.Fatalf("lineStyleFromU8() error = %+v; want Kind=LineStyle Raw=0xFE Offset=42", uv)
	}
}

func TestColorFromU8AboveCustomFails(t *testing.T) {
	_, err := colorFromU8(uint8(ColorCustom)+5, 0)
	uv, ok := err.(*UnknownEnumValue)
	if !ok {
		t.Fatalf("colorFromU8() error = %T; want *UnknownEnumValue", err)
	}
	if uv.Kind != "Color" {
		t.Fatalf("colorFromU8() error = %+v; want Kind=Color", uv)
	}
}

func TestColorFromU8BoundaryAtCustom(t *testing.T) {
	v, err := colorFromU8(uint8(ColorCustom), 7)
	if err != nil {
		t.Fatalf("colorFromU8(ColorCustom) error: %v", err)
	}
	if v != ColorCustom {
		t.Fatalf("colorFromU8(ColorCustom) = %v; want ColorCustom", v)
	}
}

func TestPortTypeFromU32(t *testing.T) {
	if _, err := portTypeFromU32(uint32(PortTypeNotConnected), 0); err != nil {
		t.Fatalf("portTypeFromU32() error: %v", err)
	}
	_, err := portTypeFromU32(0xDEAD, 9)
	uv, ok := err.(*UnknownEnumValue)
	if !ok {
		t.Fatalf("portTypeFromU32() error = %T; want *UnknownEnumValue", err)
	}
	if uv.Kind != "PortType" || uv.Offset != 9 {
		t.Fatalf("portTypeFromU32() error = %+v", uv)
	}
}

func TestPinShapeFromU16Unknown(t *testing.T) {
	_, err := pinShapeFromU16(0x00FF, 3)
	if _, ok := err.(*UnknownEnumValue); !ok {
		t.Fatalf("pinShapeFromU16() error = %T; want *UnknownEnumValue", err)
	}
}

func TestComponentTypeFromU16(t *testing.T) {
	v, err := componentTypeFromU16(uint16(ComponentTypeGate), 0)
	if err != nil || v != ComponentTypeGate {
		t.Fatalf("componentTypeFromU16() = %v, %v; want ComponentTypeGate, nil", v, err)
	}
	if _, err := componentTypeFromU16(0x00FF, 11); err == nil {
		t.Fatalf("componentTypeFromU16(0xFF) succeeded; want UnknownEnumValue")
	}
}

func TestFileTypeFromExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want FileType
	}{
		{".OLB", FileTypeLibrary},
		{"obk", FileTypeLibrary},
		{".dsn", FileTypeSchematic},
		{"DBK", FileTypeSchematic},
	}
	for _, c := range cases {
		got, err := FileTypeFromExtension(c.ext)
		if err != nil {
			t.Fatalf("FileTypeFromExtension(%q) error: %v", c.ext, err)
		}
		if got != c.want {
			t.Fatalf("FileTypeFromExtension(%q) = %v; want %v", c.ext, got, c.want)
		}
	}
	if _, err := FileTypeFromExtension(".txt"); err == nil {
		t.Fatalf("FileTypeFromExtension(.txt) succeeded; want UnknownFileKind")
	}
}

func TestStructureStringUnknown(t *testing.T) {
	if got := Structure(0x99).String(); got != "Unknown" {
		t.Fatalf("Structure(0x99).String() = %q; want %q", got, "Unknown")
	}
	if got := StructureWireScalar.String(); got != "WireScalar" {
		t.Fatalf("StructureWireScalar.String() = %q; want %q", got, "WireScalar")
	}
}
