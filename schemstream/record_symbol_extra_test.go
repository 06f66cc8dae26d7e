// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import (
	"testing"

	"github.com/schemparse/schemparse/internal/testbuf"
)

func TestReadGlobalSymbol(t *testing.T) {
	buf := testbuf.New().
		ShortPrefix(byte(StructureGlobalSymbol)).
		Str("GND").
		I32(0).I32(0). // Origin
		U16(0).        // empty geometry
		Bytes()
	g, err := readGlobalSymbol(NewDataStream(buf), DefaultFileFormatVersion, nil)
	if err != nil {
		t.Fatalf("readGlobalSymbol() error: %v", err)
	}
	if g.Name != "GND" || g.Origin != (Point{0, 0}) {
		t.Fatalf("readGlobalSymbol() = %+v", g)
	}
}

func TestReadOffPageSymbol(t *testing.T) {
	buf := testbuf.New().
		Preamble().
		ShortPrefix(byte(StructureOffPageSymbol)).
		Str("OUT").
		I32(1).I32(2).
		U16(0).
		Bytes()
	o, err := readOffPageSymbol(NewDataStream(buf), DefaultFileFormatVersion, nil)
	if err != nil {
		t.Fatalf("readOffPageSymbol() error: %v", err)
	}
	if o.Name != "OUT" || o.Origin != (Point{1, 2}) {
		t.Fatalf("readOffPageSymbol() = %+v", o)
	}
}

func TestReadERCSymbol(t *testing.T) {
	buf := testbuf.New().
		ShortPrefix(byte(StructureERCSymbol)).
		I32(3).I32(4).
		U16(0).
		Bytes()
	e, err := readERCSymbol(NewDataStream(buf), DefaultFileFormatVersion, nil)
	if err != nil {
		t.Fatalf("readERCSymbol() error: %v", err)
	}
	if e.Origin != (Point{3, 4}) {
		t.Fatalf("readERCSymbol() = %+v", e)
	}
}

func TestReadTitleBlockSymbol(t *testing.T) {
	buf := testbuf.New().
		ShortPrefix(byte(StructureTitleBlockSymbol)).
		Str("TITLE").
		U16(0).
		Bytes()
	tb, err := readTitleBlockSymbol(NewDataStream(buf), DefaultFileFormatVersion, nil)
	if err != nil {
		t.Fatalf("readTitleBlockSymbol() error: %v", err)
	}
	if tb.Name != "TITLE" {
		t.Fatalf("readTitleBlockSymbol() = %+v", tb)
	}
}

func TestReadAlias(t *testing.T) {
	buf := testbuf.New().ShortPrefix(byte(StructureAlias)).Str("RESET").Bytes()
	a, err := readAlias(NewDataStream(buf), nil)
	if err != nil {
		t.Fatalf("readAlias() error: %v", err)
	}
	if a.Name != "RESET" {
		t.Fatalf("readAlias() = %+v", a)
	}
}

func TestReadGraphicBoxInst(t *testing.T) {
	buf := testbuf.New().ShortPrefix(byte(StructureGraphicBoxInst))
	buf.I32(0).I32(10).I32(20).I32(0)
	buildStyle(buf, byte(LineStyleSolid), byte(LineWidthThin), byte(FillStyleNone), byte(HatchStyleNotValid), byte(ColorBlack), 0)
	g, err := readGraphicBoxInst(NewDataStream(buf.Bytes()), nil)
	if err != nil {
		t.Fatalf("readGraphicBoxInst() error: %v", err)
	}
	if g.Rect.TopLeft != (Point{0, 10}) {
		t.Fatalf("readGraphicBoxInst() = %+v", g)
	}
}

func TestReadGraphicCommentTextInst(t *testing.T) {
	buf := testbuf.New().ShortPrefix(byte(StructureGraphicCommentTextInst))
	buf.I32(5).I32(6).Str("note")
	buildStyle(buf, byte(LineStyleSolid), byte(LineWidthThin), byte(FillStyleNone), byte(HatchStyleNotValid), byte(ColorBlack), 0)
	g, err := readGraphicCommentTextInst(NewDataStream(buf.Bytes()), nil)
	if err != nil {
		t.Fatalf("readGraphicCommentTextInst() error: %v", err)
	}
	if g.Comment.Text != "note" || g.Comment.Origin != (Point{5, 6}) {
		t.Fatalf("readGraphicCommentTextInst() = %+v", g)
	}
}
