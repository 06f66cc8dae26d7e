// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import "testing"

func TestDataStreamReadIntegers(t *testing.T) {
	ds := NewDataStream([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06})

	u8, err := ds.ReadU8()
	if err != nil || u8 != 0x01 {
		t.Fatalf("ReadU8() = %v, %v; want 0x01, nil", u8, err)
	}

	u16, err := ds.ReadU16()
	if err != nil || u16 != 0x0302 {
		t.Fatalf("ReadU16() = 0x%x, %v; want 0x0302, nil", u16, err)
	}

	u32, err := ds.ReadU32()
	if err == nil {
		t.Fatalf("ReadU32() past EOF should fail, got %v", u32)
	}
	if _, ok := err.(*TruncatedStream); !ok {
		t.Fatalf("ReadU32() error = %T; want *TruncatedStream", err)
	}
}

func TestDataStreamStringZeroTerminated(t *testing.T) {
	ds := NewDataStream([]byte{'h', 'i', 0x00, 'x'})
	s, err := ds.ReadStringZeroTerminated()
	if err != nil {
		t.Fatalf("ReadStringZeroTerminated() error: %v", err)
	}
	if s != "hi" {
		t.Fatalf("ReadStringZeroTerminated() = %q; want %q", s, "hi")
	}
	if ds.CurrentOffset() != 3 {
		t.Fatalf("CurrentOffset() = %d; want 3", ds.CurrentOffset())
	}
}

func TestDataStreamAssumeBytes(t *testing.T) {
	ds := NewDataStream(PreambleMagic)
	if err := ds.AssumeBytes(PreambleMagic); err != nil {
		t.Fatalf("AssumeBytes(magic) error: %v", err)
	}

	ds2 := NewDataStream([]byte{0x00, 0x00, 0x00, 0x00})
	err := ds2.AssumeBytes(PreambleMagic)
	if err == nil {
		t.Fatal("AssumeBytes() with mismatched bytes should fail")
	}
	if _, ok := err.(*MagicMismatch); !ok {
		t.Fatalf("AssumeBytes() error = %T; want *MagicMismatch", err)
	}
}

func TestDataStreamPutback(t *testing.T) {
	ds := NewDataStream([]byte{0x10, 0x20})
	if _, err := ds.ReadU8(); err != nil {
		t.Fatal(err)
	}
	ds.Putback()
	v, err := ds.ReadU8()
	if err != nil || v != 0x10 {
		t.Fatalf("ReadU8() after Putback() = 0x%x, %v; want 0x10, nil", v, err)
	}
}

func TestDataStreamIsEOF(t *testing.T) {
	ds := NewDataStream([]byte{0x01})
	if ds.IsEOF() {
		t.Fatal("IsEOF() true before consuming the buffer")
	}
	if _, err := ds.ReadU8(); err != nil {
		t.Fatal(err)
	}
	if !ds.IsEOF() {
		t.Fatal("IsEOF() false after consuming the whole buffer")
	}
}
