// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

// Properties is `{ ref: zstr, 00 00 00, viewNumber: u16, if viewNumber==2:
// convertName: zstr, name: zstr, 29 opaque bytes }` (§4.6). viewNumber must
// be 1 or 2 per §3's invariant; ViewNumber==1 omits ConvertName.
type Properties struct {
	Ref         string
	ViewNumber  uint16
	ConvertName string // only set when ViewNumber == 2
	Name        string
	Trailing    []byte // 29 opaque bytes
}

func readProperties(ds *DataStream, diag *Diagnostics) (Properties, error) {
	var p Properties
	if _, err := readConditionalPreamble(ds, StructureProperties); err != nil {
		return p, err
	}
	if _, err := readShortPrefix(ds, byte(StructureProperties), diag); err != nil {
		return p, err
	}
	ref, err := ds.ReadStringZeroTerminated()
	if err != nil {
		return p, err
	}
	p.Ref = ref
	if _, err := ds.ReadRaw(3); err != nil {
		return p, err
	}
	viewOffset := ds.CurrentOffset()
	viewNumber, err := ds.ReadU16()
	if err != nil {
		return p, err
	}
	if viewNumber != 1 && viewNumber != 2 {
		return p, &InvariantViolated{What: "viewNumber", Offset: viewOffset}
	}
	p.ViewNumber = viewNumber
	if viewNumber == 2 {
		if p.ConvertName, err = ds.ReadStringZeroTerminated(); err != nil {
			return p, err
		}
	}
	if p.Name, err = ds.ReadStringZeroTerminated(); err != nil {
		return p, err
	}
	if p.Trailing, err = ds.ReadRaw(29); err != nil {
		return p, err
	}
	return p, nil
}

// Properties2 carries a symbol name, reference designator, footprint, and
// section count (§3).
type Properties2 struct {
	Name         string
	RefDes       string
	Footprint    string
	SectionCount uint16
}

func readProperties2(ds *DataStream, diag *Diagnostics) (Properties2, error) {
	var p Properties2
	if _, err := readShortPrefix(ds, byte(StructureProperties2), diag); err != nil {
		return p, err
	}
	var err error
	if p.Name, err = ds.ReadStringZeroTerminated(); err != nil {
		return p, err
	}
	if p.RefDes, err = ds.ReadStringZeroTerminated(); err != nil {
		return p, err
	}
	if p.Footprint, err = ds.ReadStringZeroTerminated(); err != nil {
		return p, err
	}
	if p.SectionCount, err = ds.ReadU16(); err != nil {
		return p, err
	}
	return p, nil
}

// GeneralProperties carries the implementation path and kind, reference
// designator prefix, part value, pin-name/pin-number display flags, and
// implementation type (§3).
type GeneralProperties struct {
	ImplementationPath string
	ImplementationKind string
	RefDesPrefix       string
	PartValue          string
	PinNameVisible     bool
	PinNameRotation    Rotation
	PinNumberVisible   bool
	ImplementationType uint8
}

func readGeneralProperties(ds *DataStream, diag *Diagnostics) (GeneralProperties, error) {
	var g GeneralProperties
	if _, err := readShortPrefix(ds, byte(StructureGeneralProperties), diag); err != nil {
		return g, err
	}
	var err error
	if g.ImplementationPath, err = ds.ReadStringZeroTerminated(); err != nil {
		return g, err
	}
	if g.ImplementationKind, err = ds.ReadStringZeroTerminated(); err != nil {
		return g, err
	}
	if g.RefDesPrefix, err = ds.ReadStringZeroTerminated(); err != nil {
		return g, err
	}
	if g.PartValue, err = ds.ReadStringZeroTerminated(); err != nil {
		return g, err
	}
	flags, err := ds.ReadU8()
	if err != nil {
		return g, err
	}
	g.PinNameVisible = flags&0x01 != 0
	rotOffset := ds.CurrentOffset()
	rot, err := ds.ReadU8()
	if err != nil {
		return g, err
	}
	g.PinNameRotation = Rotation(rot)
	if !g.PinNameRotation.valid() {
		return g, &InvariantViolated{What: "pin name rotation out of range", Offset: rotOffset}
	}
	pinNumFlag, err := ds.ReadU8()
	if err != nil {
		return g, err
	}
	g.PinNumberVisible = pinNumFlag != 0
	if g.ImplementationType, err = ds.ReadU8(); err != nil {
		return g, err
	}
	return g, nil
}

// symbolDisplayPropReservedMask isolates the middle bits of the packed
// field that must be zero (bits 8..13).
const symbolDisplayPropReservedMask = 0x3F00

// SymbolDisplayProp holds a string-list index into the library's global
// string table, a position, packed flags (font index in the low byte,
// reserved middle bits, rotation in the top two bits), colour, and
// visibility mode (§3, §4.6).
type SymbolDisplayProp struct {
	NameIdx       uint32
	X, Y          int16
	TextFontIdx   uint8
	Rotation      Rotation
	PropColor     Color
	VisibilityMode uint8
}

func readSymbolDisplayProp(ds *DataStream, textFontTableLen int, diag *Diagnostics) (SymbolDisplayProp, error) {
	var s SymbolDisplayProp
	if _, err := readConditionalPreamble(ds, StructureSymbolDisplayProp); err != nil {
		return s, err
	}
	if _, err := readShortPrefix(ds, byte(StructureSymbolDisplayProp), diag); err != nil {
		return s, err
	}
	var err error
	if s.NameIdx, err = ds.ReadU32(); err != nil {
		return s, err
	}
	if s.X, err = ds.ReadI16(); err != nil {
		return s, err
	}
	if s.Y, err = ds.ReadI16(); err != nil {
		return s, err
	}
	packedOffset := ds.CurrentOffset()
	packed, err := ds.ReadU16()
	if err != nil {
		return s, err
	}
	s.TextFontIdx = uint8(packed & 0xFF)
	if packed&symbolDisplayPropReservedMask != 0 {
		return s, &InvariantViolated{What: "reserved bits", Offset: packedOffset}
	}
	s.Rotation = Rotation(packed >> 14)
	if textFontTableLen >= 0 && int(s.TextFontIdx) > textFontTableLen {
		return s, &InvariantViolated{What: "textFontIdx out of range", Offset: packedOffset}
	}
	colorFieldOffset := ds.CurrentOffset()
	colorVal, err := ds.ReadU8()
	if err != nil {
		return s, err
	}
	if s.PropColor, err = colorFromU8(colorVal, colorFieldOffset); err != nil {
		return s, err
	}
	if _, err := ds.ReadRaw(2); err != nil {
		return s, err
	}
	if err := ds.AssumeBytes([]byte{0x00}); err != nil {
		return s, err
	}
	return s, nil
}

// StringTable is the library's index-addressed global string table. Index 0
// yields the empty string; index k>0 yields element k-1 (§3, §8).
type StringTable struct {
	Entries []string
}

// Lookup resolves a 1-based string-table index per §3's rule.
func (t StringTable) Lookup(idx uint32) string {
	if idx == 0 {
		return ""
	}
	i := idx - 1
	if int(i) >= len(t.Entries) {
		return ""
	}
	return t.Entries[i]
}
