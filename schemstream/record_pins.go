// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

// SymbolPin is the shared body of SymbolPinScalar and SymbolPinBus: name,
// pin origin and hot-point coordinates, shape, and port type (§3, §4.6).
type SymbolPin struct {
	Name             string
	StartX, StartY   int32
	HotPtX, HotPtY   int32
	Shape            PinShape
	PortType         PortType
}

func readSymbolPinBody(ds *DataStream) (SymbolPin, error) {
	var p SymbolPin
	var err error
	if p.Name, err = ds.ReadStringZeroTerminated(); err != nil {
		return p, err
	}
	if p.StartX, err = ds.ReadI32(); err != nil {
		return p, err
	}
	if p.StartY, err = ds.ReadI32(); err != nil {
		return p, err
	}
	if p.HotPtX, err = ds.ReadI32(); err != nil {
		return p, err
	}
	if p.HotPtY, err = ds.ReadI32(); err != nil {
		return p, err
	}
	shapeOffset := ds.CurrentOffset()
	shape, err := ds.ReadU16()
	if err != nil {
		return p, err
	}
	if p.Shape, err = pinShapeFromU16(shape, shapeOffset); err != nil {
		return p, err
	}
	if _, err := ds.ReadRaw(2); err != nil { // 2 opaque bytes
		return p, err
	}
	portOffset := ds.CurrentOffset()
	portType, err := ds.ReadU32()
	if err != nil {
		return p, err
	}
	if p.PortType, err = portTypeFromU32(portType, portOffset); err != nil {
		return p, err
	}
	if _, err := ds.ReadRaw(6); err != nil { // 6 opaque bytes
		return p, err
	}
	return p, nil
}

// SymbolPinScalar is a single-bit pin.
type SymbolPinScalar struct{ SymbolPin }

func readSymbolPinScalar(ds *DataStream, diag *Diagnostics) (SymbolPinScalar, error) {
	var s SymbolPinScalar
	if _, err := readConditionalPreamble(ds, StructureSymbolPinScalar); err != nil {
		return s, err
	}
	if _, err := readShortPrefix(ds, byte(StructureSymbolPinScalar), diag); err != nil {
		return s, err
	}
	body, err := readSymbolPinBody(ds)
	s.SymbolPin = body
	return s, err
}

// SymbolPinBus is a multi-bit bus pin; same body shape as the scalar form
// but skips the conditional preamble (§4.3's skip table).
type SymbolPinBus struct{ SymbolPin }

func readSymbolPinBus(ds *DataStream, diag *Diagnostics) (SymbolPinBus, error) {
	var s SymbolPinBus
	if _, err := readShortPrefix(ds, byte(StructureSymbolPinBus), diag); err != nil {
		return s, err
	}
	body, err := readSymbolPinBody(ds)
	s.SymbolPin = body
	return s, err
}

// validPinSeparators is the closed set §3/§8 require every PinIdxMapping
// per-pin separator byte to belong to.
var validPinSeparators = map[byte]bool{0x7F: true, 0xAA: true, 0xFF: true}

// PinMapEntry pairs a pin name with its one-byte separator/property tag.
type PinMapEntry struct {
	Name      string
	Separator byte
}

// PinIdxMapping carries a unit reference, reference designator, and an
// ordered list of pin names paired with a one-byte property tag (§3, §4.6).
type PinIdxMapping struct {
	UnitRef string
	RefDes  string
	Pins    []PinMapEntry
}

func readPinIdxMapping(ds *DataStream, diag *Diagnostics) (PinIdxMapping, error) {
	var m PinIdxMapping
	if _, err := readConditionalPreamble(ds, StructurePinIdxMapping); err != nil {
		return m, err
	}
	if _, err := readShortPrefix(ds, byte(StructurePinIdxMapping), diag); err != nil {
		return m, err
	}
	var err error
	if m.UnitRef, err = ds.ReadStringZeroTerminated(); err != nil {
		return m, err
	}
	if m.RefDes, err = ds.ReadStringZeroTerminated(); err != nil {
		return m, err
	}
	count, err := ds.ReadU16()
	if err != nil {
		return m, err
	}
	m.Pins = make([]PinMapEntry, count)
	for i := range m.Pins {
		name, err := ds.ReadStringZeroTerminated()
		if err != nil {
			return m, err
		}
		sepOffset := ds.CurrentOffset()
		sep, err := ds.ReadU8()
		if err != nil {
			return m, err
		}
		if !validPinSeparators[sep] {
			return m, &InvariantViolated{What: "pin separator", Offset: sepOffset}
		}
		m.Pins[i] = PinMapEntry{Name: name, Separator: sep}
	}
	return m, nil
}
