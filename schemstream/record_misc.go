// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

// T0x1f is `{ name, opaque1, refDes, opaque2, pcbFootprint, 2 opaque
// bytes }`; the field names are placeholders for a tag whose semantics are
// not yet fully reverse-engineered (§4.6, §9's "opaque byte regions" note).
type T0x1f struct {
	Name         string
	Opaque1      string
	RefDes       string
	Opaque2      string
	PCBFootprint string
}

func readT0x1f(ds *DataStream, diag *Diagnostics) (T0x1f, error) {
	var t T0x1f
	if _, err := readConditionalPreamble(ds, StructureT0x1f); err != nil {
		return t, err
	}
	if _, err := readShortPrefix(ds, byte(StructureT0x1f), diag); err != nil {
		return t, err
	}
	var err error
	if t.Name, err = ds.ReadStringZeroTerminated(); err != nil {
		return t, err
	}
	if t.Opaque1, err = ds.ReadStringZeroTerminated(); err != nil {
		return t, err
	}
	if t.RefDes, err = ds.ReadStringZeroTerminated(); err != nil {
		return t, err
	}
	if t.Opaque2, err = ds.ReadStringZeroTerminated(); err != nil {
		return t, err
	}
	if t.PCBFootprint, err = ds.ReadStringZeroTerminated(); err != nil {
		return t, err
	}
	if _, err := ds.ReadRaw(2); err != nil {
		return t, err
	}
	return t, nil
}

// T0x10 is a short, opaque-bodied record retained under its source tag
// name; its trailing region is read via readUntilNextFutureData so the
// unresolved tail stays auditable.
type T0x10 struct {
	Diagnostics []Diagnostic
}

func readT0x10(ds *DataStream, fd *FutureData, diag *Diagnostics) (T0x10, error) {
	var t T0x10
	if _, err := readShortPrefix(ds, byte(StructureT0x10), diag); err != nil {
		return t, err
	}
	if err := fd.ReadUntilNextFutureData("T0x10 trailer"); err != nil {
		return t, err
	}
	t.Diagnostics = ds.Diagnostics()
	return t, nil
}

// SthInPages0 is `{ 6 opaque, 4 opaque, u16 len, len × (primitive-prefix,
// geometry primitive) }`, with an optional 8-byte coordinate tail chosen by
// comparing the remaining distance to the next FutureData checkpoint
// against exactly 8 (§4.4, §9 open question (c)).
type SthInPages0 struct {
	Elements []GeometryElement
	Tail     *Point
}

func readSthInPages0(ds *DataStream, fd *FutureData, version FileFormatVersion, diag *Diagnostics) (SthInPages0, error) {
	var s SthInPages0
	if _, err := ds.ReadRaw(6); err != nil {
		return s, err
	}
	if _, err := ds.ReadRaw(4); err != nil {
		return s, err
	}
	n, err := ds.ReadU16()
	if err != nil {
		return s, err
	}
	s.Elements = make([]GeometryElement, 0, n)
	for i := uint16(0); i < n; i++ {
		prefix, err := readPrimitivePrefix(ds)
		if err != nil {
			return s, err
		}
		el, err := readGeometryPrimitiveBody(ds, prefix.Kind)
		if err != nil {
			return s, err
		}
		s.Elements = append(s.Elements, el)
	}
	if remaining := fd.RemainingToTop(); remaining == 8 {
		pt, err := readPoint(ds)
		if err != nil {
			return s, err
		}
		s.Tail = &pt
	} else if remaining > 0 {
		if err := fd.ReadUntilNextFutureData("SthInPages0 tail"); err != nil {
			return s, err
		}
	}
	return s, nil
}
