// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

// Page is the most intricate record reader in the format: a fixed header
// of named layout fields followed by six variable-length tail sections
// (§4.6). Tail section 3's first iteration is a documented placeholder for
// an unimplemented "very long" prefix form (§9 open question (d)): it
// consumes 47 opaque bytes and synthesises StructureWireScalar as its tag
// instead of reading one, matching the "synthetic tag 0x0D" described in
// the spec (0x0D is StructureWireScalar's tag in this catalogue's
// numbering; the synthesis exists purely to keep the loop shape uniform).
type Page struct {
	Name                string
	PageSize            string
	CreateDateTime      uint32
	ModifyDateTime      uint32
	Width, Height       uint32
	PinToPin            uint32
	HorizontalCount     uint16
	VerticalCount       uint16
	HorizontalWidth     uint32
	VerticalWidth       uint32
	HorizontalChar      uint32
	HorizontalAscending uint32
	VerticalChar        uint32
	VerticalAscending   uint32
	IsMetric            uint32
	BorderDisplayed     uint32
	BorderPrinted       uint32
	GridRefDisplayed    uint32
	GridRefPrinted      uint32
	TitleblockDisplayed uint32
	TitleblockPrinted   uint32
	AnsiGridRefs        uint32

	TailA  [][8]byte
	Tail0  [][32]byte
	Tail1  []pageTail1Entry
	Tail2  []interface{}
	Tail3  []interface{}
	TailX  []interface{}
}

type pageTail1Entry struct {
	Name   string
	Opaque [4]byte
}

func readPage(ds *DataStream, fd *FutureData, version FileFormatVersion, diag *Diagnostics, dispatch recordDispatcher) (Page, error) {
	var p Page
	if _, err := ds.ReadRaw(21); err != nil { // 21 opaque header bytes
		return p, err
	}
	if _, err := readPreamble(ds); err != nil {
		return p, err
	}
	var err error
	if p.Name, err = ds.ReadStringZeroTerminated(); err != nil {
		return p, err
	}
	if p.PageSize, err = ds.ReadStringZeroTerminated(); err != nil {
		return p, err
	}
	if p.CreateDateTime, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.ModifyDateTime, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if _, err := ds.ReadRaw(16); err != nil {
		return p, err
	}
	if p.Width, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.Height, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.PinToPin, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if _, err := ds.ReadRaw(2); err != nil {
		return p, err
	}
	if p.HorizontalCount, err = ds.ReadU16(); err != nil {
		return p, err
	}
	if p.VerticalCount, err = ds.ReadU16(); err != nil {
		return p, err
	}
	if _, err := ds.ReadRaw(2); err != nil {
		return p, err
	}
	if p.HorizontalWidth, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.VerticalWidth, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if _, err := ds.ReadRaw(48); err != nil {
		return p, err
	}
	if p.HorizontalChar, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if _, err := ds.ReadRaw(4); err != nil {
		return p, err
	}
	if p.HorizontalAscending, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.VerticalChar, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if _, err := ds.ReadRaw(4); err != nil {
		return p, err
	}
	if p.VerticalAscending, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.IsMetric, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.BorderDisplayed, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.BorderPrinted, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.GridRefDisplayed, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.GridRefPrinted, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.TitleblockDisplayed, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.TitleblockPrinted, err = ds.ReadU32(); err != nil {
		return p, err
	}
	if p.AnsiGridRefs, err = ds.ReadU32(); err != nil {
		return p, err
	}

	lenA, err := ds.ReadU16()
	if err != nil {
		return p, err
	}
	for i := uint16(0); i < lenA; i++ {
		var block [8]byte
		raw, err := ds.ReadRaw(8)
		if err != nil {
			return p, err
		}
		copy(block[:], raw)
		p.TailA = append(p.TailA, block)
	}

	len0, err := ds.ReadU16()
	if err != nil {
		return p, err
	}
	for i := uint16(0); i < len0; i++ {
		var block [32]byte
		raw, err := ds.ReadRaw(32)
		if err != nil {
			return p, err
		}
		copy(block[:], raw)
		p.Tail0 = append(p.Tail0, block)
	}

	len1, err := ds.ReadU16()
	if err != nil {
		return p, err
	}
	for i := uint16(0); i < len1; i++ {
		name, err := ds.ReadStringZeroTerminated()
		if err != nil {
			return p, err
		}
		var opaque [4]byte
		raw, err := ds.ReadRaw(4)
		if err != nil {
			return p, err
		}
		copy(opaque[:], raw)
		p.Tail1 = append(p.Tail1, pageTail1Entry{Name: name, Opaque: opaque})
	}

	len2, err := ds.ReadU16()
	if err != nil {
		return p, err
	}
	for i := uint16(0); i < len2; i++ {
		if _, err := TryPreamble(ds); err != nil {
			return p, err
		}
		tag, err := ds.ReadU8()
		if err != nil {
			return p, err
		}
		ds.Putback()
		rec, err := dispatch(ds, fd, Structure(tag), diag)
		if err != nil {
			return p, err
		}
		p.Tail2 = append(p.Tail2, rec)
	}

	len3, err := ds.ReadU16()
	if err != nil {
		return p, err
	}
	for i := uint16(0); i < len3; i++ {
		if i == 0 {
			// §9 open question (d): placeholder for an unimplemented "very
			// long" prefix form. Consume the documented 47 opaque bytes and
			// synthesise StructureWireScalar (tag 0x0D) rather than reading one.
			if _, err := ds.ReadRaw(47); err != nil {
				return p, err
			}
			rec, err := dispatch(ds, fd, StructureWireScalar, diag)
			if err != nil {
				return p, err
			}
			p.Tail3 = append(p.Tail3, rec)
			continue
		}
		tag, err := ds.ReadU8()
		if err != nil {
			return p, err
		}
		ds.Putback()
		rec, err := dispatch(ds, fd, Structure(tag), diag)
		if err != nil {
			return p, err
		}
		p.Tail3 = append(p.Tail3, rec)
	}

	if _, err := ds.ReadRaw(10); err != nil {
		return p, err
	}

	lenX, err := ds.ReadU16()
	if err != nil {
		return p, err
	}
	for i := uint16(0); i < lenX; i++ {
		if _, err := TryPreamble(ds); err != nil {
			return p, err
		}
		tag, err := ds.ReadU8()
		if err != nil {
			return p, err
		}
		ds.Putback()
		rec, err := dispatch(ds, fd, Structure(tag), diag)
		if err != nil {
			return p, err
		}
		p.TailX = append(p.TailX, rec)
	}

	if !ds.IsEOF() {
		return p, &InvariantViolated{What: "page did not reach EOF", Offset: ds.CurrentOffset()}
	}
	return p, nil
}
