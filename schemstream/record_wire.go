// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

// wireScalarAliasThreshold is the byte_offset value above which
// readWireScalar reads a nested Alias block (§4.3, §4.6).
const wireScalarAliasThreshold = 0x3D

// WireScalar is a drawn net segment: `{ dbId, 4 opaque, color, startX,
// startY, endX, endY, 1 opaque }`, then a branch driven by the standard
// prefix's byte_offset, then `{ 2 opaque, lineWidth, lineStyle }` (§4.6).
//
//   byte_offset == 0x3D: 2 opaque bytes.
//   byte_offset >  0x3D: u16 len, len × nested record (an Alias block).
//   byte_offset <  0x3D: nothing.
type WireScalar struct {
	DbID                   uint32
	Color                  uint32
	StartX, StartY         int32
	EndX, EndY             int32
	Aliases                []Alias
	LineWidth, LineStyle   uint32
}

func readWireScalar(ds *DataStream, fd *FutureData, diag *Diagnostics, dispatch recordDispatcher) (WireScalar, error) {
	var w WireScalar
	prefix, err := readStandardPrefix(ds, byte(StructureWireScalar), diag)
	if err != nil {
		return w, err
	}
	if w.DbID, err = ds.ReadU32(); err != nil {
		return w, err
	}
	if _, err := ds.ReadRaw(4); err != nil { // 4 opaque bytes
		return w, err
	}
	if w.Color, err = ds.ReadU32(); err != nil {
		return w, err
	}
	if w.StartX, err = ds.ReadI32(); err != nil {
		return w, err
	}
	if w.StartY, err = ds.ReadI32(); err != nil {
		return w, err
	}
	if w.EndX, err = ds.ReadI32(); err != nil {
		return w, err
	}
	if w.EndY, err = ds.ReadI32(); err != nil {
		return w, err
	}
	if _, err := ds.ReadRaw(1); err != nil { // 1 opaque byte
		return w, err
	}

	switch {
	case prefix.ByteOffset == wireScalarAliasThreshold:
		if _, err := ds.ReadRaw(2); err != nil {
			return w, err
		}
	case prefix.ByteOffset > wireScalarAliasThreshold:
		n, err := ds.ReadU16()
		if err != nil {
			return w, err
		}
		w.Aliases = make([]Alias, 0, n)
		for i := uint16(0); i < n; i++ {
			rec, err := dispatch(ds, fd, StructureAlias, diag)
			if err != nil {
				return w, err
			}
			if a, ok := rec.(Alias); ok {
				w.Aliases = append(w.Aliases, a)
			}
		}
	default:
		// byte_offset < 0x3D: nothing extra consumed.
	}

	if _, err := ds.ReadRaw(2); err != nil { // 2 opaque bytes
		return w, err
	}
	if w.LineWidth, err = ds.ReadU32(); err != nil {
		return w, err
	}
	if w.LineStyle, err = ds.ReadU32(); err != nil {
		return w, err
	}
	return w, nil
}
