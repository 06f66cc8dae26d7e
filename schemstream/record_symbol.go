// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

// GlobalSymbol names a globally-referenced net label symbol (power, ground)
// placed at Origin. It skips the conditional preamble per §4.3's table.
type GlobalSymbol struct {
	Name   string
	Origin Point
	Geometry GeometrySpecification
}

func readGlobalSymbol(ds *DataStream, version FileFormatVersion, diag *Diagnostics) (GlobalSymbol, error) {
	var g GlobalSymbol
	if _, err := readShortPrefix(ds, byte(StructureGlobalSymbol), diag); err != nil {
		return g, err
	}
	var err error
	if g.Name, err = ds.ReadStringZeroTerminated(); err != nil {
		return g, err
	}
	if g.Origin, err = readPoint(ds); err != nil {
		return g, err
	}
	g.Geometry, err = readGeometrySpecification(ds, version)
	return g, err
}

// PortSymbol is a hierarchical port placeholder carrying a PortType.
type PortSymbol struct {
	Name     string
	Origin   Point
	PortType PortType
	Geometry GeometrySpecification
}

func readPortSymbol(ds *DataStream, version FileFormatVersion, diag *Diagnostics) (PortSymbol, error) {
	var p PortSymbol
	if _, err := readShortPrefix(ds, byte(StructurePortSymbol), diag); err != nil {
		return p, err
	}
	var err error
	if p.Name, err = ds.ReadStringZeroTerminated(); err != nil {
		return p, err
	}
	if p.Origin, err = readPoint(ds); err != nil {
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
	p.Geometry, err = readGeometrySpecification(ds, version)
	return p, err
}

// OffPageSymbol is an off-page connector, requiring a conditional preamble
// per §4.3's table.
type OffPageSymbol struct {
	Name     string
	Origin   Point
	Geometry GeometrySpecification
}

func readOffPageSymbol(ds *DataStream, version FileFormatVersion, diag *Diagnostics) (OffPageSymbol, error) {
	var o OffPageSymbol
	if _, err := readConditionalPreamble(ds, StructureOffPageSymbol); err != nil {
		return o, err
	}
	if _, err := readShortPrefix(ds, byte(StructureOffPageSymbol), diag); err != nil {
		return o, err
	}
	var err error
	if o.Name, err = ds.ReadStringZeroTerminated(); err != nil {
		return o, err
	}
	if o.Origin, err = readPoint(ds); err != nil {
		return o, err
	}
	o.Geometry, err = readGeometrySpecification(ds, version)
	return o, err
}

// ERCSymbol carries a graphical electrical-rule-check marker; no conditional
// preamble per §4.3's skip table.
type ERCSymbol struct {
	Origin   Point
	Geometry GeometrySpecification
}

func readERCSymbol(ds *DataStream, version FileFormatVersion, diag *Diagnostics) (ERCSymbol, error) {
	var e ERCSymbol
	if _, err := readShortPrefix(ds, byte(StructureERCSymbol), diag); err != nil {
		return e, err
	}
	var err error
	if e.Origin, err = readPoint(ds); err != nil {
		return e, err
	}
	e.Geometry, err = readGeometrySpecification(ds, version)
	return e, err
}

// PinShapeSymbol holds the drawn geometry for one PinShape variant; no
// conditional preamble.
type PinShapeSymbol struct {
	Shape    PinShape
	Geometry GeometrySpecification
}

func readPinShapeSymbol(ds *DataStream, version FileFormatVersion, diag *Diagnostics) (PinShapeSymbol, error) {
	var p PinShapeSymbol
	if _, err := readShortPrefix(ds, byte(StructurePinShapeSymbol), diag); err != nil {
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
	p.Geometry, err = readGeometrySpecification(ds, version)
	return p, err
}

// TitleBlockSymbol is the drawn title-block artwork placed on a page; no
// conditional preamble.
type TitleBlockSymbol struct {
	Name     string
	Geometry GeometrySpecification
}

func readTitleBlockSymbol(ds *DataStream, version FileFormatVersion, diag *Diagnostics) (TitleBlockSymbol, error) {
	var t TitleBlockSymbol
	if _, err := readShortPrefix(ds, byte(StructureTitleBlockSymbol), diag); err != nil {
		return t, err
	}
	var err error
	if t.Name, err = ds.ReadStringZeroTerminated(); err != nil {
		return t, err
	}
	t.Geometry, err = readGeometrySpecification(ds, version)
	return t, err
}

// PartInst is a placed instance of a part on a schematic page: a reference
// to the part/package and its placement.
type PartInst struct {
	RefDes   string
	PartName string
	Origin   Point
	Rotation Rotation
	Mirrored bool
}

func readPartInst(ds *DataStream, diag *Diagnostics) (PartInst, error) {
	var p PartInst
	if _, err := readStandardPrefix(ds, byte(StructurePartInst), diag); err != nil {
		return p, err
	}
	var err error
	if p.RefDes, err = ds.ReadStringZeroTerminated(); err != nil {
		return p, err
	}
	if p.PartName, err = ds.ReadStringZeroTerminated(); err != nil {
		return p, err
	}
	if p.Origin, err = readPoint(ds); err != nil {
		return p, err
	}
	rotOffset := ds.CurrentOffset()
	rot, err := ds.ReadU8()
	if err != nil {
		return p, err
	}
	p.Rotation = Rotation(rot)
	if !p.Rotation.valid() {
		return p, &InvariantViolated{What: "part rotation out of range", Offset: rotOffset}
	}
	mirrored, err := ds.ReadU8()
	if err != nil {
		return p, err
	}
	p.Mirrored = mirrored != 0
	return p, nil
}

// Alias names an alternate reference for a net or pin, nested inside a
// WireScalar record when its standard prefix's byte_offset exceeds 0x3D
// (§4.6).
type Alias struct {
	Name string
}

func readAlias(ds *DataStream, diag *Diagnostics) (Alias, error) {
	var a Alias
	if _, err := readShortPrefix(ds, byte(StructureAlias), diag); err != nil {
		return a, err
	}
	var err error
	a.Name, err = ds.ReadStringZeroTerminated()
	return a, err
}

// GraphicBoxInst places a drawn box directly on a page or symbol, outside
// any GeometrySpecification list.
type GraphicBoxInst struct {
	Rect Rect
}

func readGraphicBoxInst(ds *DataStream, diag *Diagnostics) (GraphicBoxInst, error) {
	var g GraphicBoxInst
	if _, err := readShortPrefix(ds, byte(StructureGraphicBoxInst), diag); err != nil {
		return g, err
	}
	var err error
	g.Rect, err = readRect(ds)
	return g, err
}

// GraphicCommentTextInst places free text directly on a page.
type GraphicCommentTextInst struct {
	Comment CommentText
}

func readGraphicCommentTextInst(ds *DataStream, diag *Diagnostics) (GraphicCommentTextInst, error) {
	var g GraphicCommentTextInst
	if _, err := readShortPrefix(ds, byte(StructureGraphicCommentTextInst), diag); err != nil {
		return g, err
	}
	var err error
	g.Comment, err = readCommentText(ds)
	return g, err
}

// BusEntry is a diagonal tap connecting a scalar wire to a bus.
type BusEntry struct {
	Start, End Point
}

func readBusEntry(ds *DataStream, diag *Diagnostics) (BusEntry, error) {
	var b BusEntry
	if _, err := readShortPrefix(ds, byte(StructureBusEntry), diag); err != nil {
		return b, err
	}
	var err error
	if b.Start, err = readPoint(ds); err != nil {
		return b, err
	}
	b.End, err = readPoint(ds)
	return b, err
}
