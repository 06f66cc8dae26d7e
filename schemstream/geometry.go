// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import "bytes"

// Style carries the optional, defaulted style attributes shared by every
// styled primitive (§4.5): LineStyle defaults to Solid, LineWidth to
// Default, FillStyle to None, HatchStyle to NotValid.
type Style struct {
	LineStyle  LineStyle
	LineWidth  LineWidth
	FillStyle  FillStyle
	HatchStyle HatchStyle
	ColorIdx   Color
	FontIdx    uint32
}

func defaultStyle() Style {
	return Style{
		LineStyle:  LineStyleSolid,
		LineWidth:  LineWidthDefault,
		FillStyle:  FillStyleNone,
		HatchStyle: HatchStyleNotValid,
	}
}

func readStyle(ds *DataStream) (Style, error) {
	s := defaultStyle()
	offset := ds.CurrentOffset()
	lineStyle, err := ds.ReadU8()
	if err != nil {
		return s, err
	}
	lineWidth, err := ds.ReadU8()
	if err != nil {
		return s, err
	}
	fillStyle, err := ds.ReadU8()
	if err != nil {
		return s, err
	}
	hatchStyle, err := ds.ReadU8()
	if err != nil {
		return s, err
	}
	colorIdx, err := ds.ReadU8()
	if err != nil {
		return s, err
	}
	fontIdx, err := ds.ReadU32()
	if err != nil {
		return s, err
	}
	if s.LineStyle, err = lineStyleFromU8(lineStyle, offset); err != nil {
		return s, err
	}
	if s.LineWidth, err = lineWidthFromU8(lineWidth, offset+1); err != nil {
		return s, err
	}
	if s.FillStyle, err = fillStyleFromU8(fillStyle, offset+2); err != nil {
		return s, err
	}
	if s.HatchStyle, err = hatchStyleFromU8(hatchStyle, offset+3); err != nil {
		return s, err
	}
	if s.ColorIdx, err = colorFromU8(colorIdx, offset+4); err != nil {
		return s, err
	}
	s.FontIdx = fontIdx
	return s, nil
}

// Point is a signed 2D coordinate pair, the common currency of every
// geometry primitive.
type Point struct {
	X, Y int32
}

func readPoint(ds *DataStream) (Point, error) {
	x, err := ds.ReadI32()
	if err != nil {
		return Point{}, err
	}
	y, err := ds.ReadI32()
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// Rect is an axis-aligned rectangle primitive.
type Rect struct {
	TopLeft, BottomRight Point
	Style
}

func readRect(ds *DataStream) (Rect, error) {
	var r Rect
	var err error
	if r.TopLeft, err = readPoint(ds); err != nil {
		return r, err
	}
	if r.BottomRight, err = readPoint(ds); err != nil {
		return r, err
	}
	r.Style, err = readStyle(ds)
	return r, err
}

// Line is a straight segment primitive.
type Line struct {
	Start, End Point
	Style
}

func readLine(ds *DataStream) (Line, error) {
	var l Line
	var err error
	if l.Start, err = readPoint(ds); err != nil {
		return l, err
	}
	if l.End, err = readPoint(ds); err != nil {
		return l, err
	}
	l.Style, err = readStyle(ds)
	return l, err
}

// Arc is a circular arc bounded by a rectangle and start/end points.
type Arc struct {
	TopLeft, BottomRight, StartPoint, EndPoint Point
	Style
}

func readArc(ds *DataStream) (Arc, error) {
	var a Arc
	var err error
	for _, p := range []*Point{&a.TopLeft, &a.BottomRight, &a.StartPoint, &a.EndPoint} {
		if *p, err = readPoint(ds); err != nil {
			return a, err
		}
	}
	a.Style, err = readStyle(ds)
	return a, err
}

// Ellipse is bounded by its enclosing rectangle.
type Ellipse struct {
	TopLeft, BottomRight Point
	Style
}

func readEllipse(ds *DataStream) (Ellipse, error) {
	var e Ellipse
	var err error
	if e.TopLeft, err = readPoint(ds); err != nil {
		return e, err
	}
	if e.BottomRight, err = readPoint(ds); err != nil {
		return e, err
	}
	e.Style, err = readStyle(ds)
	return e, err
}

func readPointList(ds *DataStream) ([]Point, error) {
	n, err := ds.ReadU16()
	if err != nil {
		return nil, err
	}
	pts := make([]Point, n)
	for i := range pts {
		if pts[i], err = readPoint(ds); err != nil {
			return nil, err
		}
	}
	return pts, nil
}

// Polygon is a closed, filled vertex list.
type Polygon struct {
	Points []Point
	Style
}

func readPolygon(ds *DataStream) (Polygon, error) {
	var p Polygon
	var err error
	if p.Points, err = readPointList(ds); err != nil {
		return p, err
	}
	p.Style, err = readStyle(ds)
	return p, err
}

// Polyline is an open, stroked vertex list.
type Polyline struct {
	Points []Point
	Style
}

func readPolyline(ds *DataStream) (Polyline, error) {
	var p Polyline
	var err error
	if p.Points, err = readPointList(ds); err != nil {
		return p, err
	}
	p.Style, err = readStyle(ds)
	return p, err
}

// Bezier is a cubic curve through an ordered control-point list.
type Bezier struct {
	ControlPoints []Point
	Style
}

func readBezier(ds *DataStream) (Bezier, error) {
	var b Bezier
	var err error
	if b.ControlPoints, err = readPointList(ds); err != nil {
		return b, err
	}
	b.Style, err = readStyle(ds)
	return b, err
}

// Bitmap is a raster image placed at TopLeft/BottomRight with a raw
// device-dependent bitmap payload.
type Bitmap struct {
	TopLeft, BottomRight Point
	Data                 []byte
}

func readBitmap(ds *DataStream) (Bitmap, error) {
	var b Bitmap
	var err error
	if b.TopLeft, err = readPoint(ds); err != nil {
		return b, err
	}
	if b.BottomRight, err = readPoint(ds); err != nil {
		return b, err
	}
	size, err := ds.ReadU32()
	if err != nil {
		return b, err
	}
	b.Data, err = ds.ReadRaw(size)
	return b, err
}

// CommentText is a free-text annotation placed at Origin.
type CommentText struct {
	Origin Point
	Text   string
	Style
}

func readCommentText(ds *DataStream) (CommentText, error) {
	var c CommentText
	var err error
	if c.Origin, err = readPoint(ds); err != nil {
		return c, err
	}
	if c.Text, err = ds.ReadStringZeroTerminated(); err != nil {
		return c, err
	}
	c.Style, err = readStyle(ds)
	return c, err
}

// symbolVectorTail is the 12 fixed bytes every SymbolVector ends with
// (§4.5).
var symbolVectorTail = []byte{0x00, 0x00, 0x00, 0x00, 0x32, 0x00, 0x32, 0x00, 0x00, 0x00, 0x02, 0x00}

// SymbolVector is structurally richer than the other primitives: it wraps
// a repetition of nested primitives with its own preambles and a name.
type SymbolVector struct {
	LocX, LocY int16
	Elements   []GeometryElement
	Name       string
}

// GeometryElement is one entry of a GeometrySpecification's primitive list:
// the decoded kind tag plus whichever of the typed fields is populated.
type GeometryElement struct {
	Kind         Primitive
	Rect         *Rect
	Line         *Line
	Arc          *Arc
	Ellipse      *Ellipse
	Polygon      *Polygon
	Polyline     *Polyline
	Bezier       *Bezier
	Bitmap       *Bitmap
	CommentText  *CommentText
	SymbolVector *SymbolVector
}

func readGeometryPrimitiveBody(ds *DataStream, kind Primitive) (GeometryElement, error) {
	el := GeometryElement{Kind: kind}
	var err error
	switch kind {
	case PrimitiveRect:
		r, e := readRect(ds)
		el.Rect, err = &r, e
	case PrimitiveLine:
		l, e := readLine(ds)
		el.Line, err = &l, e
	case PrimitiveArc:
		a, e := readArc(ds)
		el.Arc, err = &a, e
	case PrimitiveEllipse:
		el2, e := readEllipse(ds)
		el.Ellipse, err = &el2, e
	case PrimitivePolygon:
		p, e := readPolygon(ds)
		el.Polygon, err = &p, e
	case PrimitivePolyline:
		p, e := readPolyline(ds)
		el.Polyline, err = &p, e
	case PrimitiveBezier:
		b, e := readBezier(ds)
		el.Bezier, err = &b, e
	case PrimitiveBitmap:
		b, e := readBitmap(ds)
		el.Bitmap, err = &b, e
	case PrimitiveCommentText:
		c, e := readCommentText(ds)
		el.CommentText, err = &c, e
	case PrimitiveSymbolVector:
		sv, e := readSymbolVector(ds, DefaultFileFormatVersion)
		el.SymbolVector, err = &sv, e
	default:
		return el, &UnknownEnumValue{Kind: "Primitive", Raw: uint32(kind), Offset: ds.CurrentOffset()}
	}
	return el, err
}

// readSymbolVector reads `{ discard_until_preamble, preamble, locX, locY,
// repetition, repetition × (optional-preamble, primitive-prefix,
// geometry-primitive), preamble, name, 12 fixed tail bytes }` (§4.5).
func readSymbolVector(ds *DataStream, version FileFormatVersion) (SymbolVector, error) {
	var sv SymbolVector
	if idx := bytes.Index(ds.buf[ds.offset:], PreambleMagic); idx > 0 {
		if _, err := ds.PrintUnknown(uint32(idx), "SymbolVector bytes before preamble"); err != nil {
			return sv, err
		}
	}
	if _, err := readPreamble(ds); err != nil {
		return sv, err
	}
	locX, err := ds.ReadI16()
	if err != nil {
		return sv, err
	}
	locY, err := ds.ReadI16()
	if err != nil {
		return sv, err
	}
	sv.LocX, sv.LocY = locX, locY
	repetition, err := ds.ReadU16()
	if err != nil {
		return sv, err
	}
	sv.Elements = make([]GeometryElement, 0, repetition)
	for i := uint16(0); i < repetition; i++ {
		if i > 0 && version != FileFormatVersionA {
			if _, err := readPreamble(ds); err != nil {
				return sv, err
			}
		}
		prefix, err := readPrimitivePrefix(ds)
		if err != nil {
			return sv, err
		}
		el, err := readGeometryPrimitiveBody(ds, prefix.Kind)
		if err != nil {
			return sv, err
		}
		if version == FileFormatVersionA {
			if _, err := ds.ReadRaw(8); err != nil {
				return sv, err
			}
		}
		sv.Elements = append(sv.Elements, el)
	}
	if _, err := readPreamble(ds); err != nil {
		return sv, err
	}
	name, err := ds.ReadStringZeroTerminated()
	if err != nil {
		return sv, err
	}
	sv.Name = name
	if err := ds.AssumeBytes(symbolVectorTail); err != nil {
		return sv, err
	}
	return sv, nil
}

// GeometrySpecification is a named bag of primitive lists, per §3.
type GeometrySpecification struct {
	Elements []GeometryElement
}

// readGeometrySpecification reads a version-dependent list of primitives.
// Version A appends an extra 8-byte block per primitive; B re-reads a
// type-prefix between successive primitives (C does not); B and C (but not
// A) re-read a preamble between successive primitives (§4.7).
func readGeometrySpecification(ds *DataStream, version FileFormatVersion) (GeometrySpecification, error) {
	var gs GeometrySpecification
	count, err := ds.ReadU16()
	if err != nil {
		return gs, err
	}
	gs.Elements = make([]GeometryElement, 0, count)
	for i := uint16(0); i < count; i++ {
		if i > 0 && version == FileFormatVersionB {
			if _, err := readStandardPrefix(ds, 0, nil); err != nil { // re-read type prefix
				return gs, err
			}
		}
		if i > 0 && version != FileFormatVersionA {
			if _, err := readPreamble(ds); err != nil {
				return gs, err
			}
		}
		prefix, err := readPrimitivePrefix(ds)
		if err != nil {
			return gs, err
		}
		el, err := readGeometryPrimitiveBody(ds, prefix.Kind)
		if err != nil {
			return gs, err
		}
		if version == FileFormatVersionA {
			if _, err := ds.ReadRaw(8); err != nil {
				return gs, err
			}
		}
		gs.Elements = append(gs.Elements, el)
	}
	return gs, nil
}
