// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

// Structure identifies the kind of a tagged record. Values mirror the tag
// bytes observed in the corpus; the dispatcher in dispatch.go is total over
// the registered subset and every other value is UnknownStructure.
type Structure byte

const (
	StructureProperties               Structure = 0x01
	StructureProperties2              Structure = 0x02
	StructureGeneralProperties        Structure = 0x03
	StructureSymbolPinScalar          Structure = 0x04
	StructureSymbolPinBus             Structure = 0x05
	StructurePinIdxMapping            Structure = 0x06
	StructureSymbolDisplayProp        Structure = 0x07
	StructureGlobalSymbol             Structure = 0x08
	StructurePortSymbol               Structure = 0x09
	StructureOffPageSymbol            Structure = 0x0A
	StructureERCSymbol                Structure = 0x0B
	StructurePinShapeSymbol           Structure = 0x0C
	StructureWireScalar               Structure = 0x0D
	StructurePartInst                 Structure = 0x0E
	StructureAlias                    Structure = 0x0F
	StructureGraphicBoxInst           Structure = 0x10
	StructureGraphicCommentTextInst   Structure = 0x11
	StructureBusEntry                 Structure = 0x12
	StructureT0x1f                    Structure = 0x1F
	StructureT0x10                    Structure = 0x20
	StructureSthInPages0              Structure = 0x21
	StructureSymbolVector             Structure = 0x22
	StructureTitleBlockSymbol         Structure = 0x23
	StructureGeoDefinition            Structure = 0x24
)

// structureNames gives the dispatch table and test suite a stable,
// human-readable label without relying on %v reflection.
var structureNames = map[Structure]string{
	StructureProperties:             "Properties",
	StructureProperties2:            "Properties2",
	StructureGeneralProperties:      "GeneralProperties",
	StructureSymbolPinScalar:        "SymbolPinScalar",
	StructureSymbolPinBus:           "SymbolPinBus",
	StructurePinIdxMapping:          "PinIdxMapping",
	StructureSymbolDisplayProp:      "SymbolDisplayProp",
	StructureGlobalSymbol:           "GlobalSymbol",
	StructurePortSymbol:             "PortSymbol",
	StructureOffPageSymbol:          "OffPageSymbol",
	StructureERCSymbol:              "ERCSymbol",
	StructurePinShapeSymbol:         "PinShapeSymbol",
	StructureWireScalar:             "WireScalar",
	StructurePartInst:               "PartInst",
	StructureAlias:                  "Alias",
	StructureGraphicBoxInst:         "GraphicBoxInst",
	StructureGraphicCommentTextInst: "GraphicCommentTextInst",
	StructureBusEntry:               "BusEntry",
	StructureT0x1f:                  "T0x1f",
	StructureT0x10:                  "T0x10",
	StructureSthInPages0:            "SthInPages0",
	StructureSymbolVector:           "SymbolVector",
	StructureTitleBlockSymbol:       "TitleBlockSymbol",
	StructureGeoDefinition:          "GeoDefinition",
}

func (s Structure) String() string {
	if n, ok := structureNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Primitive is the kind byte of a leaf geometry element.
type Primitive byte

const (
	PrimitiveRect        Primitive = 0x01
	PrimitiveLine        Primitive = 0x02
	PrimitiveArc         Primitive = 0x03
	PrimitiveEllipse     Primitive = 0x04
	PrimitivePolygon     Primitive = 0x05
	PrimitivePolyline    Primitive = 0x06
	PrimitiveBezier      Primitive = 0x07
	PrimitiveBitmap      Primitive = 0x08
	PrimitiveCommentText Primitive = 0x09
	PrimitiveSymbolVector Primitive = 0x0A
)

func (p Primitive) valid() bool {
	switch p {
	case PrimitiveRect, PrimitiveLine, PrimitiveArc, PrimitiveEllipse,
		PrimitivePolygon, PrimitivePolyline, PrimitiveBezier, PrimitiveBitmap,
		PrimitiveCommentText, PrimitiveSymbolVector:
		return true
	}
	return false
}

// C2's "total function from a small integer to a named variant" contract
// (§4.2) is enforced for the style-bearing enums below by a paired
// *FromU8/U16/U32 constructor that fails with UnknownEnumValue instead of
// silently accepting an unnamed value; readStyle and the record readers
// that decode these fields call through these rather than a bare cast.
// WireScalar's LineWidth/LineStyle words are kept as raw uint32 values.

func lineStyleFromU8(v uint8, offset uint32) (LineStyle, error) {
	switch LineStyle(v) {
	case LineStyleSolid, LineStyleDash, LineStyleDashDot, LineStyleDot, LineStyleDashDotDot:
		return LineStyle(v), nil
	}
	return 0, &UnknownEnumValue{Kind: "LineStyle", Raw: uint32(v), Offset: offset}
}

func lineWidthFromU8(v uint8, offset uint32) (LineWidth, error) {
	switch LineWidth(v) {
	case LineWidthDefault, LineWidthThin, LineWidthMedium, LineWidthWide:
		return LineWidth(v), nil
	}
	return 0, &UnknownEnumValue{Kind: "LineWidth", Raw: uint32(v), Offset: offset}
}

func fillStyleFromU8(v uint8, offset uint32) (FillStyle, error) {
	switch FillStyle(v) {
	case FillStyleNone, FillStyleSolid, FillStyleHatch:
		return FillStyle(v), nil
	}
	return 0, &UnknownEnumValue{Kind: "FillStyle", Raw: uint32(v), Offset: offset}
}

func hatchStyleFromU8(v uint8, offset uint32) (HatchStyle, error) {
	switch HatchStyle(v) {
	case HatchStyleNotValid, HatchStyleHorizontal, HatchStyleVertical,
		HatchStyleDiagonalLeft, HatchStyleDiagonalRight, HatchStyleCross, HatchStyleDiagonalCross:
		return HatchStyle(v), nil
	}
	return 0, &UnknownEnumValue{Kind: "HatchStyle", Raw: uint32(v), Offset: offset}
}

func colorFromU8(v uint8, offset uint32) (Color, error) {
	switch Color(v) {
	case ColorDefault, ColorBlack, ColorWhite, ColorGrey, ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorCustom:
		return Color(v), nil
	}
	return 0, &UnknownEnumValue{Kind: "Color", Raw: uint32(v), Offset: offset}
}

func portTypeFromU32(v uint32, offset uint32) (PortType, error) {
	switch PortType(v) {
	case PortTypePassive, PortTypeInput, PortTypeOutput, PortTypeBidirectional,
		PortTypePower, PortTypeOpenCollector, PortTypeOpenEmitter, PortTypeNotConnected:
		return PortType(v), nil
	}
	return 0, &UnknownEnumValue{Kind: "PortType", Raw: v, Offset: offset}
}

func pinShapeFromU16(v uint16, offset uint32) (PinShape, error) {
	switch PinShape(v) {
	case PinShapeLine, PinShapeClock, PinShapeDot, PinShapeDotClock, PinShapeShortLine:
		return PinShape(v), nil
	}
	return 0, &UnknownEnumValue{Kind: "PinShape", Raw: uint32(v), Offset: offset}
}

func componentTypeFromU16(v uint16, offset uint32) (ComponentType, error) {
	switch ComponentType(v) {
	case ComponentTypeStandard, ComponentTypeMechanical, ComponentTypeGate, ComponentTypeSpecial:
		return ComponentType(v), nil
	}
	return 0, &UnknownEnumValue{Kind: "ComponentType", Raw: uint32(v), Offset: offset}
}

// GeometryStructure names the container kind holding a list of primitives.
type GeometryStructure byte

const (
	GeometryStructureSymbol   GeometryStructure = 0x01
	GeometryStructurePage     GeometryStructure = 0x02
	GeometryStructurePackage  GeometryStructure = 0x03
)

// LineStyle is the stroke style of a styled primitive.
type LineStyle uint8

const (
	LineStyleSolid LineStyle = iota
	LineStyleDash
	LineStyleDashDot
	LineStyleDot
	LineStyleDashDotDot
)

// LineWidth is the stroke width bucket of a styled primitive.
type LineWidth uint8

const (
	LineWidthDefault LineWidth = iota
	LineWidthThin
	LineWidthMedium
	LineWidthWide
)

// FillStyle is the interior fill of a closed primitive.
type FillStyle uint8

const (
	FillStyleNone FillStyle = iota
	FillStyleSolid
	FillStyleHatch
)

// HatchStyle is the hatch pattern used when FillStyle is FillStyleHatch.
type HatchStyle uint8

const (
	HatchStyleNotValid HatchStyle = iota
	HatchStyleHorizontal
	HatchStyleVertical
	HatchStyleDiagonalLeft
	HatchStyleDiagonalRight
	HatchStyleCross
	HatchStyleDiagonalCross
)

// PortType identifies how a pin or port connects electrically.
type PortType uint32

const (
	PortTypePassive PortType = iota
	PortTypeInput
	PortTypeOutput
	PortTypeBidirectional
	PortTypePower
	PortTypeOpenCollector
	PortTypeOpenEmitter
	PortTypeNotConnected
)

// PinShape identifies the drawn shape of a pin's stub line.
type PinShape uint16

const (
	PinShapeLine PinShape = iota
	PinShapeClock
	PinShapeDot
	PinShapeDotClock
	PinShapeShortLine
)

// Rotation is a quarter-turn count, 0..3.
type Rotation uint8

const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

func (r Rotation) valid() bool { return r <= Rotation270 }

// Color indexes the library's colour table. ColorCustom marks a
// library-local palette index rather than a named colour; any other raw
// value fails with UnknownEnumValue like every other enum in this file.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBlack
	ColorWhite
	ColorGrey
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorCustom
)

// ComponentType names the kind recorded against each entry of a Types
// stream (Graphics/$Types$.bin, Symbols/$Types$.bin).
type ComponentType uint16

const (
	ComponentTypeStandard ComponentType = iota
	ComponentTypeMechanical
	ComponentTypeGate
	ComponentTypeSpecial
)

// FileType classifies the top-level container by its file extension.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeLibrary          // .OLB / .OBK
	FileTypeSchematic        // .DSN / .DBK
)

// FileTypeFromExtension classifies a case-insensitive file extension
// (with or without a leading dot) per §6.
func FileTypeFromExtension(ext string) (FileType, error) {
	for len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	switch upper(ext) {
	case "OLB", "OBK":
		return FileTypeLibrary, nil
	case "DSN", "DBK":
		return FileTypeSchematic, nil
	default:
		return FileTypeUnknown, &UnknownFileKind{Extension: ext}
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// FileFormatVersion selects layout variants inside records; ordered A < B < C.
type FileFormatVersion uint8

const (
	FileFormatVersionA FileFormatVersion = iota
	FileFormatVersionB
	FileFormatVersionC
)

// DefaultFileFormatVersion is used whenever a reader is not given an
// explicit version (§4.7: "Readers receive the version (defaulting to C)").
const DefaultFileFormatVersion = FileFormatVersionC

func (v FileFormatVersion) String() string {
	switch v {
	case FileFormatVersionA:
		return "A"
	case FileFormatVersionB:
		return "B"
	case FileFormatVersionC:
		return "C"
	}
	return "?"
}
