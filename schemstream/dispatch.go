// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

// recordDispatcher is the shape of the central Structure dispatcher
// (parseStructure(tag) in §4.6). Nested readers take it as a parameter
// instead of calling a package-level global so that the same dispatcher
// carries per-stream context (file-format version, text-font table length)
// without global state, per §5's "no shared mutable state spans threads".
type recordDispatcher func(ds *DataStream, fd *FutureData, tag Structure, diag *Diagnostics) (interface{}, error)

// parseContext threads the handful of cross-cutting values every record
// reader may need: the active FileFormatVersion (§4.7) and the length of
// the library's text-font table, used by SymbolDisplayProp's invariant
// check (§3).
type parseContext struct {
	version          FileFormatVersion
	textFontTableLen int
}

// dispatch is the Structure-tag dispatch table (C7's "central dispatcher").
// Every reader in record_*.go is wired here; an unregistered tag fails with
// UnknownStructure, per §4.6.
func (pc *parseContext) dispatch(ds *DataStream, fd *FutureData, tag Structure, diag *Diagnostics) (interface{}, error) {
	offset := ds.CurrentOffset()
	switch tag {
	case StructureProperties:
		return readProperties(ds, diag)
	case StructureProperties2:
		return readProperties2(ds, diag)
	case StructureGeneralProperties:
		return readGeneralProperties(ds, diag)
	case StructureSymbolPinScalar:
		return readSymbolPinScalar(ds, diag)
	case StructureSymbolPinBus:
		return readSymbolPinBus(ds, diag)
	case StructurePinIdxMapping:
		return readPinIdxMapping(ds, diag)
	case StructureSymbolDisplayProp:
		return readSymbolDisplayProp(ds, pc.textFontTableLen, diag)
	case StructureGlobalSymbol:
		return readGlobalSymbol(ds, pc.version, diag)
	case StructurePortSymbol:
		return readPortSymbol(ds, pc.version, diag)
	case StructureOffPageSymbol:
		return readOffPageSymbol(ds, pc.version, diag)
	case StructureERCSymbol:
		return readERCSymbol(ds, pc.version, diag)
	case StructurePinShapeSymbol:
		return readPinShapeSymbol(ds, pc.version, diag)
	case StructureWireScalar:
		return readWireScalar(ds, fd, diag, pc.dispatch)
	case StructurePartInst:
		return readPartInst(ds, diag)
	case StructureAlias:
		return readAlias(ds, diag)
	case StructureGraphicBoxInst:
		return readGraphicBoxInst(ds, diag)
	case StructureGraphicCommentTextInst:
		return readGraphicCommentTextInst(ds, diag)
	case StructureBusEntry:
		return readBusEntry(ds, diag)
	case StructureT0x1f:
		return readT0x1f(ds, diag)
	case StructureT0x10:
		return readT0x10(ds, fd, diag)
	case StructureSthInPages0:
		return readSthInPages0(ds, fd, pc.version, diag)
	case StructureSymbolVector:
		return readSymbolVector(ds, pc.version)
	case StructureTitleBlockSymbol:
		return readTitleBlockSymbol(ds, pc.version, diag)
	case StructureGeoDefinition:
		return readGeometrySpecification(ds, pc.version)
	default:
		return nil, &UnknownStructure{Tag: byte(tag), Offset: offset}
	}
}

// TypesEntry is one entry of a name + ComponentType list, consumed from a "Types" stream
// (Graphics/$Types$.bin, Symbols/$Types$.bin). A zero-length stream yields
// an empty list without error (§8 boundary behaviour).
type TypesEntry struct {
	Name string
	Kind ComponentType
}

func parseTypesStream(ds *DataStream) ([]TypesEntry, error) {
	if ds.IsEOF() {
		return nil, nil
	}
	count, err := ds.ReadU16()
	if err != nil {
		return nil, err
	}
	entries := make([]TypesEntry, 0, count)
	for i := uint16(0); i < count; i++ {
		name, err := ds.ReadStringZeroTerminated()
		if err != nil {
			return entries, err
		}
		kindOffset := ds.CurrentOffset()
		kind, err := ds.ReadU16()
		if err != nil {
			return entries, err
		}
		typed, err := componentTypeFromU16(kind, kindOffset)
		if err != nil {
			return entries, err
		}
		entries = append(entries, TypesEntry{Name: name, Kind: typed})
	}
	if !ds.IsEOF() {
		return entries, &InvariantViolated{What: "Types stream did not reach EOF", Offset: ds.CurrentOffset()}
	}
	return entries, nil
}

// DirectoryEntry is one row of a `*.Directory.bin` stream: a sibling
// folder's entry name and its per-entry format-version marker (§3, observed
// 445..472).
type DirectoryEntry struct {
	Name    string
	Version uint16
}

func parseDirectoryStream(ds *DataStream) ([]DirectoryEntry, error) {
	var entries []DirectoryEntry
	for !ds.IsEOF() {
		name, err := ds.ReadStringZeroTerminated()
		if err != nil {
			return entries, err
		}
		version, err := ds.ReadU16()
		if err != nil {
			return entries, err
		}
		entries = append(entries, DirectoryEntry{Name: name, Version: version})
	}
	return entries, nil
}

// Symbol is the materialised object tree for one Symbols/<name> stream:
// the symbol's Properties header, its declared pins, and its drawn
// geometry artwork.
type Symbol struct {
	Properties Properties
	ScalarPins []SymbolPinScalar
	BusPins    []SymbolPinBus
	Display    []SymbolDisplayProp
	Geometry   GeometrySpecification
}

func parseSymbolStream(ds *DataStream, pc *parseContext, diag *Diagnostics) (Symbol, error) {
	fd := NewFutureData(ds)
	var sym Symbol
	props, err := readProperties(ds, diag)
	if err != nil {
		return sym, err
	}
	sym.Properties = props
	for !ds.IsEOF() {
		tagOffset := ds.CurrentOffset()
		tag, err := ds.ReadU8()
		if err != nil {
			return sym, err
		}
		ds.Putback()
		rec, err := pc.dispatch(ds, fd, Structure(tag), diag)
		if err != nil {
			return sym, err
		}
		switch v := rec.(type) {
		case SymbolPinScalar:
			sym.ScalarPins = append(sym.ScalarPins, v)
		case SymbolPinBus:
			sym.BusPins = append(sym.BusPins, v)
		case SymbolDisplayProp:
			sym.Display = append(sym.Display, v)
		case GeometrySpecification:
			sym.Geometry = v
		default:
			_ = tagOffset
		}
	}
	return sym, nil
}

// Package groups the symbols and pin-index mapping of one Packages/<name>
// stream.
type Package struct {
	Properties2 Properties2
	PinMapping  []PinIdxMapping
	Symbols     []Symbol
}

func parsePackageStream(ds *DataStream, pc *parseContext, diag *Diagnostics) (Package, error) {
	var pkg Package
	props, err := readProperties2(ds, diag)
	if err != nil {
		return pkg, err
	}
	pkg.Properties2 = props
	for !ds.IsEOF() {
		tag, err := ds.ReadU8()
		if err != nil {
			return pkg, err
		}
		ds.Putback()
		if Structure(tag) == StructurePinIdxMapping {
			m, err := readPinIdxMapping(ds, diag)
			if err != nil {
				return pkg, err
			}
			pkg.PinMapping = append(pkg.PinMapping, m)
			continue
		}
		break
	}
	return pkg, nil
}

// Hierarchy is the opaque result of a Hierarchy.bin stream: a forest of
// sheet references rooted at the schematic. The source format for this
// stream is not further decomposed by this spec's component design beyond
// the shared record/geometry primitives already exposed.
type Hierarchy struct {
	Sheets []string
}

func parseHierarchyStream(ds *DataStream) (Hierarchy, error) {
	var h Hierarchy
	for !ds.IsEOF() {
		name, err := ds.ReadStringZeroTerminated()
		if err != nil {
			return h, err
		}
		h.Sheets = append(h.Sheets, name)
	}
	return h, nil
}

// Schematic groups a view's top-level record sequence (parts placed,
// wires drawn, graphics and net aliases recorded directly against the
// view rather than a single page) plus the drawn Pages and Hierarchy tree
// populated afterward by walkViews from the sibling Pages/ and
// Hierarchy/ streams.
type Schematic struct {
	Parts      []PartInst
	Wires      []WireScalar
	BusEntries []BusEntry
	Boxes      []GraphicBoxInst
	Comments   []GraphicCommentTextInst
	Aliases    []Alias

	Pages     map[string]Page
	Hierarchy *Hierarchy
}

// parseSchematicStream drives Schematic.bin's top-of-stream record loop
// (C7 "Schematic" dispatcher entry). Schematic.bin carries the same
// tagged-record sequence as every other record-bearing stream; this
// reader is the generic record loop shared with parseSymbolStream,
// specialised to the record kinds a view-level stream actually carries
// (placed parts, drawn wires, bus entries, free-standing graphics, and
// net aliases) rather than nested geometry or pin declarations.
func parseSchematicStream(ds *DataStream, pc *parseContext, diag *Diagnostics) (Schematic, error) {
	s := Schematic{Pages: map[string]Page{}}
	fd := NewFutureData(ds)
	for !ds.IsEOF() {
		tag, err := ds.ReadU8()
		if err != nil {
			return s, err
		}
		ds.Putback()
		rec, err := pc.dispatch(ds, fd, Structure(tag), diag)
		if err != nil {
			return s, err
		}
		switch v := rec.(type) {
		case PartInst:
			s.Parts = append(s.Parts, v)
		case WireScalar:
			s.Wires = append(s.Wires, v)
		case BusEntry:
			s.BusEntries = append(s.BusEntries, v)
		case GraphicBoxInst:
			s.Boxes = append(s.Boxes, v)
		case GraphicCommentTextInst:
			s.Comments = append(s.Comments, v)
		case Alias:
			s.Aliases = append(s.Aliases, v)
		}
	}
	return s, nil
}

func parsePageStream(ds *DataStream, pc *parseContext, diag *Diagnostics) (Page, error) {
	fd := NewFutureData(ds)
	return readPage(ds, fd, pc.version, diag, pc.dispatch)
}

// AdminData is the administrative metadata stream; its envelope may carry
// an optional PKCS7-signed lock block, decoded by decodeAdminEnvelope when
// present (SPEC_FULL.md domain-stack wiring for go.mozilla.org/pkcs7).
type AdminData struct {
	Raw      []byte
	Envelope *AdminEnvelope
}

func parseAdminDataStream(ds *DataStream) (AdminData, error) {
	raw, err := ds.ReadRaw(ds.Len() - ds.CurrentOffset())
	if err != nil {
		return AdminData{}, err
	}
	env, _ := decodeAdminEnvelope(raw)
	return AdminData{Raw: raw, Envelope: env}, nil
}

// NetBundleMapData is the opaque net-bundle mapping stream.
type NetBundleMapData struct {
	Raw []byte
}

func parseNetBundleMapDataStream(ds *DataStream) (NetBundleMapData, error) {
	raw, err := ds.ReadRaw(ds.Len() - ds.CurrentOffset())
	return NetBundleMapData{Raw: raw}, err
}

// HSObjects is an opaque auxiliary stream seen in some library versions.
type HSObjects struct {
	Raw []byte
}

func parseHSObjectsStream(ds *DataStream) (HSObjects, error) {
	raw, err := ds.ReadRaw(ds.Len() - ds.CurrentOffset())
	return HSObjects{Raw: raw}, err
}

// Cache is the opaque Cache.bin stream carried by every library root; its
// contents accelerate the originating tool's own UI and are not further
// decomposed by this parser.
type Cache struct {
	Raw []byte
}

func parseCacheStream(ds *DataStream) (Cache, error) {
	raw, err := ds.ReadRaw(ds.Len() - ds.CurrentOffset())
	return Cache{Raw: raw}, err
}

// SymbolsLibrary groups every parsed Symbols/<name> stream under the
// library root, alongside the shared Symbols/$Types$.bin entries.
type SymbolsLibrary struct {
	Types   []TypesEntry
	Symbols map[string]Symbol
}

// ViewsDirectory lists the named schematic variants contained in a
// library's Views/ folder (§6, GLOSSARY "View").
type ViewsDirectory struct {
	Entries []DirectoryEntry
}

func parseViewsDirectoryStream(ds *DataStream) (ViewsDirectory, error) {
	entries, err := parseDirectoryStream(ds)
	return ViewsDirectory{Entries: entries}, err
}

// DsnStream is the top-of-stream entry point for a .DSN/.DBK container's
// Schematic.bin, delegating to parseSchematicStream once the container's
// library-wide context (version, text-font table) is known.
func parseDsnStream(ds *DataStream, pc *parseContext, diag *Diagnostics) (Schematic, error) {
	return parseSchematicStream(ds, pc, diag)
}
