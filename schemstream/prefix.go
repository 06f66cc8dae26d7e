// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

// PreambleMagic is the four-byte marker present at every preamble (§4.3,
// §8 "for every preamble, the four magic bytes match exactly").
var PreambleMagic = []byte{0xFF, 0xE4, 0x5C, 0x39}

// NameValuePair is one entry of a short-form prefix's trailing name/value
// index list.
type NameValuePair struct {
	NameIdx  uint32
	ValueIdx uint32
}

// ShortPrefix is `{ tag, length_or_lock, reserved[4], tag_rep, size,
// size × (name_idx, value_idx) }` from §4.3.
type ShortPrefix struct {
	Tag           byte
	LengthOrLock  uint32
	TagRepeat     byte
	Size          int16
	Pairs         []NameValuePair
}

// knownLengthOrLock values; anything else is accepted but logged per §4.3.
const (
	LengthOrLockUnlocked = 0x0B
	LengthOrLockLocked   = 0x1E
)

// readShortPrefix reads a ShortPrefix for the given expected outer tag,
// validating tag == tag_rep per the §3 invariant.
func readShortPrefix(ds *DataStream, expectedTag byte, diag *Diagnostics) (ShortPrefix, error) {
	var p ShortPrefix
	offset := ds.CurrentOffset()
	tag, err := ds.ReadU8()
	if err != nil {
		return p, err
	}
	p.Tag = tag
	lengthOrLock, err := ds.ReadU32()
	if err != nil {
		return p, err
	}
	p.LengthOrLock = lengthOrLock
	if lengthOrLock != LengthOrLockUnlocked && lengthOrLock != LengthOrLockLocked && diag != nil {
		diag.Notef("short prefix length_or_lock has unobserved value 0x%x at offset 0x%x", lengthOrLock, offset)
	}
	if _, err := ds.ReadRaw(4); err != nil { // reserved[4]
		return p, err
	}
	tagRep, err := ds.ReadU8()
	if err != nil {
		return p, err
	}
	p.TagRepeat = tagRep
	if tag != tagRep {
		return p, &TagMismatch{Offset: offset, First: tag, Repeat: tagRep}
	}
	if expectedTag != 0 && tag != expectedTag {
		return p, &UnknownStructure{Tag: tag, Offset: offset}
	}
	size, err := ds.ReadI16()
	if err != nil {
		return p, err
	}
	p.Size = size
	// size < 0 is treated identically to 0: no pairs follow. Observed only
	// for PinIdxMapping, Properties, SymbolDisplayProp (§4.3).
	if size > 0 {
		p.Pairs = make([]NameValuePair, size)
		for i := range p.Pairs {
			nameIdx, err := ds.ReadU32()
			if err != nil {
				return p, err
			}
			valueIdx, err := ds.ReadU32()
			if err != nil {
				return p, err
			}
			p.Pairs[i] = NameValuePair{NameIdx: nameIdx, ValueIdx: valueIdx}
		}
	}
	return p, nil
}

// LongPrefix is the outer form `{ tag, reserved[2], zeros[6], short-form }`
// where short-form.tag == tag.
type LongPrefix struct {
	Tag   byte
	Short ShortPrefix
}

func readLongPrefix(ds *DataStream, diag *Diagnostics) (LongPrefix, error) {
	var p LongPrefix
	offset := ds.CurrentOffset()
	tag, err := ds.ReadU8()
	if err != nil {
		return p, err
	}
	p.Tag = tag
	if _, err := ds.ReadRaw(2); err != nil { // reserved[2]
		return p, err
	}
	if _, err := ds.ReadRaw(6); err != nil { // zeros[6]
		return p, err
	}
	short, err := readShortPrefix(ds, tag, diag)
	if err != nil {
		return p, err
	}
	if short.Tag != tag {
		return p, &TagMismatch{Offset: offset, First: tag, Repeat: short.Tag}
	}
	p.Short = short
	return p, nil
}

// StandardPrefix is `{ tag, byte_offset, zeros[4], short-form }`.
// byte_offset is the distance from the end of the short-form to the start
// of the next standard prefix at this nesting; readWireScalar gates a
// nested Alias block on byte_offset > 0x3D.
type StandardPrefix struct {
	Tag        byte
	ByteOffset uint32
	Short      ShortPrefix
}

func readStandardPrefix(ds *DataStream, expectedTag byte, diag *Diagnostics) (StandardPrefix, error) {
	var p StandardPrefix
	offset := ds.CurrentOffset()
	tag, err := ds.ReadU8()
	if err != nil {
		return p, err
	}
	p.Tag = tag
	byteOffset, err := ds.ReadU32()
	if err != nil {
		return p, err
	}
	p.ByteOffset = byteOffset
	if _, err := ds.ReadRaw(4); err != nil { // zeros[4]
		return p, err
	}
	short, err := readShortPrefix(ds, 0, diag)
	if err != nil {
		return p, err
	}
	if short.Tag != tag {
		return p, &TagMismatch{Offset: offset, First: tag, Repeat: short.Tag}
	}
	if expectedTag != 0 && tag != expectedTag {
		return p, &UnknownStructure{Tag: tag, Offset: offset}
	}
	p.Short = short
	return p, nil
}

// readPreamble reads the four magic bytes followed by an optional u32
// length and that many bytes of opaque lock data, returning the optional
// length (0 when absent).
func readPreamble(ds *DataStream) (uint32, error) {
	if err := ds.AssumeBytes(PreambleMagic); err != nil {
		return 0, err
	}
	n, err := ds.ReadU32()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if _, err := ds.ReadRaw(n); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// TryPreamble attempts to consume a preamble at the current position. A
// magic mismatch is not an error here: the cursor is restored to where it
// started and ok is false, letting the caller re-peek its tag from the
// unconsumed bytes. Any other failure (truncation) is returned directly.
func TryPreamble(ds *DataStream) (ok bool, err error) {
	mark := ds.Mark()
	if _, err := readPreamble(ds); err != nil {
		if _, isMismatch := err.(*MagicMismatch); isMismatch {
			ds.Reset(mark)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// preambleRequired is the §4.3 static table deciding whether
// readConditionalPreamble consumes a preamble for a given Structure.
var preambleRequired = map[Structure]bool{
	StructureProperties:        true,
	StructureSymbolPinScalar:   true,
	StructureT0x1f:             true,
	StructurePinIdxMapping:     true,
	StructureOffPageSymbol:     true,
	StructureSymbolDisplayProp: true,

	StructureGeoDefinition:   false,
	StructureSymbolPinBus:    false,
	StructureGlobalSymbol:    false,
	StructurePortSymbol:      false,
	StructureSymbolVector:    false,
	StructureTitleBlockSymbol: false,
	StructureERCSymbol:       false,
	StructurePinShapeSymbol:  false,
}

// readConditionalPreamble consults preambleRequired for tag and consumes a
// preamble only when required, returning the optional length read (0 when
// no preamble was consumed or when no optional tail was present).
func readConditionalPreamble(ds *DataStream, tag Structure) (uint32, error) {
	if !preambleRequired[tag] {
		return 0, nil
	}
	return readPreamble(ds)
}

// PrimitivePrefix is `{ kind, 0x00, kind_rep }` preceding each geometry
// primitive; both kind bytes must match.
type PrimitivePrefix struct {
	Kind Primitive
}

func readPrimitivePrefix(ds *DataStream) (PrimitivePrefix, error) {
	var p PrimitivePrefix
	offset := ds.CurrentOffset()
	kind, err := ds.ReadU8()
	if err != nil {
		return p, err
	}
	if _, err := ds.ReadU8(); err != nil { // always 0x00
		return p, err
	}
	kindRep, err := ds.ReadU8()
	if err != nil {
		return p, err
	}
	if kind != kindRep {
		return p, &TagMismatch{Offset: offset, First: kind, Repeat: kindRep}
	}
	prim := Primitive(kind)
	if !prim.valid() {
		return p, &UnknownEnumValue{Kind: "Primitive", Raw: uint32(kind), Offset: offset}
	}
	p.Kind = prim
	return p, nil
}
