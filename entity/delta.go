// This file implements the delta-field codec's read/write routines
// (spec.md §4.3) for EntityState. The scheme, grounded on the Quake-family
// wire format (reference: a demo-asset parser's skipEntityDelta):
//
//  1. a "removed" bit: 1 means the entity was removed this snapshot and no
//     further bits follow for it;
//  2. if not removed, a "has delta" bit: 0 means nothing changed (and, for
//     force-encoded baselines, this bit is always 1 — "state present");
//  3. if there is a delta, one byte `lc` = the number of leading fields that
//     might have changed (spec.md: "fields - K" where K is the trailing
//     run of unchanged fields);
//  4. for each of the first lc fields, a changed bit, and the new value if
//     changed.
package entity

import (
	"github.com/gorep/qdemo/bitstream"
	"github.com/gorep/qdemo/protocol"
)

const (
	entityTypeFieldIndex      = 11
	entityEventParmFieldIndex = 13
)

// ETypeField returns the eType field decoded into s.Fields (spec.md §3: "eType
// (type/event discriminator)").
func (s *State) ETypeField() int32 { return s.Fields[entityTypeFieldIndex] }

// EventParmField returns the eventParm field.
func (s *State) EventParmField() int32 { return s.Fields[entityEventParmFieldIndex] }

// changedMask reports, for each field in table, whether to.Fields[i] differs
// from old.Fields[i], and the index one past the last changed field (used to
// compute lc = fields - K).
func changedMask(table *FieldTable, old, to *State) (mask []bool, lc int) {
	mask = make([]bool, len(table.Fields))
	lastChanged := -1
	for i := range table.Fields {
		if to.Fields[i] != old.Fields[i] {
			mask[i] = true
			lastChanged = i
		}
	}
	return mask, lastChanged + 1
}

// WriteDelta writes to relative to old using table. If to.Number equals
// MaxGentities-1 (the removal sentinel) only the removed bit is emitted.
// If nothing changed and force is false, only the not-removed bit and a
// clear has-delta bit are emitted; force=true (baselines, newly-seen
// entities) emits a full field list.
func WriteDelta(buf *bitstream.Buffer, table *FieldTable, old, to *State, force bool) {
	if isRemovalNumber(to.Number) {
		buf.WriteBits(1, 1) // removed
		return
	}
	buf.WriteBits(0, 1) // not removed

	mask, lc := changedMask(table, old, to)
	if !force && lc == 0 {
		buf.WriteBits(0, 1) // no delta
		return
	}
	buf.WriteBits(1, 1) // delta present / state present

	if force {
		lc = len(table.Fields)
	}
	buf.WriteBits(uint32(lc), 8)

	for i := 0; i < lc; i++ {
		changed := force || mask[i]
		if !changed {
			buf.WriteBits(0, 1)
			continue
		}
		buf.WriteBits(1, 1)
		writeFieldValue(buf, table.Fields[i], to.Fields[i], true)
	}
}

// ReadDelta reads a delta of to relative to old using table. number is the
// entity slot number, already decoded by the caller (the packet-entities
// merge loop, spec.md §4.6). addedOrChanged reports whether any field
// differed from old (equivalently: whether to should be treated as new).
func ReadDelta(buf *bitstream.Buffer, table *FieldTable, old, to *State, number int) (addedOrChanged bool) {
	removed := buf.ReadBits(1) != 0
	if removed {
		*to = *old
		to.Number = protocol.MaxGentities - 1
		return true
	}

	hasDelta := buf.ReadBits(1) != 0
	*to = *old
	to.Number = int32(number)
	if !hasDelta {
		return false
	}

	lc := int(buf.ReadBits(8))
	if lc > len(table.Fields) {
		lc = len(table.Fields)
	}
	changed := false
	for i := 0; i < lc; i++ {
		if buf.ReadBits(1) == 0 {
			continue
		}
		changed = true
		to.Fields[i] = readFieldValue(buf, table.Fields[i])
	}
	return changed
}

func isRemovalNumber(number int32) bool {
	return number == protocol.MaxGentities-1
}

// writeFieldValue writes one field's raw value per its Kind.
// withZeroCheck is true for entity fields (which optimize the common
// zero/unset case with a leading bit) and false for player fields.
func writeFieldValue(buf *bitstream.Buffer, spec FieldSpec, raw int32, withZeroCheck bool) {
	switch spec.Kind {
	case KindFloat:
		writeFloat(buf, raw, withZeroCheck)
	case KindAngle8, KindAngle16:
		writeAngle(buf, spec, raw, withZeroCheck)
	default:
		writeInt(buf, spec, raw, withZeroCheck)
	}
}

func readFieldValue(buf *bitstream.Buffer, spec FieldSpec) int32 {
	switch spec.Kind {
	case KindFloat:
		return readFloat(buf, true)
	case KindAngle8, KindAngle16:
		return readAngle(buf, spec, true)
	default:
		return readInt(buf, spec, true)
	}
}

func writeInt(buf *bitstream.Buffer, spec FieldSpec, raw int32, withZeroCheck bool) {
	if withZeroCheck {
		if raw == 0 {
			buf.WriteBits(0, 1)
			return
		}
		buf.WriteBits(1, 1)
	}
	buf.WriteBits(uint32(raw), spec.Bits)
}

func readInt(buf *bitstream.Buffer, spec FieldSpec, withZeroCheck bool) int32 {
	if withZeroCheck {
		if buf.ReadBits(1) == 0 {
			return 0
		}
	}
	if spec.Kind == KindInt {
		return buf.ReadBitsSigned(spec.Bits)
	}
	return int32(buf.ReadBits(spec.Bits))
}

// writeFloat writes a packed float (stored as raw bits in `raw`) using the
// integer-trunc encoding of spec.md §4.3: zero is one bit; an integral value
// that fits in floatIntBits signed bits is the small encoding; anything else
// falls back to the full 32-bit IEEE-754 representation.
func writeFloat(buf *bitstream.Buffer, raw int32, withZeroCheck bool) {
	f := float32FromBits(raw)

	if withZeroCheck {
		if f == 0 {
			buf.WriteBits(0, 1)
			return
		}
		buf.WriteBits(1, 1)
	}

	const lo, hi = -(1 << (floatIntBits - 1)), (1 << (floatIntBits - 1)) - 1
	iv := int32(f)
	if float32(iv) == f && int(iv) >= lo && int(iv) <= hi {
		buf.WriteBits(0, 1)
		buf.WriteBits(uint32(iv), floatIntBits)
		return
	}
	buf.WriteBits(1, 1)
	buf.WriteBits(uint32(raw), 32)
}

// writeAngle packs a float32 angle (stored as IEEE-754 bits in raw) into
// spec.Bits bits (8 or 16), Quake-family ANGLE2SHORT-style: scaled to
// spec.Bits of fixed point over a 0-360 range and wrapped.
func writeAngle(buf *bitstream.Buffer, spec FieldSpec, raw int32, withZeroCheck bool) {
	f := float32FromBits(raw)
	if withZeroCheck {
		if f == 0 {
			buf.WriteBits(0, 1)
			return
		}
		buf.WriteBits(1, 1)
	}
	scale := float32(uint32(1) << uint(spec.Bits))
	packed := uint32(int32(f*scale/360)) & (uint32(1)<<uint(spec.Bits) - 1)
	buf.WriteBits(packed, spec.Bits)
}

func readAngle(buf *bitstream.Buffer, spec FieldSpec, withZeroCheck bool) int32 {
	if withZeroCheck {
		if buf.ReadBits(1) == 0 {
			return 0
		}
	}
	packed := buf.ReadBits(spec.Bits)
	scale := float32(uint32(1) << uint(spec.Bits))
	return float32ToBits(float32(packed) * 360 / scale)
}

func readFloat(buf *bitstream.Buffer, withZeroCheck bool) int32 {
	if withZeroCheck {
		if buf.ReadBits(1) == 0 {
			return 0
		}
	}
	if buf.ReadBits(1) == 0 {
		v := buf.ReadBitsSigned(floatIntBits)
		return float32ToBits(float32(v))
	}
	return int32(buf.ReadBits(32))
}
