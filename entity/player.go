// This file implements the delta-field codec for PlayerState (spec.md
// §4.3), grounded on the same reference wire format as delta.go but without
// the per-field zero-value optimization entities get ("Player fields do NOT
// have the zero-value optimization that entities have") and with the
// additional fixed-size arrays section (stats/persistant/ammo/powerups).
package entity

import "github.com/gorep/qdemo/bitstream"

// WritePlayerDelta writes to relative to old using table: one byte lc
// (the number of leading fields that might have changed), a changed bit and
// value per field, then the arrays section.
func WritePlayerDelta(buf *bitstream.Buffer, table *PlayerFieldTable, old, to *PlayerState) {
	mask, lc := playerChangedMask(table, old, to)
	buf.WriteBits(uint32(lc), 8)
	for i := 0; i < lc; i++ {
		if !mask[i] {
			buf.WriteBits(0, 1)
			continue
		}
		buf.WriteBits(1, 1)
		writeFieldValue(buf, table.Fields[i], to.Fields[i], false)
	}

	arraysChanged := old.Stats != to.Stats || old.Persistant != to.Persistant ||
		old.Ammo != to.Ammo || old.Powerups != to.Powerups
	if !arraysChanged {
		buf.WriteBits(0, 1)
		return
	}
	buf.WriteBits(1, 1)

	writeInt16Array(buf, old.Stats[:], to.Stats[:], MaxStats)
	writeInt16Array(buf, old.Persistant[:], to.Persistant[:], MaxPersistant)
	writeInt16Array(buf, old.Ammo[:], to.Ammo[:], MaxWeapons)
	writeInt32Array(buf, old.Powerups[:], to.Powerups[:], MaxPowerups)
}

// ReadPlayerDelta reads a delta of to relative to old using table.
func ReadPlayerDelta(buf *bitstream.Buffer, table *PlayerFieldTable, old, to *PlayerState) {
	*to = *old

	lc := int(buf.ReadBits(8))
	if lc > len(table.Fields) {
		lc = len(table.Fields)
	}
	for i := 0; i < lc; i++ {
		if buf.ReadBits(1) == 0 {
			continue
		}
		// No zero-check bit: mirrors writeFieldValue(..., false) above.
		switch spec := table.Fields[i]; spec.Kind {
		case KindFloat:
			to.Fields[i] = readFloat(buf, false)
		case KindAngle8, KindAngle16:
			to.Fields[i] = readAngle(buf, spec, false)
		default:
			to.Fields[i] = readInt(buf, spec, false)
		}
	}

	if buf.ReadBits(1) == 0 {
		return
	}

	readInt16Array(buf, to.Stats[:], MaxStats)
	readInt16Array(buf, to.Persistant[:], MaxPersistant)
	readInt16Array(buf, to.Ammo[:], MaxWeapons)
	readInt32Array(buf, to.Powerups[:], MaxPowerups)
}

func playerChangedMask(table *PlayerFieldTable, old, to *PlayerState) (mask []bool, lc int) {
	mask = make([]bool, len(table.Fields))
	last := -1
	for i := range table.Fields {
		if to.Fields[i] != old.Fields[i] {
			mask[i] = true
			last = i
		}
	}
	return mask, last + 1
}

func writeInt16Array(buf *bitstream.Buffer, old, to []int16, n int) {
	var bits uint32
	for i := 0; i < n; i++ {
		if to[i] != old[i] {
			bits |= 1 << uint(i)
		}
	}
	if bits == 0 {
		buf.WriteBits(0, 1)
		return
	}
	buf.WriteBits(1, 1)
	buf.WriteBits(bits, n)
	for i := 0; i < n; i++ {
		if bits&(1<<uint(i)) != 0 {
			buf.WriteBits(uint32(uint16(to[i])), 16)
		}
	}
}

func readInt16Array(buf *bitstream.Buffer, dst []int16, n int) {
	if buf.ReadBits(1) == 0 {
		return
	}
	bits := buf.ReadBits(n)
	for i := 0; i < n; i++ {
		if bits&(1<<uint(i)) != 0 {
			dst[i] = int16(buf.ReadBits(16))
		}
	}
}

func writeInt32Array(buf *bitstream.Buffer, old, to []int32, n int) {
	var bits uint32
	for i := 0; i < n; i++ {
		if to[i] != old[i] {
			bits |= 1 << uint(i)
		}
	}
	if bits == 0 {
		buf.WriteBits(0, 1)
		return
	}
	buf.WriteBits(1, 1)
	buf.WriteBits(bits, n)
	for i := 0; i < n; i++ {
		if bits&(1<<uint(i)) != 0 {
			buf.WriteBits(uint32(to[i]), 32)
		}
	}
}

func readInt32Array(buf *bitstream.Buffer, dst []int32, n int) {
	if buf.ReadBits(1) == 0 {
		return
	}
	bits := buf.ReadBits(n)
	for i := 0; i < n; i++ {
		if bits&(1<<uint(i)) != 0 {
			dst[i] = int32(buf.ReadBits(32))
		}
	}
}
