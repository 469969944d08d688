package entity

import "math"

// float32FromBits and float32ToBits convert between a field's raw int32
// storage and its float32 value. Float-kind fields store
// math.Float32bits(value) in Fields[i] so the generic [maxFieldSlots]int32
// storage can hold both integer and float fields uniformly.
func float32FromBits(raw int32) float32 { return math.Float32frombits(uint32(raw)) }
func float32ToBits(v float32) int32     { return int32(math.Float32bits(v)) }

// SetFloat stores a float32 value into the field at index i.
func (s *State) SetFloat(i int, v float32) { s.Fields[i] = float32ToBits(v) }

// Float reads the field at index i as a float32.
func (s *State) Float(i int) float32 { return float32FromBits(s.Fields[i]) }

// SetFloat stores a float32 value into the field at index i.
func (p *PlayerState) SetFloat(i int, v float32) { p.Fields[i] = float32ToBits(v) }

// Float reads the field at index i as a float32.
func (p *PlayerState) Float(i int) float32 { return float32FromBits(p.Fields[i]) }
