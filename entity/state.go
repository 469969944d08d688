package entity

import "github.com/gorep/qdemo/protocol"

// maxFieldSlots sizes the generic field storage to the largest protocol's
// layout (spec.md §3: "The union of all three layouts is sized by the
// largest; ring slots are sized for the largest so any protocol fits").
const maxFieldSlots = 51

// State is the tagged-variant EntityState representation (spec.md §9 design
// note, adopted): one concrete shape sized for the largest protocol layout,
// plus a protocol tag, rather than three distinct Go struct types. Field
// access for delta coding goes through Fields, indexed the same way as the
// FieldTable for State.Protocol.
type State struct {
	// Number is the entity slot, 0..MaxGentities-1; MaxGentities-1 is the
	// sentinel "no more entities" / removal marker.
	Number int32

	// EType is the type/event discriminator.
	EType int32

	// EventParm is the event parameter.
	EventParm int32

	// Protocol is the layout this state's Fields were decoded/encoded for.
	Protocol *protocol.Version

	// Fields holds every other field's raw bit pattern (floats stored as
	// math.Float32bits), indexed by the owning FieldTable's field order.
	Fields [maxFieldSlots]int32
}

// Reset zeroes the state in place (used to rebuild a "zero baseline").
func (s *State) Reset(version *protocol.Version) {
	*s = State{Protocol: version}
}

// Clone returns a deep (value) copy of s.
func (s *State) Clone() State { return *s }

// PlayerState is the tagged-variant PlayerState representation, analogous to
// State.
type PlayerState struct {
	Protocol *protocol.Version

	Fields [maxFieldSlots]int32

	// Stats, Persistant, Ammo, Powerups are the fixed arrays carried outside
	// the main field loop (spec.md §4.10 domain-stack wiring, grounded on
	// the reference demo-asset parser's arrays section).
	Stats      [MaxStats]int16
	Persistant [MaxPersistant]int16
	Ammo       [MaxWeapons]int16
	Powerups   [MaxPowerups]int32
}

// Reset zeroes the player state in place.
func (p *PlayerState) Reset(version *protocol.Version) {
	*p = PlayerState{Protocol: version}
}

// Clone returns a deep (value) copy of p.
func (p *PlayerState) Clone() PlayerState { return *p }
