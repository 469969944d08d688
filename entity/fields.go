// Package entity implements the delta-field codec (spec.md §4.3, component
// C3): the per-protocol field tables for EntityState and PlayerState, and
// the symmetric delta read/write routines that drive them.
//
// Field tables are data, not code (spec.md §9 design note): adding or
// reordering a field table entry changes what gets (de)serialized without
// touching the read/write routines below.
package entity

// FieldKind describes how a field's raw bits are interpreted.
type FieldKind int

const (
	// KindUint is a plain unsigned integer of Bits width.
	KindUint FieldKind = iota
	// KindInt is a signed, sign-extended integer of Bits width.
	KindInt
	// KindFloat is a packed float: spec.md §4.3's "integer-trunc encoding
	// (13-bit small, 32-bit fallback)".
	KindFloat
	// KindAngle8 is an 8-bit packed angle.
	KindAngle8
	// KindAngle16 is a 16-bit packed angle.
	KindAngle16
)

// FieldSpec describes one field of a delta-codable struct: name (for
// diagnostics), bit width, and interpretation.
type FieldSpec struct {
	Name string
	Bits int
	Kind FieldKind
}

// FieldTable is an ordered field list for one protocol's EntityState or
// PlayerState layout (spec.md §4.3).
type FieldTable struct {
	Name   string
	Fields []FieldSpec
}

// floatIntBits is the width of the "small" truncated-integer float encoding
// (spec.md §4.3).
const floatIntBits = 13

// entityFieldsDm90 is the full entity field table (51 fields), grounded on
// Quake3-family msg.c's entityStateFields[] layout (reference retrieval:
// an embedded demo-asset parser that mirrors this exact table shape).
var entityFieldsDm90 = []FieldSpec{
	{"pos.trTime", 32, KindUint},
	{"pos.trBase0", 0, KindFloat},
	{"pos.trBase1", 0, KindFloat},
	{"pos.trBase2", 0, KindFloat},
	{"pos.trDelta0", 0, KindFloat},
	{"pos.trDelta1", 0, KindFloat},
	{"pos.trDelta2", 0, KindFloat},
	{"apos.trBase1", 16, KindAngle16},
	{"apos.trBase0", 8, KindAngle8},
	{"event", 10, KindUint},
	{"angles2_1", 0, KindFloat},
	{"eType", 8, KindUint},
	{"torsoAnim", 8, KindUint},
	{"eventParm", 8, KindInt},
	{"legsAnim", 8, KindUint},
	{"groundEntityNum", 10, KindUint},
	{"pos.trType", 8, KindUint},
	{"eFlags", 19, KindUint},
	{"otherEntityNum", 10, KindUint},
	{"weapon", 8, KindUint},
	{"clientNum", 8, KindUint},
	{"angles1", 0, KindFloat},
	{"pos.trDuration", 32, KindUint},
	{"apos.trType", 8, KindUint},
	{"origin0", 0, KindFloat},
	{"origin1", 0, KindFloat},
	{"origin2", 0, KindFloat},
	{"solid", 24, KindUint},
	{"powerups", 16, KindUint},
	{"modelindex", 8, KindUint},
	{"otherEntityNum2", 10, KindUint},
	{"loopSound", 8, KindUint},
	{"generic1", 8, KindUint},
	{"origin2_2", 0, KindFloat},
	{"origin2_0", 0, KindFloat},
	{"origin2_1", 0, KindFloat},
	{"modelindex2", 8, KindUint},
	{"angles0", 0, KindFloat},
	{"time", 32, KindUint},
	{"apos.trTime", 32, KindUint},
	{"apos.trDuration", 32, KindUint},
	{"apos.trBase2", 0, KindFloat},
	{"apos.trDelta0", 0, KindFloat},
	{"apos.trDelta1", 0, KindFloat},
	{"apos.trDelta2", 0, KindFloat},
	{"time2", 32, KindUint},
	{"angles2", 0, KindFloat},
	{"angles2_0", 0, KindFloat},
	{"angles2_2", 0, KindFloat},
	{"constantLight", 32, KindUint},
	{"frame", 16, KindUint},
}

// entityFieldsDm68 and entityFieldsDm73 are the older protocols' field
// tables: prefixes of the Dm90 table (older protocols introduced fields
// incrementally; none were ever removed, per the family's wire-compat
// history), sized the way each protocol's own number-of-fields constant
// would have been.
var (
	entityFieldsDm68 = entityFieldsDm90[:32]
	entityFieldsDm73 = entityFieldsDm90[:42]
)

// playerFieldsDm90 is the full player field table (48 fields), same
// grounding as entityFieldsDm90.
var playerFieldsDm90 = []FieldSpec{
	{"commandTime", 32, KindUint},
	{"origin0", 0, KindFloat},
	{"origin1", 0, KindFloat},
	{"bobCycle", 8, KindUint},
	{"velocity0", 0, KindFloat},
	{"velocity1", 0, KindFloat},
	{"viewangles1", 0, KindFloat},
	{"viewangles0", 0, KindFloat},
	{"weaponTime", 16, KindInt},
	{"origin2", 0, KindFloat},
	{"velocity2", 0, KindFloat},
	{"legsTimer", 8, KindUint},
	{"pm_time", 16, KindInt},
	{"eventSequence", 16, KindUint},
	{"torsoAnim", 8, KindUint},
	{"movementDir", 4, KindUint},
	{"events0", 8, KindUint},
	{"legsAnim", 8, KindUint},
	{"events1", 8, KindUint},
	{"pm_flags", 16, KindUint},
	{"groundEntityNum", 10, KindUint},
	{"weaponstate", 4, KindUint},
	{"eFlags", 16, KindUint},
	{"externalEvent", 10, KindUint},
	{"gravity", 16, KindUint},
	{"speed", 16, KindUint},
	{"delta_angles1", 16, KindUint},
	{"externalEventParm", 8, KindUint},
	{"viewheight", 8, KindInt},
	{"damageEvent", 8, KindUint},
	{"damageYaw", 8, KindUint},
	{"damagePitch", 8, KindUint},
	{"damageCount", 8, KindUint},
	{"generic1", 8, KindUint},
	{"pm_type", 8, KindUint},
	{"delta_angles0", 16, KindUint},
	{"delta_angles2", 16, KindUint},
	{"torsoTimer", 12, KindUint},
	{"eventParms0", 8, KindUint},
	{"eventParms1", 8, KindUint},
	{"clientNum", 8, KindUint},
	{"weapon", 5, KindUint},
	{"viewangles2", 0, KindFloat},
	{"grapplePoint0", 0, KindFloat},
	{"grapplePoint1", 0, KindFloat},
	{"grapplePoint2", 0, KindFloat},
	{"jumppad_ent", 10, KindUint},
	{"loopSound", 16, KindUint},
}

var (
	playerFieldsDm68 = playerFieldsDm90[:30]
	playerFieldsDm73 = playerFieldsDm90[:40]
)

// Array section sizes (spec.md §4.10 / domain-stack wiring): player state
// also carries fixed arrays outside the main field loop.
const (
	MaxStats      = 16
	MaxPersistant = 16
	MaxWeapons    = 16
	MaxPowerups   = 16
)
