// Package convert implements the protocol converter (spec.md §4.4,
// component C4): cross-protocol remapping of entity/player state, snapshots
// and config strings, so a parser ingesting one protocol can re-emit
// another.
//
// Grounded on original_source/UDT_DLL/src/parser.cpp's protocol-conversion
// entry points and the teacher's enum-remapping idiom (repcore's ID-indexed
// enum lookups): conversion is table-driven, not per-protocol-pair code.
package convert

import (
	"github.com/gorep/qdemo/arena"
	"github.com/gorep/qdemo/entity"
	"github.com/gorep/qdemo/protocol"
	"github.com/gorep/qdemo/ring"
)

// ConfigString carries a config-string conversion's input and output
// together, matching spec.md §4.4's `out{index,string,length,newString?}`
// shape.
type ConfigString struct {
	Index  int
	String []byte

	// NewString reports whether the output bytes differ from the input, so
	// callers must re-emit (allocate/own) this copy rather than reusing the
	// original (spec.md §4.4).
	NewString bool
}

// Converter converts entity/player/config-string/snapshot data from one
// protocol's wire representation to another's.
type Converter interface {
	// From and To report the converter's source and destination protocols.
	From() *protocol.Version
	To() *protocol.Version

	// StartGameState is called once per gamestate before any
	// ConvertConfigString/ConvertEntityState call for that gamestate, so a
	// stateful converter can reset any per-gamestate remapping table (e.g.
	// player-slot renumbering).
	StartGameState()

	// StartSnapshot is called once per snapshot, before any
	// ConvertEntityState/ConvertSnapshot call for that snapshot.
	StartSnapshot(serverTime int32)

	// ConvertEntityState converts in (decoded in From()'s layout) into out
	// (to be encoded in To()'s layout). out is assumed zeroed/reset by the
	// caller for any field this converter does not touch.
	ConvertEntityState(out, in *entity.State)

	// ConvertPlayerState converts a decoded player state analogously to
	// ConvertEntityState.
	ConvertPlayerState(out, in *entity.PlayerState)

	// ConvertSnapshot converts per-snapshot scalar fields that are not part
	// of the entity/player state (area mask, snap flags).
	ConvertSnapshot(out, in *ring.Snapshot)

	// ConvertConfigString converts one config string's payload, allocating
	// any rewritten bytes from alloc. It sets out.NewString when the output
	// differs from the input (spec.md §4.4).
	ConvertConfigString(out *ConfigString, alloc *arena.Arena, index int, str []byte)
}

// Identity returns the no-op converter used when From()==To(): it copies
// state through unchanged (spec.md §4.4: "Identity converter is used when
// in==out and performs memcpy").
func Identity(version *protocol.Version) Converter {
	return &identityConverter{version: version}
}

type identityConverter struct {
	version *protocol.Version
}

func (c *identityConverter) From() *protocol.Version { return c.version }
func (c *identityConverter) To() *protocol.Version   { return c.version }

func (c *identityConverter) StartGameState()            {}
func (c *identityConverter) StartSnapshot(int32)         {}
func (c *identityConverter) ConvertEntityState(out, in *entity.State) {
	*out = *in
}
func (c *identityConverter) ConvertPlayerState(out, in *entity.PlayerState) {
	*out = *in
}
func (c *identityConverter) ConvertSnapshot(out, in *ring.Snapshot) {
	*out = *in
}
func (c *identityConverter) ConvertConfigString(out *ConfigString, alloc *arena.Arena, index int, str []byte) {
	out.Index = index
	out.String = str
	out.NewString = false
}

var _ Converter = (*identityConverter)(nil)
