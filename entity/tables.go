package entity

import "github.com/gorep/qdemo/protocol"

// EntityTable returns the EntityState field table for a protocol version.
func EntityTable(v *protocol.Version) *FieldTable {
	switch {
	case v.AtLeast(protocol.Dm90):
		return &FieldTable{Name: "entity-dm90", Fields: entityFieldsDm90}
	case v.AtLeast(protocol.Dm73):
		return &FieldTable{Name: "entity-dm73", Fields: entityFieldsDm73}
	default:
		return &FieldTable{Name: "entity-dm68", Fields: entityFieldsDm68}
	}
}

// PlayerFieldTable is the player-state analog of FieldTable (spec.md §4.3:
// "Each protocol defines an ordered field table for entity and player
// state").
type PlayerFieldTable struct {
	Name   string
	Fields []FieldSpec
}

// PlayerTable returns the PlayerState field table for a protocol version.
func PlayerTable(v *protocol.Version) *PlayerFieldTable {
	switch {
	case v.AtLeast(protocol.Dm90):
		return &PlayerFieldTable{Name: "player-dm90", Fields: playerFieldsDm90}
	case v.AtLeast(protocol.Dm73):
		return &PlayerFieldTable{Name: "player-dm73", Fields: playerFieldsDm73}
	default:
		return &PlayerFieldTable{Name: "player-dm68", Fields: playerFieldsDm68}
	}
}
