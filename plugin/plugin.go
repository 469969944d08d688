// Package plugin implements the observer pipeline (spec.md §4.7, component
// C9): plug-ins are dispatched gamestate/command/snapshot events and must
// not mutate parser state.
package plugin

import "github.com/gorep/qdemo/entity"

// GamestateEvent is dispatched once per parsed gamestate message.
type GamestateEvent struct {
	GameStateIndex int
	ServerTime     int32
	ClientNum      int32
	ChecksumFeed   int32
}

// CommandEvent is dispatched once per assembled server command (big-string
// pieces never reach plug-ins, spec.md §4.6).
type CommandEvent struct {
	Sequence   int32
	ServerTime int32
	Command    string
}

// EntityDelta is one added/changed entity in a snapshot, with the
// "new event" classification spec.md §4.6 describes.
type EntityDelta struct {
	State      entity.State
	IsNewEvent bool
}

// SnapshotEvent is dispatched once per accepted (non-duplicate) snapshot.
// Added/changed and removed entity lists are scoped to this snapshot only
// (spec.md §4.7).
type SnapshotEvent struct {
	ServerTime   int32
	MessageNum   int32
	PlayerState  entity.PlayerState
	Entities     []EntityDelta
	Removed      []int32
}

// Plugin is the observer interface (spec.md §4.7): five hooks, mirroring
// the five points of the parser's lifecycle a plug-in can observe.
type Plugin interface {
	// StartProcessingDemo is called once before the first message of a demo
	// is parsed.
	StartProcessingDemo(fileName string)

	// FinishProcessingDemo is called once after the last message (or on
	// abort) with whether parsing completed successfully.
	FinishProcessingDemo(fileName string, ok bool)

	// ProcessGamestateMessage is called once per parsed gamestate.
	ProcessGamestateMessage(ev *GamestateEvent)

	// ProcessCommandMessage is called once per assembled server command.
	ProcessCommandMessage(ev *CommandEvent)

	// ProcessSnapshotMessage is called once per accepted snapshot.
	ProcessSnapshotMessage(ev *SnapshotEvent)
}
