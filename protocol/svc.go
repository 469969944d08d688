// This file contains the server-command ("svc") byte enumeration dispatched
// by the parser state machine (spec.md §4.6), modeled after repcmd's
// Type/TypeByID ID-indexed lookup pattern.

package protocol

// Svc identifies a server->client message command byte.
type Svc struct {
	Enum

	// ID as it appears on the wire.
	ID byte
}

// Command byte IDs, common across all supported protocols unless noted.
const (
	SvcIDBad           byte = 0
	SvcIDNop           byte = 1
	SvcIDGamestate     byte = 2
	SvcIDConfigstring  byte = 3
	SvcIDBaseline      byte = 4
	SvcIDServerCommand byte = 5
	SvcIDDownload      byte = 6
	SvcIDSnapshot      byte = 7
	SvcIDEOF           byte = 8
	SvcIDVoip          byte = 9  // Dm68+
	SvcIDExtension     byte = 10 // Dm90+, precedes a real command byte after EOF
)

// Svcs is an enumeration of the possible server command bytes.
var Svcs = []*Svc{
	{Enum{"bad"}, SvcIDBad},
	{Enum{"nop"}, SvcIDNop},
	{Enum{"gamestate"}, SvcIDGamestate},
	{Enum{"configstring"}, SvcIDConfigstring},
	{Enum{"baseline"}, SvcIDBaseline},
	{Enum{"serverCommand"}, SvcIDServerCommand},
	{Enum{"download"}, SvcIDDownload},
	{Enum{"snapshot"}, SvcIDSnapshot},
	{Enum{"EOF"}, SvcIDEOF},
	{Enum{"voip"}, SvcIDVoip},
	{Enum{"extension"}, SvcIDExtension},
}

var svcIDSvc = map[byte]*Svc{}

func init() {
	for _, s := range Svcs {
		svcIDSvc[s.ID] = s
	}
}

// SvcByID returns the Svc for a given ID. A new Svc with an Unknown name is
// returned if one is not found for the given ID (preserving the unknown ID),
// mirroring repcmd.TypeByID.
func SvcByID(id byte) *Svc {
	if s := svcIDSvc[id]; s != nil {
		return s
	}
	return &Svc{UnknownEnum(id), id}
}
