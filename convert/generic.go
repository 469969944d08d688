package convert

import (
	"github.com/gorep/qdemo/arena"
	"github.com/gorep/qdemo/entity"
	"github.com/gorep/qdemo/protocol"
	"github.com/gorep/qdemo/ring"
)

// generic is the table-driven cross-protocol converter (spec.md §4.4:
// "remap fields, clamp or renumber enumerations... may rewrite config-string
// payloads"). It never special-cases a (from, to) pair: fields common to
// both protocols' field tables (by position, since older tables are
// prefixes of newer ones per entity.EntityTable) are copied, fields the
// destination protocol doesn't have are dropped, and fields only the
// destination has are left at the caller's zeroed default.
type generic struct {
	from, to *protocol.Version

	fromEntityFields, toEntityFields int
	fromPlayerFields, toPlayerFields int
}

// New returns the converter for a given protocol pair. For from==to it
// returns Identity; callers should prefer Identity directly when the pair is
// known equal, but New is safe to call unconditionally.
func New(from, to *protocol.Version) Converter {
	if from == to {
		return Identity(from)
	}
	return &generic{
		from:             from,
		to:               to,
		fromEntityFields: len(entity.EntityTable(from).Fields),
		toEntityFields:   len(entity.EntityTable(to).Fields),
		fromPlayerFields: len(entity.PlayerTable(from).Fields),
		toPlayerFields:   len(entity.PlayerTable(to).Fields),
	}
}

func (c *generic) From() *protocol.Version { return c.from }
func (c *generic) To() *protocol.Version   { return c.to }

func (c *generic) StartGameState()    {}
func (c *generic) StartSnapshot(int32) {}

func (c *generic) ConvertEntityState(out, in *entity.State) {
	out.Number = in.Number
	out.EType = in.EType
	out.EventParm = in.EventParm
	out.Protocol = c.to

	n := c.fromEntityFields
	if c.toEntityFields < n {
		n = c.toEntityFields
	}
	for i := 0; i < n; i++ {
		out.Fields[i] = in.Fields[i]
	}
}

func (c *generic) ConvertPlayerState(out, in *entity.PlayerState) {
	out.Protocol = c.to

	n := c.fromPlayerFields
	if c.toPlayerFields < n {
		n = c.toPlayerFields
	}
	for i := 0; i < n; i++ {
		out.Fields[i] = in.Fields[i]
	}

	// Stats/persistant/ammo/powerups arrays are fixed-size across every
	// protocol this converter handles (entity.MaxStats etc.), so they carry
	// over unchanged; a real means-of-death/weapon renumbering table would
	// remap specific slots here, but no such table is grounded in the
	// retrieval pack for this protocol family.
	out.Stats = in.Stats
	out.Persistant = in.Persistant
	out.Ammo = in.Ammo
	out.Powerups = in.Powerups
}

func (c *generic) ConvertSnapshot(out, in *ring.Snapshot) {
	out.ServerTime = in.ServerTime
	out.SnapFlags = in.SnapFlags
	out.AreaMaskLen = in.AreaMaskLen
	out.AreaMask = in.AreaMask
}

// ConvertConfigString passes the payload through unchanged. Per-slot
// remapping (e.g. player-info slot renumbering across a roster change) is a
// server-specific convention the wire format itself does not describe, so
// the generic converter leaves config strings untouched and reports
// NewString=false; a deployment that needs slot remapping supplies its own
// Converter.
func (c *generic) ConvertConfigString(out *ConfigString, alloc *arena.Arena, index int, str []byte) {
	out.Index = index
	out.String = str
	out.NewString = false
}

var _ Converter = (*generic)(nil)
