// This file implements svc_gamestate handling (spec.md §4.6).
package parser

import (
	"github.com/gorep/qdemo/entity"
	"github.com/gorep/qdemo/msgio"
	"github.com/gorep/qdemo/protocol"
)

// handleGamestate resets per-gamestate state, then reads a full gamestate
// message: the command sequence, every svc_configstring/svc_baseline
// sub-command, and (Dm66+) the client number and checksum feed.
func (p *Parser) handleGamestate(in *msgio.Message) error {
	p.resetForGameState()

	p.inServerCommandSequence = in.ReadLong()

loop:
	for {
		cmd := in.ReadByte()
		switch cmd {
		case protocol.SvcIDConfigstring:
			index := int(in.ReadShort())
			if index < 0 || index >= protocol.MaxConfigstrings {
				return fatalf(ErrBadIndex)
			}
			value := in.ReadString(protocol.BigInfoString)
			p.configStrings[index] = p.arenas.ConfigString.AllocString(value)
			p.configStringsSet[index] = true

		case protocol.SvcIDBaseline:
			index := int(in.ReadBits(protocol.GentityNumBits))
			if index < 0 || index >= protocol.MaxGentities {
				return fatalf(ErrBadIndex)
			}
			var zero entity.State
			zero.Protocol = p.version
			var st entity.State
			in.ReadDeltaEntity(p.entityTable, &zero, &st, index)
			p.baselines[index] = st
			p.baselineSet[index] = true

		case protocol.SvcIDEOF:
			break loop

		case protocol.SvcIDBad:
			if p.version.AtMost(protocol.Dm48) {
				break loop
			}
			return fatalf(ErrDesync)

		default:
			return fatalf(ErrDesync)
		}

		if in.Overflowed() {
			return fatalf(ErrOverread)
		}
	}

	if p.version.AtLeast(protocol.Dm66) {
		p.inClientNum = in.ReadLong()
		p.inChecksumFeed = in.ReadLong()
	} else {
		p.inClientNum = 0
		p.inChecksumFeed = 0
	}

	p.finishGameState()
	return nil
}
