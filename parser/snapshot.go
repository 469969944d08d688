// This file implements svc_snapshot handling (spec.md §4.6): snapshot
// header parsing, delta-base validity, the interleaved-merge packet-entities
// algorithm, and the duplicate-messageNum plug-in dispatch rule.
package parser

import (
	"github.com/gorep/qdemo/entity"
	"github.com/gorep/qdemo/msgio"
	"github.com/gorep/qdemo/plugin"
	"github.com/gorep/qdemo/protocol"
	"github.com/gorep/qdemo/ring"
)

const removalSentinel = protocol.MaxGentities - 1

// handleSnapshot reads one svc_snapshot sub-message in full (spec.md §4.6).
// Errors of kind errKindWarning mean the snapshot was read (so the stream
// stays synchronized) but could not be reconstructed; the caller must not
// treat that as fatal.
func (p *Parser) handleSnapshot(in *msgio.Message) error {
	if p.version == protocol.Dm3 {
		in.ReadLong() // client command sequence, unused by the core
	}

	// messageNum is this parser's own monotonic per-snapshot counter, used
	// to index the snapshot ring (spec.md §4.5); the wire does not carry an
	// explicit messageNum field separate from delivery order.
	messageNum := p.inServerMessageSequence
	p.inServerMessageSequence++

	var snap ring.Snapshot
	snap.MessageNum = messageNum
	snap.ServerTime = in.ReadLong()
	p.inServerTime = snap.ServerTime

	deltaByte := in.ReadByte()

	areaLen := int(in.ReadByte())
	snap.SnapFlags = int32(in.ReadLong())
	if areaLen > protocol.MaxAreaBytes {
		return fatalf(ErrBadIndex)
	}
	snap.AreaMaskLen = areaLen
	copy(snap.AreaMask[:], in.ReadData(areaLen))

	valid := true
	var old *ring.Snapshot
	if deltaByte == 0 {
		snap.DeltaNum = -1
	} else {
		baseNum := messageNum - int32(deltaByte)
		snap.DeltaNum = baseNum
		slot := p.snapshots.Slot(baseNum)
		if !slot.Valid || slot.MessageNum != baseNum {
			valid = false
		} else {
			old = slot
		}
	}

	var oldPlayer entity.PlayerState
	oldPlayer.Protocol = p.version
	if old != nil {
		oldPlayer = old.PlayerState
	}
	in.ReadDeltaPlayer(p.playerTable, &oldPlayer, &snap.PlayerState)
	snap.PlayerState.Protocol = p.version

	snap.ParseEntitiesNum = p.entities.Cursor()
	added, removed, err := p.readPacketEntities(in, old, &snap)
	if err != nil {
		return err
	}

	if valid && old != nil {
		if snap.ParseEntitiesNum-old.ParseEntitiesNum > protocol.MaxParseEntities-128 {
			valid = false
		}
	}
	snap.Valid = valid

	if !valid {
		p.emit(LevelWarning, ErrMissingDeltaBase.Error())
		return warningf(ErrMissingDeltaBase)
	}

	p.snapshots.InvalidateRange(p.lastStoredMessageNum, messageNum)
	*p.snapshots.Slot(messageNum) = snap
	p.lastStoredMessageNum = messageNum

	duplicate := messageNum == p.lastSnapshotNum
	p.lastSnapshotNum = messageNum
	if duplicate {
		return silentf(ErrDuplicateSnapshot)
	}

	p.pipeline.Snapshot(&plugin.SnapshotEvent{
		ServerTime:  snap.ServerTime,
		MessageNum:  snap.MessageNum,
		PlayerState: snap.PlayerState,
		Entities:    added,
		Removed:     removed,
	})
	return nil
}

// readPacketEntities implements the interleaved-merge decode of spec.md
// §4.6 "Packet entities".
func (p *Parser) readPacketEntities(in *msgio.Message, old *ring.Snapshot, snap *ring.Snapshot) (added []plugin.EntityDelta, removed []int32, err error) {
	oldNumEntities := 0
	var oldBase int32
	if old != nil {
		oldNumEntities = old.NumEntities
		oldBase = old.ParseEntitiesNum
	}

	oldIndex := 0
	nextOldNum := func() int32 {
		if oldIndex >= oldNumEntities {
			return removalSentinel
		}
		return p.entities.At(oldBase + int32(oldIndex)).State.Number
	}

	var zeroBaseline entity.State
	zeroBaseline.Protocol = p.version

	carry := func() {
		slot := p.entities.At(oldBase + int32(oldIndex))
		p.entities.Advance(slot.State)
		snap.NumEntities++
		oldIndex++
	}

	oldnum := nextOldNum()
	for {
		newnum := int(in.ReadBits(protocol.GentityNumBits))
		if in.Overflowed() {
			return nil, nil, fatalf(ErrOverread)
		}
		if newnum == removalSentinel {
			break
		}

		for oldnum != removalSentinel && int(oldnum) < newnum {
			carry()
			oldnum = nextOldNum()
		}

		var base *entity.State
		fromOld := false
		if int(oldnum) == newnum {
			base = &p.entities.At(oldBase + int32(oldIndex)).State
			fromOld = true
		} else {
			if p.baselineSet[newnum] {
				base = &p.baselines[newnum]
			} else {
				base = &zeroBaseline
			}
		}

		var st entity.State
		changed := in.ReadDeltaEntity(p.entityTable, base, &st, newnum)
		if fromOld {
			oldIndex++
			oldnum = nextOldNum()
		}

		if st.Number == removalSentinel {
			removed = append(removed, int32(newnum))
			continue
		}

		p.entities.Advance(st)
		snap.NumEntities++

		isNewEvent := false
		if st.ETypeField() >= protocol.ETEvents {
			last := p.entityEventTimes[newnum]
			if p.inServerTime > last+protocol.EventValidMsec {
				isNewEvent = true
			}
			p.entityEventTimes[newnum] = p.inServerTime
		}
		if changed || isNewEvent {
			added = append(added, plugin.EntityDelta{State: st, IsNewEvent: isNewEvent})
		}
	}

	for oldnum != removalSentinel {
		carry()
		oldnum = nextOldNum()
	}

	return added, removed, nil
}
