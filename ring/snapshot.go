// Package ring implements the two fixed-size circular stores spec.md calls
// for: the snapshot ring (component C5) and the entity parse ring
// (component C6). Both are re-architected per spec.md §9's design note:
// "arrays with explicit messageNum stored in each slot and a valid bit;
// never rely on pointer identity into the ring across messages."
package ring

import "github.com/gorep/qdemo/entity"

// Snapshot mirrors spec.md §3's Snapshot type.
type Snapshot struct {
	ServerTime        int32
	MessageNum        int32
	DeltaNum          int32
	SnapFlags         int32
	AreaMask          [32]byte
	AreaMaskLen       int
	Valid             bool
	NumEntities       int
	ParseEntitiesNum  int32
	ServerCommandNum  int32
	PlayerState       entity.PlayerState
}

// SnapshotRing is the fixed-size circular store of past snapshots keyed by
// message sequence modulo PacketBackup (spec.md §4.5).
type SnapshotRing struct {
	slots []Snapshot
	mask  int32
}

// NewSnapshotRing creates a ring of the given power-of-two size.
func NewSnapshotRing(size int) *SnapshotRing {
	if size <= 0 || size&(size-1) != 0 {
		panic("ring: NewSnapshotRing: size must be a power of two")
	}
	return &SnapshotRing{slots: make([]Snapshot, size), mask: int32(size - 1)}
}

// Reset clears every slot, used when a new gamestate begins (spec.md §4.6
// "reset for gamestate").
func (r *SnapshotRing) Reset() {
	for i := range r.slots {
		r.slots[i] = Snapshot{}
	}
}

// Slot returns the slot for messageNum (messageNum & (size-1)).
func (r *SnapshotRing) Slot(messageNum int32) *Snapshot {
	return &r.slots[messageNum&r.mask]
}

// Size returns the ring's number of slots.
func (r *SnapshotRing) Size() int32 { return int32(len(r.slots)) }

// InvalidateRange invalidates every slot from prevMessageNum+1 through
// newMessageNum-1 inclusive, capped at size-1 entries (spec.md §4.5:
// "the core invalidates all slots strictly between prev+1 and new-1 (capped
// at PACKET_BACKUP-1 entries) by clearing their valid flag").
func (r *SnapshotRing) InvalidateRange(prevMessageNum, newMessageNum int32) {
	gap := newMessageNum - prevMessageNum - 1
	size := int32(len(r.slots))
	if gap > size-1 {
		gap = size - 1
	}
	for i := int32(0); i < gap; i++ {
		mn := prevMessageNum + 1 + i
		r.slots[mn&r.mask].Valid = false
	}
}
