package ring

import "github.com/gorep/qdemo/entity"

// EntitySlot is one slot of the entity parse ring: the decoded state plus
// a valid flag.
type EntitySlot struct {
	State entity.State
	Valid bool
}

// EntityRing is the fixed-size circular store of parsed entity states,
// indexed modulo MaxParseEntities (spec.md §4.6, component C6).
type EntityRing struct {
	slots []EntitySlot
	mask  int32
	// cursor is the write cursor (spec.md §3: "inParseEntitiesNum"); it
	// advances only for non-removal deltas.
	cursor int32
}

// NewEntityRing creates a ring of the given power-of-two size.
func NewEntityRing(size int) *EntityRing {
	if size <= 0 || size&(size-1) != 0 {
		panic("ring: NewEntityRing: size must be a power of two")
	}
	return &EntityRing{slots: make([]EntitySlot, size), mask: int32(size - 1)}
}

// Reset clears every slot and rewinds the cursor.
func (r *EntityRing) Reset() {
	for i := range r.slots {
		r.slots[i] = EntitySlot{}
	}
	r.cursor = 0
}

// Cursor returns the current write cursor (spec.md: "inParseEntitiesNum").
func (r *EntityRing) Cursor() int32 { return r.cursor }

// SetCursor forcibly repositions the write cursor (used when restoring state
// for a cut, or seeking to a snapshot's recorded base cursor).
func (r *EntityRing) SetCursor(c int32) { r.cursor = c }

// At returns the slot at the given ring index (already masked by the
// caller, or a raw index to be masked here).
func (r *EntityRing) At(index int32) *EntitySlot {
	return &r.slots[index&r.mask]
}

// StoreAt writes state into the slot for the given index, without moving
// the write cursor.
func (r *EntityRing) StoreAt(index int32, state entity.State) {
	r.slots[index&r.mask] = EntitySlot{State: state, Valid: true}
}

// Advance writes state at the current cursor and advances the cursor by one,
// returning the index the state was written to. Used for entities that are
// not removals (spec.md §4.5: "the write cursor increments only for
// entities that are not removals").
func (r *EntityRing) Advance(state entity.State) int32 {
	idx := r.cursor
	r.slots[idx&r.mask] = EntitySlot{State: state, Valid: true}
	r.cursor++
	return idx
}

// Size returns the ring's number of slots.
func (r *EntityRing) Size() int32 { return int32(len(r.slots)) }
