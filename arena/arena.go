// Package arena implements the four lifetime-scoped bump allocators
// spec.md §4.9 calls for: persistent (demo-long), config-string (cleared
// each gamestate), per-message temp (cleared at the end of each server
// message), and scoped temp (mark/release discipline for short bursts
// within a single function).
//
// Unlike the teacher's Go-GC'd data model, these arenas do not manage raw
// memory (Go has no manual free); instead each Arena owns a byte slab used
// to store copies of variable-length byte data (config string payloads,
// big-string assembly buffers) with the same alloc-until-cleared lifetime
// semantics spec.md describes, so callers that need "this byte slice lives
// until the next gamestate" get that guarantee without per-string heap
// churn or a retained reference to caller-owned memory.
package arena

// Arena is a simple bump allocator over a growable byte slab. Allocation
// failure (spec.md: "Allocation failure is treated as fatal") cannot
// actually occur in a Go implementation (the slab just grows), so Alloc
// never returns an error; the type exists to preserve the lifetime/clearing
// contract, not to bound memory.
type Arena struct {
	slab []byte
}

// New creates an empty arena.
func New() *Arena { return &Arena{} }

// Alloc copies data into the arena and returns a slice aliasing the arena's
// internal slab. The returned slice is valid until the next Clear/Reset.
func (a *Arena) Alloc(data []byte) []byte {
	start := len(a.slab)
	a.slab = append(a.slab, data...)
	return a.slab[start:len(a.slab):len(a.slab)]
}

// AllocString is a convenience wrapper for string payloads (config strings,
// command text).
func (a *Arena) AllocString(s string) []byte { return a.Alloc([]byte(s)) }

// Clear discards all allocations, making the slab's space available again.
// Every previously-returned slice becomes invalid for reuse as of the next
// Alloc call (the backing array gets overwritten).
func (a *Arena) Clear() { a.slab = a.slab[:0] }

// Mark is a snapshot of the arena's current high-water mark, the RAII-style
// mark/release primitive spec.md calls for in the scoped-temp arena.
type Mark int

// Mark returns the current high-water mark.
func (a *Arena) Mark() Mark { return Mark(len(a.slab)) }

// Release discards every allocation made since m was captured.
func (a *Arena) Release(m Mark) { a.slab = a.slab[:int(m)] }

// Set bundles the four arenas a Parser owns (spec.md §3 "Ownership/
// lifecycle" and §4.9).
type Set struct {
	// Persistent lives for the lifetime of the demo context.
	Persistent *Arena

	// ConfigString is cleared on each new gamestate.
	ConfigString *Arena

	// Temp is cleared at the end of each server message.
	Temp *Arena

	// Scoped supports the mark/release discipline for short, nested bursts
	// of allocation within a single function call.
	Scoped *Arena
}

// NewSet creates a fresh, empty arena Set.
func NewSet() *Set {
	return &Set{
		Persistent:   New(),
		ConfigString: New(),
		Temp:         New(),
		Scoped:       New(),
	}
}
