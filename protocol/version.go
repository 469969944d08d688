// This file contains the protocol version enumeration and the constants that
// are sized per protocol family.

package protocol

import "fmt"

// Version identifies one of the wire formats a demo stream can be encoded in.
type Version struct {
	// Name of the protocol, as it appears in diagnostics.
	Name string

	// id is the internal ordinal used for fast array-indexed lookups.
	id int
}

// String returns the protocol's name.
func (v *Version) String() string {
	if v == nil {
		return "Unknown"
	}
	return v.Name
}

// The known protocol versions, oldest first. Order matters: comparisons like
// "protocols <= Dm48" in spec.md are expressed as v.id <= Dm48.id.
var (
	Dm3  = &Version{Name: "Dm3", id: 0}
	Dm48 = &Version{Name: "Dm48", id: 1}
	Dm66 = &Version{Name: "Dm66", id: 2}
	Dm68 = &Version{Name: "Dm68", id: 3}
	Dm73 = &Version{Name: "Dm73", id: 4}
	Dm90 = &Version{Name: "Dm90", id: 5}
)

// Versions is an enumeration of all known protocol versions, oldest first.
var Versions = []*Version{Dm3, Dm48, Dm66, Dm68, Dm73, Dm90}

// AtMost reports whether v is the same as or older than other.
func (v *Version) AtMost(other *Version) bool {
	return v.id <= other.id
}

// AtLeast reports whether v is the same as or newer than other.
func (v *Version) AtLeast(other *Version) bool {
	return v.id >= other.id
}

// Before reports whether v is strictly older than other.
func (v *Version) Before(other *Version) bool {
	return v.id < other.id
}

// HuffmanCoded reports whether messages of this protocol are Huffman-coded
// (Dm66 and later) rather than byte-aligned (Dm3, Dm48).
func (v *Version) HuffmanCoded() bool {
	return v.AtLeast(Dm66)
}

// extVersion maps a demo file extension (without the leading dot) to the
// protocol version it identifies. Grounded on repdecoder.detectRepFormat's
// header-sniffing role, generalized to an explicit lookup table per spec.md §6
// ("Protocol-to-extension mapping... provided by the extension table").
var extVersion = map[string]*Version{
	"dm_3":  Dm3,
	"dm3":   Dm3,
	"dm_48": Dm48,
	"dm48":  Dm48,
	"dm_66": Dm66,
	"dm66":  Dm66,
	"dm_68": Dm68,
	"dm68":  Dm68,
	"dm_73": Dm73,
	"dm73":  Dm73,
	"dm_90": Dm90,
	"dm90":  Dm90,
}

// ExtensionVersion returns the protocol identified by a file extension
// (with or without a leading dot), and whether the extension was recognized.
func ExtensionVersion(ext string) (*Version, bool) {
	for len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	v, ok := extVersion[ext]
	return v, ok
}

// Per-protocol sizing and timing constants (spec.md §3/§4/§8).
const (
	// MaxGentities is the number of entity slots; MaxGentities-1 is the
	// removal/terminator sentinel.
	MaxGentities = 1024

	// GentityNumBits is the number of bits used to encode an entity slot number.
	GentityNumBits = 10

	// PacketBackup is the size of the snapshot ring; must be a power of two.
	PacketBackup = 32

	// MaxParseEntities is the size of the entity parse ring; must be a power of two.
	MaxParseEntities = 2048

	// MaxConfigstrings is the number of config string slots.
	MaxConfigstrings = 1024

	// MaxStringChars is the maximum length (including the terminating NUL) of
	// a single server command string.
	MaxStringChars = 1024

	// BigInfoString is the maximum length of a big (multi-part) config string.
	BigInfoString = 8192

	// EventValidMsec is the window in which a repeated event-type entity delta
	// is considered the same event rather than a new one.
	EventValidMsec = 300

	// ETEvents is the eType threshold at and above which an entity is
	// event-bearing (spec.md §4.6: "an entity is a new event iff eType >=
	// ET_EVENTS").
	ETEvents = 96
)

// MaxAreaBytes is the maximum length, in bytes, of a snapshot's area-visibility
// mask (spec.md §4.6: "areamask length (must <= 32 bytes)").
const MaxAreaBytes = 32

// init checks that the ring and entity-count constants are powers of two,
// since ring indices are masked with size-1.
func init() {
	if MaxGentities&(MaxGentities-1) != 0 {
		panic(fmt.Sprintf("MaxGentities %d must be a power of two", MaxGentities))
	}
	if PacketBackup&(PacketBackup-1) != 0 {
		panic(fmt.Sprintf("PacketBackup %d must be a power of two", PacketBackup))
	}
	if MaxParseEntities&(MaxParseEntities-1) != 0 {
		panic(fmt.Sprintf("MaxParseEntities %d must be a power of two", MaxParseEntities))
	}
}
