package qdemo

import (
	"io"

	"github.com/gorep/qdemo/protocol"
)

// Input is one demo to parse or cut (spec.md §6's stable surface takes
// already-opened byte data; on-disk file discovery is out of scope per
// spec.md §1, so the caller supplies the bytes).
type Input struct {
	// FileName is used for diagnostics and passed to MessageFunc/plug-ins.
	FileName string

	// Data is the full framed demo stream (spec.md §6 input framing).
	Data []byte

	// Version is the input's protocol, normally resolved via
	// protocol.ExtensionVersion from the file's extension.
	Version *protocol.Version
}

// OutputFactory opens an output stream for a cut, given the input it was
// cut from and a short description (spec.md §9: "a caller-supplied callback
// returning an opened writable stream; the parser owns it thereafter").
type OutputFactory func(input Input, desc string) (io.WriteCloser, error)

// TimeWindow is one explicit cut request (spec.md §3 "CutWindow", minus the
// fields owned internally by the cut writer).
type TimeWindow struct {
	GameStateIndex         int
	StartTimeMs, EndTimeMs int32
	VeryShortDesc          string
}

// ChatRule selects which chat server commands trigger a cut.
type ChatRule struct {
	// Contains matches any server command whose text contains this
	// substring; an empty Contains matches every command.
	Contains string

	// MarginMs is how far before/after the trigger the cut window extends.
	MarginMs int32
}

// FragRule selects which obituary ("frag") server commands trigger a cut,
// analogous to ChatRule.
type FragRule struct {
	Contains string
	MarginMs int32
}
