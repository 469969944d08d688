// Package cutwriter implements the cut scheduler / writer (spec.md §4.8,
// component C8): a queue of time windows over a specific gamestate, the
// stream-factory interface that opens output files (spec.md §9 design
// note: "a caller-supplied callback returning an opened writable stream;
// the parser owns it thereafter"), and the output framing writer.
package cutwriter

import "io"

// Window is one requested cut: a time range over one gamestate index
// (spec.md §3 "CutWindow").
type Window struct {
	// GameStateIndex is the gamestate this window applies to.
	GameStateIndex int

	// StartTimeMs, EndTimeMs bound the window, inclusive, in the stream's
	// internal serverTime.
	StartTimeMs, EndTimeMs int32

	// VeryShortDesc is a short human-readable label for the cut (used by
	// CreateStream implementations to build a file name).
	VeryShortDesc string

	// UserData is opaque caller data carried alongside the window (e.g. the
	// rule that produced it, for chat/frag cuts).
	UserData any

	// CreateStream opens the output stream for this window. It is called at
	// most once, the first time the window's conditions are met. Per spec.md
	// §7 ("soft-fail: output stream creation failed -> remove that cut
	// window, continue"), an error here drops the window rather than
	// aborting the whole operation.
	CreateStream func(w *Window) (io.WriteCloser, error)

	out io.WriteCloser
}
