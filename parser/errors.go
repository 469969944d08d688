// This file implements the error-kind taxonomy of spec.md §7 as plain Go
// error wrapping: a small errKind enum plus sentinel errors, rather than a
// custom panic/exception hierarchy (ambient-stack choice, SPEC_FULL.md §0).
package parser

import "errors"

// errKind classifies how a parse-time error should be handled, per spec.md §7.
type errKind int

const (
	// errKindFatal means the stream is desynchronized; abort this file.
	errKindFatal errKind = iota

	// errKindWarning means the current snapshot could not be reconstructed;
	// mark it invalid and continue.
	errKindWarning

	// errKindSilent means a duplicate was observed; drop it and continue,
	// without surfacing anything to the caller.
	errKindSilent

	// errKindSoftFail means an output-side operation (opening a cut stream)
	// failed; drop the affected cut window and continue.
	errKindSoftFail
)

// Sentinel errors, one per recognized failure mode (spec.md §7).
var (
	// ErrDesync is returned for an unrecognized command byte, or svc_bad on
	// a protocol newer than Dm48. Over-reads and out-of-range gamestate
	// indices use ErrOverread and ErrBadIndex.
	ErrDesync = errors.New("parser: stream desynchronized")

	// ErrOverread is returned when a message's bit buffer overflowed.
	ErrOverread = errors.New("parser: message buffer overread")

	// ErrBadIndex is returned for an out-of-range config-string or entity
	// index encountered while parsing a gamestate.
	ErrBadIndex = errors.New("parser: index out of range")

	// ErrMissingDeltaBase is returned (as a warning) when a snapshot's delta
	// base is missing, stale, or itself invalid.
	ErrMissingDeltaBase = errors.New("parser: delta base missing or invalid")

	// ErrDuplicateCommand is returned (silently) when a server command's
	// sequence number is not newer than the last one stored.
	ErrDuplicateCommand = errors.New("parser: duplicate command sequence")

	// ErrDuplicateSnapshot is returned (silently) when a snapshot's
	// messageNum repeats the last one dispatched to plug-ins.
	ErrDuplicateSnapshot = errors.New("parser: duplicate snapshot messageNum")
)

// fatalf wraps err (or ErrDesync if err is nil) as a fatal error.
func fatalf(err error) error {
	if err == nil {
		err = ErrDesync
	}
	return &kindError{kind: errKindFatal, err: err}
}

func warningf(err error) error {
	return &kindError{kind: errKindWarning, err: err}
}

func silentf(err error) error {
	return &kindError{kind: errKindSilent, err: err}
}

type kindError struct {
	kind errKind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }

// Kind reports err's errKind, defaulting to errKindFatal for any error that
// did not originate from this package's classification helpers (an
// unclassified error is always treated as the most severe kind).
func Kind(err error) errKind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return errKindFatal
}
