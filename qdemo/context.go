// Package qdemo wires together packages protocol, bitstream, msgio, entity,
// ring, arena, convert, cutwriter, plugin and parser into the stable public
// surface spec.md §6 names (component budget table's implicit "root"
// package).
package qdemo

import (
	"sync/atomic"
	"time"

	"github.com/gorep/qdemo/parser"
)

// Context is the entry point for every public operation (spec.md §6:
// "create/destroy context"). A Context holds no per-demo state; it is safe
// to reuse across many ParseDemos/Cut* calls, and a caller processing demos
// on multiple goroutines constructs one Context per goroutine (spec.md §5).
type Context struct {
	// MessageFunc receives every diagnostic produced while processing demos
	// through this context.
	MessageFunc parser.MessageFunc

	// Cancel, if set, is checked between messages across every operation
	// run through this context.
	Cancel *atomic.Uint32

	// ProgressFunc, if set, receives progress in [0,1] keyed to input file
	// position, throttled by ProgressMinInterval (spec.md §5).
	ProgressFunc        func(float64)
	ProgressMinInterval time.Duration
}

// NewContext creates a Context with no message callback and no cancellation
// flag; set the fields directly before use to configure them.
func NewContext() *Context { return &Context{} }

// Close releases any resources held by the context. Present for symmetry
// with the spec's create/destroy pairing; a Context currently holds nothing
// that outlives its calls.
func (c *Context) Close() {}
