package qdemo

import (
	"bytes"
	"io"
	"testing"

	"github.com/gorep/qdemo/msgio"
	"github.com/gorep/qdemo/protocol"
)

// nopWriteCloser adapts a bytes.Buffer to io.WriteCloser for cut-output
// tests, tracking whether Close was called.
type nopWriteCloser struct {
	*bytes.Buffer
	closed bool
}

func (w *nopWriteCloser) Close() error {
	w.closed = true
	return nil
}

// gamestateMessage builds a minimal, byte-aligned Dm3 svc_gamestate message
// with no config strings or baselines.
func gamestateMessage() []byte {
	m := msgio.NewWriteMessage("t.dm3", protocol.Dm3)
	m.WriteByte(protocol.SvcIDGamestate)
	m.WriteLong(1)                 // command sequence
	m.WriteByte(protocol.SvcIDEOF) // ends the gamestate sub-loop
	m.WriteByte(protocol.SvcIDEOF) // ends the top-level dispatch loop
	return m.Bytes()
}

func framedDemo(messages ...[]byte) []byte {
	var data []byte
	for i, msg := range messages {
		data = append(data, frame(int32(i), msg)...)
	}
	data = append(data, terminator()...)
	return data
}

func TestParseDemosReturnsNoneForWellFormedInput(t *testing.T) {
	ctx := NewContext()
	inputs := []Input{
		{FileName: "a.dm3", Data: framedDemo(gamestateMessage()), Version: protocol.Dm3},
	}
	codes := ctx.ParseDemos(inputs, nil)
	if len(codes) != 1 || codes[0] != ErrorCodeNone {
		t.Fatalf("ParseDemos: got %v, want [None]", codes)
	}
}

func TestParseDemosRejectsMissingVersion(t *testing.T) {
	ctx := NewContext()
	inputs := []Input{{FileName: "a.dm3", Data: framedDemo(gamestateMessage())}}
	codes := ctx.ParseDemos(inputs, nil)
	if len(codes) != 1 || codes[0] != ErrorCodeInvalidArgument {
		t.Fatalf("ParseDemos with nil Version: got %v, want [InvalidArgument]", codes)
	}
}

func TestCutDemosByTimeMismatchedWindowsLength(t *testing.T) {
	ctx := NewContext()
	inputs := []Input{
		{FileName: "a.dm3", Data: framedDemo(gamestateMessage()), Version: protocol.Dm3},
	}
	out := func(Input, string) (io.WriteCloser, error) {
		t.Fatal("output factory should not be invoked when windows/inputs length mismatches")
		return nil, nil
	}
	codes := ctx.CutDemosByTime(inputs, nil, out)
	if len(codes) != 1 || codes[0] != ErrorCodeInvalidArgument {
		t.Fatalf("CutDemosByTime with mismatched windows: got %v, want [InvalidArgument]", codes)
	}
}

func TestSplitDemoWritesOnePieceLessThanGamestateCount(t *testing.T) {
	ctx := NewContext()
	input := Input{
		FileName: "a.dm3",
		Data:     framedDemo(gamestateMessage(), gamestateMessage()),
		Version:  protocol.Dm3,
	}

	var opened int
	var bufs []*nopWriteCloser
	out := func(in Input, desc string) (io.WriteCloser, error) {
		opened++
		w := &nopWriteCloser{Buffer: &bytes.Buffer{}}
		bufs = append(bufs, w)
		return w, nil
	}

	code := ctx.SplitDemo(input, out)
	if code != ErrorCodeNone {
		t.Fatalf("SplitDemo: got %v, want None", code)
	}
	// Two gamestates means one split boundary, so exactly one output stream
	// should have been opened (spec.md §6: one piece per boundary after the
	// first).
	if opened != 1 {
		t.Fatalf("SplitDemo opened %d output streams, want 1", opened)
	}
	if len(bufs) != 1 || !bufs[0].closed {
		t.Errorf("SplitDemo should close the cut output stream it opened")
	}
}

func TestSplitDemoWithSingleGameStateOpensNothing(t *testing.T) {
	ctx := NewContext()
	input := Input{
		FileName: "a.dm3",
		Data:     framedDemo(gamestateMessage()),
		Version:  protocol.Dm3,
	}

	out := func(Input, string) (io.WriteCloser, error) {
		t.Fatal("a single gamestate has no split boundary and should never open an output")
		return nil, nil
	}

	code := ctx.SplitDemo(input, out)
	if code != ErrorCodeNone {
		t.Fatalf("SplitDemo: got %v, want None", code)
	}
}
