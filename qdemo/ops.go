// This file implements the public operations of spec.md §6: ParseDemos,
// CutDemosByTime, CutDemoByChat, CutDemoByFrag and SplitDemo. Multi-file
// operations iterate sequentially and write one ErrorCode per input into a
// pre-sized result slice (spec.md §5: "output error codes are written to a
// pre-sized array at the input's index"); the thread-pool dispatch that
// would run these concurrently across files is the out-of-scope external
// collaborator spec.md §1 names.
package qdemo

import (
	"io"
	"log"
	"runtime"
	"strings"

	"github.com/gorep/qdemo/cutwriter"
	"github.com/gorep/qdemo/parser"
	"github.com/gorep/qdemo/plugin"
)

// ParseDemos parses every input, dispatching to plugins, and returns one
// ErrorCode per input.
func (c *Context) ParseDemos(inputs []Input, plugins []plugin.Plugin) []ErrorCode {
	codes := make([]ErrorCode, len(inputs))
	for i, in := range inputs {
		codes[i] = c.parseOne(in, plugins, nil)
	}
	return codes
}

// CutDemosByTime cuts each input according to its own window list, using
// out to open each cut's output stream. windows[i] are the windows for
// inputs[i].
func (c *Context) CutDemosByTime(inputs []Input, windows [][]TimeWindow, out OutputFactory) []ErrorCode {
	codes := make([]ErrorCode, len(inputs))
	if len(windows) != len(inputs) {
		for i := range codes {
			codes[i] = ErrorCodeInvalidArgument
		}
		return codes
	}
	for i, in := range inputs {
		codes[i] = c.cutOne(in, windows[i], out)
	}
	return codes
}

// CutDemoByChat scans input for chat commands matching rule, then re-parses
// it, cutting a window of [trigger-Margin, trigger+Margin] around each
// match (two-phase: the trigger-finding plug-in must observe the whole
// stream before the windows it implies can be handed to the cut writer,
// SPEC_FULL.md §4.10).
func (c *Context) CutDemoByChat(input Input, rule ChatRule, out OutputFactory) ErrorCode {
	match := func(cmd string) bool {
		return rule.Contains == "" || strings.Contains(cmd, rule.Contains)
	}
	chat := plugin.NewChatPlugin(match)
	if code := c.parseOne(input, []plugin.Plugin{chat}, nil); code != ErrorCodeNone {
		return code
	}
	windows := triggerWindows(chat.Triggers, rule.MarginMs, "chat")
	return c.cutOne(input, windows, out)
}

// CutDemoByFrag is the frag-rule analog of CutDemoByChat.
func (c *Context) CutDemoByFrag(input Input, rule FragRule, out OutputFactory) ErrorCode {
	match := func(cmd string) bool {
		return rule.Contains == "" || strings.Contains(cmd, rule.Contains)
	}
	obit := plugin.NewObituaryPlugin(match)
	if code := c.parseOne(input, []plugin.Plugin{obit}, nil); code != ErrorCodeNone {
		return code
	}
	windows := triggerWindows(obit.Triggers, rule.MarginMs, "frag")
	// Per spec.md §9's resolved Open Question: success returns
	// ErrorCodeNone (the original's apparent always-OperationFailed bug is
	// not reproduced).
	return c.cutOne(input, windows, out)
}

// SplitDemo cuts input into one output per gamestate boundary after the
// first (spec.md §6), using out to open each piece's stream.
func (c *Context) SplitDemo(input Input, out OutputFactory) ErrorCode {
	var count int
	counter := &countingPlugin{onGamestate: func() { count++ }}
	if code := c.parseOne(input, []plugin.Plugin{counter}, nil); code != ErrorCodeNone {
		return code
	}
	if count <= 1 {
		return ErrorCodeNone
	}
	windows := make([]TimeWindow, count-1)
	for i := 1; i < count; i++ {
		windows[i-1] = TimeWindow{GameStateIndex: i, StartTimeMs: 0, EndTimeMs: maxInt32, VeryShortDesc: "split"}
	}
	return c.cutOne(input, windows, out)
}

const maxInt32 = 1<<31 - 1

// triggerWindows converts a list of plug-in triggers into cut windows with
// a fixed margin before/after each trigger's server time.
func triggerWindows(triggers []plugin.Trigger, marginMs int32, desc string) []TimeWindow {
	windows := make([]TimeWindow, len(triggers))
	for i, t := range triggers {
		start := t.ServerTimeMs - marginMs
		if start < 0 {
			start = 0
		}
		windows[i] = TimeWindow{
			GameStateIndex: t.GameStateIndex,
			StartTimeMs:    start,
			EndTimeMs:      t.ServerTimeMs + marginMs,
			VeryShortDesc:  desc,
		}
	}
	return windows
}

// cutOne re-parses input with windows as cut requests.
func (c *Context) cutOne(input Input, windows []TimeWindow, out OutputFactory) ErrorCode {
	cuts := make([]*cutwriter.Window, len(windows))
	for i, w := range windows {
		w := w
		cuts[i] = &cutwriter.Window{
			GameStateIndex: w.GameStateIndex,
			StartTimeMs:    w.StartTimeMs,
			EndTimeMs:      w.EndTimeMs,
			VeryShortDesc:  w.VeryShortDesc,
			CreateStream: func(_ *cutwriter.Window) (io.WriteCloser, error) {
				return out(input, w.VeryShortDesc)
			},
		}
	}
	return c.parseOne(input, nil, cuts)
}

// countingPlugin is a minimal internal Plugin used by SplitDemo to count
// gamestates without exposing a public counting plug-in type.
type countingPlugin struct {
	plugin.Base
	onGamestate func()
}

func (p *countingPlugin) ProcessGamestateMessage(ev *plugin.GamestateEvent) {
	p.onGamestate()
}

// parseOne runs one parse (optionally with cuts) and translates the result
// to an ErrorCode (spec.md §7: "(success, cancelFlag) to an error code").
// Input is untrusted data, so the parse is protected from panics the same
// way repparser.parseProtected guards against implementation bugs in the
// decoder: a panic here becomes ErrorCodeOperationFailed rather than taking
// down the caller's goroutine.
func (c *Context) parseOne(input Input, plugins []plugin.Plugin, cuts []*cutwriter.Window) (code ErrorCode) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("qdemo: panic while parsing %q: %v", input.FileName, r)
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			log.Printf("qdemo: stack: %s", buf[:n])
			code = ErrorCodeOperationFailed
		}
	}()

	if input.Version == nil {
		return ErrorCodeInvalidArgument
	}

	cfg := parser.Config{
		MessageFunc:         c.MessageFunc,
		Plugins:             plugins,
		Cuts:                cuts,
		Cancel:              c.Cancel,
		ProgressFunc:        c.ProgressFunc,
		ProgressMinInterval: c.ProgressMinInterval,
	}
	p := parser.New(input.FileName, input.Version, cfg)
	p.SetTotalSize(int64(len(input.Data)))
	p.StartProcessingDemo()

	ok := true
	var lastErr error
	readFrames(input.Data, func(offset int64, payload []byte) bool {
		p.SetFileOffset(offset)
		pok, err := p.ParseMessage(payload)
		if !pok {
			ok = false
			lastErr = err
			return false
		}
		return true
	})

	p.FinishProcessingDemo(ok)
	if ok {
		p.FinishCuts()
	} else {
		p.Close()
	}

	if !ok {
		if lastErr == parser.ErrCancelled {
			return ErrorCodeOperationCanceled
		}
		return ErrorCodeOperationFailed
	}
	return ErrorCodeNone
}
