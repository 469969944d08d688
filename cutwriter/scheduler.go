package cutwriter

// Action tells the caller (the parser's per-message dispatch loop) what, if
// anything, it must write to the currently active output stream as a result
// of advancing the scheduler by one input message (spec.md §4.8).
type Action int

const (
	// ActionNone means no window is active for this message; nothing is
	// written.
	ActionNone Action = iota

	// ActionOpened means a window's conditions were just met and its stream
	// was opened. The caller must synthesize an opening gamestate message
	// (spec.md §9: "the cut writer must synthesize an opening gamestate from
	// the parser's live baselines/config strings, not copy one verbatim from
	// the input") via WriteFirstMessage, then write the current input
	// message via WriteNextMessage.
	ActionOpened

	// ActionWrite means a window is active and unchanged; the caller writes
	// the current input message via WriteNextMessage.
	ActionWrite

	// ActionClosed means the active window's range was just exceeded; its
	// stream has already been finished (WriteLastMessage) and closed. The
	// current input message belongs to whatever comes next, so the caller
	// should re-evaluate (call Tick again) before deciding what, if
	// anything, to write for it.
	ActionClosed
)

// Scheduler holds the queue of pending cut windows and the state of the one
// output stream being actively written, if any (spec.md §4.8, component C8:
// "a queue of CutWindow, processed strictly in order; at most one is being
// written at a time").
type Scheduler struct {
	queue []*Window

	active *Window
	seq    int32 // next framing sequence number for the active stream
}

// NewScheduler creates a Scheduler over the given windows, processed in the
// order given.
func NewScheduler(windows []*Window) *Scheduler {
	return &Scheduler{queue: append([]*Window(nil), windows...)}
}

// Empty reports whether every window has been processed (spec.md §8 boundary
// scenario 6: "once the last window closes, parsing stops").
func (s *Scheduler) Empty() bool { return len(s.queue) == 0 && s.active == nil }

// Writing reports whether a window's stream is currently open.
func (s *Scheduler) Writing() bool { return s.active != nil }

// Tick advances the scheduler by one input message and reports what the
// caller must do (spec.md §4.8's per-message algorithm):
//
//  1. if nothing is active, and the front of the queue matches this
//     message's gamestate index and falls within [Start,End], open its
//     stream and return ActionOpened;
//  2. if a window is active and this message has moved past its range
//     (a later gamestate, or the same gamestate but past End), finish and
//     close it and return ActionClosed;
//  3. if a window is active and still in range, return ActionWrite;
//  4. otherwise return ActionNone.
func (s *Scheduler) Tick(gameStateIndex int, serverTimeMs int32) Action {
	if s.active == nil {
		if len(s.queue) == 0 {
			return ActionNone
		}
		w := s.queue[0]
		if gameStateIndex != w.GameStateIndex || serverTimeMs < w.StartTimeMs || serverTimeMs > w.EndTimeMs {
			return ActionNone
		}
		out, err := w.CreateStream(w)
		if err != nil {
			// Soft-fail (spec.md §7): drop the window, keep parsing.
			s.queue = s.queue[1:]
			return ActionNone
		}
		w.out = out
		s.active = w
		s.seq = 0
		return ActionOpened
	}

	w := s.active
	pastEnd := gameStateIndex > w.GameStateIndex ||
		(gameStateIndex == w.GameStateIndex && serverTimeMs > w.EndTimeMs)
	if pastEnd {
		s.finishActive()
		return ActionClosed
	}
	return ActionWrite
}

// Front returns the window at the head of the queue (the one Tick will next
// act on), or nil if the queue is empty. Used by callers that need to know
// which window is pending without advancing the scheduler.
func (s *Scheduler) Front() *Window {
	if s.active != nil {
		return s.active
	}
	if len(s.queue) == 0 {
		return nil
	}
	return s.queue[0]
}

// finishActive writes the terminator frame, closes the stream, and drops the
// window from the queue.
func (s *Scheduler) finishActive() {
	w := s.active
	writeTerminator(w.out)
	w.out.Close()
	w.out = nil
	s.active = nil
	s.queue = s.queue[1:]
}

// Finish closes out a window left open when the input stream ends before the
// window's range does (e.g. a split/time-cut window whose EndTimeMs is never
// reached because the demo itself ends first): the active stream is finished
// normally, exactly as if its range had just been exceeded, so its output
// carries the same terminator frame and clean close as any other cut.
func (s *Scheduler) Finish() {
	if s.active == nil {
		return
	}
	s.finishActive()
}

// Abort closes and drops the active window (and its stream) without writing
// the terminator frame first, for use when parsing itself fails mid-cut
// (spec.md §7: a fatal error must not leave a half-framed output file
// looking like a clean cut).
func (s *Scheduler) Abort() {
	if s.active == nil {
		return
	}
	s.active.out.Close()
	s.active.out = nil
	s.active = nil
}

// WriteFirstMessage writes the synthesized opening gamestate, then the
// current raw message, to the active stream (spec.md §4.8's "open" step).
// It must only be called immediately after Tick returns ActionOpened.
func (s *Scheduler) WriteFirstMessage(gameState, message []byte) error {
	if err := s.WriteNextMessage(gameState); err != nil {
		return err
	}
	return s.WriteNextMessage(message)
}

// WriteNextMessage frames and writes one message to the active stream
// (spec.md §4.8: "sequence, then length, then the raw bytes"). It must only
// be called while Writing() is true.
func (s *Scheduler) WriteNextMessage(message []byte) error {
	if err := writeFrame(s.active.out, s.seq, message); err != nil {
		return err
	}
	s.seq++
	return nil
}
