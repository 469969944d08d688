// Package parser implements the parser state machine (spec.md §4.6,
// component C7): the per-message dispatch loop, config-string and
// big-config-string tracking, gamestate and snapshot handling, and the
// point where the cut scheduler (package cutwriter) and the plug-in
// pipeline (package plugin) are driven.
//
// Grounded on original_source/UDT_DLL/src/parser.cpp's message loop and the
// teacher's repparser.parseProtected's panic-recovery-at-the-boundary
// idiom.
package parser

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/gorep/qdemo/arena"
	"github.com/gorep/qdemo/convert"
	"github.com/gorep/qdemo/cutwriter"
	"github.com/gorep/qdemo/entity"
	"github.com/gorep/qdemo/msgio"
	"github.com/gorep/qdemo/plugin"
	"github.com/gorep/qdemo/protocol"
	"github.com/gorep/qdemo/ring"
)

// Config configures a Parser (ambient-stack choice: grounded on
// repparser.Config, SPEC_FULL.md §0). The zero value is usable.
type Config struct {
	// MessageFunc receives diagnostics; nil discards them.
	MessageFunc MessageFunc

	// Plugins is the set of observers dispatched gamestate/command/snapshot
	// events (spec.md §4.7).
	Plugins []plugin.Plugin

	// Cuts is the set of requested cut windows for this demo, processed in
	// order (spec.md §4.8). Nil/empty means "parse only, do not cut".
	Cuts []*cutwriter.Window

	// OutVersion is the protocol version cut output is re-encoded in. If
	// nil, it defaults to the input protocol's version (no conversion).
	OutVersion *protocol.Version

	// Converter overrides the converter used between input and OutVersion.
	// If nil, one is selected automatically (Identity when versions match,
	// else convert.New).
	Converter convert.Converter

	// Cancel, if non-nil, is checked between messages (spec.md §5): a
	// non-zero value aborts the parse with ErrCancelled.
	Cancel *atomic.Uint32

	// ProgressFunc, if non-nil, receives progress in [0,1], throttled by
	// ProgressMinInterval (spec.md §5).
	ProgressFunc        func(float64)
	ProgressMinInterval time.Duration
}

// Parser drives one input demo stream end to end (spec.md §3
// "ParserState", §4.6). A Parser is not safe for concurrent use; callers
// that process multiple demos in parallel construct one Parser per worker
// (spec.md §5).
type Parser struct {
	cfg      Config
	fileName string
	version  *protocol.Version

	arenas *arena.Set

	entityTable *entity.FieldTable
	playerTable *entity.PlayerFieldTable

	configStrings    [protocol.MaxConfigstrings][]byte
	configStringsSet [protocol.MaxConfigstrings]bool
	bigCS            bcsState

	baselines   [protocol.MaxGentities]entity.State
	baselineSet [protocol.MaxGentities]bool

	snapshots            *ring.SnapshotRing
	entities             *ring.EntityRing
	lastSnapshotNum      int32
	lastStoredMessageNum int32
	entityEventTimes     [protocol.MaxGentities]int32

	inServerMessageSequence int32
	inServerCommandSequence int32
	inGameStateIndex        int
	inClientNum             int32
	inChecksumFeed          int32
	inServerTime            int32

	gameStateOffsets []int64
	curFileOffset    int64
	totalSize        int64
	outCommandSeq    int32

	pipeline *plugin.Pipeline
	cuts     *cutwriter.Scheduler
	conv     convert.Converter

	lastProgressAt time.Time
}

// New creates a Parser for a demo of the given input protocol version.
func New(fileName string, version *protocol.Version, cfg Config) *Parser {
	p := &Parser{
		cfg:         cfg,
		fileName:    fileName,
		version:     version,
		arenas:      arena.NewSet(),
		entityTable: entity.EntityTable(version),
		playerTable: entity.PlayerTable(version),
		snapshots:   ring.NewSnapshotRing(protocol.PacketBackup),
		entities:    ring.NewEntityRing(protocol.MaxParseEntities),
		pipeline:    plugin.NewPipeline(cfg.Plugins...),
		cuts:        cutwriter.NewScheduler(cfg.Cuts),
	}
	p.inGameStateIndex = -1

	outVersion := cfg.OutVersion
	if outVersion == nil {
		outVersion = version
	}
	if cfg.Converter != nil {
		p.conv = cfg.Converter
	} else {
		p.conv = convert.New(version, outVersion)
	}

	return p
}

// FileName returns the diagnostic file name this parser was created with.
func (p *Parser) FileName() string { return p.fileName }

// Version returns the parser's input protocol version.
func (p *Parser) Version() *protocol.Version { return p.version }

// GameStateOffsets returns one file offset per gamestate parsed so far,
// appended in parse order (spec.md §3, §9 open question: every entry is
// written, the apparent index-0-only bug from the original is not
// reproduced).
func (p *Parser) GameStateOffsets() []int64 { return p.gameStateOffsets }

// cancelled reports whether the caller-owned cancellation flag is set.
func (p *Parser) cancelled() bool {
	return p.cfg.Cancel != nil && p.cfg.Cancel.Load() != 0
}

// ErrCancelled is returned by ParseMessage when the caller's cancellation
// flag was observed set.
var ErrCancelled = errors.New("parser: cancelled")

// ParseMessage parses one input message (already framed/extracted by the
// caller per spec.md §6's file framing) and, if a cut is active or about to
// begin, writes the re-encoded mirror to the cut's output stream.
//
// It returns ok=false with ErrCancelled if cancellation was observed;
// ok=false with a fatal error if the stream desynchronized; otherwise
// ok=true and a nil error. A fatal error means the caller must abort this
// file (spec.md §7). Non-fatal conditions are not returned: warnings are sent
// to MessageFunc by the handler that hit them, and silent skips are dropped.
func (p *Parser) ParseMessage(data []byte) (ok bool, err error) {
	if p.cancelled() {
		return false, ErrCancelled
	}

	in := msgio.NewReadMessage(p.fileName, data, p.version)
	outVersion := p.conv.To()
	out := msgio.NewWriteMessage(p.fileName, outVersion)

	mark := p.arenas.Scoped.Mark()
	defer p.arenas.Scoped.Release(mark)

	if err := p.dispatchMessage(in, out); err != nil {
		if Kind(err) == errKindFatal {
			p.emit(LevelError, err.Error())
			return false, err
		}
		// Warnings were already sent to MessageFunc by the handler that
		// produced them; silent skips are dropped.
	}

	out.WriteByte(protocol.SvcIDEOF)

	p.tickCutScheduler(out)

	p.arenas.Temp.Clear()

	if p.totalSize > 0 {
		p.reportProgress(float64(p.curFileOffset)/float64(p.totalSize), time.Now())
	}

	return true, nil
}

// dispatchMessage implements spec.md §4.6 step 1-2: read the
// reliable-sequence-ack, then loop over command bytes until EOF.
func (p *Parser) dispatchMessage(in *msgio.Message, out *msgio.Message) error {
	// Every protocol after Dm3 carries a reliable-sequence-ack long on the
	// wire, and it must always be read to stay in sync with the stream; only
	// Dm68+ actually keeps it as the acknowledge value, though. Dm48/Dm66
	// still read-and-discard it, substituting inServerMessageSequence like
	// Dm3 does (original_source/UDT_DLL/src/parser.cpp's ParseReliableSeqAck).
	ack := p.inServerMessageSequence
	if p.version.AtLeast(protocol.Dm48) {
		wireAck := in.ReadLong()
		if p.version.AtLeast(protocol.Dm68) {
			ack = wireAck
		}
	}
	out.WriteLong(ack)

	for {
		if !p.version.HuffmanCoded() {
			in.GoToNextByte()
		}
		cmd := in.ReadByte()
		svc := protocol.SvcByID(cmd)

		// Dm90+ can follow svc_EOF with svc_extension plus a real command
		// byte (original_source/UDT_DLL/src/parser.cpp's dispatch loop);
		// look one byte ahead and, if so, consume the extension byte and
		// read the real command. A command read past the end of the stream
		// at that point is itself treated as EOF rather than as a desync.
		if svc.ID == protocol.SvcIDEOF && p.version.AtLeast(protocol.Dm90) && in.PeekByte() == protocol.SvcIDExtension {
			in.ReadByte()
			cmd = in.ReadByte()
			if in.Overflowed() {
				return nil
			}
			svc = protocol.SvcByID(cmd)
		}

		switch svc.ID {
		case protocol.SvcIDNop:
			out.WriteByte(protocol.SvcIDNop)

		case protocol.SvcIDServerCommand:
			if err := p.handleServerCommand(in, out); err != nil {
				if Kind(err) == errKindFatal {
					return err
				}
			}

		case protocol.SvcIDGamestate:
			if err := p.handleGamestate(in); err != nil {
				return err
			}

		case protocol.SvcIDSnapshot:
			if err := p.handleSnapshot(in); err != nil {
				if Kind(err) != errKindWarning {
					return err
				}
			}

		case protocol.SvcIDVoip, protocol.SvcIDDownload:
			p.emit(LevelWarning, "unsupported command: "+svc.Name)
			out.WriteByte(protocol.SvcIDNop)

		case protocol.SvcIDEOF:
			return nil

		case protocol.SvcIDBad:
			if p.version.AtMost(protocol.Dm48) {
				return nil
			}
			return fatalf(ErrDesync)

		default:
			return fatalf(ErrDesync)
		}

		if in.Overflowed() {
			return fatalf(ErrOverread)
		}
	}
}

// tickCutScheduler advances the cut scheduler by this message and, if
// needed, writes the mirrored output (spec.md §4.6 step 4, §4.8).
func (p *Parser) tickCutScheduler(out *msgio.Message) {
	if p.cuts.Empty() {
		return
	}

	action := p.cuts.Tick(p.inGameStateIndex, p.inServerTime)
	switch action {
	case cutwriter.ActionOpened:
		gs := p.synthesizeGameState()
		if err := p.cuts.WriteFirstMessage(gs, out.Bytes()); err != nil {
			p.emit(LevelWarning, "cut: write failed: "+err.Error())
		}
	case cutwriter.ActionWrite:
		if err := p.cuts.WriteNextMessage(out.Bytes()); err != nil {
			p.emit(LevelWarning, "cut: write failed: "+err.Error())
		}
	case cutwriter.ActionClosed:
		// The window that just closed may have been immediately followed by
		// another window whose range also covers this message; re-evaluate
		// once more so a back-to-back window isn't skipped.
		p.tickCutScheduler(out)
	case cutwriter.ActionNone:
	}
}

// synthesizeGameState builds a fresh svc_gamestate message from the
// parser's live config strings and non-zero baselines (spec.md §4.8:
// "synthesize a fresh gamestate message carrying current config strings and
// non-zero baselines... then emit svc_EOF plus clientNum+checksumFeed").
func (p *Parser) synthesizeGameState() []byte {
	outVersion := p.conv.To()
	msg := msgio.NewWriteMessage(p.fileName, outVersion)

	msg.WriteLong(p.inServerMessageSequence) // reliable acknowledge
	msg.WriteByte(protocol.SvcIDGamestate)
	msg.WriteLong(p.inServerCommandSequence)

	for i := 0; i < protocol.MaxConfigstrings; i++ {
		if !p.configStringsSet[i] {
			continue
		}
		msg.WriteByte(protocol.SvcIDConfigstring)
		msg.WriteShort(int16(i))
		msg.WriteString(string(p.configStrings[i]), protocol.BigInfoString)
	}

	toEntityTable := entity.EntityTable(outVersion)
	var zero entity.State
	zero.Protocol = p.version
	for i := 0; i < protocol.MaxGentities; i++ {
		if !p.baselineSet[i] {
			continue
		}
		msg.WriteByte(protocol.SvcIDBaseline)
		msg.WriteBits(int32(i), protocol.GentityNumBits)

		var out entity.State
		p.conv.ConvertEntityState(&out, &p.baselines[i])
		msg.WriteDeltaEntity(toEntityTable, &zero, &out, true)
	}

	msg.WriteByte(protocol.SvcIDEOF)
	if outVersion.AtLeast(protocol.Dm66) {
		msg.WriteLong(p.inClientNum)
		msg.WriteLong(p.inChecksumFeed)
	}
	msg.WriteByte(protocol.SvcIDEOF)

	return msg.Bytes()
}

// resetForGameState clears per-gamestate state (spec.md §4.6: "reset for
// gamestate": clear sequences, cursors, snapshot ring, config-string arena,
// temp arena, entity event times). It runs before a gamestate message's own
// config-string/baseline sub-commands are parsed, so those survive it;
// finishGameState runs afterward, once the gamestate's clientNum/
// checksumFeed are known.
func (p *Parser) resetForGameState() {
	p.inServerMessageSequence = 0
	p.inServerTime = 0
	p.snapshots.Reset()
	p.entities.Reset()
	p.arenas.ConfigString.Clear()
	p.arenas.Temp.Clear()
	for i := range p.entityEventTimes {
		p.entityEventTimes[i] = 0
	}
	for i := range p.configStringsSet {
		p.configStringsSet[i] = false
		p.configStrings[i] = nil
	}
	for i := range p.baselineSet {
		p.baselineSet[i] = false
	}
	p.lastSnapshotNum = -1
	p.lastStoredMessageNum = -1
	p.bigCS = bcsState{}
}

// finishGameState advances the gamestate index, records the file offset it
// started at, and dispatches the plug-in event, once the gamestate's own
// clientNum/checksumFeed have been read (spec.md §4.6).
func (p *Parser) finishGameState() {
	p.inGameStateIndex++
	p.gameStateOffsets = append(p.gameStateOffsets, p.curFileOffset)

	p.pipeline.Gamestate(&plugin.GamestateEvent{
		GameStateIndex: p.inGameStateIndex,
		ServerTime:     p.inServerTime,
		ClientNum:      p.inClientNum,
		ChecksumFeed:   p.inChecksumFeed,
	})
	p.conv.StartGameState()
}

// SetFileOffset records the byte offset of the message about to be parsed,
// used to build GameStateOffsets (the caller owns file framing, spec.md
// §6, so it supplies the offset rather than this package tracking it
// against an io.Reader it does not own).
func (p *Parser) SetFileOffset(offset int64) { p.curFileOffset = offset }

// SetTotalSize records the full size of the input stream, used as the
// denominator for the progress callback's file-position fraction (spec.md
// §5). The caller owns file framing and therefore knows this size up front.
func (p *Parser) SetTotalSize(size int64) { p.totalSize = size }

// Close releases the parser's cut output streams without writing the
// end-of-stream sentinel, as required when aborting mid-parse (spec.md §5:
// "in-progress output streams on abort are closed without the end-of-stream
// sentinels").
func (p *Parser) Close() {
	p.cuts.Abort()
}

// FinishCuts closes out any cut window still open when the input stream
// ends normally, so a window whose EndTimeMs is never reached (the demo
// ends first) still gets a clean terminator and close rather than being
// left dangling.
func (p *Parser) FinishCuts() {
	p.cuts.Finish()
}

// StartProcessingDemo/FinishProcessingDemo fan out to the plug-in pipeline;
// callers invoke these once each, bracketing the ParseMessage calls for one
// file.
func (p *Parser) StartProcessingDemo() { p.pipeline.StartProcessingDemo(p.fileName) }
func (p *Parser) FinishProcessingDemo(ok bool) {
	p.pipeline.FinishProcessingDemo(p.fileName, ok)
}

// reportProgress invokes the configured progress callback, throttled by
// ProgressMinInterval (spec.md §5).
func (p *Parser) reportProgress(fraction float64, now time.Time) {
	if p.cfg.ProgressFunc == nil {
		return
	}
	if now.Sub(p.lastProgressAt) < p.cfg.ProgressMinInterval {
		return
	}
	p.lastProgressAt = now
	p.cfg.ProgressFunc(fraction)
}
