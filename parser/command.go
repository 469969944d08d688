// This file implements svc_serverCommand handling (spec.md §4.6): sequence
// dedup, `cs`/`bcs0`/`bcs1`/`bcs2` tokenization and the big-config-string
// assembly law, and the output-side splitting law of spec.md §8.
package parser

import (
	"strconv"
	"strings"

	"github.com/gorep/qdemo/convert"
	"github.com/gorep/qdemo/msgio"
	"github.com/gorep/qdemo/plugin"
	"github.com/gorep/qdemo/protocol"
)

// splitOverhead is the fixed per-piece overhead ("bcs1 <idx> " plus
// quoting) budgeted against protocol.MaxStringChars when deciding how many
// pieces a big config string needs (spec.md §8 splitting law).
const splitOverhead = 16

// handleServerCommand reads one svc_serverCommand, applies duplicate
// suppression, and dispatches cs/bcs*/plain commands.
func (p *Parser) handleServerCommand(in *msgio.Message, out *msgio.Message) error {
	seq := in.ReadLong()
	str := in.ReadString(protocol.MaxStringChars)

	if seq <= p.inServerCommandSequence {
		return silentf(ErrDuplicateCommand)
	}
	p.inServerCommandSequence = seq

	verb, index, rest, ok := splitCommand(str)
	if !ok {
		// Not a cs/bcs command: pass it through unchanged.
		p.pipeline.Command(&plugin.CommandEvent{Sequence: seq, ServerTime: p.inServerTime, Command: str})
		p.writeServerCommand(out, seq, str)
		return nil
	}

	switch verb {
	case "cs":
		value := decodeConfigStringValue(unquote(rest))
		p.applyConfigString(index, value, out)
	case "bcs0":
		p.bigCS.begin(index, rest)
	case "bcs1":
		p.bigCS.append(index, rest)
	case "bcs2":
		value, ok := p.bigCS.finish(index, rest)
		if !ok {
			return silentf(ErrDuplicateCommand)
		}
		p.applyConfigString(index, decodeConfigStringValue(unquote(value)), out)
	default:
		p.pipeline.Command(&plugin.CommandEvent{Sequence: seq, ServerTime: p.inServerTime, Command: str})
		p.writeServerCommand(out, seq, str)
	}
	return nil
}

// applyConfigString stores a fully-assembled config-string value (whether
// it arrived as a single `cs` or was reassembled from bcs0/1*/2), runs it
// through the protocol converter, dispatches the assembled event to
// plug-ins (big-string pieces never reach plug-ins, spec.md §4.6), and
// writes the (possibly re-split) output command.
func (p *Parser) applyConfigString(index int, value string, out *msgio.Message) {
	if index < 0 || index >= protocol.MaxConfigstrings {
		p.emit(LevelError, "config string index out of range: "+strconv.Itoa(index))
		return
	}

	var converted convert.ConfigString
	p.conv.ConvertConfigString(&converted, p.arenas.ConfigString, index, []byte(value))

	stored := converted.String
	if !converted.NewString {
		stored = p.arenas.ConfigString.Alloc([]byte(value))
	}
	p.configStrings[index] = stored
	p.configStringsSet[index] = true

	p.pipeline.Command(&plugin.CommandEvent{
		Sequence:   p.inServerCommandSequence,
		ServerTime: p.inServerTime,
		Command:    "cs " + strconv.Itoa(index) + " " + value,
	})

	p.writeConfigStringCommand(out, converted.Index, string(stored))
}

// writeServerCommand writes a plain (non cs/bcs) command verbatim.
func (p *Parser) writeServerCommand(out *msgio.Message, seq int32, str string) {
	out.WriteByte(protocol.SvcIDServerCommand)
	out.WriteLong(seq)
	out.WriteString(str, protocol.MaxStringChars)
}

// writeConfigStringCommand writes a `cs <index> "<value>"` command, or, if
// it would not fit in one piece, the smallest bcs0/bcs1*/bcs2 sequence that
// does (spec.md §8's big-config-string law).
func (p *Parser) writeConfigStringCommand(out *msgio.Message, index int, value string) {
	full := "cs " + strconv.Itoa(index) + " \"" + value + "\""
	if len(full) < protocol.MaxStringChars-splitOverhead {
		p.writeServerCommand(out, p.nextOutputCommandSeq(), full)
		return
	}

	k := chunkCount(len(value), protocol.MaxStringChars-splitOverhead)
	chunkLen := (len(value) + k - 1) / k
	for i := 0; i < k; i++ {
		lo := i * chunkLen
		hi := lo + chunkLen
		if hi > len(value) {
			hi = len(value)
		}
		chunk := value[lo:hi]

		verb := "bcs1"
		if i == 0 {
			verb = "bcs0"
		}
		if i == k-1 {
			verb = "bcs2"
		}
		cmd := verb + " " + strconv.Itoa(index) + " " + chunk
		p.writeServerCommand(out, p.nextOutputCommandSeq(), cmd)
	}
}

// nextOutputCommandSeq mints an output-side command sequence number. Output
// commands synthesized from a single input command (the bcs split) share
// the input's logical ordering, so a simple per-parser monotonic counter
// (independent of the input's own sequence numbering, which the output
// stream does not need to match byte-for-byte per spec.md §8's semantic,
// not byte, equality requirement) is sufficient.
func (p *Parser) nextOutputCommandSeq() int32 {
	p.outCommandSeq++
	return p.outCommandSeq
}

// chunkCount returns the smallest K such that ceil(n/K) <= maxPiece.
func chunkCount(n, maxPiece int) int {
	if n == 0 {
		return 1
	}
	k := (n + maxPiece - 1) / maxPiece
	if k < 1 {
		k = 1
	}
	return k
}

// splitCommand splits "<verb> <index> <rest>" into its parts. ok is false
// if str does not have at least a verb and an integer index.
func splitCommand(str string) (verb string, index int, rest string, ok bool) {
	parts := strings.SplitN(str, " ", 3)
	if len(parts) < 2 {
		return "", 0, "", false
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, "", false
	}
	r := ""
	if len(parts) == 3 {
		r = parts[2]
	}
	return parts[0], idx, r, true
}

// unquote strips one leading and one trailing `"`, if both are present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
