// Package msgio implements the typed message reader/writer layered over
// package bitstream (spec.md §4.2, component C2): byte, short, long, bits,
// string, big-string and data-block reads/writes, plus delegation of
// delta-entity/delta-player codecs to package entity.
package msgio

import (
	"github.com/gorep/qdemo/entity"
	"github.com/gorep/qdemo/protocol"

	"github.com/gorep/qdemo/bitstream"
)

// Message is one server-to-client network message: a bit-addressable buffer
// with a byte length, a read cursor, and a Huffman-active flag (spec.md §3).
// It carries a file name for diagnostics.
type Message struct {
	buf      *bitstream.Buffer
	fileName string
	version  *protocol.Version
}

// NewReadMessage wraps data for reading. Huffman coding is enabled when
// version.HuffmanCoded() reports true (Dm66+).
func NewReadMessage(fileName string, data []byte, version *protocol.Version) *Message {
	buf := bitstream.NewReader(data)
	buf.SetHuffman(version.HuffmanCoded())
	return &Message{buf: buf, fileName: fileName, version: version}
}

// NewWriteMessage creates an empty message for writing, targeting version.
func NewWriteMessage(fileName string, version *protocol.Version) *Message {
	buf := bitstream.NewWriter(4096)
	buf.SetHuffman(version.HuffmanCoded())
	return &Message{buf: buf, fileName: fileName, version: version}
}

// FileName returns the diagnostic file name this message belongs to.
func (m *Message) FileName() string { return m.fileName }

// Version returns the protocol version this message is encoded/decoded for.
func (m *Message) Version() *protocol.Version { return m.version }

// Buffer exposes the underlying bit buffer, for packages (entity, parser)
// that need the raw primitives directly.
func (m *Message) Buffer() *bitstream.Buffer { return m.buf }

// Reset rewinds the cursor for reuse (e.g. a pooled write message between
// server commands).
func (m *Message) Reset() { m.buf.Reset() }

// Bytes returns the message's bytes (meaningful once GoToNextByte-aligned or
// for write messages once writing is finished).
func (m *Message) Bytes() []byte { return m.buf.Bytes() }

// Overflowed reports whether any read/write has overflowed.
func (m *Message) Overflowed() bool { return m.buf.Overflowed() }

// ValidState reports !Overflowed().
func (m *Message) ValidState() bool { return m.buf.ValidState() }

// GoToNextByte advances to the next byte boundary; used only for legacy
// byte-aligned protocols (<= Dm48).
func (m *Message) GoToNextByte() { m.buf.GoToNextByte() }

// ReadByte/WriteByte read or write one (possibly Huffman-coded) byte.
func (m *Message) ReadByte() byte          { return m.buf.ReadByte() }
func (m *Message) WriteByte(value byte)    { m.buf.WriteByte(value) }
func (m *Message) ReadSignedByte() int8    { return int8(m.buf.ReadByte()) }
func (m *Message) WriteSignedByte(v int8)  { m.buf.WriteByte(byte(v)) }

// PeekByte reads the next byte without advancing the cursor.
func (m *Message) PeekByte() byte { return m.buf.PeekByte() }

// ReadShort/WriteShort read or write a 16-bit little-endian value as two
// (possibly Huffman-coded) bytes.
func (m *Message) ReadShort() int16 {
	lo := m.buf.ReadByte()
	hi := m.buf.ReadByte()
	return int16(uint16(lo) | uint16(hi)<<8)
}

func (m *Message) WriteShort(v int16) {
	u := uint16(v)
	m.buf.WriteByte(byte(u))
	m.buf.WriteByte(byte(u >> 8))
}

// ReadLong/WriteLong read or write a 32-bit little-endian value as four
// (possibly Huffman-coded) bytes.
func (m *Message) ReadLong() int32 {
	var u uint32
	for i := 0; i < 4; i++ {
		u |= uint32(m.buf.ReadByte()) << uint(8*i)
	}
	return int32(u)
}

func (m *Message) WriteLong(v int32) {
	u := uint32(v)
	for i := 0; i < 4; i++ {
		m.buf.WriteByte(byte(u >> uint(8*i)))
	}
}

// ReadBits/WriteBits expose raw bit-packed integers (1..32 bits), used by the
// delta codec and entity-number fields. A negative bits value requests
// sign-extension on read.
func (m *Message) ReadBits(bits int) int32 {
	if bits < 0 {
		return m.buf.ReadBitsSigned(-bits)
	}
	return int32(m.buf.ReadBits(bits))
}

func (m *Message) WriteBits(value int32, bits int) {
	if bits < 0 {
		bits = -bits
	}
	m.buf.WriteBits(uint32(value), bits)
}

// ReadData/WriteData read or write a raw, byte-aligned block (e.g. the
// snapshot area-visibility mask).
func (m *Message) ReadData(n int) []byte    { return m.buf.ReadDataBlock(n) }
func (m *Message) WriteData(data []byte)    { m.buf.WriteDataBlock(data) }

// ReadString reads a NUL-terminated string, stopping early at maxSize-1
// bytes if no NUL is found (the caller-supplied maximum is
// protocol.MaxStringChars or protocol.BigInfoString per spec.md §4.2).
// It returns the string content, excluding the terminating NUL.
func (m *Message) ReadString(maxSize int) string {
	buf := make([]byte, 0, 32)
	for i := 0; i < maxSize-1; i++ {
		c := m.buf.ReadByte()
		if m.buf.Overflowed() {
			break
		}
		if c == 0 {
			break
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// WriteString writes s followed by a NUL terminator. If s would not fit in
// maxSize-1 bytes it is truncated (callers that must not truncate — the
// big-config-string path — chunk the string themselves before calling this).
func (m *Message) WriteString(s string, maxSize int) {
	if len(s) > maxSize-1 {
		s = s[:maxSize-1]
	}
	for i := 0; i < len(s); i++ {
		m.buf.WriteByte(s[i])
	}
	m.buf.WriteByte(0)
}

// ReadDeltaEntity delegates to package entity (spec.md §4.2/§4.3).
func (m *Message) ReadDeltaEntity(table *entity.FieldTable, old, to *entity.State, number int) (changed bool) {
	return entity.ReadDelta(m.buf, table, old, to, number)
}

// WriteDeltaEntity delegates to package entity. If nothing changed and force
// is false it emits only a not-removed bit and a clear has-delta bit; a full
// state is emitted when force is true.
func (m *Message) WriteDeltaEntity(table *entity.FieldTable, old, to *entity.State, force bool) {
	entity.WriteDelta(m.buf, table, old, to, force)
}

// ReadDeltaPlayer delegates to package entity.
func (m *Message) ReadDeltaPlayer(table *entity.PlayerFieldTable, old, to *entity.PlayerState) {
	entity.ReadPlayerDelta(m.buf, table, old, to)
}

// WriteDeltaPlayer delegates to package entity.
func (m *Message) WriteDeltaPlayer(table *entity.PlayerFieldTable, old, to *entity.PlayerState) {
	entity.WritePlayerDelta(m.buf, table, old, to)
}
