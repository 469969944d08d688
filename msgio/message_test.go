package msgio

import (
	"testing"

	"github.com/gorep/qdemo/protocol"
)

func TestByteShortLongRoundTrip(t *testing.T) {
	w := NewWriteMessage("test.dm90", protocol.Dm90)
	w.WriteByte(0x42)
	w.WriteSignedByte(-5)
	w.WriteShort(-1234)
	w.WriteLong(123456789)

	r := NewReadMessage("test.dm90", w.Bytes(), protocol.Dm90)
	if got := r.ReadByte(); got != 0x42 {
		t.Errorf("ReadByte: got %#x, want 0x42", got)
	}
	if got := r.ReadSignedByte(); got != -5 {
		t.Errorf("ReadSignedByte: got %d, want -5", got)
	}
	if got := r.ReadShort(); got != -1234 {
		t.Errorf("ReadShort: got %d, want -1234", got)
	}
	if got := r.ReadLong(); got != 123456789 {
		t.Errorf("ReadLong: got %d, want 123456789", got)
	}
	if r.Overflowed() {
		t.Errorf("message should not have overflowed")
	}
}

func TestReadBitsWriteBitsSignExtension(t *testing.T) {
	w := NewWriteMessage("test.dm90", protocol.Dm90)
	w.WriteBits(5, 4)
	w.WriteBits(-3, -6)

	r := NewReadMessage("test.dm90", w.Bytes(), protocol.Dm90)
	if got := r.ReadBits(4); got != 5 {
		t.Errorf("ReadBits(4): got %d, want 5", got)
	}
	if got := r.ReadBits(-6); got != -3 {
		t.Errorf("ReadBits(-6) (signed): got %d, want -3", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	w := NewWriteMessage("test.dm3", protocol.Dm3)
	w.WriteString("hello", protocol.MaxStringChars)
	w.WriteString("world", protocol.MaxStringChars)

	r := NewReadMessage("test.dm3", w.Bytes(), protocol.Dm3)
	if got := r.ReadString(protocol.MaxStringChars); got != "hello" {
		t.Errorf("ReadString: got %q, want %q", got, "hello")
	}
	if got := r.ReadString(protocol.MaxStringChars); got != "world" {
		t.Errorf("ReadString: got %q, want %q", got, "world")
	}
}

func TestStringTruncatesAtMaxSize(t *testing.T) {
	w := NewWriteMessage("test.dm3", protocol.Dm3)
	w.WriteString("abcdef", 4)

	r := NewReadMessage("test.dm3", w.Bytes(), protocol.Dm3)
	if got := r.ReadString(4); got != "abc" {
		t.Errorf("WriteString should truncate to maxSize-1 bytes: got %q, want %q", got, "abc")
	}
}

func TestDataBlockRoundTrip(t *testing.T) {
	w := NewWriteMessage("test.dm90", protocol.Dm90)
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	w.WriteData(data)

	r := NewReadMessage("test.dm90", w.Bytes(), protocol.Dm90)
	got := r.ReadData(len(data))
	if len(got) != len(data) {
		t.Fatalf("ReadData: got %d bytes, want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("ReadData[%d]: got %#x, want %#x", i, got[i], data[i])
		}
	}
}

func TestFileNameAndVersionAccessors(t *testing.T) {
	m := NewWriteMessage("somefile.dm66", protocol.Dm66)
	if m.FileName() != "somefile.dm66" {
		t.Errorf("FileName: got %q, want %q", m.FileName(), "somefile.dm66")
	}
	if m.Version() != protocol.Dm66 {
		t.Errorf("Version: got %v, want Dm66", m.Version())
	}
}

func TestResetRewindsCursor(t *testing.T) {
	m := NewWriteMessage("test.dm90", protocol.Dm90)
	m.WriteByte(1)
	m.WriteByte(2)
	m.Reset()
	m.WriteByte(9)

	r := NewReadMessage("test.dm90", m.Bytes(), protocol.Dm90)
	if got := r.ReadByte(); got != 9 {
		t.Errorf("after Reset, first write should be at offset 0: got %d, want 9", got)
	}
}
