package qdemo

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func frame(seq int32, payload []byte) []byte {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(seq))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(payload)))
	return append(hdr[:], payload...)
}

func terminator() []byte {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], 0xFFFFFFFF) // -1 as int32
	binary.LittleEndian.PutUint32(hdr[4:8], 0xFFFFFFFF)
	return hdr[:]
}

func TestReadFramesYieldsEachPayloadInOrder(t *testing.T) {
	var data []byte
	data = append(data, frame(0, []byte("one"))...)
	data = append(data, frame(1, []byte("two"))...)
	data = append(data, terminator()...)

	var got [][]byte
	readFrames(data, func(offset int64, payload []byte) bool {
		got = append(got, append([]byte(nil), payload...))
		return true
	})

	want := [][]byte{[]byte("one"), []byte("two")}
	if len(got) != len(want) {
		t.Fatalf("got %d payloads, want %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("payload %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadFramesStopsOnFalse(t *testing.T) {
	var data []byte
	data = append(data, frame(0, []byte("one"))...)
	data = append(data, frame(1, []byte("two"))...)
	data = append(data, terminator()...)

	count := 0
	readFrames(data, func(offset int64, payload []byte) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("callback returning false should stop iteration: got %d calls, want 1", count)
	}
}

func TestReadFramesTruncatedLength(t *testing.T) {
	data := frame(0, []byte("hello"))
	data = data[:len(data)-2] // truncate the payload

	calls := 0
	readFrames(data, func(offset int64, payload []byte) bool {
		calls++
		return true
	})
	if calls != 0 {
		t.Errorf("a frame whose declared length exceeds the remaining data should be skipped, got %d calls", calls)
	}
}
