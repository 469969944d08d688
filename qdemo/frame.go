package qdemo

import "encoding/binary"

// readFrames walks data's input framing (spec.md §6: "4 bytes
// messageSequence then 4 bytes length; payload of length bytes follows;
// EOF when length == -1") and calls fn for each payload in order. It
// returns early (without error) if fn returns false.
func readFrames(data []byte, fn func(offset int64, payload []byte) bool) {
	pos := 0
	for pos+8 <= len(data) {
		offset := int64(pos)
		length := int32(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		pos += 8
		if length == -1 {
			return
		}
		if length < 0 || pos+int(length) > len(data) {
			return
		}
		payload := data[pos : pos+int(length)]
		pos += int(length)
		if !fn(offset, payload) {
			return
		}
	}
}
