package cutwriter

import (
	"encoding/binary"
	"io"
)

// writeFrame writes one framed message: a 4-byte little-endian sequence
// number, a 4-byte little-endian length, then the raw bytes (spec.md §4.8:
// "sequence, then length, then the raw bytes").
func writeFrame(w io.Writer, seq int32, payload []byte) error {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(seq))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// writeTerminator writes the sentinel frame that marks the end of a cut
// output (spec.md §4.8: "a final -1, -1 sequence/length pair, with no
// payload, terminates the stream").
func writeTerminator(w io.Writer) error {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], 0xFFFFFFFF) // -1 as int32
	binary.LittleEndian.PutUint32(hdr[4:8], 0xFFFFFFFF)
	_, err := w.Write(hdr[:])
	return err
}
