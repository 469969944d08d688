package entity

import (
	"math"
	"testing"

	"github.com/gorep/qdemo/bitstream"
	"github.com/gorep/qdemo/protocol"
)

func TestWriteReadDeltaRoundTrip(t *testing.T) {
	table := EntityTable(protocol.Dm90)

	var old State
	old.Reset(protocol.Dm90)
	old.Number = 5
	old.Fields[0] = 100
	old.Fields[1] = 200

	var to State
	to.Reset(protocol.Dm90)
	to.Number = 5
	to.Fields[0] = 100 // unchanged
	to.Fields[1] = 250 // changed

	buf := bitstream.NewWriter(64)
	WriteDelta(buf, table, &old, &to, false)

	rbuf := bitstream.NewReader(buf.Bytes())
	var got State
	changed := ReadDelta(rbuf, table, &old, &got, 5)

	if !changed {
		t.Fatalf("expected changed=true for a delta with one differing field")
	}
	if got.Fields[0] != 100 {
		t.Errorf("Fields[0]: got %d, want 100 (unchanged field should carry forward from old)", got.Fields[0])
	}
	if got.Fields[1] != 250 {
		t.Errorf("Fields[1]: got %d, want 250", got.Fields[1])
	}
	if got.Number != 5 {
		t.Errorf("Number: got %d, want 5", got.Number)
	}
}

func TestWriteReadDeltaNoChange(t *testing.T) {
	table := EntityTable(protocol.Dm90)

	var old State
	old.Reset(protocol.Dm90)
	old.Number = 3
	old.Fields[0] = 42

	to := old

	buf := bitstream.NewWriter(32)
	WriteDelta(buf, table, &old, &to, false)

	rbuf := bitstream.NewReader(buf.Bytes())
	var got State
	changed := ReadDelta(rbuf, table, &old, &got, 3)

	if changed {
		t.Errorf("expected changed=false when nothing differs from old")
	}
	if got.Fields[0] != 42 {
		t.Errorf("Fields[0]: got %d, want 42", got.Fields[0])
	}
}

func TestWriteReadDeltaRemoval(t *testing.T) {
	table := EntityTable(protocol.Dm90)

	var old State
	old.Reset(protocol.Dm90)
	old.Number = 7

	var to State
	to.Reset(protocol.Dm90)
	to.Number = protocol.MaxGentities - 1

	buf := bitstream.NewWriter(16)
	WriteDelta(buf, table, &old, &to, false)

	rbuf := bitstream.NewReader(buf.Bytes())
	var got State
	changed := ReadDelta(rbuf, table, &old, &got, 7)

	if !changed {
		t.Errorf("removal should report changed=true")
	}
	if got.Number != protocol.MaxGentities-1 {
		t.Errorf("Number: got %d, want removal sentinel %d", got.Number, protocol.MaxGentities-1)
	}
}

func TestWriteReadDeltaAngleFieldsRoundTrip(t *testing.T) {
	table := EntityTable(protocol.Dm90)

	var old State
	old.Reset(protocol.Dm90)
	old.Number = 2

	var to State
	to.Reset(protocol.Dm90)
	to.Number = 2
	to.SetFloat(7, 181.5)  // apos.trBase1, KindAngle16
	to.SetFloat(8, -90.25) // apos.trBase0, KindAngle8

	buf := bitstream.NewWriter(64)
	WriteDelta(buf, table, &old, &to, false)

	rbuf := bitstream.NewReader(buf.Bytes())
	var got State
	changed := ReadDelta(rbuf, table, &old, &got, 2)
	if !changed {
		t.Fatalf("expected changed=true")
	}

	// Packed angles are lossy (8/16 bits of fixed point over 0-360), so
	// assert the decoded value is close rather than exactly equal. Decoded
	// angles lie in [0,360), so the comparison is modulo 360.
	const tolerance16 = 360.0 / (1 << 16)
	const tolerance8 = 360.0 / (1 << 8)
	if diff := angleDiff(got.Float(7), 181.5); diff > tolerance16 {
		t.Errorf("apos.trBase1 (16-bit angle): got %v, want ~181.5 (diff %v > tolerance %v)", got.Float(7), diff, tolerance16)
	}
	if diff := angleDiff(got.Float(8), -90.25); diff > tolerance8 {
		t.Errorf("apos.trBase0 (8-bit angle): got %v, want ~-90.25 (diff %v > tolerance %v)", got.Float(8), diff, tolerance8)
	}
}

// angleDiff returns the distance between two angles in degrees, modulo 360.
func angleDiff(got, want float32) float64 {
	d := math.Mod(math.Abs(float64(got)-float64(want)), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func TestWriteDeltaForceEmitsFullState(t *testing.T) {
	table := EntityTable(protocol.Dm90)

	var zero State
	zero.Reset(protocol.Dm90)

	var to State
	to.Reset(protocol.Dm90)
	to.Number = 1
	to.Fields[0] = 9

	buf := bitstream.NewWriter(64)
	WriteDelta(buf, table, &zero, &to, true)

	rbuf := bitstream.NewReader(buf.Bytes())
	var got State
	changed := ReadDelta(rbuf, table, &zero, &got, 1)
	if !changed {
		t.Errorf("forced baseline write should decode as changed")
	}
	if got.Fields[0] != 9 {
		t.Errorf("Fields[0]: got %d, want 9", got.Fields[0])
	}
}
