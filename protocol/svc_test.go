package protocol

import "testing"

func TestSvcByIDKnown(t *testing.T) {
	cases := []struct {
		id   byte
		name string
	}{
		{SvcIDBad, "bad"},
		{SvcIDGamestate, "gamestate"},
		{SvcIDSnapshot, "snapshot"},
		{SvcIDEOF, "EOF"},
	}
	for _, c := range cases {
		s := SvcByID(c.id)
		if s.Name != c.name {
			t.Errorf("SvcByID(%d).Name: got %q, want %q", c.id, s.Name, c.name)
		}
		if s.ID != c.id {
			t.Errorf("SvcByID(%d).ID: got %d, want %d", c.id, s.ID, c.id)
		}
	}
}

func TestSvcByIDUnknown(t *testing.T) {
	s := SvcByID(99)
	if s.ID != 99 {
		t.Errorf("SvcByID(99).ID: got %d, want 99", s.ID)
	}
	if s.Name == "" {
		t.Errorf("SvcByID(99).Name should describe the unknown ID, got empty string")
	}
}
