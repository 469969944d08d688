package parser

import "testing"

func TestBigConfigStringAssembly(t *testing.T) {
	var s bcsState

	s.begin(5, `a\b\`)
	if !s.append(5, `c\d\`) {
		t.Fatalf("append to matching index should succeed")
	}
	value, ok := s.finish(5, `e\f`)
	if !ok {
		t.Fatalf("finish on matching index should succeed")
	}

	want := `a\b\c\d\e\f`
	if value != want {
		t.Errorf("assembled value: got %q, want %q", value, want)
	}
}

func TestBigConfigStringMismatchedIndex(t *testing.T) {
	var s bcsState
	s.begin(1, "a")
	if s.append(2, "b") {
		t.Errorf("append with a mismatched index should fail")
	}
	if _, ok := s.finish(2, "c"); ok {
		t.Errorf("finish with a mismatched index should fail")
	}
}

func TestBigConfigStringFinishResets(t *testing.T) {
	var s bcsState
	s.begin(1, "a")
	s.finish(1, "b")

	if s.assembling {
		t.Errorf("finish should reset accumulator to Idle")
	}
	// A finish() with nothing assembling must fail, not resurrect stale state.
	if _, ok := s.finish(1, "c"); ok {
		t.Errorf("finish() on an Idle accumulator should fail")
	}
}
