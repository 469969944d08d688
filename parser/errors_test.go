package parser

import (
	"errors"
	"testing"
)

func TestKindClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want errKind
	}{
		{"fatal", fatalf(ErrDesync), errKindFatal},
		{"fatal nil defaults to ErrDesync", fatalf(nil), errKindFatal},
		{"warning", warningf(ErrMissingDeltaBase), errKindWarning},
		{"silent", silentf(ErrDuplicateCommand), errKindSilent},
		{"unclassified defaults to fatal", errors.New("boom"), errKindFatal},
		{"nil defaults to fatal", nil, errKindFatal},
	}
	for _, c := range cases {
		if got := Kind(c.err); got != c.want {
			t.Errorf("%s: Kind() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestKindErrorUnwraps(t *testing.T) {
	err := warningf(ErrMissingDeltaBase)
	if !errors.Is(err, ErrMissingDeltaBase) {
		t.Errorf("warningf(ErrMissingDeltaBase) should unwrap to ErrMissingDeltaBase via errors.Is")
	}
}
