package protocol

import "testing"

func TestVersionOrdering(t *testing.T) {
	cases := []struct {
		name       string
		a, b       *Version
		atMost     bool
		atLeast    bool
		before     bool
	}{
		{"Dm3 vs Dm90", Dm3, Dm90, true, false, true},
		{"Dm90 vs Dm3", Dm90, Dm3, false, true, false},
		{"Dm66 vs Dm66", Dm66, Dm66, true, true, false},
	}
	for _, c := range cases {
		if got := c.a.AtMost(c.b); got != c.atMost {
			t.Errorf("%s: AtMost: got %v, want %v", c.name, got, c.atMost)
		}
		if got := c.a.AtLeast(c.b); got != c.atLeast {
			t.Errorf("%s: AtLeast: got %v, want %v", c.name, got, c.atLeast)
		}
		if got := c.a.Before(c.b); got != c.before {
			t.Errorf("%s: Before: got %v, want %v", c.name, got, c.before)
		}
	}
}

func TestHuffmanCoded(t *testing.T) {
	cases := []struct {
		v    *Version
		want bool
	}{
		{Dm3, false},
		{Dm48, false},
		{Dm66, true},
		{Dm68, true},
		{Dm73, true},
		{Dm90, true},
	}
	for _, c := range cases {
		if got := c.v.HuffmanCoded(); got != c.want {
			t.Errorf("%s.HuffmanCoded(): got %v, want %v", c.v.Name, got, c.want)
		}
	}
}

func TestExtensionVersion(t *testing.T) {
	cases := []struct {
		ext     string
		want    *Version
		wantOK  bool
	}{
		{"dm3", Dm3, true},
		{".dm3", Dm3, true},
		{"dm_48", Dm48, true},
		{"dm90", Dm90, true},
		{"unknown", nil, false},
	}
	for _, c := range cases {
		got, ok := ExtensionVersion(c.ext)
		if ok != c.wantOK {
			t.Errorf("ExtensionVersion(%q) ok: got %v, want %v", c.ext, ok, c.wantOK)
			continue
		}
		if ok && got != c.want {
			t.Errorf("ExtensionVersion(%q): got %v, want %v", c.ext, got, c.want)
		}
	}
}

func TestVersionStringHandlesNil(t *testing.T) {
	var v *Version
	if got := v.String(); got != "Unknown" {
		t.Errorf("nil Version.String(): got %q, want %q", got, "Unknown")
	}
}
