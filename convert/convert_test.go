package convert

import (
	"testing"

	"github.com/gorep/qdemo/arena"
	"github.com/gorep/qdemo/entity"
	"github.com/gorep/qdemo/protocol"
)

func TestIdentityCopiesStateVerbatim(t *testing.T) {
	c := Identity(protocol.Dm90)
	if c.From() != protocol.Dm90 || c.To() != protocol.Dm90 {
		t.Fatalf("Identity(v).From()/To() should both be v")
	}

	var in entity.State
	in.Reset(protocol.Dm90)
	in.Number = 11
	in.Fields[0] = 42

	var out entity.State
	c.ConvertEntityState(&out, &in)
	if out != in {
		t.Errorf("Identity.ConvertEntityState should copy state verbatim: got %+v, want %+v", out, in)
	}
}

func TestIdentityConfigStringPassesThrough(t *testing.T) {
	c := Identity(protocol.Dm3)
	a := arena.New()

	var out ConfigString
	c.ConvertConfigString(&out, a, 2, []byte("value"))
	if out.Index != 2 || string(out.String) != "value" || out.NewString {
		t.Errorf("ConvertConfigString: got %+v", out)
	}
}
