package plugin

import "testing"

// recordingPlugin records every call it receives, in order, for asserting
// fan-out order and argument wiring.
type recordingPlugin struct {
	Base
	calls []string
}

func (r *recordingPlugin) StartProcessingDemo(fileName string) {
	r.calls = append(r.calls, "start:"+fileName)
}

func (r *recordingPlugin) FinishProcessingDemo(fileName string, ok bool) {
	suffix := "false"
	if ok {
		suffix = "true"
	}
	r.calls = append(r.calls, "finish:"+fileName+":"+suffix)
}

func (r *recordingPlugin) ProcessGamestateMessage(ev *GamestateEvent) {
	r.calls = append(r.calls, "gamestate")
}

func (r *recordingPlugin) ProcessCommandMessage(ev *CommandEvent) {
	r.calls = append(r.calls, "command:"+ev.Command)
}

func (r *recordingPlugin) ProcessSnapshotMessage(ev *SnapshotEvent) {
	r.calls = append(r.calls, "snapshot")
}

func TestPipelineDispatchesInRegistrationOrder(t *testing.T) {
	first := &recordingPlugin{}
	second := &recordingPlugin{}

	p := NewPipeline(first, second)
	p.StartProcessingDemo("demo.dm90")
	p.Gamestate(&GamestateEvent{GameStateIndex: 1})
	p.Command(&CommandEvent{Command: "say hi"})
	p.Snapshot(&SnapshotEvent{MessageNum: 5})
	p.FinishProcessingDemo("demo.dm90", true)

	want := []string{"start:demo.dm90", "gamestate", "command:say hi", "snapshot", "finish:demo.dm90:true"}
	for _, got := range [][]string{first.calls, second.calls} {
		if len(got) != len(want) {
			t.Fatalf("got %d calls, want %d: %v", len(got), len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("call %d: got %q, want %q", i, got[i], want[i])
			}
		}
	}
}

func TestPipelineRegisterAppends(t *testing.T) {
	p := NewPipeline()
	first := &recordingPlugin{}
	p.Register(first)
	p.StartProcessingDemo("demo.dm3")

	if len(first.calls) != 1 || first.calls[0] != "start:demo.dm3" {
		t.Errorf("Register did not wire the plug-in into the pipeline: %v", first.calls)
	}

	second := &recordingPlugin{}
	p.Register(second)
	p.FinishProcessingDemo("demo.dm3", false)

	if len(first.calls) != 2 {
		t.Errorf("previously registered plug-in should still receive events after a later Register")
	}
	if len(second.calls) != 1 || second.calls[0] != "finish:demo.dm3:false" {
		t.Errorf("newly registered plug-in did not receive the event: %v", second.calls)
	}
}

func TestPipelineWithNoPluginsDoesNotPanic(t *testing.T) {
	p := NewPipeline()
	p.StartProcessingDemo("x")
	p.Gamestate(&GamestateEvent{})
	p.Command(&CommandEvent{})
	p.Snapshot(&SnapshotEvent{})
	p.FinishProcessingDemo("x", true)
}
