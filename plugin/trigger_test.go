package plugin

import (
	"strings"
	"testing"
)

func TestObituaryPluginRecordsMatchingCommands(t *testing.T) {
	p := NewObituaryPlugin(func(cmd string) bool { return strings.Contains(cmd, "was killed") })

	p.ProcessGamestateMessage(&GamestateEvent{GameStateIndex: 2})
	p.ProcessCommandMessage(&CommandEvent{ServerTime: 100, Command: "say hi"})
	p.ProcessCommandMessage(&CommandEvent{ServerTime: 200, Command: "Player was killed by Rocket"})
	p.ProcessGamestateMessage(&GamestateEvent{GameStateIndex: 3})
	p.ProcessCommandMessage(&CommandEvent{ServerTime: 300, Command: "Other was killed by Gauntlet"})

	if len(p.Triggers) != 2 {
		t.Fatalf("got %d triggers, want 2: %+v", len(p.Triggers), p.Triggers)
	}
	if p.Triggers[0] != (Trigger{GameStateIndex: 2, ServerTimeMs: 200}) {
		t.Errorf("Triggers[0] = %+v, want GameStateIndex=2 ServerTimeMs=200", p.Triggers[0])
	}
	if p.Triggers[1] != (Trigger{GameStateIndex: 3, ServerTimeMs: 300}) {
		t.Errorf("Triggers[1] = %+v, want GameStateIndex=3 ServerTimeMs=300", p.Triggers[1])
	}
}

func TestObituaryPluginNilMatchNeverFires(t *testing.T) {
	p := NewObituaryPlugin(nil)
	p.ProcessCommandMessage(&CommandEvent{Command: "Player was killed by Rocket"})
	if len(p.Triggers) != 0 {
		t.Errorf("nil Match should never record a trigger, got %+v", p.Triggers)
	}
}

func TestChatPluginRecordsMatchingCommands(t *testing.T) {
	p := NewChatPlugin(func(cmd string) bool { return strings.HasPrefix(cmd, "chat ") })

	p.ProcessGamestateMessage(&GamestateEvent{GameStateIndex: 1})
	p.ProcessCommandMessage(&CommandEvent{ServerTime: 10, Command: "chat hello"})
	p.ProcessCommandMessage(&CommandEvent{ServerTime: 20, Command: "print something"})

	if len(p.Triggers) != 1 {
		t.Fatalf("got %d triggers, want 1: %+v", len(p.Triggers), p.Triggers)
	}
	if p.Triggers[0] != (Trigger{GameStateIndex: 1, ServerTimeMs: 10}) {
		t.Errorf("Triggers[0] = %+v, want GameStateIndex=1 ServerTimeMs=10", p.Triggers[0])
	}
}

func TestObituaryAndChatPluginsSatisfyPluginInterface(t *testing.T) {
	var _ Plugin = NewObituaryPlugin(nil)
	var _ Plugin = NewChatPlugin(nil)
}
