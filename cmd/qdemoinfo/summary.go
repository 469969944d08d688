package main

import (
	"strings"

	"github.com/gorep/qdemo/entity"
	"github.com/gorep/qdemo/plugin"
)

// chatMarker and fragMarker are the substrings a command string must contain
// to be classified as chat or an obituary in the summary.
const (
	chatMarker = "chat"
	fragMarker = "obituary"
)

// summaryPlugin collects the counts and event log a CLI summary prints; it
// never mutates parser state, per plugin.Plugin's contract.
type summaryPlugin struct {
	plugin.Base

	GameStates   int           `json:"gameStates"`
	Snapshots    int           `json:"snapshots"`
	Commands     []string      `json:"commands,omitempty"`
	ChatLines    []string      `json:"chatLines,omitempty"`
	Frags        []string      `json:"frags,omitempty"`
	EntitiesSeen map[int32]int `json:"-"`
	PlayerState  entity.PlayerState `json:"lastPlayerState"`
}

func (s *summaryPlugin) ProcessGamestateMessage(ev *plugin.GamestateEvent) {
	s.GameStates++
}

func (s *summaryPlugin) ProcessCommandMessage(ev *plugin.CommandEvent) {
	s.Commands = append(s.Commands, ev.Command)
	switch {
	case strings.Contains(ev.Command, chatMarker):
		s.ChatLines = append(s.ChatLines, ev.Command)
	case strings.Contains(ev.Command, fragMarker):
		s.Frags = append(s.Frags, ev.Command)
	}
}

func (s *summaryPlugin) ProcessSnapshotMessage(ev *plugin.SnapshotEvent) {
	s.Snapshots++
	s.PlayerState = ev.PlayerState
}
