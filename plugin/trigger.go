// This file implements the two concrete cut-trigger plug-ins named in
// SPEC_FULL.md §4.10: obituary/frag extraction and chat extraction.
// Grounded on original_source/UDT_DLL/src/analysis_cut_by_frag.cpp's and the
// analogous chat analyzer's role of watching svc_serverCommand text and
// producing cut trigger points; neither computes statistics or writes JSON
// (that stays out of scope per spec.md §1).
package plugin

// Trigger is one point in the stream a cut-trigger plug-in decided is
// interesting: the gamestate it occurred in and its server time.
type Trigger struct {
	GameStateIndex int
	ServerTimeMs   int32
}

// ObituaryPlugin records a Trigger for every command matching Match,
// intended for "kill feed" / frag server commands.
type ObituaryPlugin struct {
	Base

	// Match reports whether a server command line is an obituary line worth
	// cutting around. A nil Match never matches.
	Match func(command string) bool

	Triggers []Trigger

	gameStateIndex int
	serverTime     int32
}

// NewObituaryPlugin creates an ObituaryPlugin using match to recognize
// obituary/frag command text.
func NewObituaryPlugin(match func(string) bool) *ObituaryPlugin {
	return &ObituaryPlugin{Match: match}
}

func (o *ObituaryPlugin) ProcessGamestateMessage(ev *GamestateEvent) {
	o.gameStateIndex = ev.GameStateIndex
}

func (o *ObituaryPlugin) ProcessCommandMessage(ev *CommandEvent) {
	o.serverTime = ev.ServerTime
	if o.Match != nil && o.Match(ev.Command) {
		o.Triggers = append(o.Triggers, Trigger{GameStateIndex: o.gameStateIndex, ServerTimeMs: ev.ServerTime})
	}
}

var _ Plugin = (*ObituaryPlugin)(nil)

// ChatPlugin records a Trigger for every command matching Match, intended
// for chat server commands.
type ChatPlugin struct {
	Base

	Match func(command string) bool

	Triggers []Trigger

	gameStateIndex int
}

// NewChatPlugin creates a ChatPlugin using match to recognize chat command
// text.
func NewChatPlugin(match func(string) bool) *ChatPlugin {
	return &ChatPlugin{Match: match}
}

func (c *ChatPlugin) ProcessGamestateMessage(ev *GamestateEvent) {
	c.gameStateIndex = ev.GameStateIndex
}

func (c *ChatPlugin) ProcessCommandMessage(ev *CommandEvent) {
	if c.Match != nil && c.Match(ev.Command) {
		c.Triggers = append(c.Triggers, Trigger{GameStateIndex: c.gameStateIndex, ServerTimeMs: ev.ServerTime})
	}
}

var _ Plugin = (*ChatPlugin)(nil)
