package plugin

// Pipeline dispatches parser events to every registered Plugin in
// registration order. Plug-ins are referenced, not owned: the parser
// context that holds a Pipeline is responsible for their lifetime
// (spec.md §3 "Ownership/lifecycle").
type Pipeline struct {
	plugins []Plugin
}

// NewPipeline creates a Pipeline dispatching to the given plug-ins, in order.
func NewPipeline(plugins ...Plugin) *Pipeline {
	return &Pipeline{plugins: plugins}
}

// Register appends a plug-in to the pipeline.
func (p *Pipeline) Register(pl Plugin) { p.plugins = append(p.plugins, pl) }

// StartProcessingDemo fans out to every plug-in.
func (p *Pipeline) StartProcessingDemo(fileName string) {
	for _, pl := range p.plugins {
		pl.StartProcessingDemo(fileName)
	}
}

// FinishProcessingDemo fans out to every plug-in.
func (p *Pipeline) FinishProcessingDemo(fileName string, ok bool) {
	for _, pl := range p.plugins {
		pl.FinishProcessingDemo(fileName, ok)
	}
}

// Gamestate fans out to every plug-in.
func (p *Pipeline) Gamestate(ev *GamestateEvent) {
	for _, pl := range p.plugins {
		pl.ProcessGamestateMessage(ev)
	}
}

// Command fans out to every plug-in.
func (p *Pipeline) Command(ev *CommandEvent) {
	for _, pl := range p.plugins {
		pl.ProcessCommandMessage(ev)
	}
}

// Snapshot fans out to every plug-in.
func (p *Pipeline) Snapshot(ev *SnapshotEvent) {
	for _, pl := range p.plugins {
		pl.ProcessSnapshotMessage(ev)
	}
}
