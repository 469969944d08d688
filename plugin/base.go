package plugin

// Base is embeddable by plug-ins that only care about a subset of the
// Plugin hooks; embedding it satisfies the interface with no-ops for the
// rest.
type Base struct{}

func (Base) StartProcessingDemo(fileName string)          {}
func (Base) FinishProcessingDemo(fileName string, ok bool) {}
func (Base) ProcessGamestateMessage(ev *GamestateEvent)   {}
func (Base) ProcessCommandMessage(ev *CommandEvent)       {}
func (Base) ProcessSnapshotMessage(ev *SnapshotEvent)     {}

var _ Plugin = Base{}
