package component

import "github.com/milk9111/witchwood/ai"

// WitchBrain holds the pursuit/patrol controller driving a witch.
type WitchBrain struct {
	Controller *ai.Controller
}

var WitchBrainComponent = NewComponent[WitchBrain]()
