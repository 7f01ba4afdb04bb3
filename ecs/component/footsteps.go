package component

// Footsteps emits a cue at a gait-dependent interval while the owner moves.
type Footsteps struct {
	WalkInterval float64
	RunInterval  float64
	Timer        float64
}

var FootstepsComponent = NewComponent[Footsteps]()
