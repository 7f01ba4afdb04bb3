package ai

import (
	"fmt"

	"github.com/milk9111/witchwood/common"
)

// State is the witch's top-level behaviour. Exactly one is active at a time.
type State uint8

const (
	StateIdle State = iota
	StatePatrol
	StatePursue
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePatrol:
		return "patrol"
	case StatePursue:
		return "pursue"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Layer classifies geometry for perception queries.
type Layer uint32

const (
	LayerObstacle Layer = 1 << iota
	LayerTarget
	LayerAgent
	LayerPickup
)

// Has reports whether l shares any bit with o.
func (l Layer) Has(o Layer) bool {
	return l&o != 0
}

// Pose is the agent's position and facing on the ground plane.
type Pose struct {
	Position common.Vec2
	Forward  common.Vec2
}

// Hit is the first shape struck by a sweep.
type Hit struct {
	Layer    Layer
	Point    common.Vec2
	Distance float64
}

// Sensor answers sweep queries against classified geometry. A radius of zero
// is a thin ray; a positive radius sweeps a circle along dir.
type Sensor interface {
	Sweep(origin, dir common.Vec2, radius, maxDist float64, mask Layer) (Hit, bool)
}

// NavQuery is the read side of the navigation backend used by the wander planner.
type NavQuery interface {
	// SamplePosition projects p onto the navigable surface within maxDist.
	SamplePosition(p common.Vec2, maxDist float64) (common.Vec2, bool)
	// PathComplete reports whether a full path exists from the agent to dest.
	PathComplete(dest common.Vec2) bool
}

// Navigator is the movement backend that owns the agent's pose.
type Navigator interface {
	NavQuery
	Position() common.Vec2
	Forward() common.Vec2
	SetDestination(p common.Vec2) bool
	ResetPath()
	SetSpeed(speed float64)
	PathPending() bool
	RemainingDistance() float64
	StoppingDistance() float64
}

// Target is the hunted entity. It is queried, never owned.
type Target interface {
	Position() common.Vec2
}

// Health receives contact damage.
type Health interface {
	TakeDamage(amount int)
	Alive() bool
}

// CueListener is notified of real state transitions only.
type CueListener interface {
	StateChanged(from, to State)
}

// CueFunc adapts a function to CueListener.
type CueFunc func(from, to State)

func (f CueFunc) StateChanged(from, to State) {
	f(from, to)
}
