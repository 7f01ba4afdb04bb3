package ai

import "github.com/milk9111/witchwood/common"

// exhaustedEpsilon absorbs float residue left by repeated dt subtraction.
const exhaustedEpsilon = 1e-9

// PursuitMemory lets the agent keep chasing the last known target position
// for Delay seconds after losing sight.
type PursuitMemory struct {
	Delay float64

	remaining float64
	lastKnown common.Vec2
	known     bool
}

func NewPursuitMemory(delay float64) PursuitMemory {
	return PursuitMemory{Delay: delay}
}

// Remember records the most recent perceived target position.
func (m *PursuitMemory) Remember(p common.Vec2) {
	m.lastKnown = p
	m.known = true
}

// Tick advances the countdown. A perceived tick resets it to Delay. Otherwise
// a countdown that was above zero before the tick is reduced by dt and the
// tick still counts as pursuing.
func (m *PursuitMemory) Tick(dt float64, perceived bool) bool {
	if perceived {
		m.remaining = m.Delay
		return true
	}
	if m.remaining <= 0 {
		return false
	}
	m.remaining -= dt
	if m.remaining < exhaustedEpsilon {
		m.remaining = 0
	}
	return true
}

func (m *PursuitMemory) Remaining() float64 {
	return m.remaining
}

func (m *PursuitMemory) Active() bool {
	return m.remaining > 0
}

// LastKnown returns the last perceived target position, if any.
func (m *PursuitMemory) LastKnown() (common.Vec2, bool) {
	return m.lastKnown, m.known
}

// Forget clears the countdown and the stored position.
func (m *PursuitMemory) Forget() {
	m.remaining = 0
	m.known = false
	m.lastKnown = common.Vec2{}
}
