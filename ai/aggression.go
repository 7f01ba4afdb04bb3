package ai

import "sync"

// Escalation is the per-unit increment applied by Aggression.Increase.
type Escalation struct {
	Level float64 `yaml:"level"`
	Run   float64 `yaml:"run"`
	Walk  float64 `yaml:"walk"`
}

func DefaultEscalation() Escalation {
	return Escalation{Level: 0.5, Run: 0.5, Walk: 0.2}
}

// Aggression tracks the escalating difficulty scalar and the movement speeds
// it drives. Increase may be called from outside the simulation tick.
type Aggression struct {
	mu     sync.Mutex
	level  float64
	walk   float64
	run    float64
	step   Escalation
	raises int
}

func NewAggression(walk, run float64, step Escalation) *Aggression {
	return &Aggression{level: 1, walk: walk, run: run, step: step}
}

// Increase applies one escalation step. Call once per collected unit.
func (a *Aggression) Increase() {
	a.mu.Lock()
	a.level += a.step.Level
	a.run += a.step.Run
	a.walk += a.step.Walk
	a.raises++
	a.mu.Unlock()
}

func (a *Aggression) Speeds() (walk, run float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.walk, a.run
}

func (a *Aggression) Level() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.level
}

// Raises is the number of Increase calls so far.
func (a *Aggression) Raises() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.raises
}

// rebase recomputes speeds from new base values plus the escalation applied
// so far. Speeds never drop below their current values; it reports whether
// either one was held up by that floor.
func (a *Aggression) rebase(walk, run float64, step Escalation) (clamped bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.step = step
	n := float64(a.raises)
	nextWalk := walk + n*step.Walk
	nextRun := run + n*step.Run
	if nextWalk < a.walk {
		nextWalk, clamped = a.walk, true
	}
	if nextRun < a.run {
		nextRun, clamped = a.run, true
	}
	a.walk, a.run = nextWalk, nextRun
	return clamped
}
