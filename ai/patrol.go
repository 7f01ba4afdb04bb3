package ai

import (
	"math"
	"math/rand"

	"github.com/milk9111/witchwood/common"
)

// Wanderer picks random reachable patrol destinations once the agent has
// arrived and the cooldown has elapsed.
type Wanderer struct {
	Radius   float64
	MinDist  float64
	Cooldown float64

	timer float64
	rng   *rand.Rand
}

// NewWanderer returns a planner whose timer starts primed, so the first
// decision can happen on the first eligible tick.
func NewWanderer(radius, minDist, cooldown float64, rng *rand.Rand) *Wanderer {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Wanderer{
		Radius:   radius,
		MinDist:  minDist,
		Cooldown: cooldown,
		timer:    cooldown,
		rng:      rng,
	}
}

func (w *Wanderer) Timer() float64 {
	return w.timer
}

// Arrived reports whether the movement backend has settled at its destination.
func Arrived(pathPending bool, remaining, stopping float64) bool {
	return !pathPending && remaining <= stopping
}

// MaybeAdvance accumulates dt and returns a new destination when no path is
// pending, the agent has arrived and the cooldown has elapsed. Candidates
// that cannot be projected or lack a complete path are dropped and retried on
// the next eligible tick.
func (w *Wanderer) MaybeAdvance(dt float64, pos common.Vec2, pathPending bool, remaining, stopping float64, nav NavQuery) (common.Vec2, bool) {
	w.timer += dt
	if !Arrived(pathPending, remaining, stopping) || w.timer < w.Cooldown {
		return common.Vec2{}, false
	}
	if nav == nil {
		return common.Vec2{}, false
	}

	dest, ok := nav.SamplePosition(w.sample(pos), w.Radius)
	if !ok || !nav.PathComplete(dest) {
		return common.Vec2{}, false
	}

	w.timer = 0
	return dest, true
}

// sample draws a point uniformly over the annulus [MinDist, Radius] around origin.
func (w *Wanderer) sample(origin common.Vec2) common.Vec2 {
	inner, outer := w.MinDist, w.Radius
	var r float64
	if outer <= inner {
		r = outer
	} else {
		u := w.rng.Float64()
		r = math.Sqrt(u*(outer*outer-inner*inner) + inner*inner)
	}
	theta := w.rng.Float64() * 2 * math.Pi
	return origin.Add(common.V(math.Cos(theta)*r, math.Sin(theta)*r))
}
