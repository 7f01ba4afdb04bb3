package ai

import (
	"math"

	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/logger"
)

func init() {
	logger.Silence()
}

type fakeBody struct {
	center common.Vec2
	radius float64
	layer  Layer
}

// fakeSensor sweeps circles against a list of circular bodies.
type fakeSensor struct {
	bodies []fakeBody
}

func (s *fakeSensor) Sweep(origin, dir common.Vec2, radius, maxDist float64, mask Layer) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, b := range s.bodies {
		if !b.layer.Has(mask) {
			continue
		}
		r := b.radius + radius
		f := origin.Sub(b.center)
		bb := f.Dot(dir)
		cc := f.Dot(f) - r*r
		var t float64
		if cc > 0 {
			disc := bb*bb - cc
			if disc < 0 {
				continue
			}
			t = -bb - math.Sqrt(disc)
			if t < 0 {
				continue
			}
		}
		if t > maxDist || t >= best.Distance {
			continue
		}
		best = Hit{Layer: b.layer, Point: origin.Add(dir.Scale(t)), Distance: t}
		found = true
	}
	return best, found
}

type fakeTarget struct {
	pos common.Vec2
}

func (t *fakeTarget) Position() common.Vec2 { return t.pos }

type fakeHealth struct {
	hp    int
	taken []int
}

func (h *fakeHealth) TakeDamage(amount int) {
	h.hp -= amount
	h.taken = append(h.taken, amount)
}

func (h *fakeHealth) Alive() bool { return h.hp > 0 }

type fakeNav struct {
	pos       common.Vec2
	forward   common.Vec2
	dest      common.Vec2
	speed     float64
	pending   bool
	remaining float64
	stopping  float64

	sampleOK   bool
	completeOK bool

	destinations []common.Vec2
	resets       int
}

func newFakeNav() *fakeNav {
	return &fakeNav{
		forward:    common.V(1, 0),
		stopping:   0.5,
		sampleOK:   true,
		completeOK: true,
	}
}

func (n *fakeNav) Position() common.Vec2 { return n.pos }
func (n *fakeNav) Forward() common.Vec2  { return n.forward }

func (n *fakeNav) SetDestination(p common.Vec2) bool {
	n.dest = p
	n.destinations = append(n.destinations, p)
	return true
}

func (n *fakeNav) ResetPath() {
	n.resets++
	n.remaining = 0
	n.pending = false
}

func (n *fakeNav) SetSpeed(speed float64)     { n.speed = speed }
func (n *fakeNav) PathPending() bool          { return n.pending }
func (n *fakeNav) RemainingDistance() float64 { return n.remaining }
func (n *fakeNav) StoppingDistance() float64  { return n.stopping }

func (n *fakeNav) SamplePosition(p common.Vec2, maxDist float64) (common.Vec2, bool) {
	return p, n.sampleOK
}

func (n *fakeNav) PathComplete(dest common.Vec2) bool { return n.completeOK }

// targetSensor returns a sensor with the target body at pos and the given obstacles.
func targetSensor(target *fakeTarget, obstacles ...fakeBody) *trackingSensor {
	return &trackingSensor{target: target, obstacles: obstacles}
}

// trackingSensor keeps the target body in sync with a moving fakeTarget.
type trackingSensor struct {
	target    *fakeTarget
	obstacles []fakeBody
}

func (s *trackingSensor) Sweep(origin, dir common.Vec2, radius, maxDist float64, mask Layer) (Hit, bool) {
	bodies := append([]fakeBody{{center: s.target.pos, radius: 0.5, layer: LayerTarget}}, s.obstacles...)
	fs := fakeSensor{bodies: bodies}
	return fs.Sweep(origin, dir, radius, maxDist, mask)
}
