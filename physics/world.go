package physics

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/witchwood/ai"
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/logger"
)

const (
	collisionTypeObstacle cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeWitch
	collisionTypeWitchTrigger
	collisionTypePickup
	collisionTypeZone
)

// Kind classifies a tracked pair.
type Kind uint8

const (
	// KindOverlap is a sensor volume intersecting a solid body.
	KindOverlap Kind = iota + 1
	// KindContact is two solid bodies touching.
	KindContact
)

func (k Kind) String() string {
	switch k {
	case KindOverlap:
		return "overlap"
	case KindContact:
		return "contact"
	default:
		return "none"
	}
}

// Pair is a tracked interaction between a sensor or solid owner and the
// player body that entered it.
type Pair struct {
	Owner ecs.Entity
	Other ecs.Entity
	Kind  Kind
}

type shapeInfo struct {
	entity ecs.Entity
	layer  ai.Layer
	ct     cp.CollisionType
}

// World owns the Chipmunk space used for perception sweeps and trigger
// bookkeeping. The plane is top-down so gravity is zero.
type World struct {
	space *cp.Space

	shapes  map[*cp.Shape]shapeInfo
	bodies  map[ecs.Entity]*cp.Body
	drives  map[ecs.Entity]drive
	owned   map[ecs.Entity][]*cp.Shape
	removed map[ecs.Entity][]*cp.Shape
	pairs   map[Pair]int

	log *logrus.Entry
}

func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	w := &World{
		space:   space,
		shapes:  make(map[*cp.Shape]shapeInfo),
		bodies:  make(map[ecs.Entity]*cp.Body),
		drives:  make(map[ecs.Entity]drive),
		owned:   make(map[ecs.Entity][]*cp.Shape),
		removed: make(map[ecs.Entity][]*cp.Shape),
		pairs:   make(map[Pair]int),
		log:     logger.For("physics"),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func filterFor(layer ai.Layer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES)
}

func (w *World) track(e ecs.Entity, shape *cp.Shape, layer ai.Layer, ct cp.CollisionType) {
	shape.SetFilter(filterFor(layer))
	shape.SetCollisionType(ct)
	w.space.AddShape(shape)
	w.shapes[shape] = shapeInfo{entity: e, layer: layer, ct: ct}
	w.owned[e] = append(w.owned[e], shape)
}

// AddObstacle adds a static box that blocks movement and sight.
func (w *World) AddObstacle(e ecs.Entity, r common.Rect) {
	bb := cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	w.track(e, shape, ai.LayerObstacle, collisionTypeObstacle)
}

// AddZone adds a static sensor box, e.g. an exit gate threshold.
func (w *World) AddZone(e ecs.Entity, r common.Rect) {
	bb := cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetSensor(true)
	w.track(e, shape, ai.LayerPickup, collisionTypeZone)
}

// playerMaxForce caps how hard the control joint can push the player. It
// must stay finite so contacts win against it.
const playerMaxForce = 1000

// drive is a kinematic control body pinned to a dynamic body. Velocity is
// set on the control body and the joint drags the dynamic body along.
type drive struct {
	control *cp.Body
	joint   *cp.Constraint
}

// AddPlayer adds the hunted body: a dynamic circle on the target layer,
// steered through a control body.
func (w *World) AddPlayer(e ecs.Entity, pos common.Vec2, radius float64) {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(toCP(pos))
	w.space.AddBody(body)
	w.bodies[e] = body

	control := w.space.AddBody(cp.NewKinematicBody())
	control.SetPosition(toCP(pos))
	joint := w.space.AddConstraint(cp.NewPivotJoint2(control, body, cp.Vector{}, cp.Vector{}))
	joint.SetMaxBias(0)
	joint.SetMaxForce(playerMaxForce)
	w.drives[e] = drive{control: control, joint: joint}

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	w.track(e, shape, ai.LayerTarget, collisionTypePlayer)
}

// AddWitch adds the agent body: a kinematic circle moved by the navigator
// and a larger sensor ring used as the overlap trigger.
func (w *World) AddWitch(e ecs.Entity, pos common.Vec2, radius, triggerRadius float64) {
	body := cp.NewKinematicBody()
	body.SetPosition(toCP(pos))
	w.space.AddBody(body)
	w.bodies[e] = body

	solid := cp.NewCircle(body, radius, cp.Vector{})
	w.track(e, solid, ai.LayerAgent, collisionTypeWitch)

	if triggerRadius > radius {
		trigger := cp.NewCircle(body, triggerRadius, cp.Vector{})
		trigger.SetSensor(true)
		w.track(e, trigger, ai.LayerAgent, collisionTypeWitchTrigger)
	}
}

// AddPickup adds a static sensor circle.
func (w *World) AddPickup(e ecs.Entity, pos common.Vec2, radius float64) {
	shape := cp.NewCircle(w.space.StaticBody, radius, toCP(pos))
	shape.SetSensor(true)
	w.track(e, shape, ai.LayerPickup, collisionTypePickup)
}

// Remove drops every shape and body owned by e, including disabled ones.
func (w *World) Remove(e ecs.Entity) {
	if w == nil {
		return
	}
	for _, shape := range w.owned[e] {
		w.space.RemoveShape(shape)
		delete(w.shapes, shape)
	}
	for _, shape := range w.removed[e] {
		delete(w.shapes, shape)
	}
	delete(w.owned, e)
	delete(w.removed, e)
	if d, ok := w.drives[e]; ok {
		w.space.RemoveConstraint(d.joint)
		w.space.RemoveBody(d.control)
		delete(w.drives, e)
	}
	if body, ok := w.bodies[e]; ok {
		w.space.RemoveBody(body)
		delete(w.bodies, e)
	}
	w.forget(e)
}

// SetEnabled takes e's shapes out of the space or puts them back. Used by
// gates that open and close.
func (w *World) SetEnabled(e ecs.Entity, enabled bool) {
	if w == nil {
		return
	}
	if enabled {
		for _, shape := range w.removed[e] {
			w.space.AddShape(shape)
			w.owned[e] = append(w.owned[e], shape)
		}
		delete(w.removed, e)
		return
	}
	for _, shape := range w.owned[e] {
		w.space.RemoveShape(shape)
		w.removed[e] = append(w.removed[e], shape)
	}
	delete(w.owned, e)
	w.forget(e)
}

func (w *World) forget(e ecs.Entity) {
	for p := range w.pairs {
		if p.Owner == e || p.Other == e {
			delete(w.pairs, p)
		}
	}
}

func (w *World) SetPosition(e ecs.Entity, p common.Vec2) {
	if body, ok := w.bodies[e]; ok {
		body.SetPosition(toCP(p))
	}
	if d, ok := w.drives[e]; ok {
		d.control.SetPosition(toCP(p))
	}
}

// SetVelocity steers e. Driven bodies get the velocity through their control
// body; others take it directly.
func (w *World) SetVelocity(e ecs.Entity, v common.Vec2) {
	if d, ok := w.drives[e]; ok {
		d.control.SetVelocityVector(toCP(v))
		return
	}
	if body, ok := w.bodies[e]; ok {
		body.SetVelocityVector(toCP(v))
	}
}

func (w *World) Position(e ecs.Entity) (common.Vec2, bool) {
	body, ok := w.bodies[e]
	if !ok {
		return common.Vec2{}, false
	}
	return fromCP(body.Position()), true
}

// Step advances the space by dt.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	// Control bodies pass through walls; snap them back so they never drift
	// away from what they steer.
	for e, d := range w.drives {
		if body, ok := w.bodies[e]; ok {
			d.control.SetPosition(body.Position())
		}
	}
	w.space.Step(dt)
}

// Sweep implements ai.Sensor. A zero radius is a thin ray; otherwise a circle
// of radius is swept along dir. Sensor shapes are never hit.
func (w *World) Sweep(origin, dir common.Vec2, radius, maxDist float64, mask ai.Layer) (ai.Hit, bool) {
	if w == nil || maxDist <= 0 {
		return ai.Hit{}, false
	}
	dir = dir.Normalize()
	if dir.IsZero() {
		return ai.Hit{}, false
	}
	end := origin.Add(dir.Scale(maxDist))
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
	info := w.space.SegmentQueryFirst(toCP(origin), toCP(end), radius, filter)
	if info.Shape == nil {
		return ai.Hit{}, false
	}
	meta, ok := w.shapes[info.Shape]
	if !ok {
		return ai.Hit{}, false
	}
	return ai.Hit{
		Layer:    meta.layer,
		Point:    fromCP(info.Point),
		Distance: info.Alpha * maxDist,
	}, true
}

// Pairs returns the interactions active after the last Step.
func (w *World) Pairs() []Pair {
	out := make([]Pair, 0, len(w.pairs))
	for p, n := range w.pairs {
		if n > 0 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Owner != out[j].Owner {
			return out[i].Owner < out[j].Owner
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Touching reports whether owner and other currently share a pair of kind.
func (w *World) Touching(owner, other ecs.Entity, kind Kind) bool {
	return w.pairs[Pair{Owner: owner, Other: other, Kind: kind}] > 0
}

// OverlapsOf lists the owners of sensor volumes other is inside.
func (w *World) OverlapsOf(other ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	for p, n := range w.pairs {
		if n > 0 && p.Other == other && p.Kind == KindOverlap {
			out = append(out, p.Owner)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func toCP(v common.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) common.Vec2 {
	return common.Vec2{X: v.X, Y: v.Y}
}
