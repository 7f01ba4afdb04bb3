package system

import (
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
	"github.com/milk9111/witchwood/physics"
)

// PhysicsSystem registers colliders, pushes kinematic poses into the space,
// steps it and copies dynamic bodies back into their transforms.
type PhysicsSystem struct {
	space   *physics.World
	tracked map[ecs.Entity]component.BodyKind
}

func NewPhysicsSystem(space *physics.World) *PhysicsSystem {
	return &PhysicsSystem{
		space:   space,
		tracked: make(map[ecs.Entity]component.BodyKind),
	}
}

func (ps *PhysicsSystem) Space() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.space == nil || w == nil {
		return
	}

	ps.pruneDead(w)
	ps.syncEntities(w)
	ps.space.Step(w.Delta())
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) pruneDead(w *ecs.World) {
	for e := range ps.tracked {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.space.Remove(e)
		delete(ps.tracked, e)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if !body.Registered {
			if !ps.register(e, body, t) {
				return
			}
			body.Registered = true
			ps.tracked[e] = body.Kind
		}

		if body.Kind == component.BodyWitch && t != nil {
			ps.space.SetPosition(e, t.Position)
		}
	})
}

func (ps *PhysicsSystem) register(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) bool {
	switch body.Kind {
	case component.BodyObstacle:
		ps.space.AddObstacle(e, body.Rect)
	case component.BodyZone:
		ps.space.AddZone(e, body.Rect)
	case component.BodyPlayer:
		if t == nil {
			return false
		}
		ps.space.AddPlayer(e, t.Position, body.Radius)
	case component.BodyWitch:
		if t == nil {
			return false
		}
		ps.space.AddWitch(e, t.Position, body.Radius, body.TriggerRadius)
	case component.BodyPickup:
		if t == nil {
			return false
		}
		ps.space.AddPickup(e, t.Position, body.Radius)
	default:
		return false
	}
	return true
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, kind := range ps.tracked {
		if kind != component.BodyPlayer {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if pos, ok := ps.space.Position(e); ok {
			t.Position = pos
		}
	}
}
