package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
)

func (w *World) setupHandlers() {
	w.pairHandler(collisionTypeWitchTrigger, collisionTypePlayer, KindOverlap)
	w.pairHandler(collisionTypeWitch, collisionTypePlayer, KindContact)
	w.pairHandler(collisionTypePickup, collisionTypePlayer, KindOverlap)
	w.pairHandler(collisionTypeZone, collisionTypePlayer, KindOverlap)
}

// pairHandler counts begin/separate callbacks between owner-typed shapes and
// other-typed shapes. Counts absorb multiple arbiters for the same pair.
func (w *World) pairHandler(owner, other cp.CollisionType, kind Kind) {
	handler := w.space.NewCollisionHandler(owner, other)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		if p, ok := world.pairFor(arb, owner, kind); ok {
			world.pairs[p]++
			world.log.WithFields(logrus.Fields{
				"owner": p.Owner,
				"other": p.Other,
				"kind":  kind.String(),
			}).Trace("pair begin")
		}
		// Witch and player never push each other.
		return owner != collisionTypeWitch
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return
		}
		p, ok := world.pairFor(arb, owner, kind)
		if !ok {
			return
		}
		if world.pairs[p] <= 1 {
			delete(world.pairs, p)
			return
		}
		world.pairs[p]--
	}
}

func (w *World) pairFor(arb *cp.Arbiter, owner cp.CollisionType, kind Kind) (Pair, bool) {
	shapeA, shapeB := arb.Shapes()
	a, okA := w.shapes[shapeA]
	b, okB := w.shapes[shapeB]
	if !okA || !okB {
		return Pair{}, false
	}
	if b.ct == owner {
		a, b = b, a
	}
	if a.ct != owner {
		return Pair{}, false
	}
	return Pair{Owner: a.entity, Other: b.entity, Kind: kind}, true
}
