package entity

import (
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
	"github.com/milk9111/witchwood/prefabs"
)

const CookieKind = "cookie"

func NewCookie(w *ecs.World, pos common.Vec2, radius float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	_ = ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: CookieKind, Amount: 1})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyPickup, Radius: radius})
	return e
}

func NewCauldron(w *ecs.World, spec *prefabs.CauldronSpec, cookieRadius float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: spec.Position})
	_ = ecs.Add(w, e, component.CauldronComponent.Kind(), &component.Cauldron{
		Spawns:      append([]common.Vec2(nil), spec.Spawns...),
		PerInteract: spec.PerInteract,
		Cooldown:    spec.Cooldown,
		Radius:      spec.Radius,
		PickupSize:  cookieRadius,
	})
	return e
}
