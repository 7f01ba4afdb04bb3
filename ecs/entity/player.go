package entity

import (
	"github.com/milk9111/witchwood/collect"
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
	"github.com/milk9111/witchwood/health"
	"github.com/milk9111/witchwood/prefabs"
)

// NewPlayer spawns the hunted player at the scene spawn, following the
// scene's route until manual input takes over.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, scene *prefabs.SceneSpec) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: scene.PlayerSpawn,
		Forward:  common.V(1, 0),
	})
	_ = ecs.Add(w, e, component.PlayerControlComponent.Kind(), &component.PlayerControl{
		Speed: spec.Speed,
		Route: append([]common.Vec2(nil), scene.Route.Points...),
		Loop:  scene.Route.Loop,
		Reach: spec.Reach,
	})
	_ = ecs.Add(w, e, component.PlayerHealthComponent.Kind(), &component.PlayerHealth{Health: health.NewPlayer(spec.Health)})
	_ = ecs.Add(w, e, component.InventoryComponent.Kind(), &component.Inventory{Items: collect.NewInventory()})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.BodyPlayer,
		Radius: spec.Body.Radius,
	})
	return e
}
