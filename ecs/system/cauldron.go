package system

import (
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
)

const cookieKind = "cookie"

// CauldronSystem spawns cookie pickups when the player interacts near a
// cauldron that is off cooldown. The interact request is consumed every tick.
type CauldronSystem struct{}

func NewCauldronSystem() *CauldronSystem { return &CauldronSystem{} }

func (s *CauldronSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	ctl, ok := ecs.Get(w, player, component.PlayerControlComponent.Kind())
	if !ok || !ctl.Interact {
		return
	}
	ctl.Interact = false

	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach2(w, component.CauldronComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Cauldron, t *component.Transform) {
		if w.Elapsed() < c.ReadyAt || pt.Position.Dist(t.Position) > c.Radius {
			return
		}
		c.ReadyAt = w.Elapsed() + c.Cooldown

		for i := 0; i < c.PerInteract; i++ {
			pos, ok := c.NextSpawn()
			if !ok {
				return
			}
			cookie := ecs.CreateEntity(w)
			_ = ecs.Add(w, cookie, component.TransformComponent.Kind(), &component.Transform{Position: pos})
			_ = ecs.Add(w, cookie, component.PickupComponent.Kind(), &component.Pickup{Kind: cookieKind, Amount: 1})
			_ = ecs.Add(w, cookie, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Kind:   component.BodyPickup,
				Radius: c.PickupSize,
			})
			w.Events().Emit(ecs.EventSpawned, ecs.Spawned{Source: e, Pickup: cookie, Position: pos})
		}
	})
}
