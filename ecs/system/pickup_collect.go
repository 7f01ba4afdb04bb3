package system

import (
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
	"github.com/milk9111/witchwood/physics"
)

// PickupCollectSystem consumes every pickup the player body overlaps.
type PickupCollectSystem struct {
	space *physics.World
}

func NewPickupCollectSystem(space *physics.World) *PickupCollectSystem {
	return &PickupCollectSystem{space: space}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if s == nil || s.space == nil || w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if hp, ok := ecs.Get(w, player, component.PlayerHealthComponent.Kind()); ok && hp.Health != nil && !hp.Health.Alive() {
		return
	}
	inv, _ := ecs.Get(w, player, component.InventoryComponent.Kind())

	for _, owner := range s.space.OverlapsOf(player) {
		pickup, ok := ecs.Get(w, owner, component.PickupComponent.Kind())
		if !ok {
			continue
		}

		total := 0
		if inv != nil && inv.Items != nil {
			inv.Items.Add(pickup.Amount)
			total = inv.Items.Count()
		}
		w.Events().Emit(ecs.EventCollected, ecs.Collected{
			Pickup: owner,
			Kind:   pickup.Kind,
			Amount: pickup.Amount,
			Total:  total,
		})

		s.space.Remove(owner)
		ecs.DestroyEntity(w, owner)
	}
}
