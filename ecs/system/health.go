package system

import (
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
)

// HealthSystem runs the witch paralysis clock, switches her controller off
// and on with it, and reports player death once.
type HealthSystem struct{}

func NewHealthSystem() *HealthSystem { return &HealthSystem{} }

func (s *HealthSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.WitchHealthComponent.Kind(), func(e ecs.Entity, wh *component.WitchHealth) {
		if wh.Health == nil {
			return
		}
		syncParalysis(w, e, wh)
		wh.Health.Update(w.Delta())
		syncParalysis(w, e, wh)
	})

	ecs.ForEach(w, component.PlayerHealthComponent.Kind(), func(e ecs.Entity, ph *component.PlayerHealth) {
		if ph.Health == nil || ph.Dead || ph.Health.Alive() {
			return
		}
		ph.Dead = true
		w.Events().Emit(ecs.EventPlayerDied, e)
	})
}

func syncParalysis(w *ecs.World, e ecs.Entity, wh *component.WitchHealth) {
	paralyzed := wh.Health.Paralyzed()
	if paralyzed == wh.Paralyzed {
		return
	}
	wh.Paralyzed = paralyzed

	if brain, ok := ecs.Get(w, e, component.WitchBrainComponent.Kind()); ok && brain.Controller != nil {
		brain.Controller.SetEnabled(!paralyzed)
	}
	if paralyzed {
		w.Events().Emit(ecs.EventParalyzed, e)
		return
	}
	w.Events().Emit(ecs.EventRecovered, e)
}
