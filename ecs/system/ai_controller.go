package system

import (
	"github.com/milk9111/witchwood/ai"
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
	"github.com/milk9111/witchwood/physics"
)

// WitchSystem ticks every witch controller and forwards trigger volumes and
// solid contacts with the player as touch attempts.
type WitchSystem struct {
	space *physics.World
}

func NewWitchSystem(space *physics.World) *WitchSystem {
	return &WitchSystem{space: space}
}

func (s *WitchSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	player, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())

	ecs.ForEach(w, component.WitchBrainComponent.Kind(), func(e ecs.Entity, brain *component.WitchBrain) {
		ctrl := brain.Controller
		if ctrl == nil {
			return
		}

		before := ctrl.Hits()
		ctrl.Tick(w.Delta())
		if ctrl.Hits() > before {
			emitTouch(w, e, ctrl, ai.TriggerProximity)
		}

		if !hasPlayer || s.space == nil {
			return
		}
		if s.space.Touching(e, player, physics.KindOverlap) && ctrl.Touch(ai.TriggerOverlap) {
			emitTouch(w, e, ctrl, ai.TriggerOverlap)
		}
		if s.space.Touching(e, player, physics.KindContact) && ctrl.Touch(ai.TriggerContact) {
			emitTouch(w, e, ctrl, ai.TriggerContact)
		}
	})
}

func emitTouch(w *ecs.World, e ecs.Entity, ctrl *ai.Controller, trigger ai.Trigger) {
	w.Events().Emit(ecs.EventWitchTouched, ecs.Touch{
		Witch:   e,
		Trigger: trigger.String(),
		Damage:  ctrl.Config().TouchDamage,
	})
}
