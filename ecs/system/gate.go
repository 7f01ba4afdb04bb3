package system

import (
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
	"github.com/milk9111/witchwood/physics"
)

// GateSystem opens the cemetery gates while every witch is paralysed and
// closes them again on recovery. Reaching an exit zone through an open gate
// is an escape.
type GateSystem struct {
	space *physics.World
}

func NewGateSystem(space *physics.World) *GateSystem {
	return &GateSystem{space: space}
}

func (s *GateSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	open := gatesShouldOpen(w)

	var level *component.Level
	if e, ok := ecs.First(w, component.LevelComponent.Kind()); ok {
		level, _ = ecs.Get(w, e, component.LevelComponent.Kind())
	}

	ecs.ForEach(w, component.GateComponent.Kind(), func(e ecs.Entity, gate *component.Gate) {
		if gate.Open == open {
			return
		}
		gate.Open = open
		if s.space != nil {
			s.space.SetEnabled(e, !open)
		}
		if level != nil && level.Grid != nil {
			if open {
				level.Grid.Unblock(gate.Rect, gate.Clearance)
			} else {
				level.Grid.Block(gate.Rect, gate.Clearance)
			}
		}
		if open {
			w.Events().Emit(ecs.EventGateOpened, e)
		} else {
			w.Events().Emit(ecs.EventGateClosed, e)
		}
	})

	if !open || s.space == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if ph, ok := ecs.Get(w, player, component.PlayerHealthComponent.Kind()); ok && ph.Dead {
		return
	}
	ecs.ForEach(w, component.ExitZoneComponent.Kind(), func(e ecs.Entity, zone *component.ExitZone) {
		if zone.Reached || !s.space.Touching(e, player, physics.KindOverlap) {
			return
		}
		zone.Reached = true
		w.Events().Emit(ecs.EventEscaped, player)
	})
}

func gatesShouldOpen(w *ecs.World) bool {
	witches, paralyzed := 0, 0
	ecs.ForEach(w, component.WitchHealthComponent.Kind(), func(_ ecs.Entity, wh *component.WitchHealth) {
		witches++
		if wh.Health.Paralyzed() {
			paralyzed++
		}
	})
	return witches > 0 && paralyzed == witches
}
