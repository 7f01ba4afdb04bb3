package system

import (
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
	"github.com/milk9111/witchwood/physics"
)

const defaultRouteReach = 0.25

// PlayerControlSystem turns manual input or the scripted route into a body
// velocity. Dead players stop.
type PlayerControlSystem struct {
	space *physics.World
}

func NewPlayerControlSystem(space *physics.World) *PlayerControlSystem {
	return &PlayerControlSystem{space: space}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	if s == nil || s.space == nil || w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.PlayerControlComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, ctl *component.PlayerControl, t *component.Transform) {
		dir := steer(ctl, t.Position)
		if hp, ok := ecs.Get(w, e, component.PlayerHealthComponent.Kind()); ok && hp.Health != nil && !hp.Health.Alive() {
			dir = common.Vec2{}
		}
		if !dir.IsZero() {
			t.Forward = dir
		}
		s.space.SetVelocity(e, dir.Scale(ctl.Speed))
	})
}

func steer(ctl *component.PlayerControl, pos common.Vec2) common.Vec2 {
	if !ctl.Input.IsZero() {
		return ctl.Input.Normalize()
	}

	reach := ctl.Reach
	if reach <= 0 {
		reach = defaultRouteReach
	}
	for tries := 0; tries < len(ctl.Route) && ctl.RouteIndex < len(ctl.Route); tries++ {
		to := ctl.Route[ctl.RouteIndex].Sub(pos)
		if to.Len() > reach {
			return to.Normalize()
		}
		ctl.RouteIndex++
		if ctl.RouteIndex >= len(ctl.Route) && ctl.Loop {
			ctl.RouteIndex = 0
		}
	}
	return common.Vec2{}
}
