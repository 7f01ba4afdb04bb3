package entity

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/witchwood/ai"
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
	"github.com/milk9111/witchwood/health"
	"github.com/milk9111/witchwood/logger"
	"github.com/milk9111/witchwood/nav"
	"github.com/milk9111/witchwood/prefabs"
)

// WitchDeps are the scene services a witch is wired to.
type WitchDeps struct {
	Grid   *nav.Grid
	Sensor ai.Sensor
	Target ecs.Entity
	Rand   *rand.Rand
}

// transformTarget reads the hunted entity's position from its Transform.
type transformTarget struct {
	w *ecs.World
	e ecs.Entity
}

func (t transformTarget) Position() common.Vec2 {
	tr, ok := ecs.Get(t.w, t.e, component.TransformComponent.Kind())
	if !ok {
		return common.Vec2{}
	}
	return tr.Position
}

// NewWitch spawns a witch hunting deps.Target. State transitions are pushed
// onto the world event queue.
func NewWitch(w *ecs.World, spec *prefabs.WitchSpec, pos, facing common.Vec2, deps WitchDeps) (ecs.Entity, error) {
	if deps.Grid == nil {
		return 0, fmt.Errorf("witch: nav grid is required")
	}

	e := ecs.CreateEntity(w)
	agent := nav.NewAgent(deps.Grid, pos, facing, spec.StoppingDistance)

	aiDeps := ai.Deps{Nav: agent, Sensor: deps.Sensor, Rand: deps.Rand}
	if ecs.IsAlive(w, deps.Target) {
		aiDeps.Target = transformTarget{w: w, e: deps.Target}
		if ph, ok := ecs.Get(w, deps.Target, component.PlayerHealthComponent.Kind()); ok && ph.Health != nil {
			aiDeps.Health = ph.Health
		}
	}

	ctrl, err := ai.NewController(spec.AI, aiDeps,
		ai.WithLogger(logger.For("witch_ai").WithField("entity", e.String())),
		ai.WithCueListener(ai.CueFunc(func(from, to ai.State) {
			w.Events().Emit(ecs.EventStateChanged, ecs.StateChange{Entity: e, From: from.String(), To: to.String()})
		})),
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("witch: %w", err)
	}

	_ = ecs.Add(w, e, component.WitchTagComponent.Kind(), &component.WitchTag{})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: agent.Position(), Forward: agent.Forward()})
	_ = ecs.Add(w, e, component.NavAgentComponent.Kind(), &component.NavAgent{Agent: agent})
	_ = ecs.Add(w, e, component.WitchBrainComponent.Kind(), &component.WitchBrain{Controller: ctrl})
	_ = ecs.Add(w, e, component.WitchHealthComponent.Kind(), &component.WitchHealth{Health: health.NewWitch(spec.Health)})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:          component.BodyWitch,
		Radius:        spec.Body.Radius,
		TriggerRadius: spec.Body.TriggerRadius,
	})
	_ = ecs.Add(w, e, component.FootstepsComponent.Kind(), &component.Footsteps{
		WalkInterval: spec.Footsteps.WalkInterval,
		RunInterval:  spec.Footsteps.RunInterval,
	})
	return e, nil
}
