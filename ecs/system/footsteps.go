package system

import (
	"github.com/milk9111/witchwood/ai"
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
)

// FootstepSystem emits gait cues while a witch is walking her path.
type FootstepSystem struct{}

func NewFootstepSystem() *FootstepSystem { return &FootstepSystem{} }

func (s *FootstepSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.FootstepsComponent.Kind(), component.NavAgentComponent.Kind(), component.WitchBrainComponent.Kind(), func(e ecs.Entity, steps *component.Footsteps, na *component.NavAgent, brain *component.WitchBrain) {
		if na.Agent == nil || brain.Controller == nil {
			return
		}
		agent := na.Agent
		moving := brain.Controller.Enabled() && agent.Speed() > 0 && agent.RemainingDistance() > agent.StoppingDistance()
		if !moving {
			steps.Timer = 0
			return
		}

		gait, interval := "walk", steps.WalkInterval
		if brain.Controller.State() == ai.StatePursue {
			gait, interval = "run", steps.RunInterval
		}
		if interval <= 0 {
			return
		}

		steps.Timer -= w.Delta()
		if steps.Timer > 0 {
			return
		}
		steps.Timer = interval
		w.Events().Emit(ecs.EventFootstep, ecs.Footstep{Entity: e, Gait: gait})
	})
}
