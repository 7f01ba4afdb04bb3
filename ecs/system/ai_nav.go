package system

import (
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
)

// NavSystem advances grid agents and writes their pose back to Transform.
type NavSystem struct{}

func NewNavSystem() *NavSystem { return &NavSystem{} }

func (s *NavSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, na *component.NavAgent, t *component.Transform) {
		if na.Agent == nil {
			return
		}
		na.Agent.Step(w.Delta())
		t.Position = na.Agent.Position()
		t.Forward = na.Agent.Forward()
	})
}
