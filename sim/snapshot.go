package sim

import (
	"github.com/milk9111/witchwood/ai"
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
)

type WitchView struct {
	Position           common.Vec2   `json:"position"`
	Forward            common.Vec2   `json:"forward"`
	Brain              ai.Snapshot   `json:"brain"`
	Health             float64       `json:"health"`
	MaxHealth          float64       `json:"max_health"`
	Paralyzed          bool          `json:"paralyzed"`
	ParalysisRemaining float64       `json:"paralysis_remaining"`
	Path               []common.Vec2 `json:"path,omitempty"`
}

type PlayerView struct {
	Position  common.Vec2 `json:"position"`
	Forward   common.Vec2 `json:"forward"`
	Health    int         `json:"health"`
	MaxHealth int         `json:"max_health"`
	Cookies   int         `json:"cookies"`
}

// Snapshot is a copy of the observable scene state, safe to hand to other
// goroutines.
type Snapshot struct {
	Tick      uint64        `json:"tick"`
	Time      float64       `json:"time"`
	Outcome   Outcome       `json:"outcome"`
	GatesOpen bool          `json:"gates_open"`
	Witch     WitchView     `json:"witch"`
	Player    PlayerView    `json:"player"`
	Pickups   []common.Vec2 `json:"pickups"`
}

func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    s.World.Tick(),
		Time:    s.World.Elapsed(),
		Outcome: s.outcome,
	}

	snap.Witch.Position, snap.Witch.Forward = s.position(s.Witch)
	snap.Witch.Brain = s.ctrl.Snapshot()
	snap.Witch.Health = s.witchHealth.Current()
	snap.Witch.MaxHealth = s.witchHealth.Max()
	snap.Witch.Paralyzed = s.witchHealth.Paralyzed()
	snap.Witch.ParalysisRemaining = s.witchHealth.ParalysisRemaining()
	if agent := s.Agent(); agent != nil {
		snap.Witch.Path = agent.Path()
	}

	snap.Player.Position, snap.Player.Forward = s.position(s.Player)
	snap.Player.Health = s.playerHealth.Current()
	snap.Player.MaxHealth = s.playerHealth.Max()
	snap.Player.Cookies = s.inventory.Count()

	ecs.ForEach(s.World, component.GateComponent.Kind(), func(_ ecs.Entity, g *component.Gate) {
		if g.Open {
			snap.GatesOpen = true
		}
	})
	ecs.ForEach2(s.World, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Pickup, t *component.Transform) {
		snap.Pickups = append(snap.Pickups, t.Position)
	})
	return snap
}
