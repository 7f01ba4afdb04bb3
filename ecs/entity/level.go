package entity

import (
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
	"github.com/milk9111/witchwood/nav"
	"github.com/milk9111/witchwood/prefabs"
)

// NewLevel rasterises the scene into a nav grid and creates collider
// entities for obstacles, gates and exit zones. Gates start closed.
func NewLevel(w *ecs.World, scene *prefabs.SceneSpec) (ecs.Entity, *nav.Grid) {
	grid := nav.NewGrid(scene.Bounds, scene.CellSize)

	for _, r := range scene.Obstacles {
		grid.Block(r, scene.Clearance)
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.ObstacleTagComponent.Kind(), &component.ObstacleTag{})
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyObstacle, Rect: r})
	}

	for _, r := range scene.Gates {
		grid.Block(r, scene.Clearance)
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.GateComponent.Kind(), &component.Gate{Rect: r, Clearance: scene.Clearance})
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyObstacle, Rect: r})
	}

	for _, r := range scene.Exits {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.ExitZoneComponent.Kind(), &component.ExitZone{Rect: r})
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyZone, Rect: r})
	}

	for _, p := range scene.Cookies {
		NewCookie(w, p, scene.CookieRadius)
	}
	if scene.Cauldron != nil {
		NewCauldron(w, scene.Cauldron, scene.CookieRadius)
	}

	level := ecs.CreateEntity(w)
	_ = ecs.Add(w, level, component.LevelComponent.Kind(), &component.Level{
		Name:   scene.Name,
		Bounds: scene.Bounds,
		Grid:   grid,
	})
	return level, grid
}
