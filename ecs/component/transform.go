package component

import "github.com/milk9111/witchwood/common"

// Transform is an entity's pose on the ground plane.
type Transform struct {
	Position common.Vec2
	Forward  common.Vec2
}

var TransformComponent = NewComponent[Transform]()
