package component

import "github.com/milk9111/witchwood/common"

// BodyKind selects how the physics system registers an entity's collider.
type BodyKind uint8

const (
	BodyObstacle BodyKind = iota + 1
	BodyPlayer
	BodyWitch
	BodyPickup
	BodyZone
)

// PhysicsBody is collider configuration. Circles use Radius around the
// transform; obstacles and zones use Rect in world space.
type PhysicsBody struct {
	Kind          BodyKind
	Radius        float64
	TriggerRadius float64
	Rect          common.Rect
	Registered    bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
