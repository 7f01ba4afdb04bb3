package component

import "github.com/milk9111/witchwood/common"

// Cauldron hands out cookies when the player interacts within Radius.
type Cauldron struct {
	Spawns      []common.Vec2
	PerInteract int
	Cooldown    float64
	Radius      float64
	PickupSize  float64
	ReadyAt     float64
	next        int
}

// NextSpawn returns the spawn points round-robin.
func (c *Cauldron) NextSpawn() (common.Vec2, bool) {
	if c == nil || len(c.Spawns) == 0 {
		return common.Vec2{}, false
	}
	p := c.Spawns[c.next%len(c.Spawns)]
	c.next++
	return p, true
}

var CauldronComponent = NewComponent[Cauldron]()
