package component

import "github.com/milk9111/witchwood/common"

// PlayerControl steers the player body. Manual input wins over the scripted
// route while it is non-zero.
type PlayerControl struct {
	Speed      float64
	Route      []common.Vec2
	RouteIndex int
	Loop       bool
	Reach      float64

	Input    common.Vec2
	Interact bool
}

var PlayerControlComponent = NewComponent[PlayerControl]()
