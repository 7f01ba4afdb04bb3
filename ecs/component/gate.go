package component

import "github.com/milk9111/witchwood/common"

// Gate is a barrier that opens while every witch is paralysed.
type Gate struct {
	Rect      common.Rect
	Clearance float64
	Open      bool
}

var GateComponent = NewComponent[Gate]()

// ExitZone is reached by the player to escape. It only counts while the
// gates are open.
type ExitZone struct {
	Rect    common.Rect
	Reached bool
}

var ExitZoneComponent = NewComponent[ExitZone]()
