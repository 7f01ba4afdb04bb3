package component

import (
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/nav"
)

// Level is the singleton scene resource.
type Level struct {
	Name   string
	Bounds common.Rect
	Grid   *nav.Grid
}

var LevelComponent = NewComponent[Level]()
