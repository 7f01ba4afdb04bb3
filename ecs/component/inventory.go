package component

import "github.com/milk9111/witchwood/collect"

type Inventory struct {
	Items *collect.Inventory
}

var InventoryComponent = NewComponent[Inventory]()
