package component

// Pickup is a collectible consumed when the player body overlaps it.
type Pickup struct {
	Kind   string
	Amount int
}

var PickupComponent = NewComponent[Pickup]()
