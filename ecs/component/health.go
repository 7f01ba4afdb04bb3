package component

import "github.com/milk9111/witchwood/health"

// PlayerHealth wraps the player's hit points. Dead latches once the death
// event has been emitted.
type PlayerHealth struct {
	Health *health.Player
	Dead   bool
}

var PlayerHealthComponent = NewComponent[PlayerHealth]()

// WitchHealth wraps the witch's cookie damage pool. Paralyzed mirrors the
// last state the health system acted on.
type WitchHealth struct {
	Health    *health.Witch
	Paralyzed bool
}

var WitchHealthComponent = NewComponent[WitchHealth]()
