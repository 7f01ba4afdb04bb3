package collect

// Escalator is anything whose aggression grows per collected unit.
type Escalator interface {
	IncreaseAggression()
}

// Damageable takes fractional damage, like the witch's sanity pool.
type Damageable interface {
	TakeDamage(amount float64)
}

// AggressionHook escalates the target once per collected unit.
type AggressionHook struct {
	Target Escalator
}

func (h AggressionHook) Collected(units int) {
	if h.Target == nil {
		return
	}
	for i := 0; i < units; i++ {
		h.Target.IncreaseAggression()
	}
}

// DamageHook deals PerUnit*units in a single hit per gathering event.
type DamageHook struct {
	Target  Damageable
	PerUnit float64
}

func (h DamageHook) Collected(units int) {
	if h.Target == nil || units <= 0 || h.PerUnit <= 0 {
		return
	}
	h.Target.TakeDamage(h.PerUnit * float64(units))
}
