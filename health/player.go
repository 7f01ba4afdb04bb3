package health

// Player is the hunted character's integer health pool.
type Player struct {
	max     int
	current int

	// OnDamaged runs after every applied hit with the amount and the new value.
	OnDamaged func(amount, current int)
	// OnDeath runs once when health reaches zero.
	OnDeath func()
}

func NewPlayer(max int) *Player {
	if max < 1 {
		max = 1
	}
	return &Player{max: max, current: max}
}

// TakeDamage ignores non-positive amounts and dead players.
func (p *Player) TakeDamage(amount int) {
	if p == nil || amount <= 0 || !p.Alive() {
		return
	}
	p.current -= amount
	if p.current < 0 {
		p.current = 0
	}
	if p.OnDamaged != nil {
		p.OnDamaged(amount, p.current)
	}
	if p.current == 0 && p.OnDeath != nil {
		p.OnDeath()
	}
}

// Heal ignores non-positive amounts and dead players and never exceeds max.
func (p *Player) Heal(amount int) {
	if p == nil || amount <= 0 || !p.Alive() {
		return
	}
	p.current += amount
	if p.current > p.max {
		p.current = p.max
	}
}

// SetMax changes the pool size. With refill the player is restored to full,
// otherwise the current value is clamped into range.
func (p *Player) SetMax(value int, refill bool) {
	if p == nil {
		return
	}
	if value < 1 {
		value = 1
	}
	p.max = value
	if refill {
		p.current = p.max
		return
	}
	if p.current > p.max {
		p.current = p.max
	}
}

func (p *Player) Alive() bool {
	return p != nil && p.current > 0
}

func (p *Player) Current() int {
	if p == nil {
		return 0
	}
	return p.current
}

func (p *Player) Max() int {
	if p == nil {
		return 0
	}
	return p.max
}
