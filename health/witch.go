package health

const (
	DefaultWitchMax          = 100.0
	DefaultPerCookie         = 10.0
	DefaultParalysisDuration = 120.0
)

// WitchConfig is the witch's sanity pool as authored in the witch prefab.
type WitchConfig struct {
	Max               float64 `yaml:"max"`
	PerCookie         float64 `yaml:"per_cookie"`
	ParalysisDuration float64 `yaml:"paralysis_duration"`
}

func DefaultWitchConfig() WitchConfig {
	return WitchConfig{
		Max:               DefaultWitchMax,
		PerCookie:         DefaultPerCookie,
		ParalysisDuration: DefaultParalysisDuration,
	}
}

// Witch is the witch's health pool. Draining it paralyses her for a fixed
// duration, after which she recovers at full health.
type Witch struct {
	cfg WitchConfig

	current   float64
	paralyzed bool
	timer     float64

	OnParalyzed func()
	OnRecovered func()
}

func NewWitch(cfg WitchConfig) *Witch {
	if cfg.Max <= 0 {
		cfg.Max = DefaultWitchMax
	}
	if cfg.ParalysisDuration < 0 {
		cfg.ParalysisDuration = 0
	}
	return &Witch{cfg: cfg, current: cfg.Max}
}

// TakeDamage is ignored once health is already at zero.
func (w *Witch) TakeDamage(amount float64) {
	if w == nil || w.current <= 0 || amount <= 0 {
		return
	}
	w.current -= amount
	if w.current > 0 {
		return
	}
	w.current = 0
	w.paralyze()
}

// DamagePerCookie applies the per-cookie loss for n cookies.
func (w *Witch) DamagePerCookie(n int) {
	if w == nil || n <= 0 {
		return
	}
	w.TakeDamage(w.cfg.PerCookie * float64(n))
}

func (w *Witch) paralyze() {
	if w.paralyzed {
		return
	}
	w.paralyzed = true
	w.timer = w.cfg.ParalysisDuration
	if w.OnParalyzed != nil {
		w.OnParalyzed()
	}
}

// Update counts the paralysis down and restores full health on expiry.
func (w *Witch) Update(dt float64) {
	if w == nil || !w.paralyzed {
		return
	}
	w.timer -= dt
	if w.timer > 0 {
		return
	}
	w.timer = 0
	w.paralyzed = false
	w.current = w.cfg.Max
	if w.OnRecovered != nil {
		w.OnRecovered()
	}
}

func (w *Witch) Current() float64 {
	if w == nil {
		return 0
	}
	return w.current
}

func (w *Witch) Max() float64 {
	if w == nil {
		return 0
	}
	return w.cfg.Max
}

// Fraction is current/max in [0, 1].
func (w *Witch) Fraction() float64 {
	if w == nil || w.cfg.Max <= 0 {
		return 0
	}
	return w.current / w.cfg.Max
}

func (w *Witch) Paralyzed() bool {
	return w != nil && w.paralyzed
}

// ParalysisRemaining is the time left until recovery, zero when not paralysed.
func (w *Witch) ParalysisRemaining() float64 {
	if w == nil {
		return 0
	}
	return w.timer
}

// Reconfigure swaps tunables. Current health is clamped to the new max.
func (w *Witch) Reconfigure(cfg WitchConfig) {
	if w == nil {
		return
	}
	if cfg.Max <= 0 {
		cfg.Max = DefaultWitchMax
	}
	w.cfg = cfg
	if w.current > cfg.Max {
		w.current = cfg.Max
	}
}
