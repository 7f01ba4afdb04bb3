package ai

import (
	"errors"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/logger"
)

var ErrNoNavigator = errors.New("ai: controller requires a navigator")

// Deps are the collaborators injected at construction. Target, Health and
// Sensor may be nil; the steps that need them are skipped.
type Deps struct {
	Nav    Navigator
	Sensor Sensor
	Target Target
	Health Health
	Rand   *rand.Rand
}

type Option func(*Controller)

func WithCueListener(l CueListener) Option {
	return func(c *Controller) {
		if l != nil {
			c.listeners = append(c.listeners, l)
		}
	}
}

func WithLogger(entry *logrus.Entry) Option {
	return func(c *Controller) {
		if entry != nil {
			c.log = entry
		}
	}
}

// Controller is the witch's pursuit/patrol state machine. Call Tick once per
// simulation step.
type Controller struct {
	cfg Config

	nav    Navigator
	sensor Sensor
	target Target
	health Health

	vision     Vision
	memory     PursuitMemory
	wander     *Wanderer
	aggression *Aggression
	contact    ContactArbiter

	state     State
	now       float64
	enabled   bool
	perceived bool

	listeners []CueListener
	log       *logrus.Entry
}

func NewController(cfg Config, deps Deps, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Nav == nil {
		return nil, ErrNoNavigator
	}

	c := &Controller{
		cfg:        cfg,
		nav:        deps.Nav,
		sensor:     deps.Sensor,
		target:     deps.Target,
		health:     deps.Health,
		vision:     cfg.Vision(),
		memory:     NewPursuitMemory(cfg.LoseSightDelay),
		wander:     NewWanderer(cfg.WanderRadius, cfg.WanderMinDist, cfg.WanderCooldown, deps.Rand),
		aggression: NewAggression(cfg.WalkSpeed, cfg.RunSpeed, cfg.Escalation),
		contact: ContactArbiter{
			Damage:    cfg.TouchDamage,
			Interval:  cfg.DamageInterval,
			HitRadius: cfg.HitRadius,
		},
		state:   StateIdle,
		enabled: true,
		log:     logger.For("witch_ai"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Tick runs one step in fixed order: perception, memory and state decision,
// movement command, proximity damage.
func (c *Controller) Tick(dt float64) {
	c.now += dt
	if !c.enabled {
		return
	}

	c.perceived = c.perceive()
	walk, run := c.aggression.Speeds()

	switch {
	case c.perceived:
		pos := c.target.Position()
		c.memory.Remember(pos)
		c.memory.Tick(dt, true)
		c.chase(pos, run)
	case c.target != nil && c.memory.Tick(dt, false):
		pos, _ := c.memory.LastKnown()
		c.chase(pos, run)
	default:
		c.patrol(dt, walk)
	}

	c.pollDamage()
}

func (c *Controller) perceive() bool {
	if c.target == nil {
		return false
	}
	pose := Pose{Position: c.nav.Position(), Forward: c.nav.Forward()}
	return c.vision.CanPerceive(pose, c.target.Position(), c.sensor)
}

func (c *Controller) chase(dest common.Vec2, run float64) {
	c.nav.SetSpeed(run)
	c.nav.SetDestination(dest)
	c.setState(StatePursue)
}

func (c *Controller) patrol(dt, walk float64) {
	pending := c.nav.PathPending()
	remaining := c.nav.RemainingDistance()
	stopping := c.nav.StoppingDistance()

	if dest, ok := c.wander.MaybeAdvance(dt, c.nav.Position(), pending, remaining, stopping, c.nav); ok {
		c.nav.SetSpeed(walk)
		c.nav.SetDestination(dest)
		c.setState(StatePatrol)
		return
	}

	if Arrived(pending, remaining, stopping) {
		c.setState(StateIdle)
		return
	}

	// Memory lapsed mid-route: finish the leg at walking pace.
	if c.state == StatePursue {
		c.nav.SetSpeed(walk)
		c.setState(StatePatrol)
	}
}

func (c *Controller) pollDamage() {
	if c.target == nil {
		return
	}
	if c.contact.Poll(c.now, c.nav.Position(), c.target.Position(), c.health) {
		c.logHit(TriggerProximity)
	}
}

// Touch is the entry point for overlap and contact triggers.
func (c *Controller) Touch(trigger Trigger) bool {
	if !c.enabled || c.target == nil {
		return false
	}
	if !c.contact.Try(c.now, c.health) {
		return false
	}
	c.logHit(trigger)
	return true
}

func (c *Controller) logHit(trigger Trigger) {
	c.log.WithFields(logrus.Fields{
		"trigger": trigger.String(),
		"damage":  c.contact.Damage,
		"next":    c.contact.NextDamageTime(),
	}).Info("witch touched target")
}

func (c *Controller) setState(next State) {
	if c.state == next {
		return
	}
	prev := c.state
	c.state = next
	c.log.WithFields(logrus.Fields{
		"from": prev.String(),
		"to":   next.String(),
		"t":    c.now,
	}).Debug("state change")
	for _, l := range c.listeners {
		l.StateChanged(prev, next)
	}
}

// IncreaseAggression applies one escalation step. Call once per collected unit.
func (c *Controller) IncreaseAggression() {
	c.aggression.Increase()
	walk, run := c.aggression.Speeds()
	c.log.WithFields(logrus.Fields{
		"level": c.aggression.Level(),
		"walk":  walk,
		"run":   run,
	}).Debug("aggression increased")
}

// SetEnabled pauses or resumes the controller. Disabling halts the navigator
// and drops to Idle; ticks and touches are ignored until re-enabled.
func (c *Controller) SetEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	if !enabled {
		c.nav.ResetPath()
		c.memory.Forget()
		c.perceived = false
		c.setState(StateIdle)
	}
}

// Reconfigure applies new tunables. Speeds are rebased onto the new walk and
// run values plus the escalation earned so far; they never go down, and the
// aggression level is kept.
func (c *Controller) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.vision = cfg.Vision()
	c.memory.Delay = cfg.LoseSightDelay
	c.wander.Radius = cfg.WanderRadius
	c.wander.MinDist = cfg.WanderMinDist
	c.wander.Cooldown = cfg.WanderCooldown
	c.contact.Damage = cfg.TouchDamage
	c.contact.Interval = cfg.DamageInterval
	c.contact.HitRadius = cfg.HitRadius
	if c.aggression.rebase(cfg.WalkSpeed, cfg.RunSpeed, cfg.Escalation) {
		walk, run := c.aggression.Speeds()
		c.log.WithFields(logrus.Fields{
			"walk": walk,
			"run":  run,
		}).Warn("lower speeds ignored, escalated speeds kept")
	}
	return nil
}

func (c *Controller) State() State             { return c.state }
func (c *Controller) Enabled() bool            { return c.enabled }
func (c *Controller) Perceived() bool          { return c.perceived }
func (c *Controller) Elapsed() float64         { return c.now }
func (c *Controller) MemoryRemaining() float64 { return c.memory.Remaining() }
func (c *Controller) NextDamageTime() float64  { return c.contact.NextDamageTime() }
func (c *Controller) AggressionLevel() float64 { return c.aggression.Level() }
func (c *Controller) Hits() int                { return c.contact.Hits() }
func (c *Controller) Config() Config           { return c.cfg }
func (c *Controller) Vision() Vision           { return c.vision }

func (c *Controller) Speeds() (walk, run float64) {
	return c.aggression.Speeds()
}

func (c *Controller) LastKnown() (common.Vec2, bool) {
	return c.memory.LastKnown()
}

// Snapshot is a read-only view of the controller for presentation and telemetry.
type Snapshot struct {
	State      State       `json:"state"`
	Enabled    bool        `json:"enabled"`
	Perceived  bool        `json:"perceived"`
	Memory     float64     `json:"memory"`
	LastKnown  common.Vec2 `json:"last_known"`
	Walk       float64     `json:"walk_speed"`
	Run        float64     `json:"run_speed"`
	Aggression float64     `json:"aggression"`
	NextDamage float64     `json:"next_damage"`
	Hits       int         `json:"hits"`
	Elapsed    float64     `json:"elapsed"`
}

func (c *Controller) Snapshot() Snapshot {
	walk, run := c.aggression.Speeds()
	last, _ := c.memory.LastKnown()
	return Snapshot{
		State:      c.state,
		Enabled:    c.enabled,
		Perceived:  c.perceived,
		Memory:     c.memory.Remaining(),
		LastKnown:  last,
		Walk:       walk,
		Run:        run,
		Aggression: c.aggression.Level(),
		NextDamage: c.contact.NextDamageTime(),
		Hits:       c.contact.Hits(),
		Elapsed:    c.now,
	}
}
