// Package sim assembles a cemetery scene into a running ECS world.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/witchwood/ai"
	"github.com/milk9111/witchwood/collect"
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/ecs/component"
	"github.com/milk9111/witchwood/ecs/entity"
	"github.com/milk9111/witchwood/ecs/system"
	"github.com/milk9111/witchwood/health"
	"github.com/milk9111/witchwood/logger"
	"github.com/milk9111/witchwood/nav"
	"github.com/milk9111/witchwood/physics"
	"github.com/milk9111/witchwood/prefabs"
)

// Outcome is how a run ended, if it has.
type Outcome uint8

const (
	Running Outcome = iota
	Escaped
	Died
)

func (o Outcome) String() string {
	switch o {
	case Escaped:
		return "escaped"
	case Died:
		return "died"
	default:
		return "running"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

type Options struct {
	Seed int64
	// ScriptLoader resolves collect script names. Defaults to prefabs.LoadScript.
	ScriptLoader func(name string) ([]byte, error)
}

// Sim owns one scene: the ECS world, the physics space and the scheduler
// that steps them in a fixed order.
type Sim struct {
	World     *ecs.World
	Space     *physics.World
	Grid      *nav.Grid
	Scheduler *ecs.Scheduler

	Scene  *prefabs.SceneSpec
	Player ecs.Entity
	Witch  ecs.Entity

	ctrl         *ai.Controller
	witchHealth  *health.Witch
	playerHealth *health.Player
	inventory    *collect.Inventory
	scripts      []*collect.ScriptHook

	outcome   Outcome
	observers []func(ecs.Event)
	log       *logrus.Entry
}

// Load builds a sim from prefab names.
func Load(sceneName, witchName, playerName string, opts Options) (*Sim, error) {
	scene, err := prefabs.LoadSceneSpec(sceneName)
	if err != nil {
		return nil, err
	}
	witch, err := prefabs.LoadWitchSpec(witchName)
	if err != nil {
		return nil, err
	}
	player, err := prefabs.LoadPlayerSpec(playerName)
	if err != nil {
		return nil, err
	}
	return New(scene, witch, player, opts)
}

func New(scene *prefabs.SceneSpec, witch *prefabs.WitchSpec, player *prefabs.PlayerSpec, opts Options) (*Sim, error) {
	if scene == nil || witch == nil || player == nil {
		return nil, fmt.Errorf("sim: scene, witch and player specs are required")
	}
	if opts.ScriptLoader == nil {
		opts.ScriptLoader = prefabs.LoadScript
	}

	w := ecs.NewWorld()
	space := physics.NewWorld()
	_, grid := entity.NewLevel(w, scene)

	s := &Sim{
		World: w,
		Space: space,
		Grid:  grid,
		Scene: scene,
		log:   logger.For("sim").WithField("scene", scene.Name),
	}

	s.Player = entity.NewPlayer(w, player, scene)
	witchEnt, err := entity.NewWitch(w, witch, scene.WitchSpawn, scene.WitchFacing, entity.WitchDeps{
		Grid:   grid,
		Sensor: space,
		Target: s.Player,
		Rand:   rand.New(rand.NewSource(opts.Seed)),
	})
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	s.Witch = witchEnt

	brain, _ := ecs.Get(w, s.Witch, component.WitchBrainComponent.Kind())
	s.ctrl = brain.Controller
	wh, _ := ecs.Get(w, s.Witch, component.WitchHealthComponent.Kind())
	s.witchHealth = wh.Health
	ph, _ := ecs.Get(w, s.Player, component.PlayerHealthComponent.Kind())
	s.playerHealth = ph.Health
	inv, _ := ecs.Get(w, s.Player, component.InventoryComponent.Kind())
	s.inventory = inv.Items

	if err := s.wireHooks(scene.Collect, opts.ScriptLoader); err != nil {
		return nil, err
	}

	s.Scheduler = ecs.NewScheduler(
		system.NewPlayerControlSystem(space),
		system.NewCauldronSystem(),
		system.NewPhysicsSystem(space),
		system.NewWitchSystem(space),
		system.NewNavSystem(),
		system.NewPickupCollectSystem(space),
		system.NewHealthSystem(),
		system.NewGateSystem(space),
		system.NewFootstepSystem(),
	)

	s.log.WithFields(logrus.Fields{
		"seed":    opts.Seed,
		"cookies": len(scene.Cookies),
		"hooks":   len(scene.Collect.Hooks),
	}).Info("scene assembled")
	return s, nil
}

func (s *Sim) wireHooks(spec prefabs.CollectSpec, loadScript func(string) ([]byte, error)) error {
	for i, h := range spec.Hooks {
		switch h.Type {
		case prefabs.HookAggression:
			s.inventory.AddHook(collect.AggressionHook{Target: s.ctrl})
		case prefabs.HookDamage:
			cfg, err := prefabs.DecodeSpec[prefabs.DamageHookSpec](h.Config)
			if err != nil {
				return fmt.Errorf("sim: collect.hooks[%d]: %w", i, err)
			}
			if cfg.PerUnit > 0 {
				s.inventory.AddHook(collect.DamageHook{Target: s.witchHealth, PerUnit: cfg.PerUnit})
			} else {
				s.inventory.AddHook(collect.HookFunc(s.witchHealth.DamagePerCookie))
			}
		case prefabs.HookScript:
			cfg, err := prefabs.DecodeSpec[prefabs.ScriptHookSpec](h.Config)
			if err != nil {
				return fmt.Errorf("sim: collect.hooks[%d]: %w", i, err)
			}
			src, err := loadScript(cfg.Script)
			if err != nil {
				return fmt.Errorf("sim: load script %s: %w", cfg.Script, err)
			}
			hook, err := collect.NewScriptHook(cfg.Script, src, s.ctrl, s.witchHealth)
			if err != nil {
				return fmt.Errorf("sim: %w", err)
			}
			s.scripts = append(s.scripts, hook)
			s.inventory.AddHook(hook)
		default:
			return fmt.Errorf("sim: collect.hooks[%d]: unknown type %q", i, h.Type)
		}
	}
	return nil
}

// Observe registers fn for every event drained by Step.
func (s *Sim) Observe(fn func(ecs.Event)) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// Step advances the scene by dt and returns the events it produced. A
// finished run no longer advances.
func (s *Sim) Step(dt float64) []ecs.Event {
	if s.outcome != Running {
		return nil
	}
	s.Scheduler.Step(s.World, dt)

	events := s.World.Events().Drain()
	for _, evt := range events {
		s.handle(evt)
		for _, fn := range s.observers {
			fn(evt)
		}
	}
	return events
}

func (s *Sim) handle(evt ecs.Event) {
	fields := logrus.Fields{"t": s.World.Elapsed(), "event": evt.Type}
	switch data := evt.Data.(type) {
	case ecs.StateChange:
		fields["from"], fields["to"] = data.From, data.To
		s.log.WithFields(fields).Info("witch state")
	case ecs.Touch:
		fields["trigger"], fields["damage"] = data.Trigger, data.Damage
		fields["hp"] = s.playerHealth.Current()
		s.log.WithFields(fields).Info("player hurt")
	case ecs.Collected:
		fields["amount"], fields["total"] = data.Amount, data.Total
		fields["witch_hp"] = s.witchHealth.Current()
		s.log.WithFields(fields).Info("cookie collected")
	case ecs.Spawned:
		fields["x"], fields["y"] = data.Position.X, data.Position.Y
		s.log.WithFields(fields).Debug("cookie spawned")
	case ecs.Footstep:
		fields["gait"] = data.Gait
		s.log.WithFields(fields).Trace("footstep")
	default:
		s.log.WithFields(fields).Info("scene event")
	}

	switch evt.Type {
	case ecs.EventPlayerDied:
		s.outcome = Died
		s.log.WithField("t", s.World.Elapsed()).Warn("player died")
	case ecs.EventEscaped:
		s.outcome = Escaped
		s.log.WithField("t", s.World.Elapsed()).Info("player escaped")
	}
}

// Collect adds amount cookies to the player's inventory directly, firing the
// configured hooks as a pickup would.
func (s *Sim) Collect(amount int) {
	s.inventory.Add(amount)
}

// SetInput steers the player manually. A zero vector hands control back to
// the scripted route.
func (s *Sim) SetInput(dir common.Vec2) {
	if ctl, ok := ecs.Get(s.World, s.Player, component.PlayerControlComponent.Kind()); ok {
		ctl.Input = dir
	}
}

// Interact requests a cauldron interaction on the next step.
func (s *Sim) Interact() {
	if ctl, ok := ecs.Get(s.World, s.Player, component.PlayerControlComponent.Kind()); ok {
		ctl.Interact = true
	}
}

// ReloadWitch applies new witch tunables without resetting escalation.
func (s *Sim) ReloadWitch(spec *prefabs.WitchSpec) error {
	if err := s.ctrl.Reconfigure(spec.AI); err != nil {
		return fmt.Errorf("sim: reload witch: %w", err)
	}
	s.witchHealth.Reconfigure(spec.Health)
	s.log.Info("witch config reloaded")
	return nil
}

// ReloadScript recompiles every collect hook backed by the named script.
func (s *Sim) ReloadScript(name string, src []byte) error {
	for _, h := range s.scripts {
		if h.Name() != name {
			continue
		}
		if err := h.Reload(src); err != nil {
			return fmt.Errorf("sim: reload %s: %w", name, err)
		}
		s.log.WithField("script", name).Info("collect script reloaded")
	}
	return nil
}

func (s *Sim) Outcome() Outcome              { return s.outcome }
func (s *Sim) Controller() *ai.Controller    { return s.ctrl }
func (s *Sim) WitchHealth() *health.Witch    { return s.witchHealth }
func (s *Sim) PlayerHealth() *health.Player  { return s.playerHealth }
func (s *Sim) Inventory() *collect.Inventory { return s.inventory }

// Agent is the witch's navigator.
func (s *Sim) Agent() *nav.Agent {
	na, ok := ecs.Get(s.World, s.Witch, component.NavAgentComponent.Kind())
	if !ok {
		return nil
	}
	return na.Agent
}

func (s *Sim) position(e ecs.Entity) (common.Vec2, common.Vec2) {
	t, ok := ecs.Get(s.World, e, component.TransformComponent.Kind())
	if !ok {
		return common.Vec2{}, common.Vec2{}
	}
	return t.Position, t.Forward
}
