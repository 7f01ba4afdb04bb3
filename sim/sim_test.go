package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/witchwood/ai"
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/ecs"
	"github.com/milk9111/witchwood/logger"
	"github.com/milk9111/witchwood/prefabs"
)

const frame = 1.0 / 60

func init() {
	logger.Silence()
}

func baseScene() *prefabs.SceneSpec {
	return &prefabs.SceneSpec{
		Name:         "test",
		Bounds:       common.Rect{Width: 30, Height: 20},
		CellSize:     0.5,
		Clearance:    0.5,
		PlayerSpawn:  common.V(10, 10),
		WitchSpawn:   common.V(25, 10),
		WitchFacing:  common.V(1, 0),
		CookieRadius: 0.4,
		Collect: prefabs.CollectSpec{Hooks: []prefabs.HookSpec{
			{Type: prefabs.HookAggression},
			{Type: prefabs.HookDamage},
		}},
	}
}

type fixture struct {
	scene  *prefabs.SceneSpec
	witch  prefabs.WitchSpec
	player prefabs.PlayerSpec
	opts   Options
}

func newFixture() *fixture {
	return &fixture{
		scene:  baseScene(),
		witch:  prefabs.DefaultWitchSpec(),
		player: prefabs.DefaultPlayerSpec(),
		opts:   Options{Seed: 7},
	}
}

func (f *fixture) build(t *testing.T) *Sim {
	t.Helper()
	s, err := New(f.scene, &f.witch, &f.player, f.opts)
	require.NoError(t, err)
	return s
}

func eventsOf(events []ecs.Event, typ string) []ecs.Event {
	var out []ecs.Event
	for _, e := range events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func TestCollectRunsConfiguredHooks(t *testing.T) {
	s := newFixture().build(t)

	s.Collect(0)
	assert.Equal(t, 1.0, s.Controller().AggressionLevel())
	assert.Equal(t, 100.0, s.WitchHealth().Current())

	s.Collect(2)
	assert.Equal(t, 2, s.Inventory().Count())
	assert.Equal(t, 2.0, s.Controller().AggressionLevel(), "one escalation per unit")
	assert.Equal(t, 80.0, s.WitchHealth().Current())

	walk, run := s.Controller().Speeds()
	assert.InDelta(t, 1.9, walk, 1e-9)
	assert.InDelta(t, 5.0, run, 1e-9)
}

func TestDamageHookPerUnitOverride(t *testing.T) {
	f := newFixture()
	f.scene.Collect.Hooks = []prefabs.HookSpec{{Type: prefabs.HookDamage, Config: map[string]any{"per_unit": 25}}}
	s := f.build(t)

	s.Collect(1)
	assert.Equal(t, 75.0, s.WitchHealth().Current())
	assert.Equal(t, 1.0, s.Controller().AggressionLevel(), "no aggression hook configured")
}

func TestWitchSpotsPlayerAndPursues(t *testing.T) {
	f := newFixture()
	f.scene.WitchFacing = common.V(-1, 0)
	s := f.build(t)

	events := s.Step(frame)
	changes := eventsOf(events, ecs.EventStateChanged)
	require.Len(t, changes, 1)
	assert.Equal(t, ecs.StateChange{Entity: s.Witch, From: "idle", To: "pursue"}, changes[0].Data)
	assert.Equal(t, ai.StatePursue, s.Controller().State())

	for i := 0; i < 30; i++ {
		s.Step(frame)
	}
	snap := s.Snapshot()
	assert.Less(t, snap.Witch.Position.X, 25.0, "closing in")
	assert.Equal(t, ai.StatePursue, snap.Witch.Brain.State)
}

func TestTouchDamageRespectsInterval(t *testing.T) {
	f := newFixture()
	f.scene.WitchSpawn = common.V(11, 10)
	f.scene.WitchFacing = common.V(-1, 0)
	s := f.build(t)

	var touches []ecs.Event
	for i := 0; i < 4; i++ {
		touches = append(touches, eventsOf(s.Step(0.25), ecs.EventWitchTouched)...)
	}
	require.Len(t, touches, 1)
	assert.Equal(t, "proximity", touches[0].Data.(ecs.Touch).Trigger)
	assert.Equal(t, 90, s.PlayerHealth().Current())

	touches = eventsOf(s.Step(0.25), ecs.EventWitchTouched)
	assert.Len(t, touches, 1)
	assert.Equal(t, 80, s.PlayerHealth().Current())
	assert.Equal(t, 2, s.Controller().Hits())
}

func TestPlayerDeathEndsRun(t *testing.T) {
	f := newFixture()
	f.scene.WitchSpawn = common.V(11, 10)
	f.player.Health = 10
	s := f.build(t)

	var died int
	s.Observe(func(e ecs.Event) {
		if e.Type == ecs.EventPlayerDied {
			died++
		}
	})

	events := s.Step(0.25)
	assert.Len(t, eventsOf(events, ecs.EventPlayerDied), 1)
	assert.Equal(t, Died, s.Outcome())
	assert.Equal(t, 1, died)

	assert.Nil(t, s.Step(0.25), "finished runs do not advance")
	assert.Equal(t, uint64(1), s.Snapshot().Tick)
}

func TestCookiePickupCollected(t *testing.T) {
	f := newFixture()
	f.scene.Cookies = []common.Vec2{common.V(10, 10), common.V(2, 2)}
	s := f.build(t)
	require.Len(t, s.Snapshot().Pickups, 2)

	events := s.Step(frame)
	collected := eventsOf(events, ecs.EventCollected)
	require.Len(t, collected, 1)
	data := collected[0].Data.(ecs.Collected)
	assert.Equal(t, "cookie", data.Kind)
	assert.Equal(t, 1, data.Amount)
	assert.Equal(t, 1, data.Total)

	assert.False(t, ecs.IsAlive(s.World, data.Pickup))
	assert.Equal(t, []common.Vec2{common.V(2, 2)}, s.Snapshot().Pickups)
	assert.Equal(t, 90.0, s.WitchHealth().Current())
	assert.Equal(t, 1.5, s.Controller().AggressionLevel())

	assert.Empty(t, eventsOf(s.Step(frame), ecs.EventCollected))
}

func TestParalysisOpensGatesAndPlayerEscapes(t *testing.T) {
	f := newFixture()
	f.scene.Gates = []common.Rect{{X: 20, Y: 0, Width: 1, Height: 20}}
	f.scene.Exits = []common.Rect{{X: 8, Y: 8, Width: 4, Height: 4}}
	f.scene.Collect.Hooks = []prefabs.HookSpec{{Type: prefabs.HookDamage}}
	s := f.build(t)

	gate := common.V(20.5, 10)
	assert.False(t, s.Grid.WalkableAt(gate))

	events := s.Step(frame)
	assert.Empty(t, eventsOf(events, ecs.EventEscaped), "gates closed")

	s.Collect(10)
	require.True(t, s.WitchHealth().Paralyzed())

	events = s.Step(frame)
	assert.Len(t, eventsOf(events, ecs.EventParalyzed), 1)
	assert.Len(t, eventsOf(events, ecs.EventGateOpened), 1)
	assert.Len(t, eventsOf(events, ecs.EventEscaped), 1)
	assert.Equal(t, Escaped, s.Outcome())
	assert.False(t, s.Controller().Enabled())
	assert.True(t, s.Grid.WalkableAt(gate))
	assert.True(t, s.Snapshot().GatesOpen)
}

func TestRecoveryClosesGates(t *testing.T) {
	f := newFixture()
	f.scene.Gates = []common.Rect{{X: 20, Y: 0, Width: 1, Height: 20}}
	f.scene.Collect.Hooks = []prefabs.HookSpec{{Type: prefabs.HookDamage}}
	f.witch.Health.ParalysisDuration = 1
	s := f.build(t)

	s.Collect(10)
	events := s.Step(0.25)
	require.Len(t, eventsOf(events, ecs.EventParalyzed), 1)
	assert.False(t, s.Controller().Enabled())
	assert.Equal(t, ai.StateIdle, s.Controller().State())
	assert.InDelta(t, 0.75, s.WitchHealth().ParalysisRemaining(), 1e-9)

	events = s.Step(0.5)
	assert.Empty(t, eventsOf(events, ecs.EventRecovered))

	events = s.Step(0.5)
	assert.Len(t, eventsOf(events, ecs.EventRecovered), 1)
	assert.Len(t, eventsOf(events, ecs.EventGateClosed), 1)
	assert.True(t, s.Controller().Enabled())
	assert.Equal(t, 100.0, s.WitchHealth().Current())
	assert.False(t, s.Grid.WalkableAt(common.V(20.5, 10)))
	assert.Equal(t, Running, s.Outcome())
}

func TestCauldronSpawnsCookiesWithCooldown(t *testing.T) {
	f := newFixture()
	f.scene.Cauldron = &prefabs.CauldronSpec{
		Position:    common.V(11, 10),
		Radius:      2,
		PerInteract: 3,
		Cooldown:    2,
		Spawns:      []common.Vec2{common.V(13, 10), common.V(13, 12), common.V(11, 13)},
	}
	s := f.build(t)

	s.Interact()
	events := s.Step(frame)
	assert.Len(t, eventsOf(events, ecs.EventSpawned), 3)
	assert.Len(t, s.Snapshot().Pickups, 3)

	s.Interact()
	assert.Empty(t, eventsOf(s.Step(frame), ecs.EventSpawned), "cooling down")

	s.Step(2)
	s.Interact()
	assert.Len(t, eventsOf(s.Step(frame), ecs.EventSpawned), 3)
}

func TestCauldronOutOfReach(t *testing.T) {
	f := newFixture()
	f.scene.Cauldron = &prefabs.CauldronSpec{
		Position:    common.V(2, 2),
		Radius:      2,
		PerInteract: 3,
		Cooldown:    2,
		Spawns:      []common.Vec2{common.V(3, 3)},
	}
	s := f.build(t)

	s.Interact()
	assert.Empty(t, eventsOf(s.Step(frame), ecs.EventSpawned))
}

func TestManualInputOverridesRoute(t *testing.T) {
	f := newFixture()
	f.scene.Route = prefabs.RouteSpec{Points: []common.Vec2{common.V(10, 2)}}
	s := f.build(t)

	s.SetInput(common.V(1, 0))
	for i := 0; i < 30; i++ {
		s.Step(frame)
	}
	pos := s.Snapshot().Player.Position
	assert.Greater(t, pos.X, 11.0)
	assert.InDelta(t, 10.0, pos.Y, 0.01)

	s.SetInput(common.Vec2{})
	for i := 0; i < 30; i++ {
		s.Step(frame)
	}
	assert.Less(t, s.Snapshot().Player.Position.Y, 9.5, "back on the route")
}

func TestScriptHookAndReload(t *testing.T) {
	scripts := map[string][]byte{
		"test.tengo": []byte(`on_collect := func(engine, units) { engine.escalate() }`),
	}
	f := newFixture()
	f.scene.Collect.Hooks = []prefabs.HookSpec{{Type: prefabs.HookScript, Config: map[string]any{"script": "test.tengo"}}}
	f.opts.ScriptLoader = func(name string) ([]byte, error) {
		src, ok := scripts[name]
		if !ok {
			return nil, errors.New("missing")
		}
		return src, nil
	}
	s := f.build(t)

	s.Collect(2)
	assert.Equal(t, 1.5, s.Controller().AggressionLevel(), "script escalates once per event")

	require.NoError(t, s.ReloadScript("test.tengo", []byte(`on_collect := func(engine, units) { engine.damage_witch(units * 5) }`)))
	s.Collect(2)
	assert.Equal(t, 90.0, s.WitchHealth().Current())
	assert.Equal(t, 1.5, s.Controller().AggressionLevel())

	assert.Error(t, s.ReloadScript("test.tengo", []byte(`on_collect := func(`)))
	s.Collect(1)
	assert.Equal(t, 85.0, s.WitchHealth().Current(), "previous program kept")

	assert.NoError(t, s.ReloadScript("other.tengo", nil), "unknown scripts are ignored")
}

func TestNewErrors(t *testing.T) {
	f := newFixture()
	f.scene.Collect.Hooks = []prefabs.HookSpec{{Type: "heal"}}
	_, err := New(f.scene, &f.witch, &f.player, f.opts)
	assert.Error(t, err)

	f = newFixture()
	f.scene.Collect.Hooks = []prefabs.HookSpec{{Type: prefabs.HookScript, Config: map[string]any{"script": "nope.tengo"}}}
	f.opts.ScriptLoader = func(string) ([]byte, error) { return nil, errors.New("missing") }
	_, err = New(f.scene, &f.witch, &f.player, f.opts)
	assert.ErrorContains(t, err, "nope.tengo")

	f = newFixture()
	f.witch.AI.VisionRange = 0
	_, err = New(f.scene, &f.witch, &f.player, f.opts)
	assert.Error(t, err)

	_, err = New(nil, &f.witch, &f.player, f.opts)
	assert.Error(t, err)
}

func TestReloadWitchKeepsEscalation(t *testing.T) {
	s := newFixture().build(t)
	s.Collect(1)

	spec := prefabs.DefaultWitchSpec()
	spec.AI.LoseSightDelay = 5
	spec.Health.PerCookie = 20
	require.NoError(t, s.ReloadWitch(&spec))
	assert.Equal(t, 5.0, s.Controller().Config().LoseSightDelay)
	assert.Equal(t, 1.5, s.Controller().AggressionLevel())

	s.Collect(1)
	assert.Equal(t, 70.0, s.WitchHealth().Current(), "per-cookie damage follows the reloaded config")

	spec.AI.RunSpeed = -1
	assert.Error(t, s.ReloadWitch(&spec))
}

func TestLoadEmbeddedCemetery(t *testing.T) {
	s, err := Load("cemetery.yaml", "witch.yaml", "player.yaml", Options{Seed: 1})
	require.NoError(t, err)

	var states int
	s.Observe(func(e ecs.Event) {
		if e.Type == ecs.EventStateChanged {
			states++
		}
	})
	for i := 0; i < 600 && s.Outcome() == Running; i++ {
		s.Step(frame)
	}

	snap := s.Snapshot()
	assert.Greater(t, snap.Time, 0.0)
	assert.Greater(t, states, 0)
	assert.False(t, snap.GatesOpen)
	assert.LessOrEqual(t, snap.Player.Health, snap.Player.MaxHealth)
}

func TestOutcomeText(t *testing.T) {
	for o, want := range map[Outcome]string{Running: "running", Escaped: "escaped", Died: "died"} {
		b, err := o.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	}
}
