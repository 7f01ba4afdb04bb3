package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/witchwood/ai"
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/health"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	err := loadInto(filename, &spec)
	return spec, err
}

// loadInto unmarshals over out, so fields missing from the file keep the
// values out already holds.
func loadInto[T any](filename string, out *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type BodySpec struct {
	Radius        float64 `yaml:"radius"`
	TriggerRadius float64 `yaml:"trigger_radius"`
}

type FootstepsSpec struct {
	WalkInterval float64 `yaml:"walk_interval"`
	RunInterval  float64 `yaml:"run_interval"`
}

type WitchSpec struct {
	Name             string             `yaml:"name"`
	AI               ai.Config          `yaml:"ai"`
	Health           health.WitchConfig `yaml:"health"`
	Body             BodySpec           `yaml:"body"`
	StoppingDistance float64            `yaml:"stopping_distance"`
	Footsteps        FootstepsSpec      `yaml:"footsteps"`
}

func DefaultWitchSpec() WitchSpec {
	return WitchSpec{
		Name:             "witch",
		AI:               ai.DefaultConfig(),
		Health:           health.DefaultWitchConfig(),
		Body:             BodySpec{Radius: 0.5, TriggerRadius: 1},
		StoppingDistance: 0.5,
		Footsteps:        FootstepsSpec{WalkInterval: 0.6, RunInterval: 0.35},
	}
}

// LoadWitchSpec reads a witch prefab over the defaults and validates it.
func LoadWitchSpec(filename string) (*WitchSpec, error) {
	spec := DefaultWitchSpec()
	if err := loadInto(filename, &spec); err != nil {
		return nil, err
	}
	if err := spec.AI.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	if spec.Body.Radius <= 0 {
		return nil, fmt.Errorf("prefabs: %s: body.radius must be positive", filename)
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name   string   `yaml:"name"`
	Health int      `yaml:"health"`
	Speed  float64  `yaml:"speed"`
	Reach  float64  `yaml:"reach"`
	Body   BodySpec `yaml:"body"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:   "player",
		Health: 100,
		Speed:  3,
		Reach:  0.25,
		Body:   BodySpec{Radius: 0.4},
	}
}

func LoadPlayerSpec(filename string) (*PlayerSpec, error) {
	spec := DefaultPlayerSpec()
	if err := loadInto(filename, &spec); err != nil {
		return nil, err
	}
	if spec.Health <= 0 || spec.Body.Radius <= 0 {
		return nil, fmt.Errorf("prefabs: %s: health and body.radius must be positive", filename)
	}
	return &spec, nil
}

type RouteSpec struct {
	Loop   bool          `yaml:"loop"`
	Points []common.Vec2 `yaml:"points"`
}

type CauldronSpec struct {
	Position    common.Vec2   `yaml:"position"`
	Radius      float64       `yaml:"radius"`
	PerInteract int           `yaml:"per_interact"`
	Cooldown    float64       `yaml:"cooldown"`
	Spawns      []common.Vec2 `yaml:"spawns"`
}

type SceneSpec struct {
	Name         string        `yaml:"name"`
	Bounds       common.Rect   `yaml:"bounds"`
	CellSize     float64       `yaml:"cell_size"`
	Clearance    float64       `yaml:"clearance"`
	PlayerSpawn  common.Vec2   `yaml:"player_spawn"`
	WitchSpawn   common.Vec2   `yaml:"witch_spawn"`
	WitchFacing  common.Vec2   `yaml:"witch_facing"`
	Obstacles    []common.Rect `yaml:"obstacles"`
	Gates        []common.Rect `yaml:"gates"`
	Exits        []common.Rect `yaml:"exits"`
	Cookies      []common.Vec2 `yaml:"cookies"`
	CookieRadius float64       `yaml:"cookie_radius"`
	Route        RouteSpec     `yaml:"route"`
	Cauldron     *CauldronSpec `yaml:"cauldron"`
	Collect      CollectSpec   `yaml:"collect"`
}

var ErrEmptyBounds = errors.New("prefabs: scene bounds must have positive size")

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec := SceneSpec{CellSize: 0.5, CookieRadius: 0.4}
	if err := loadInto(filename, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s *SceneSpec) Validate() error {
	if s.Bounds.Width <= 0 || s.Bounds.Height <= 0 {
		return ErrEmptyBounds
	}
	if s.CellSize <= 0 {
		return fmt.Errorf("cell_size must be positive, got %v", s.CellSize)
	}
	if !s.Bounds.Contains(s.PlayerSpawn) || !s.Bounds.Contains(s.WitchSpawn) {
		return fmt.Errorf("spawns must lie inside bounds")
	}
	for i, h := range s.Collect.Hooks {
		if _, ok := hookTypes[h.Type]; !ok {
			return fmt.Errorf("collect.hooks[%d]: unknown type %q", i, h.Type)
		}
	}
	return nil
}
