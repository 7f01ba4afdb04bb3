package prefabs

import "gopkg.in/yaml.v3"

const (
	HookAggression = "aggression"
	HookDamage     = "damage"
	HookScript     = "script"
)

var hookTypes = map[string]struct{}{
	HookAggression: {},
	HookDamage:     {},
	HookScript:     {},
}

// CollectSpec lists what happens when the player gathers cookies. Hooks run
// in order and are independent of each other.
type CollectSpec struct {
	Hooks []HookSpec `yaml:"hooks"`
}

type HookSpec struct {
	Type   string `yaml:"type"`
	Config any    `yaml:"config"`
}

// DamageHookSpec overrides the witch's per-cookie damage when PerUnit > 0.
type DamageHookSpec struct {
	PerUnit float64 `yaml:"per_unit"`
}

type ScriptHookSpec struct {
	Script string `yaml:"script"`
}

// DecodeSpec re-decodes a loosely typed yaml value into T.
func DecodeSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}
