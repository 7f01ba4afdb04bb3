package ai

import "fmt"

// Config holds the witch's tunables. Zero masks fall back to the obstacle and
// target layers.
type Config struct {
	WalkSpeed float64 `yaml:"walk_speed"`
	RunSpeed  float64 `yaml:"run_speed"`

	WanderRadius   float64 `yaml:"wander_radius"`
	WanderMinDist  float64 `yaml:"wander_min_dist"`
	WanderCooldown float64 `yaml:"wander_cooldown"`

	LoseSightDelay float64 `yaml:"lose_sight_delay"`

	VisionRange  float64 `yaml:"vision_range"`
	VisionAngle  float64 `yaml:"vision_angle"` // full cone, degrees
	VisionRadius float64 `yaml:"vision_radius"`
	ObstacleMask Layer   `yaml:"obstacle_mask"`
	TargetMask   Layer   `yaml:"target_mask"`

	TouchDamage    int     `yaml:"touch_damage"`
	DamageInterval float64 `yaml:"damage_interval"`
	HitRadius      float64 `yaml:"hit_radius"`

	Escalation Escalation `yaml:"escalation"`
}

func DefaultConfig() Config {
	return Config{
		WalkSpeed:      1.5,
		RunSpeed:       4,
		WanderRadius:   10,
		WanderMinDist:  3,
		WanderCooldown: 5,
		LoseSightDelay: 3,
		VisionRange:    60,
		VisionAngle:    60,
		VisionRadius:   0.5,
		ObstacleMask:   LayerObstacle,
		TargetMask:     LayerTarget,
		TouchDamage:    10,
		DamageInterval: 1,
		HitRadius:      1.2,
		Escalation:     DefaultEscalation(),
	}
}

func (c Config) Validate() error {
	switch {
	case c.WalkSpeed < 0 || c.RunSpeed < 0:
		return fmt.Errorf("ai: speeds must be non-negative (walk=%v run=%v)", c.WalkSpeed, c.RunSpeed)
	case c.WanderRadius <= 0:
		return fmt.Errorf("ai: wander_radius must be positive, got %v", c.WanderRadius)
	case c.WanderMinDist < 0:
		return fmt.Errorf("ai: wander_min_dist must be non-negative, got %v", c.WanderMinDist)
	case c.WanderCooldown < 0:
		return fmt.Errorf("ai: wander_cooldown must be non-negative, got %v", c.WanderCooldown)
	case c.LoseSightDelay < 0:
		return fmt.Errorf("ai: lose_sight_delay must be non-negative, got %v", c.LoseSightDelay)
	case c.VisionRange <= 0:
		return fmt.Errorf("ai: vision_range must be positive, got %v", c.VisionRange)
	case c.VisionAngle <= 0 || c.VisionAngle > 360:
		return fmt.Errorf("ai: vision_angle must be in (0, 360], got %v", c.VisionAngle)
	case c.VisionRadius < 0:
		return fmt.Errorf("ai: vision_radius must be non-negative, got %v", c.VisionRadius)
	case c.TouchDamage < 0:
		return fmt.Errorf("ai: touch_damage must be non-negative, got %d", c.TouchDamage)
	case c.DamageInterval < 0 || c.HitRadius < 0:
		return fmt.Errorf("ai: damage_interval and hit_radius must be non-negative")
	case c.Escalation.Level <= 0:
		return fmt.Errorf("ai: escalation.level must be positive, got %v", c.Escalation.Level)
	case c.Escalation.Run < 0 || c.Escalation.Walk < 0:
		return fmt.Errorf("ai: escalation speeds must be non-negative")
	}
	return nil
}

// Vision derives the perception parameters. VisionAngle is the full cone.
func (c Config) Vision() Vision {
	obstacle, target := c.ObstacleMask, c.TargetMask
	if obstacle == 0 {
		obstacle = LayerObstacle
	}
	if target == 0 {
		target = LayerTarget
	}
	return Vision{
		Range:        c.VisionRange,
		HalfAngle:    c.VisionAngle / 2,
		ProbeRadius:  c.VisionRadius,
		ObstacleMask: obstacle,
		TargetMask:   target,
	}
}
