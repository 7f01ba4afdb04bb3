package ai

import "github.com/milk9111/witchwood/common"

// minPerceiveDistance guards the direction computation when the target sits
// on top of the agent.
const minPerceiveDistance = 1e-6

// Vision holds the perception cone parameters.
type Vision struct {
	Range       float64
	HalfAngle   float64 // degrees
	ProbeRadius float64

	ObstacleMask Layer
	TargetMask   Layer
}

// CanPerceive reports whether target is visible from pose. The test runs in
// four stages: range, cone, a thick probe that must sweep something in the
// target mask, then a thin ray against obstacles and target whose first hit
// must be the target.
func (v Vision) CanPerceive(pose Pose, target common.Vec2, sensor Sensor) bool {
	if sensor == nil {
		return false
	}

	toTarget := target.Sub(pose.Position)
	dist := toTarget.Len()
	if dist > v.Range || dist < minPerceiveDistance {
		return false
	}

	// Without a facing there is no cone to be inside.
	if pose.Forward.IsZero() {
		return false
	}
	dir := toTarget.Normalize()
	if common.Angle(pose.Forward, dir) > v.HalfAngle {
		return false
	}

	if _, ok := sensor.Sweep(pose.Position, dir, v.ProbeRadius, v.Range, v.TargetMask); !ok {
		return false
	}

	hit, ok := sensor.Sweep(pose.Position, dir, 0, v.Range, v.ObstacleMask|v.TargetMask)
	if !ok {
		return false
	}
	return hit.Layer.Has(v.TargetMask)
}
