package ai

import "github.com/milk9111/witchwood/common"

// Trigger names the source of a contact-damage attempt.
type Trigger uint8

const (
	TriggerOverlap Trigger = iota
	TriggerContact
	TriggerProximity
)

func (t Trigger) String() string {
	switch t {
	case TriggerOverlap:
		return "overlap"
	case TriggerContact:
		return "contact"
	case TriggerProximity:
		return "proximity"
	default:
		return "unknown"
	}
}

// ContactArbiter applies touch damage through a single cooldown gate no
// matter how many triggers fire.
type ContactArbiter struct {
	Damage    int
	Interval  float64
	HitRadius float64

	next float64
	hits int
}

func (c *ContactArbiter) Ready(now float64) bool {
	return now >= c.next
}

// Try damages h unless the gate is closed or h is missing or dead.
func (c *ContactArbiter) Try(now float64, h Health) bool {
	if h == nil || now < c.next || !h.Alive() {
		return false
	}
	h.TakeDamage(c.Damage)
	if next := now + c.Interval; next > c.next {
		c.next = next
	}
	c.hits++
	return true
}

// Poll is the proximity trigger: it damages h when target is within HitRadius.
func (c *ContactArbiter) Poll(now float64, agent, target common.Vec2, h Health) bool {
	if now < c.next {
		return false
	}
	if agent.Dist(target) > c.HitRadius {
		return false
	}
	return c.Try(now, h)
}

func (c *ContactArbiter) NextDamageTime() float64 {
	return c.next
}

// Hits is the number of damage applications so far.
func (c *ContactArbiter) Hits() int {
	return c.hits
}
