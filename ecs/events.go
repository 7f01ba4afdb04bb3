package ecs

import "github.com/milk9111/witchwood/common"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventStateChanged = "witch.state_changed"
	EventWitchTouched = "witch.touched"
	EventParalyzed    = "witch.paralyzed"
	EventRecovered    = "witch.recovered"
	EventCollected    = "pickup.collected"
	EventSpawned      = "pickup.spawned"
	EventPlayerDied   = "player.died"
	EventFootstep     = "cue.footstep"
	EventGateOpened   = "gate.opened"
	EventGateClosed   = "gate.closed"
	EventEscaped      = "player.escaped"
)

// StateChange is the payload of EventStateChanged.
type StateChange struct {
	Entity Entity
	From   string
	To     string
}

// Touch is the payload of EventWitchTouched.
type Touch struct {
	Witch   Entity
	Trigger string
	Damage  int
}

// Collected is the payload of EventCollected.
type Collected struct {
	Pickup Entity
	Kind   string
	Amount int
	Total  int
}

// Spawned is the payload of EventSpawned.
type Spawned struct {
	Source   Entity
	Pickup   Entity
	Position common.Vec2
}

// Footstep is the payload of EventFootstep.
type Footstep struct {
	Entity Entity
	Gait   string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Emit is shorthand for Push(Event{Type: typ, Data: data}).
func (q *EventQueue) Emit(typ string, data any) {
	q.Push(Event{Type: typ, Data: data})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len is the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
