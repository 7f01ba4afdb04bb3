package ecs

import "github.com/milk9111/witchwood/ecs/component"

// World owns entities, component stores and the simulation clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue

	dt      float64
	elapsed float64
	tick    uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	s, ok := w.stores[id]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddComponent stores value for e under id, replacing any previous value.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(id, true).Set(e, value)
	return nil
}

func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.store(id, false)
	if !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	return w.store(id, false).Remove(e)
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Advance moves the simulation clock forward by dt before systems run.
func (w *World) Advance(dt float64) {
	if w == nil {
		return
	}
	w.dt = dt
	w.elapsed += dt
	w.tick++
}

// Delta is the step of the current tick in seconds.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Elapsed is the simulated time since the world was created.
func (w *World) Elapsed() float64 {
	if w == nil {
		return 0
	}
	return w.elapsed
}

func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
