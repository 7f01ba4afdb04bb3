package ecs

import (
	"fmt"

	"github.com/milk9111/witchwood/ecs/component"
)

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities lists every live entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if value == nil {
		return fmt.Errorf("%w: %s", component.ErrNilComponent, kind)
	}
	if err := w.AddComponent(e, kind.ID(), value); err != nil {
		return fmt.Errorf("add %s to %s: %w", kind, e, err)
	}
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind.ID())
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.GetComponent(e, kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// First returns the first live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	for _, e := range w.store(kind.ID(), false).Entities() {
		if w.IsAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every entity with kind. Components may be added or removed
// during the walk; removed entities are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	for _, e := range w.store(kind.ID(), false).Entities() {
		a, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil {
		return
	}
	for _, e := range IntersectEntities(w.store(ka.ID(), false), w.store(kb.ID(), false)) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil {
		return
	}
	for _, e := range IntersectEntities(w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false)) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil {
		return
	}
	for _, e := range IntersectEntities(w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false), w.store(kd.ID(), false)) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		d, okD := Get(w, e, kd)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}
