package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/witchwood/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			require.Len(t, Entities(w), c.create)
			if c.destroyIndex < 0 {
				return
			}
			require.True(t, DestroyEntity(w, ents[c.destroyIndex]))
			assert.False(t, IsAlive(w, ents[c.destroyIndex]))
			assert.False(t, DestroyEntity(w, ents[c.destroyIndex]), "double destroy")
			assert.Len(t, Entities(w), c.create-1)
		})
	}
}

func TestRecycledIDGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	require.NoError(t, Add(w, old, h.Kind(), intPtr(1)))
	require.True(t, DestroyEntity(w, old))

	fresh := CreateEntity(w)
	assert.Equal(t, old.id(), fresh.id())
	assert.NotEqual(t, old, fresh)
	assert.False(t, Has(w, fresh, h.Kind()), "components do not leak to a recycled id")
	assert.ErrorIs(t, Add(w, old, h.Kind(), intPtr(2)), component.ErrEntityNotAlive)
	_, ok := Get(w, old, h.Kind())
	assert.False(t, ok)
}

func TestZeroEntityNeverAlive(t *testing.T) {
	w := NewWorld()
	CreateEntity(w)
	var zero Entity
	assert.False(t, IsAlive(w, zero))
	assert.False(t, zero.Valid())
}

func TestComponentTable(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()
	h3 := component.NewComponent[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	str := func(s string) *string { return &s }
	flt := func(f float64) *float64 { return &f }

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				require.True(t, ok)
				assert.Equal(t, 10, *v)
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), str("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), str("b"))
			},
			check: func(t *testing.T) {
				assert.True(t, Has(w, e1, h2.Kind()))
				assert.True(t, Has(w, e2, h2.Kind()))
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
		{
			name:  "add_float_and_remove",
			setup: func() error { return Add(w, e1, h3.Kind(), flt(1.23)) },
			check: func(t *testing.T) {
				_, ok := Get(w, e1, h3.Kind())
				assert.True(t, ok)
			},
			teardown: func() bool { return Remove(w, e1, h3.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.setup())
			tc.check(t)
			require.True(t, tc.teardown())
		})
	}

	assert.ErrorIs(t, Add[int](w, e1, h1.Kind(), nil), component.ErrNilComponent)
}

func TestForEachAndFirst(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	_, ok := First(w, h.Kind())
	assert.False(t, ok)

	require.NoError(t, Add(w, e1, h.Kind(), intPtr(1)))
	require.NoError(t, Add(w, e3, h.Kind(), intPtr(3)))

	var ents []Entity
	ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
	set := toSet(ents)
	assert.Contains(t, set, e1)
	assert.Contains(t, set, e3)
	assert.NotContains(t, set, e2)

	first, ok := First(w, h.Kind())
	require.True(t, ok)
	assert.Equal(t, e1, first)
}

func TestForEachToleratesDestroyDuringWalk(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	for i := 0; i < 5; i++ {
		require.NoError(t, Add(w, CreateEntity(w), h.Kind(), intPtr(i)))
	}

	visited := 0
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		visited++
		DestroyEntity(w, e)
	})
	assert.Equal(t, 5, visited)
	assert.Empty(t, Entities(w))
}

func TestForEachN(t *testing.T) {
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()

	tests := []struct {
		name  string
		setup func(w *World) []Entity
		want3 int // index into setup's entities, -1 = none
		want4 int
	}{
		{
			name: "intersection",
			setup: func(w *World) []Entity {
				e1, e2, e3 := CreateEntity(w), CreateEntity(w), CreateEntity(w)
				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))
				_ = Add(w, e2, kc, intPtr(5))
				_ = Add(w, e2, kd, intPtr(7))
				_ = Add(w, e3, kb, intPtr(4))
				return []Entity{e1, e2, e3}
			},
			want3: 1,
			want4: 1,
		},
		{
			name: "ignores_dead_entities",
			setup: func(w *World) []Entity {
				e := CreateEntity(w)
				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				_ = Add(w, e, kc, intPtr(3))
				_ = Add(w, e, kd, intPtr(4))
				DestroyEntity(w, e)
				return []Entity{e}
			},
			want3: -1,
			want4: -1,
		},
		{
			name: "missing_store",
			setup: func(w *World) []Entity {
				e := CreateEntity(w)
				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(1))
				_ = Add(w, e, kc, intPtr(1))
				return []Entity{e}
			},
			want3: 0,
			want4: -1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			ents := tc.setup(w)

			var res3, res4 []Entity
			ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { res3 = append(res3, e) })
			ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { res4 = append(res4, e) })

			if tc.want3 < 0 {
				assert.Empty(t, res3)
			} else {
				assert.Equal(t, []Entity{ents[tc.want3]}, res3)
			}
			if tc.want4 < 0 {
				assert.Empty(t, res4)
			} else {
				assert.Equal(t, []Entity{ents[tc.want4]}, res4)
			}
		})
	}
}

type countingSystem struct {
	calls  int
	deltas []float64
	order  *[]string
	name   string
}

func (s *countingSystem) Update(w *World) {
	s.calls++
	s.deltas = append(s.deltas, w.Delta())
	if s.order != nil {
		*s.order = append(*s.order, s.name)
	}
}

func TestSchedulerStep(t *testing.T) {
	var order []string
	a := &countingSystem{name: "a", order: &order}
	b := &countingSystem{name: "b", order: &order}
	s := NewScheduler(a, nil, b)
	w := NewWorld()

	s.Step(w, 0.25)
	s.Step(w, 0.5)

	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
	assert.Equal(t, []float64{0.25, 0.5}, a.deltas)
	assert.Equal(t, 0.75, w.Elapsed())
	assert.Equal(t, uint64(2), w.Tick())
	assert.Len(t, s.Systems(), 2)
}

func TestEventQueue(t *testing.T) {
	w := NewWorld()
	w.Events().Emit(EventCollected, Collected{Amount: 2})
	w.Events().Emit(EventFootstep, Footstep{Gait: "walk"})
	assert.Equal(t, 2, w.Events().Len())

	evts := w.Events().Drain()
	require.Len(t, evts, 2)
	assert.Equal(t, EventCollected, evts[0].Type)
	assert.Equal(t, 2, evts[0].Data.(Collected).Amount)
	assert.Nil(t, w.Events().Drain())
}

func TestEntityString(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	assert.Equal(t, "1v1", e.String())

	w.DestroyEntity(e)
	reused := w.CreateEntity()
	assert.NotEqual(t, e.String(), reused.String())

	text, err := Entity(0).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "none", string(text))
}

type probe struct{}

func TestAddErrorsNameKind(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[probe]()
	assert.Equal(t, "probe", h.Kind().String())

	e := w.CreateEntity()
	w.DestroyEntity(e)
	err := Add(w, e, h.Kind(), &probe{})
	require.ErrorIs(t, err, component.ErrEntityNotAlive)
	assert.Contains(t, err.Error(), "probe")
}
