package ai

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/witchwood/common"
)

func TestWandererGating(t *testing.T) {
	cases := []struct {
		name      string
		pending   bool
		remaining float64
		want      bool
	}{
		{"arrived", false, 0.2, true},
		{"pending", true, 0, false},
		{"still_walking", false, 3, false},
		{"at_stopping_distance", false, 0.5, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWanderer(10, 3, 5, rand.New(rand.NewSource(7)))
			_, ok := w.MaybeAdvance(0.1, common.V(0, 0), c.pending, c.remaining, 0.5, newFakeNav())
			assert.Equal(t, c.want, ok)
		})
	}
}

func TestWandererCooldown(t *testing.T) {
	nav := newFakeNav()
	w := NewWanderer(10, 3, 5, rand.New(rand.NewSource(7)))

	_, ok := w.MaybeAdvance(0, common.V(0, 0), false, 0, 0.5, nav)
	require.True(t, ok, "timer starts primed")
	assert.Equal(t, 0.0, w.Timer())

	for i := 0; i < 9; i++ {
		_, ok = w.MaybeAdvance(0.5, common.V(0, 0), false, 0, 0.5, nav)
		assert.False(t, ok)
	}
	_, ok = w.MaybeAdvance(0.5, common.V(0, 0), false, 0, 0.5, nav)
	assert.True(t, ok)
}

func TestWandererRejectsIncompletePath(t *testing.T) {
	nav := newFakeNav()
	nav.completeOK = false
	w := NewWanderer(10, 3, 5, rand.New(rand.NewSource(7)))

	_, ok := w.MaybeAdvance(0.1, common.V(0, 0), false, 0, 0.5, nav)
	assert.False(t, ok)
	assert.InDelta(t, 5.1, w.Timer(), 1e-12, "timer keeps running after a rejected candidate")

	nav.completeOK = true
	_, ok = w.MaybeAdvance(0.1, common.V(0, 0), false, 0, 0.5, nav)
	assert.True(t, ok)

	nav.sampleOK = false
	w = NewWanderer(10, 3, 5, rand.New(rand.NewSource(7)))
	_, ok = w.MaybeAdvance(0.1, common.V(0, 0), false, 0, 0.5, nav)
	assert.False(t, ok)
}

func TestWandererSamplesAnnulus(t *testing.T) {
	nav := newFakeNav()
	origin := common.V(4, -2)
	w := NewWanderer(10, 3, 0, rand.New(rand.NewSource(42)))

	for i := 0; i < 500; i++ {
		dest, ok := w.MaybeAdvance(0, origin, false, 0, 0.5, nav)
		require.True(t, ok)
		d := dest.Dist(origin)
		assert.GreaterOrEqual(t, d, 3.0-1e-9)
		assert.LessOrEqual(t, d, 10.0+1e-9)
	}
}
