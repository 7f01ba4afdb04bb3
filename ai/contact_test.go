package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/witchwood/common"
)

func TestContactArbiterSingleHitPerInterval(t *testing.T) {
	h := &fakeHealth{hp: 100}
	c := ContactArbiter{Damage: 10, Interval: 1, HitRadius: 1.2}

	require.True(t, c.Try(0.25, h))
	assert.False(t, c.Try(0.25, h))
	assert.False(t, c.Poll(0.5, common.V(0, 0), common.V(1, 0), h))
	assert.False(t, c.Try(1.0, h))
	assert.Equal(t, []int{10}, h.taken)

	assert.True(t, c.Poll(1.25, common.V(0, 0), common.V(1, 0), h))
	assert.Equal(t, 2.25, c.NextDamageTime())
	assert.Equal(t, 2, c.Hits())
}

func TestContactArbiterProximity(t *testing.T) {
	h := &fakeHealth{hp: 100}
	c := ContactArbiter{Damage: 10, Interval: 1, HitRadius: 1.2}

	assert.False(t, c.Poll(0, common.V(0, 0), common.V(2, 0), h))
	assert.Equal(t, 0.0, c.NextDamageTime(), "a miss never moves the gate")
	assert.True(t, c.Poll(0, common.V(0, 0), common.V(1.2, 0), h))
}

func TestContactArbiterSkipsMissingOrDeadTarget(t *testing.T) {
	c := ContactArbiter{Damage: 10, Interval: 1, HitRadius: 1.2}
	assert.False(t, c.Try(0, nil))

	dead := &fakeHealth{hp: 0}
	assert.False(t, c.Try(0, dead))
	assert.Empty(t, dead.taken)
	assert.Equal(t, 0.0, c.NextDamageTime())
}
