package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/witchwood/ai"
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/logger"
)

func init() {
	logger.Silence()
}

// wallGrid is 20x20 with a vertical wall at x in [9,11) leaving a gap at the top.
func wallGrid() *Grid {
	g := NewGrid(common.Rect{X: 0, Y: 0, Width: 20, Height: 20}, 1)
	g.Block(common.Rect{X: 9, Y: 0, Width: 2, Height: 16}, 0)
	return g
}

func TestGridBlockAndUnblock(t *testing.T) {
	g := NewGrid(common.Rect{X: 0, Y: 0, Width: 10, Height: 10}, 1)
	r := common.Rect{X: 2, Y: 2, Width: 2, Height: 2}

	g.Block(r, 0)
	g.Block(r, 0)
	assert.False(t, g.Walkable(Cell{X: 2, Y: 2}))
	assert.False(t, g.Walkable(Cell{X: 3, Y: 3}))
	assert.True(t, g.Walkable(Cell{X: 4, Y: 4}))

	g.Unblock(r, 0)
	assert.False(t, g.Walkable(Cell{X: 2, Y: 2}), "still covered by the second block")
	g.Unblock(r, 0)
	assert.True(t, g.Walkable(Cell{X: 2, Y: 2}))

	assert.False(t, g.Walkable(Cell{X: -1, Y: 0}))
	assert.False(t, g.Walkable(Cell{X: 10, Y: 0}))
}

func TestFindPathAroundWall(t *testing.T) {
	g := wallGrid()
	path := FindPath(g, Cell{X: 2, Y: 2}, Cell{X: 17, Y: 2})
	require.NotNil(t, path)
	assert.Equal(t, Cell{X: 2, Y: 2}, path[0])
	assert.Equal(t, Cell{X: 17, Y: 2}, path[len(path)-1])
	for _, c := range path {
		assert.True(t, g.Walkable(c))
	}
	for i := 1; i < len(path); i++ {
		dx, dy := path[i].X-path[i-1].X, path[i].Y-path[i-1].Y
		if dx != 0 && dy != 0 {
			assert.True(t, g.Walkable(Cell{X: path[i-1].X + dx, Y: path[i-1].Y}), "no corner cutting")
			assert.True(t, g.Walkable(Cell{X: path[i-1].X, Y: path[i-1].Y + dy}), "no corner cutting")
		}
	}
}

func TestFindPathUnreachable(t *testing.T) {
	g := wallGrid()
	g.Block(common.Rect{X: 9, Y: 16, Width: 2, Height: 4}, 0)
	assert.Nil(t, FindPath(g, Cell{X: 2, Y: 2}, Cell{X: 17, Y: 2}))
	assert.Nil(t, FindPath(g, Cell{X: 9, Y: 1}, Cell{X: 17, Y: 2}), "blocked start")
}

func TestSmoothKeepsCorners(t *testing.T) {
	g := wallGrid()
	cells := FindPath(g, Cell{X: 2, Y: 2}, Cell{X: 17, Y: 2})
	pts := make([]common.Vec2, 0, len(cells))
	for _, c := range cells {
		pts = append(pts, g.Center(c))
	}
	smooth := Smooth(g, pts)
	assert.Less(t, len(smooth), len(pts))
	for i := 1; i < len(smooth); i++ {
		assert.True(t, g.LineOfSight(smooth[i-1], smooth[i]))
	}
}

func TestNearest(t *testing.T) {
	g := wallGrid()

	p, ok := g.Nearest(common.V(3.3, 4.1), 1)
	require.True(t, ok)
	assert.Equal(t, common.V(3.3, 4.1), p, "walkable points are returned as is")

	p, ok = g.Nearest(common.V(9.6, 5.5), 2)
	require.True(t, ok)
	assert.True(t, g.WalkableAt(p))
	assert.LessOrEqual(t, p.Dist(common.V(9.6, 5.5)), 2.0)

	_, ok = g.Nearest(common.V(10, 5.5), 0.2)
	assert.False(t, ok)
}

func TestAgentImplementsNavigator(t *testing.T) {
	var _ ai.Navigator = (*Agent)(nil)
}

func TestAgentPendingResolvesOnStep(t *testing.T) {
	g := wallGrid()
	a := NewAgent(g, common.V(2.5, 2.5), common.V(1, 0), 0.5)
	a.SetSpeed(4)

	require.True(t, a.SetDestination(common.V(17.5, 2.5)))
	assert.True(t, a.PathPending())
	assert.Equal(t, 0.0, a.RemainingDistance())

	a.Step(0)
	assert.False(t, a.PathPending())
	assert.Greater(t, a.RemainingDistance(), 15.0, "detour over the wall gap")

	assert.False(t, a.SetDestination(common.V(50, 50)), "outside the grid")
}

func TestAgentWalksToStoppingDistance(t *testing.T) {
	g := wallGrid()
	a := NewAgent(g, common.V(2.5, 2.5), common.V(1, 0), 0.5)
	a.SetSpeed(4)
	a.SetDestination(common.V(17.5, 2.5))

	for i := 0; i < 400; i++ {
		a.Step(0.05)
	}
	assert.InDelta(t, 0.5, a.RemainingDistance(), 1e-6)
	assert.True(t, ai.Arrived(a.PathPending(), a.RemainingDistance(), a.StoppingDistance()))
	assert.InDelta(t, 0.5, a.Position().Dist(common.V(17.5, 2.5)), 1e-6)
}

func TestAgentSpeedBoundsTravel(t *testing.T) {
	g := NewGrid(common.Rect{X: 0, Y: 0, Width: 30, Height: 5}, 1)
	a := NewAgent(g, common.V(1.5, 2.5), common.V(1, 0), 0)
	a.SetSpeed(2)
	a.SetDestination(common.V(25.5, 2.5))

	a.Step(0.5)
	assert.InDelta(t, 2.5, a.Position().X, 1e-9)
	assert.Equal(t, common.V(1, 0), a.Forward())
}

func TestAgentPathComplete(t *testing.T) {
	g := wallGrid()
	a := NewAgent(g, common.V(2.5, 2.5), common.V(1, 0), 0.5)
	assert.True(t, a.PathComplete(common.V(17.5, 2.5)))
	assert.False(t, a.PathComplete(common.V(9.5, 2.5)), "inside the wall")

	g.Block(common.Rect{X: 9, Y: 16, Width: 2, Height: 4}, 0)
	assert.False(t, a.PathComplete(common.V(17.5, 2.5)))
}

func TestAgentResetPath(t *testing.T) {
	g := wallGrid()
	a := NewAgent(g, common.V(2.5, 2.5), common.V(1, 0), 0.5)
	a.SetSpeed(4)
	a.SetDestination(common.V(5.5, 2.5))
	a.Step(0.1)
	a.ResetPath()

	before := a.Position()
	a.Step(0.1)
	assert.Equal(t, before, a.Position())
	_, ok := a.Destination()
	assert.False(t, ok)
}
