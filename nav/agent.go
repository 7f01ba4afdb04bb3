package nav

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/logger"
)

// goalSnapCells is how far, in cells, an unwalkable destination is projected
// before the request is dropped.
const goalSnapCells = 2

// Agent is a grid-backed movement backend. It satisfies ai.Navigator.
// Destination requests are resolved on the next Step, so PathPending stays
// true for exactly one step after SetDestination.
type Agent struct {
	grid *Grid

	pos      common.Vec2
	forward  common.Vec2
	speed    float64
	stopping float64

	path    []common.Vec2
	hasDest bool
	dest    common.Vec2

	pending     bool
	pendingDest common.Vec2

	log *logrus.Entry
}

func NewAgent(grid *Grid, pos, forward common.Vec2, stopping float64) *Agent {
	forward = forward.Normalize()
	if forward.IsZero() {
		forward = common.V(1, 0)
	}
	return &Agent{
		grid:     grid,
		pos:      pos,
		forward:  forward,
		stopping: stopping,
		log:      logger.For("nav"),
	}
}

func (a *Agent) Position() common.Vec2 { return a.pos }
func (a *Agent) Forward() common.Vec2  { return a.forward }
func (a *Agent) Speed() float64        { return a.speed }

// Warp teleports the agent and drops its path.
func (a *Agent) Warp(p common.Vec2) {
	a.pos = p
	a.ResetPath()
}

// SetDestination queues a path request. Points outside the grid are refused.
func (a *Agent) SetDestination(p common.Vec2) bool {
	if _, ok := a.grid.CellAt(p); !ok {
		return false
	}
	a.pending = true
	a.pendingDest = p
	return true
}

func (a *Agent) ResetPath() {
	a.path = nil
	a.hasDest = false
	a.pending = false
}

func (a *Agent) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	a.speed = speed
}

func (a *Agent) PathPending() bool         { return a.pending }
func (a *Agent) StoppingDistance() float64 { return a.stopping }

// RemainingDistance is the length of the rest of the current path.
func (a *Agent) RemainingDistance() float64 {
	if len(a.path) == 0 {
		return 0
	}
	total := 0.0
	prev := a.pos
	for _, p := range a.path {
		total += prev.Dist(p)
		prev = p
	}
	return total
}

// Destination is the end of the active path, if any.
func (a *Agent) Destination() (common.Vec2, bool) {
	return a.dest, a.hasDest
}

// Path returns a copy of the remaining waypoints.
func (a *Agent) Path() []common.Vec2 {
	return append([]common.Vec2(nil), a.path...)
}

func (a *Agent) SamplePosition(p common.Vec2, maxDist float64) (common.Vec2, bool) {
	return a.grid.Nearest(p, maxDist)
}

// PathComplete reports whether dest is reachable from the current position
// through walkable cells.
func (a *Agent) PathComplete(dest common.Vec2) bool {
	start, ok := a.startCell()
	if !ok {
		return false
	}
	goal, ok := a.grid.CellAt(dest)
	if !ok || !a.grid.Walkable(goal) {
		return false
	}
	return FindPath(a.grid, start, goal) != nil
}

func (a *Agent) startCell() (Cell, bool) {
	p, ok := a.grid.Nearest(a.pos, a.grid.cellSize*goalSnapCells)
	if !ok {
		return Cell{}, false
	}
	return a.grid.CellAt(p)
}

// Step resolves a pending request and moves along the path at the current
// speed, halting at the stopping distance.
func (a *Agent) Step(dt float64) {
	if a.pending {
		a.resolve()
	}
	if len(a.path) == 0 || dt <= 0 || a.speed <= 0 {
		return
	}

	budget := a.speed * dt
	if slack := a.RemainingDistance() - a.stopping; slack < budget {
		budget = math.Max(slack, 0)
	}

	for budget > 0 && len(a.path) > 0 {
		next := a.path[0]
		to := next.Sub(a.pos)
		d := to.Len()
		if d > 0 {
			a.forward = to.Scale(1 / d)
		}
		if d <= budget {
			a.pos = next
			a.path = a.path[1:]
			budget -= d
			continue
		}
		a.pos = a.pos.Add(a.forward.Scale(budget))
		budget = 0
	}
	if len(a.path) == 0 {
		a.hasDest = false
	}
}

func (a *Agent) resolve() {
	a.pending = false
	dest := a.pendingDest

	start, ok := a.startCell()
	if !ok {
		a.drop(dest, "agent off grid")
		return
	}
	snapped, ok := a.grid.Nearest(dest, a.grid.cellSize*goalSnapCells)
	if !ok {
		a.drop(dest, "destination not walkable")
		return
	}
	goal, _ := a.grid.CellAt(snapped)

	cells := FindPath(a.grid, start, goal)
	if cells == nil {
		a.drop(dest, "no path")
		return
	}

	pts := make([]common.Vec2, 0, len(cells)+1)
	pts = append(pts, a.pos)
	for _, c := range cells[1:] {
		pts = append(pts, a.grid.Center(c))
	}
	if len(cells) > 1 {
		pts = pts[:len(pts)-1]
	}
	pts = append(pts, snapped)

	a.path = Smooth(a.grid, pts)[1:]
	a.dest = snapped
	a.hasDest = true
}

func (a *Agent) drop(dest common.Vec2, reason string) {
	a.path = nil
	a.hasDest = false
	a.log.WithFields(logrus.Fields{
		"x":      dest.X,
		"y":      dest.Y,
		"reason": reason,
	}).Debug("destination dropped")
}
