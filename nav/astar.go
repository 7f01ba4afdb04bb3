package nav

import (
	"container/heap"
	"math"

	"github.com/milk9111/witchwood/common"
)

var neighborOffsets = [8]Cell{
	{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1},
	{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1},
}

// FindPath runs A* from start to goal over 8 neighbours. Diagonal moves
// never cut a blocked corner. A nil result means goal is unreachable.
func FindPath(g *Grid, start, goal Cell) []Cell {
	if !g.Walkable(start) || !g.Walkable(goal) {
		return nil
	}

	n := g.w * g.h
	cameFrom := make([]int, n)
	gScore := make([]float64, n)
	closed := make([]bool, n)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = math.Inf(1)
	}

	startIdx := g.index(start)
	goalIdx := g.index(goal)
	gScore[startIdx] = 0

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{pos: start, f: octile(start, goal), g: 0})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.pos
		curIdx := g.index(cur)
		if closed[curIdx] {
			continue
		}
		closed[curIdx] = true

		if curIdx == goalIdx {
			return reconstructPath(g, cameFrom, startIdx, goalIdx)
		}

		for _, off := range neighborOffsets {
			next := Cell{X: cur.X + off.X, Y: cur.Y + off.Y}
			if !g.Walkable(next) {
				continue
			}
			cost := 1.0
			if off.X != 0 && off.Y != 0 {
				if !g.Walkable(Cell{X: cur.X + off.X, Y: cur.Y}) || !g.Walkable(Cell{X: cur.X, Y: cur.Y + off.Y}) {
					continue
				}
				cost = math.Sqrt2
			}
			idx := g.index(next)
			tentative := gScore[curIdx] + cost
			if tentative < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentative
				heap.Push(open, &openItem{pos: next, f: tentative + octile(next, goal), g: tentative})
			}
		}
	}
	return nil
}

func reconstructPath(g *Grid, cameFrom []int, startIdx, goalIdx int) []Cell {
	path := make([]Cell, 0, 32)
	for cur := goalIdx; cur != -1; cur = cameFrom[cur] {
		path = append(path, Cell{X: cur % g.w, Y: cur / g.w})
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func octile(a, b Cell) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
}

// Smooth drops waypoints that the previous kept point can see past.
func Smooth(g *Grid, pts []common.Vec2) []common.Vec2 {
	if len(pts) <= 2 {
		return pts
	}
	out := []common.Vec2{pts[0]}
	anchor := 0
	for i := 2; i < len(pts); i++ {
		if !g.LineOfSight(pts[anchor], pts[i]) {
			out = append(out, pts[i-1])
			anchor = i - 1
		}
	}
	return append(out, pts[len(pts)-1])
}

type openItem struct {
	pos   Cell
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f == o[j].f {
		return o[i].g > o[j].g
	}
	return o[i].f < o[j].f
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
