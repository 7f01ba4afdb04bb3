package nav

import (
	"math"

	"github.com/milk9111/witchwood/common"
)

// Cell is a grid coordinate.
type Cell struct {
	X int
	Y int
}

// Grid is a walkability raster over the level bounds. Each cell counts the
// obstacles covering it so overlapping blockers can be lifted one at a time.
type Grid struct {
	bounds   common.Rect
	cellSize float64
	w, h     int
	blocked  []int
}

func NewGrid(bounds common.Rect, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	w := int(math.Ceil(bounds.Width / cellSize))
	h := int(math.Ceil(bounds.Height / cellSize))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Grid{
		bounds:   bounds,
		cellSize: cellSize,
		w:        w,
		h:        h,
		blocked:  make([]int, w*h),
	}
}

func (g *Grid) Size() (int, int)    { return g.w, g.h }
func (g *Grid) CellSize() float64   { return g.cellSize }
func (g *Grid) Bounds() common.Rect { return g.bounds }

func (g *Grid) inside(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.w && c.Y < g.h
}

func (g *Grid) index(c Cell) int {
	return c.Y*g.w + c.X
}

// Block marks every cell touched by r grown by clearance.
func (g *Grid) Block(r common.Rect, clearance float64) {
	g.mark(r.Inflate(clearance), 1)
}

// Unblock reverses a previous Block with the same arguments.
func (g *Grid) Unblock(r common.Rect, clearance float64) {
	g.mark(r.Inflate(clearance), -1)
}

func (g *Grid) mark(r common.Rect, delta int) {
	startX := int(math.Floor((r.X - g.bounds.X) / g.cellSize))
	startY := int(math.Floor((r.Y - g.bounds.Y) / g.cellSize))
	endX := int(math.Floor((r.X + r.Width - g.bounds.X - 0.001) / g.cellSize))
	endY := int(math.Floor((r.Y + r.Height - g.bounds.Y - 0.001) / g.cellSize))

	if startX < 0 {
		startX = 0
	}
	if startY < 0 {
		startY = 0
	}
	if endX >= g.w {
		endX = g.w - 1
	}
	if endY >= g.h {
		endY = g.h - 1
	}

	for y := startY; y <= endY; y++ {
		for x := startX; x <= endX; x++ {
			idx := y*g.w + x
			g.blocked[idx] += delta
			if g.blocked[idx] < 0 {
				g.blocked[idx] = 0
			}
		}
	}
}

func (g *Grid) Walkable(c Cell) bool {
	return g.inside(c) && g.blocked[g.index(c)] == 0
}

// CellAt returns the cell containing p.
func (g *Grid) CellAt(p common.Vec2) (Cell, bool) {
	if !g.bounds.Contains(p) {
		return Cell{}, false
	}
	c := Cell{
		X: int(math.Floor((p.X - g.bounds.X) / g.cellSize)),
		Y: int(math.Floor((p.Y - g.bounds.Y) / g.cellSize)),
	}
	if c.X >= g.w {
		c.X = g.w - 1
	}
	if c.Y >= g.h {
		c.Y = g.h - 1
	}
	return c, true
}

func (g *Grid) Center(c Cell) common.Vec2 {
	half := g.cellSize * 0.5
	return common.Vec2{
		X: g.bounds.X + float64(c.X)*g.cellSize + half,
		Y: g.bounds.Y + float64(c.Y)*g.cellSize + half,
	}
}

// WalkableAt reports whether p lies on a walkable cell.
func (g *Grid) WalkableAt(p common.Vec2) bool {
	c, ok := g.CellAt(p)
	return ok && g.Walkable(c)
}

// Nearest projects p onto the walkable surface. Points already on a
// walkable cell are returned unchanged; otherwise the closest walkable cell
// centre within maxDist wins.
func (g *Grid) Nearest(p common.Vec2, maxDist float64) (common.Vec2, bool) {
	if g.WalkableAt(p) {
		return p, true
	}
	if maxDist <= 0 {
		return common.Vec2{}, false
	}

	reach := int(math.Ceil(maxDist/g.cellSize)) + 1
	cx := int(math.Floor((p.X - g.bounds.X) / g.cellSize))
	cy := int(math.Floor((p.Y - g.bounds.Y) / g.cellSize))

	best := math.Inf(1)
	var bestPos common.Vec2
	for y := cy - reach; y <= cy+reach; y++ {
		for x := cx - reach; x <= cx+reach; x++ {
			c := Cell{X: x, Y: y}
			if !g.Walkable(c) {
				continue
			}
			center := g.Center(c)
			d := center.Dist(p)
			if d <= maxDist && d < best {
				best = d
				bestPos = center
			}
		}
	}
	if math.IsInf(best, 1) {
		return common.Vec2{}, false
	}
	return bestPos, true
}

// LineOfSight reports whether the straight segment a→b stays on walkable
// cells, sampled at quarter-cell steps.
func (g *Grid) LineOfSight(a, b common.Vec2) bool {
	d := b.Sub(a)
	length := d.Len()
	stepLen := g.cellSize * 0.25
	n := int(math.Ceil(length / stepLen))
	for i := 0; i <= n; i++ {
		t := 1.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		if !g.WalkableAt(a.Add(d.Scale(t))) {
			return false
		}
	}
	return true
}
