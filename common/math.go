package common

import "math"

const epsilon = 1e-9

// Vec2 is a point or direction on the ground plane.
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < epsilon {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

func (v Vec2) IsZero() bool {
	return math.Abs(v.X) < epsilon && math.Abs(v.Y) < epsilon
}

// Angle returns the absolute angle in degrees between a and b, in [0, 180].
// Zero-length inputs yield 0.
func Angle(a, b Vec2) float64 {
	a = a.Normalize()
	b = b.Normalize()
	if a.IsZero() || b.IsZero() {
		return 0
	}
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d) * 180 / math.Pi
}

// FromAngle returns the unit vector at deg degrees (0 = +X, counter-clockwise).
func FromAngle(deg float64) Vec2 {
	r := deg * math.Pi / 180
	return Vec2{X: math.Cos(r), Y: math.Sin(r)}
}

// Rotate returns v rotated by deg degrees.
func (v Vec2) Rotate(deg float64) Vec2 {
	r := deg * math.Pi / 180
	s, c := math.Sincos(r)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpVec interpolates component-wise between a and b.
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}
