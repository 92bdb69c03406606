package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector for arena physics
// Units are arena pixels, velocities are pixels per tick
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{x, y}
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Mag() float64 {
	return math.Sqrt(v.MagSq())
}

// Normalize returns unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	mag := v.Mag()
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// WithMagnitude rescales v to length mag
// Zero vector falls back to a rightward vector so callers never divide by zero
func (v Vec2) WithMagnitude(mag float64) Vec2 {
	cur := v.Mag()
	if cur == 0 {
		return Vec2{mag, 0}
	}
	s := mag / cur
	return Vec2{v.X * s, v.Y * s}
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Reflect returns velocity reflected off surface with given unit normal
// vel' = vel - 2 * dot(vel, normal) * normal
func Reflect(vel, normal Vec2) Vec2 {
	d := 2 * vel.Dot(normal)
	return Vec2{vel.X - d*normal.X, vel.Y - d*normal.Y}
}

// Rotate rotates v by angle radians counter-clockwise (screen space: clockwise, y down)
func Rotate(v Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// FromAngleDeg returns a vector of length mag pointing at angle degrees
// 0 = right, 90 = down (screen space)
func FromAngleDeg(deg, mag float64) Vec2 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{cos * mag, sin * mag}
}

// Distance returns Euclidean distance between two points
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Mag()
}

// EnsureMinAxis pushes each component to at least floor in magnitude, preserving sign
// Zero components are pushed positive
func EnsureMinAxis(v Vec2, floor float64) Vec2 {
	if math.Abs(v.X) < floor {
		if v.X >= 0 {
			v.X = floor
		} else {
			v.X = -floor
		}
	}
	if math.Abs(v.Y) < floor {
		if v.Y >= 0 {
			v.Y = floor
		} else {
			v.Y = -floor
		}
	}
	return v
}
