// Package geom provides the small 2D vector math used across the simulation.
package geom

import (
	"math"
	"math/rand"
)

// Vec2 is a 2D vector with float32 components. All methods are value
// methods returning new vectors; nothing here mutates in place.
type Vec2 struct {
	X, Y float32
}

// V is shorthand for constructing a Vec2.
func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mag returns the magnitude of v.
func (v Vec2) Mag() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// MagSq returns the squared magnitude of v (avoids sqrt in hot paths).
func (v Vec2) MagSq() float32 { return v.X*v.X + v.Y*v.Y }

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	m := v.Mag()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{v.X / m, v.Y / m}
}

// Limit returns v clamped to magnitude max.
func (v Vec2) Limit(max float32) Vec2 {
	if v.MagSq() <= max*max {
		return v
	}
	return v.Normalize().Scale(max)
}

// Rotate returns v rotated by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	sin, cos := math.Sincos(float64(angle))
	s, c := float32(sin), float32(cos)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float32 { return v.Sub(o).Mag() }

// Heading returns the angle of v in radians.
func (v Vec2) Heading() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// FromAngle returns the unit vector at angle radians.
func FromAngle(angle float32) Vec2 {
	sin, cos := math.Sincos(float64(angle))
	return Vec2{float32(cos), float32(sin)}
}

// RandomDir returns a unit vector with uniformly distributed direction.
func RandomDir(rng *rand.Rand) Vec2 {
	return FromAngle(rng.Float32() * 2 * math.Pi)
}
