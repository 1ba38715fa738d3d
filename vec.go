package vivid

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Vector helpers over the x/image fixed-size float types used throughout the
// pipeline. Buffers of world positions are []f32.Vec3, screen positions and
// control points are []f32.Vec2. These helpers keep the arithmetic in one
// place; the element types stay plain arrays so buffers pack densely.

// V2 is a convenience function to create an f32.Vec2.
func V2(x, y float32) f32.Vec2 {
	return f32.Vec2{x, y}
}

// V3 is a convenience function to create an f32.Vec3.
func V3(x, y, z float32) f32.Vec3 {
	return f32.Vec3{x, y, z}
}

// Add2 returns the sum of two vectors.
func Add2(a, b f32.Vec2) f32.Vec2 {
	return f32.Vec2{a[0] + b[0], a[1] + b[1]}
}

// Sub2 returns the difference of two vectors.
func Sub2(a, b f32.Vec2) f32.Vec2 {
	return f32.Vec2{a[0] - b[0], a[1] - b[1]}
}

// Mul2 returns the vector scaled by a scalar.
func Mul2(a f32.Vec2, s float32) f32.Vec2 {
	return f32.Vec2{a[0] * s, a[1] * s}
}

// Dot2 returns the dot product of two vectors.
func Dot2(a, b f32.Vec2) float32 {
	return a[0]*b[0] + a[1]*b[1]
}

// Length2 returns the length (magnitude) of the vector.
func Length2(a f32.Vec2) float32 {
	return float32(math.Sqrt(float64(a[0]*a[0] + a[1]*a[1])))
}

// DistSq2 returns the squared distance between two points.
// Faster than computing the distance when only comparisons are needed.
func DistSq2(a, b f32.Vec2) float32 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}

// Lerp2 performs linear interpolation between two vectors.
// t=0 returns a, t=1 returns b, intermediate values interpolate.
func Lerp2(a, b f32.Vec2, t float32) f32.Vec2 {
	return f32.Vec2{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
	}
}

// XY returns the xy components of a 3-component vector.
func XY(a f32.Vec3) f32.Vec2 {
	return f32.Vec2{a[0], a[1]}
}
