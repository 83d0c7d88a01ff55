// Package astro provides the vector, ray and starfield math shared by the
// orbit model, the renderer and the picking layer.
package astro

import (
	"math"
)

// TwoPi is a full revolution in radians.
const TwoPi = 2 * math.Pi

// Vec3 represents a 3D vector in scene units.
// The scene uses a Y-up frame: orbits lie in the X/Z plane.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(u Vec3) float64 {
	return v.Sub(u).Norm()
}

// RotateY rotates the vector about the +Y axis by angle radians
// (right-handed, counter-clockwise when looking down from +Y).
func (v Vec3) RotateY(angle float64) Vec3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// WrapAngle normalizes an angle into [0, 2π).
func WrapAngle(rad float64) float64 {
	rad = math.Mod(rad, TwoPi)
	if rad < 0 {
		rad += TwoPi
	}
	return rad
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Longitude returns the angle of the vector in the X/Z plane, in [0, 2π).
func Longitude(v Vec3) float64 {
	return WrapAngle(math.Atan2(-v.Z, v.X))
}

// Latitude returns the elevation of the vector above the X/Z plane, in radians.
func Latitude(v Vec3) float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return math.Asin(v.Y / r)
}
