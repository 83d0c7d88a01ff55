// Package camera provides the perspective camera and the orbit controls that
// move it around a target point.
//
// The camera is stored in spherical coordinates about its target (distance,
// azimuth around +Y, polar angle from +Y), the same parameterization orbit
// controls use in most 3D toolkits. Screen coordinates are normalized device
// coordinates: x and y in [-1, 1], y up.
package camera

import (
	"math"

	"github.com/levinmathewabraham/orrery/internal/astro"
	"github.com/levinmathewabraham/orrery/internal/config"
)

// polarEpsilon keeps the camera off the poles, where the up vector and the
// view direction would coincide.
const polarEpsilon = 0.01

var worldUp = astro.Vec3{Y: 1}

// Camera is a perspective camera orbiting a target.
type Camera struct {
	target   astro.Vec3
	distance float64
	azimuth  float64
	polar    float64

	fov    float64 // vertical, radians
	near   float64
	far    float64
	aspect float64 // viewport width / height in world units

	minDistance float64
	maxDistance float64

	home orbitState
}

type orbitState struct {
	target                    astro.Vec3
	distance, azimuth, polar float64
}

// New creates a camera from its configuration. The aspect ratio defaults to
// 1 until SetViewport is called.
func New(cfg config.CameraConfig) *Camera {
	pos := astro.Vec3{X: cfg.Position[0], Y: cfg.Position[1], Z: cfg.Position[2]}
	target := astro.Vec3{X: cfg.Target[0], Y: cfg.Target[1], Z: cfg.Target[2]}

	c := &Camera{
		fov:         astro.DegToRad(cfg.FOV),
		near:        cfg.Near,
		far:         cfg.Far,
		aspect:      1,
		minDistance: cfg.MinDistance,
		maxDistance: cfg.MaxDistance,
	}
	if c.minDistance <= 0 {
		c.minDistance = cfg.Near
	}
	if c.maxDistance < c.minDistance {
		c.maxDistance = cfg.Far
	}

	offset := pos.Sub(target)
	c.target = target
	c.distance = offset.Norm()
	if c.distance > 0 {
		c.azimuth = math.Atan2(offset.X, offset.Z)
		c.polar = math.Acos(clamp(offset.Y/c.distance, -1, 1))
	}
	c.clampOrbit()

	c.home = c.orbitState()
	return c
}

// SetViewport sets the aspect ratio from a grid of width×height cells, each
// cellAspect times as wide as it is tall.
func (c *Camera) SetViewport(width, height int, cellAspect float64) {
	if width <= 0 || height <= 0 || cellAspect <= 0 {
		return
	}
	c.aspect = float64(width) * cellAspect / float64(height)
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float64 { return c.aspect }

// Position returns the camera's world position.
func (c *Camera) Position() astro.Vec3 {
	s := math.Sin(c.polar)
	return c.target.Add(astro.Vec3{
		X: c.distance * s * math.Sin(c.azimuth),
		Y: c.distance * math.Cos(c.polar),
		Z: c.distance * s * math.Cos(c.azimuth),
	})
}

// Target returns the point the camera looks at.
func (c *Camera) Target() astro.Vec3 { return c.target }

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float64 { return c.distance }

// basis returns the camera's forward, right and up unit vectors.
func (c *Camera) basis() (forward, right, up astro.Vec3) {
	forward = c.target.Sub(c.Position()).Normalized()
	right = forward.Cross(worldUp).Normalized()
	up = right.Cross(forward)
	return forward, right, up
}

// Ray returns the world-space ray through normalized screen point (nx, ny).
func (c *Camera) Ray(nx, ny float64) astro.Ray {
	forward, right, up := c.basis()
	tanHalf := math.Tan(c.fov / 2)

	dir := forward.
		Add(right.Scale(nx * tanHalf * c.aspect)).
		Add(up.Scale(ny * tanHalf))
	return astro.Ray{Origin: c.Position(), Dir: dir.Normalized()}
}

// Project maps a world point to normalized screen coordinates. depth is the
// distance along the view axis; ok is false outside the near/far range.
// Points outside [-1, 1] are still returned so callers can clip lines.
func (c *Camera) Project(p astro.Vec3) (nx, ny, depth float64, ok bool) {
	forward, right, up := c.basis()
	d := p.Sub(c.Position())

	depth = d.Dot(forward)
	if depth < c.near || depth > c.far {
		return 0, 0, depth, false
	}
	tanHalf := math.Tan(c.fov / 2)
	nx = d.Dot(right) / (depth * tanHalf * c.aspect)
	ny = d.Dot(up) / (depth * tanHalf)
	return nx, ny, depth, true
}

// Far returns the far clipping distance.
func (c *Camera) Far() float64 { return c.far }

// ─── Orbit controls ──────────────────────────────────────────────────────

// Rotate swings the camera around its target. Positive dAzimuth moves it
// counter-clockwise seen from above; positive dPolar moves it toward the
// south pole.
func (c *Camera) Rotate(dAzimuth, dPolar float64) {
	c.azimuth = astro.WrapAngle(c.azimuth + dAzimuth)
	c.polar += dPolar
	c.clampOrbit()
}

// Dolly scales the distance to the target. factor < 1 moves closer.
func (c *Camera) Dolly(factor float64) {
	if factor <= 0 {
		return
	}
	c.distance *= factor
	c.clampOrbit()
}

// Pan shifts the target (and camera) in the view plane. dx and dy are
// fractions of the visible half-height at the target distance.
func (c *Camera) Pan(dx, dy float64) {
	_, right, up := c.basis()
	span := c.distance * math.Tan(c.fov/2)
	c.target = c.target.
		Add(right.Scale(dx * span)).
		Add(up.Scale(dy * span))
}

// Reset restores the camera to where it was created.
func (c *Camera) Reset() {
	c.target = c.home.target
	c.distance = c.home.distance
	c.azimuth = c.home.azimuth
	c.polar = c.home.polar
}

func (c *Camera) orbitState() orbitState {
	return orbitState{
		target:   c.target,
		distance: c.distance,
		azimuth:  c.azimuth,
		polar:    c.polar,
	}
}

func (c *Camera) clampOrbit() {
	c.polar = clamp(c.polar, polarEpsilon, math.Pi-polarEpsilon)
	c.distance = clamp(c.distance, c.minDistance, c.maxDistance)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
