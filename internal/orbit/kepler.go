// Package orbit implements the planar Keplerian position model used to place
// and animate orbiting bodies.
//
// The model is conic-section geometry only: no masses, no time of flight.
// Callers advance the true anomaly directly.
package orbit

import (
	"math"

	"github.com/levinmathewabraham/orrery/internal/astro"
)

// DefaultSegments is the number of segments sampled for an orbit path.
const DefaultSegments = 128

// Radius returns the focal distance r = a(1−e²)/(1+e·cosθ).
// Eccentricity must be in [0, 1) and a > 0; other inputs are out of domain.
func Radius(a, e, theta float64) float64 {
	return a * (1 - e*e) / (1 + e*math.Cos(theta))
}

// Position returns the in-plane coordinates (x, z) of a body at true anomaly
// theta on an ellipse with semi-major axis a and eccentricity e, with the
// focus at the origin and periapsis on +X.
func Position(a, e, theta float64) (x, z float64) {
	r := Radius(a, e, theta)
	return r * math.Cos(theta), r * math.Sin(theta)
}

// Params describes one body's orbit.
type Params struct {
	SemiMajorAxis float64 // a, scene units
	Eccentricity  float64 // e, 0 ≤ e < 1
	Inclination   float64 // radians
	Phase         float64 // current true anomaly, radians in [0, 2π)
}

// Point returns the body's position at its current phase.
func (p Params) Point() astro.Vec3 {
	return p.PointAt(p.Phase)
}

// PointAt returns the position at true anomaly theta.
// Inclination lifts the point by y = x·sin(i); this tilts the ellipse about
// the Z axis without foreshortening X.
func (p Params) PointAt(theta float64) astro.Vec3 {
	x, z := Position(p.SemiMajorAxis, p.Eccentricity, theta)
	return astro.Vec3{
		X: x,
		Y: x * math.Sin(p.Inclination),
		Z: z,
	}
}

// Periapsis returns the closest approach distance a(1−e).
func (p Params) Periapsis() float64 {
	return p.SemiMajorAxis * (1 - p.Eccentricity)
}

// Apoapsis returns the farthest distance a(1+e).
func (p Params) Apoapsis() float64 {
	return p.SemiMajorAxis * (1 + p.Eccentricity)
}

// InclinationDeg returns the inclination in degrees.
func (p Params) InclinationDeg() float64 {
	return astro.RadToDeg(p.Inclination)
}

// Advance adds delta to phase and wraps the result into [0, 2π).
// A single subtraction is used for small positive steps so that N steps of
// size δ land on N·δ mod 2π without accumulating extra rounding.
func Advance(phase, delta float64) float64 {
	phase += delta
	if phase >= astro.TwoPi && phase < 2*astro.TwoPi {
		return phase - astro.TwoPi
	}
	if phase < 0 || phase >= astro.TwoPi {
		return astro.WrapAngle(phase)
	}
	return phase
}
