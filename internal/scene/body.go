// Package scene holds the renderable bodies of the orrery and builds the
// reference solar system.
package scene

import (
	"github.com/levinmathewabraham/orrery/internal/astro"
	"github.com/levinmathewabraham/orrery/internal/orbit"
)

// Kind categorizes celestial bodies.
type Kind int

const (
	KindStar Kind = iota
	KindPlanet
	KindMoon
	KindHazardousAsteroid
)

// String returns the category tag.
func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindMoon:
		return "moon"
	case KindHazardousAsteroid:
		return "hazardous-asteroid"
	default:
		return "unknown"
	}
}

// Handle identifies a body inside one Registry. Handles start at 1 so the
// zero value means "no body".
type Handle int

// NoHandle marks the absence of a body (e.g. a root body's parent).
const NoHandle Handle = 0

// BodySpec is everything needed to create a body.
type BodySpec struct {
	Name        string
	Kind        Kind
	Description string
	Radius      float64
	Color       string // hex, used until a texture is available
	Texture     string // asset key, empty for none
	Narration   string // asset key, empty for none

	// Parent places the body relative to another body. Position is then a
	// local offset rotated by the parent's axial rotation.
	Parent   Handle
	Position astro.Vec3

	Rotation     float64 // initial axial rotation, radians
	RotationRate float64 // radians per tick, informational for the clock

	// Orbit, when set, overrides Position with Orbit.Point().
	Orbit *orbit.Params
	// PathSegments > 0 samples an orbit path from Orbit.
	PathSegments int
}

// Body is a read-only view of a registered body.
type Body struct {
	Handle       Handle
	Name         string
	Kind         Kind
	Description  string
	Radius       float64
	Color        string
	Texture      string
	Narration    string
	Parent       Handle
	Local        astro.Vec3 // position relative to the parent (world for roots)
	Position     astro.Vec3 // world position
	Rotation     float64
	RotationRate float64
	Orbit        *orbit.Params // nil for bodies without a Keplerian orbit
	Path         *orbit.Path   // nil when no path was sampled
}

// HasParent reports whether the body is placed relative to another body.
func (b Body) HasParent() bool {
	return b.Parent != NoHandle
}

// Distance returns the body's distance from the origin.
func (b Body) Distance() float64 {
	return b.Position.Norm()
}
