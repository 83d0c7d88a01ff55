package orbit

import (
	"math"

	"github.com/levinmathewabraham/orrery/internal/astro"
)

// Path is a closed polyline sampled along one full revolution of an orbit.
// It is built once and never mutated.
type Path struct {
	points []astro.Vec3
}

// NewPath samples segments+1 points at θ = i/segments·2π, so the last point
// coincides with the first. segments below 3 are raised to 3.
func NewPath(p Params, segments int) Path {
	if segments < 3 {
		segments = 3
	}
	pts := make([]astro.Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		angle := float64(i) / float64(segments) * math.Pi * 2
		pts[i] = p.PointAt(angle)
	}
	return Path{points: pts}
}

// Points returns a copy of the sampled points.
func (p Path) Points() []astro.Vec3 {
	out := make([]astro.Vec3, len(p.points))
	copy(out, p.points)
	return out
}

// Len returns the number of sampled points.
func (p Path) Len() int {
	return len(p.points)
}

// Segments calls fn for each consecutive pair of points.
func (p Path) Segments(fn func(a, b astro.Vec3)) {
	for i := 1; i < len(p.points); i++ {
		fn(p.points[i-1], p.points[i])
	}
}
