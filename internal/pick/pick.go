// Package pick resolves which body, if any, lies under the pointer.
//
// Every body is treated as a bounding sphere of its collision radius and all
// of them are tested against the pointer ray. The nearest positive hit wins.
// The flat scan is fine for the few dozen bodies of a solar system; past
// roughly a thousand bodies per ray a bounding volume hierarchy or kd-tree
// over body centres would pay for itself.
package pick

import (
	"github.com/levinmathewabraham/orrery/internal/astro"
	"github.com/levinmathewabraham/orrery/internal/scene"
)

// Source provides the candidate bodies.
type Source interface {
	All() []scene.Body
}

// Caster builds a world ray from normalized screen coordinates.
type Caster interface {
	Ray(nx, ny float64) astro.Ray
}

// Viewport is the pointer's coordinate space: a grid of cells with the top
// left cell at (0, 0).
type Viewport struct {
	Width  int
	Height int
}

// Contains reports whether cell (x, y) lies inside the viewport.
func (vp Viewport) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < vp.Width && y < vp.Height
}

// Normalize maps the centre of cell (x, y) to normalized device coordinates
// in [-1, 1] with y pointing up.
func Normalize(vp Viewport, x, y int) (nx, ny float64) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 0, 0
	}
	nx = (float64(x)+0.5)/float64(vp.Width)*2 - 1
	ny = -((float64(y)+0.5)/float64(vp.Height)*2 - 1)
	return nx, ny
}

// Hit is the body under a ray.
type Hit struct {
	Body  scene.Body
	T     float64    // ray parameter of the hit
	Point astro.Vec3 // world-space hit point
}

// Pick casts a ray through cell (x, y) and returns the nearest body it hits.
// It reports false when the pointer is outside the viewport, nothing is hit
// or there are no bodies.
func Pick(src Source, cam Caster, vp Viewport, x, y int) (Hit, bool) {
	if !vp.Contains(x, y) {
		return Hit{}, false
	}
	nx, ny := Normalize(vp, x, y)
	return Cast(src.All(), cam.Ray(nx, ny))
}

// Cast returns the body whose bounding sphere the ray meets first.
// Ties keep the earlier body.
func Cast(bodies []scene.Body, ray astro.Ray) (Hit, bool) {
	var (
		best  Hit
		found bool
	)
	for i := range bodies {
		t, ok := ray.IntersectSphere(bodies[i].Position, bodies[i].Radius)
		if !ok || t <= 0 {
			continue
		}
		if !found || t < best.T {
			best = Hit{Body: bodies[i], T: t}
			found = true
		}
	}
	if found {
		best.Point = ray.At(best.T)
	}
	return best, found
}
