package astro

import "math"

// Ray is a half-line starting at Origin. Dir is expected to be unit length,
// so the ray parameter t equals distance along the ray.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// IntersectSphere returns the smallest non-negative ray parameter at which
// the ray enters (or, when starting inside, leaves) the sphere.
func (r Ray) IntersectSphere(center Vec3, radius float64) (float64, bool) {
	if radius <= 0 {
		return 0, false
	}

	// Solve |o + t·d - c|² = r² for unit d: t² + 2bt + c = 0
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		// Origin inside the sphere: use the exit point
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
