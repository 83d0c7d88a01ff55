package astro

import "math/rand"

// Starfield defaults: 10,000 points spread uniformly in a 2000-unit cube
// centred on the origin.
const (
	DefaultStarCount  = 10000
	DefaultStarSpread = 2000.0
)

// Starfield is a fixed backdrop of point stars.
type Starfield struct {
	Points []Vec3
}

// NewStarfield scatters count points uniformly in a cube of side spread.
func NewStarfield(rng *rand.Rand, count int, spread float64) Starfield {
	if count < 0 {
		count = 0
	}
	pts := make([]Vec3, count)
	for i := range pts {
		pts[i] = Vec3{
			X: randSpread(rng, spread),
			Y: randSpread(rng, spread),
			Z: randSpread(rng, spread),
		}
	}
	return Starfield{Points: pts}
}

// randSpread returns a value in (-spread/2, spread/2].
func randSpread(rng *rand.Rand, spread float64) float64 {
	return spread * (0.5 - rng.Float64())
}
