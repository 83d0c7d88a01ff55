package orbit

import (
	"math"
	"math/rand"
)

// Range is a half-open interval [Min, Max).
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Draw returns a uniform sample from the range.
func (r Range) Draw(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}

// AsteroidRanges bounds the random orbit draw for hazardous asteroids.
type AsteroidRanges struct {
	SemiMajorAxis Range
	Eccentricity  Range
	Inclination   Range // radians
}

// DefaultAsteroidRanges returns a ∈ [150,250), e ∈ [0.2,0.5), i ∈ [0, π/6).
func DefaultAsteroidRanges() AsteroidRanges {
	return AsteroidRanges{
		SemiMajorAxis: Range{Min: 150, Max: 250},
		Eccentricity:  Range{Min: 0.2, Max: 0.5},
		Inclination:   Range{Min: 0, Max: math.Pi / 6},
	}
}

// RandomAsteroid draws a, e, inclination and then a spawn phase, in that
// order, from rng.
func RandomAsteroid(rng *rand.Rand, ranges AsteroidRanges) Params {
	a := ranges.SemiMajorAxis.Draw(rng)
	e := ranges.Eccentricity.Draw(rng)
	inc := ranges.Inclination.Draw(rng)
	phase := rng.Float64() * math.Pi * 2
	return Params{
		SemiMajorAxis: a,
		Eccentricity:  e,
		Inclination:   inc,
		Phase:         phase,
	}
}
