package scene

import (
	"fmt"
	"math/rand"

	"github.com/levinmathewabraham/orrery/internal/astro"
	"github.com/levinmathewabraham/orrery/internal/config"
	"github.com/levinmathewabraham/orrery/internal/orbit"
)

// SolarSystem is the populated registry plus the handles the clock and UI
// need to address directly.
type SolarSystem struct {
	Registry  *Registry
	Star      Handle
	Planet    Handle
	Moon      Handle
	Asteroids []Handle
	Starfield astro.Starfield
}

// AsteroidName returns the display name of the i-th (1-based) asteroid.
func AsteroidName(i int) string {
	return fmt.Sprintf("PHA #%d", i)
}

// AsteroidDescription formats the info text for an asteroid orbit.
func AsteroidDescription(p orbit.Params) string {
	return fmt.Sprintf("Type: Potentially Hazardous Asteroid\nSemi-Major Axis: %.2f\nEccentricity: %.2f\nInclination: %.2f°",
		p.SemiMajorAxis, p.Eccentricity, p.InclinationDeg())
}

// BuildSolarSystem creates the star, planet, moon and hazardous asteroid set
// described by cfg. Random draws (asteroid orbits, then the starfield) come
// from rng, so equal seeds build equal scenes.
func BuildSolarSystem(cfg config.SceneConfig, rng *rand.Rand) (*SolarSystem, error) {
	reg := NewRegistry()
	ss := &SolarSystem{Registry: reg}

	segments := cfg.OrbitSegments
	if segments <= 0 {
		segments = orbit.DefaultSegments
	}

	var err error
	ss.Star, err = reg.Add(BodySpec{
		Name:        cfg.Star.Name,
		Kind:        KindStar,
		Description: cfg.Star.Description,
		Radius:      cfg.Star.Radius,
		Color:       cfg.Star.Color,
		Texture:     cfg.Star.Texture,
		Narration:   cfg.Star.Narration,
	})
	if err != nil {
		return nil, fmt.Errorf("add star: %w", err)
	}

	planetOrbit := orbit.Params{
		SemiMajorAxis: cfg.Planet.SemiMajorAxis,
		Eccentricity:  cfg.Planet.Eccentricity,
	}
	ss.Planet, err = reg.Add(BodySpec{
		Name:         cfg.Planet.Name,
		Kind:         KindPlanet,
		Description:  cfg.Planet.Description,
		Radius:       cfg.Planet.Radius,
		Color:        cfg.Planet.Color,
		Texture:      cfg.Planet.Texture,
		Narration:    cfg.Planet.Narration,
		RotationRate: cfg.Planet.RotationSpeed,
		Orbit:        &planetOrbit,
		PathSegments: segments,
	})
	if err != nil {
		return nil, fmt.Errorf("add planet: %w", err)
	}

	ss.Moon, err = reg.Add(BodySpec{
		Name:         cfg.Moon.Name,
		Kind:         KindMoon,
		Description:  cfg.Moon.Description,
		Radius:       cfg.Moon.Radius,
		Color:        cfg.Moon.Color,
		Texture:      cfg.Moon.Texture,
		Narration:    cfg.Moon.Narration,
		Parent:       ss.Planet,
		Position:     astro.Vec3{X: cfg.Moon.OrbitRadius},
		RotationRate: cfg.Moon.RotationSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("add moon: %w", err)
	}

	ranges := cfg.Asteroids.Ranges()
	for i := 1; i <= cfg.Asteroids.Count; i++ {
		p := orbit.RandomAsteroid(rng, ranges)
		h, err := reg.Add(BodySpec{
			Name:         AsteroidName(i),
			Kind:         KindHazardousAsteroid,
			Description:  AsteroidDescription(p),
			Radius:       cfg.Asteroids.Radius,
			Color:        cfg.Asteroids.Color,
			Orbit:        &p,
			PathSegments: segments,
		})
		if err != nil {
			return nil, fmt.Errorf("add asteroid %d: %w", i, err)
		}
		ss.Asteroids = append(ss.Asteroids, h)
	}

	ss.Starfield = astro.NewStarfield(rng, cfg.Starfield.Count, cfg.Starfield.Spread)
	return ss, nil
}
