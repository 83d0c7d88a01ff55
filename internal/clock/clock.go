// Package clock advances the animated bodies once per frame.
package clock

import (
	"fmt"

	"github.com/levinmathewabraham/orrery/internal/config"
	"github.com/levinmathewabraham/orrery/internal/orbit"
	"github.com/levinmathewabraham/orrery/internal/scene"
)

// Config holds the bodies the clock animates and their per-tick increments.
type Config struct {
	Planet       scene.Handle
	Moon         scene.Handle // NoHandle when there is no moon
	OrbitalSpeed float64      // planet true anomaly, radians per tick
	PlanetSpin   float64      // radians per tick
	MoonSpin     float64      // radians per tick
}

// Clock is the frame clock. It is not safe for concurrent Tick calls; the
// UI event loop is its only caller.
type Clock struct {
	reg   *scene.Registry
	cfg   Config
	orbit orbit.Params
	ticks uint64
}

// New creates a clock for the planet and moon in cfg. The planet must have
// an orbit.
func New(reg *scene.Registry, cfg Config) (*Clock, error) {
	planet, ok := reg.Get(cfg.Planet)
	if !ok {
		return nil, fmt.Errorf("clock planet: %w", scene.ErrUnknownBody)
	}
	if planet.Orbit == nil {
		return nil, fmt.Errorf("clock planet %s has no orbit", planet.Name)
	}
	if cfg.Moon != scene.NoHandle {
		if _, ok := reg.Get(cfg.Moon); !ok {
			return nil, fmt.Errorf("clock moon: %w", scene.ErrUnknownBody)
		}
	}
	return &Clock{
		reg:   reg,
		cfg:   cfg,
		orbit: *planet.Orbit,
	}, nil
}

// FromSolarSystem creates the clock for a built scene, taking the speeds
// from the scene configuration.
func FromSolarSystem(ss *scene.SolarSystem, cfg config.SceneConfig) (*Clock, error) {
	return New(ss.Registry, Config{
		Planet:       ss.Planet,
		Moon:         ss.Moon,
		OrbitalSpeed: cfg.Planet.OrbitalSpeed,
		PlanetSpin:   cfg.Planet.RotationSpeed,
		MoonSpin:     cfg.Moon.RotationSpeed,
	})
}

// Tick advances one frame: the planet moves along its orbit and spins, the
// moon spins and is carried by the planet. Asteroids stay where they spawned.
func (c *Clock) Tick() {
	c.orbit.Phase = orbit.Advance(c.orbit.Phase, c.cfg.OrbitalSpeed)

	// Handles were validated in New and the registry never removes bodies.
	_ = c.reg.SetOrbitPhase(c.cfg.Planet, c.orbit.Phase)
	_ = c.reg.UpdateTransform(c.cfg.Planet, c.orbit.Point(), c.cfg.PlanetSpin)

	if c.cfg.Moon != scene.NoHandle {
		if moon, ok := c.reg.Get(c.cfg.Moon); ok {
			_ = c.reg.UpdateTransform(c.cfg.Moon, moon.Local, c.cfg.MoonSpin)
		}
	}
	c.ticks++
}

// Phase returns the planet's current true anomaly in [0, 2π).
func (c *Clock) Phase() float64 {
	return c.orbit.Phase
}

// Ticks returns the number of Tick calls so far.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}
