// Package config loads the orrery configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/levinmathewabraham/orrery/internal/astro"
	"github.com/levinmathewabraham/orrery/internal/orbit"
)

// Frame interval bounds, applied by Normalize.
const (
	DefaultFrameInterval = 16 * time.Millisecond
	MinFrameInterval     = 8 * time.Millisecond
	MaxFrameInterval     = time.Second
)

// ─── Scene ───────────────────────────────────────────────────────────────

// BodyConfig holds the fields shared by every named body.
type BodyConfig struct {
	Name          string  `yaml:"name"`
	Description   string  `yaml:"description"`
	Radius        float64 `yaml:"radius"`
	Color         string  `yaml:"color"`
	Texture       string  `yaml:"texture"`
	Narration     string  `yaml:"narration"`
	RotationSpeed float64 `yaml:"rotation_speed"` // radians per tick
}

// PlanetConfig is the Keplerian planet.
type PlanetConfig struct {
	BodyConfig    `yaml:",inline"`
	SemiMajorAxis float64 `yaml:"semi_major_axis"`
	Eccentricity  float64 `yaml:"eccentricity"`
	OrbitalSpeed  float64 `yaml:"orbital_speed"` // true anomaly radians per tick
}

// MoonConfig is the planet's satellite, held at a fixed offset.
type MoonConfig struct {
	BodyConfig  `yaml:",inline"`
	OrbitRadius float64 `yaml:"orbit_radius"`
}

// AsteroidConfig controls the hazardous asteroid set.
type AsteroidConfig struct {
	Count          int         `yaml:"count"`
	Radius         float64     `yaml:"radius"`
	Color          string      `yaml:"color"`
	SemiMajorAxis  orbit.Range `yaml:"semi_major_axis"`
	Eccentricity   orbit.Range `yaml:"eccentricity"`
	InclinationDeg orbit.Range `yaml:"inclination_deg"`
}

// Ranges converts the configured bounds to orbit draw ranges.
func (a AsteroidConfig) Ranges() orbit.AsteroidRanges {
	return orbit.AsteroidRanges{
		SemiMajorAxis: a.SemiMajorAxis,
		Eccentricity:  a.Eccentricity,
		Inclination: orbit.Range{
			Min: astro.DegToRad(a.InclinationDeg.Min),
			Max: astro.DegToRad(a.InclinationDeg.Max),
		},
	}
}

// StarfieldConfig controls the backdrop.
type StarfieldConfig struct {
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"`
}

// SceneConfig describes everything placed in the scene.
type SceneConfig struct {
	Seed          int64           `yaml:"seed"` // 0 = time based
	OrbitSegments int             `yaml:"orbit_segments"`
	Star          BodyConfig      `yaml:"star"`
	Planet        PlanetConfig    `yaml:"planet"`
	Moon          MoonConfig      `yaml:"moon"`
	Asteroids     AsteroidConfig  `yaml:"asteroids"`
	Starfield     StarfieldConfig `yaml:"starfield"`
}

// ─── View ────────────────────────────────────────────────────────────────

// CameraConfig is the initial perspective camera.
type CameraConfig struct {
	Position    [3]float64 `yaml:"position"`
	Target      [3]float64 `yaml:"target"`
	FOV         float64    `yaml:"fov"` // vertical, degrees
	Near        float64    `yaml:"near"`
	Far         float64    `yaml:"far"`
	MinDistance float64    `yaml:"min_distance"`
	MaxDistance float64    `yaml:"max_distance"`
}

// RenderConfig controls the terminal raster.
type RenderConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
	CellAspect    float64       `yaml:"cell_aspect"` // cell width / cell height
	ShowOrbits    bool          `yaml:"show_orbits"`
	ShowStars     bool          `yaml:"show_stars"`
}

// AudioConfig controls narration playback.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0-1.0
	SampleRate int     `yaml:"sample_rate"`
}

// Config is the top-level structure for orrery.yaml.
type Config struct {
	Scene  SceneConfig  `yaml:"scene"`
	Camera CameraConfig `yaml:"camera"`
	Render RenderConfig `yaml:"render"`
	Audio  AudioConfig  `yaml:"audio"`
}

// DefaultConfig returns the reference scene.
func DefaultConfig() Config {
	return Config{
		Scene: SceneConfig{
			OrbitSegments: orbit.DefaultSegments,
			Star: BodyConfig{
				Name:        "Sun",
				Description: "Type: Star\nMass: 1.989 × 10^30 kg\nRadius: 696,340 km\nSurface Temperature: 5,778 K",
				Radius:      25,
				Color:       "#FDB813",
				Texture:     "assets/images/sun.jpeg",
				Narration:   "assets/sun_audio.mp3",
			},
			Planet: PlanetConfig{
				BodyConfig: BodyConfig{
					Name:          "Earth",
					Description:   "Type: Planet\nMass: 5.972 × 10^24 kg\nRadius: 6,371 km\nSurface Temperature: 288 K",
					Radius:        15,
					Color:         "#3A7BD5",
					Texture:       "assets/images/earth.jpg",
					Narration:     "earth-narration.mp3",
					RotationSpeed: 0.007,
				},
				SemiMajorAxis: 100,
				Eccentricity:  0.4,
				OrbitalSpeed:  0.001,
			},
			Moon: MoonConfig{
				BodyConfig: BodyConfig{
					Name:          "Moon",
					Description:   "Type: Satellite\nMass: 7.35 × 10^22 kg\nRadius: 1,737 km\nOrbital Period: 27.3 days",
					Radius:        5,
					Color:         "#BBBBBB",
					Texture:       "assets/images/moon.jpg",
					Narration:     "moon-narration.mp3",
					RotationSpeed: 0.005,
				},
				OrbitRadius: 25,
			},
			Asteroids: AsteroidConfig{
				Count:          17,
				Radius:         2,
				Color:          "#ADD8E6",
				SemiMajorAxis:  orbit.Range{Min: 150, Max: 250},
				Eccentricity:   orbit.Range{Min: 0.2, Max: 0.5},
				InclinationDeg: orbit.Range{Min: 0, Max: 30},
			},
			Starfield: StarfieldConfig{
				Count:  astro.DefaultStarCount,
				Spread: astro.DefaultStarSpread,
			},
		},
		Camera: CameraConfig{
			Position:    [3]float64{200, 100, 200},
			FOV:         60,
			Near:        0.1,
			Far:         2000,
			MinDistance: 30,
			MaxDistance: 1500,
		},
		Render: RenderConfig{
			FrameInterval: DefaultFrameInterval,
			CellAspect:    0.5,
			ShowOrbits:    true,
			ShowStars:     true,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.8,
			SampleRate: 44100,
		},
	}
}

// Load reads path and overlays it on DefaultConfig. Fields missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Normalize clamps tunables into their supported ranges.
func (c *Config) Normalize() {
	if c.Render.FrameInterval <= 0 {
		c.Render.FrameInterval = DefaultFrameInterval
	} else if c.Render.FrameInterval < MinFrameInterval {
		c.Render.FrameInterval = MinFrameInterval
	} else if c.Render.FrameInterval > MaxFrameInterval {
		c.Render.FrameInterval = MaxFrameInterval
	}

	if c.Render.CellAspect <= 0 {
		c.Render.CellAspect = 0.5
	}
	if c.Scene.OrbitSegments < 3 {
		c.Scene.OrbitSegments = orbit.DefaultSegments
	}
	if c.Audio.Volume < 0 {
		c.Audio.Volume = 0
	} else if c.Audio.Volume > 1 {
		c.Audio.Volume = 1
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 44100
	}
}

// Validate checks a configuration for orbits and names the scene cannot
// represent. The orbit model itself does not validate; this guards files
// supplied by users.
func (c *Config) Validate() error {
	s := c.Scene

	names := map[string]bool{}
	for _, b := range []BodyConfig{s.Star, s.Planet.BodyConfig, s.Moon.BodyConfig} {
		if b.Name == "" {
			return fmt.Errorf("body name must not be empty")
		}
		if names[b.Name] {
			return fmt.Errorf("duplicate body name %q", b.Name)
		}
		names[b.Name] = true
		if b.Radius <= 0 {
			return fmt.Errorf("%s: radius must be > 0, got %v", b.Name, b.Radius)
		}
	}

	if s.Planet.SemiMajorAxis <= 0 {
		return fmt.Errorf("%s: semi_major_axis must be > 0, got %v", s.Planet.Name, s.Planet.SemiMajorAxis)
	}
	if s.Planet.Eccentricity < 0 || s.Planet.Eccentricity >= 1 {
		return fmt.Errorf("%s: eccentricity must be in [0, 1), got %v", s.Planet.Name, s.Planet.Eccentricity)
	}
	if s.Moon.OrbitRadius <= 0 {
		return fmt.Errorf("%s: orbit_radius must be > 0, got %v", s.Moon.Name, s.Moon.OrbitRadius)
	}

	a := s.Asteroids
	if a.Count < 0 {
		return fmt.Errorf("asteroids: count must be >= 0, got %d", a.Count)
	}
	if a.Count > 0 {
		if a.Radius <= 0 {
			return fmt.Errorf("asteroids: radius must be > 0, got %v", a.Radius)
		}
		if err := checkRange("asteroids.semi_major_axis", a.SemiMajorAxis, 0, 0); err != nil {
			return err
		}
		if a.SemiMajorAxis.Min <= 0 {
			return fmt.Errorf("asteroids.semi_major_axis: min must be > 0, got %v", a.SemiMajorAxis.Min)
		}
		if err := checkRange("asteroids.eccentricity", a.Eccentricity, 0, 1); err != nil {
			return err
		}
		if err := checkRange("asteroids.inclination_deg", a.InclinationDeg, -90, 90); err != nil {
			return err
		}
	}

	cam := c.Camera
	if cam.FOV <= 0 || cam.FOV >= 180 {
		return fmt.Errorf("camera: fov must be in (0, 180), got %v", cam.FOV)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("camera: need 0 < near < far, got near=%v far=%v", cam.Near, cam.Far)
	}
	return nil
}

// checkRange verifies min <= max and, when lo < hi, that [min, max] fits in
// [lo, hi].
func checkRange(field string, r orbit.Range, lo, hi float64) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s: min %v greater than max %v", field, r.Min, r.Max)
	}
	if lo < hi && (r.Min < lo || r.Max > hi) {
		return fmt.Errorf("%s: [%v, %v) outside [%v, %v]", field, r.Min, r.Max, lo, hi)
	}
	return nil
}
