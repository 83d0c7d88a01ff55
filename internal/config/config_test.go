package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orrery.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig_ReferenceValues(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	p := cfg.Scene.Planet
	if p.SemiMajorAxis != 100 || p.Eccentricity != 0.4 {
		t.Errorf("planet orbit = (%v, %v), want (100, 0.4)", p.SemiMajorAxis, p.Eccentricity)
	}
	if p.OrbitalSpeed != 0.001 || p.RotationSpeed != 0.007 {
		t.Errorf("planet speeds = (%v, %v), want (0.001, 0.007)", p.OrbitalSpeed, p.RotationSpeed)
	}
	if cfg.Scene.Moon.RotationSpeed != 0.005 || cfg.Scene.Moon.OrbitRadius != 25 {
		t.Errorf("moon = %+v, want spin 0.005 offset 25", cfg.Scene.Moon)
	}
	if cfg.Scene.Asteroids.Count != 17 {
		t.Errorf("asteroid count = %d, want 17", cfg.Scene.Asteroids.Count)
	}

	r := cfg.Scene.Asteroids.Ranges()
	if math.Abs(r.Inclination.Max-math.Pi/6) > 1e-12 {
		t.Errorf("inclination max = %v rad, want π/6", r.Inclination.Max)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
scene:
  seed: 42
  planet:
    eccentricity: 0.1
  asteroids:
    count: 5
render:
  frame_interval: 33ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Scene.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Scene.Seed)
	}
	if cfg.Scene.Planet.Eccentricity != 0.1 {
		t.Errorf("Eccentricity = %v, want 0.1", cfg.Scene.Planet.Eccentricity)
	}
	// Untouched fields keep defaults
	if cfg.Scene.Planet.SemiMajorAxis != 100 {
		t.Errorf("SemiMajorAxis = %v, want default 100", cfg.Scene.Planet.SemiMajorAxis)
	}
	if cfg.Scene.Planet.Name != "Earth" {
		t.Errorf("Planet name = %q, want Earth", cfg.Scene.Planet.Name)
	}
	if cfg.Scene.Asteroids.Count != 5 {
		t.Errorf("asteroid count = %d, want 5", cfg.Scene.Asteroids.Count)
	}
	if cfg.Render.FrameInterval != 33*time.Millisecond {
		t.Errorf("FrameInterval = %v, want 33ms", cfg.Render.FrameInterval)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad yaml", "scene: [", "parse config"},
		{"hyperbolic planet", "scene:\n  planet:\n    eccentricity: 1.2\n", "eccentricity"},
		{"negative axis", "scene:\n  planet:\n    semi_major_axis: -5\n", "semi_major_axis"},
		{"duplicate names", "scene:\n  moon:\n    name: Earth\n", "duplicate body name"},
		{"inverted range", "scene:\n  asteroids:\n    semi_major_axis: {min: 300, max: 200}\n", "greater than max"},
		{"bad fov", "camera:\n  fov: 0\n", "fov"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestNormalize_ClampsFrameInterval(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{0, DefaultFrameInterval},
		{time.Millisecond, MinFrameInterval},
		{time.Minute, MaxFrameInterval},
		{40 * time.Millisecond, 40 * time.Millisecond},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Render.FrameInterval = tt.in
		cfg.Normalize()
		if cfg.Render.FrameInterval != tt.want {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, cfg.Render.FrameInterval, tt.want)
		}
	}
}
