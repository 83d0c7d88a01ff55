package pick

import (
	"math"
	"math/rand"
	"testing"

	"github.com/levinmathewabraham/orrery/internal/astro"
	"github.com/levinmathewabraham/orrery/internal/camera"
	"github.com/levinmathewabraham/orrery/internal/config"
	"github.com/levinmathewabraham/orrery/internal/scene"
)

// fixedCaster always returns the same ray.
type fixedCaster struct {
	ray astro.Ray
}

func (f fixedCaster) Ray(nx, ny float64) astro.Ray { return f.ray }

func TestNormalize(t *testing.T) {
	vp := Viewport{Width: 100, Height: 50}
	tests := []struct {
		x, y   int
		nx, ny float64
	}{
		{0, 0, -0.99, 0.98},
		{99, 49, 0.99, -0.98},
		{50, 25, 0.01, -0.02},
	}
	for _, tt := range tests {
		nx, ny := Normalize(vp, tt.x, tt.y)
		if math.Abs(nx-tt.nx) > 1e-12 || math.Abs(ny-tt.ny) > 1e-12 {
			t.Errorf("Normalize(%d, %d) = (%v, %v), want (%v, %v)", tt.x, tt.y, nx, ny, tt.nx, tt.ny)
		}
	}

	if nx, ny := Normalize(Viewport{}, 3, 3); nx != 0 || ny != 0 {
		t.Errorf("empty viewport = (%v, %v), want (0, 0)", nx, ny)
	}
}

func TestCast_NearestWins(t *testing.T) {
	ray := astro.Ray{Origin: astro.Vec3{X: -100}, Dir: astro.Vec3{X: 1}}
	bodies := []scene.Body{
		{Name: "far", Position: astro.Vec3{X: 50}, Radius: 10},
		{Name: "near", Position: astro.Vec3{X: 0}, Radius: 5},
		{Name: "off-axis", Position: astro.Vec3{X: -50, Y: 30}, Radius: 5},
	}

	hit, ok := Cast(bodies, ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Body.Name != "near" {
		t.Errorf("hit %s, want near", hit.Body.Name)
	}
	if math.Abs(hit.T-95) > 1e-9 {
		t.Errorf("T = %v, want 95", hit.T)
	}
	if hit.Point.DistanceTo(astro.Vec3{X: -5}) > 1e-9 {
		t.Errorf("Point = %+v, want (-5, 0, 0)", hit.Point)
	}
}

func TestCast_Ties(t *testing.T) {
	ray := astro.Ray{Origin: astro.Vec3{Z: 100}, Dir: astro.Vec3{Z: -1}}
	bodies := []scene.Body{
		{Name: "first", Radius: 5},
		{Name: "second", Radius: 5},
	}
	hit, ok := Cast(bodies, ray)
	if !ok || hit.Body.Name != "first" {
		t.Errorf("tie resolved to %q, want first", hit.Body.Name)
	}
}

func TestCast_Misses(t *testing.T) {
	ray := astro.Ray{Origin: astro.Vec3{}, Dir: astro.Vec3{Y: 1}}
	if _, ok := Cast(nil, ray); ok {
		t.Error("no bodies should never hit")
	}
	bodies := []scene.Body{
		{Name: "beside", Position: astro.Vec3{X: 50, Y: 50}, Radius: 5},
		{Name: "behind", Position: astro.Vec3{Y: -50}, Radius: 5},
	}
	if hit, ok := Cast(bodies, ray); ok {
		t.Errorf("unexpected hit on %s", hit.Body.Name)
	}
}

func TestPick_DefaultSceneCenterHitsSun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene.Starfield.Count = 0
	ss, err := scene.BuildSolarSystem(cfg.Scene, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("BuildSolarSystem: %v", err)
	}
	cam := camera.New(cfg.Camera)
	vp := Viewport{Width: 121, Height: 41}
	cam.SetViewport(vp.Width, vp.Height, 0.5)

	hit, ok := Pick(ss.Registry, cam, vp, 60, 20)
	if !ok {
		t.Fatal("centre pick missed")
	}
	if hit.Body.Name != "Sun" {
		t.Errorf("centre pick = %s, want Sun", hit.Body.Name)
	}

	// The top-left corner looks past everything.
	if hit, ok := Pick(ss.Registry, cam, vp, 0, 0); ok {
		t.Errorf("corner pick hit %s", hit.Body.Name)
	}
	if _, ok := Pick(ss.Registry, cam, vp, -1, 5); ok {
		t.Error("pointer outside viewport should not hit")
	}
}

func TestPick_EmptyRegistry(t *testing.T) {
	caster := fixedCaster{ray: astro.Ray{Dir: astro.Vec3{Z: -1}}}
	if _, ok := Pick(scene.NewRegistry(), caster, Viewport{Width: 10, Height: 10}, 5, 5); ok {
		t.Error("empty registry should not hit")
	}
}
