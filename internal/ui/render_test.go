package ui

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/levinmathewabraham/orrery/internal/assets"
	"github.com/levinmathewabraham/orrery/internal/astro"
	"github.com/levinmathewabraham/orrery/internal/camera"
	"github.com/levinmathewabraham/orrery/internal/config"
	"github.com/levinmathewabraham/orrery/internal/scene"
)

func testSystem(t *testing.T) *scene.SolarSystem {
	t.Helper()
	cfg := config.DefaultConfig().Scene
	cfg.Starfield.Count = 200
	ss, err := scene.BuildSolarSystem(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("BuildSolarSystem: %v", err)
	}
	return ss
}

func testCamera(width, height int) *camera.Camera {
	cam := camera.New(config.DefaultConfig().Camera)
	cam.SetViewport(width, height, 0.5)
	return cam
}

func TestRenderer_SunAtCentre(t *testing.T) {
	ss := testSystem(t)
	r := &Renderer{Camera: testCamera(121, 41), Ambient: DefaultAmbient, ShowOrbits: true, ShowStars: true}
	f := NewFrame(121, 41)
	r.Draw(f, ss.Registry.All(), ss.Starfield)

	c := f.At(60, 20)
	if c.Kind != cellBody || c.Body != ss.Star {
		t.Fatalf("centre cell = %+v, want the Sun", c)
	}
	if c.Glyph != '█' || !c.Bold {
		t.Errorf("Sun glyph = %q bold=%v, want bold █", c.Glyph, c.Bold)
	}
	// The star is unlit: it keeps its base colour.
	want := assets.ParseColor("#FDB813", fallbackColor)
	if c.Fg != want {
		t.Errorf("Sun colour = %v, want %v", c.Fg.Hex(), want.Hex())
	}
	if math.Abs(f.Depth(60, 20)-275) > 5 {
		t.Errorf("Sun depth = %v, want about 275", f.Depth(60, 20))
	}
}

func TestRenderer_EmptySceneStaysBlank(t *testing.T) {
	r := &Renderer{Camera: testCamera(20, 10), Ambient: DefaultAmbient}
	f := NewFrame(20, 10)
	r.Draw(f, nil, astro.Starfield{})
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.At(x, y).Kind != cellEmpty {
				t.Fatalf("cell (%d, %d) drawn in empty scene", x, y)
			}
		}
	}
}

func TestRenderer_MarkerForTinyBody(t *testing.T) {
	bodies := []scene.Body{{
		Handle:   1,
		Name:     "PHA #1",
		Kind:     scene.KindHazardousAsteroid,
		Radius:   0.01,
		Color:    "#ADD8E6",
		Position: astro.Vec3{},
	}}
	// An even viewport keeps cell centres off the view axis, so no ray
	// touches the body.
	r := &Renderer{Camera: testCamera(120, 40), Ambient: DefaultAmbient}
	f := NewFrame(120, 40)
	r.Draw(f, bodies, astro.Starfield{})

	c := f.At(60, 20)
	if c.Kind != cellMarker || c.Glyph != '•' || c.Body != 1 {
		t.Errorf("marker cell = %+v", c)
	}
}

func TestRenderer_StarsBehindBodies(t *testing.T) {
	ss := testSystem(t)
	// A star directly behind the Sun, on the view axis.
	stars := astro.Starfield{Points: []astro.Vec3{{X: -200, Y: -100, Z: -200}}}
	r := &Renderer{Camera: testCamera(121, 41), Ambient: DefaultAmbient, ShowStars: true}
	f := NewFrame(121, 41)
	r.Draw(f, ss.Registry.All(), stars)

	if c := f.At(60, 20); c.Kind != cellBody {
		t.Errorf("star drawn over the Sun: %+v", c)
	}
}

func TestRenderer_LitSideBrighter(t *testing.T) {
	star := scene.Body{Handle: 1, Kind: scene.KindStar, Radius: 1}
	planet := scene.Body{Handle: 2, Kind: scene.KindPlanet, Radius: 10, Position: astro.Vec3{X: 100}, Color: "#FFFFFF"}
	r := &Renderer{Ambient: DefaultAmbient}

	// Facing the star at the origin.
	litGlyph, lit := r.shade(planet, astro.Vec3{X: 90}, star.Position, true)
	// Facing away.
	darkGlyph, dark := r.shade(planet, astro.Vec3{X: 110}, star.Position, true)

	if litGlyph != '█' {
		t.Errorf("lit glyph = %q, want █", litGlyph)
	}
	if darkGlyph != '▒' {
		t.Errorf("dark glyph = %q, want ▒ (ambient only)", darkGlyph)
	}
	if lit.R <= dark.R {
		t.Errorf("lit side %v not brighter than dark side %v", lit.Hex(), dark.Hex())
	}
}

func TestRenderer_TextureFollowsRotation(t *testing.T) {
	// Left half red, right half blue.
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		c := color.RGBA{R: 255, A: 255}
		if x >= 2 {
			c = color.RGBA{B: 255, A: 255}
		}
		img.Set(x, 0, c)
		img.Set(x, 1, c)
	}
	tex, err := assets.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	r := &Renderer{Textures: func(string) *assets.Texture { return tex }}

	b := scene.Body{Texture: "tex", Radius: 1}
	n := astro.Vec3{X: 1, Z: 0.1}.Normalized()
	before := r.surfaceColor(b, n)

	b.Rotation = math.Pi
	after := r.surfaceColor(b, n)
	if before == after {
		t.Errorf("rotating the body by π should move the texture, both %v", before.Hex())
	}

	r.Textures = func(string) *assets.Texture { return nil }
	b.Color = "#00FF00"
	if got := r.surfaceColor(b, n); got.Hex() != "#00ff00" {
		t.Errorf("untextured colour = %v, want base colour", got.Hex())
	}
}

func TestRampGlyph(t *testing.T) {
	tests := []struct {
		in   float64
		want rune
	}{
		{-1, '░'},
		{0, '░'},
		{0.3, '▒'},
		{0.6, '▓'},
		{0.99, '█'},
		{2, '█'},
	}
	for _, tt := range tests {
		if got := rampGlyph(tt.in); got != tt.want {
			t.Errorf("rampGlyph(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderText(t *testing.T) {
	ss := testSystem(t)
	out := RenderText(ss, testCamera(121, 41), 121, 41, false, false)
	rows := strings.Split(out, "\n")
	if len(rows) != 41 {
		t.Fatalf("rows = %d, want 41", len(rows))
	}
	if got := []rune(rows[20])[60]; got != '█' {
		t.Errorf("centre glyph = %q, want the Sun", got)
	}
}
