package ui

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/levinmathewabraham/orrery/internal/assets"
	"github.com/levinmathewabraham/orrery/internal/astro"
	"github.com/levinmathewabraham/orrery/internal/camera"
	"github.com/levinmathewabraham/orrery/internal/orbit"
	"github.com/levinmathewabraham/orrery/internal/pick"
	"github.com/levinmathewabraham/orrery/internal/scene"
)

// DefaultAmbient is the light every lit surface receives regardless of the
// star's direction.
const DefaultAmbient = 0.4

var (
	orbitColor    = colorful.Color{R: 0.35, G: 0.35, B: 0.35}
	starNear      = colorful.Color{R: 0.85, G: 0.85, B: 0.85}
	starFar       = colorful.Color{R: 0.25, G: 0.25, B: 0.3}
	fallbackColor = colorful.Color{R: 0.6, G: 0.6, B: 0.6}
)

// shadeRamp maps light intensity to glyph density.
var shadeRamp = []rune{'░', '▒', '▓', '█'}

// TextureSource looks up a loaded texture by asset key. It returns nil for
// textures that are missing or still loading.
type TextureSource func(key string) *assets.Texture

// Renderer rasterizes the scene onto a Frame by casting one ray per cell.
type Renderer struct {
	Camera     *camera.Camera
	Textures   TextureSource
	Ambient    float64
	ShowOrbits bool
	ShowStars  bool
}

// Draw renders stars, orbit paths and bodies into f.
func (r *Renderer) Draw(f *Frame, bodies []scene.Body, stars astro.Starfield) {
	if f.Width == 0 || f.Height == 0 {
		return
	}
	if r.ShowStars {
		r.drawStars(f, stars)
	}
	if r.ShowOrbits {
		for _, b := range bodies {
			if b.Path != nil {
				r.drawPath(f, b.Path)
			}
		}
	}
	r.drawBodies(f, bodies)
	r.drawMarkers(f, bodies)
}

// RenderText draws the scene without overlays or colour, for headless
// output.
func RenderText(ss *scene.SolarSystem, cam *camera.Camera, width, height int, showOrbits, showStars bool) string {
	r := &Renderer{Camera: cam, Ambient: DefaultAmbient, ShowOrbits: showOrbits, ShowStars: showStars}
	f := NewFrame(width, height)
	r.Draw(f, ss.Registry.All(), ss.Starfield)
	return f.String()
}

// toCell maps normalized screen coordinates to a cell.
func toCell(f *Frame, nx, ny float64) (x, y int) {
	x = int(math.Floor((nx + 1) / 2 * float64(f.Width)))
	y = int(math.Floor((1 - ny) / 2 * float64(f.Height)))
	return x, y
}

func (r *Renderer) drawStars(f *Frame, stars astro.Starfield) {
	far := r.Camera.Far()
	for _, p := range stars.Points {
		nx, ny, depth, ok := r.Camera.Project(p)
		if !ok || nx < -1 || nx >= 1 || ny <= -1 || ny > 1 {
			continue
		}
		x, y := toCell(f, nx, ny)
		if f.At(x, y).Kind != cellEmpty {
			continue
		}
		glyph := '.'
		if depth < far*0.25 {
			glyph = '∗'
		}
		c := Cell{
			Glyph: glyph,
			Fg:    starFar.BlendRgb(starNear, 1-depth/far),
			Kind:  cellStar,
		}
		// Stars sit behind everything else.
		f.plot(x, y, c, far)
	}
}

// maxLineSteps bounds the cells walked per orbit segment so that segments
// projecting far off-screen stay cheap.
const maxLineSteps = 4096

func (r *Renderer) drawPath(f *Frame, path *orbit.Path) {
	path.Segments(func(a, b astro.Vec3) {
		ax, ay, ad, okA := r.Camera.Project(a)
		bx, by, bd, okB := r.Camera.Project(b)
		if !okA || !okB {
			return
		}
		x0, y0 := toCell(f, ax, ay)
		x1, y1 := toCell(f, bx, by)

		steps := max(abs(x1-x0), abs(y1-y0))
		if steps > maxLineSteps {
			return
		}
		for i := 0; i <= steps; i++ {
			t := 0.0
			if steps > 0 {
				t = float64(i) / float64(steps)
			}
			x := x0 + int(math.Round(t*float64(x1-x0)))
			y := y0 + int(math.Round(t*float64(y1-y0)))
			c := Cell{Glyph: '·', Fg: orbitColor, Kind: cellOrbit}
			f.plot(x, y, c, ad+t*(bd-ad))
		}
	})
}

func (r *Renderer) drawBodies(f *Frame, bodies []scene.Body) {
	if len(bodies) == 0 {
		return
	}
	light, hasLight := starPosition(bodies)
	vp := pick.Viewport{Width: f.Width, Height: f.Height}
	far := r.Camera.Far()

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			nx, ny := pick.Normalize(vp, x, y)
			hit, ok := pick.Cast(bodies, r.Camera.Ray(nx, ny))
			if !ok || hit.T > far {
				continue
			}
			glyph, color := r.shade(hit.Body, hit.Point, light, hasLight)
			f.plot(x, y, Cell{
				Glyph: glyph,
				Fg:    color,
				Bold:  hit.Body.Kind == scene.KindStar,
				Kind:  cellBody,
				Body:  hit.Body.Handle,
			}, hit.T)
		}
	}
}

// drawMarkers draws a glyph at the centre of bodies too small to cover any
// cell centre, so that asteroids stay visible from afar.
func (r *Renderer) drawMarkers(f *Frame, bodies []scene.Body) {
	for _, b := range bodies {
		x, y, depth, ok := markerCell(r.Camera, f.Width, f.Height, b)
		if !ok {
			continue
		}
		if cur := f.At(x, y); cur.Kind == cellBody && cur.Body == b.Handle {
			continue
		}
		f.plot(x, y, Cell{
			Glyph: markerGlyph(b.Kind),
			Fg:    assets.ParseColor(b.Color, fallbackColor),
			Kind:  cellMarker,
			Body:  b.Handle,
		}, depth)
	}
}

// markerCell returns the cell under a body's centre.
func markerCell(cam *camera.Camera, width, height int, b scene.Body) (x, y int, depth float64, ok bool) {
	nx, ny, depth, ok := cam.Project(b.Position)
	if !ok || nx < -1 || nx >= 1 || ny <= -1 || ny > 1 {
		return 0, 0, 0, false
	}
	x = int(math.Floor((nx + 1) / 2 * float64(width)))
	y = int(math.Floor((1 - ny) / 2 * float64(height)))
	// Place the marker at the sphere's front surface for depth tests.
	return x, y, depth - b.Radius, true
}

func markerGlyph(k scene.Kind) rune {
	switch k {
	case scene.KindStar:
		return '☉'
	case scene.KindPlanet:
		return '●'
	case scene.KindMoon:
		return 'o'
	default:
		return '•'
	}
}

// shade returns the glyph and colour of a body's surface at point p.
func (r *Renderer) shade(b scene.Body, p, light astro.Vec3, hasLight bool) (rune, colorful.Color) {
	n := p.Sub(b.Position).Normalized()
	base := r.surfaceColor(b, n)

	// The star emits its own light.
	if b.Kind == scene.KindStar {
		return '█', base
	}

	intensity := r.Ambient
	if hasLight {
		if d := n.Dot(light.Sub(p).Normalized()); d > 0 {
			intensity += d
		}
	}
	if intensity > 1 {
		intensity = 1
	}
	return rampGlyph(intensity), assets.Shade(base, intensity)
}

// surfaceColor samples the body's texture at surface normal n, rotated into
// the body's frame, or returns its base colour.
func (r *Renderer) surfaceColor(b scene.Body, n astro.Vec3) colorful.Color {
	if b.Texture != "" && r.Textures != nil {
		if tex := r.Textures(b.Texture); tex != nil {
			local := n.RotateY(-b.Rotation)
			u := astro.Longitude(local) / astro.TwoPi
			v := 0.5 - astro.Latitude(local)/math.Pi
			return tex.Sample(u, v)
		}
	}
	return assets.ParseColor(b.Color, fallbackColor)
}

func rampGlyph(intensity float64) rune {
	i := int(intensity * float64(len(shadeRamp)))
	if i >= len(shadeRamp) {
		i = len(shadeRamp) - 1
	}
	if i < 0 {
		i = 0
	}
	return shadeRamp[i]
}

// starPosition returns the first star's position, the scene's light source.
func starPosition(bodies []scene.Body) (astro.Vec3, bool) {
	for _, b := range bodies {
		if b.Kind == scene.KindStar {
			return b.Position, true
		}
	}
	return astro.Vec3{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
