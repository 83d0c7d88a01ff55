// Package assets loads the textures drawn onto bodies.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrEmptyTexture is returned for images with no pixels.
var ErrEmptyTexture = errors.New("texture has no pixels")

// maxTextureSide caps the stored resolution. A terminal cell samples far
// fewer texels than a photo carries.
const maxTextureSide = 512

// Texture is an equirectangular colour map: u runs with longitude, v from
// the north pole (0) to the south pole (1).
type Texture struct {
	Name   string
	width  int
	height int
	texels []colorful.Color
}

// LoadTexture reads and decodes a JPEG or PNG image.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	tex, err := DecodeTexture(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	tex.Name = path
	return tex, nil
}

// DecodeTexture decodes an image from r, downsampling large images.
func DecodeTexture(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// FromImage converts img into a texture.
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyTexture
	}

	step := 1
	for b.Dx()/step > maxTextureSide || b.Dy()/step > maxTextureSide {
		step++
	}
	w, h := b.Dx()/step, b.Dy()/step

	t := &Texture{
		width:  w,
		height: h,
		texels: make([]colorful.Color, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := colorful.MakeColor(img.At(b.Min.X+x*step, b.Min.Y+y*step))
			t.texels[y*w+x] = c
		}
	}
	return t, nil
}

// Size returns the texture dimensions in texels.
func (t *Texture) Size() (width, height int) {
	return t.width, t.height
}

// Sample returns the nearest texel to (u, v). u wraps, v clamps.
func (t *Texture) Sample(u, v float64) colorful.Color {
	u -= math.Floor(u)
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	x := int(u * float64(t.width))
	y := int(v * float64(t.height))
	if x >= t.width {
		x = t.width - 1
	}
	if y >= t.height {
		y = t.height - 1
	}
	return t.texels[y*t.width+x]
}

// Average returns the mean colour of the texture.
func (t *Texture) Average() colorful.Color {
	var r, g, b float64
	for _, c := range t.texels {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(t.texels))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}
