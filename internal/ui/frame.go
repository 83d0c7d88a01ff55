package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/levinmathewabraham/orrery/internal/scene"
)

// cellKind records what drew a cell.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellStar
	cellOrbit
	cellBody
	cellMarker
	cellOverlay
)

// Cell is one character of the canvas.
type Cell struct {
	Glyph rune
	Fg    colorful.Color
	Bg    colorful.Color
	HasBg bool
	Bold  bool
	Kind  cellKind
	Body  scene.Handle // set for body and marker cells
}

var blankCell = Cell{Glyph: ' '}

// Frame is a character grid with a depth buffer. Depth is the distance along
// the view ray; smaller wins.
type Frame struct {
	Width  int
	Height int
	cells  []Cell
	depth  []float64
}

// NewFrame creates a blank frame.
func NewFrame(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f := &Frame{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
		depth:  make([]float64, width*height),
	}
	for i := range f.cells {
		f.cells[i] = blankCell
		f.depth[i] = math.Inf(1)
	}
	return f
}

func (f *Frame) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// At returns the cell at (x, y). Cells outside the frame are blank.
func (f *Frame) At(x, y int) Cell {
	if !f.inside(x, y) {
		return blankCell
	}
	return f.cells[y*f.Width+x]
}

// Depth returns the depth stored at (x, y).
func (f *Frame) Depth(x, y int) float64 {
	if !f.inside(x, y) {
		return math.Inf(1)
	}
	return f.depth[y*f.Width+x]
}

// plot writes c at (x, y) if depth is nearer than what is there.
func (f *Frame) plot(x, y int, c Cell, depth float64) bool {
	if !f.inside(x, y) {
		return false
	}
	i := y*f.Width + x
	if depth >= f.depth[i] {
		return false
	}
	f.cells[i] = c
	f.depth[i] = depth
	return true
}

// put writes c at (x, y) unconditionally, above everything drawn so far.
func (f *Frame) put(x, y int, c Cell) {
	if !f.inside(x, y) {
		return
	}
	i := y*f.Width + x
	f.cells[i] = c
	f.depth[i] = math.Inf(-1)
}

// text writes s starting at (x, y), clipped to the frame.
func (f *Frame) text(x, y int, s string, tmpl Cell) int {
	n := 0
	for _, r := range s {
		c := tmpl
		c.Glyph = r
		c.Kind = cellOverlay
		f.put(x+n, y, c)
		n++
	}
	return n
}

// fill paints a rectangle with tmpl.
func (f *Frame) fill(x, y, w, h int, tmpl Cell) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c := tmpl
			c.Kind = cellOverlay
			f.put(xx, yy, c)
		}
	}
}

// Row returns row y as plain text.
func (f *Frame) Row(y int) string {
	if y < 0 || y >= f.Height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < f.Width; x++ {
		b.WriteRune(f.cells[y*f.Width+x].Glyph)
	}
	return b.String()
}

// String returns the frame as plain text without styling.
func (f *Frame) String() string {
	rows := make([]string, f.Height)
	for y := range rows {
		rows[y] = f.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Render returns the frame with terminal colours. Runs of equally styled
// cells share one style so the output stays small.
func (f *Frame) Render() string {
	var b strings.Builder
	var run strings.Builder

	for y := 0; y < f.Height; y++ {
		if y > 0 {
			b.WriteRune('\n')
		}
		row := f.cells[y*f.Width : (y+1)*f.Width]
		var cur Cell
		for x, c := range row {
			if x > 0 && !sameStyle(cur, c) {
				b.WriteString(styleFor(cur).Render(run.String()))
				run.Reset()
			}
			cur = c
			run.WriteRune(c.Glyph)
		}
		if run.Len() > 0 {
			b.WriteString(styleFor(cur).Render(run.String()))
			run.Reset()
		}
	}
	return b.String()
}

func sameStyle(a, b Cell) bool {
	if a.Kind == cellEmpty && b.Kind == cellEmpty {
		return true
	}
	return a.Kind != cellEmpty && b.Kind != cellEmpty &&
		a.Fg == b.Fg && a.HasBg == b.HasBg && a.Bg == b.Bg && a.Bold == b.Bold
}

func styleFor(c Cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.Kind == cellEmpty {
		return s
	}
	s = s.Foreground(lipgloss.Color(c.Fg.Clamped().Hex()))
	if c.HasBg {
		s = s.Background(lipgloss.Color(c.Bg.Clamped().Hex()))
	}
	if c.Bold {
		s = s.Bold(true)
	}
	return s
}
