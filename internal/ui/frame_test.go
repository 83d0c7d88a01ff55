package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestNewFrame_Blank(t *testing.T) {
	f := NewFrame(4, 2)
	if got := f.String(); got != "    \n    " {
		t.Errorf("String() = %q", got)
	}
	if !math.IsInf(f.Depth(0, 0), 1) {
		t.Errorf("Depth = %v, want +Inf", f.Depth(0, 0))
	}

	empty := NewFrame(-1, 3)
	if empty.Width != 0 || empty.String() != "\n\n" {
		t.Errorf("negative width frame = %d %q", empty.Width, empty.String())
	}
}

func TestFrame_PlotDepthTest(t *testing.T) {
	f := NewFrame(3, 1)

	if !f.plot(1, 0, Cell{Glyph: 'a', Kind: cellBody}, 10) {
		t.Fatal("first plot rejected")
	}
	if f.plot(1, 0, Cell{Glyph: 'b', Kind: cellBody}, 20) {
		t.Error("farther plot accepted")
	}
	if !f.plot(1, 0, Cell{Glyph: 'c', Kind: cellBody}, 5) {
		t.Error("nearer plot rejected")
	}
	if f.At(1, 0).Glyph != 'c' || f.Depth(1, 0) != 5 {
		t.Errorf("cell = %q at %v", f.At(1, 0).Glyph, f.Depth(1, 0))
	}
	if f.plot(5, 0, Cell{Glyph: 'x'}, 1) {
		t.Error("plot outside frame accepted")
	}
	if f.At(-1, 0) != blankCell {
		t.Error("At outside frame should be blank")
	}
}

func TestFrame_TextOverlaysEverything(t *testing.T) {
	f := NewFrame(5, 1)
	f.plot(0, 0, Cell{Glyph: '█', Kind: cellBody}, 1)

	n := f.text(0, 0, "hello world", Cell{})
	if n != 11 {
		t.Errorf("text wrote %d runes, want 11", n)
	}
	if f.Row(0) != "hello" {
		t.Errorf("Row = %q, want clipped hello", f.Row(0))
	}
	if f.At(0, 0).Kind != cellOverlay {
		t.Error("text cell should be overlay")
	}
	// Nothing drawn later by depth can cover an overlay.
	if f.plot(0, 0, Cell{Glyph: 'x'}, 0) {
		t.Error("plot over overlay accepted")
	}
}

func TestFrame_Fill(t *testing.T) {
	f := NewFrame(4, 3)
	f.fill(1, 1, 2, 5, Cell{Glyph: '#'})
	want := "    \n ## \n ## "
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFrame_Render(t *testing.T) {
	f := NewFrame(6, 2)
	red := colorful.Color{R: 1}
	f.text(0, 0, "abc", Cell{Fg: red})
	f.text(3, 0, "def", Cell{Fg: red, Bold: true})
	f.text(0, 1, "x", Cell{Fg: red, Bg: red, HasBg: true})

	out := f.Render()
	if strings.Count(out, "\n") != 1 {
		t.Errorf("Render should keep 2 rows, got %q", out)
	}
	for _, want := range []string{"abc", "def", "x"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render missing %q in %q", want, out)
		}
	}
}

func TestSameStyle(t *testing.T) {
	a := Cell{Fg: colorful.Color{R: 1}, Kind: cellBody}
	tests := []struct {
		name string
		b    Cell
		want bool
	}{
		{"identical", a, true},
		{"different fg", Cell{Fg: colorful.Color{G: 1}, Kind: cellBody}, false},
		{"bold", Cell{Fg: a.Fg, Bold: true, Kind: cellBody}, false},
		{"empty", blankCell, false},
	}
	for _, tt := range tests {
		if got := sameStyle(a, tt.b); got != tt.want {
			t.Errorf("%s: sameStyle = %v, want %v", tt.name, got, tt.want)
		}
	}
	if !sameStyle(blankCell, blankCell) {
		t.Error("blank cells should share a style")
	}
}
