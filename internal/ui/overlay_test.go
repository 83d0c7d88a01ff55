package ui

import (
	"strings"
	"testing"
)

func TestVoiceButtonRect(t *testing.T) {
	tests := []struct {
		enabled bool
		want    rect
	}{
		{false, rect{X: 1, Y: 38, W: 16, H: 1}},
		{true, rect{X: 1, Y: 38, W: 17, H: 1}},
	}
	for _, tt := range tests {
		if got := voiceButtonRect(120, 40, tt.enabled); got != tt.want {
			t.Errorf("voiceButtonRect(enabled=%v) = %+v, want %+v", tt.enabled, got, tt.want)
		}
	}

	r := voiceButtonRect(120, 40, false)
	if !r.contains(1, 38) || !r.contains(16, 38) || r.contains(17, 38) || r.contains(5, 37) {
		t.Errorf("contains mismatch for %+v", r)
	}
}

func TestDrawVoiceButton(t *testing.T) {
	f := NewFrame(40, 10)
	drawVoiceButton(f, false)
	if !strings.HasPrefix(f.Row(8), " [ Enable Voice ]") {
		t.Errorf("row 8 = %q", f.Row(8))
	}

	f = NewFrame(40, 10)
	drawVoiceButton(f, true)
	if !strings.HasPrefix(f.Row(8), " [ Disable Voice ]") {
		t.Errorf("row 8 = %q", f.Row(8))
	}
}

func TestDrawInfoPanel(t *testing.T) {
	f := NewFrame(80, 12)
	drawInfoPanel(f, "Earth", []string{"Type: Planet", "Mass: 5.972 × 10^24 kg"}, false)
	out := f.String()

	for _, want := range []string{"┌", "┘", "Earth", "Type: Planet", "Mass: 5.972 × 10^24 kg"} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q", want)
		}
	}
	// Panel hugs the right edge with one column of margin.
	if !strings.HasSuffix(f.Row(1), "┐ ") {
		t.Errorf("top border row = %q", f.Row(1))
	}
}

func TestDrawInfoPanel_ClipsLongLines(t *testing.T) {
	f := NewFrame(30, 6)
	drawInfoPanel(f, infoTitle, []string{infoPlaceholder}, true)
	for y := 0; y < f.Height; y++ {
		if n := len([]rune(f.Row(y))); n != 30 {
			t.Fatalf("row %d has %d runes", y, n)
		}
	}
	if !strings.Contains(f.String(), "…") {
		t.Error("long line should be clipped with an ellipsis")
	}
}

func TestDrawTooltip(t *testing.T) {
	tests := []struct {
		name   string
		px, py int
		row    int
		want   string
	}{
		{"right of pointer", 5, 5, 4, strings.Repeat(" ", 8) + "Sun "},
		{"flips left at the edge", 18, 5, 4, strings.Repeat(" ", 13) + "Sun "},
		{"below at the top", 5, 0, 1, strings.Repeat(" ", 8) + "Sun "},
	}
	for _, tt := range tests {
		f := NewFrame(20, 8)
		drawTooltip(f, tt.px, tt.py, "Sun")
		if got := f.Row(tt.row); !strings.HasPrefix(got, tt.want) {
			t.Errorf("%s: row %d = %q, want prefix %q", tt.name, tt.row, got, tt.want)
		}
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Earth", 10, "Earth"},
		{"Surface Temperature", 8, "Surface…"},
		{"°°°", 2, "°…"},
		{"ab", 1, "a"},
	}
	for _, tt := range tests {
		if got := clip(tt.in, tt.n); got != tt.want {
			t.Errorf("clip(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
