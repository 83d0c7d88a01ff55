package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	infoTitle       = "Solar System Information"
	infoPlaceholder = "Hover over objects to see details."

	enableVoiceLabel  = "[ Enable Voice ]"
	disableVoiceLabel = "[ Disable Voice ]"

	panelMaxWidth = 44
)

var (
	overlayText   = colorful.Color{R: 1, G: 1, B: 1}
	overlayBg     = colorful.Color{R: 0.2, G: 0.2, B: 0.2}
	panelBorder   = colorful.Color{R: 0.48, G: 0.17, B: 0.75} // accent
	panelTitle    = colorful.Color{R: 1, G: 0.37, B: 0.84}
	panelMuted    = colorful.Color{R: 0.55, G: 0.55, B: 0.55}
	buttonOn      = colorful.Color{R: 0.91, G: 0.29, B: 0.15}
	buttonOff     = colorful.Color{R: 0.3, G: 0.69, B: 0.31}
)

// rect is a cell rectangle.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// voiceButtonLabel returns the label for the current toggle state.
func voiceButtonLabel(enabled bool) string {
	if enabled {
		return disableVoiceLabel
	}
	return enableVoiceLabel
}

// voiceButtonRect returns where the voice toggle sits on a canvas of the
// given size: the bottom-left corner, one cell in.
func voiceButtonRect(width, height int, enabled bool) rect {
	w := utf8.RuneCountInString(voiceButtonLabel(enabled))
	y := height - 2
	if y < 0 {
		y = 0
	}
	return rect{X: 1, Y: y, W: w, H: 1}
}

func drawVoiceButton(f *Frame, enabled bool) {
	r := voiceButtonRect(f.Width, f.Height, enabled)
	fg := buttonOff
	if enabled {
		fg = buttonOn
	}
	f.text(r.X, r.Y, voiceButtonLabel(enabled), Cell{Fg: fg, Bg: overlayBg, HasBg: true, Bold: true})
}

// drawTooltip puts label next to the pointer, kept inside the frame.
func drawTooltip(f *Frame, px, py int, label string) {
	label = " " + label + " "
	w := utf8.RuneCountInString(label)

	x := px + 2
	if x+w > f.Width {
		x = px - w - 1
	}
	if x < 0 {
		x = 0
	}
	y := py - 1
	if y < 0 {
		y = py + 1
	}
	f.text(x, y, label, Cell{Fg: overlayText, Bg: overlayBg, HasBg: true})
}

// drawInfoPanel draws a bordered box in the top-right corner. The title
// line is highlighted; body lines are clipped to the panel width.
func drawInfoPanel(f *Frame, title string, lines []string, muted bool) {
	inner := utf8.RuneCountInString(title)
	for _, l := range lines {
		inner = max(inner, utf8.RuneCountInString(l))
	}
	inner = min(inner, panelMaxWidth, f.Width-4)
	if inner <= 0 {
		return
	}

	w := inner + 4
	h := len(lines) + 3
	x := f.Width - w - 1
	if x < 0 {
		x = 0
	}
	y := 1

	border := Cell{Fg: panelBorder, Bg: overlayBg, HasBg: true}
	f.fill(x, y, w, h, Cell{Glyph: ' ', Bg: overlayBg, HasBg: true})
	f.text(x, y, "┌"+strings.Repeat("─", w-2)+"┐", border)
	for i := 1; i < h-1; i++ {
		f.text(x, y+i, "│", border)
		f.text(x+w-1, y+i, "│", border)
	}
	f.text(x, y+h-1, "└"+strings.Repeat("─", w-2)+"┘", border)

	f.text(x+2, y+1, clip(title, inner), Cell{Fg: panelTitle, Bg: overlayBg, HasBg: true, Bold: true})
	body := Cell{Fg: overlayText, Bg: overlayBg, HasBg: true}
	if muted {
		body.Fg = panelMuted
	}
	for i, l := range lines {
		f.text(x+2, y+2+i, clip(l, inner), body)
	}
}

// clip truncates s to n runes.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
