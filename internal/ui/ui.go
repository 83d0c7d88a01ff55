// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gopxl/beep"
	"golang.org/x/time/rate"

	"github.com/levinmathewabraham/orrery/internal/assets"
	"github.com/levinmathewabraham/orrery/internal/camera"
	"github.com/levinmathewabraham/orrery/internal/clock"
	"github.com/levinmathewabraham/orrery/internal/config"
	"github.com/levinmathewabraham/orrery/internal/logging"
	"github.com/levinmathewabraham/orrery/internal/metrics"
	"github.com/levinmathewabraham/orrery/internal/narration"
	"github.com/levinmathewabraham/orrery/internal/pick"
	"github.com/levinmathewabraham/orrery/internal/scene"
	"github.com/levinmathewabraham/orrery/internal/state"
)

// Msg types for Bubble Tea
type (
	// FrameTickMsg advances the clock and redraws.
	FrameTickMsg time.Time

	// TextureLoadedMsg carries the result of a texture load.
	TextureLoadedMsg struct {
		Key     string
		Texture *assets.Texture
		Err     error
		Elapsed time.Duration
	}

	// ClipLoadedMsg carries the result of a narration clip load.
	ClipLoadedMsg struct {
		Key     string
		Clip    *narration.Clip
		Err     error
		Elapsed time.Duration
	}
)

// Camera control steps.
const (
	rotateStep   = 0.05 // radians per key press
	dragAzimuth  = 0.03 // radians per dragged column
	dragPolar    = 0.06 // radians per dragged row
	panStep      = 0.1  // fraction of the half-height per key press
	dollyIn      = 0.9
	dollyOut     = 1.1
	footerHeight = 1
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF")).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Deps are the collaborators the root model drives. System, Clock, Camera
// and Narration are required.
type Deps struct {
	System    *scene.SolarSystem
	Clock     *clock.Clock
	Camera    *camera.Camera
	Narration *narration.Controller
	State     *state.Manager
	Metrics   *metrics.Collector
	Logger    *logging.Logger
	Config    config.Config

	// AssetRoot is prepended to relative texture and narration paths.
	AssetRoot string
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	system    *scene.SolarSystem
	clock     *clock.Clock
	camera    *camera.Camera
	narration *narration.Controller
	state     *state.Manager
	metrics   *metrics.Collector
	log       *logging.Logger
	cfg       config.Config
	assetRoot string

	renderer *Renderer
	textures map[string]*assets.Texture

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string
	statusErr bool

	// Pointer
	pointerX, pointerY int
	pointerIn          bool
	hovered            scene.Handle
	pickLimiter        *rate.Limiter
	pickPending        bool

	dragging     bool
	dragX, dragY int
}

// New creates the root model and registers the narration bindings and
// expected assets.
func New(d Deps) Model {
	if d.State == nil {
		d.State = state.NewManager(state.DefaultConfig())
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewCollector()
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}

	textures := make(map[string]*assets.Texture)
	m := Model{
		system:    d.System,
		clock:     d.Clock,
		camera:    d.Camera,
		narration: d.Narration,
		state:     d.State,
		metrics:   d.Metrics,
		log:       d.Logger,
		cfg:       d.Config,
		assetRoot: d.AssetRoot,
		textures:  textures,
		renderer: &Renderer{
			Camera:     d.Camera,
			Textures:   func(key string) *assets.Texture { return textures[key] },
			Ambient:    DefaultAmbient,
			ShowOrbits: d.Config.Render.ShowOrbits,
			ShowStars:  d.Config.Render.ShowStars,
		},
		pickLimiter: rate.NewLimiter(rate.Every(d.Config.Render.FrameInterval), 1),
	}

	for _, b := range m.system.Registry.All() {
		if b.Texture != "" {
			m.state.ExpectAsset(b.Texture, state.AssetTexture)
		}
		if b.Narration != "" {
			m.narration.Bind(b.Name, b.Narration)
			m.state.ExpectAsset(b.Narration, state.AssetNarration)
		}
	}
	m.state.SetVoiceEnabled(m.narration.IsVoiceEnabled())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameTickCmd(m.cfg.Render.FrameInterval)}
	for _, key := range m.textureKeys() {
		cmds = append(cmds, loadTextureCmd(key, m.resolve(key)))
	}
	for _, key := range m.narration.Clips() {
		cmds = append(cmds, loadClipCmd(key, m.resolve(key), m.narration.SampleRate()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.camera.SetViewport(m.width, m.canvasHeight(), m.cfg.Render.CellAspect)

	case FrameTickMsg:
		cmds = append(cmds, frameTickCmd(m.cfg.Render.FrameInterval))
		m.clock.Tick()
		m.metrics.Tick()
		m.metrics.SetNarrationsPlaying(m.narration.Playing())
		if m.pickPending {
			m.pickPending = false
			m.updateHover()
		}

	case TextureLoadedMsg:
		m.state.AssetDone(msg.Key, state.AssetTexture, msg.Elapsed, msg.Err)
		m.metrics.AssetLoad(string(state.AssetTexture), msg.Err)
		if msg.Err != nil {
			m.log.Warn("texture %s: %v", msg.Key, msg.Err)
			break
		}
		m.textures[msg.Key] = msg.Texture
		w, h := msg.Texture.Size()
		m.log.Debug("texture %s loaded (%dx%d) in %v", msg.Key, w, h, msg.Elapsed)

	case ClipLoadedMsg:
		m.state.AssetDone(msg.Key, state.AssetNarration, msg.Elapsed, msg.Err)
		m.metrics.AssetLoad(string(state.AssetNarration), msg.Err)
		if msg.Err != nil {
			m.log.Warn("narration %s: %v", msg.Key, msg.Err)
			break
		}
		m.narration.Attach(msg.Key, msg.Clip)
		m.log.Debug("narration %s loaded (%v) in %v", msg.Key, msg.Clip.Duration().Round(time.Millisecond), msg.Elapsed)
	}

	return m, tea.Batch(cmds...)
}

// handleKey applies a key press. It returns a command only when the key
// ends the program.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.narration.StopAll()
		return tea.Quit

	case "v":
		m.toggleVoice()
	case "p":
		m.playNarration()

	case "h", "a":
		m.camera.Rotate(rotateStep, 0)
	case "l", "d":
		m.camera.Rotate(-rotateStep, 0)
	case "k", "w":
		m.camera.Rotate(0, -rotateStep)
	case "j", "s":
		m.camera.Rotate(0, rotateStep)
	case "+", "=":
		m.camera.Dolly(dollyIn)
	case "-", "_":
		m.camera.Dolly(dollyOut)
	case "left":
		m.camera.Pan(-panStep, 0)
	case "right":
		m.camera.Pan(panStep, 0)
	case "up":
		m.camera.Pan(0, panStep)
	case "down":
		m.camera.Pan(0, -panStep)
	case "r":
		m.camera.Reset()
		m.setStatus("View reset", false)

	case "o":
		m.renderer.ShowOrbits = !m.renderer.ShowOrbits
	case "*":
		m.renderer.ShowStars = !m.renderer.ShowStars
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.camera.Dolly(dollyIn)
		return
	case msg.Button == tea.MouseButtonWheelDown:
		m.camera.Dolly(dollyOut)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if voiceButtonRect(m.width, m.canvasHeight(), m.narration.IsVoiceEnabled()).contains(msg.X, msg.Y) {
			m.toggleVoice()
			return
		}
		m.dragging = true
		m.dragX, m.dragY = msg.X, msg.Y

	case tea.MouseActionRelease:
		m.dragging = false

	case tea.MouseActionMotion:
		if m.dragging {
			dx, dy := msg.X-m.dragX, msg.Y-m.dragY
			m.camera.Rotate(-float64(dx)*dragAzimuth, -float64(dy)*dragPolar)
			m.dragX, m.dragY = msg.X, msg.Y
		}
	}

	m.pointerX, m.pointerY = msg.X, msg.Y
	m.pointerIn = m.viewport().Contains(msg.X, msg.Y)
	if m.pickLimiter.Allow() {
		m.pickPending = false
		m.updateHover()
	} else {
		m.pickPending = true
	}
}

// updateHover picks the body under the pointer and records it.
func (m *Model) updateHover() {
	h := scene.NoHandle
	if m.pointerIn {
		h = m.bodyAt(m.pointerX, m.pointerY)
		m.metrics.Pick(h != scene.NoHandle)
	}
	m.hovered = h

	name := ""
	if b, ok := m.system.Registry.Get(h); ok {
		name = b.Name
	}
	if m.state.SetHovered(name) && name != "" {
		m.log.Debug("hover %s", name)
	}
}

// bodyAt returns the body under cell (x, y). Bodies smaller than a cell are
// found through their marker cell when the ray misses.
func (m *Model) bodyAt(x, y int) scene.Handle {
	if hit, ok := pick.Pick(m.system.Registry, m.camera, m.viewport(), x, y); ok {
		return hit.Body.Handle
	}

	best, bestDepth := scene.NoHandle, math.Inf(1)
	for _, b := range m.system.Registry.All() {
		mx, my, depth, ok := markerCell(m.camera, m.width, m.canvasHeight(), b)
		if ok && mx == x && my == y && depth < bestDepth {
			best, bestDepth = b.Handle, depth
		}
	}
	return best
}

func (m *Model) toggleVoice() {
	on := !m.narration.IsVoiceEnabled()
	m.narration.SetVoiceEnabled(on)
	m.state.SetVoiceEnabled(on)
	m.metrics.SetNarrationsPlaying(m.narration.Playing())
	if on {
		m.setStatus("Voice enabled, press p to hear the last hovered body", false)
	} else {
		m.setStatus("Voice disabled", false)
	}
}

func (m *Model) playNarration() {
	name := m.state.LastHovered()
	if name == "" {
		m.setStatus("Hover over an object first", false)
		return
	}

	err := m.narration.Play(name)
	m.state.RecordNarration(name, err)
	switch {
	case err == nil:
		m.setStatus("Playing "+name, false)
	case errors.Is(err, narration.ErrVoiceDisabled):
		m.setStatus("Voice is off, press v to enable", false)
	case errors.Is(err, narration.ErrUnknownClip):
		m.setStatus("No narration for "+name, false)
	case errors.Is(err, narration.ErrNotLoaded):
		m.setStatus("Narration for "+name+" is not available", true)
	default:
		m.setStatus(err.Error(), true)
	}
	m.metrics.SetNarrationsPlaying(m.narration.Playing())
}

func (m *Model) setStatus(s string, isErr bool) {
	m.statusMsg = s
	m.statusErr = isErr
}

func (m Model) canvasHeight() int {
	return max(m.height-footerHeight, 0)
}

func (m Model) viewport() pick.Viewport {
	return pick.Viewport{Width: m.width, Height: m.canvasHeight()}
}

// Hovered returns the body under the pointer, or scene.NoHandle.
func (m Model) Hovered() scene.Handle {
	return m.hovered
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	start := time.Now()
	f := m.drawFrame()
	m.metrics.ObserveFrame(time.Since(start))

	return f.Render() + "\n" + m.renderFooter()
}

// drawFrame renders the scene and overlays onto a fresh canvas.
func (m Model) drawFrame() *Frame {
	f := NewFrame(m.width, m.canvasHeight())
	m.renderer.Draw(f, m.system.Registry.All(), m.system.Starfield)

	snap := m.state.Snapshot()
	if b, ok := m.system.Registry.Get(m.hovered); ok && m.pointerIn {
		drawTooltip(f, m.pointerX, m.pointerY, b.Name)
	}

	if h, ok := m.system.Registry.Lookup(snap.LastHovered); ok {
		b, _ := m.system.Registry.Get(h)
		drawInfoPanel(f, b.Name, strings.Split(b.Description, "\n"), false)
	} else {
		drawInfoPanel(f, infoTitle, []string{infoPlaceholder}, true)
	}

	drawVoiceButton(f, snap.VoiceEnabled)
	return f
}

func (m Model) renderFooter() string {
	snap := m.state.Snapshot()

	var parts []string
	if failed := snap.FailedAssets(); len(failed) > 0 {
		keys := make([]string, len(failed))
		for i, a := range failed {
			keys[i] = filepath.Base(a.Key)
		}
		parts = append(parts, errorStyle.Render("missing: "+strings.Join(keys, ", ")))
	}
	if n := snap.PendingAssets(); n > 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("loading %d assets", n)))
	}
	if m.statusMsg != "" {
		if m.statusErr {
			parts = append(parts, errorStyle.Render(m.statusMsg))
		} else {
			parts = append(parts, valueStyle.Render(m.statusMsg))
		}
	}

	status := accentStyle.Render("◆ orrery") + " " +
		dimStyle.Render(fmt.Sprintf("t=%d", m.clock.Ticks()))
	if len(parts) > 0 {
		status += " | " + strings.Join(parts, " | ")
	}
	help := dimStyle.Render("drag/hjkl rotate  wheel/+- zoom  arrows pan  r reset  v voice  p play  q quit")
	return status + " | " + help
}

// textureKeys returns the distinct texture keys in the scene, sorted.
func (m Model) textureKeys() []string {
	seen := map[string]bool{}
	var keys []string
	for _, b := range m.system.Registry.All() {
		if b.Texture != "" && !seen[b.Texture] {
			seen[b.Texture] = true
			keys = append(keys, b.Texture)
		}
	}
	sort.Strings(keys)
	return keys
}

// resolve maps an asset key to a file path.
func (m Model) resolve(key string) string {
	if filepath.IsAbs(key) || m.assetRoot == "" {
		return key
	}
	return filepath.Join(m.assetRoot, key)
}

func frameTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}

func loadTextureCmd(key, path string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		tex, err := assets.LoadTexture(path)
		return TextureLoadedMsg{Key: key, Texture: tex, Err: err, Elapsed: time.Since(start)}
	}
}

func loadClipCmd(key, path string, sr beep.SampleRate) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		clip, err := narration.LoadClip(path, sr)
		return ClipLoadedMsg{Key: key, Clip: clip, Err: err, Elapsed: time.Since(start)}
	}
}
