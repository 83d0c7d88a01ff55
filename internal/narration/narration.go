// Package narration gates and plays the spoken clip bound to each body.
//
// Playback is armed by a single voice toggle. Turning the toggle off stops
// every playing clip at once; nothing fades and nothing is re-queued when
// the toggle comes back on. Clips load asynchronously, so a body can be
// bound to a clip that is not available yet.
package narration

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// DefaultVolume is the linear gain applied to every clip.
const DefaultVolume = 0.8

var (
	// ErrVoiceDisabled is returned by Play while the voice toggle is off.
	ErrVoiceDisabled = errors.New("voice narration disabled")
	// ErrUnknownClip is returned for bodies without a bound clip.
	ErrUnknownClip = errors.New("no narration bound")
	// ErrNotLoaded is returned when the bound clip has not finished loading.
	ErrNotLoaded = errors.New("narration not loaded")
)

// voice is one playing clip.
type voice struct {
	clip string
	ctrl *beep.Ctrl
	done atomic.Bool // set from the sink's goroutine
}

// Controller owns the voice toggle and the playing clips.
type Controller struct {
	mu       sync.Mutex
	sink     Sink
	volume   float64
	enabled  bool
	bindings map[string]string // body name -> clip key
	clips    map[string]*Clip  // clip key -> decoded clip
	active   []*voice
}

// NewController creates a controller that mixes into sink. Voice starts
// disabled.
func NewController(sink Sink, volume float64) *Controller {
	return &Controller{
		sink:     sink,
		volume:   volume,
		bindings: make(map[string]string),
		clips:    make(map[string]*Clip),
	}
}

// SampleRate returns the rate clips must be buffered at.
func (c *Controller) SampleRate() beep.SampleRate {
	return c.sink.SampleRate()
}

// SetVoiceEnabled arms or disarms narration. Disarming stops all clips.
func (c *Controller) SetVoiceEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enabled = on
	if !on {
		c.stopAllLocked()
	}
}

// IsVoiceEnabled reports whether narration may play.
func (c *Controller) IsVoiceEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// StopAll silences every playing clip immediately.
func (c *Controller) StopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAllLocked()
}

func (c *Controller) stopAllLocked() {
	if len(c.active) == 0 {
		return
	}
	c.sink.Lock()
	for _, v := range c.active {
		v.ctrl.Streamer = nil
		v.done.Store(true)
	}
	c.sink.Unlock()
	c.sink.Clear()
	c.active = nil
}

// Bind associates a body with a clip key.
func (c *Controller) Bind(body, clip string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[body] = clip
}

// Clips returns the distinct bound clip keys, sorted.
func (c *Controller) Clips() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(c.bindings))
	var keys []string
	for _, k := range c.bindings {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Attach makes a decoded clip available under key.
func (c *Controller) Attach(key string, clip *Clip) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clips[key] = clip
}

// Loaded reports whether the clip key has been attached.
func (c *Controller) Loaded(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.clips[key]
	return ok
}

// HasNarration reports whether body has a bound clip that is loaded.
func (c *Controller) HasNarration(body string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	key, ok := c.bindings[body]
	if !ok {
		return false
	}
	_, ok = c.clips[key]
	return ok
}

// Play starts the clip bound to body. A clip that is already playing is
// left alone.
func (c *Controller) Play(body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return ErrVoiceDisabled
	}
	key, ok := c.bindings[body]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClip, body)
	}
	clip, ok := c.clips[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotLoaded, key)
	}

	c.pruneLocked()
	for _, v := range c.active {
		if v.clip == key {
			return nil
		}
	}

	v := &voice{clip: key}
	v.ctrl = &beep.Ctrl{Streamer: c.withVolume(clip.Streamer())}
	c.active = append(c.active, v)
	c.sink.Add(beep.Seq(v.ctrl, beep.Callback(func() {
		v.done.Store(true)
	})))
	return nil
}

// Playing returns the number of clips still playing.
func (c *Controller) Playing() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()
	return len(c.active)
}

// Close stops playback and releases the sink.
func (c *Controller) Close() error {
	c.StopAll()
	return c.sink.Close()
}

func (c *Controller) pruneLocked() {
	live := c.active[:0]
	for _, v := range c.active {
		if !v.done.Load() {
			live = append(live, v)
		}
	}
	for i := len(live); i < len(c.active); i++ {
		c.active[i] = nil
	}
	c.active = live
}

// withVolume applies the controller's linear volume. effects.Volume is
// logarithmic, so the gain is expressed as a power of two.
func (c *Controller) withVolume(s beep.Streamer) beep.Streamer {
	if c.volume == 1 {
		return s
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(c.volume),
		Silent:   c.volume <= 0,
	}
}
