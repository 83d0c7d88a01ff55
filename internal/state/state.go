// Package state provides thread-safe application state shared between the
// event loop, asset loaders and the metrics endpoint.
package state

import (
	"sort"
	"sync"
	"time"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventAssetLoaded EventType = "ASSET_LOADED"
	EventAssetFailed EventType = "ASSET_FAILED"
	EventHover       EventType = "HOVER"
	EventVoiceOn     EventType = "VOICE_ON"
	EventVoiceOff    EventType = "VOICE_OFF"
	EventNarration   EventType = "NARRATION"
)

// Event represents a state change worth surfacing to the user.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body,omitempty"`
	Asset     string    `json:"asset,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// AssetKind distinguishes textures from narration clips.
type AssetKind string

const (
	AssetTexture   AssetKind = "texture"
	AssetNarration AssetKind = "narration"
)

// AssetStatus is the load state of one asset.
type AssetStatus struct {
	Key      string
	Kind     AssetKind
	Loaded   bool
	Err      error
	Duration time.Duration
}

// Pending reports whether the asset has neither loaded nor failed.
func (a AssetStatus) Pending() bool {
	return !a.Loaded && a.Err == nil
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	assets map[string]AssetStatus

	// Hover tracking
	hovered     string
	lastHovered string

	voiceEnabled bool

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50, // Last 50 events
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		assets:    make(map[string]AssetStatus),
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		now:       time.Now,
	}
}

// ExpectAsset registers an asset whose load has started.
func (m *Manager) ExpectAsset(key string, kind AssetKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.assets[key]; ok {
		return
	}
	m.assets[key] = AssetStatus{Key: key, Kind: kind}
}

// AssetDone records the outcome of an asset load.
func (m *Manager) AssetDone(key string, kind AssetKind, d time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.assets[key] = AssetStatus{
		Key:      key,
		Kind:     kind,
		Loaded:   err == nil,
		Err:      err,
		Duration: d,
	}

	e := Event{
		Type:      EventAssetLoaded,
		Timestamp: m.now(),
		Asset:     key,
		Detail:    string(kind),
	}
	if err != nil {
		e.Type = EventAssetFailed
		e.Detail = err.Error()
	}
	m.addEvent(e)
}

// SetHovered records the body under the pointer, or "" for none. It
// reports whether the hovered body changed. Only entering a body creates an
// event.
func (m *Manager) SetHovered(body string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if body == m.hovered {
		return false
	}
	m.hovered = body
	if body != "" {
		m.lastHovered = body
		m.addEvent(Event{Type: EventHover, Timestamp: m.now(), Body: body})
	}
	return true
}

// SetVoiceEnabled records a voice toggle.
func (m *Manager) SetVoiceEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if on == m.voiceEnabled {
		return
	}
	m.voiceEnabled = on
	t := EventVoiceOff
	if on {
		t = EventVoiceOn
	}
	m.addEvent(Event{Type: t, Timestamp: m.now()})
}

// RecordNarration logs a narration request and its outcome.
func (m *Manager) RecordNarration(body string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := Event{Type: EventNarration, Timestamp: m.now(), Body: body, Detail: "playing"}
	if err != nil {
		e.Detail = err.Error()
	}
	m.addEvent(e)
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Hovered      string
	LastHovered  string
	VoiceEnabled bool
	Assets       []AssetStatus // sorted by key
	Events       []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	assets := make([]AssetStatus, 0, len(m.assets))
	for _, a := range m.assets {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Key < assets[j].Key })

	return Snapshot{
		Hovered:      m.hovered,
		LastHovered:  m.lastHovered,
		VoiceEnabled: m.voiceEnabled,
		Assets:       assets,
		Events:       m.getEventsOrdered(),
	}
}

// FailedAssets returns the assets whose load failed, sorted by key.
func (s Snapshot) FailedAssets() []AssetStatus {
	var out []AssetStatus
	for _, a := range s.Assets {
		if a.Err != nil {
			out = append(out, a)
		}
	}
	return out
}

// PendingAssets returns the number of assets still loading.
func (s Snapshot) PendingAssets() int {
	n := 0
	for _, a := range s.Assets {
		if a.Pending() {
			n++
		}
	}
	return n
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// LastHovered returns the most recently hovered body, or "".
func (m *Manager) LastHovered() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHovered
}
