package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/levinmathewabraham/orrery/internal/astro"
	"github.com/levinmathewabraham/orrery/internal/orbit"
)

var (
	// ErrDuplicateName is returned when a body name is already registered.
	ErrDuplicateName = errors.New("duplicate body name")
	// ErrUnknownBody is returned for handles that do not belong to the registry.
	ErrUnknownBody = errors.New("unknown body")
	// ErrEmptyName is returned when a body has no name.
	ErrEmptyName = errors.New("body name must not be empty")
)

// Registry owns every body in the scene. Iteration order is insertion order.
//
// Writes come from the frame clock; readers (picking, rendering, export,
// metrics) may run on other goroutines, so access is guarded by a single
// RWMutex.
type Registry struct {
	mu     sync.RWMutex
	bodies []Body
	byName map[string]Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Handle),
	}
}

// Add registers a new body and returns its handle. The body's world position
// is computed before it becomes visible to readers.
func (r *Registry) Add(spec BodySpec) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if spec.Name == "" {
		return NoHandle, ErrEmptyName
	}
	if _, exists := r.byName[spec.Name]; exists {
		return NoHandle, fmt.Errorf("%w: %s", ErrDuplicateName, spec.Name)
	}

	parent := spec.Parent
	if parent != NoHandle && !r.valid(parent) {
		return NoHandle, fmt.Errorf("%w: parent %d of %s", ErrUnknownBody, parent, spec.Name)
	}

	h := Handle(len(r.bodies) + 1)
	b := Body{
		Handle:       h,
		Name:         spec.Name,
		Kind:         spec.Kind,
		Description:  spec.Description,
		Radius:       spec.Radius,
		Color:        spec.Color,
		Texture:      spec.Texture,
		Narration:    spec.Narration,
		Parent:       parent,
		Local:        spec.Position,
		Rotation:     spec.Rotation,
		RotationRate: spec.RotationRate,
	}

	if spec.Orbit != nil {
		o := *spec.Orbit
		b.Orbit = &o
		b.Local = o.Point()
		if spec.PathSegments > 0 {
			path := orbit.NewPath(o, spec.PathSegments)
			b.Path = &path
		}
	}

	b.Position = r.worldPosition(b)
	r.bodies = append(r.bodies, b)
	r.byName[b.Name] = h
	return h, nil
}

// UpdateTransform sets a body's local position (world position for root
// bodies), adds rotationDelta to its axial rotation and re-derives the world
// position of the body and its children.
func (r *Registry) UpdateTransform(h Handle, position astro.Vec3, rotationDelta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.valid(h) {
		return fmt.Errorf("%w: %d", ErrUnknownBody, h)
	}

	b := &r.bodies[h.index()]
	b.Local = position
	b.Rotation = astro.WrapAngle(b.Rotation + rotationDelta)
	b.Position = r.worldPosition(*b)
	r.refreshChildren(h)
	return nil
}

// SetOrbitPhase records the current true anomaly of an orbiting body.
// The stored position is not changed; callers follow up with UpdateTransform.
func (r *Registry) SetOrbitPhase(h Handle, phase float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.valid(h) {
		return fmt.Errorf("%w: %d", ErrUnknownBody, h)
	}
	b := &r.bodies[h.index()]
	if b.Orbit == nil {
		return fmt.Errorf("%s has no orbit", b.Name)
	}
	o := *b.Orbit
	o.Phase = phase
	b.Orbit = &o
	return nil
}

// Get returns a copy of the body for h.
func (r *Registry) Get(h Handle) (Body, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.valid(h) {
		return Body{}, false
	}
	return r.bodies[h.index()], true
}

// Lookup returns the handle registered under name.
func (r *Registry) Lookup(name string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byName[name]
	return h, ok
}

// All returns a snapshot of every body in insertion order.
func (r *Registry) All() []Body {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Body, len(r.bodies))
	copy(out, r.bodies)
	return out
}

// Handles returns every handle in insertion order.
func (r *Registry) Handles() []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Handle, len(r.bodies))
	for i := range r.bodies {
		out[i] = r.bodies[i].Handle
	}
	return out
}

// Len returns the number of registered bodies.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bodies)
}

func (r *Registry) valid(h Handle) bool {
	return h > NoHandle && int(h) <= len(r.bodies)
}

func (h Handle) index() int {
	return int(h) - 1
}

// worldPosition resolves b's local position through its parent chain.
// Caller holds the lock.
func (r *Registry) worldPosition(b Body) astro.Vec3 {
	if b.Parent == NoHandle {
		return b.Local
	}
	p := r.bodies[b.Parent.index()]
	return p.Position.Add(b.Local.RotateY(p.Rotation))
}

// refreshChildren recomputes world positions below h. Parents always have
// lower handles than their children, so one forward pass suffices.
func (r *Registry) refreshChildren(h Handle) {
	dirty := map[Handle]bool{h: true}
	for i := h.index() + 1; i < len(r.bodies); i++ {
		c := &r.bodies[i]
		if c.Parent != NoHandle && dirty[c.Parent] {
			c.Position = r.worldPosition(*c)
			dirty[c.Handle] = true
		}
	}
}
