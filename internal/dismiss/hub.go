// Package dismiss closes open dropdowns when the user interacts elsewhere.
//
// Every open widget holds a registration in a shared Hub. A pointer press is
// offered to the hub, which reports the registrations whose area does not
// contain the press. The hub is reference counted: the host enables terminal
// mouse tracking on the first registration and disables it after the last
// one is released.
package dismiss

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Target reports whether a terminal cell belongs to a widget.
type Target interface {
	Contains(x, y int) bool
}

// Rect is a cell rectangle. Zero width or height contains nothing.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a Target whose rectangles are updated as the layout changes.
// The zero value contains nothing.
type Region struct {
	mu    sync.RWMutex
	rects []Rect
}

// Set replaces the rectangles covered by the region.
func (r *Region) Set(rects ...Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rects = append(r.rects[:0], rects...)
}

// Contains reports whether any rectangle contains (x, y).
func (r *Region) Contains(x, y int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rect := range r.rects {
		if rect.Contains(x, y) {
			return true
		}
	}
	return false
}

type registration struct {
	target Target
	seq    uint64
}

// Hub tracks open widgets.
type Hub struct {
	mu       sync.Mutex
	regs     map[string]registration
	seq      uint64
	reported bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{regs: make(map[string]registration)}
}

// Register adds t and returns its id plus an idempotent release func.
func (h *Hub) Register(t Target) (string, func()) {
	id := uuid.NewString()

	h.mu.Lock()
	h.seq++
	h.regs[id] = registration{target: t, seq: h.seq}
	h.mu.Unlock()

	var once sync.Once
	return id, func() {
		once.Do(func() { h.release(id) })
	}
}

func (h *Hub) release(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.regs, id)
}

// PointerDown returns the ids of registrations whose target does not contain
// (x, y), oldest first. The registrations stay held; owners release them when
// they close.
func (h *Hub) PointerDown(x, y int) []string {
	h.mu.Lock()
	type hit struct {
		id  string
		seq uint64
	}
	var outside []hit
	for id, reg := range h.regs {
		if reg.target == nil || !reg.target.Contains(x, y) {
			outside = append(outside, hit{id: id, seq: reg.seq})
		}
	}
	h.mu.Unlock()

	sort.Slice(outside, func(i, j int) bool { return outside[i].seq < outside[j].seq })
	ids := make([]string, len(outside))
	for i, o := range outside {
		ids[i] = o.id
	}
	return ids
}

// Len reports the number of held registrations.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.regs)
}

// Active reports whether any registration is held.
func (h *Hub) Active() bool {
	return h.Len() > 0
}

// Edge reports the current activity and whether it changed since the last
// call to Edge. The first call reports a change only when active.
func (h *Hub) Edge() (active, changed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	active = len(h.regs) > 0
	changed = active != h.reported
	h.reported = active
	return active, changed
}
