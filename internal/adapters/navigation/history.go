// Package navigation keeps the navigation fragment of a session.
package navigation

import (
	"sync"

	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/observe"
)

var _ ports.Navigator = (*History)(nil)

// History is an in-memory fragment history. Navigating pushes the previous
// fragment so Back can return to it.
type History struct {
	mu      sync.Mutex
	current string
	back    []string
	changes observe.Subject[string]
}

// NewHistory creates a history positioned at fragment.
func NewHistory(fragment string) *History {
	return &History{current: fragment}
}

// Fragment returns the current fragment.
func (h *History) Fragment() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Navigate moves to fragment and notifies subscribers.
// Navigating to the current fragment does nothing.
func (h *History) Navigate(fragment string) {
	h.mu.Lock()
	if fragment == h.current {
		h.mu.Unlock()
		return
	}
	h.back = append(h.back, h.current)
	h.current = fragment
	h.mu.Unlock()

	h.changes.Publish(fragment)
}

// Back returns to the previous fragment. It reports false when there is none.
func (h *History) Back() bool {
	h.mu.Lock()
	if len(h.back) == 0 {
		h.mu.Unlock()
		return false
	}
	fragment := h.back[len(h.back)-1]
	h.back = h.back[:len(h.back)-1]
	h.current = fragment
	h.mu.Unlock()

	h.changes.Publish(fragment)
	return true
}

// Subscribe registers fn for every subsequent fragment change.
func (h *History) Subscribe(fn func(fragment string)) (unsubscribe func()) {
	return h.changes.Subscribe(fn)
}
